package lottie

import "sync"

// BuildContext carries the shared collaborators used while instantiating the
// layers of an animation. Nil fields fall back to defaults.
type BuildContext struct {
	Assets  *AssetLibrary
	Images  *LayerImageProvider
	Text    TextProvider
	Fonts   FontProvider
	Factory *Factory
	Debug   bool

	// precomp asset IDs currently being instantiated, outermost first
	building []string
}

func (c *BuildContext) factory() *Factory {
	if c.Factory == nil {
		return DefaultFactory()
	}
	return c.Factory
}

func (c *BuildContext) assets() *AssetLibrary {
	if c.Assets == nil {
		c.Assets = NewAssetLibrary()
	}
	return c.Assets
}

func (c *BuildContext) textProvider() TextProvider {
	if c.Text == nil {
		return DefaultTextProvider{}
	}
	return c.Text
}

func (c *BuildContext) isBuilding(id string) bool {
	for _, b := range c.building {
		if b == id {
			return true
		}
	}
	return false
}

func (c *BuildContext) push(id string) { c.building = append(c.building, id) }

func (c *BuildContext) pop() { c.building = c.building[:len(c.building)-1] }

// LayerConstructor creates the layer for one model. Returning nil skips the
// model.
type LayerConstructor func(model *LayerModel, ctx *BuildContext, frameRate float64) Layer

// Factory instantiates layers from models using one constructor per layer
// type.
type Factory struct {
	constructors map[LayerType]LayerConstructor
}

var (
	defaultFactoryOnce sync.Once
	defaultFactory     *Factory
)

// DefaultFactory returns the shared factory that builds precomp, solid,
// image, null and text layers.
func DefaultFactory() *Factory {
	defaultFactoryOnce.Do(func() { defaultFactory = NewFactory() })
	return defaultFactory
}

// NewFactory creates a factory with the built-in constructors.
func NewFactory() *Factory {
	f := &Factory{constructors: make(map[LayerType]LayerConstructor)}
	f.Register(LayerTypePrecomp, newPrecompFromModel)
	f.Register(LayerTypeSolid, func(m *LayerModel, _ *BuildContext, _ float64) Layer {
		return NewSolidLayer(m)
	})
	f.Register(LayerTypeNull, func(m *LayerModel, _ *BuildContext, _ float64) Layer {
		return NewNullLayer(m)
	})
	f.Register(LayerTypeImage, newImageFromModel)
	f.Register(LayerTypeText, func(m *LayerModel, ctx *BuildContext, _ float64) Layer {
		return NewTextLayer(m, ctx.textProvider(), ctx.Fonts)
	})
	return f
}

// Register sets the constructor for a layer type, replacing any existing one.
// Passing nil removes it.
func (f *Factory) Register(t LayerType, c LayerConstructor) {
	if c == nil {
		delete(f.constructors, t)
		return
	}
	f.constructors[t] = c
}

// CreateLayers instantiates models in order. Models without a constructor,
// or whose constructor returns nil, produce no layer.
func (f *Factory) CreateLayers(models []*LayerModel, ctx *BuildContext, frameRate float64) []Layer {
	layers := make([]Layer, 0, len(models))
	for _, m := range models {
		c, ok := f.constructors[m.Type]
		if !ok {
			debugWarnf(ctx.Debug, "no constructor for %v layer %q; skipped", m.Type, m.Name)
			continue
		}
		if l := c(m, ctx, frameRate); l != nil {
			layers = append(layers, l)
		}
	}
	return layers
}

func newPrecompFromModel(m *LayerModel, ctx *BuildContext, frameRate float64) Layer {
	asset, ok := ctx.assets().Precomp(m.ReferenceID)
	if !ok {
		debugWarnf(ctx.Debug, "precomp layer %q references missing asset %q; skipped", m.Name, m.ReferenceID)
		return nil
	}
	if ctx.isBuilding(asset.ID) {
		debugWarnf(ctx.Debug, "precomp layer %q references asset %q recursively; skipped", m.Name, asset.ID)
		return nil
	}
	return NewPreCompositionLayer(m, asset, ctx, frameRate)
}

func newImageFromModel(m *LayerModel, ctx *BuildContext, _ float64) Layer {
	var size Vec2
	if asset, ok := ctx.assets().Image(m.ReferenceID); ok {
		size = Vec2{asset.Width, asset.Height}
	} else {
		debugWarnf(ctx.Debug, "image layer %q references missing asset %q", m.Name, m.ReferenceID)
	}
	return NewImageLayer(m, size)
}
