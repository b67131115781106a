package lottie

import (
	"fmt"
)

// PreCompositionLayer embeds a precomposition asset as a layer. It owns the
// asset's layers, pairs matted layers with their mattes, maps its parent's
// timeline onto the asset's local timeline and owns the render tree subtree
// rooted at itself.
type PreCompositionLayer struct {
	layerBase

	frameRate float64
	remap     *AnimatedProperty
	remapKeys map[string]*AnimatedProperty

	// children in authoring order (topmost first); slots is parallel to it
	children layerList
	slots    []childSlot

	tree precompTree
}

// childSlot records how a child takes part in the content container.
type childSlot struct {
	// visible is set by matte chaining: the child is drawn directly rather
	// than only through another layer's matte. It fixes the render tree shape.
	visible bool
	// active is the child's current membership of the content container.
	// Only visible children can be active.
	active bool
}

// precompTree is the memoized render tree of a precomposition:
//
//	root (own values, matte mask)
//	└── contents (content container values)
//	    └── group (identity, holds the children)
//	        └── visible child nodes, back to front
type precompTree struct {
	built    bool
	root     *RenderTreeNode
	contents *RenderTreeNode
	group    *RenderTreeNode
	order    []int // slot index of each group child
}

// NewPreCompositionLayer instantiates the layers of asset through the
// context's factory and chains their mattes.
//
// Layers are visited back to front. A layer that requests an Add or Invert
// matte takes the next visited layer (the one directly above it) as its
// matte source; that source is then only visible through the matte.
func NewPreCompositionLayer(model *LayerModel, asset *PrecompAsset, ctx *BuildContext, frameRate float64) *PreCompositionLayer {
	l := &PreCompositionLayer{frameRate: frameRate}
	l.initLayer(model, l, l)

	l.remapKeys = make(map[string]*AnimatedProperty, 1)
	if model.TimeRemapping != nil {
		l.remap = NewAnimatedProperty(model.TimeRemapping)
		l.remapKeys["Time Remap"] = l.remap
	}

	l.bounds = Rect{0, 0, model.Width, model.Height}
	l.contents.MasksToBounds = true
	l.contents.Bounds = l.bounds

	ctx.push(asset.ID)
	layers := ctx.factory().CreateLayers(asset.Layers, ctx, frameRate)
	ctx.pop()

	l.children.layers = layers
	l.slots = make([]childSlot, len(layers))

	var imageLayers []*ImageLayer
	pending := -1
	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		layer.SetBounds(l.bounds)
		if img, ok := layer.(*ImageLayer); ok {
			imageLayers = append(imageLayers, img)
		}
		if pending >= 0 {
			// The previously visited layer requires this layer as its matte.
			layers[pending].base().setMatte(&l.children, i)
			pending = -1
			continue
		}
		if layer.MatteType().requiresMatte() {
			pending = i
		}
		l.slots[i] = childSlot{visible: true, active: true}
	}
	if pending >= 0 {
		debugWarnf(ctx.Debug, "layer %q requests a matte but has no layer above it", layers[pending].Name())
	}

	if ctx.Images != nil && len(imageLayers) > 0 {
		ctx.Images.AddImageLayers(imageLayers)
	}
	return l
}

// FrameRate returns the frame rate of the referenced composition.
func (l *PreCompositionLayer) FrameRate() float64 {
	return l.frameRate
}

// TimeRemap returns the time remap property, or nil when the layer has none.
func (l *PreCompositionLayer) TimeRemap() *AnimatedProperty {
	return l.remap
}

// LocalFrame maps a frame of the parent timeline onto the local timeline.
// With a time remap the curve gives seconds, scaled by the frame rate;
// otherwise the standard start frame and time stretch apply.
func (l *PreCompositionLayer) LocalFrame(frame float64) float64 {
	if l.remap != nil {
		l.remap.Update(frame)
		return l.remap.Value() * l.frameRate
	}
	return (frame - l.StartFrame()) / l.TimeStretch()
}

func (l *PreCompositionLayer) displayContentsWithFrame(frame float64, forceUpdates bool) {
	localFrame := l.LocalFrame(frame)
	for i := len(l.children.layers) - 1; i >= 0; i-- {
		l.children.layers[i].DisplayWithFrame(localFrame, forceUpdates)
	}
}

func (l *PreCompositionLayer) content() (NodeContent, bool) { return NodeContent{}, false }

// --- Children ---

// ChildLayers returns every child in authoring order, including children
// that are only visible as mattes. The returned slice MUST NOT be mutated.
func (l *PreCompositionLayer) ChildLayers() []Layer {
	return l.children.layers
}

// NumChildren returns the number of children.
func (l *PreCompositionLayer) NumChildren() int {
	return len(l.children.layers)
}

// VisibleLayers returns the children drawn directly, in authoring order.
func (l *PreCompositionLayer) VisibleLayers() []Layer {
	var out []Layer
	for i, s := range l.slots {
		if s.visible {
			out = append(out, l.children.layers[i])
		}
	}
	return out
}

// IsChildVisible reports whether the child at index is drawn directly
// rather than only as a matte.
func (l *PreCompositionLayer) IsChildVisible(index int) bool {
	return l.slots[index].visible
}

// IsChildActive reports whether the child at index is currently a member of
// the content container.
func (l *PreCompositionLayer) IsChildActive(index int) bool {
	return l.slots[index].active
}

// SetChildActive adds or removes a directly visible child from the content
// container. An inactive child keeps receiving frames but is not
// synchronized and is published hidden. Panics for matte-only children,
// whose place in the render tree is fixed.
func (l *PreCompositionLayer) SetChildActive(index int, active bool) {
	if index < 0 || index >= len(l.slots) {
		panic("lottie: child index out of range")
	}
	if !l.slots[index].visible {
		panic(fmt.Sprintf("lottie: child %q is a matte source and cannot join the content container", l.children.layers[index].Name()))
	}
	l.slots[index].active = active
}

// --- Keypaths ---

// KeypathProperties returns {"Time Remap": property} when the layer has a
// time remap, and an empty map otherwise.
func (l *PreCompositionLayer) KeypathProperties() map[string]*AnimatedProperty {
	return l.remapKeys
}

// ChildKeypaths returns every child layer.
func (l *PreCompositionLayer) ChildKeypaths() []Layer {
	return l.children.layers
}

// --- Render tree ---

// RenderTreeNode returns the precomposition's render tree root, building the
// tree on first call.
func (l *PreCompositionLayer) RenderTreeNode() *RenderTreeNode {
	l.buildTree()
	return l.tree.root
}

func (l *PreCompositionLayer) buildTree() {
	if l.tree.built {
		return
	}
	l.tree.built = true

	var nodes []*RenderTreeNode
	for i := len(l.children.layers) - 1; i >= 0; i-- {
		if !l.slots[i].visible {
			continue
		}
		node := l.children.layers[i].RenderTreeNode()
		if node == nil {
			continue
		}
		nodes = append(nodes, node)
		l.tree.order = append(l.tree.order, i)
	}

	l.tree.group = newRenderTreeNode(nodes, nil, false)
	l.tree.contents = newRenderTreeNode([]*RenderTreeNode{l.tree.group}, nil, false)
	mask, invert := l.matteNode()
	l.tree.root = newRenderTreeNode([]*RenderTreeNode{l.tree.contents}, mask, invert)
}

// UpdateRenderTree synchronizes the subtree: the matte first, then active
// children, then the layer's own values and its content container.
//
// A precomposition's own values must stay neutral (opacity 1, shown, no
// clipping, identity transform, zero position); animation lives in the
// content container. Panics if they were changed.
func (l *PreCompositionLayer) UpdateRenderTree() {
	l.buildTree()

	if m := l.matte.layer(); m != nil {
		m.UpdateRenderTree()
	}

	for _, i := range l.tree.order {
		child := l.children.layers[i]
		if l.slots[i].active {
			child.UpdateRenderTree()
		} else {
			child.RenderTreeNode().IsHidden = true
		}
	}

	l.checkNeutral()

	copyContainerValues(l.tree.contents, &l.contents)
	l.copyOwnValues(l.tree.root)
}

// checkNeutral panics if the layer's own values cannot be represented by
// the render tree.
func (l *PreCompositionLayer) checkNeutral() {
	switch {
	case l.opacity != 1:
		panic(fmt.Sprintf("lottie: precomposition %q has opacity %v, want 1", l.Name(), l.opacity))
	case l.hidden:
		panic(fmt.Sprintf("lottie: precomposition %q is hidden", l.Name()))
	case l.masksToBounds:
		panic(fmt.Sprintf("lottie: precomposition %q clips to its own bounds", l.Name()))
	case !isIdentity3D(l.transform):
		panic(fmt.Sprintf("lottie: precomposition %q has a non-identity transform", l.Name()))
	case l.position != (Vec2{}):
		panic(fmt.Sprintf("lottie: precomposition %q has position %v, want origin", l.Name(), l.position))
	}
}
