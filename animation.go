package lottie

import (
	"sync/atomic"
	"time"
)

// FrameSink is the interface for optional integration with a host event
// system. When set on an Animation, every published frame is forwarded.
type FrameSink interface {
	EmitFrame(event FrameEvent)
}

// FrameEvent describes a completed frame update.
type FrameEvent struct {
	Frame    float64
	Snapshot *RenderTreeNode
}

// AnimationOptions configures NewAnimation. The zero value is valid.
type AnimationOptions struct {
	ImageProvider ImageProvider
	TextProvider  TextProvider
	FontProvider  FontProvider
	// Factory builds layers from models. Nil uses DefaultFactory.
	Factory *Factory
	// Debug enables warnings and per-frame stats on stderr.
	Debug bool
}

// Animation is the top-level object that owns the layer tree of one
// animation and publishes a render tree snapshot for every frame.
//
// SetFrame, ForceUpdate and the other mutating methods must be called from a
// single goroutine. Snapshot may be called from any goroutine.
type Animation struct {
	model  *AnimationModel
	root   *PreCompositionLayer
	images *LayerImageProvider
	sink   FrameSink
	debug  bool

	frame    float64
	hasFrame bool
	snapshot atomic.Pointer[RenderTreeNode]
}

// NewAnimation instantiates the layer tree of model. The main composition is
// wrapped in a precomposition of the animation's size, so the whole
// animation is a single render tree.
func NewAnimation(model *AnimationModel, opts AnimationOptions) *Animation {
	assets := model.Assets
	if assets == nil {
		assets = NewAssetLibrary()
	}
	images := NewLayerImageProvider(opts.ImageProvider, assets.Images())
	ctx := &BuildContext{
		Assets:  assets,
		Images:  images,
		Text:    opts.TextProvider,
		Fonts:   opts.FontProvider,
		Factory: opts.Factory,
		Debug:   opts.Debug,
	}
	rootModel := &LayerModel{
		Name:     model.Name,
		Type:     LayerTypePrecomp,
		Width:    model.Width,
		Height:   model.Height,
		InFrame:  model.InFrame,
		OutFrame: model.OutFrame,
	}
	root := NewPreCompositionLayer(rootModel, &PrecompAsset{Layers: model.Layers}, ctx, model.FrameRate)
	debugCheckTreeDepth(opts.Debug, root)
	return &Animation{
		model:  model,
		root:   root,
		images: images,
		debug:  opts.Debug,
	}
}

// Root returns the precomposition wrapping the main composition.
func (a *Animation) Root() *PreCompositionLayer {
	return a.root
}

// Model returns the animation model. It MUST NOT be mutated.
func (a *Animation) Model() *AnimationModel {
	return a.model
}

// FrameRate returns the frames per second of the main composition.
func (a *Animation) FrameRate() float64 {
	return a.model.FrameRate
}

// InFrame returns the first frame of the animation.
func (a *Animation) InFrame() float64 {
	return a.model.InFrame
}

// OutFrame returns the last frame of the animation.
func (a *Animation) OutFrame() float64 {
	return a.model.OutFrame
}

// Duration returns the animation length in seconds.
func (a *Animation) Duration() time.Duration {
	if a.model.FrameRate <= 0 {
		return 0
	}
	secs := (a.model.OutFrame - a.model.InFrame) / a.model.FrameRate
	return time.Duration(secs * float64(time.Second))
}

// Size returns the animation's width and height.
func (a *Animation) Size() Vec2 {
	return Vec2{a.model.Width, a.model.Height}
}

// Frame returns the frame of the last update.
func (a *Animation) Frame() float64 {
	return a.frame
}

// SetFrame advances the layer tree to frame, clamped to [InFrame, OutFrame],
// synchronizes the render tree and publishes a new snapshot.
func (a *Animation) SetFrame(frame float64) {
	a.update(a.clamp(frame), false)
}

// ForceUpdate recomputes the current frame even though it did not change.
// Call it after out-of-band changes such as SetHidden or value providers.
// Before the first SetFrame it publishes InFrame.
func (a *Animation) ForceUpdate() {
	frame := a.frame
	if !a.hasFrame {
		frame = a.clamp(a.model.InFrame)
	}
	a.update(frame, true)
}

func (a *Animation) clamp(frame float64) float64 {
	if frame < a.model.InFrame {
		return a.model.InFrame
	}
	if a.model.OutFrame > a.model.InFrame && frame > a.model.OutFrame {
		return a.model.OutFrame
	}
	return frame
}

func (a *Animation) update(frame float64, force bool) {
	var stats frameStats
	var t0 time.Time
	if a.debug {
		t0 = time.Now()
	}

	a.root.DisplayWithFrame(frame, force)

	if a.debug {
		stats.displayTime = time.Since(t0)
		t0 = time.Now()
	}

	a.root.UpdateRenderTree()

	if a.debug {
		stats.syncTime = time.Since(t0)
		t0 = time.Now()
	}

	snap := a.root.RenderTreeNode().Clone()
	a.snapshot.Store(snap)
	a.frame = frame
	a.hasFrame = true

	if a.debug {
		stats.publishTime = time.Since(t0)
		stats.nodeCount = snap.Count()
		a.debugLog(frame, stats)
	}

	if a.sink != nil {
		a.sink.EmitFrame(FrameEvent{Frame: frame, Snapshot: snap})
	}
}

// Snapshot returns the render tree of the last completed update, or nil
// before the first SetFrame. The snapshot is never modified afterwards.
func (a *Animation) Snapshot() *RenderTreeNode {
	return a.snapshot.Load()
}

// RenderTree returns the live render tree. It is rewritten by every update
// and must only be read by the goroutine that drives the animation.
func (a *Animation) RenderTree() *RenderTreeNode {
	return a.root.RenderTreeNode()
}

// SetImageProvider replaces the image provider, reassigns the image of every
// image layer and republishes the current frame.
func (a *Animation) SetImageProvider(provider ImageProvider) {
	a.images.SetImageProvider(provider)
	if a.hasFrame {
		a.ForceUpdate()
	}
}

// SetFrameSink sets the optional frame event sink.
func (a *Animation) SetFrameSink(sink FrameSink) {
	a.sink = sink
}

// SetDebugMode enables or disables per-frame stats on stderr.
func (a *Animation) SetDebugMode(enabled bool) {
	a.debug = enabled
}
