package lottie

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Layer is a renderable element of a composition. The set of layer kinds is
// closed: every implementation embeds the shared layer base.
//
// A layer keeps two sets of visual values. Its own bounds, position,
// transform, opacity and flags belong to the layer itself and stay neutral
// for precompositions. Its Contents container carries the animated
// transform, opacity and in/out visibility.
type Layer interface {
	Name() string
	Type() LayerType
	Model() *LayerModel

	Bounds() Rect
	SetBounds(r Rect)
	Position() Vec2
	SetPosition(p Vec2)
	Transform() mgl64.Mat4
	SetTransform(m mgl64.Mat4)
	Opacity() float64
	SetOpacity(a float64)
	IsHidden() bool
	SetHidden(hidden bool)
	MasksToBounds() bool
	SetMasksToBounds(clip bool)
	Contents() *Container

	StartFrame() float64
	TimeStretch() float64
	MatteType() MatteType
	MatteLayer() Layer

	// DisplayWithFrame advances the layer to frame, given in the timeline of
	// the owning composition. forceUpdates recomputes even when frame did
	// not change.
	DisplayWithFrame(frame float64, forceUpdates bool)
	// RenderTreeNode returns the layer's render tree node. The node and its
	// shape are created on first call and stay the same afterwards.
	RenderTreeNode() *RenderTreeNode
	// UpdateRenderTree copies the layer's current values into its render tree.
	UpdateRenderTree()

	KeypathName() string
	KeypathProperties() map[string]*AnimatedProperty
	ChildKeypaths() []Layer

	base() *layerBase
}

// Container holds the values of a layer's content container.
type Container struct {
	Bounds        Rect
	Position      Vec2
	Transform     mgl64.Mat4
	Opacity       float64
	Hidden        bool
	MasksToBounds bool
}

// layerKind is implemented by each concrete layer for the kind-specific part
// of the shared display and render tree logic.
type layerKind interface {
	displayContentsWithFrame(frame float64, forceUpdates bool)
	// content returns the leaf content drawn by the layer's contents node.
	content() (NodeContent, bool)
}

// layerBase carries the state shared by every layer kind.
type layerBase struct {
	model *LayerModel
	kind  layerKind
	self  Layer

	bounds        Rect
	position      Vec2
	transform     mgl64.Mat4
	opacity       float64
	hidden        bool
	masksToBounds bool
	contents      Container

	matte matteRef
	props transformProperties
	keys  map[string]*AnimatedProperty

	lastFrame float64
	displayed bool

	// Leaf render tree (unused by precompositions).
	leaf leafTree
}

// leafTree is the render tree of a leaf layer: the layer's own node holding
// one contents node.
type leafTree struct {
	built    bool
	root     *RenderTreeNode
	contents *RenderTreeNode
}

// initLayer sets the shared defaults. self is the concrete layer.
func (b *layerBase) initLayer(model *LayerModel, self Layer, kind layerKind) {
	b.model = model
	b.self = self
	b.kind = kind
	b.transform = mgl64.Ident4()
	b.opacity = 1
	b.contents = Container{Transform: mgl64.Ident4(), Opacity: 1}
	b.matte = noMatte
	b.props = newTransformProperties(model.Transform)
	b.keys = b.props.keypathProperties()
	b.props.update(model.InFrame)
	b.applyContents(model.InFrame)
}

func (b *layerBase) base() *layerBase { return b }

// Name returns the model name.
func (b *layerBase) Name() string { return b.model.Name }

// Type returns the layer kind.
func (b *layerBase) Type() LayerType { return b.model.Type }

// Model returns the layer model. It MUST NOT be mutated.
func (b *layerBase) Model() *LayerModel { return b.model }

// Bounds returns the layer's own bounds.
func (b *layerBase) Bounds() Rect { return b.bounds }

// SetBounds sets the layer's own bounds.
func (b *layerBase) SetBounds(r Rect) { b.bounds = r }

// Position returns the layer's own position.
func (b *layerBase) Position() Vec2 { return b.position }

// SetPosition sets the layer's own position.
func (b *layerBase) SetPosition(p Vec2) { b.position = p }

// Transform returns the layer's own transform.
func (b *layerBase) Transform() mgl64.Mat4 { return b.transform }

// SetTransform sets the layer's own transform.
func (b *layerBase) SetTransform(m mgl64.Mat4) { b.transform = m }

// Opacity returns the layer's own opacity.
func (b *layerBase) Opacity() float64 { return b.opacity }

// SetOpacity sets the layer's own opacity.
func (b *layerBase) SetOpacity(a float64) { b.opacity = a }

// IsHidden reports whether the layer itself is hidden.
func (b *layerBase) IsHidden() bool { return b.hidden }

// SetHidden hides or shows the layer. The change reaches the render tree on
// the next UpdateRenderTree.
func (b *layerBase) SetHidden(hidden bool) { b.hidden = hidden }

// MasksToBounds reports whether the layer clips to its own bounds.
func (b *layerBase) MasksToBounds() bool { return b.masksToBounds }

// SetMasksToBounds enables or disables clipping to the layer's own bounds.
func (b *layerBase) SetMasksToBounds(clip bool) { b.masksToBounds = clip }

// Contents returns the content container.
func (b *layerBase) Contents() *Container { return &b.contents }

// StartFrame returns the model start frame.
func (b *layerBase) StartFrame() float64 { return b.model.StartFrame }

// TimeStretch returns the model time stretch, never 0.
func (b *layerBase) TimeStretch() float64 { return b.model.timeStretch() }

// MatteType returns the matte role the layer requests.
func (b *layerBase) MatteType() MatteType { return b.model.MatteType }

// KeypathName returns the name used to address the layer in keypaths.
func (b *layerBase) KeypathName() string { return b.model.Name }

// KeypathProperties returns the layer's transform properties by name.
func (b *layerBase) KeypathProperties() map[string]*AnimatedProperty { return b.keys }

// ChildKeypaths returns nil; leaf layers have no children.
func (b *layerBase) ChildKeypaths() []Layer { return nil }

// DisplayWithFrame evaluates the transform at frame, updates the content
// container and runs the kind-specific display step.
func (b *layerBase) DisplayWithFrame(frame float64, forceUpdates bool) {
	if b.displayed && !forceUpdates && frame == b.lastFrame {
		return
	}
	b.displayed = true
	b.lastFrame = frame
	b.props.update(frame)
	b.applyContents(frame)
	b.kind.displayContentsWithFrame(frame, forceUpdates)
}

func (b *layerBase) applyContents(frame float64) {
	b.contents.Transform = b.props.matrix()
	b.contents.Opacity = clamp01(b.props.opacity.Value())
	b.contents.Hidden = b.model.Hidden || !b.model.visibleAt(frame)
}

// RenderTreeNode returns the leaf render tree root, building it on first call.
func (b *layerBase) RenderTreeNode() *RenderTreeNode {
	b.buildLeafTree()
	return b.leaf.root
}

func (b *layerBase) buildLeafTree() {
	if b.leaf.built {
		return
	}
	b.leaf.built = true
	b.leaf.contents = newRenderTreeNode(nil, nil, false)
	if c, ok := b.kind.content(); ok {
		b.leaf.contents.Content = &c
	}
	mask, invert := b.matteNode()
	b.leaf.root = newRenderTreeNode([]*RenderTreeNode{b.leaf.contents}, mask, invert)
}

// UpdateRenderTree synchronizes the leaf render tree: matte first, then the
// layer's own values and its content container.
func (b *layerBase) UpdateRenderTree() {
	b.buildLeafTree()
	if m := b.matte.layer(); m != nil {
		m.UpdateRenderTree()
	}
	b.copyOwnValues(b.leaf.root)
	copyContainerValues(b.leaf.contents, &b.contents)
	if c, ok := b.kind.content(); ok && b.leaf.contents.Content != nil {
		*b.leaf.contents.Content = c
	}
}

// copyOwnValues writes the layer's own values into node.
func (b *layerBase) copyOwnValues(node *RenderTreeNode) {
	node.Bounds = b.bounds
	node.Position = b.position
	node.Transform = b.transform
	node.Alpha = b.opacity
	node.MasksToBounds = b.masksToBounds
	node.IsHidden = b.hidden
}

// copyContainerValues writes a content container's values into node.
func copyContainerValues(node *RenderTreeNode, c *Container) {
	node.Bounds = c.Bounds
	node.Position = c.Position
	node.Transform = c.Transform
	node.Alpha = c.Opacity
	node.MasksToBounds = c.MasksToBounds
	node.IsHidden = c.Hidden
}

// visibleAt reports whether frame lies within [InFrame, OutFrame]. An
// OutFrame of 0 means the layer never ends.
func (m *LayerModel) visibleAt(frame float64) bool {
	if frame < m.InFrame {
		return false
	}
	return m.OutFrame == 0 || frame <= m.OutFrame
}

// --- Transform properties ---

type transformProperties struct {
	anchorX, anchorY     *AnimatedProperty
	positionX, positionY *AnimatedProperty
	scaleX, scaleY       *AnimatedProperty
	rotation             *AnimatedProperty
	opacity              *AnimatedProperty
}

func newTransformProperties(m TransformModel) transformProperties {
	return transformProperties{
		anchorX:   propertyFrom(m.AnchorX, 0),
		anchorY:   propertyFrom(m.AnchorY, 0),
		positionX: propertyFrom(m.PositionX, 0),
		positionY: propertyFrom(m.PositionY, 0),
		scaleX:    propertyFrom(m.ScaleX, 1),
		scaleY:    propertyFrom(m.ScaleY, 1),
		rotation:  propertyFrom(m.Rotation, 0),
		opacity:   propertyFrom(m.Opacity, 1),
	}
}

func (p *transformProperties) update(frame float64) {
	p.anchorX.Update(frame)
	p.anchorY.Update(frame)
	p.positionX.Update(frame)
	p.positionY.Update(frame)
	p.scaleX.Update(frame)
	p.scaleY.Update(frame)
	p.rotation.Update(frame)
	p.opacity.Update(frame)
}

func (p *transformProperties) matrix() mgl64.Mat4 {
	return layerMatrix(
		Vec2{p.anchorX.Value(), p.anchorY.Value()},
		Vec2{p.positionX.Value(), p.positionY.Value()},
		Vec2{p.scaleX.Value(), p.scaleY.Value()},
		p.rotation.Value(),
	)
}

func (p *transformProperties) keypathProperties() map[string]*AnimatedProperty {
	return map[string]*AnimatedProperty{
		"Anchor Point X": p.anchorX,
		"Anchor Point Y": p.anchorY,
		"Position X":     p.positionX,
		"Position Y":     p.positionY,
		"Scale X":        p.scaleX,
		"Scale Y":        p.scaleY,
		"Rotation":       p.rotation,
		"Opacity":        p.opacity,
	}
}
