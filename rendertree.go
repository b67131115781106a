package lottie

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// NodeContent is the leaf drawing payload of a render tree node.
type NodeContent struct {
	// Solid fill of Size at the node origin. Ignored when Fill.A is 0.
	Fill Color
	Size Vec2

	// Image drawn at the node origin, scaled to Size when Size is set.
	Image *ebiten.Image

	// Single-line text drawn with Face.
	Text      string
	Face      text.Face
	TextColor Color
}

// RenderTreeNode is a value snapshot of one layer's visual state. The value
// fields are refreshed every frame; the children and mask are fixed when
// the node is built.
type RenderTreeNode struct {
	Bounds        Rect
	Position      Vec2
	Transform     mgl64.Mat4
	Alpha         float64
	MasksToBounds bool
	IsHidden      bool
	Content       *NodeContent

	children   []*RenderTreeNode
	mask       *RenderTreeNode
	invertMask bool
}

// newRenderTreeNode creates a node with zero bounds, identity transform and
// full opacity.
func newRenderTreeNode(children []*RenderTreeNode, mask *RenderTreeNode, invertMask bool) *RenderTreeNode {
	return &RenderTreeNode{
		Transform:  mgl64.Ident4(),
		Alpha:      1,
		children:   children,
		mask:       mask,
		invertMask: invertMask,
	}
}

// Children returns the owned child nodes in paint order (back to front).
// The returned slice MUST NOT be mutated.
func (n *RenderTreeNode) Children() []*RenderTreeNode {
	return n.children
}

// NumChildren returns the number of children.
func (n *RenderTreeNode) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *RenderTreeNode) ChildAt(index int) *RenderTreeNode {
	return n.children[index]
}

// Mask returns the node whose alpha masks this node, or nil. The mask node
// is not owned by this node.
func (n *RenderTreeNode) Mask() *RenderTreeNode {
	return n.mask
}

// InvertMask reports whether the mask's alpha is inverted before masking.
func (n *RenderTreeNode) InvertMask() bool {
	return n.invertMask
}

// Count returns the number of distinct nodes reachable from n through
// children and masks, n included.
func (n *RenderTreeNode) Count() int {
	seen := make(map[*RenderTreeNode]struct{})
	countNodes(n, seen)
	return len(seen)
}

func countNodes(n *RenderTreeNode, seen map[*RenderTreeNode]struct{}) {
	if _, ok := seen[n]; ok {
		return
	}
	seen[n] = struct{}{}
	if n.mask != nil {
		countNodes(n.mask, seen)
	}
	for _, c := range n.children {
		countNodes(c, seen)
	}
}

// Clone returns a deep copy of the tree rooted at n. A node reachable along
// several paths (a mask shared with the tree) is copied once, so the copy
// has the same identity structure as the original. The copy shares no
// mutable state with the live tree and may be read from another goroutine.
func (n *RenderTreeNode) Clone() *RenderTreeNode {
	return cloneNode(n, make(map[*RenderTreeNode]*RenderTreeNode))
}

func cloneNode(n *RenderTreeNode, done map[*RenderTreeNode]*RenderTreeNode) *RenderTreeNode {
	if c, ok := done[n]; ok {
		return c
	}
	c := &RenderTreeNode{
		Bounds:        n.Bounds,
		Position:      n.Position,
		Transform:     n.Transform,
		Alpha:         n.Alpha,
		MasksToBounds: n.MasksToBounds,
		IsHidden:      n.IsHidden,
		invertMask:    n.invertMask,
	}
	done[n] = c
	if n.Content != nil {
		content := *n.Content
		c.Content = &content
	}
	if n.mask != nil {
		c.mask = cloneNode(n.mask, done)
	}
	if len(n.children) > 0 {
		c.children = make([]*RenderTreeNode, len(n.children))
		for i, child := range n.children {
			c.children[i] = cloneNode(child, done)
		}
	}
	return c
}
