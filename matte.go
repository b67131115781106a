package lottie

// layerList is the child list owned by a composition. Matte references
// point into it by index.
type layerList struct {
	layers []Layer
}

// matteRef is a non-owning handle to a matte layer: an index into the child
// list of the composition that owns both the matte and the matted layer.
type matteRef struct {
	list  *layerList
	index int
}

var noMatte = matteRef{index: -1}

// layer returns the referenced layer, or nil when the handle is empty.
func (r matteRef) layer() Layer {
	if r.list == nil || r.index < 0 || r.index >= len(r.list.layers) {
		return nil
	}
	return r.list.layers[r.index]
}

// setMatte makes the layer at list[index] this layer's matte source.
func (b *layerBase) setMatte(list *layerList, index int) {
	b.matte = matteRef{list: list, index: index}
}

// MatteLayer returns the layer whose alpha masks this layer, or nil.
func (b *layerBase) MatteLayer() Layer {
	return b.matte.layer()
}

// matteNode returns the matte layer's render tree node and whether it is
// applied inverted. It builds the matte's render tree if needed.
func (b *layerBase) matteNode() (*RenderTreeNode, bool) {
	m := b.matte.layer()
	if m == nil {
		return nil, false
	}
	node := m.RenderTreeNode()
	return node, node != nil && b.model.MatteType == MatteInvert
}
