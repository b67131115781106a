package lottie

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// RenderStats counts the work done by the last Renderer.Draw.
type RenderStats struct {
	Nodes     int // nodes visited and drawn (hidden subtrees excluded)
	Contents  int // leaf contents drawn
	Offscreen int // offscreen passes for masks and bounds clips
}

// Renderer draws render tree snapshots onto ebiten images. It only reads
// the tree it is given.
type Renderer struct {
	pool     renderTexturePool
	deferred []*ebiten.Image
	stats    RenderStats
}

// NewRenderer creates a renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Stats returns the counters of the last Draw.
func (r *Renderer) Stats() RenderStats {
	return r.stats
}

// Draw renders the tree rooted at root onto target. A nil root draws nothing.
func (r *Renderer) Draw(target *ebiten.Image, root *RenderTreeNode) {
	r.stats = RenderStats{}
	if root == nil {
		return
	}
	r.drawNode(target, root, identityTransform, 1)

	for _, img := range r.deferred {
		r.pool.Release(img)
	}
	r.deferred = r.deferred[:0]
}

// drawNode walks the tree depth-first. Nodes with a mask or a bounds clip
// render their subtree to an offscreen image first.
func (r *Renderer) drawNode(target *ebiten.Image, n *RenderTreeNode, parentTransform [6]float64, parentAlpha float64) {
	if n.IsHidden {
		return
	}
	alpha := parentAlpha * n.Alpha
	if alpha <= 0 {
		return
	}
	transform := multiplyAffine(parentTransform, nodeLocalAffine(n.Position, n.Transform))
	r.stats.Nodes++

	if n.mask != nil || (n.MasksToBounds && !n.Bounds.IsEmpty()) {
		r.drawOffscreen(target, n, transform, alpha)
		return
	}
	r.drawContents(target, n, transform, alpha)
}

func (r *Renderer) drawContents(target *ebiten.Image, n *RenderTreeNode, transform [6]float64, alpha float64) {
	if n.Content != nil {
		r.drawContent(target, n.Content, transform, alpha)
	}
	for _, child := range n.children {
		r.drawNode(target, child, transform, alpha)
	}
}

// drawOffscreen renders the node's subtree at full alpha, applies the bounds
// clip and the mask, then composites the result with the node's alpha.
// Processing order: subtree -> bounds clip -> mask -> composite.
func (r *Renderer) drawOffscreen(target *ebiten.Image, n *RenderTreeNode, transform [6]float64, alpha float64) {
	b := target.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	r.stats.Offscreen++

	rt := r.pool.Acquire(w, h)
	r.drawContents(rt, n, transform, 1)

	if n.MasksToBounds && !n.Bounds.IsEmpty() {
		clip := r.pool.Acquire(w, h)
		fillRect(clip, n.Bounds, transform, ColorWhite, 1)
		var op ebiten.DrawImageOptions
		op.Blend = BlendMask.EbitenBlend()
		rt.DrawImage(clip, &op)
		r.pool.Release(clip)
	}

	if n.mask != nil {
		maskRT := r.pool.Acquire(w, h)
		// The mask shares the masked node's coordinate space.
		r.drawNode(maskRT, n.mask, transform, 1)
		var op ebiten.DrawImageOptions
		if n.invertMask {
			op.Blend = BlendErase.EbitenBlend()
		} else {
			op.Blend = BlendMask.EbitenBlend()
		}
		rt.DrawImage(maskRT, &op)
		r.pool.Release(maskRT)
	}

	var op ebiten.DrawImageOptions
	op.ColorScale.ScaleAlpha(float32(alpha))
	target.DrawImage(rt.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image), &op)
	r.deferred = append(r.deferred, rt)
}

func (r *Renderer) drawContent(target *ebiten.Image, c *NodeContent, transform [6]float64, alpha float64) {
	switch {
	case c.Image != nil:
		r.stats.Contents++
		var op ebiten.DrawImageOptions
		ib := c.Image.Bounds()
		if c.Size.X > 0 && c.Size.Y > 0 && ib.Dx() > 0 && ib.Dy() > 0 {
			op.GeoM.Scale(c.Size.X/float64(ib.Dx()), c.Size.Y/float64(ib.Dy()))
		}
		op.GeoM.Concat(geoM(transform))
		op.ColorScale.ScaleAlpha(float32(alpha))
		target.DrawImage(c.Image, &op)
	case c.Text != "" && c.Face != nil:
		r.stats.Contents++
		op := &text.DrawOptions{}
		op.GeoM = geoM(transform)
		tc := c.TextColor
		op.ColorScale.Scale(float32(tc.R*tc.A), float32(tc.G*tc.A), float32(tc.B*tc.A), float32(tc.A))
		op.ColorScale.ScaleAlpha(float32(alpha))
		text.Draw(target, c.Text, c.Face, op)
	case c.Fill.A > 0 && c.Size.X > 0 && c.Size.Y > 0:
		r.stats.Contents++
		fillRect(target, Rect{0, 0, c.Size.X, c.Size.Y}, transform, c.Fill, alpha)
	}
}

// fillRect draws rect in the given color through transform using WhitePixel.
func fillRect(target *ebiten.Image, rect Rect, transform [6]float64, c Color, alpha float64) {
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(rect.Width, rect.Height)
	op.GeoM.Translate(rect.X, rect.Y)
	op.GeoM.Concat(geoM(transform))
	a := c.A * alpha
	op.ColorScale.Scale(float32(c.R*a), float32(c.G*a), float32(c.B*a), float32(a))
	target.DrawImage(WhitePixel, &op)
}
