package lottie

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// identityTransform is the identity affine matrix [a, b, c, d, tx, ty].
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// Identity3D returns the identity 3D transform.
func Identity3D() mgl64.Mat4 {
	return mgl64.Ident4()
}

// isIdentity3D reports whether m is exactly the identity transform.
func isIdentity3D(m mgl64.Mat4) bool {
	return m == mgl64.Ident4()
}

// layerMatrix builds the transform of a layer's contents from its animated
// transform values. Rotation is in degrees around Z.
//
// Composition order:
//
//	Translate(-Anchor) -> Scale -> RotateZ -> Translate(Position)
func layerMatrix(anchor, position, scale Vec2, rotation float64) mgl64.Mat4 {
	m := mgl64.Translate3D(position.X, position.Y, 0)
	if rotation != 0 {
		m = m.Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(rotation)))
	}
	if scale.X != 1 || scale.Y != 1 {
		m = m.Mul4(mgl64.Scale3D(scale.X, scale.Y, 1))
	}
	if anchor.X != 0 || anchor.Y != 0 {
		m = m.Mul4(mgl64.Translate3D(-anchor.X, -anchor.Y, 0))
	}
	return m
}

// affineFromMat4 projects a 3D transform onto the XY plane. Z rows and
// columns are dropped; perspective is not represented.
func affineFromMat4(m mgl64.Mat4) [6]float64 {
	return [6]float64{m.At(0, 0), m.At(1, 0), m.At(0, 1), m.At(1, 1), m.At(0, 3), m.At(1, 3)}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// nodeLocalAffine is the affine a render tree node contributes to its
// subtree: Translate(position) * transform.
func nodeLocalAffine(position Vec2, transform mgl64.Mat4) [6]float64 {
	t := affineFromMat4(transform)
	t[4] += position.X
	t[5] += position.Y
	return t
}

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
