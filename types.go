package lottie

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when the renderer builds its color scale.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default fill (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// Vec2 is a 2D vector used for positions, anchors and sizes.
type Vec2 struct {
	X, Y float64
}

// WhitePixel is a 1x1 white image used to draw solid fills and bounds clips.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// MatteType is the masking role a layer requests from the sibling drawn
// above it.
type MatteType uint8

const (
	MatteNone    MatteType = iota // no matte
	MatteAdd                      // clip to the matte's alpha
	MatteInvert                   // clip to the matte's inverted alpha
	MatteUnknown                  // unsupported role (luma mattes); inert
)

// requiresMatte reports whether the role takes part in matte chaining.
func (m MatteType) requiresMatte() bool {
	return m == MatteAdd || m == MatteInvert
}

func (m MatteType) String() string {
	switch m {
	case MatteNone:
		return "none"
	case MatteAdd:
		return "add"
	case MatteInvert:
		return "invert"
	default:
		return "unknown"
	}
}

// LayerType distinguishes the kinds of layer a model describes.
type LayerType uint8

const (
	LayerTypePrecomp LayerType = iota // nested composition
	LayerTypeSolid                    // flat color rectangle
	LayerTypeImage                    // bitmap asset
	LayerTypeNull                     // transform only, no visual output
	LayerTypeShape                    // vector shapes (needs a registered constructor)
	LayerTypeText                     // single-line text
)

func (t LayerType) String() string {
	switch t {
	case LayerTypePrecomp:
		return "precomp"
	case LayerTypeSolid:
		return "solid"
	case LayerTypeImage:
		return "image"
	case LayerTypeNull:
		return "null"
	case LayerTypeShape:
		return "shape"
	case LayerTypeText:
		return "text"
	default:
		return "unknown"
	}
}

// BlendMode selects a compositing operation used by the renderer.
type BlendMode uint8

const (
	BlendNormal BlendMode = iota // source-over (standard alpha blending)
	BlendMask                    // clip destination to source alpha
	BlendErase                   // destination-out (punch transparent holes)
)

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendMask:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorZero,
			BlendFactorSourceAlpha:      ebiten.BlendFactorZero,
			BlendFactorDestinationRGB:   ebiten.BlendFactorSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	default:
		return ebiten.BlendSourceOver
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
