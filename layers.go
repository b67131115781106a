package lottie

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// --- Null ---

// NullLayer carries a transform and no visual output.
type NullLayer struct {
	layerBase
}

// NewNullLayer creates a null layer.
func NewNullLayer(model *LayerModel) *NullLayer {
	l := &NullLayer{}
	l.initLayer(model, l, l)
	return l
}

func (l *NullLayer) displayContentsWithFrame(float64, bool) {}

func (l *NullLayer) content() (NodeContent, bool) { return NodeContent{}, false }

// --- Solid ---

// SolidLayer fills a rectangle with a flat color.
type SolidLayer struct {
	layerBase
}

// NewSolidLayer creates a solid layer.
func NewSolidLayer(model *LayerModel) *SolidLayer {
	l := &SolidLayer{}
	l.initLayer(model, l, l)
	return l
}

func (l *SolidLayer) displayContentsWithFrame(float64, bool) {}

func (l *SolidLayer) content() (NodeContent, bool) {
	return NodeContent{
		Fill: l.model.SolidColor,
		Size: Vec2{l.model.SolidWidth, l.model.SolidHeight},
	}, true
}

// --- Image ---

// ImageLayer draws a bitmap asset. Its image is assigned by a
// LayerImageProvider.
type ImageLayer struct {
	layerBase
	image *ebiten.Image
	size  Vec2
}

// NewImageLayer creates an image layer. size is the asset's declared size;
// a zero size draws the image at its natural size.
func NewImageLayer(model *LayerModel, size Vec2) *ImageLayer {
	l := &ImageLayer{size: size}
	l.initLayer(model, l, l)
	return l
}

// SetImage replaces the layer's bitmap. nil draws nothing.
func (l *ImageLayer) SetImage(img *ebiten.Image) {
	l.image = img
}

// Image returns the current bitmap, or nil.
func (l *ImageLayer) Image() *ebiten.Image {
	return l.image
}

func (l *ImageLayer) displayContentsWithFrame(float64, bool) {}

func (l *ImageLayer) content() (NodeContent, bool) {
	return NodeContent{Image: l.image, Size: l.size}, true
}

// --- Text ---

// TextLayer draws a single line of text. The text and face are resolved
// through the animation's text and font providers when the layer is built.
type TextLayer struct {
	layerBase
	text  string
	face  text.Face
	color Color
}

// NewTextLayer creates a text layer. texts and fonts may be nil.
func NewTextLayer(model *LayerModel, texts TextProvider, fonts FontProvider) *TextLayer {
	l := &TextLayer{text: model.Text, color: model.TextColor}
	l.initLayer(model, l, l)
	if texts != nil {
		l.text = texts.Text(l.KeypathName(), model.Text)
	}
	if fonts != nil {
		l.face = fonts.Face(model.FontFamily, model.FontSize)
	}
	return l
}

// Text returns the resolved text.
func (l *TextLayer) Text() string {
	return l.text
}

// SetText replaces the text shown by the layer.
func (l *TextLayer) SetText(s string) {
	l.text = s
}

func (l *TextLayer) displayContentsWithFrame(float64, bool) {}

func (l *TextLayer) content() (NodeContent, bool) {
	return NodeContent{Text: l.text, Face: l.face, TextColor: l.color}, true
}
