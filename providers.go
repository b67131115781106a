package lottie

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io/fs"
	"path"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// --- Images ---

// ImageProvider supplies bitmaps for image assets. Returning nil leaves the
// image layer empty.
type ImageProvider interface {
	Image(asset *ImageAsset) *ebiten.Image
}

// ImageProviderFunc adapts a function to ImageProvider.
type ImageProviderFunc func(asset *ImageAsset) *ebiten.Image

// Image calls f(asset).
func (f ImageProviderFunc) Image(asset *ImageAsset) *ebiten.Image { return f(asset) }

// FileImageProvider loads image assets from a file system, or decodes them
// from data URIs. Loaded images are cached by asset ID.
type FileImageProvider struct {
	fsys  fs.FS
	cache map[string]*ebiten.Image
}

// NewFileImageProvider creates a provider reading from fsys. fsys may be nil
// when every asset is embedded as a data URI.
func NewFileImageProvider(fsys fs.FS) *FileImageProvider {
	return &FileImageProvider{fsys: fsys, cache: make(map[string]*ebiten.Image)}
}

// Image returns the cached or freshly loaded image, or nil on failure.
// Use Load to observe the error.
func (p *FileImageProvider) Image(asset *ImageAsset) *ebiten.Image {
	img, err := p.Load(asset)
	if err != nil {
		return nil
	}
	return img
}

// Load returns the image for asset, loading it on first use.
func (p *FileImageProvider) Load(asset *ImageAsset) (*ebiten.Image, error) {
	if img, ok := p.cache[asset.ID]; ok {
		return img, nil
	}
	var (
		img *ebiten.Image
		err error
	)
	if strings.HasPrefix(asset.Path, "data:") {
		img, err = decodeDataURI(asset.Path)
	} else {
		if p.fsys == nil {
			return nil, fmt.Errorf("lottie: image asset %q: no file system", asset.ID)
		}
		img, _, err = ebitenutil.NewImageFromFileSystem(p.fsys, path.Join(asset.Directory, asset.Path))
	}
	if err != nil {
		return nil, fmt.Errorf("lottie: image asset %q: %w", asset.ID, err)
	}
	p.cache[asset.ID] = img
	return img, nil
}

// decodeDataURI decodes a base64 "data:image/...;base64,..." URI.
func decodeDataURI(uri string) (*ebiten.Image, error) {
	header, payload, ok := strings.Cut(uri, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("unsupported data URI")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode data URI: %w", err)
	}
	img, _, err := ebitenutil.NewImageFromReader(bytes.NewReader(data))
	return img, err
}

// LayerImageProvider connects an ImageProvider to the image layers of an
// animation so that swapping the provider updates every layer directly.
type LayerImageProvider struct {
	provider ImageProvider
	assets   map[string]*ImageAsset
	layers   []*ImageLayer
}

// NewLayerImageProvider creates a registry over the given image assets.
// provider may be nil.
func NewLayerImageProvider(provider ImageProvider, assets map[string]*ImageAsset) *LayerImageProvider {
	return &LayerImageProvider{provider: provider, assets: assets}
}

// AddImageLayers registers layers and assigns their images.
func (p *LayerImageProvider) AddImageLayers(layers []*ImageLayer) {
	p.layers = append(p.layers, layers...)
	for _, l := range layers {
		p.assign(l)
	}
}

// ImageLayers returns the registered layers. The returned slice MUST NOT be mutated.
func (p *LayerImageProvider) ImageLayers() []*ImageLayer {
	return p.layers
}

// SetImageProvider replaces the provider and reloads every registered layer.
func (p *LayerImageProvider) SetImageProvider(provider ImageProvider) {
	p.provider = provider
	p.Reload()
}

// Reload reassigns the image of every registered layer.
func (p *LayerImageProvider) Reload() {
	for _, l := range p.layers {
		p.assign(l)
	}
}

func (p *LayerImageProvider) assign(l *ImageLayer) {
	if p.provider == nil {
		l.SetImage(nil)
		return
	}
	asset, ok := p.assets[l.model.ReferenceID]
	if !ok {
		l.SetImage(nil)
		return
	}
	l.SetImage(p.provider.Image(asset))
}

// --- Text ---

// TextProvider lets the host replace the text of text layers. keypath is
// the layer's keypath name.
type TextProvider interface {
	Text(keypath, sourceText string) string
}

// DefaultTextProvider returns the authored text unchanged.
type DefaultTextProvider struct{}

// Text returns sourceText.
func (DefaultTextProvider) Text(_, sourceText string) string { return sourceText }

// DictionaryTextProvider replaces text by keypath, then by source text.
type DictionaryTextProvider map[string]string

// Text returns the replacement for keypath or sourceText, or sourceText.
func (d DictionaryTextProvider) Text(keypath, sourceText string) string {
	if s, ok := d[keypath]; ok {
		return s
	}
	if s, ok := d[sourceText]; ok {
		return s
	}
	return sourceText
}

// --- Fonts ---

// FontProvider resolves font families for text layers. Returning nil leaves
// the text layer empty.
type FontProvider interface {
	Face(family string, size float64) text.Face
}

// TTFFontProvider serves faces from TrueType/OpenType sources registered by
// family name.
type TTFFontProvider struct {
	sources  map[string]*text.GoTextFaceSource
	fallback *text.GoTextFaceSource
}

// NewTTFFontProvider creates an empty provider.
func NewTTFFontProvider() *TTFFontProvider {
	return &TTFFontProvider{sources: make(map[string]*text.GoTextFaceSource)}
}

// AddFont parses ttfData and registers it under family. The first font added
// becomes the fallback for unknown families.
func (p *TTFFontProvider) AddFont(family string, ttfData []byte) error {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return fmt.Errorf("lottie: failed to parse font %q: %w", family, err)
	}
	p.sources[family] = source
	if p.fallback == nil {
		p.fallback = source
	}
	return nil
}

// Face returns a face for family at size, or nil when no font is registered.
func (p *TTFFontProvider) Face(family string, size float64) text.Face {
	source, ok := p.sources[family]
	if !ok {
		source = p.fallback
	}
	if source == nil {
		return nil
	}
	return &text.GoTextFace{Source: source, Size: size}
}
