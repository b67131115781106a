package lottie

// TransformModel holds the animated transform of a layer. An empty curve
// means the neutral value: zero anchor/position/rotation, scale 1, opacity 1.
// Scale is a factor (1 = 100%), rotation is in degrees and opacity in [0, 1].
type TransformModel struct {
	AnchorX, AnchorY     []Keyframe
	PositionX, PositionY []Keyframe
	ScaleX, ScaleY       []Keyframe
	Rotation             []Keyframe
	Opacity              []Keyframe
}

// LayerModel describes one layer of a composition. A single flat struct is
// used for all layer kinds; fields that do not apply to Type are ignored.
type LayerModel struct {
	Name string
	Type LayerType

	// Timing, in frames of the owning composition.
	InFrame     float64
	OutFrame    float64
	StartFrame  float64
	TimeStretch float64 // 0 is treated as 1

	Hidden    bool
	MatteType MatteType
	Transform TransformModel

	// Precomp and image layers: asset ID in the AssetLibrary.
	ReferenceID string

	// Precomp layers.
	Width, Height float64
	// TimeRemapping is in seconds of the referenced composition. Nil means
	// the layer has no time remap.
	TimeRemapping []Keyframe

	// Solid layers.
	SolidColor              Color
	SolidWidth, SolidHeight float64

	// Text layers.
	Text       string
	FontFamily string
	FontSize   float64
	TextColor  Color
}

// timeStretch returns the effective time stretch (never 0).
func (m *LayerModel) timeStretch() float64 {
	if m.TimeStretch == 0 {
		return 1
	}
	return m.TimeStretch
}

// PrecompAsset is a reusable composition referenced by precomp layers.
// Layers are listed front-to-back (topmost first).
type PrecompAsset struct {
	ID     string
	Layers []*LayerModel
}

// ImageAsset describes a bitmap referenced by image layers. Path is either
// a file name inside Directory or a data URI ("data:image/png;base64,...").
type ImageAsset struct {
	ID        string
	Directory string
	Path      string
	Width     float64
	Height    float64
}

// AssetLibrary resolves asset references by ID.
type AssetLibrary struct {
	precomps map[string]*PrecompAsset
	images   map[string]*ImageAsset
}

// NewAssetLibrary creates an empty library.
func NewAssetLibrary() *AssetLibrary {
	return &AssetLibrary{
		precomps: make(map[string]*PrecompAsset),
		images:   make(map[string]*ImageAsset),
	}
}

// AddPrecomp registers a precomposition asset, replacing any with the same ID.
func (l *AssetLibrary) AddPrecomp(a *PrecompAsset) {
	l.precomps[a.ID] = a
}

// AddImage registers an image asset, replacing any with the same ID.
func (l *AssetLibrary) AddImage(a *ImageAsset) {
	l.images[a.ID] = a
}

// Precomp returns the precomposition asset with the given ID.
func (l *AssetLibrary) Precomp(id string) (*PrecompAsset, bool) {
	a, ok := l.precomps[id]
	return a, ok
}

// Image returns the image asset with the given ID.
func (l *AssetLibrary) Image(id string) (*ImageAsset, bool) {
	a, ok := l.images[id]
	return a, ok
}

// Images returns all image assets keyed by ID. The returned map MUST NOT be mutated.
func (l *AssetLibrary) Images() map[string]*ImageAsset {
	return l.images
}

// AnimationModel is the top-level composition.
type AnimationModel struct {
	Name      string
	Width     float64
	Height    float64
	FrameRate float64
	InFrame   float64
	OutFrame  float64
	Layers    []*LayerModel
	Assets    *AssetLibrary
}
