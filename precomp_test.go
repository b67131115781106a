package lottie

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Test helpers ---

// recordingLayer records the frames it is displayed at and the order in which
// render trees are synchronized.
type recordingLayer struct {
	layerBase
	frames []float64
	forced []bool
	syncs  *[]string
}

func newRecordingLayer(m *LayerModel, syncs *[]string) *recordingLayer {
	l := &recordingLayer{syncs: syncs}
	l.initLayer(m, l, l)
	return l
}

func (l *recordingLayer) displayContentsWithFrame(frame float64, force bool) {
	l.frames = append(l.frames, frame)
	l.forced = append(l.forced, force)
}

func (l *recordingLayer) content() (NodeContent, bool) { return NodeContent{}, false }

func (l *recordingLayer) UpdateRenderTree() {
	l.layerBase.UpdateRenderTree()
	if l.syncs != nil {
		*l.syncs = append(*l.syncs, l.Name())
	}
}

func (l *recordingLayer) lastFrameSeen() float64 {
	return l.frames[len(l.frames)-1]
}

// recordingFactory builds a recordingLayer for every null model and keeps the
// default constructors for everything else.
func recordingFactory(syncs *[]string) *Factory {
	f := NewFactory()
	f.Register(LayerTypeNull, func(m *LayerModel, _ *BuildContext, _ float64) Layer {
		return newRecordingLayer(m, syncs)
	})
	return f
}

func nullModel(name string, matte MatteType) *LayerModel {
	return &LayerModel{Name: name, Type: LayerTypeNull, MatteType: matte}
}

func precompModel(name string) *LayerModel {
	return &LayerModel{Name: name, Type: LayerTypePrecomp, ReferenceID: "asset", Width: 100, Height: 50}
}

func newTestPrecomp(model *LayerModel, children []*LayerModel, ctx *BuildContext) *PreCompositionLayer {
	if ctx == nil {
		ctx = &BuildContext{Factory: recordingFactory(nil)}
	}
	return NewPreCompositionLayer(model, &PrecompAsset{ID: model.ReferenceID, Layers: children}, ctx, 30)
}

func layerNames(layers []Layer) string {
	names := make([]string, len(layers))
	for i, l := range layers {
		names[i] = l.Name()
	}
	return strings.Join(names, ",")
}

func childByName(t *testing.T, l *PreCompositionLayer, name string) Layer {
	t.Helper()
	for _, c := range l.ChildLayers() {
		if c.Name() == name {
			return c
		}
	}
	t.Fatalf("no child %q", name)
	return nil
}

func expectPanic(t *testing.T, substr string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", substr)
		}
		if msg, ok := r.(string); !ok || !strings.Contains(msg, substr) {
			t.Fatalf("panic = %v, want message containing %q", r, substr)
		}
	}()
	fn()
}

// --- Matte chaining ---

func TestMatteChainingUsesLayerAbove(t *testing.T) {
	l := newTestPrecomp(precompModel("comp"), []*LayerModel{
		nullModel("A", MatteNone),
		nullModel("B", MatteAdd),
		nullModel("C", MatteNone),
	}, nil)

	if got := layerNames(l.VisibleLayers()); got != "B,C" {
		t.Errorf("VisibleLayers = %q, want %q", got, "B,C")
	}
	if got := layerNames(l.ChildLayers()); got != "A,B,C" {
		t.Errorf("ChildLayers = %q, want %q", got, "A,B,C")
	}
	a, b, c := childByName(t, l, "A"), childByName(t, l, "B"), childByName(t, l, "C")
	if b.MatteLayer() != a {
		t.Errorf("B.MatteLayer() = %v, want A", b.MatteLayer())
	}
	if a.MatteLayer() != nil || c.MatteLayer() != nil {
		t.Error("A and C should have no matte")
	}
	if l.IsChildVisible(0) {
		t.Error("A is a matte source and should not be visible")
	}
}

func TestMatteChainingPatterns(t *testing.T) {
	tests := []struct {
		name    string
		mattes  []MatteType
		visible string
		pairs   map[string]string // matted -> matte
	}{
		{"no mattes", []MatteType{MatteNone, MatteNone}, "L0,L1", nil},
		{"inert topmost", []MatteType{MatteAdd}, "L0", nil},
		{"invert", []MatteType{MatteNone, MatteInvert}, "L1", map[string]string{"L1": "L0"}},
		{"unknown is ignored", []MatteType{MatteUnknown, MatteNone}, "L0,L1", nil},
		{"matte source never chains", []MatteType{MatteAdd, MatteAdd, MatteAdd}, "L0,L2", map[string]string{"L2": "L1"}},
		{"middle", []MatteType{MatteNone, MatteNone, MatteAdd, MatteNone}, "L0,L2,L3", map[string]string{"L2": "L1"}},
		{"two pairs", []MatteType{MatteNone, MatteAdd, MatteNone, MatteInvert}, "L1,L3", map[string]string{"L1": "L0", "L3": "L2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			models := make([]*LayerModel, len(tt.mattes))
			for i, m := range tt.mattes {
				models[i] = nullModel("L"+string(rune('0'+i)), m)
			}
			l := newTestPrecomp(precompModel("comp"), models, nil)
			if got := layerNames(l.VisibleLayers()); got != tt.visible {
				t.Errorf("VisibleLayers = %q, want %q", got, tt.visible)
			}
			for _, c := range l.ChildLayers() {
				want, ok := tt.pairs[c.Name()]
				m := c.MatteLayer()
				switch {
				case ok && (m == nil || m.Name() != want):
					t.Errorf("%s.MatteLayer() = %v, want %s", c.Name(), m, want)
				case !ok && m != nil:
					t.Errorf("%s.MatteLayer() = %s, want nil", c.Name(), m.Name())
				}
			}
		})
	}
}

func TestMatteChainingInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	kinds := []MatteType{MatteNone, MatteNone, MatteAdd, MatteInvert, MatteUnknown}
	for iter := 0; iter < 200; iter++ {
		n := rng.Intn(8)
		models := make([]*LayerModel, n)
		for i := range models {
			models[i] = nullModel("L"+string(rune('a'+i)), kinds[rng.Intn(len(kinds))])
		}
		l := newTestPrecomp(precompModel("comp"), models, nil)
		children := l.ChildLayers()
		if len(children) != n {
			t.Fatalf("ChildLayers has %d layers, want %d", len(children), n)
		}

		consumed := make(map[Layer]bool)
		for i, c := range children {
			m := c.MatteLayer()
			if m == nil {
				continue
			}
			// The matte is the layer directly above in authoring order.
			if i == 0 || children[i-1] != m {
				t.Fatalf("iter %d: %s matted by %s, want the layer above", iter, c.Name(), m.Name())
			}
			if !c.MatteType().requiresMatte() {
				t.Fatalf("iter %d: %s has a matte but requests none", iter, c.Name())
			}
			if consumed[m] {
				t.Fatalf("iter %d: %s is the matte of two layers", iter, m.Name())
			}
			consumed[m] = true
		}

		// Every matte request is fulfilled unless the requester is itself a
		// matte source or is the topmost layer.
		for i, c := range children {
			if !c.MatteType().requiresMatte() || consumed[c] {
				continue
			}
			if i == 0 {
				if c.MatteLayer() != nil {
					t.Fatalf("iter %d: topmost %s has a matte", iter, c.Name())
				}
				continue
			}
			if c.MatteLayer() != children[i-1] {
				t.Fatalf("iter %d: %s requests a matte but is not matted by %s", iter, c.Name(), children[i-1].Name())
			}
		}

		// Visible children are exactly those not consumed, in authoring order.
		var want []Layer
		for i, c := range children {
			if consumed[c] == l.IsChildVisible(i) {
				t.Fatalf("iter %d: %s visible=%v consumed=%v", iter, c.Name(), l.IsChildVisible(i), consumed[c])
			}
			if !consumed[c] {
				want = append(want, c)
			}
		}
		if got := layerNames(l.VisibleLayers()); got != layerNames(want) {
			t.Fatalf("iter %d: VisibleLayers = %q, want %q", iter, got, layerNames(want))
		}
	}
}

func TestChildrenTakePrecompBounds(t *testing.T) {
	l := newTestPrecomp(precompModel("comp"), []*LayerModel{
		nullModel("A", MatteNone),
		nullModel("B", MatteAdd),
	}, nil)
	want := Rect{0, 0, 100, 50}
	if l.Bounds() != want {
		t.Errorf("Bounds = %v, want %v", l.Bounds(), want)
	}
	for _, c := range l.ChildLayers() {
		if c.Bounds() != want {
			t.Errorf("%s.Bounds = %v, want %v", c.Name(), c.Bounds(), want)
		}
	}
	if !l.Contents().MasksToBounds || l.Contents().Bounds != want {
		t.Errorf("Contents = %+v, want clipped to %v", *l.Contents(), want)
	}
}

func TestImageLayersRegistered(t *testing.T) {
	img := ebiten.NewImage(2, 2)
	assets := map[string]*ImageAsset{"img": {ID: "img", Width: 2, Height: 2}}
	images := NewLayerImageProvider(ImageProviderFunc(func(*ImageAsset) *ebiten.Image { return img }), assets)
	lib := NewAssetLibrary()
	lib.AddImage(assets["img"])
	ctx := &BuildContext{Assets: lib, Images: images}

	l := newTestPrecomp(precompModel("comp"), []*LayerModel{
		{Name: "pic1", Type: LayerTypeImage, ReferenceID: "img"},
		{Name: "solid", Type: LayerTypeSolid},
		{Name: "pic2", Type: LayerTypeImage, ReferenceID: "img"},
	}, ctx)

	if len(l.ChildLayers()) != 3 {
		t.Fatalf("ChildLayers = %d, want 3", len(l.ChildLayers()))
	}
	got := images.ImageLayers()
	if len(got) != 2 {
		t.Fatalf("ImageLayers = %d, want 2", len(got))
	}
	for _, il := range got {
		if il.Image() != img {
			t.Errorf("%s image not assigned", il.Name())
		}
	}
}

func TestNoImageLayersLeavesProviderEmpty(t *testing.T) {
	images := NewLayerImageProvider(nil, nil)
	newTestPrecomp(precompModel("comp"), []*LayerModel{nullModel("A", MatteNone)}, &BuildContext{
		Images:  images,
		Factory: recordingFactory(nil),
	})
	if n := len(images.ImageLayers()); n != 0 {
		t.Errorf("ImageLayers = %d, want 0", n)
	}
}

// --- Time ---

func TestLocalFrameLinear(t *testing.T) {
	m := precompModel("comp")
	m.StartFrame = 10
	m.TimeStretch = 2
	l := newTestPrecomp(m, []*LayerModel{nullModel("A", MatteNone), nullModel("B", MatteAdd)}, nil)

	l.DisplayWithFrame(30, false)
	for _, c := range l.ChildLayers() {
		p := c.(*recordingLayer)
		if got := p.lastFrameSeen(); got != 10 {
			t.Errorf("%s frame = %v, want 10", c.Name(), got)
		}
	}
	if got := l.LocalFrame(10); got != 0 {
		t.Errorf("LocalFrame(10) = %v, want 0", got)
	}
}

func TestLocalFrameZeroStretchIsOne(t *testing.T) {
	m := precompModel("comp")
	m.StartFrame = 4
	l := newTestPrecomp(m, nil, nil)
	if got := l.LocalFrame(10); got != 6 {
		t.Errorf("LocalFrame(10) = %v, want 6", got)
	}
	if l.TimeStretch() != 1 {
		t.Errorf("TimeStretch = %v, want 1", l.TimeStretch())
	}
}

func TestLocalFrameTimeRemap(t *testing.T) {
	m := precompModel("comp")
	m.StartFrame = 100 // ignored when remapped
	m.TimeStretch = 3
	m.TimeRemapping = []Keyframe{{Frame: 0, Value: 0.5}, {Frame: 10, Value: 1.5}}
	l := newTestPrecomp(m, []*LayerModel{nullModel("A", MatteNone)}, nil)
	child := l.ChildLayers()[0].(*recordingLayer)

	tests := []struct {
		frame, want float64
	}{
		{0, 15},
		{5, 30},
		{10, 45},
		{20, 45},
	}
	for _, tt := range tests {
		l.DisplayWithFrame(tt.frame, false)
		if got := child.lastFrameSeen(); got != tt.want {
			t.Errorf("frame %v: child frame = %v, want %v", tt.frame, got, tt.want)
		}
		if got := l.TimeRemap().Value() * l.FrameRate(); got != tt.want {
			t.Errorf("frame %v: remap*rate = %v, want %v", tt.frame, got, tt.want)
		}
	}
}

func TestTimeRemapWholeFrames(t *testing.T) {
	m := precompModel("comp")
	m.TimeRemapping = []Keyframe{{Frame: 0, Value: 0}, {Frame: 90, Value: 3}}
	child := nullModel("late", MatteNone)
	child.InFrame = 70
	l := newTestPrecomp(m, []*LayerModel{child}, nil)
	late := l.ChildLayers()[0].(*recordingLayer)

	for _, f := range []float64{10, 20, 45, 70} {
		if got := l.LocalFrame(f); got != f {
			t.Errorf("LocalFrame(%v) = %v, want %v", f, got, f)
		}
	}

	l.DisplayWithFrame(69, false)
	if !late.Contents().Hidden {
		t.Error("child should be hidden before its in frame")
	}
	l.DisplayWithFrame(70, false)
	if got := late.lastFrameSeen(); got != 70 {
		t.Errorf("child frame = %v, want 70", got)
	}
	if late.Contents().Hidden {
		t.Error("child should be shown on its in frame")
	}
}

func TestDisplayForcePropagates(t *testing.T) {
	l := newTestPrecomp(precompModel("comp"), []*LayerModel{nullModel("A", MatteNone)}, nil)
	child := l.ChildLayers()[0].(*recordingLayer)

	l.DisplayWithFrame(5, false)
	l.DisplayWithFrame(5, false)
	if len(child.frames) != 1 {
		t.Fatalf("child displayed %d times, want 1", len(child.frames))
	}
	l.DisplayWithFrame(5, true)
	if len(child.frames) != 2 || !child.forced[1] {
		t.Errorf("forced display not propagated: frames=%v forced=%v", child.frames, child.forced)
	}
}

func TestNestedPrecompTime(t *testing.T) {
	lib := NewAssetLibrary()
	lib.AddPrecomp(&PrecompAsset{ID: "inner", Layers: []*LayerModel{nullModel("leaf", MatteNone)}})
	ctx := &BuildContext{Assets: lib, Factory: recordingFactory(nil)}

	inner := &LayerModel{Name: "inner", Type: LayerTypePrecomp, ReferenceID: "inner", StartFrame: 5, Width: 10, Height: 10}
	outerModel := precompModel("outer")
	outerModel.StartFrame = 2
	outer := newTestPrecomp(outerModel, []*LayerModel{inner}, ctx)

	outer.DisplayWithFrame(20, false)
	in := outer.ChildLayers()[0].(*PreCompositionLayer)
	leaf := in.ChildLayers()[0].(*recordingLayer)
	// outer local 18, inner local 13
	if got := leaf.lastFrameSeen(); got != 13 {
		t.Errorf("leaf frame = %v, want 13", got)
	}
	if in.Bounds() != (Rect{0, 0, 100, 50}) {
		t.Errorf("inner bounds = %v, want outer bounds", in.Bounds())
	}
}

// --- Keypaths ---

func TestKeypathPropertiesWithoutRemap(t *testing.T) {
	l := newTestPrecomp(precompModel("comp"), []*LayerModel{nullModel("A", MatteNone), nullModel("B", MatteAdd)}, nil)
	if n := len(l.KeypathProperties()); n != 0 {
		t.Errorf("KeypathProperties has %d entries, want 0", n)
	}
	if l.TimeRemap() != nil {
		t.Error("TimeRemap should be nil")
	}
	if got := layerNames(l.ChildKeypaths()); got != "A,B" {
		t.Errorf("ChildKeypaths = %q, want %q", got, "A,B")
	}
}

func TestKeypathPropertiesWithRemap(t *testing.T) {
	m := precompModel("comp")
	m.TimeRemapping = []Keyframe{{Frame: 0, Value: 0}}
	l := newTestPrecomp(m, nil, nil)
	props := l.KeypathProperties()
	if len(props) != 1 {
		t.Fatalf("KeypathProperties has %d entries, want 1", len(props))
	}
	if props["Time Remap"] != l.TimeRemap() {
		t.Error(`"Time Remap" should be the time remap property`)
	}
}

// --- Render tree ---

func TestRenderTreeShape(t *testing.T) {
	l := newTestPrecomp(precompModel("comp"), []*LayerModel{
		nullModel("A", MatteNone),
		nullModel("B", MatteAdd),
		nullModel("C", MatteNone),
	}, nil)
	root := l.RenderTreeNode()
	if root.NumChildren() != 1 {
		t.Fatalf("root children = %d, want 1", root.NumChildren())
	}
	contents := root.ChildAt(0)
	if contents.NumChildren() != 1 {
		t.Fatalf("contents children = %d, want 1", contents.NumChildren())
	}
	group := contents.ChildAt(0)
	b, c := childByName(t, l, "B"), childByName(t, l, "C")
	// back to front: C first, B last
	if group.NumChildren() != 2 || group.ChildAt(0) != c.RenderTreeNode() || group.ChildAt(1) != b.RenderTreeNode() {
		t.Fatal("group should hold C then B")
	}
	if root.Mask() != nil {
		t.Error("unmatted precomp root should have no mask")
	}
	a := childByName(t, l, "A")
	if b.RenderTreeNode().Mask() != a.RenderTreeNode() || b.RenderTreeNode().InvertMask() {
		t.Error("B should be masked by A, not inverted")
	}
}

func TestRenderTreeStableAcrossFrames(t *testing.T) {
	l := newTestPrecomp(precompModel("comp"), []*LayerModel{nullModel("A", MatteNone), nullModel("B", MatteInvert)}, nil)
	root := l.RenderTreeNode()
	count := root.Count()
	for f := 0.0; f < 5; f++ {
		l.DisplayWithFrame(f, false)
		l.UpdateRenderTree()
		if l.RenderTreeNode() != root {
			t.Fatalf("frame %v: root node changed", f)
		}
		if root.Count() != count {
			t.Fatalf("frame %v: node count %d, want %d", f, root.Count(), count)
		}
	}
	if l.ChildLayers()[1].RenderTreeNode().InvertMask() != true {
		t.Error("Invert matte should set InvertMask")
	}
}

func TestMattedPrecompGetsMask(t *testing.T) {
	lib := NewAssetLibrary()
	lib.AddPrecomp(&PrecompAsset{ID: "inner", Layers: []*LayerModel{nullModel("leaf", MatteNone)}})
	ctx := &BuildContext{Assets: lib, Factory: recordingFactory(nil)}
	outer := newTestPrecomp(precompModel("outer"), []*LayerModel{
		nullModel("matte", MatteNone),
		{Name: "inner", Type: LayerTypePrecomp, ReferenceID: "inner", MatteType: MatteInvert},
	}, ctx)

	inner := outer.ChildLayers()[1]
	node := inner.RenderTreeNode()
	if node.Mask() != outer.ChildLayers()[0].RenderTreeNode() {
		t.Error("inner precomp root should be masked by the matte node")
	}
	if !node.InvertMask() {
		t.Error("InvertMask should be true")
	}
}

func TestUpdateRenderTreeValues(t *testing.T) {
	m := precompModel("comp")
	m.Transform.Opacity = []Keyframe{{Frame: 0, Value: 0}, {Frame: 10, Value: 1}}
	m.Transform.PositionX = []Keyframe{{Frame: 0, Value: 7}}
	l := newTestPrecomp(m, []*LayerModel{nullModel("A", MatteNone)}, nil)

	l.DisplayWithFrame(5, false)
	l.UpdateRenderTree()

	root := l.RenderTreeNode()
	contents := root.ChildAt(0)
	group := contents.ChildAt(0)
	if root.Alpha != 1 || root.IsHidden || root.MasksToBounds || !isIdentity3D(root.Transform) {
		t.Errorf("root should carry neutral own values, got %+v", *root)
	}
	if root.Bounds != (Rect{0, 0, 100, 50}) {
		t.Errorf("root Bounds = %v", root.Bounds)
	}
	assertNear(t, "contents.Alpha", contents.Alpha, 0.5)
	if !contents.MasksToBounds || contents.Bounds != (Rect{0, 0, 100, 50}) {
		t.Errorf("contents should clip to precomp bounds, got %+v", *contents)
	}
	assertNear(t, "contents tx", contents.Transform.At(0, 3), 7)
	if group.Alpha != 1 || !isIdentity3D(group.Transform) {
		t.Error("group node should stay identity")
	}
}

func TestOutOfRangeHidesContents(t *testing.T) {
	m := precompModel("comp")
	m.InFrame = 10
	m.OutFrame = 20
	l := newTestPrecomp(m, nil, nil)
	contents := l.RenderTreeNode().ChildAt(0)

	l.DisplayWithFrame(5, false)
	l.UpdateRenderTree()
	if !contents.IsHidden {
		t.Error("contents should be hidden before InFrame")
	}
	l.DisplayWithFrame(15, false)
	l.UpdateRenderTree()
	if contents.IsHidden {
		t.Error("contents should be shown between InFrame and OutFrame")
	}
	l.DisplayWithFrame(25, false)
	l.UpdateRenderTree()
	if !contents.IsHidden {
		t.Error("contents should be hidden after OutFrame")
	}
}

func TestSyncOrderMatteFirst(t *testing.T) {
	var syncs []string
	l := newTestPrecomp(precompModel("comp"), []*LayerModel{
		nullModel("A", MatteNone),
		nullModel("B", MatteAdd),
		nullModel("C", MatteNone),
	}, &BuildContext{Factory: recordingFactory(&syncs)})

	l.DisplayWithFrame(0, false)
	l.UpdateRenderTree()

	index := func(name string) int {
		for i, s := range syncs {
			if s == name {
				return i
			}
		}
		t.Fatalf("%s not synchronized: %v", name, syncs)
		return -1
	}
	if index("A") > index("B") {
		t.Errorf("matte synchronized after matted layer: %v", syncs)
	}
	index("C")
}

func TestPrecompMatteSyncedFirst(t *testing.T) {
	var syncs []string
	lib := NewAssetLibrary()
	lib.AddPrecomp(&PrecompAsset{ID: "inner", Layers: []*LayerModel{nullModel("leaf", MatteNone)}})
	ctx := &BuildContext{Assets: lib, Factory: recordingFactory(&syncs)}
	outer := newTestPrecomp(precompModel("outer"), []*LayerModel{
		nullModel("matte", MatteNone),
		{Name: "inner", Type: LayerTypePrecomp, ReferenceID: "inner", MatteType: MatteAdd},
	}, ctx)

	outer.DisplayWithFrame(0, false)
	outer.UpdateRenderTree()
	if len(syncs) < 2 || syncs[0] != "matte" || syncs[1] != "leaf" {
		t.Errorf("sync order = %v, want matte before leaf", syncs)
	}
}

func TestSetChildActive(t *testing.T) {
	var syncs []string
	l := newTestPrecomp(precompModel("comp"), []*LayerModel{
		nullModel("A", MatteNone),
		nullModel("B", MatteNone),
	}, &BuildContext{Factory: recordingFactory(&syncs)})
	l.DisplayWithFrame(0, false)

	l.SetChildActive(0, false)
	if l.IsChildActive(0) {
		t.Fatal("child 0 should be inactive")
	}
	l.UpdateRenderTree()
	if len(syncs) != 1 || syncs[0] != "B" {
		t.Errorf("syncs = %v, want only B", syncs)
	}
	a := l.ChildLayers()[0]
	if !a.RenderTreeNode().IsHidden {
		t.Error("inactive child should be published hidden")
	}
	if l.RenderTreeNode().ChildAt(0).ChildAt(0).NumChildren() != 2 {
		t.Error("render tree shape should not change")
	}

	l.SetChildActive(0, true)
	l.UpdateRenderTree()
	if a.RenderTreeNode().IsHidden {
		t.Error("reactivated child should be shown")
	}
}

func TestSetChildActivePanics(t *testing.T) {
	l := newTestPrecomp(precompModel("comp"), []*LayerModel{
		nullModel("A", MatteNone),
		nullModel("B", MatteAdd),
	}, nil)
	expectPanic(t, "matte source", func() { l.SetChildActive(0, true) })
	expectPanic(t, "out of range", func() { l.SetChildActive(5, true) })
}

func TestUpdateRenderTreePanicsOnNonNeutralValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *PreCompositionLayer)
		want   string
	}{
		{"opacity", func(l *PreCompositionLayer) { l.SetOpacity(0.5) }, "opacity 0.5"},
		{"hidden", func(l *PreCompositionLayer) { l.SetHidden(true) }, "is hidden"},
		{"clip", func(l *PreCompositionLayer) { l.SetMasksToBounds(true) }, "clips"},
		{"transform", func(l *PreCompositionLayer) { l.SetTransform(mgl64.Translate3D(1, 0, 0)) }, "non-identity transform"},
		{"position", func(l *PreCompositionLayer) { l.SetPosition(Vec2{1, 2}) }, "position"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newTestPrecomp(precompModel("comp"), []*LayerModel{nullModel("A", MatteNone)}, nil)
			tt.mutate(l)
			expectPanic(t, tt.want, l.UpdateRenderTree)
		})
	}
}

// --- Factory interplay ---

func TestRecursivePrecompSkipped(t *testing.T) {
	lib := NewAssetLibrary()
	lib.AddPrecomp(&PrecompAsset{ID: "loop", Layers: []*LayerModel{
		{Name: "self", Type: LayerTypePrecomp, ReferenceID: "loop"},
		nullModel("leaf", MatteNone),
	}})
	ctx := &BuildContext{Assets: lib, Factory: recordingFactory(nil)}
	outer := newTestPrecomp(precompModel("outer"), []*LayerModel{
		{Name: "loop", Type: LayerTypePrecomp, ReferenceID: "loop"},
	}, ctx)

	if outer.NumChildren() != 1 {
		t.Fatalf("outer children = %d, want 1", outer.NumChildren())
	}
	loop := outer.ChildLayers()[0].(*PreCompositionLayer)
	if got := layerNames(loop.ChildLayers()); got != "leaf" {
		t.Errorf("recursive reference should be skipped, children = %q", got)
	}
	if len(ctx.building) != 0 {
		t.Errorf("build stack not unwound: %v", ctx.building)
	}
}

func TestMissingPrecompAssetSkipped(t *testing.T) {
	l := newTestPrecomp(precompModel("comp"), []*LayerModel{
		{Name: "ghost", Type: LayerTypePrecomp, ReferenceID: "nope"},
		nullModel("A", MatteNone),
	}, nil)
	if got := layerNames(l.ChildLayers()); got != "A" {
		t.Errorf("ChildLayers = %q, want %q", got, "A")
	}
}
