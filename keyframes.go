package lottie

import (
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Keyframe is one key of a scalar animation curve.
type Keyframe struct {
	Frame float64
	Value float64
	// Hold keeps Value until the next keyframe instead of interpolating.
	Hold bool
	// Ease shapes the segment toward the next keyframe. Nil means ease.Linear.
	Ease ease.TweenFunc
}

// KeyframeInterpolator evaluates a keyframe curve at arbitrary frames.
// Linear segments are interpolated directly in float64. An eased segment
// keeps a normalized gween.Tween (0 to 1 over a duration of 1) that only
// supplies the easing shape; the value range is scaled in float64 so whole
// frames stay exact.
type KeyframeInterpolator struct {
	keyframes []Keyframe
	segments  []*gween.Tween // nil for linear segments
}

// NewKeyframeInterpolator returns an interpolator over a copy of keyframes
// sorted by frame.
func NewKeyframeInterpolator(keyframes []Keyframe) *KeyframeInterpolator {
	kfs := make([]Keyframe, len(keyframes))
	copy(kfs, keyframes)
	sort.SliceStable(kfs, func(i, j int) bool { return kfs[i].Frame < kfs[j].Frame })

	k := &KeyframeInterpolator{keyframes: kfs}
	if len(kfs) > 1 {
		k.segments = make([]*gween.Tween, len(kfs)-1)
		for i := range k.segments {
			if fn := kfs[i].Ease; fn != nil {
				k.segments[i] = gween.New(0, 1, 1, fn)
			}
		}
	}
	return k
}

// Keyframes returns the sorted keyframes. The returned slice MUST NOT be mutated.
func (k *KeyframeInterpolator) Keyframes() []Keyframe {
	return k.keyframes
}

// ValueAt returns the curve value at frame. Frames before the first or after
// the last keyframe clamp to that keyframe's value. An empty curve is 0.
func (k *KeyframeInterpolator) ValueAt(frame float64) float64 {
	n := len(k.keyframes)
	if n == 0 {
		return 0
	}
	if frame <= k.keyframes[0].Frame {
		return k.keyframes[0].Value
	}
	if frame >= k.keyframes[n-1].Frame {
		return k.keyframes[n-1].Value
	}
	// First keyframe strictly after frame; the segment starts one before it.
	i := sort.Search(n, func(i int) bool { return k.keyframes[i].Frame > frame }) - 1
	from, to := k.keyframes[i], k.keyframes[i+1]
	if from.Hold || frame == from.Frame {
		return from.Value
	}
	if to.Frame <= from.Frame {
		return to.Value
	}
	span := to.Frame - from.Frame
	delta := to.Value - from.Value
	seg := k.segments[i]
	if seg == nil {
		return from.Value + (frame-from.Frame)*delta/span
	}
	progress, _ := seg.Set(float32((frame - from.Frame) / span))
	return from.Value + float64(progress)*delta
}

// ValueProvider overrides an animated property from outside the animation.
type ValueProvider interface {
	ValueAt(frame float64) float64
}

// ValueFunc adapts a function to ValueProvider.
type ValueFunc func(frame float64) float64

// ValueAt calls f(frame).
func (f ValueFunc) ValueAt(frame float64) float64 { return f(frame) }

// AnimatedProperty is a scalar property evaluated once per frame. It is the
// handle exposed through keypaths.
type AnimatedProperty struct {
	interp   *KeyframeInterpolator
	provider ValueProvider
	value    float64
	frame    float64
	valid    bool
}

// NewAnimatedProperty creates a property driven by a keyframe curve.
func NewAnimatedProperty(keyframes []Keyframe) *AnimatedProperty {
	p := &AnimatedProperty{interp: NewKeyframeInterpolator(keyframes)}
	if len(keyframes) > 0 {
		p.value = p.interp.keyframes[0].Value
	}
	return p
}

// StaticProperty creates a property that always evaluates to v.
func StaticProperty(v float64) *AnimatedProperty {
	return NewAnimatedProperty([]Keyframe{{Value: v}})
}

// propertyFrom returns a property for an optional curve, falling back to a
// static def when the curve is empty.
func propertyFrom(keyframes []Keyframe, def float64) *AnimatedProperty {
	if len(keyframes) == 0 {
		return StaticProperty(def)
	}
	return NewAnimatedProperty(keyframes)
}

// Update evaluates the property at frame and reports whether the value
// changed. Repeated calls with the same frame are free.
func (p *AnimatedProperty) Update(frame float64) bool {
	if p.valid && frame == p.frame {
		return false
	}
	var v float64
	if p.provider != nil {
		v = p.provider.ValueAt(frame)
	} else {
		v = p.interp.ValueAt(frame)
	}
	changed := !p.valid || v != p.value
	p.value = v
	p.frame = frame
	p.valid = true
	return changed
}

// Value returns the value computed by the last Update.
func (p *AnimatedProperty) Value() float64 {
	return p.value
}

// IsAnimated reports whether the value can differ between frames.
func (p *AnimatedProperty) IsAnimated() bool {
	return p.provider != nil || len(p.interp.keyframes) > 1
}

// Keyframes returns the underlying curve.
func (p *AnimatedProperty) Keyframes() []Keyframe {
	return p.interp.keyframes
}

// SetValueProvider overrides the curve. Pass nil to restore it. The next
// Update re-evaluates even if the frame did not change.
func (p *AnimatedProperty) SetValueProvider(vp ValueProvider) {
	p.provider = vp
	p.valid = false
}
