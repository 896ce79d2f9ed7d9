// Package track answers fractional-frame queries against keyframe timelines.
//
// A query locates the bracketing pair of keyframes around the frame and blends
// them: cubic Hermite when both facing tangents are present, linear
// otherwise. Before the first keyframe the first value is held. Past the last
// keyframe the last value is held, or with looping enabled the last keyframe
// blends back into the first one a loop period later.
package track

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/animtrack/internal/interp"
	"github.com/ivlev/animtrack/internal/keyframes"
	"github.com/ivlev/animtrack/internal/mathx"
)

// ErrNoKeyframes is the panic value of GetInterpolatedFrame on a track that
// never received a keyframe.
var ErrNoKeyframes = errors.New("track has no keyframes")

// Config controls a single interpolation query. The zero value holds at both
// ends and blends linearly.
type Config struct {
	UseLoopingInterpolation bool
	// FrameCount is the loop period. When zero, the period ends one frame
	// after the last keyframe.
	FrameCount int
	// Easing reshapes t for linear blends. Hermite blends ignore it.
	Easing func(float64) float64
}

// Sample is one side of a bracket.
type Sample[T any] struct {
	Frame   float64
	Value   T
	Tangent Tangent
}

// Bracket is the pair of samples a query blends between. HasTo is false at a
// held boundary, where From alone is the answer.
type Bracket[T any] struct {
	From  Sample[T]
	To    Sample[T]
	HasTo bool
	// Period is the loop length when the bracket wraps from the last
	// keyframe to the first, zero otherwise.
	Period float64
}

// Interpolated is anything that can be sampled at a fractional frame.
type Interpolated[T any] interface {
	HasAtLeastOneKeyframe() bool
	TryGetInterpolatedFrame(frame float64, cfg Config) (T, bool)
}

// Track is a combined channel: one timeline holding whole values of T.
type Track[T any] struct {
	timeline     *keyframes.Timeline[ValueAndTangents[T]]
	interpolator interp.Interpolator[T]
}

// New creates an empty track blending with interpolator.
func New[T any](interpolator interp.Interpolator[T], initialCapacity int) *Track[T] {
	return &Track[T]{
		timeline:     keyframes.NewTimeline[ValueAndTangents[T]](initialCapacity),
		interpolator: interpolator,
	}
}

func NewFloat(initialCapacity int) *Track[float64] {
	return New[float64](interp.Float{}, initialCapacity)
}

func NewVec3(initialCapacity int) *Track[mathx.Vec3] {
	return New[mathx.Vec3](interp.Vec3{}, initialCapacity)
}

func NewQuat(initialCapacity int) *Track[mathx.Quat] {
	return New[mathx.Quat](interp.Quat{}, initialCapacity)
}

func NewColor(space interp.BlendSpace, initialCapacity int) *Track[colorful.Color] {
	return New[colorful.Color](interp.Color{Space: space}, initialCapacity)
}

func (t *Track[T]) HasAtLeastOneKeyframe() bool {
	return t.timeline.HasAtLeastOneKeyframe()
}

// Keyframes returns a copy of the sorted keyframes.
func (t *Track[T]) Keyframes() []keyframes.Keyframe[ValueAndTangents[T]] {
	return t.timeline.Definitions()
}

// Stats returns the lookup counters of the track's own cursor.
func (t *Track[T]) Stats() keyframes.Stats {
	return t.timeline.Stats()
}

// Set stores a tangent-less keyframe.
func (t *Track[T]) Set(frame int, value T) {
	t.timeline.Set(frame, Value(value))
}

func (t *Track[T]) SetKeyframe(frame int, v ValueAndTangents[T], tag string) {
	t.timeline.SetKeyframe(frame, v, tag)
}

// SetAllKeyframes replaces the track with one tangent-less keyframe per value.
func (t *Track[T]) SetAllKeyframes(values []T) {
	wrapped := make([]ValueAndTangents[T], len(values))
	for i, v := range values {
		wrapped[i] = Value(v)
	}
	t.timeline.SetAllKeyframes(wrapped)
}

// GetKeyframe returns the keyframe at exactly frame.
func (t *Track[T]) GetKeyframe(frame int) (keyframes.Keyframe[ValueAndTangents[T]], bool) {
	return t.timeline.ExactLookup(frame)
}

func (t *Track[T]) TryGetInterpolationData(frame float64, cfg Config) (Bracket[T], bool) {
	if !t.HasAtLeastOneKeyframe() {
		return Bracket[T]{}, false
	}
	b, _, ok := bracket[T](t.timeline, frame, cfg)
	return b, ok
}

func (t *Track[T]) TryGetInterpolatedFrame(frame float64, cfg Config) (T, bool) {
	if !t.HasAtLeastOneKeyframe() {
		var zero T
		return zero, false
	}
	return interpolate[T](t.timeline, t.interpolator, frame, cfg)
}

// GetInterpolatedFrame is TryGetInterpolatedFrame for callers that know the
// track is populated. It panics otherwise.
func (t *Track[T]) GetInterpolatedFrame(frame float64, cfg Config) T {
	v, ok := t.TryGetInterpolatedFrame(frame, cfg)
	if !ok {
		panic(fmt.Errorf("frame %v: %w", frame, ErrNoKeyframes))
	}
	return v
}

// NewReader returns a read-only fork with its own lookup cursor.
func (t *Track[T]) NewReader() *Reader[T] {
	return &Reader[T]{track: t, view: t.timeline.NewReader()}
}

// Reader samples a Track without touching the track's cursor. Readers may be
// used from different goroutines while the track is not being written.
type Reader[T any] struct {
	track *Track[T]
	view  *keyframes.Reader[ValueAndTangents[T]]
}

func (r *Reader[T]) HasAtLeastOneKeyframe() bool {
	return r.track.HasAtLeastOneKeyframe()
}

func (r *Reader[T]) Stats() keyframes.Stats {
	return r.view.Stats()
}

func (r *Reader[T]) TryGetInterpolationData(frame float64, cfg Config) (Bracket[T], bool) {
	if !r.HasAtLeastOneKeyframe() {
		return Bracket[T]{}, false
	}
	b, _, ok := bracket[T](r.view, frame, cfg)
	return b, ok
}

func (r *Reader[T]) TryGetInterpolatedFrame(frame float64, cfg Config) (T, bool) {
	if !r.HasAtLeastOneKeyframe() {
		var zero T
		return zero, false
	}
	return interpolate[T](r.view, r.track.interpolator, frame, cfg)
}

func interpolate[T any](view keyframes.View[ValueAndTangents[T]], interpolator interp.Interpolator[T], frame float64, cfg Config) (T, bool) {
	b, wrapped, ok := bracket[T](view, frame, cfg)
	if !ok {
		var zero T
		return zero, false
	}
	return blend(interpolator, b, wrapped, cfg), true
}

// bracket also returns the frame it looked up, which differs from frame when
// a looping query lies in a later cycle.
func bracket[T any](view keyframes.View[ValueAndTangents[T]], frame float64, cfg Config) (Bracket[T], float64, bool) {
	if view.Len() == 0 {
		return Bracket[T]{}, frame, false
	}

	first := view.GetAtIndex(0)
	if cfg.UseLoopingInterpolation {
		frame = wrapLoop(frame, first.Frame, view.GetAtIndex(view.Len()-1).Frame, cfg)
	}

	floor := view.FloorLookup(floorFrame(frame))
	if !floor.Found {
		return Bracket[T]{From: incoming(first)}, frame, true
	}

	from := outgoing(floor.Keyframe)
	if !floor.IsLast {
		return Bracket[T]{From: from, To: incoming(view.GetAtIndex(floor.Index + 1)), HasTo: true}, frame, true
	}

	if !cfg.UseLoopingInterpolation {
		return Bracket[T]{From: from}, frame, true
	}

	period := loopPeriod(first.Frame, floor.Keyframe.Frame, cfg)

	to := incoming(first)
	to.Frame = float64(first.Frame + period)
	if to.Frame <= from.Frame {
		// The loop period ends before the last keyframe; nothing to wrap to.
		return Bracket[T]{From: from}, frame, true
	}

	return Bracket[T]{From: from, To: to, HasTo: true, Period: float64(period)}, frame, true
}

func loopPeriod(first, last int, cfg Config) int {
	if cfg.FrameCount > 0 {
		return cfg.FrameCount
	}
	return last - first + 1
}

// wrapLoop maps a frame at or past the end of the first cycle back into
// [first, first+period). Frames before the first keyframe are left alone,
// as is everything when the period ends before the last keyframe.
func wrapLoop(frame float64, first, last int, cfg Config) float64 {
	period := loopPeriod(first, last, cfg)
	end := float64(first + period)
	if first+period <= last || !(frame >= end) || math.IsInf(frame, 1) {
		return frame
	}
	return float64(first) + math.Mod(frame-float64(first), float64(period))
}

func blend[T any](interpolator interp.Interpolator[T], b Bracket[T], frame float64, cfg Config) T {
	if !b.HasTo {
		return b.From.Value
	}

	span := b.To.Frame - b.From.Frame
	offset := frame - b.From.Frame
	if b.Period > 0 {
		offset = math.Mod(offset, b.Period)
		if offset < 0 {
			offset += b.Period
		}
	}
	t := interp.Clamp01(offset / span)

	m0, fromOk := b.From.Tangent.Get()
	m1, toOk := b.To.Tangent.Get()
	if fromOk && toOk {
		return interpolator.Hermite(b.From.Value, b.To.Value, m0, m1, t, span)
	}

	if cfg.Easing != nil {
		t = cfg.Easing(t)
	}
	return interpolator.Lerp(b.From.Value, b.To.Value, t)
}

func incoming[T any](kf keyframes.Keyframe[ValueAndTangents[T]]) Sample[T] {
	return Sample[T]{Frame: float64(kf.Frame), Value: kf.Value.IncomingValue, Tangent: kf.Value.IncomingTangent}
}

func outgoing[T any](kf keyframes.Keyframe[ValueAndTangents[T]]) Sample[T] {
	return Sample[T]{Frame: float64(kf.Frame), Value: kf.Value.OutgoingValue, Tangent: kf.Value.OutgoingTangent}
}

func floorFrame(frame float64) int {
	f := math.Floor(frame)
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}
