package clip

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/animtrack/internal/keyframes"
	"github.com/ivlev/animtrack/internal/mathx"
	"github.com/ivlev/animtrack/internal/track"
)

// Channel is a built track with its value type erased, so tooling can sample
// channels of any kind uniformly.
type Channel interface {
	Name() string
	Kind() Kind
	// Dim is the length of a sampled value.
	Dim() int
	HasAtLeastOneKeyframe() bool
	// SampleInto appends the value at frame to dst.
	SampleInto(dst []float64, frame float64, cfg track.Config) ([]float64, bool)
	Sample(frame float64, cfg track.Config) ([]float64, bool)
	// Fork returns a channel over the same keyframes with its own cursors.
	Fork() Channel
	// Definitions lists the stored keyframes as plain numbers.
	Definitions() []GoldenKey
}

type channel[T any] struct {
	name    string
	kind    Kind
	source  track.Interpolated[T]
	fork    func() track.Interpolated[T]
	flatten func(dst []float64, v T) []float64
	defs    func() []GoldenKey
}

func (c *channel[T]) Name() string { return c.name }
func (c *channel[T]) Kind() Kind   { return c.kind }
func (c *channel[T]) Dim() int     { return c.kind.Dim() }

func (c *channel[T]) HasAtLeastOneKeyframe() bool {
	return c.source.HasAtLeastOneKeyframe()
}

func (c *channel[T]) SampleInto(dst []float64, frame float64, cfg track.Config) ([]float64, bool) {
	v, ok := c.source.TryGetInterpolatedFrame(frame, cfg)
	if !ok {
		return dst, false
	}
	return c.flatten(dst, v), true
}

func (c *channel[T]) Sample(frame float64, cfg track.Config) ([]float64, bool) {
	return c.SampleInto(make([]float64, 0, c.Dim()), frame, cfg)
}

func (c *channel[T]) Fork() Channel {
	forked := *c
	forked.source = c.fork()
	return &forked
}

func (c *channel[T]) Definitions() []GoldenKey {
	return c.defs()
}

func combinedChannel[T any](name string, kind Kind, tr *track.Track[T], flatten func([]float64, T) []float64) Channel {
	return &channel[T]{
		name:    name,
		kind:    kind,
		source:  tr,
		fork:    func() track.Interpolated[T] { return tr.NewReader() },
		flatten: flatten,
		defs: func() []GoldenKey {
			return goldenKeys(tr.Keyframes(), nil, flatten)
		},
	}
}

func axesChannel[T any](name string, kind Kind, tr *track.AxesTrack[T], flatten func([]float64, T) []float64) Channel {
	return &channel[T]{
		name:    name,
		kind:    kind,
		source:  tr,
		fork:    func() track.Interpolated[T] { return tr.NewReader() },
		flatten: flatten,
		defs: func() []GoldenKey {
			var keys []GoldenKey
			for i := 0; i < tr.AxisCount(); i++ {
				axis := i
				keys = append(keys, goldenKeys(tr.Axis(i).Keyframes(), &axis, appendFloat)...)
			}
			return keys
		},
	}
}

func goldenKeys[T any](kfs []keyframes.Keyframe[track.ValueAndTangents[T]], axis *int, flatten func([]float64, T) []float64) []GoldenKey {
	keys := make([]GoldenKey, len(kfs))
	for i, kf := range kfs {
		in := flatten(nil, kf.Value.IncomingValue)
		out := flatten(nil, kf.Value.OutgoingValue)
		if equalFloats(in, out) {
			out = nil
		}
		keys[i] = GoldenKey{
			Frame:      kf.Frame,
			Axis:       axis,
			Value:      in,
			OutValue:   out,
			InTangent:  tangentPtr(kf.Value.IncomingTangent),
			OutTangent: tangentPtr(kf.Value.OutgoingTangent),
			Tag:        kf.Tag,
		}
	}
	return keys
}

func tangentPtr(t track.Tangent) *float64 {
	v, ok := t.Get()
	if !ok {
		return nil
	}
	return &v
}

func equalFloats(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func appendFloat(dst []float64, v float64) []float64 {
	return append(dst, v)
}

func appendVec3(dst []float64, v mathx.Vec3) []float64 {
	return append(dst, v.X, v.Y, v.Z)
}

func appendQuat(dst []float64, q mathx.Quat) []float64 {
	return append(dst, q.X, q.Y, q.Z, q.W)
}

func appendColor(dst []float64, c colorful.Color) []float64 {
	return append(dst, c.R, c.G, c.B)
}
