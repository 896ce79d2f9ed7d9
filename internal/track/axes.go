package track

import (
	"fmt"

	"github.com/ivlev/animtrack/internal/mathx"
)

// AxesTrack stores each component on its own float timeline, for channels
// authored per axis with different keyframe sets. Each axis is interpolated
// independently and the results are assembled into T.
type AxesTrack[T any] struct {
	axes     []*Track[float64]
	defaults []float64
	assemble func([]float64) T
}

// NewAxesTrack creates a track with one timeline per default value. An axis
// that never receives a keyframe contributes its default.
func NewAxesTrack[T any](defaults []float64, assemble func([]float64) T, initialCapacity int) *AxesTrack[T] {
	axes := make([]*Track[float64], len(defaults))
	for i := range axes {
		axes[i] = NewFloat(initialCapacity)
	}
	return &AxesTrack[T]{
		axes:     axes,
		defaults: append([]float64(nil), defaults...),
		assemble: assemble,
	}
}

// NewSeparatePositionTrack is an X/Y/Z position with axes defaulting to 0.
func NewSeparatePositionTrack(initialCapacity int) *AxesTrack[mathx.Vec3] {
	return NewAxesTrack([]float64{0, 0, 0}, vec3FromAxes, initialCapacity)
}

// NewScaleTrack is an X/Y/Z scale with axes defaulting to 1.
func NewScaleTrack(initialCapacity int) *AxesTrack[mathx.Vec3] {
	return NewAxesTrack([]float64{1, 1, 1}, vec3FromAxes, initialCapacity)
}

// EulerConverter turns per-axis radians into a rotation.
type EulerConverter func(xRadians, yRadians, zRadians float64) mathx.Quat

// NewEulerRotationTrack interpolates X/Y/Z radians separately and converts
// the result to a quaternion. A nil convert uses ZYX order.
func NewEulerRotationTrack(convert EulerConverter, initialCapacity int) *AxesTrack[mathx.Quat] {
	if convert == nil {
		convert = mathx.QuatFromEulerZYX
	}
	return NewAxesTrack([]float64{0, 0, 0}, func(v []float64) mathx.Quat {
		return convert(v[0], v[1], v[2])
	}, initialCapacity)
}

// NewQuaternionAxesTrack interpolates X/Y/Z/W separately and renormalizes.
func NewQuaternionAxesTrack(initialCapacity int) *AxesTrack[mathx.Quat] {
	return NewAxesTrack([]float64{0, 0, 0, 1}, func(v []float64) mathx.Quat {
		return mathx.Quat{X: v[0], Y: v[1], Z: v[2], W: v[3]}.Normalize()
	}, initialCapacity)
}

func vec3FromAxes(v []float64) mathx.Vec3 {
	return mathx.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

// AxisCount returns the number of component timelines.
func (a *AxesTrack[T]) AxisCount() int {
	return len(a.axes)
}

// Axis returns the track of one component. It panics if axis is out of range.
func (a *AxesTrack[T]) Axis(axis int) *Track[float64] {
	return a.axes[axis]
}

func (a *AxesTrack[T]) HasAtLeastOneKeyframe() bool {
	for _, axis := range a.axes {
		if axis.HasAtLeastOneKeyframe() {
			return true
		}
	}
	return false
}

// Set stores a keyframe on one axis.
func (a *AxesTrack[T]) Set(frame, axis int, v ValueAndTangents[float64], tag string) {
	a.axes[axis].SetKeyframe(frame, v, tag)
}

// SetAll stores a tangent-less keyframe on every axis at once.
func (a *AxesTrack[T]) SetAll(frame int, values ...float64) error {
	if len(values) != len(a.axes) {
		return fmt.Errorf("got %d values for %d axes", len(values), len(a.axes))
	}
	for i, v := range values {
		a.axes[i].Set(frame, v)
	}
	return nil
}

func (a *AxesTrack[T]) TryGetInterpolatedFrame(frame float64, cfg Config) (T, bool) {
	return interpolateAxes(a.axes, a.defaults, a.assemble, frame, cfg)
}

func (a *AxesTrack[T]) GetInterpolatedFrame(frame float64, cfg Config) T {
	v, ok := a.TryGetInterpolatedFrame(frame, cfg)
	if !ok {
		panic(fmt.Errorf("frame %v: %w", frame, ErrNoKeyframes))
	}
	return v
}

// NewReader forks every axis so the result can be sampled independently.
func (a *AxesTrack[T]) NewReader() *AxesReader[T] {
	axes := make([]*Reader[float64], len(a.axes))
	for i, axis := range a.axes {
		axes[i] = axis.NewReader()
	}
	return &AxesReader[T]{track: a, axes: axes}
}

// AxesReader is the AxesTrack counterpart of Reader.
type AxesReader[T any] struct {
	track *AxesTrack[T]
	axes  []*Reader[float64]
}

func (r *AxesReader[T]) HasAtLeastOneKeyframe() bool {
	return r.track.HasAtLeastOneKeyframe()
}

func (r *AxesReader[T]) TryGetInterpolatedFrame(frame float64, cfg Config) (T, bool) {
	return interpolateAxes(r.axes, r.track.defaults, r.track.assemble, frame, cfg)
}

func interpolateAxes[T any, A Interpolated[float64]](axes []A, defaults []float64, assemble func([]float64) T, frame float64, cfg Config) (T, bool) {
	values := make([]float64, len(axes))
	found := false
	for i, axis := range axes {
		v, ok := axis.TryGetInterpolatedFrame(frame, cfg)
		if !ok {
			values[i] = defaults[i]
			continue
		}
		values[i] = v
		found = true
	}

	if !found {
		var zero T
		return zero, false
	}
	return assemble(values), true
}
