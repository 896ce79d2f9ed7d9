package clip

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/animtrack/internal/interp"
	"github.com/ivlev/animtrack/internal/mathx"
	"github.com/ivlev/animtrack/internal/track"
)

// Animation is a clip turned into live tracks.
type Animation struct {
	Name       string
	FrameCount int
	FPS        float64
	Looping    bool
	Channels   []Channel
}

// Config is the interpolation config the clip asks for.
func (a *Animation) Config() track.Config {
	return track.Config{
		UseLoopingInterpolation: a.Looping,
		FrameCount:              a.FrameCount,
	}
}

// Channel finds a channel by name.
func (a *Animation) Channel(name string) (Channel, bool) {
	for _, ch := range a.Channels {
		if ch.Name() == name {
			return ch, true
		}
	}
	return nil, false
}

// LastFrame is the highest keyed frame across all channels, 0 when nothing
// is keyed.
func (a *Animation) LastFrame() int {
	last, keyed := 0, false
	for _, ch := range a.Channels {
		for _, kf := range ch.Definitions() {
			if !keyed || kf.Frame > last {
				last, keyed = kf.Frame, true
			}
		}
	}
	return last
}

// Fork returns an animation whose channels have their own cursors.
func (a *Animation) Fork() *Animation {
	forked := *a
	forked.Channels = make([]Channel, len(a.Channels))
	for i, ch := range a.Channels {
		forked.Channels[i] = ch.Fork()
	}
	return &forked
}

// Build validates the clip and creates one channel per track.
func Build(c *Clip) (*Animation, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	anim := &Animation{
		Name:       c.Name,
		FrameCount: c.FrameCount,
		FPS:        c.FPS,
		Looping:    c.Looping,
		Channels:   make([]Channel, 0, len(c.Tracks)),
	}

	for i := range c.Tracks {
		ch, err := buildChannel(&c.Tracks[i])
		if err != nil {
			return nil, fmt.Errorf("track %q: %w", c.Tracks[i].Name, err)
		}
		anim.Channels = append(anim.Channels, ch)
	}

	return anim, nil
}

func buildChannel(td *TrackDef) (Channel, error) {
	n := len(td.Keyframes)

	switch td.Kind {
	case KindFloat:
		tr := track.NewFloat(n)
		for _, kf := range td.Keyframes {
			tr.SetKeyframe(kf.Frame, keyValue(kf, first), kf.Tag)
		}
		return combinedChannel(td.Name, td.Kind, tr, appendFloat), nil

	case KindVec3:
		tr := track.NewVec3(n)
		for _, kf := range td.Keyframes {
			tr.SetKeyframe(kf.Frame, keyValue(kf, vec3), kf.Tag)
		}
		return combinedChannel(td.Name, td.Kind, tr, appendVec3), nil

	case KindQuat:
		tr := track.NewQuat(n)
		for _, kf := range td.Keyframes {
			tr.SetKeyframe(kf.Frame, keyValue(kf, quat), kf.Tag)
		}
		return combinedChannel(td.Name, td.Kind, tr, appendQuat), nil

	case KindColor:
		space, err := interp.ParseBlendSpace(td.Blend)
		if err != nil {
			return nil, err
		}
		tr := track.NewColor(space, n)
		for _, kf := range td.Keyframes {
			v, err := colorValue(kf)
			if err != nil {
				return nil, err
			}
			tr.SetKeyframe(kf.Frame, v, kf.Tag)
		}
		return combinedChannel(td.Name, td.Kind, tr, appendColor), nil

	case KindPosition:
		tr := track.NewSeparatePositionTrack(n)
		setAxes(tr, td.Keyframes)
		return axesChannel(td.Name, td.Kind, tr, appendVec3), nil

	case KindScale:
		tr := track.NewScaleTrack(n)
		setAxes(tr, td.Keyframes)
		return axesChannel(td.Name, td.Kind, tr, appendVec3), nil

	case KindEuler:
		tr := track.NewEulerRotationTrack(nil, n)
		setAxes(tr, td.Keyframes)
		return axesChannel(td.Name, td.Kind, tr, appendQuat), nil

	case KindQuatAxes:
		tr := track.NewQuaternionAxesTrack(n)
		setAxes(tr, td.Keyframes)
		return axesChannel(td.Name, td.Kind, tr, appendQuat), nil
	}

	return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidClip, td.Kind)
}

func setAxes[T any](tr *track.AxesTrack[T], kfs []KeyframeDef) {
	for _, kf := range kfs {
		if kf.Axis != nil {
			tr.Set(kf.Frame, *kf.Axis, keyValue(kf, first), kf.Tag)
			continue
		}

		for axis := 0; axis < tr.AxisCount(); axis++ {
			pick := func(v []float64) float64 { return v[axis] }
			tr.Set(kf.Frame, axis, keyValue(kf, pick), kf.Tag)
		}
	}
}

// keyValue converts the numbers of a validated keyframe with conv.
func keyValue[T any](kf KeyframeDef, conv func([]float64) T) track.ValueAndTangents[T] {
	in := conv(kf.Value)
	out := in
	if len(kf.OutValue) > 0 {
		out = conv(kf.OutValue)
	}
	return withTangents(track.SplitValue(in, out), kf)
}

func colorValue(kf KeyframeDef) (track.ValueAndTangents[colorful.Color], error) {
	if kf.Color == "" {
		return keyValue(kf, rgb), nil
	}

	in, err := parseColor(kf.Color)
	if err != nil {
		return track.ValueAndTangents[colorful.Color]{}, err
	}
	out := in
	if kf.OutColor != "" {
		if out, err = parseColor(kf.OutColor); err != nil {
			return track.ValueAndTangents[colorful.Color]{}, err
		}
	}
	return withTangents(track.SplitValue(in, out), kf), nil
}

// withTangents applies tangent first, then the one-sided overrides.
func withTangents[T any](v track.ValueAndTangents[T], kf KeyframeDef) track.ValueAndTangents[T] {
	in := track.TangentFrom(kf.Tangent)
	out := in
	if kf.InTangent != nil {
		in = track.SomeTangent(*kf.InTangent)
	}
	if kf.OutTangent != nil {
		out = track.SomeTangent(*kf.OutTangent)
	}
	return v.WithOptionalTangents(in, out)
}

func first(v []float64) float64 { return v[0] }

func vec3(v []float64) mathx.Vec3 {
	return mathx.Vec3{X: v[0], Y: v[1], Z: v[2]}
}

func quat(v []float64) mathx.Quat {
	return mathx.Quat{X: v[0], Y: v[1], Z: v[2], W: v[3]}.Normalize()
}

func rgb(v []float64) colorful.Color {
	return colorful.Color{R: v[0], G: v[1], B: v[2]}
}
