package sampler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/animtrack/internal/clip"
	"github.com/ivlev/animtrack/internal/track"
)

func testAnimation(t *testing.T) *clip.Animation {
	t.Helper()
	anim, err := clip.Build(&clip.Clip{
		Name:       "ramp",
		FrameCount: 11,
		Tracks: []clip.TrackDef{
			{Name: "x", Kind: clip.KindFloat, Keyframes: []clip.KeyframeDef{
				{Frame: 0, Value: []float64{0}},
				{Frame: 10, Value: []float64{100}},
			}},
			{Name: "pos", Kind: clip.KindVec3, Keyframes: []clip.KeyframeDef{
				{Frame: 0, Value: []float64{0, 0, 0}},
				{Frame: 10, Value: []float64{10, 10, 10}},
			}},
			{Name: "idle", Kind: clip.KindFloat},
		},
	})
	require.NoError(t, err)
	return anim
}

func TestFrames(t *testing.T) {
	anim := testAnimation(t)

	frames, err := Frames(anim, Options{})
	require.NoError(t, err)
	assert.Len(t, frames, 11)
	assert.Equal(t, 10.0, frames[10])

	frames, err = Frames(anim, Options{Start: 1, End: 2, Step: 0.25})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1.25, 1.5, 1.75, 2}, frames)

	frames, err = Frames(anim, Options{Start: 0, End: 1, Step: 0.1})
	require.NoError(t, err)
	assert.Len(t, frames, 11)

	_, err = Frames(anim, Options{Step: -1})
	assert.Error(t, err)
	_, err = Frames(anim, Options{Start: 5, End: 2})
	assert.Error(t, err)
}

func TestSampleAnimation(t *testing.T) {
	anim := testAnimation(t)

	out, err := SampleAnimation(context.Background(), anim, Options{Step: 0.5})
	require.NoError(t, err)
	require.Len(t, out, 21)

	for _, f := range out {
		assert.InDelta(t, f.Frame*10, f.Values["x"][0], 1e-9)
		assert.InDeltaSlice(t, []float64{f.Frame, f.Frame, f.Frame}, f.Values["pos"], 1e-9)
		_, ok := f.Values["idle"]
		assert.False(t, ok)
	}
}

func TestSampleMatchesDirectQueries(t *testing.T) {
	anim := testAnimation(t)
	cfg := track.Config{UseLoopingInterpolation: true, FrameCount: 20}

	out, err := SampleAnimation(context.Background(), anim, Options{Start: 0, End: 30, Step: 0.75, Config: cfg, Workers: 1})
	require.NoError(t, err)

	x, _ := anim.Channel("x")
	for _, f := range out {
		want, ok := x.Sample(f.Frame, cfg)
		require.True(t, ok)
		assert.Equal(t, want, f.Values["x"], "frame %v", f.Frame)
	}
}

func TestSampleSelectedChannels(t *testing.T) {
	anim := testAnimation(t)

	out, err := SampleAnimation(context.Background(), anim, Options{Channels: []string{"pos"}})
	require.NoError(t, err)
	for _, f := range out {
		assert.Len(t, f.Values, 1)
	}

	_, err = SampleAnimation(context.Background(), anim, Options{Channels: []string{"nope"}})
	assert.Error(t, err)
}

func TestSampleCancelled(t *testing.T) {
	anim := testAnimation(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SampleAnimation(ctx, anim, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSampleWithoutFrameCount(t *testing.T) {
	anim, err := clip.Build(&clip.Clip{
		Name: "open",
		Tracks: []clip.TrackDef{
			{Name: "x", Kind: clip.KindFloat, Keyframes: []clip.KeyframeDef{
				{Frame: 0, Value: []float64{0}},
				{Frame: 10, Value: []float64{100}},
			}},
		},
	})
	require.NoError(t, err)

	out, err := SampleAnimation(context.Background(), anim, Options{})
	require.NoError(t, err)
	require.Len(t, out, 11)
	assert.Equal(t, 10.0, out[10].Frame)
	assert.InDelta(t, 100, out[10].Values["x"][0], 1e-9)

	// A start past the last keyframe samples just the start.
	frames, err := Frames(anim, Options{Start: 12})
	require.NoError(t, err)
	assert.Equal(t, []float64{12}, frames)
}

func TestSampleLoopingSecondCycle(t *testing.T) {
	anim := testAnimation(t)
	cfg := track.Config{UseLoopingInterpolation: true, FrameCount: 20}

	out, err := SampleAnimation(context.Background(), anim, Options{Start: 0, End: 40, Config: cfg, Channels: []string{"x"}})
	require.NoError(t, err)
	require.Len(t, out, 41)

	for i := 0; i < 20; i++ {
		assert.InDelta(t, out[i].Values["x"][0], out[i+20].Values["x"][0], 1e-9, "frame %d", i+20)
	}
	assert.InDelta(t, 50, out[25].Values["x"][0], 1e-9)
}
