// Package sampler evaluates whole animations over a frame range.
package sampler

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/animtrack/internal/clip"
	"github.com/ivlev/animtrack/internal/track"
)

const cancelCheckEvery = 256

type Options struct {
	Start float64
	// End is inclusive. Zero means the last frame of the clip: FrameCount-1,
	// or the last keyed frame when the clip has no frame count.
	End  float64
	Step float64 // default 1
	// Channels restricts sampling to the named channels.
	Channels []string
	// Workers caps concurrently sampled channels; zero means one goroutine
	// per channel.
	Workers int
	Config  track.Config
}

// Frame is every sampled channel at one frame. Channels without keyframes
// are absent.
type Frame struct {
	Frame  float64              `yaml:"frame" json:"frame"`
	Values map[string][]float64 `yaml:"values" json:"values"`
}

// Frames lists the frames opts covers for anim, after defaults are applied.
func Frames(anim *clip.Animation, opts Options) ([]float64, error) {
	opts = withDefaults(anim, opts)
	if opts.Step <= 0 || math.IsNaN(opts.Step) {
		return nil, fmt.Errorf("step must be positive, got %v", opts.Step)
	}
	if opts.End < opts.Start {
		return nil, fmt.Errorf("end %v is before start %v", opts.End, opts.Start)
	}

	n := int(math.Floor((opts.End-opts.Start)/opts.Step+1e-9)) + 1
	frames := make([]float64, n)
	for i := range frames {
		frames[i] = opts.Start + float64(i)*opts.Step
	}
	return frames, nil
}

// SampleAnimation samples every selected channel over the range. Channels are
// sampled in parallel, each through its own fork so no cursor is shared, and
// each in increasing frame order.
func SampleAnimation(ctx context.Context, anim *clip.Animation, opts Options) ([]Frame, error) {
	frames, err := Frames(anim, opts)
	if err != nil {
		return nil, err
	}

	channels, err := selectChannels(anim, opts.Channels)
	if err != nil {
		return nil, err
	}

	results := make([][][]float64, len(channels))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}

	for i, ch := range channels {
		g.Go(func() error {
			reader := ch.Fork()
			values := make([][]float64, len(frames))
			for j, frame := range frames {
				if j%cancelCheckEvery == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				if v, ok := reader.Sample(frame, opts.Config); ok {
					values[j] = v
				}
			}
			results[i] = values
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]Frame, len(frames))
	for j, frame := range frames {
		out[j] = Frame{Frame: frame, Values: make(map[string][]float64, len(channels))}
		for i, ch := range channels {
			if v := results[i][j]; v != nil {
				out[j].Values[ch.Name()] = v
			}
		}
	}
	return out, nil
}

func withDefaults(anim *clip.Animation, opts Options) Options {
	if opts.Step == 0 {
		opts.Step = 1
	}
	if opts.End == 0 {
		end := float64(anim.FrameCount - 1)
		if anim.FrameCount <= 0 {
			end = float64(anim.LastFrame())
		}
		opts.End = math.Max(opts.Start, end)
	}
	return opts
}

func selectChannels(anim *clip.Animation, names []string) ([]clip.Channel, error) {
	if len(names) == 0 {
		return anim.Channels, nil
	}

	channels := make([]clip.Channel, 0, len(names))
	for _, name := range names {
		ch, ok := anim.Channel(name)
		if !ok {
			return nil, fmt.Errorf("unknown channel %q", name)
		}
		channels = append(channels, ch)
	}
	return channels, nil
}
