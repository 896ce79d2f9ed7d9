// Package player plays an animation in real time and publishes every sampled
// frame to a sink.
package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ivlev/animtrack/internal/clip"
	"github.com/ivlev/animtrack/internal/logging"
	"github.com/ivlev/animtrack/internal/sink"
	"github.com/ivlev/animtrack/internal/system"
	"github.com/ivlev/animtrack/internal/track"
)

const (
	DefaultFPS  = 30.0
	DefaultTick = 40 * time.Millisecond
)

var ErrFinished = errors.New("playback finished")

type Options struct {
	Speed   float64 // default 1
	Looping bool    // loop even if the clip does not ask to
	Easing  func(float64) float64
	Tick    time.Duration
	// Channels limits what is published; empty means every channel.
	Channels []string
	Start    float64
	// Session identifies the playback in frames and logs; generated when
	// empty.
	Session string
}

// Stats summarises a playback session.
type Stats struct {
	Published uint64
	Failed    uint64
	Loops     uint64
	Started   time.Time
}

type Player struct {
	session  string
	anim     *clip.Animation
	channels []clip.Channel
	sink     sink.Sink
	opts     Options
	cfg      track.Config
	fps      float64
	end      float64
	period   float64

	frame   float64
	started bool
	done    bool
	stats   Stats

	pool *system.FloatPool
	out  sink.Frame
	bufs []*[]float64
	log  *slog.Logger
}

// New prepares playback of anim. The player samples through its own fork of
// the animation, so anim may be shared with other readers.
func New(anim *clip.Animation, s sink.Sink, opts Options) (*Player, error) {
	if opts.Speed == 0 {
		opts.Speed = 1
	}
	if opts.Speed < 0 || math.IsNaN(opts.Speed) {
		return nil, fmt.Errorf("speed must be positive, got %v", opts.Speed)
	}
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}

	forked := anim.Fork()
	channels, err := selectChannels(forked, opts.Channels)
	if err != nil {
		return nil, err
	}

	if opts.Session == "" {
		opts.Session = uuid.NewString()
	}

	looping := anim.Looping || opts.Looping
	last := float64(forked.LastFrame())

	p := &Player{
		session:  opts.Session,
		anim:     forked,
		channels: channels,
		sink:     s,
		opts:     opts,
		cfg: track.Config{
			UseLoopingInterpolation: looping,
			FrameCount:              anim.FrameCount,
			Easing:                  opts.Easing,
		},
		fps:   anim.FPS,
		end:   last,
		frame: opts.Start,
		pool:  system.NewFloatPool(),
	}

	if p.fps <= 0 {
		p.fps = DefaultFPS
	}
	if anim.FrameCount > 0 {
		p.end = float64(anim.FrameCount - 1)
		p.period = float64(anim.FrameCount)
	} else {
		p.period = last + 1
	}
	if !looping {
		p.period = 0
	}
	p.frame = p.wrap(p.frame)

	p.log = logging.Logger("player").With("session", p.session, "clip", anim.Name)
	p.out = sink.Frame{
		Session: p.session,
		Clip:    anim.Name,
		Values:  make([]sink.ChannelValue, 0, len(channels)),
	}
	p.bufs = make([]*[]float64, 0, len(channels))

	return p, nil
}

func (p *Player) Session() string { return p.session }
func (p *Player) Frame() float64  { return p.frame }
func (p *Player) Done() bool      { return p.done }
func (p *Player) Stats() Stats    { return p.stats }

// Seek moves the play head. A finished player becomes playable again.
func (p *Player) Seek(frame float64) {
	p.frame = p.wrap(frame)
	p.done = false
	p.started = false
}

// Step publishes the play head. The first call publishes the start position;
// later calls first advance by dt of wall time. Without looping, the last
// frame is published once and the player is then done.
func (p *Player) Step(ctx context.Context, dt time.Duration) error {
	if p.done {
		return ErrFinished
	}

	if p.started {
		p.advance(dt)
	}
	p.started = true

	if p.period == 0 && p.frame >= p.end {
		p.frame = p.end
		p.done = true
	}

	return p.publish(ctx)
}

func (p *Player) advance(dt time.Duration) {
	next := p.frame + p.fps*p.opts.Speed*dt.Seconds()
	if p.period > 0 && next >= p.period {
		p.stats.Loops += uint64(next / p.period)
	}
	p.frame = p.wrap(next)
}

func (p *Player) wrap(frame float64) float64 {
	if p.period <= 0 {
		return frame
	}
	frame = math.Mod(frame, p.period)
	if frame < 0 {
		frame += p.period
	}
	return frame
}

func (p *Player) publish(ctx context.Context) error {
	defer p.release()

	p.stats.Published++
	p.out.Seq = p.stats.Published
	p.out.Frame = p.frame
	p.out.Values = p.out.Values[:0]

	for _, ch := range p.channels {
		buf := p.pool.Get(ch.Dim())
		p.bufs = append(p.bufs, buf)

		v, ok := ch.SampleInto(*buf, p.frame, p.cfg)
		if !ok {
			continue
		}
		*buf = v
		p.out.Values = append(p.out.Values, sink.ChannelValue{Name: ch.Name(), Value: v})
	}

	if err := p.sink.Publish(ctx, &p.out); err != nil {
		p.stats.Failed++
		return fmt.Errorf("frame %.2f: %w", p.frame, err)
	}
	return nil
}

// release returns the sample buffers once the sink is done with them.
func (p *Player) release() {
	for _, buf := range p.bufs {
		p.pool.Put(buf)
	}
	p.bufs = p.bufs[:0]
}

// Run publishes a frame on every tick until ctx ends or, for a clip that does
// not loop, the last frame has been published. Publish failures are logged
// and playback continues.
func (p *Player) Run(ctx context.Context) error {
	p.stats.Started = time.Now()
	p.log.Info("Playback started", "fps", p.fps, "speed", p.opts.Speed, "looping", p.period > 0, "channels", len(p.channels))

	if err := p.Step(ctx, 0); err != nil {
		p.logFailure(err)
	}

	ticker := time.NewTicker(p.opts.Tick)
	defer ticker.Stop()

	last := time.Now()
	for !p.done {
		select {
		case <-ctx.Done():
			p.log.Info("Playback stopped", "frame", p.frame, "published", p.stats.Published)
			return ctx.Err()
		case now := <-ticker.C:
			dt := now.Sub(last)
			last = now
			if err := p.Step(ctx, dt); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				p.logFailure(err)
			}
		}
	}

	p.log.Info("Playback finished", "published", p.stats.Published, "failed", p.stats.Failed,
		"elapsed", time.Since(p.stats.Started).Round(time.Millisecond))
	return nil
}

func (p *Player) logFailure(err error) {
	p.log.Warn("Publish failed", "error", err)
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
