// Package bench measures how timeline lookups are resolved under different
// query patterns.
package bench

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ivlev/animtrack/internal/keyframes"
	"github.com/ivlev/animtrack/internal/system"
	"github.com/ivlev/animtrack/internal/track"
)

type Pattern string

const (
	Sequential Pattern = "sequential" // playback order, fractional steps
	Random     Pattern = "random"
	Reverse    Pattern = "reverse"
)

func ParsePattern(name string) (Pattern, error) {
	switch p := Pattern(name); p {
	case Sequential, Random, Reverse:
		return p, nil
	case "":
		return Sequential, nil
	}
	return "", fmt.Errorf("unknown pattern %q", name)
}

type Options struct {
	Keyframes int
	Queries   int
	Pattern   Pattern
	// Spacing is the frame distance between keyframes, default 4.
	Spacing int
	Seed    int64
}

type Result struct {
	Options  Options
	Duration time.Duration
	Lookups  keyframes.Stats
	Before   system.ProcessStats
	After    system.ProcessStats
	// Checksum keeps the interpolated values alive.
	Checksum float64
}

// PerQuery is the mean wall time of one query.
func (r Result) PerQuery() time.Duration {
	if r.Options.Queries == 0 {
		return 0
	}
	return r.Duration / time.Duration(r.Options.Queries)
}

func (r Result) String() string {
	return fmt.Sprintf(
		"--- [LOOKUP BENCHMARK] ---\n"+
			"Pattern: %s\n"+
			"Keyframes: %d | Queries: %d\n"+
			"Total Time: %s (%s/query)\n"+
			"Cursor Hits: %d | Searches: %d | Hit Ratio: %.2f%%\n"+
			"Process: %s\n"+
			"--------------------------\n",
		r.Options.Pattern, r.Options.Keyframes, r.Options.Queries,
		r.Duration, r.PerQuery(),
		r.Lookups.CursorHits, r.Lookups.Searches, r.Lookups.HitRatio()*100,
		r.After.Sub(r.Before),
	)
}

// Run fills a float track and times opts.Queries interpolated lookups.
func Run(opts Options) (Result, error) {
	if opts.Keyframes <= 0 || opts.Queries < 0 {
		return Result{}, fmt.Errorf("need keyframes > 0 and queries >= 0, got %d and %d", opts.Keyframes, opts.Queries)
	}
	if opts.Spacing <= 0 {
		opts.Spacing = 4
	}
	if opts.Pattern == "" {
		opts.Pattern = Sequential
	}

	tr := track.NewFloat(opts.Keyframes)
	for i := 0; i < opts.Keyframes; i++ {
		tr.Set(i*opts.Spacing, float64(i%17))
	}

	frames, err := queryFrames(opts)
	if err != nil {
		return Result{}, err
	}

	// A fresh reader so population lookups are not counted.
	reader := tr.NewReader()
	cfg := track.Config{}

	before, _ := system.Snapshot()
	start := time.Now()

	var sum float64
	for _, f := range frames {
		v, _ := reader.TryGetInterpolatedFrame(f, cfg)
		sum += v
	}

	elapsed := time.Since(start)
	after, _ := system.Snapshot()

	return Result{
		Options:  opts,
		Duration: elapsed,
		Lookups:  reader.Stats(),
		Before:   before,
		After:    after,
		Checksum: sum,
	}, nil
}

func queryFrames(opts Options) ([]float64, error) {
	span := float64((opts.Keyframes - 1) * opts.Spacing)
	frames := make([]float64, opts.Queries)
	if opts.Queries == 0 {
		return frames, nil
	}

	step := span / float64(opts.Queries)
	switch opts.Pattern {
	case Sequential:
		for i := range frames {
			frames[i] = float64(i) * step
		}
	case Reverse:
		for i := range frames {
			frames[i] = span - float64(i)*step
		}
	case Random:
		r := rand.New(rand.NewSource(opts.Seed))
		for i := range frames {
			frames[i] = r.Float64() * span
		}
	default:
		return nil, fmt.Errorf("unknown pattern %q", opts.Pattern)
	}
	return frames, nil
}
