// Package easing maps easing names used in clips and flags to curves.
package easing

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fogleman/ease"
)

// Func reshapes a blend position t in [0,1].
type Func func(t float64) float64

var ErrUnknownEasing = errors.New("unknown easing")

var registry = map[string]Func{
	"linear":       ease.Linear,
	"in-quad":      ease.InQuad,
	"out-quad":     ease.OutQuad,
	"in-out-quad":  ease.InOutQuad,
	"in-cubic":     ease.InCubic,
	"out-cubic":    ease.OutCubic,
	"in-out-cubic": ease.InOutCubic,
	"in-sine":      ease.InSine,
	"out-sine":     ease.OutSine,
	"in-out-sine":  ease.InOutSine,
	"out-bounce":   ease.OutBounce,
}

// NewEasing returns the curve registered under name. An empty name means no
// easing and yields nil.
func NewEasing(name string) (func(float64) float64, error) {
	switch name {
	case "", "none":
		return nil, nil
	}

	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEasing, name)
	}
	return fn, nil
}

// Names lists the registered easings in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
