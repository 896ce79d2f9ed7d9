// Package clip loads YAML animation clips into tracks and dumps tracks back
// out as golden files.
package clip

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/ivlev/animtrack/internal/interp"
)

// Version is the clip document version this package writes.
const Version = "1.0"

var ErrInvalidClip = errors.New("invalid clip")

// Kind selects the track type a TrackDef builds.
type Kind string

const (
	KindFloat    Kind = "float"
	KindVec3     Kind = "vec3"
	KindQuat     Kind = "quat"
	KindColor    Kind = "color"
	KindPosition Kind = "position"  // per-axis X/Y/Z, default 0
	KindScale    Kind = "scale"     // per-axis X/Y/Z, default 1
	KindEuler    Kind = "euler"     // per-axis X/Y/Z radians
	KindQuatAxes Kind = "quat-axes" // per-axis X/Y/Z/W
)

// Dim is the number of floats one sampled value occupies.
func (k Kind) Dim() int {
	switch k {
	case KindFloat:
		return 1
	case KindVec3, KindColor, KindPosition, KindScale:
		return 3
	case KindQuat, KindEuler, KindQuatAxes:
		// Euler channels sample as quaternions.
		return 4
	}
	return 0
}

// Axes is the number of separately keyed components, 0 for combined kinds.
func (k Kind) Axes() int {
	switch k {
	case KindPosition, KindScale, KindEuler:
		return 3
	case KindQuatAxes:
		return 4
	}
	return 0
}

// arity is how many values a keyframe that is not bound to one axis carries.
func (k Kind) arity() int {
	switch k {
	case KindFloat:
		return 1
	case KindVec3, KindColor:
		return 3
	case KindQuat:
		return 4
	}
	return k.Axes()
}

func (k Kind) valid() bool {
	return k.Dim() > 0
}

// Clip is a complete animation document.
type Clip struct {
	Version    string     `yaml:"version"`
	Name       string     `yaml:"name"`
	FrameCount int        `yaml:"frame_count"`
	FPS        float64    `yaml:"fps"`
	Looping    bool       `yaml:"looping"`
	Tracks     []TrackDef `yaml:"tracks"`
}

// TrackDef is one animated channel.
type TrackDef struct {
	Name      string        `yaml:"name"`
	Kind      Kind          `yaml:"kind"`
	Blend     string        `yaml:"blend,omitempty"` // color only: rgb, lab, hcl, luv
	Keyframes []KeyframeDef `yaml:"keyframes"`
}

// KeyframeDef is one keyframe. Axis binds a single value to one component of
// a per-axis track; without it Value covers every component.
type KeyframeDef struct {
	Frame      int       `yaml:"frame"`
	Axis       *int      `yaml:"axis,omitempty"`
	Value      []float64 `yaml:"value,flow,omitempty"`
	OutValue   []float64 `yaml:"out_value,flow,omitempty"`
	Color      string    `yaml:"color,omitempty"`
	OutColor   string    `yaml:"out_color,omitempty"`
	Tangent    *float64  `yaml:"tangent,omitempty"`
	InTangent  *float64  `yaml:"in_tangent,omitempty"`
	OutTangent *float64  `yaml:"out_tangent,omitempty"`
	Tag        string    `yaml:"tag,omitempty"`
}

// Validate reports the first structural problem in the clip.
func (c *Clip) Validate() error {
	if c.Version != "" && c.Version != Version {
		return fmt.Errorf("%w: unsupported version %q", ErrInvalidClip, c.Version)
	}
	if c.FrameCount < 0 {
		return fmt.Errorf("%w: negative frame_count %d", ErrInvalidClip, c.FrameCount)
	}
	if c.FPS < 0 {
		return fmt.Errorf("%w: negative fps %v", ErrInvalidClip, c.FPS)
	}

	seen := make(map[string]bool, len(c.Tracks))
	for i := range c.Tracks {
		td := &c.Tracks[i]
		if td.Name == "" {
			return fmt.Errorf("%w: track %d has no name", ErrInvalidClip, i)
		}
		if seen[td.Name] {
			return fmt.Errorf("%w: duplicate track %q", ErrInvalidClip, td.Name)
		}
		seen[td.Name] = true

		if err := td.validate(); err != nil {
			return fmt.Errorf("%w: track %q: %v", ErrInvalidClip, td.Name, err)
		}
	}
	return nil
}

func (td *TrackDef) validate() error {
	if !td.Kind.valid() {
		return fmt.Errorf("unknown kind %q", td.Kind)
	}
	if td.Blend != "" {
		if td.Kind != KindColor {
			return fmt.Errorf("blend is only valid for color tracks")
		}
		if _, err := interp.ParseBlendSpace(td.Blend); err != nil {
			return err
		}
	}

	for i, kf := range td.Keyframes {
		if err := kf.validate(td.Kind); err != nil {
			return fmt.Errorf("keyframe %d (frame %d): %v", i, kf.Frame, err)
		}
	}
	return nil
}

func (kf *KeyframeDef) validate(kind Kind) error {
	want := kind.arity()

	if kf.Axis != nil {
		if kind.Axes() == 0 {
			return fmt.Errorf("axis set on %s track", kind)
		}
		if *kf.Axis < 0 || *kf.Axis >= kind.Axes() {
			return fmt.Errorf("axis %d out of range [0,%d)", *kf.Axis, kind.Axes())
		}
		want = 1
	}

	if kind == KindColor && kf.Color != "" {
		if len(kf.Value) > 0 {
			return fmt.Errorf("both color and value set")
		}
		if _, err := parseColor(kf.Color); err != nil {
			return err
		}
		if kf.OutColor != "" {
			if _, err := parseColor(kf.OutColor); err != nil {
				return err
			}
		}
		return nil
	}
	if kf.Color != "" || kf.OutColor != "" {
		if kind != KindColor {
			return fmt.Errorf("color set on %s track", kind)
		}
	}

	if len(kf.Value) != want {
		return fmt.Errorf("got %d values, want %d", len(kf.Value), want)
	}
	if len(kf.OutValue) > 0 && len(kf.OutValue) != want {
		return fmt.Errorf("got %d out values, want %d", len(kf.OutValue), want)
	}
	return nil
}

// parseColor accepts #rrggbb hex or a CSS/SVG color name.
func parseColor(s string) (colorful.Color, error) {
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("bad color %q: %w", s, err)
		}
		return c, nil
	}

	rgba, ok := colornames.Map[strings.ToLower(s)]
	if !ok {
		return colorful.Color{}, fmt.Errorf("unknown color name %q", s)
	}
	c, _ := colorful.MakeColor(rgba)
	return c, nil
}
