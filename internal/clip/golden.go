package clip

import (
	"gopkg.in/yaml.v3"
)

// Golden is a flat listing of every stored keyframe, for golden-file tests
// and debugging importers.
type Golden struct {
	Name       string          `yaml:"name"`
	FrameCount int             `yaml:"frame_count"`
	Channels   []GoldenChannel `yaml:"channels"`
}

type GoldenChannel struct {
	Name      string      `yaml:"name"`
	Kind      Kind        `yaml:"kind"`
	Keyframes []GoldenKey `yaml:"keyframes"`
}

// GoldenKey is a keyframe as numbers. OutValue is only set for split keys.
type GoldenKey struct {
	Frame      int       `yaml:"frame"`
	Axis       *int      `yaml:"axis,omitempty"`
	Value      []float64 `yaml:"value,flow"`
	OutValue   []float64 `yaml:"out_value,flow,omitempty"`
	InTangent  *float64  `yaml:"in_tangent,omitempty"`
	OutTangent *float64  `yaml:"out_tangent,omitempty"`
	Tag        string    `yaml:"tag,omitempty"`
}

// Dump lists the keyframes of every channel in channel order.
func Dump(anim *Animation) *Golden {
	g := &Golden{
		Name:       anim.Name,
		FrameCount: anim.FrameCount,
		Channels:   make([]GoldenChannel, len(anim.Channels)),
	}
	for i, ch := range anim.Channels {
		g.Channels[i] = GoldenChannel{
			Name:      ch.Name(),
			Kind:      ch.Kind(),
			Keyframes: ch.Definitions(),
		}
	}
	return g
}

// WriteGolden writes the dump of anim to path.
func WriteGolden(anim *Animation, path string) error {
	return writeYAML(Dump(anim), path)
}

// MarshalGolden renders the dump of anim as YAML.
func MarshalGolden(anim *Animation) ([]byte, error) {
	return yaml.Marshal(Dump(anim))
}
