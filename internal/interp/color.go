package interp

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// BlendSpace selects the colour space linear colour blends run in.
type BlendSpace string

const (
	BlendRGB BlendSpace = "rgb"
	BlendLab BlendSpace = "lab"
	BlendHcl BlendSpace = "hcl"
	BlendLuv BlendSpace = "luv"
)

// ParseBlendSpace maps a clip's blend name to a BlendSpace. Empty means RGB.
func ParseBlendSpace(name string) (BlendSpace, error) {
	switch BlendSpace(name) {
	case "", BlendRGB:
		return BlendRGB, nil
	case BlendLab, BlendHcl, BlendLuv:
		return BlendSpace(name), nil
	default:
		return "", fmt.Errorf("unknown blend space: %s", name)
	}
}

// Color blends colours. Hermite always runs per RGB channel because tangents
// are authored against channel values.
type Color struct {
	Space BlendSpace
}

func (c Color) Lerp(from, to colorful.Color, t float64) colorful.Color {
	switch c.Space {
	case BlendLab:
		return from.BlendLab(to, t).Clamped()
	case BlendHcl:
		return from.BlendHcl(to, t).Clamped()
	case BlendLuv:
		return from.BlendLuv(to, t).Clamped()
	default:
		return from.BlendRgb(to, t)
	}
}

func (Color) Hermite(from, to colorful.Color, fromTangent, toTangent, t, span float64) colorful.Color {
	return colorful.Color{
		R: Hermite(from.R, to.R, fromTangent, toTangent, t, span),
		G: Hermite(from.G, to.G, fromTangent, toTangent, t, span),
		B: Hermite(from.B, to.B, fromTangent, toTangent, t, span),
	}.Clamped()
}
