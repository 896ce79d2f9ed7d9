// Package interp supplies the per-type blending that tracks delegate to. The
// track engine only picks the bracket, computes t and chooses between Hermite
// and linear; what "linear" means for a vector, a rotation or a colour lives
// here.
package interp

import "math"

// Interpolator blends two values of T.
type Interpolator[T any] interface {
	// Lerp blends linearly, t in [0, 1].
	Lerp(from, to T, t float64) T
	// Hermite blends along a cubic Hermite curve. Tangents are in value units
	// per frame; span is the frame distance between from and to. Types whose
	// values are not scalars per component say what a tangent measures.
	// Quat takes tangents as arc fraction per frame.
	Hermite(from, to T, fromTangent, toTangent, t, span float64) T
}

// Lerp performs linear interpolation between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Hermite evaluates the cubic Hermite curve from p0 to p1 with tangents m0
// and m1 scaled by span.
func Hermite(p0, p1, m0, m1, t, span float64) float64 {
	t2 := t * t
	t3 := t2 * t

	h00 := 2*t3 - 3*t2 + 1
	h10 := t3 - 2*t2 + t
	h01 := -2*t3 + 3*t2
	h11 := t3 - t2

	return h00*p0 + h10*span*m0 + h01*p1 + h11*span*m1
}

// Clamp01 limits t to [0, 1]. NaN becomes 0.
func Clamp01(t float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Float blends plain scalars.
type Float struct{}

func (Float) Lerp(from, to float64, t float64) float64 {
	return Lerp(from, to, t)
}

func (Float) Hermite(from, to float64, fromTangent, toTangent, t, span float64) float64 {
	return Hermite(from, to, fromTangent, toTangent, t, span)
}
