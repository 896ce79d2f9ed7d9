package track

// Tangent is an optional slope, in value units per frame.
type Tangent struct {
	value float64
	ok    bool
}

// NoTangent is the absent tangent.
var NoTangent = Tangent{}

// SomeTangent returns a present tangent.
func SomeTangent(v float64) Tangent {
	return Tangent{value: v, ok: true}
}

// TangentFrom converts an optional pointer, as decoded from a document.
func TangentFrom(v *float64) Tangent {
	if v == nil {
		return NoTangent
	}
	return SomeTangent(*v)
}

func (t Tangent) Get() (float64, bool) {
	return t.value, t.ok
}

// ValueAndTangents is what a track stores per keyframe. Incoming and outgoing
// values differ only for stepped keys, where the curve jumps at the keyframe.
type ValueAndTangents[T any] struct {
	IncomingValue   T
	OutgoingValue   T
	IncomingTangent Tangent
	OutgoingTangent Tangent
}

// Value is a keyframe with no tangents, so it blends linearly.
func Value[T any](v T) ValueAndTangents[T] {
	return ValueAndTangents[T]{IncomingValue: v, OutgoingValue: v}
}

// SplitValue is a keyframe arriving at in and leaving from out.
func SplitValue[T any](in, out T) ValueAndTangents[T] {
	return ValueAndTangents[T]{IncomingValue: in, OutgoingValue: out}
}

// WithTangent uses the same tangent in both directions.
func (v ValueAndTangents[T]) WithTangent(t float64) ValueAndTangents[T] {
	return v.WithTangents(t, t)
}

func (v ValueAndTangents[T]) WithTangents(in, out float64) ValueAndTangents[T] {
	v.IncomingTangent = SomeTangent(in)
	v.OutgoingTangent = SomeTangent(out)
	return v
}

// WithOptionalTangents sets tangents that may each be absent.
func (v ValueAndTangents[T]) WithOptionalTangents(in, out Tangent) ValueAndTangents[T] {
	v.IncomingTangent = in
	v.OutgoingTangent = out
	return v
}
