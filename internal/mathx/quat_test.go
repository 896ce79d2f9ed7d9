package mathx

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func assertQuat(t *testing.T, want, got Quat) {
	t.Helper()
	// q and -q are the same rotation.
	if want.Dot(got) < 0 {
		got = got.Neg()
	}
	assert.InDelta(t, want.X, got.X, 1e-6)
	assert.InDelta(t, want.Y, got.Y, 1e-6)
	assert.InDelta(t, want.Z, got.Z, 1e-6)
	assert.InDelta(t, want.W, got.W, 1e-6)
}

func TestEulerRoundTrip(t *testing.T) {
	angles := []Vec3{
		{},
		{X: 0.3},
		{Y: -0.7},
		{Z: 1.2},
		{X: 0.1, Y: 0.2, Z: 0.3},
		{X: -1.1, Y: 0.4, Z: 2.5},
	}

	for _, a := range angles {
		got := QuatFromEulerZYX(a.X, a.Y, a.Z).ToEulerRadians()
		assert.InDelta(t, a.X, got.X, 1e-6, "%+v", a)
		assert.InDelta(t, a.Y, got.Y, 1e-6, "%+v", a)
		assert.InDelta(t, a.Z, got.Z, 1e-6, "%+v", a)
	}
}

func TestSingleAxisOrdersAgree(t *testing.T) {
	assertQuat(t, QuatFromEulerZYX(0.5, 0, 0), QuatFromEulerXYZ(0.5, 0, 0))
	assertQuat(t, QuatFromEulerZYX(0, 0.5, 0), QuatFromEulerXYZ(0, 0.5, 0))
	assertQuat(t, QuatFromEulerZYX(0, 0, 0.5), QuatFromEulerXYZ(0, 0, 0.5))
}

func TestSlerp(t *testing.T) {
	a := Identity
	b := QuatFromAxisAngle(Vec3{Z: 1}, math.Pi/2)

	assertQuat(t, a, Slerp(a, b, 0))
	assertQuat(t, b, Slerp(a, b, 1))
	assertQuat(t, QuatFromAxisAngle(Vec3{Z: 1}, math.Pi/4), Slerp(a, b, 0.5))

	// Takes the short way round when b is expressed with the opposite sign.
	assertQuat(t, QuatFromAxisAngle(Vec3{Z: 1}, math.Pi/4), Slerp(a, b.Neg(), 0.5))

	assert.InDelta(t, 1, Slerp(a, b, 0.3).Length(), eps)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Identity, Quat{}.Normalize())
	assert.InDelta(t, 1, Quat{1, 2, 3, 4}.Normalize().Length(), eps)
	assert.Equal(t, Vec3{}, Identity.ToEulerRadians())
}

func TestVec3(t *testing.T) {
	v := Vec3{1, 2, 3}
	assert.Equal(t, Vec3{2, 4, 6}, v.Add(v))
	assert.Equal(t, Vec3{}, v.Sub(v))
	assert.Equal(t, Vec3{0.5, 1, 1.5}, v.Scale(0.5))
	assert.InDelta(t, math.Sqrt(14), v.Length(), eps)
	assert.Equal(t, []float64{1, 2, 3}, v.Components())
}
