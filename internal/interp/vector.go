package interp

import "github.com/ivlev/animtrack/internal/mathx"

// Vec3 blends per axis. A single scalar tangent applies to every axis.
type Vec3 struct{}

func (Vec3) Lerp(from, to mathx.Vec3, t float64) mathx.Vec3 {
	return mathx.Vec3{
		X: Lerp(from.X, to.X, t),
		Y: Lerp(from.Y, to.Y, t),
		Z: Lerp(from.Z, to.Z, t),
	}
}

func (Vec3) Hermite(from, to mathx.Vec3, fromTangent, toTangent, t, span float64) mathx.Vec3 {
	return mathx.Vec3{
		X: Hermite(from.X, to.X, fromTangent, toTangent, t, span),
		Y: Hermite(from.Y, to.Y, fromTangent, toTangent, t, span),
		Z: Hermite(from.Z, to.Z, fromTangent, toTangent, t, span),
	}
}

// Quat blends rotations along the shortest arc. With tangents, the arc
// fraction itself follows a Hermite curve from 0 to 1, so tangents shape the
// angular speed rather than the path. A tangent is measured in arc fraction
// per frame: 1/span on both ends reproduces the plain slerp.
type Quat struct{}

func (Quat) Lerp(from, to mathx.Quat, t float64) mathx.Quat {
	return mathx.Slerp(from, to, t)
}

func (Quat) Hermite(from, to mathx.Quat, fromTangent, toTangent, t, span float64) mathx.Quat {
	return mathx.Slerp(from, to, Hermite(0, 1, fromTangent, toTangent, t, span))
}
