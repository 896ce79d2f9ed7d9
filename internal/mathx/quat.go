package mathx

import "math"

// Quat is a rotation quaternion.
type Quat struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
	W float64 `yaml:"w" json:"w"`
}

// Identity is the no-rotation quaternion.
var Identity = Quat{W: 1}

func (q Quat) IsIdentity() bool {
	return q == Identity
}

func (q Quat) Dot(o Quat) float64 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

func (q Quat) Neg() Quat {
	return Quat{-q.X, -q.Y, -q.Z, -q.W}
}

func (q Quat) Length() float64 {
	return math.Sqrt(q.Dot(q))
}

// Normalize returns q scaled to unit length. A zero quaternion normalizes to
// Identity.
func (q Quat) Normalize() Quat {
	l := q.Length()
	if l == 0 {
		return Identity
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Mul returns the Hamilton product q*o.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Components returns the quaternion as X, Y, Z, W.
func (q Quat) Components() []float64 {
	return []float64{q.X, q.Y, q.Z, q.W}
}

// QuatFromAxisAngle builds a rotation of angle radians around a unit axis.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	s, c := math.Sincos(angle * 0.5)
	return Quat{axis.X * s, axis.Y * s, axis.Z * s, c}
}

// Slerp interpolates along the shortest arc between a and b.
func Slerp(a, b Quat, t float64) Quat {
	cos := a.Dot(b)
	if cos < 0 {
		b = b.Neg()
		cos = -cos
	}

	// Nearly parallel: fall back to a normalized lerp.
	if cos > 0.9995 {
		return Quat{
			a.X + (b.X-a.X)*t,
			a.Y + (b.Y-a.Y)*t,
			a.Z + (b.Z-a.Z)*t,
			a.W + (b.W-a.W)*t,
		}.Normalize()
	}

	theta := math.Acos(cos)
	sin := math.Sin(theta)
	wa := math.Sin((1-t)*theta) / sin
	wb := math.Sin(t*theta) / sin

	return Quat{
		a.X*wa + b.X*wb,
		a.Y*wa + b.Y*wb,
		a.Z*wa + b.Z*wb,
		a.W*wa + b.W*wb,
	}
}

// QuatFromEulerZYX builds a quaternion from euler radians applied in Z, Y, X
// order (yaw, pitch, roll).
func QuatFromEulerZYX(xRadians, yRadians, zRadians float64) Quat {
	sr, cr := math.Sincos(xRadians * 0.5)
	sp, cp := math.Sincos(yRadians * 0.5)
	sy, cy := math.Sincos(zRadians * 0.5)

	return Quat{
		X: sr*cp*cy - cr*sp*sy,
		Y: cr*sp*cy + sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
		W: cr*cp*cy + sr*sp*sy,
	}
}

// QuatFromEulerXYZ composes X, then Y, then Z axis rotations.
func QuatFromEulerXYZ(xRadians, yRadians, zRadians float64) Quat {
	return QuatFromAxisAngle(Vec3{X: 1}, xRadians).
		Mul(QuatFromAxisAngle(Vec3{Y: 1}, yRadians)).
		Mul(QuatFromAxisAngle(Vec3{Z: 1}, zRadians))
}

// ToEulerRadians is the inverse of QuatFromEulerZYX.
func (q Quat) ToEulerRadians() Vec3 {
	if q.IsIdentity() {
		return Vec3{}
	}

	var angles Vec3
	qy2 := q.Y * q.Y

	sinrCosp := 2 * (q.W*q.X + q.Y*q.Z)
	cosrCosp := 1 - 2*(q.X*q.X+qy2)
	angles.X = math.Atan2(sinrCosp, cosrCosp)

	sinp := 2 * (q.W*q.Y - q.Z*q.X)
	if math.Abs(sinp) >= 1 {
		angles.Y = math.Copysign(math.Pi/2, sinp)
	} else {
		angles.Y = math.Asin(sinp)
	}

	sinyCosp := 2 * (q.W*q.Z + q.X*q.Y)
	cosyCosp := 1 - 2*(qy2+q.Z*q.Z)
	angles.Z = math.Atan2(sinyCosp, cosyCosp)

	return angles
}
