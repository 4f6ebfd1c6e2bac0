package vmath

import "math"

// Quat is a unit rotation quaternion
type Quat struct {
	X, Y, Z, W float64
}

func QIdentity() Quat {
	return Quat{W: 1}
}

// QFromAxisAngle builds a rotation of rad radians about axis
func QFromAxisAngle(axis Vec3, rad float64) Quat {
	n := axis.Normalize()
	s := math.Sin(rad / 2)
	return Quat{X: n.X * s, Y: n.Y * s, Z: n.Z * s, W: math.Cos(rad / 2)}
}

// QFromAngleAxisDegrees is QFromAxisAngle taking degrees
func QFromAngleAxisDegrees(deg float64, axis Vec3) Quat {
	return QFromAxisAngle(axis, deg*math.Pi/180)
}

// QFromEulerDegrees builds a rotation applying z, then x, then y (engine convention)
func QFromEulerDegrees(x, y, z float64) Quat {
	qx := QFromAxisAngle(Vec3{X: 1}, x*math.Pi/180)
	qy := QFromAxisAngle(Vec3{Y: 1}, y*math.Pi/180)
	qz := QFromAxisAngle(Vec3{Z: 1}, z*math.Pi/180)
	return QMul(QMul(qy, qx), qz)
}

// QMul composes rotations: the result applies b first, then a
func QMul(a, b Quat) Quat {
	return Quat{
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
	}
}

// QRotate applies q to v
func QRotate(q Quat, v Vec3) Vec3 {
	u := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

// QNormalize rescales q to unit length, identity for a zero quaternion
func QNormalize(q Quat) Quat {
	n := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if n < Epsilon {
		return QIdentity()
	}
	return Quat{X: q.X / n, Y: q.Y / n, Z: q.Z / n, W: q.W / n}
}

// QLookRotation returns the rotation mapping +Z onto forward with +Y kept as close to up as possible
// Zero forward yields identity; forward parallel to up falls back to +Z as the up hint
func QLookRotation(forward, up Vec3) Quat {
	if forward.Norm() < Epsilon {
		return QIdentity()
	}
	f := forward.Normalize()
	if up.Norm() < Epsilon {
		up = V3Up()
	}
	r := up.Cross(f)
	if r.Norm() < Epsilon {
		r = Vec3{Z: 1}.Cross(f)
		if r.Norm() < Epsilon {
			r = Vec3{X: 1}
		}
	}
	r = r.Normalize()
	u := f.Cross(r)

	m00, m01, m02 := r.X, u.X, f.X
	m10, m11, m12 := r.Y, u.Y, f.Y
	m20, m21, m22 := r.Z, u.Z, f.Z

	var q Quat
	trace := m00 + m11 + m22
	switch {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = Quat{W: 0.25 / s, X: (m21 - m12) * s, Y: (m02 - m20) * s, Z: (m10 - m01) * s}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = Quat{W: (m21 - m12) / s, X: 0.25 * s, Y: (m01 + m10) / s, Z: (m02 + m20) / s}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = Quat{W: (m02 - m20) / s, X: (m01 + m10) / s, Y: 0.25 * s, Z: (m12 + m21) / s}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = Quat{W: (m10 - m01) / s, X: (m02 + m20) / s, Y: (m12 + m21) / s, Z: 0.25 * s}
	}
	return QNormalize(q)
}

// QYawDegrees returns the heading of q's forward axis in the XZ plane, in degrees
func QYawDegrees(q Quat) float64 {
	f := QRotate(q, V3Forward())
	return math.Atan2(f.X, f.Z) * 180 / math.Pi
}
