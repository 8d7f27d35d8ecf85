package vec

import "math"

// QuatIdentity returns the identity rotation (0, 0, 0, 1).
func QuatIdentity() Quat { return Quat{W: 1} }

// Vector returns the quaternion reinterpreted as a Vector4.
func (q Quat) Vector() Vector4 { return Vector4{q.X, q.Y, q.Z, q.W} }

// Dot returns the 4-component dot product of two quaternions.
func (q Quat) Dot(o Quat) float32 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

// Length returns the quaternion norm.
func (q Quat) Length() float32 {
	return float32(math.Sqrt(float64(q.Dot(q))))
}

// Normalize returns q scaled to unit length.
func (q Quat) Normalize() Quat {
	invLen := 1.0 / q.Length()
	return Quat{q.X * invLen, q.Y * invLen, q.Z * invLen, q.W * invLen}
}

// EnsurePositiveW returns q or -q such that the W component is non-negative.
// Both represent the same rotation; drop-W storage requires the positive hemisphere
// so the decoder can reconstruct w = +sqrt(1 - x^2 - y^2 - z^2).
func (q Quat) EnsurePositiveW() Quat {
	if q.W < 0 {
		return Quat{-q.X, -q.Y, -q.Z, -q.W}
	}

	return q
}

// QuatFromPositiveW reconstructs the W component of a drop-W rotation from its
// X, Y, Z components, assuming the positive hemisphere convention.
//
// The squared length can exceed 1 by quantization error; the difference is clamped to
// zero before the square root.
func QuatFromPositiveW(v Vector4) Quat {
	d := 1.0 - float64(v.X*v.X) - float64(v.Y*v.Y) - float64(v.Z*v.Z)
	w := float32(0)
	if d > 0 {
		w = float32(math.Sqrt(d))
	}

	return Quat{v.X, v.Y, v.Z, w}
}

// QuatLerp performs normalized linear interpolation between two quaternions.
// The second quaternion is flipped to the same hemisphere as the first so the
// interpolation takes the short arc.
func QuatLerp(a, b Quat, alpha float32) Quat {
	if a.Dot(b) < 0 {
		b = Quat{-b.X, -b.Y, -b.Z, -b.W}
	}

	l := Quat{
		a.X + (b.X-a.X)*alpha,
		a.Y + (b.Y-a.Y)*alpha,
		a.Z + (b.Z-a.Z)*alpha,
		a.W + (b.W-a.W)*alpha,
	}

	return l.Normalize()
}
