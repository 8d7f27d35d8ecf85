// Package vec provides the float32 vector and quaternion operations used by the
// compression core.
//
// All operations are scalar equivalents of the 4-wide SIMD math the SOA database is
// laid out for. Precision matters more than speed here: quantization decay must be
// exactly reproducible, so every operation keeps float32 semantics at each step.
package vec

import "math"

// Vector4 is a 4-component float32 vector. Vector3 values occupy X, Y, Z with W
// ignored (conventionally zero).
type Vector4 struct {
	X, Y, Z, W float32
}

// Quat is a quaternion stored as [x, y, z, w].
type Quat struct {
	X, Y, Z, W float32
}

// Zero returns the zero vector.
func Zero() Vector4 { return Vector4{} }

// New builds a Vector4 from components.
func New(x, y, z, w float32) Vector4 { return Vector4{X: x, Y: y, Z: z, W: w} }

// New3 builds a Vector4 from three components with W = 0.
func New3(x, y, z float32) Vector4 { return Vector4{X: x, Y: y, Z: z} }

// Splat returns a vector with every component set to v.
func Splat(v float32) Vector4 { return Vector4{X: v, Y: v, Z: v, W: v} }

// Add returns a + b.
func (a Vector4) Add(b Vector4) Vector4 {
	return Vector4{a.X + b.X, a.Y + b.Y, a.Z + b.Z, a.W + b.W}
}

// Sub returns a - b.
func (a Vector4) Sub(b Vector4) Vector4 {
	return Vector4{a.X - b.X, a.Y - b.Y, a.Z - b.Z, a.W - b.W}
}

// Mul returns the component-wise product a * b.
func (a Vector4) Mul(b Vector4) Vector4 {
	return Vector4{a.X * b.X, a.Y * b.Y, a.Z * b.Z, a.W * b.W}
}

// MulAdd returns a*m + o component-wise. It is the range un-normalization primitive:
// value = stored*extent + min.
func (a Vector4) MulAdd(m, o Vector4) Vector4 {
	return Vector4{a.X*m.X + o.X, a.Y*m.Y + o.Y, a.Z*m.Z + o.Z, a.W*m.W + o.W}
}

// Scale returns a * s.
func (a Vector4) Scale(s float32) Vector4 {
	return Vector4{a.X * s, a.Y * s, a.Z * s, a.W * s}
}

// Lerp returns a + (b-a)*alpha component-wise.
func (a Vector4) Lerp(b Vector4, alpha float32) Vector4 {
	return Vector4{
		a.X + (b.X-a.X)*alpha,
		a.Y + (b.Y-a.Y)*alpha,
		a.Z + (b.Z-a.Z)*alpha,
		a.W + (b.W-a.W)*alpha,
	}
}

// Min returns the component-wise minimum of a and b.
func (a Vector4) Min(b Vector4) Vector4 {
	return Vector4{min(a.X, b.X), min(a.Y, b.Y), min(a.Z, b.Z), min(a.W, b.W)}
}

// Max returns the component-wise maximum of a and b.
func (a Vector4) Max(b Vector4) Vector4 {
	return Vector4{max(a.X, b.X), max(a.Y, b.Y), max(a.Z, b.Z), max(a.W, b.W)}
}

// Dot4 returns the 4-component dot product.
func (a Vector4) Dot4(b Vector4) float32 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
}

// Length3 returns the euclidean length over X, Y, Z.
func (a Vector4) Length3() float32 {
	return float32(math.Sqrt(float64(a.X*a.X + a.Y*a.Y + a.Z*a.Z)))
}

// Length4 returns the euclidean length over all four components.
func (a Vector4) Length4() float32 {
	return float32(math.Sqrt(float64(a.Dot4(a))))
}

// AbsMax3 returns the largest absolute component over X, Y, Z.
func (a Vector4) AbsMax3() float32 {
	return max(abs(a.X), abs(a.Y), abs(a.Z))
}

// AbsMax4 returns the largest absolute component.
func (a Vector4) AbsMax4() float32 {
	return max(abs(a.X), abs(a.Y), abs(a.Z), abs(a.W))
}

// Quat returns the vector reinterpreted as a quaternion.
func (a Vector4) Quat() Quat { return Quat{a.X, a.Y, a.Z, a.W} }

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}

	return v
}
