package math

// Vec4 is a 4-component vector. Quads store their UV rectangle in it as
// (u0, u1, v0, v1).
type Vec4 struct {
	X, Y, Z, W float64
}

// Scale returns v * scalar.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}
