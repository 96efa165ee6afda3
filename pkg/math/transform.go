package math

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a rigid affine transform. Chained calls apply left to right:
// Identity().Translate(a).RotateY(r) first translates by a and then rotates.
type Transform struct {
	m mgl64.Mat4
}

// Identity returns the transform that leaves points unchanged.
func Identity() Transform {
	return Transform{m: mgl64.Ident4()}
}

// Translate appends a translation.
func (t Transform) Translate(x, y, z float64) Transform {
	return Transform{m: mgl64.Translate3D(x, y, z).Mul4(t.matrix())}
}

// TranslateVec appends a translation by v.
func (t Transform) TranslateVec(v Vec3) Transform {
	return t.Translate(v.X, v.Y, v.Z)
}

// RotateY appends a rotation about the vertical axis. angle is in radians.
func (t Transform) RotateY(angle float64) Transform {
	return Transform{m: mgl64.HomogRotate3DY(angle).Mul4(t.matrix())}
}

// Apply transforms a point.
func (t Transform) Apply(p Vec3) Vec3 {
	r := t.matrix().Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1})
	return Vec3{r[0], r[1], r[2]}
}

// Matrix returns the column-major 4x4 matrix.
func (t Transform) Matrix() mgl64.Mat4 {
	return t.matrix()
}

// matrix treats the zero Transform as identity.
func (t Transform) matrix() mgl64.Mat4 {
	if t.m == (mgl64.Mat4{}) {
		return mgl64.Ident4()
	}
	return t.m
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return mgl64.DegToRad(deg)
}
