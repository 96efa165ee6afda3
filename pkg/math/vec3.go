package math

import (
	"errors"
	"fmt"
	"math"

	"github.com/Faultbox/cubeforge/pkg/document"
)

// ErrInvalidVec3 is returned when a document does not describe a point.
var ErrInvalidVec3 = errors.New("invalid vec3 document")

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Scale returns v * scalar.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns a unit vector.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Component returns the axis component: 0 = X, 1 = Y, 2 = Z.
func (v Vec3) Component(axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// WithComponent returns a copy of v with one axis replaced.
func (v Vec3) WithComponent(axis int, value float64) Vec3 {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}

// Document converts the point into a {x,y,z} document object.
func (v Vec3) Document() *document.Object {
	return document.NewObject().
		SetNumber("x", v.X).
		SetNumber("y", v.Y).
		SetNumber("z", v.Z)
}

// Vec3FromDocument reads a {x,y,z} document object. All three components
// must be present and numeric.
func Vec3FromDocument(obj *document.Object) (Vec3, error) {
	if obj == nil {
		return Vec3{}, ErrInvalidVec3
	}
	var out [3]float64
	for i, key := range [3]string{"x", "y", "z"} {
		v, ok := obj.Get(key)
		if !ok || v.Kind() != document.KindNumber {
			return Vec3{}, fmt.Errorf("%w: component %s", ErrInvalidVec3, key)
		}
		out[i] = v.AsNumber(0)
	}
	return Vec3{out[0], out[1], out[2]}, nil
}
