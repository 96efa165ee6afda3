// Package render defines the primitives handed to the ray-tracing backend.
package render

import (
	"github.com/Faultbox/cubeforge/internal/texture"
	"github.com/Faultbox/cubeforge/pkg/math"
)

// Material binds a texture and shading parameters to triangles.
type Material struct {
	Name    string
	Texture *texture.Texture

	// Shading parameters consumed by the backend.
	Specular   float64
	Emittance  float64
	Refractive bool
}

// NewTextureMaterial returns a diffuse material for tex.
func NewTextureMaterial(tex *texture.Texture) *Material {
	name := ""
	if tex != nil {
		name = tex.Ref()
	}
	return &Material{Name: name, Texture: tex}
}

// Triangle is a world-space triangle with per-vertex texture coordinates.
type Triangle struct {
	A, B, C       math.Vec3
	UVA, UVB, UVC math.Vec2
	Material      *Material
}

// Normal returns the unnormalised face normal (B-A)x(C-A).
func (t Triangle) Normal() math.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}
