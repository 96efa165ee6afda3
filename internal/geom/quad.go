// Package geom holds the quad primitive shared by compiled models and
// hand-authored entity geometry.
package geom

import (
	"github.com/Faultbox/cubeforge/internal/render"
	"github.com/Faultbox/cubeforge/pkg/math"
)

// Quad is a planar quadrilateral spanned by Origin + t*(UEnd-Origin) +
// s*(VEnd-Origin) for t, s in [0,1]. UV holds (u0, u1, v0, v1).
type Quad struct {
	Origin math.Vec3
	UEnd   math.Vec3
	VEnd   math.Vec3
	UV     math.Vec4
}

// NewQuad builds a quad.
func NewQuad(origin, uEnd, vEnd math.Vec3, uv math.Vec4) Quad {
	return Quad{Origin: origin, UEnd: uEnd, VEnd: vEnd, UV: uv}
}

// Corners returns the four corners in order origin, uEnd, opposite, vEnd.
func (q Quad) Corners() [4]math.Vec3 {
	opposite := q.UEnd.Add(q.VEnd).Sub(q.Origin)
	return [4]math.Vec3{q.Origin, q.UEnd, opposite, q.VEnd}
}

// Normal returns the unnormalised normal (UEnd-Origin)x(VEnd-Origin).
func (q Quad) Normal() math.Vec3 {
	return q.UEnd.Sub(q.Origin).Cross(q.VEnd.Sub(q.Origin))
}

// Transform returns the quad with all points mapped through tr.
func (q Quad) Transform(tr math.Transform) Quad {
	return Quad{
		Origin: tr.Apply(q.Origin),
		UEnd:   tr.Apply(q.UEnd),
		VEnd:   tr.Apply(q.VEnd),
		UV:     q.UV,
	}
}

// AddTriangles appends the two triangles of q under tr to dst. Both
// triangles keep the winding of (UEnd-Origin)x(VEnd-Origin).
func (q Quad) AddTriangles(dst []render.Triangle, mat *render.Material, tr math.Transform) []render.Triangle {
	c := q.Transform(tr).Corners()
	u0, u1, v0, v1 := q.UV.X, q.UV.Y, q.UV.Z, q.UV.W

	uvO := math.Vec2{X: u0, Y: v0}
	uvU := math.Vec2{X: u1, Y: v0}
	uvOpp := math.Vec2{X: u1, Y: v1}
	uvV := math.Vec2{X: u0, Y: v1}

	return append(dst,
		render.Triangle{A: c[0], B: c[1], C: c[2], UVA: uvO, UVB: uvU, UVC: uvOpp, Material: mat},
		render.Triangle{A: c[0], B: c[2], C: c[3], UVA: uvO, UVB: uvOpp, UVC: uvV, Material: mat},
	)
}

// AddAll appends the triangles of every quad in quads.
func AddAll(dst []render.Triangle, quads []Quad, mat *render.Material, tr math.Transform) []render.Triangle {
	for _, q := range quads {
		dst = q.AddTriangles(dst, mat, tr)
	}
	return dst
}
