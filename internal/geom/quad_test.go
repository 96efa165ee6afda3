package geom

import (
	"testing"

	"github.com/Faultbox/cubeforge/internal/render"
	"github.com/Faultbox/cubeforge/pkg/math"
)

func unitTop() Quad {
	// Top face of the unit cube, wound to face +Y.
	return NewQuad(
		math.Vec3{X: 0, Y: 1, Z: 1},
		math.Vec3{X: 1, Y: 1, Z: 1},
		math.Vec3{X: 0, Y: 1, Z: 0},
		math.Vec4{X: 0, Y: 1, Z: 0, W: 1},
	)
}

func TestCorners(t *testing.T) {
	c := unitTop().Corners()
	want := [4]math.Vec3{{X: 0, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}}
	if c != want {
		t.Errorf("Corners() = %v, want %v", c, want)
	}
}

func TestNormal(t *testing.T) {
	n := unitTop().Normal()
	if n.Y <= 0 || n.X != 0 || n.Z != 0 {
		t.Errorf("Normal() = %v, want +Y", n)
	}
}

func TestAddTrianglesWinding(t *testing.T) {
	q := unitTop()
	mat := &render.Material{Name: "test"}
	tris := q.AddTriangles(nil, mat, math.Identity())

	if len(tris) != 2 {
		t.Fatalf("expected 2 triangles, got %d", len(tris))
	}
	qn := q.Normal()
	for i, tri := range tris {
		if tri.Material != mat {
			t.Errorf("triangle %d lost its material", i)
		}
		if tri.Normal().Dot(qn) <= 0 {
			t.Errorf("triangle %d winds against the quad normal", i)
		}
	}
}

func TestAddTrianglesUV(t *testing.T) {
	q := NewQuad(
		math.Vec3{X: 0, Y: 0, Z: 0},
		math.Vec3{X: 1, Y: 0, Z: 0},
		math.Vec3{X: 0, Y: 1, Z: 0},
		math.Vec4{X: 0.25, Y: 0.5, Z: 0.75, W: 1},
	)
	tris := q.AddTriangles(nil, nil, math.Identity())

	// Origin maps to (u0, v0), UEnd to (u1, v0), VEnd to (u0, v1).
	uvAt := map[math.Vec3]math.Vec2{}
	for _, tri := range tris {
		uvAt[tri.A] = tri.UVA
		uvAt[tri.B] = tri.UVB
		uvAt[tri.C] = tri.UVC
	}
	want := map[math.Vec3]math.Vec2{
		{X: 0, Y: 0, Z: 0}: {X: 0.25, Y: 0.75},
		{X: 1, Y: 0, Z: 0}: {X: 0.5, Y: 0.75},
		{X: 0, Y: 1, Z: 0}: {X: 0.25, Y: 1},
		{X: 1, Y: 1, Z: 0}: {X: 0.5, Y: 1},
	}
	for p, uv := range want {
		if got, ok := uvAt[p]; !ok || got != uv {
			t.Errorf("uv at %v = %v, want %v", p, got, uv)
		}
	}
}

func TestAddTrianglesTransform(t *testing.T) {
	tris := unitTop().AddTriangles(nil, nil, math.Identity().Translate(10, 0, -5))
	if got := tris[0].A; got != (math.Vec3{X: 10, Y: 1, Z: -4}) {
		t.Errorf("translated origin = %v", got)
	}
}

func TestAddAllAppends(t *testing.T) {
	quads := []Quad{unitTop(), unitTop(), unitTop()}
	dst := make([]render.Triangle, 1)
	dst = AddAll(dst, quads, nil, math.Identity())
	if len(dst) != 7 {
		t.Errorf("expected 7 triangles, got %d", len(dst))
	}
}
