package model

import (
	"sync/atomic"
	"testing"

	"github.com/Faultbox/cubeforge/internal/texture"
	"github.com/Faultbox/cubeforge/pkg/math"
)

func fullCube(faces ...Face) Cuboid {
	return Cuboid{
		Start:   math.Vec3{X: 0, Y: 0, Z: 0},
		End:     math.Vec3{X: 16, Y: 16, Z: 16},
		Visible: true,
		Faces:   faces,
	}
}

func TestBuildFullTopFace(t *testing.T) {
	g := Build([]Cuboid{fullCube(Face{
		Orientation: Up,
		Visible:     true,
		Texture:     "block/stone",
		UV0:         math.Vec2{X: 0, Y: 0},
		UV1:         math.Vec2{X: 16, Y: 16},
	})}, 16)

	if len(g.Quads) != 1 {
		t.Fatalf("expected 1 quad, got %d", len(g.Quads))
	}
	q := g.Quads[0]
	if q.UV != (math.Vec4{X: 0, Y: 1, Z: 0, W: 1}) {
		t.Errorf("UV = %v, want full rectangle", q.UV)
	}
	if q.Origin != (math.Vec3{X: 0, Y: 1, Z: 1}) || q.UEnd != (math.Vec3{X: 1, Y: 1, Z: 1}) || q.VEnd != (math.Vec3{X: 0, Y: 1, Z: 0}) {
		t.Errorf("unexpected points %v %v %v", q.Origin, q.UEnd, q.VEnd)
	}
	for _, p := range q.Corners() {
		if p.Y != 1 {
			t.Errorf("corner %v is not on the top face", p)
		}
	}
	if g.Refs[0] != "block/stone" {
		t.Errorf("ref = %q", g.Refs[0])
	}
}

func TestBuildUVFlip(t *testing.T) {
	g := Build([]Cuboid{fullCube(Face{
		Orientation: South,
		Visible:     true,
		UV0:         math.Vec2{X: 4, Y: 2},
		UV1:         math.Vec2{X: 12, Y: 6},
	})}, 16)

	want := math.Vec4{X: 4.0 / 16, Y: 12.0 / 16, Z: 10.0 / 16, W: 14.0 / 16}
	if g.Quads[0].UV != want {
		t.Errorf("UV = %v, want %v", g.Quads[0].UV, want)
	}
}

func TestBuildUVScale64(t *testing.T) {
	g := Build([]Cuboid{fullCube(Face{
		Orientation: Up,
		Visible:     true,
		UV0:         math.Vec2{X: 0, Y: 0},
		UV1:         math.Vec2{X: 32, Y: 16},
	})}, 64)

	want := math.Vec4{X: 0, Y: 0.5, Z: 0.75, W: 1}
	if g.Quads[0].UV != want {
		t.Errorf("UV = %v, want %v", g.Quads[0].UV, want)
	}
}

func TestRotationKeepsUVRange(t *testing.T) {
	var first math.Vec4
	for rot := 0; rot < 4; rot++ {
		g := Build([]Cuboid{fullCube(Face{
			Orientation: East,
			Visible:     true,
			UV0:         math.Vec2{X: 2, Y: 4},
			UV1:         math.Vec2{X: 10, Y: 14},
			Rotation:    rot,
		})}, 16)

		q := g.Quads[0]
		if rot == 0 {
			first = q.UV
		} else if q.UV != first {
			t.Errorf("rot %d: UV %v differs from %v", rot, q.UV, first)
		}

		// The UV corners handed to triangles are always the same four values.
		uvs := make(map[math.Vec2]bool)
		for _, tri := range q.AddTriangles(nil, nil, math.Identity()) {
			uvs[tri.UVA], uvs[tri.UVB], uvs[tri.UVC] = true, true, true
		}
		want := []math.Vec2{
			{X: first.X, Y: first.Z}, {X: first.Y, Y: first.Z},
			{X: first.X, Y: first.W}, {X: first.Y, Y: first.W},
		}
		if len(uvs) != 4 {
			t.Errorf("rot %d: expected 4 UV corners, got %d", rot, len(uvs))
		}
		for _, uv := range want {
			if !uvs[uv] {
				t.Errorf("rot %d: missing UV corner %v", rot, uv)
			}
		}
	}
}

func TestBuildSkipsAndOrders(t *testing.T) {
	hidden := fullCube(Face{Orientation: Up, Visible: true, Texture: "hidden"})
	hidden.Visible = false

	cubes := []Cuboid{
		fullCube(
			Face{Orientation: North, Visible: true, Texture: "a"},
			Face{Orientation: "sideways", Visible: true, Texture: "unknown"},
			Face{Orientation: South, Visible: false, Texture: "invisible"},
			Face{Orientation: Down, Visible: true, Texture: "b"},
		),
		hidden,
		fullCube(Face{Orientation: West, Visible: true, Texture: "c"}),
	}

	g := Build(cubes, 16)
	want := []string{"a", "b", "c"}
	if len(g.Refs) != len(want) || len(g.Quads) != len(want) {
		t.Fatalf("got refs %v, want %v", g.Refs, want)
	}
	for i := range want {
		if g.Refs[i] != want[i] {
			t.Errorf("ref %d = %q, want %q", i, g.Refs[i], want[i])
		}
	}
}

func TestBuildZeroUVScale(t *testing.T) {
	g := Build([]Cuboid{fullCube(Face{Orientation: Up, Visible: true, UV1: math.Vec2{X: 16, Y: 16}})}, 0)
	if g.Quads[0].UV != (math.Vec4{X: 0, Y: 1, Z: 0, W: 1}) {
		t.Errorf("expected default uv scale, got %v", g.Quads[0].UV)
	}
}

func TestCompileBindsTextures(t *testing.T) {
	var calls atomic.Int32
	loader := texture.LoaderFunc(func(reqs []texture.Request) []string {
		calls.Add(1)
		var missing []string
		for _, r := range reqs {
			missing = append(missing, r.Ref)
		}
		return missing
	})
	compiler := NewCompiler(texture.NewCache(loader, ""))

	cube := Box(math.Vec3{}, math.Vec3{X: 16, Y: 16, Z: 16}, "block/stone", 16)
	cube.Faces[0].Texture = "#top"

	m := compiler.Compile([]Cuboid{cube}, 16)
	if m.Len() != 6 || len(m.Textures) != 6 || len(m.Refs) != 6 {
		t.Fatalf("parallel arrays out of step: %d %d %d", m.Len(), len(m.Textures), len(m.Refs))
	}
	if m.Textures[0].State() != texture.StateUnresolved {
		t.Errorf("expected #top to be unresolved, got %s", m.Textures[0].State())
	}
	for i := 1; i < 6; i++ {
		if m.Textures[i] != m.Textures[1] {
			t.Errorf("face %d: expected shared block/stone handle", i)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 loader call, got %d", calls.Load())
	}

	// A second model reusing the ref does not load again.
	compiler.Compile([]Cuboid{cube}, 16)
	if calls.Load() != 1 {
		t.Errorf("expected cached handles, got %d loader calls", calls.Load())
	}

	tris := m.AddTriangles(nil, math.Identity())
	if len(tris) != 12 {
		t.Fatalf("expected 12 triangles, got %d", len(tris))
	}
	if tris[0].Material.Texture != m.Textures[0] || tris[2].Material.Texture != m.Textures[1] {
		t.Error("triangles bound to the wrong textures")
	}
	if tris[2].Material != tris[4].Material {
		t.Error("faces sharing a texture should share a material")
	}
}

func TestCompileUnresolvedOnlyNeverLoads(t *testing.T) {
	loader := texture.LoaderFunc(func([]texture.Request) []string {
		t.Error("loader must not be called for unresolved refs")
		return nil
	})
	compiler := NewCompiler(texture.NewCache(loader, ""))

	m := compiler.Compile([]Cuboid{fullCube(Face{Orientation: Up, Visible: true, Texture: "#all"})}, 16)
	if m.Len() != 1 {
		t.Fatalf("expected 1 quad, got %d", m.Len())
	}
	if m.Textures[0].Image() != texture.Placeholder() {
		t.Error("expected placeholder-bound quad")
	}
}

func TestCompileWithoutCacheBindsPlaceholders(t *testing.T) {
	m := NewCompiler(nil).Compile([]Cuboid{fullCube(
		Face{Orientation: Up, Visible: true, Texture: "block/stone"},
		Face{Orientation: Down, Visible: true, Texture: "block/stone"},
		Face{Orientation: North, Visible: true, Texture: "block/dirt"},
	)}, 16)

	if m.Len() != 3 {
		t.Fatalf("expected 3 quads, got %d", m.Len())
	}
	for i, tex := range m.Textures {
		if tex == nil {
			t.Fatalf("quad %d has no texture", i)
		}
		if tex.Ref() != m.Refs[i] || tex.Image() != texture.Placeholder() {
			t.Errorf("quad %d: texture %q not placeholder-bound", i, tex.Ref())
		}
	}
	byRef := make(map[string]*texture.Texture)
	for i, tex := range m.Textures {
		if prev, ok := byRef[m.Refs[i]]; ok && prev != tex {
			t.Errorf("quads sharing %q should share a texture", m.Refs[i])
		}
		byRef[m.Refs[i]] = tex
	}
	if len(byRef) != 2 {
		t.Errorf("expected 2 distinct textures, got %d", len(byRef))
	}

	for _, tri := range m.AddTriangles(nil, math.Identity()) {
		if tri.Material == nil || tri.Material.Texture == nil {
			t.Fatal("triangle without a textured material")
		}
	}
}
