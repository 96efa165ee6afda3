package model

import (
	"go.uber.org/zap"

	"github.com/Faultbox/cubeforge/internal/geom"
	"github.com/Faultbox/cubeforge/internal/logger"
	"github.com/Faultbox/cubeforge/internal/render"
	"github.com/Faultbox/cubeforge/internal/texture"
	"github.com/Faultbox/cubeforge/pkg/math"
)

// Unit is the number of model units per block.
const Unit = 16.0

// DefaultUVScale is the texture resolution assumed when none is given.
const DefaultUVScale = 16.0

// Geometry is the texture-unbound output of Build.
// Refs[i] is the texture reference of Quads[i].
type Geometry struct {
	Quads []geom.Quad
	Refs  []string
}

// Build turns cuboids into one quad per visible face, in cuboid then face
// order. Faces with unknown orientations are skipped.
func Build(cuboids []Cuboid, uvScale float64) Geometry {
	if uvScale <= 0 {
		uvScale = DefaultUVScale
	}

	var g Geometry
	for _, cube := range cuboids {
		if !cube.Visible {
			continue
		}
		from := cube.Start.Scale(1 / Unit)
		to := cube.End.Scale(1 / Unit)

		for _, face := range cube.Faces {
			if !face.Visible {
				continue
			}
			origin, uEnd, vEnd, ok := FacePoints(face.Orientation, face.Rotation, from, to)
			if !ok {
				continue
			}
			g.Quads = append(g.Quads, geom.NewQuad(origin, uEnd, vEnd, faceUV(face, uvScale)))
			g.Refs = append(g.Refs, face.Texture)
		}
	}
	return g
}

// faceUV flips V so that top-down texture rows map to bottom-up UV space.
func faceUV(face Face, uvScale float64) math.Vec4 {
	uv := math.Vec4{
		X: face.UV0.X,
		Y: face.UV1.X,
		Z: uvScale - face.UV1.Y,
		W: uvScale - face.UV0.Y,
	}
	return uv.Scale(1 / uvScale)
}

// CompiledModel is a list of quads with the texture each one renders with.
type CompiledModel struct {
	Quads    []geom.Quad
	Textures []*texture.Texture
	Refs     []string

	materials []*render.Material
}

// Len returns the number of quads.
func (m *CompiledModel) Len() int {
	return len(m.Quads)
}

// AddTriangles appends the model's triangles under tr.
func (m *CompiledModel) AddTriangles(dst []render.Triangle, tr math.Transform) []render.Triangle {
	for i, q := range m.Quads {
		dst = q.AddTriangles(dst, m.materials[i], tr)
	}
	return dst
}

// Compiler binds compiled geometry to textures from a shared cache.
type Compiler struct {
	Textures *texture.Cache
}

// NewCompiler creates a compiler resolving textures through cache.
func NewCompiler(cache *texture.Cache) *Compiler {
	return &Compiler{Textures: cache}
}

// Compile builds the cuboids and resolves every new texture reference in
// one batch.
func (c *Compiler) Compile(cuboids []Cuboid, uvScale float64) *CompiledModel {
	g := Build(cuboids, uvScale)

	m := &CompiledModel{
		Quads:     g.Quads,
		Refs:      g.Refs,
		Textures:  make([]*texture.Texture, len(g.Refs)),
		materials: make([]*render.Material, len(g.Refs)),
	}
	if len(g.Refs) == 0 {
		return m
	}

	if c.Textures != nil {
		m.Textures = c.Textures.ResolveAll(g.Refs)
	} else {
		detached := make(map[string]*texture.Texture)
		for i, ref := range g.Refs {
			tex, ok := detached[ref]
			if !ok {
				tex = texture.Detached(ref)
				detached[ref] = tex
			}
			m.Textures[i] = tex
		}
	}

	byTexture := make(map[*texture.Texture]*render.Material)
	for i, tex := range m.Textures {
		mat, ok := byTexture[tex]
		if !ok {
			mat = render.NewTextureMaterial(tex)
			byTexture[tex] = mat
		}
		m.materials[i] = mat
	}

	logger.Named("model").Debug("compiled model",
		zap.Int("cuboids", len(cuboids)),
		zap.Int("quads", len(m.Quads)))
	return m
}
