// Package entity composes positioned scene entities from fixed and
// compiled geometry and converts them to and from documents.
package entity

import (
	"errors"
	"fmt"

	"github.com/Faultbox/cubeforge/internal/model"
	"github.com/Faultbox/cubeforge/internal/render"
	"github.com/Faultbox/cubeforge/internal/texture"
	"github.com/Faultbox/cubeforge/pkg/document"
	"github.com/Faultbox/cubeforge/pkg/math"
)

// Errors returned when reconstructing entities.
var (
	ErrUnknownKind  = errors.New("unknown entity kind")
	ErrMissingField = errors.New("missing entity field")
	ErrInvalidField = errors.New("invalid entity field")
)

// Kind discriminates entity documents.
type Kind string

const (
	KindArmorStand Kind = "armor_stand"
	KindItem       Kind = "item"
)

// Entity is a positioned scene object. The set of implementations is
// closed: ArmorStand and Item.
type Entity interface {
	Kind() Kind
	Position() math.Vec3
	// Primitives returns freshly built world-space triangles.
	Primitives(env *Env, offset math.Vec3) []render.Triangle
	// Document returns the entity as a kind-tagged document.
	Document() *document.Object

	sealed()
}

// Env carries the shared resources entities render with.
type Env struct {
	Textures *texture.Cache
	Items    *model.Library
	UVScale  float64
}

// NewEnv creates an environment whose item library compiles through
// textures. items may be nil.
func NewEnv(textures *texture.Cache, items *model.Library) *Env {
	return &Env{Textures: textures, Items: items, UVScale: model.DefaultUVScale}
}

func (e *Env) material(ref string) *render.Material {
	if e == nil || e.Textures == nil {
		return render.NewTextureMaterial(texture.Detached(ref))
	}
	return render.NewTextureMaterial(e.Textures.Resolve(ref))
}

func (e *Env) item(id string) *model.CompiledModel {
	if e != nil && e.Items != nil {
		return e.Items.Item(id)
	}
	var cache *texture.Cache
	uvScale := model.DefaultUVScale
	if e != nil {
		cache = e.Textures
		if e.UVScale > 0 {
			uvScale = e.UVScale
		}
	}
	return model.NewCompiler(cache).Compile(model.FallbackCuboids(uvScale), uvScale)
}

// FromDocument rebuilds an entity from a document produced by
// Entity.Document.
func FromDocument(doc *document.Object) (Entity, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: kind", ErrMissingField)
	}
	kv, ok := doc.Get("kind")
	if !ok {
		return nil, fmt.Errorf("%w: kind", ErrMissingField)
	}
	kind := Kind(kv.AsString(""))
	switch kind {
	case KindArmorStand:
		e, err := armorStandFromDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("armor stand: %w", err)
		}
		return e, nil
	case KindItem:
		e, err := itemFromDocument(doc)
		if err != nil {
			return nil, fmt.Errorf("item: %w", err)
		}
		return e, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kv.AsString(kv.Kind().String()))
	}
}

func positionField(doc *document.Object) (math.Vec3, error) {
	obj, ok := doc.Object("position")
	if !ok {
		if doc.Has("position") {
			return math.Vec3{}, fmt.Errorf("%w: position is not an object", ErrInvalidField)
		}
		return math.Vec3{}, fmt.Errorf("%w: position", ErrMissingField)
	}
	pos, err := math.Vec3FromDocument(obj)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("%w: position: %v", ErrInvalidField, err)
	}
	return pos, nil
}
