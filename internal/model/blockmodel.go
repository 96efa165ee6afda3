package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/cubeforge/internal/texture"
	"github.com/Faultbox/cubeforge/pkg/document"
	"github.com/Faultbox/cubeforge/pkg/math"
)

// ErrInvalidBlockModel is returned for block model documents whose
// elements cannot be read.
var ErrInvalidBlockModel = errors.New("invalid block model")

// maxTextureIndirection bounds "#var" chains so cycles terminate.
const maxTextureIndirection = 16

// CuboidsFromDocument reads the "elements" of a parsed block model
// document. Face textures of the form "#var" are looked up in the
// document's "textures" object; variables without a binding are kept as
// "#var" refs. Faces without "uv" get the element's projected extent in
// uvScale texture space. A document without elements yields no cuboids.
func CuboidsFromDocument(doc *document.Object, uvScale float64) ([]Cuboid, error) {
	if uvScale <= 0 {
		uvScale = DefaultUVScale
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidBlockModel)
	}

	elements, ok := doc.Get("elements")
	if !ok || elements.IsNull() {
		return nil, nil
	}
	if elements.Kind() != document.KindArray {
		return nil, fmt.Errorf("%w: elements is %s", ErrInvalidBlockModel, elements.Kind())
	}

	vars := TextureVars(doc)
	var cuboids []Cuboid
	for i, v := range elements.AsArray() {
		el, ok := v.AsObject()
		if !ok {
			return nil, fmt.Errorf("%w: element %d is %s", ErrInvalidBlockModel, i, v.Kind())
		}
		cube, err := readElement(el, vars, uvScale)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		cuboids = append(cuboids, cube)
	}
	return cuboids, nil
}

// TextureVars returns the string entries of the document's "textures".
func TextureVars(doc *document.Object) map[string]string {
	vars := make(map[string]string)
	textures, ok := doc.Object("textures")
	if !ok {
		return vars
	}
	for _, key := range textures.Keys() {
		v, _ := textures.Get(key)
		if v.Kind() == document.KindString {
			vars[key] = v.AsString("")
		}
	}
	return vars
}

// ResolveTextureRef follows "#var" indirections through vars.
func ResolveTextureRef(ref string, vars map[string]string) string {
	for i := 0; i < maxTextureIndirection && texture.IsUnresolved(ref); i++ {
		next, ok := vars[strings.TrimPrefix(ref, texture.UnresolvedMarker)]
		if !ok || next == "" {
			return ref
		}
		ref = next
	}
	return ref
}

func readElement(el *document.Object, vars map[string]string, uvScale float64) (Cuboid, error) {
	from, err := vec3Array(el, "from")
	if err != nil {
		return Cuboid{}, err
	}
	to, err := vec3Array(el, "to")
	if err != nil {
		return Cuboid{}, err
	}

	cube := Cuboid{Start: from, End: to, Visible: true}
	faces, ok := el.Object("faces")
	if !ok {
		return cube, nil
	}
	for _, name := range faces.Keys() {
		fo, ok := faces.Object(name)
		if !ok {
			return Cuboid{}, fmt.Errorf("%w: face %s is not an object", ErrInvalidBlockModel, name)
		}
		face, err := readFace(Orientation(name), fo, from, to, vars, uvScale)
		if err != nil {
			return Cuboid{}, fmt.Errorf("face %s: %w", name, err)
		}
		cube.Faces = append(cube.Faces, face)
	}
	return cube, nil
}

func readFace(o Orientation, fo *document.Object, from, to math.Vec3, vars map[string]string, uvScale float64) (Face, error) {
	face := Face{Orientation: o, Visible: true}

	tv, _ := fo.Get("texture")
	face.Texture = ResolveTextureRef(tv.AsString(texture.UnresolvedMarker+"missing"), vars)

	if uvv, ok := fo.Get("uv"); ok {
		nums, err := numbers(uvv, 4)
		if err != nil {
			return Face{}, fmt.Errorf("uv: %w", err)
		}
		face.UV0 = math.Vec2{X: nums[0], Y: nums[1]}
		face.UV1 = math.Vec2{X: nums[2], Y: nums[3]}
	} else {
		face.UV0, face.UV1 = defaultUV(o, from, to, uvScale)
	}

	if rv, ok := fo.Get("rotation"); ok {
		deg := rv.AsNumber(-1)
		if rv.Kind() != document.KindNumber || deg < 0 || int(deg)%90 != 0 || deg != float64(int(deg)) {
			return Face{}, fmt.Errorf("%w: rotation must be a multiple of 90", ErrInvalidBlockModel)
		}
		face.Rotation = int(deg) / 90
	}
	return face, nil
}

// defaultUV projects the element onto the face plane, measured from the
// top of the texture, and scales the result to uvScale texture space.
func defaultUV(o Orientation, from, to math.Vec3, uvScale float64) (uv0, uv1 math.Vec2) {
	switch o {
	case Up, Down:
		uv0, uv1 = math.Vec2{X: from.X, Y: from.Z}, math.Vec2{X: to.X, Y: to.Z}
	case East, West:
		uv0, uv1 = math.Vec2{X: from.Z, Y: Unit - to.Y}, math.Vec2{X: to.Z, Y: Unit - from.Y}
	default:
		uv0, uv1 = math.Vec2{X: from.X, Y: Unit - to.Y}, math.Vec2{X: to.X, Y: Unit - from.Y}
	}
	k := uvScale / Unit
	return uv0.Scale(k), uv1.Scale(k)
}

func vec3Array(el *document.Object, key string) (math.Vec3, error) {
	v, ok := el.Get(key)
	if !ok {
		return math.Vec3{}, fmt.Errorf("%w: missing %s", ErrInvalidBlockModel, key)
	}
	nums, err := numbers(v, 3)
	if err != nil {
		return math.Vec3{}, fmt.Errorf("%s: %w", key, err)
	}
	return math.Vec3{X: nums[0], Y: nums[1], Z: nums[2]}, nil
}

func numbers(v document.Value, n int) ([]float64, error) {
	items := v.AsArray()
	if v.Kind() != document.KindArray || len(items) != n {
		return nil, fmt.Errorf("%w: want array of %d numbers", ErrInvalidBlockModel, n)
	}
	out := make([]float64, n)
	for i, item := range items {
		if item.Kind() != document.KindNumber {
			return nil, fmt.Errorf("%w: element %d is %s", ErrInvalidBlockModel, i, item.Kind())
		}
		out[i] = item.AsNumber(0)
	}
	return out, nil
}
