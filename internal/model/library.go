package model

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeforge/internal/logger"
	"github.com/Faultbox/cubeforge/pkg/document"
	"github.com/Faultbox/cubeforge/pkg/math"
)

// ErrMalformedItemID is returned for ids that are not "namespace:name".
var ErrMalformedItemID = errors.New("malformed item id")

// maxParentDepth bounds model parent chains.
const maxParentDepth = 8

// FallbackRef is the texture ref of the fallback item cube. It is never
// bound, so it renders with the placeholder texture.
const FallbackRef = "#missing"

// ItemID is a parsed "namespace:name" item id.
type ItemID struct {
	Namespace string
	Name      string
}

func (id ItemID) String() string {
	return id.Namespace + ":" + id.Name
}

// ParseItemID parses an item id. A bare name gets defaultNamespace.
func ParseItemID(s, defaultNamespace string) (ItemID, error) {
	ns, name := defaultNamespace, s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		ns, name = s[:i], s[i+1:]
	}
	if !validIDPart(ns, false) || !validIDPart(name, true) {
		return ItemID{}, fmt.Errorf("%w: %q", ErrMalformedItemID, s)
	}
	return ItemID{Namespace: ns, Name: name}, nil
}

func validIDPart(s string, allowSlash bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-', r == '.':
		case r == '/' && allowSlash:
		default:
			return false
		}
	}
	return true
}

// Library compiles item models on first use and caches them by id.
type Library struct {
	compiler  *Compiler
	models    fs.FS
	namespace string
	uvScale   float64

	mu       sync.Mutex
	entries  map[string]*libraryEntry
	fallback libraryEntry
}

type libraryEntry struct {
	once  sync.Once
	model *CompiledModel
}

// NewLibrary creates an item library reading model documents from
// assets/<ns>/models/ in models. models may be nil, in which case only
// registered items resolve.
func NewLibrary(compiler *Compiler, models fs.FS, namespace string, uvScale float64) *Library {
	if namespace == "" {
		namespace = "minecraft"
	}
	if uvScale <= 0 {
		uvScale = DefaultUVScale
	}
	return &Library{
		compiler:  compiler,
		models:    models,
		namespace: namespace,
		uvScale:   uvScale,
		entries:   make(map[string]*libraryEntry),
	}
}

// Register compiles cuboids as the model of item id, replacing any
// cached model.
func (l *Library) Register(id string, cuboids []Cuboid) error {
	parsed, err := ParseItemID(id, l.namespace)
	if err != nil {
		return err
	}
	e := &libraryEntry{}
	e.once.Do(func() { e.model = l.compiler.Compile(cuboids, l.uvScale) })

	l.mu.Lock()
	l.entries[parsed.String()] = e
	l.mu.Unlock()
	return nil
}

// Item returns the compiled model of id. Malformed ids and items without
// a readable model get the fallback cube; Item never returns nil.
func (l *Library) Item(id string) *CompiledModel {
	log := logger.Named("model")
	parsed, err := ParseItemID(id, l.namespace)
	if err != nil {
		log.Debug("using fallback item model", zap.String("item", id), zap.Error(err))
		return l.fallbackModel()
	}
	key := parsed.String()

	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &libraryEntry{}
		l.entries[key] = e
	}
	l.mu.Unlock()

	e.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("item model failed to compile", zap.String("item", key), zap.Any("panic", r))
			}
			if e.model == nil {
				e.model = l.fallbackModel()
			}
		}()

		cuboids, lerr := l.loadItem(parsed)
		if lerr != nil || len(cuboids) == 0 {
			log.Debug("using fallback item model", zap.String("item", key), zap.Error(lerr))
			return
		}
		e.model = l.compiler.Compile(cuboids, l.uvScale)
	})
	return e.model
}

// fallbackModel compiles the fallback cube once per library.
func (l *Library) fallbackModel() *CompiledModel {
	l.fallback.once.Do(func() {
		l.fallback.model = l.compiler.Compile(FallbackCuboids(l.uvScale), l.uvScale)
	})
	return l.fallback.model
}

// FallbackCuboids is a half-block cube standing on the block floor.
func FallbackCuboids(uvScale float64) []Cuboid {
	return []Cuboid{Box(math.Vec3{X: 4, Y: 0, Z: 4}, math.Vec3{X: 12, Y: 8, Z: 12}, FallbackRef, uvScale)}
}

// loadItem reads models/item/<name>.json and its parents, merging texture
// variables with the child's bindings taking precedence.
func (l *Library) loadItem(id ItemID) ([]Cuboid, error) {
	if l.models == nil {
		return nil, fmt.Errorf("no model source for %s", id)
	}

	merged := document.NewObject()
	textures := document.NewObject()
	ref := id.Namespace + ":item/" + id.Name

	for depth := 0; ref != "" && depth < maxParentDepth; depth++ {
		if isGeneratedParent(ref) {
			if !merged.Has("elements") {
				merged.Set("elements", generatedElements())
			}
			break
		}
		doc, err := l.readModel(ref)
		if err != nil {
			if depth == 0 {
				return nil, err
			}
			break
		}
		if t, ok := doc.Object("textures"); ok {
			for _, key := range t.Keys() {
				if !textures.Has(key) {
					v, _ := t.Get(key)
					textures.Set(key, v.Clone())
				}
			}
		}
		if !merged.Has("elements") {
			if el, ok := doc.Get("elements"); ok {
				merged.Set("elements", el.Clone())
			}
		}
		parent, _ := doc.Get("parent")
		ref = parent.AsString("")
	}

	merged.SetObject("textures", textures)
	return CuboidsFromDocument(merged, l.uvScale)
}

func (l *Library) readModel(ref string) (*document.Object, error) {
	ns, name := l.namespace, ref
	if i := strings.IndexByte(ref, ':'); i >= 0 {
		ns, name = ref[:i], ref[i+1:]
	}
	p := path.Join("assets", ns, "models", name+".json")
	data, err := fs.ReadFile(l.models, p)
	if err != nil {
		return nil, fmt.Errorf("reading model %s: %w", p, err)
	}
	doc, err := document.ParseJSONObject(data)
	if err != nil {
		return nil, fmt.Errorf("parsing model %s: %w", p, err)
	}
	return doc, nil
}

func isGeneratedParent(ref string) bool {
	if i := strings.IndexByte(ref, ':'); i >= 0 {
		ref = ref[i+1:]
	}
	switch ref {
	case "builtin/generated", "item/generated", "item/handheld":
		return true
	}
	return false
}

// generatedElements approximates a flat sprite item as a one-pixel thick
// slab textured with layer0.
func generatedElements() document.Value {
	face := func() document.Value {
		return document.ObjectValue(document.NewObject().SetString("texture", "#layer0"))
	}
	faces := document.NewObject()
	for _, o := range Orientations() {
		faces.Set(string(o), face())
	}
	el := document.NewObject().
		Set("from", document.Array(document.Number(0), document.Number(0), document.Number(7.5))).
		Set("to", document.Array(document.Number(16), document.Number(16), document.Number(8.5))).
		SetObject("faces", faces)
	return document.Array(document.ObjectValue(el))
}
