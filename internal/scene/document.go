package scene

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeforge/internal/entity"
	"github.com/Faultbox/cubeforge/internal/logger"
	"github.com/Faultbox/cubeforge/pkg/document"
)

// ErrInvalidScene is returned when a scene document is unusable as a whole.
var ErrInvalidScene = errors.New("invalid scene")

// Version is the scene document version written by Document.
const Version = 1

// Document returns {version, name, entities}.
func (s *Scene) Document() *document.Object {
	items := make([]document.Value, len(s.Entities))
	for i, e := range s.Entities {
		items[i] = document.ObjectValue(e.Document())
	}
	return document.NewObject().
		SetNumber("version", Version).
		SetString("name", s.Name).
		Set("entities", document.Array(items...))
}

// FromDocument rebuilds a scene. Entity records that fail validation or
// reconstruction are logged and dropped; dropped reports how many.
func FromDocument(doc *document.Object, validate bool) (s *Scene, dropped int, err error) {
	if doc == nil {
		return nil, 0, fmt.Errorf("%w: empty document", ErrInvalidScene)
	}
	if validate {
		if err := ValidateDocument(doc); err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrInvalidScene, err)
		}
	}
	ev, ok := doc.Get("entities")
	if !ok || ev.Kind() != document.KindArray {
		return nil, 0, fmt.Errorf("%w: entities must be an array", ErrInvalidScene)
	}
	if v, ok := doc.Get("version"); ok && v.AsNumber(0) > Version {
		return nil, 0, fmt.Errorf("%w: unsupported version %v", ErrInvalidScene, v.AsNumber(0))
	}

	name, _ := doc.Get("name")
	s = New(name.AsString(""))
	log := logger.Named("scene")

	for i, rec := range ev.AsArray() {
		if validate {
			if verr := ValidateEntity(rec); verr != nil {
				log.Warn("dropping invalid entity record", zap.Int("index", i), zap.Error(verr))
				dropped++
				continue
			}
		}
		obj, ok := rec.AsObject()
		if !ok {
			log.Warn("dropping non-object entity record", zap.Int("index", i), zap.Stringer("kind", rec.Kind()))
			dropped++
			continue
		}
		e, eerr := entity.FromDocument(obj)
		if eerr != nil {
			log.Warn("dropping entity record", zap.Int("index", i), zap.Error(eerr))
			dropped++
			continue
		}
		s.Add(e)
	}
	return s, dropped, nil
}
