package entity

import (
	"fmt"

	"github.com/Faultbox/cubeforge/internal/render"
	"github.com/Faultbox/cubeforge/pkg/document"
	"github.com/Faultbox/cubeforge/pkg/math"
)

// Item is a free-standing item model, also used for equipped gear.
type Item struct {
	Pos math.Vec3
	ID  string
}

// NewItem creates an item entity.
func NewItem(id string, pos math.Vec3) *Item {
	return &Item{Pos: pos, ID: id}
}

func (*Item) sealed() {}

// Kind returns KindItem.
func (*Item) Kind() Kind { return KindItem }

// Position returns the item's world position.
func (i *Item) Position() math.Vec3 { return i.Pos }

// Primitives renders the item model centred on its block. Unknown or
// malformed ids render the fallback cube.
func (i *Item) Primitives(env *Env, offset math.Vec3) []render.Triangle {
	m := env.item(i.ID)
	tr := math.Identity().Translate(-0.5, 0, -0.5).TranslateVec(i.Pos.Add(offset))
	return m.AddTriangles(nil, tr)
}

// Document returns {kind, position, id}.
func (i *Item) Document() *document.Object {
	return document.NewObject().
		SetString("kind", string(KindItem)).
		SetObject("position", i.Pos.Document()).
		SetString("id", i.ID)
}

func itemFromDocument(doc *document.Object) (*Item, error) {
	pos, err := positionField(doc)
	if err != nil {
		return nil, err
	}
	v, ok := doc.Get("id")
	if !ok {
		return nil, fmt.Errorf("%w: id", ErrMissingField)
	}
	if v.Kind() != document.KindString {
		return nil, fmt.Errorf("%w: id is %s", ErrInvalidField, v.Kind())
	}
	return NewItem(v.AsString(""), pos), nil
}
