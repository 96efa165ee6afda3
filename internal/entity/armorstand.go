package entity

import (
	"fmt"

	"github.com/Faultbox/cubeforge/internal/geom"
	"github.com/Faultbox/cubeforge/internal/render"
	"github.com/Faultbox/cubeforge/pkg/document"
	"github.com/Faultbox/cubeforge/pkg/math"
)

// StandTexture is the baked texture of the stand's own geometry.
const StandTexture = "entity/armorstand/wood"

// HeadOffset is where an equipped helmet attaches, relative to the stand.
var HeadOffset = math.Vec3{X: 0, Y: 1.7, Z: 0}

// Armor slots under attributes.armor.
const (
	SlotHead  = "head"
	SlotChest = "chest"
	SlotLegs  = "legs"
	SlotBoots = "boots"
)

// ArmorStand is a stand with an optional helmet. Only the head slot is
// rendered; the other slots are kept in Attributes for round trips.
type ArmorStand struct {
	Pos        math.Vec3
	Yaw        float64 // degrees
	Attributes *document.Object
}

// NewArmorStand creates a stand. A nil attributes bag becomes an empty
// object.
func NewArmorStand(pos math.Vec3, yaw float64, attributes *document.Object) *ArmorStand {
	if attributes == nil {
		attributes = document.NewObject()
	}
	return &ArmorStand{Pos: pos, Yaw: yaw, Attributes: attributes}
}

func (*ArmorStand) sealed() {}

// Kind returns KindArmorStand.
func (*ArmorStand) Kind() Kind { return KindArmorStand }

// Position returns the stand's world position.
func (a *ArmorStand) Position() math.Vec3 { return a.Pos }

// Armor returns the item id in slot, or "".
func (a *ArmorStand) Armor(slot string) string {
	v, _ := a.Attributes.Lookup("armor", slot)
	return v.AsString("")
}

// Primitives emits the helmet first, then the base and the body.
func (a *ArmorStand) Primitives(env *Env, offset math.Vec3) []render.Triangle {
	var out []render.Triangle

	if head := a.Armor(SlotHead); head != "" {
		helmet := NewItem(head, a.Pos.Add(HeadOffset))
		out = append(out, helmet.Primitives(env, offset)...)
	}

	mat := env.material(StandTexture)
	world := a.Pos.Add(offset)

	base := math.Identity().Translate(-0.5, 0, -0.5).TranslateVec(world)
	out = geom.AddAll(out, standBase, mat, base)

	body := math.Identity().
		Translate(-0.5, 0, -0.5).
		RotateY(math.DegToRad(360 - a.Yaw)).
		TranslateVec(world)
	return geom.AddAll(out, standBody, mat, body)
}

// Document returns {kind, position, rotation, attributes}.
func (a *ArmorStand) Document() *document.Object {
	attrs := a.Attributes.Clone()
	if attrs == nil {
		attrs = document.NewObject()
	}
	return document.NewObject().
		SetString("kind", string(KindArmorStand)).
		SetObject("position", a.Pos.Document()).
		SetNumber("rotation", a.Yaw).
		SetObject("attributes", attrs)
}

func armorStandFromDocument(doc *document.Object) (*ArmorStand, error) {
	pos, err := positionField(doc)
	if err != nil {
		return nil, err
	}

	rv, ok := doc.Get("rotation")
	if !ok {
		return nil, fmt.Errorf("%w: rotation", ErrMissingField)
	}
	if rv.Kind() != document.KindNumber {
		return nil, fmt.Errorf("%w: rotation is %s", ErrInvalidField, rv.Kind())
	}

	// Documents written before attributes existed used "stuff".
	attrs := document.NewObject()
	for _, key := range []string{"attributes", "stuff"} {
		v, ok := doc.Get(key)
		if !ok {
			continue
		}
		obj, ok := v.AsObject()
		if !ok {
			return nil, fmt.Errorf("%w: %s is %s", ErrInvalidField, key, v.Kind())
		}
		attrs = obj.Clone()
		break
	}

	return NewArmorStand(pos, rv.AsNumber(0), attrs), nil
}
