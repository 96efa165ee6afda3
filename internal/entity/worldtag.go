package entity

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/cubeforge/internal/logger"
	"github.com/Faultbox/cubeforge/pkg/document"
	"github.com/Faultbox/cubeforge/pkg/math"
	"github.com/Faultbox/cubeforge/pkg/nbt"
)

// armorSlots maps ArmorItems indices to slot names.
var armorSlots = [4]string{SlotBoots, SlotLegs, SlotChest, SlotHead}

// ArmorStandFromTag builds a stand from a world entity tag. Empty armor
// slots are omitted from attributes.armor.
func ArmorStandFromTag(pos math.Vec3, yaw float64, tag nbt.Tag) *ArmorStand {
	armor := document.NewObject()
	items := tag.Get("ArmorItems")
	for i, slot := range armorSlots {
		if id := items.Index(i).Get("id").StringValue(""); id != "" {
			armor.SetString(slot, id)
		}
	}
	attrs := document.NewObject().SetObject("armor", armor)

	logger.Named("entity").Debug("armor stand from world tag",
		zap.Any("position", pos),
		zap.Float64("yaw", yaw),
		zap.Strings("armor", armor.Keys()))
	return NewArmorStand(pos, yaw, attrs)
}

// FromWorldTag builds an entity from a world entity tag with id, Pos and
// Rotation fields.
func FromWorldTag(tag nbt.Tag) (Entity, error) {
	id := tag.Get("id").StringValue("")

	p := tag.Get("Pos")
	if p.Len() < 3 {
		return nil, fmt.Errorf("world tag %q: %w: Pos", id, ErrMissingField)
	}
	pos := math.Vec3{X: p.Index(0).DoubleValue(0), Y: p.Index(1).DoubleValue(0), Z: p.Index(2).DoubleValue(0)}

	switch id {
	case "minecraft:armor_stand", "ArmorStand":
		yaw := tag.Get("Rotation").Index(0).DoubleValue(0)
		return ArmorStandFromTag(pos, yaw, tag), nil
	case "minecraft:item", "Item":
		itemID := tag.Get("Item").Get("id").StringValue("")
		if itemID == "" {
			return nil, fmt.Errorf("world tag %q: %w: Item.id", id, ErrMissingField)
		}
		return NewItem(itemID, pos), nil
	case "":
		return nil, fmt.Errorf("world tag: %w: id", ErrMissingField)
	default:
		return nil, fmt.Errorf("world tag: %w: %q", ErrUnknownKind, id)
	}
}
