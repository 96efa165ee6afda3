package nbt

import "testing"

func TestChainedLookupDefaults(t *testing.T) {
	tag := Compound{
		"ArmorItems": List{
			Compound{},
			Compound{"id": String("")},
			Compound{"id": String("minecraft:iron_chestplate")},
		},
		"Rotation": List{Float(90), Float(0)},
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"present", tag.Get("ArmorItems").Index(2).Get("id").StringValue("-"), "minecraft:iron_chestplate"},
		{"empty string", tag.Get("ArmorItems").Index(1).Get("id").StringValue("-"), ""},
		{"missing id", tag.Get("ArmorItems").Index(0).Get("id").StringValue("-"), "-"},
		{"out of range", tag.Get("ArmorItems").Index(3).Get("id").StringValue("-"), "-"},
		{"negative index", tag.Get("ArmorItems").Index(-1).Get("id").StringValue("-"), "-"},
		{"missing list", tag.Get("HandItems").Index(0).Get("id").StringValue("-"), "-"},
		{"wrong type", tag.Get("Rotation").StringValue("-"), "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestNumericPayloads(t *testing.T) {
	l := List{Double(1.5), Float(90), Int(-3), String("x")}
	want := []float64{1.5, 90, -3, 7}
	for i, w := range want {
		if got := l.Index(i).DoubleValue(7); got != w {
			t.Errorf("Index(%d).DoubleValue = %v, want %v", i, got, w)
		}
	}
	if l.Len() != 4 {
		t.Errorf("Len() = %d, want 4", l.Len())
	}
}
