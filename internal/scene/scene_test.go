package scene

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/cubeforge/internal/entity"
	"github.com/Faultbox/cubeforge/internal/model"
	"github.com/Faultbox/cubeforge/internal/texture"
	"github.com/Faultbox/cubeforge/pkg/document"
	"github.com/Faultbox/cubeforge/pkg/math"
)

func testEnv() *entity.Env {
	cache := texture.NewCache(texture.LoaderFunc(func([]texture.Request) []string { return nil }), "")
	return entity.NewEnv(cache, model.NewLibrary(model.NewCompiler(cache), nil, "minecraft", 16))
}

func helmetAttrs(id string) *document.Object {
	return document.NewObject().SetObject("armor", document.NewObject().SetString("head", id))
}

func testScene() *Scene {
	s := New("gallery")
	for i := 0; i < 10; i++ {
		pos := math.Vec3{X: float64(i * 2), Y: 64, Z: 0}
		if i%3 == 0 {
			s.Add(entity.NewItem("minecraft:apple", pos))
			continue
		}
		attrs := document.NewObject()
		if i%2 == 0 {
			attrs = helmetAttrs("minecraft:iron_helmet")
		}
		s.Add(entity.NewArmorStand(pos, float64(i*30), attrs))
	}
	return s
}

func TestPrimitivesMatchSequentialOrder(t *testing.T) {
	env := testEnv()
	s := testScene()
	offset := math.Vec3{X: 0.5, Y: 0, Z: 0.5}

	got, err := s.Primitives(context.Background(), env, offset, 4)
	require.NoError(t, err)

	var want []math.Vec3
	for _, e := range s.Entities {
		for _, tri := range e.Primitives(env, offset) {
			want = append(want, tri.A, tri.B, tri.C)
		}
	}
	require.Len(t, got, len(want)/3)
	for i, tri := range got {
		assert.Equal(t, want[3*i], tri.A)
		assert.Equal(t, want[3*i+1], tri.B)
		assert.Equal(t, want[3*i+2], tri.C)
	}
}

func TestPrimitivesEmptyScene(t *testing.T) {
	tris, err := New("empty").Primitives(context.Background(), testEnv(), math.Vec3{}, 8)
	require.NoError(t, err)
	assert.Empty(t, tris)
}

func TestPrimitivesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testScene().Primitives(ctx, testEnv(), math.Vec3{}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCountByKind(t *testing.T) {
	counts := testScene().CountByKind()
	assert.Equal(t, 4, counts[entity.KindItem])
	assert.Equal(t, 6, counts[entity.KindArmorStand])
}

func TestSceneDocumentRoundTrip(t *testing.T) {
	s := testScene()
	back, dropped, err := FromDocument(s.Document(), true)
	require.NoError(t, err)
	assert.Zero(t, dropped)
	assert.Equal(t, s.Name, back.Name)
	require.Equal(t, s.Len(), back.Len())
	for i := range s.Entities {
		assert.True(t, s.Entities[i].Document().Equal(back.Entities[i].Document()), "entity %d differs", i)
	}
}

func badRecordsDocument() *document.Object {
	good := entity.NewArmorStand(math.Vec3{X: 1, Y: 2, Z: 3}, 45, helmetAttrs("minecraft:leather_helmet")).Document()
	wrongKind := document.NewObject().
		SetString("kind", "painting").
		SetObject("position", math.Vec3{}.Document())
	noRotation := document.NewObject().
		SetString("kind", "armor_stand").
		SetObject("position", math.Vec3{}.Document())
	notObject := document.String("stand")
	item := entity.NewItem("minecraft:apple", math.Vec3{}).Document()

	return document.NewObject().
		SetNumber("version", 1).
		SetString("name", "mixed").
		Set("entities", document.Array(
			document.ObjectValue(good),
			document.ObjectValue(wrongKind),
			document.ObjectValue(noRotation),
			notObject,
			document.ObjectValue(item),
		))
}

func TestFromDocumentDropsBadRecords(t *testing.T) {
	for _, validate := range []bool{true, false} {
		s, dropped, err := FromDocument(badRecordsDocument(), validate)
		require.NoError(t, err)
		assert.Equal(t, 3, dropped, "validate=%v", validate)
		require.Equal(t, 2, s.Len(), "validate=%v", validate)
		assert.Equal(t, entity.KindArmorStand, s.Entities[0].Kind())
		assert.Equal(t, entity.KindItem, s.Entities[1].Kind())
	}
}

func TestSchemaRejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name string
		rec  *document.Object
	}{
		{"position string", document.NewObject().SetString("kind", "item").SetString("position", "0,0,0").SetString("id", "minecraft:apple")},
		{"position missing z", document.NewObject().SetString("kind", "item").
			SetObject("position", document.NewObject().SetNumber("x", 0).SetNumber("y", 0)).SetString("id", "minecraft:apple")},
		{"empty item id", entity.NewItem("", math.Vec3{}).Document()},
		{"attributes not object", document.NewObject().SetString("kind", "armor_stand").
			SetObject("position", math.Vec3{}.Document()).SetNumber("rotation", 0).SetString("attributes", "none")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateEntity(document.ObjectValue(tt.rec)))
		})
	}

	ok := entity.NewArmorStand(math.Vec3{}, 0, helmetAttrs("minecraft:iron_helmet")).Document()
	assert.NoError(t, ValidateEntity(document.ObjectValue(ok)))
}

func TestFromDocumentKeepsStructuredAttributes(t *testing.T) {
	elytra := document.NewObject().
		SetString("id", "minecraft:elytra").
		SetNumber("count", 1)
	attrs := document.NewObject().
		SetObject("armor", document.NewObject().
			SetString("head", "minecraft:iron_helmet").
			SetObject("chest", elytra).
			SetNumber("boots", 7)).
		SetObject("pose", document.NewObject().SetNumber("head_pitch", 15))
	stand := entity.NewArmorStand(math.Vec3{X: 1, Y: 64, Z: -3}, 90, attrs)

	doc := New("future").Document()
	doc.Set("entities", document.Array(document.ObjectValue(stand.Document())))

	for _, validate := range []bool{true, false} {
		s, dropped, err := FromDocument(doc, validate)
		require.NoError(t, err)
		assert.Zero(t, dropped, "validate=%v", validate)
		require.Equal(t, 1, s.Len(), "validate=%v", validate)
		assert.True(t, stand.Document().Equal(s.Entities[0].Document()), "validate=%v", validate)
	}
}

func TestFromDocumentInvalidScene(t *testing.T) {
	tests := []struct {
		name     string
		doc      *document.Object
		validate bool
	}{
		{"nil", nil, false},
		{"no entities", document.NewObject().SetString("name", "x"), false},
		{"entities not array", document.NewObject().SetString("entities", "x"), false},
		{"entities not array validated", document.NewObject().SetString("entities", "x"), true},
		{"future version", document.NewObject().SetNumber("version", 99).Set("entities", document.Array()), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := FromDocument(tt.doc, tt.validate)
			assert.ErrorIs(t, err, ErrInvalidScene)
		})
	}
}
