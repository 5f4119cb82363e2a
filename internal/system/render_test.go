package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoneng/stoneng/internal/component"
	"github.com/stoneng/stoneng/internal/core/ecs"
	coresys "github.com/stoneng/stoneng/internal/core/system"
	"github.com/stoneng/stoneng/internal/data"
	"github.com/stoneng/stoneng/internal/render"
	"github.com/stoneng/stoneng/internal/world"
)

func renderFrame(t *testing.T, ws *world.State, tileScale float32) []render.Call {
	t.Helper()
	rec := render.NewRecorder()
	ctx := &coresys.Context{
		World:  ws.ECS,
		Window: ecs.WindowSize{W: 800, H: 600},
		View:   ecs.View{X: 10, Y: 20, Z: 1},
	}
	passes := []coresys.System{
		NewClearPass(rec),
		NewTilePass(ws, rec, tileScale),
		NewSpritePass(ws, rec),
		NewLightPass(ws, rec),
		NewTextPass(ws, rec),
	}
	for _, p := range passes {
		p.Update(ctx)
	}
	require.NoError(t, rec.Present())
	return rec.LastFrame()
}

func TestRenderPassOrder(t *testing.T) {
	frame := renderFrame(t, newWorld(), 0)

	var ops []string
	for _, c := range frame {
		op := c.Op
		if op == "sprites" {
			op += ":" + c.Layer.String()
		}
		ops = append(ops, op)
	}
	assert.Equal(t, []string{
		"clear",
		"sprites:floor",
		"sprites:wall",
		"sprites:sprite",
		"lights",
		"text",
		"present",
	}, ops)
}

func TestTilePass(t *testing.T) {
	ws := newWorld()
	grass := &data.SpriteSchema{Name: "grass", Root: 1, Dimensions: data.Dimensions{W: 1, H: 1}}
	arch := &data.SpriteSchema{Name: "arch", Root: 9, Dimensions: data.Dimensions{W: 2, H: 2}}
	ws.Create().Floor(2, -1, grass).ID()
	ws.Create().Wall(1, 1, arch).Color(component.Color{R: 0.5, A: 1}).ID()

	frame := renderFrame(t, ws, 0)

	floors := frame[1].Sprites
	require.Len(t, floors, 1)
	assert.Equal(t, float32(100), floors[0].X)
	assert.Equal(t, float32(-50), floors[0].Y)
	assert.Equal(t, float32(FloorZ), floors[0].Z)
	assert.Equal(t, float32(DefaultTileScale), floors[0].ScaleX)
	assert.Equal(t, uint32(1), floors[0].SpriteID)
	assert.Equal(t, component.White.A, floors[0].A)

	walls := frame[2].Sprites
	require.Len(t, walls, 1)
	assert.Equal(t, float32(WallZ), walls[0].Z)
	assert.Equal(t, uint8(0x11), walls[0].Dims)
	assert.Equal(t, float32(0.5), walls[0].R)
	assert.Greater(t, walls[0].Z, floors[0].Z, "walls cover floors")

	frame = renderFrame(t, ws, 2)
	assert.Equal(t, float32(40), frame[1].Sprites[0].X)
}

func TestSpritePass(t *testing.T) {
	ws := newWorld()
	human := &data.SpriteSchema{Name: "human/gun", Root: 48, Dimensions: data.Dimensions{W: 1, H: 2}}
	front := ws.Create().
		Position(component.Position{X: 1, Y: 2, Z: 1}).
		Scale(component.Scale{X: -1, Y: 1}).
		Rotation(90).
		Sprite(human).
		ID()
	ws.Create().Position(component.Position{Z: -1}).Sprite(human).ID()
	ws.Create().Position(component.Position{}).Sprite(nil).ID()
	spr, _ := ws.Sprites.Get(front)
	spr.IDOffset = 3
	spr.Flags = 1

	frame := renderFrame(t, ws, 0)
	sprites := frame[3].Sprites
	require.Len(t, sprites, 2, "sprites without a schema are not drawn")

	back, top := sprites[0], sprites[1]
	assert.Equal(t, float32(-1), back.Z, "drawn back to front")
	assert.Equal(t, float32(1), back.ScaleX)
	assert.Equal(t, uint32(48), back.SpriteID)

	assert.Equal(t, render.SpriteRecord{
		X:        1,
		Y:        2,
		Z:        1,
		ScaleX:   -1,
		ScaleY:   1,
		Rotation: 90,
		R:        1,
		G:        1,
		B:        1,
		A:        1,
		SpriteID: 51,
		Dims:     0x10,
		Flags:    1,
	}, top)
}

func TestLightAndTextPasses(t *testing.T) {
	ws := newWorld()
	ws.Create().Position(component.Position{X: 3, Y: 4}).Light(25).ID()
	ws.Create().Light(25).ID()
	label := component.NewText("ＢＯＯＰ")
	label.OffsetY = 12
	ws.Create().Position(component.Position{X: 3, Y: 4, Z: 2}).Text(label).ID()

	frame := renderFrame(t, ws, 0)

	assert.Equal(t, []render.LightRecord{{X: 3, Y: 4, Intensity: 25}}, frame[4].Lights)

	texts := frame[5].Texts
	require.Len(t, texts, 1)
	assert.Equal(t, "BOOP", texts[0].Text, "full-width forms fold to ASCII")
	assert.Equal(t, float32(16), texts[0].Y)
	assert.Equal(t, float32(2), texts[0].Z)
	assert.Equal(t, float32(1), texts[0].Size)
}
