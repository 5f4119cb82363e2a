package system

import (
	"cmp"
	"slices"

	"golang.org/x/text/unicode/norm"

	"github.com/stoneng/stoneng/internal/component"
	"github.com/stoneng/stoneng/internal/core/ecs"
	coresys "github.com/stoneng/stoneng/internal/core/system"
	"github.com/stoneng/stoneng/internal/render"
	"github.com/stoneng/stoneng/internal/world"
)

// Tile layers sit behind every sprite; walls cover floors.
const (
	FloorZ = -10.1
	WallZ  = -10.0

	// DefaultTileScale is the pass scale applied to tiles. A tile spans
	// 10 world units per unit of scale.
	DefaultTileScale = 5
	tileSpan         = 10
)

func viewport(ctx *coresys.Context) render.Viewport {
	return render.Viewport{Window: ctx.Window, View: ctx.View}
}

func colorOf(ws *world.State, id ecs.EntityID) component.Color {
	if c, ok := ws.Colors.Get(id); ok {
		return *c
	}
	return component.White
}

// ClearPass starts a new frame.
type ClearPass struct {
	out render.Renderer
}

func NewClearPass(out render.Renderer) *ClearPass { return &ClearPass{out: out} }

func (p *ClearPass) Name() string { return "clear" }
func (p *ClearPass) Access() coresys.Access {
	return coresys.Access{Writes: writes(ResRenderer)}
}
func (p *ClearPass) Update(_ *coresys.Context) { p.out.Clear() }

// TilePass draws the background grid: every floor, then every wall.
type TilePass struct {
	world  *world.State
	out    render.Renderer
	scale  float32
	floors render.SpriteBatch
	walls  render.SpriteBatch
}

// NewTilePass returns a tile pass drawing at scale; scale <= 0 selects
// DefaultTileScale.
func NewTilePass(ws *world.State, out render.Renderer, scale float32) *TilePass {
	if scale <= 0 {
		scale = DefaultTileScale
	}
	return &TilePass{world: ws, out: out, scale: scale}
}

func (p *TilePass) Name() string { return "tile" }

func (p *TilePass) Access() coresys.Access {
	return coresys.Access{
		Reads:  reads(ResTile, ResColor),
		Writes: writes(ResRenderer),
	}
}

func (p *TilePass) record(id ecs.EntityID, t *component.Tile, root uint32, dims uint8, z float32) render.SpriteRecord {
	c := colorOf(p.world, id)
	return render.SpriteRecord{
		X:        float32(t.X) * p.scale * tileSpan,
		Y:        float32(t.Y) * p.scale * tileSpan,
		Z:        z,
		ScaleX:   p.scale,
		ScaleY:   p.scale,
		R:        c.R,
		G:        c.G,
		B:        c.B,
		A:        c.A,
		SpriteID: root,
		Dims:     dims,
	}
}

func (p *TilePass) Update(ctx *coresys.Context) {
	p.floors.Reset()
	p.walls.Reset()

	ecs.Each2[component.Tile, component.Floor](p.world.Tiles, p.world.Floors,
		func(id ecs.EntityID, t *component.Tile, f *component.Floor) {
			if f.Schema == nil {
				return
			}
			p.floors.Append(p.record(id, t, f.Schema.Root, f.Schema.Dimensions.Packed(), FloorZ))
		})
	ecs.Each2[component.Wall, component.Tile](p.world.Walls, p.world.Tiles,
		func(id ecs.EntityID, w *component.Wall, t *component.Tile) {
			if w.Schema == nil {
				return
			}
			p.walls.Append(p.record(id, t, w.Schema.Root, w.Schema.Dimensions.Packed(), WallZ))
		})

	vp := viewport(ctx)
	p.out.DrawSprites(render.LayerFloor, &p.floors, vp)
	p.out.DrawSprites(render.LayerWall, &p.walls, vp)
}

// SpritePass extracts every Position+Sprite entity into one batch ordered
// back to front by Z.
type SpritePass struct {
	world *world.State
	out   render.Renderer
	batch render.SpriteBatch
}

func NewSpritePass(ws *world.State, out render.Renderer) *SpritePass {
	return &SpritePass{world: ws, out: out}
}

func (p *SpritePass) Name() string { return "sprite" }

func (p *SpritePass) Access() coresys.Access {
	return coresys.Access{
		Reads:  reads(ResPosition, ResSprite, ResScale, ResRotation, ResColor),
		Writes: writes(ResRenderer),
	}
}

func (p *SpritePass) Update(ctx *coresys.Context) {
	ws := p.world
	p.batch.Reset()

	ecs.Each2[component.Sprite, component.Position](ws.Sprites, ws.Positions,
		func(id ecs.EntityID, spr *component.Sprite, pos *component.Position) {
			if spr.Schema == nil {
				return
			}
			scale := component.DefaultScale
			if s, ok := ws.Scales.Get(id); ok {
				scale = *s
			}
			var rot float32
			if r, ok := ws.Rotations.Get(id); ok {
				rot = r.Deg
			}
			c := colorOf(ws, id)
			p.batch.Append(render.SpriteRecord{
				X:        pos.X,
				Y:        pos.Y,
				Z:        pos.Z,
				ScaleX:   scale.X,
				ScaleY:   scale.Y,
				Rotation: rot,
				R:        c.R,
				G:        c.G,
				B:        c.B,
				A:        c.A,
				SpriteID: spr.TileID(),
				Dims:     spr.Schema.Dimensions.Packed(),
				Flags:    spr.Flags,
			})
		})

	slices.SortStableFunc(p.batch.Records, func(a, b render.SpriteRecord) int {
		return cmp.Compare(a.Z, b.Z)
	})
	p.out.DrawSprites(render.LayerSprite, &p.batch, viewport(ctx))
}

// LightPass extracts point lights.
type LightPass struct {
	world  *world.State
	out    render.Renderer
	lights []render.LightRecord
}

func NewLightPass(ws *world.State, out render.Renderer) *LightPass {
	return &LightPass{world: ws, out: out}
}

func (p *LightPass) Name() string { return "light" }

func (p *LightPass) Access() coresys.Access {
	return coresys.Access{
		Reads:  reads(ResPosition, ResLight),
		Writes: writes(ResRenderer),
	}
}

func (p *LightPass) Update(ctx *coresys.Context) {
	p.lights = p.lights[:0]
	ecs.Each2[component.PointLight, component.Position](p.world.Lights, p.world.Positions,
		func(_ ecs.EntityID, l *component.PointLight, pos *component.Position) {
			p.lights = append(p.lights, render.LightRecord{X: pos.X, Y: pos.Y, Intensity: l.Intensity})
		})
	p.out.DrawLights(p.lights, viewport(ctx))
}

// TextPass extracts labels. Content is NFKC-folded so compatibility forms
// (full-width letters, ligatures) map onto the glyphs a font carries.
type TextPass struct {
	world *world.State
	out   render.Renderer
	texts []render.TextRecord
}

func NewTextPass(ws *world.State, out render.Renderer) *TextPass {
	return &TextPass{world: ws, out: out}
}

func (p *TextPass) Name() string { return "text" }

func (p *TextPass) Access() coresys.Access {
	return coresys.Access{
		Reads:  reads(ResPosition, ResText, ResColor),
		Writes: writes(ResRenderer),
	}
}

func (p *TextPass) Update(ctx *coresys.Context) {
	p.texts = p.texts[:0]
	ecs.Each2[component.Text, component.Position](p.world.Texts, p.world.Positions,
		func(id ecs.EntityID, t *component.Text, pos *component.Position) {
			c := colorOf(p.world, id)
			p.texts = append(p.texts, render.TextRecord{
				X:    pos.X + t.OffsetX,
				Y:    pos.Y + t.OffsetY,
				Z:    pos.Z,
				Size: t.Size,
				R:    c.R,
				G:    c.G,
				B:    c.B,
				A:    c.A,
				Text: norm.NFKC.String(t.Content),
			})
		})
	p.out.DrawText(p.texts, viewport(ctx))
}
