package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/stoneng/stoneng/internal/core/ecs"
	"github.com/stoneng/stoneng/internal/data"
	"github.com/stoneng/stoneng/internal/render"
)

// Default glyphs per layer for tiles without a mapped rune.
const (
	FloorGlyph  = '.'
	WallGlyph   = '#'
	SpriteGlyph = '@'

	maxLightRadius = 6
)

var lightColor = [3]float64{255, 196, 96}

// Renderer draws frames into a tcell screen. Each sprite record becomes one
// cell, lights tint the background around them and text is written over
// everything. It must be driven from a single goroutine.
type Renderer struct {
	screen tcell.Screen
	glyphs map[uint32]rune
}

// Open acquires the terminal with mouse reporting on.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", render.ErrContext, err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: init terminal: %w", render.ErrContext, err)
	}
	screen.EnableMouse()
	screen.HideCursor()
	return screen, nil
}

func New(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, glyphs: make(map[uint32]rune)}
}

// Screen returns the underlying tcell screen.
func (r *Renderer) Screen() tcell.Screen { return r.screen }

// Grid returns the cell mapping for window at the current terminal size.
func (r *Renderer) Grid(window ecs.WindowSize) Grid {
	cols, rows := r.screen.Size()
	return Grid{Window: window, Cols: cols, Rows: rows}
}

// MapSprite draws every tile of schema with glyph: its root, all animation
// frames and, recursively, its variants unless they are mapped already.
func (r *Renderer) MapSprite(schema *data.SpriteSchema, glyph rune) {
	if schema == nil {
		return
	}
	r.glyphs[schema.Root] = glyph
	for _, a := range schema.Animations {
		for f := uint32(0); f < uint32(a.Frames); f++ {
			r.glyphs[a.Root+f] = glyph
		}
	}
	for _, v := range schema.Variants {
		if _, ok := r.glyphs[v.Root]; !ok {
			r.MapSprite(v, glyph)
		}
	}
}

func (r *Renderer) glyph(layer render.Layer, id uint32) rune {
	if g, ok := r.glyphs[id]; ok {
		return g
	}
	switch layer {
	case render.LayerFloor:
		return FloorGlyph
	case render.LayerWall:
		return WallGlyph
	}
	return SpriteGlyph
}

func rgb(red, green, blue float32) tcell.Color {
	return tcell.NewRGBColor(channel(red), channel(green), channel(blue))
}

func channel(v float32) int32 {
	return int32(math.Round(float64(min(max(v, 0), 1)) * 255))
}

func (r *Renderer) Clear() {
	r.screen.Clear()
}

func (r *Renderer) DrawSprites(layer render.Layer, batch *render.SpriteBatch, vp render.Viewport) {
	grid := r.Grid(vp.Window)
	for i := range batch.Records {
		rec := &batch.Records[i]
		if rec.A <= 0 {
			continue
		}
		col, row, ok := grid.WorldToCell(rec.X, rec.Y, vp.View)
		if !ok {
			continue
		}
		style := tcell.StyleDefault.Foreground(rgb(rec.R, rec.G, rec.B))
		if layer == render.LayerFloor {
			style = style.Dim(true)
		}
		r.screen.SetContent(col, row, r.glyph(layer, rec.SpriteID), nil, style)
	}
}

func (r *Renderer) DrawLights(lights []render.LightRecord, vp render.Viewport) {
	grid := r.Grid(vp.Window)
	cw, _ := grid.CellSize()
	if cw <= 0 {
		return
	}
	for _, l := range lights {
		col, row, _ := grid.WorldToCell(l.X, l.Y, vp.View)
		radius := min(int(l.Intensity/cw), maxLightRadius)
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				d := math.Hypot(float64(dx), float64(dy))
				if d > float64(radius) {
					continue
				}
				r.tint(col+dx, row+dy, 1-d/float64(radius+1))
			}
		}
	}
}

// tint sets the background of a cell to the light colour at strength k,
// keeping its content.
func (r *Renderer) tint(col, row int, k float64) {
	cols, rows := r.screen.Size()
	if col < 0 || row < 0 || col >= cols || row >= rows {
		return
	}
	mainc, combc, style, _ := r.screen.GetContent(col, row)
	bg := tcell.NewRGBColor(
		int32(lightColor[0]*k),
		int32(lightColor[1]*k),
		int32(lightColor[2]*k),
	)
	r.screen.SetContent(col, row, mainc, combc, style.Background(bg))
}

func (r *Renderer) DrawText(texts []render.TextRecord, vp render.Viewport) {
	grid := r.Grid(vp.Window)
	cols, _ := r.screen.Size()
	for _, t := range texts {
		col, row, _ := grid.WorldToCell(t.X, t.Y, vp.View)
		if row < 0 || row >= grid.Rows {
			continue
		}
		style := tcell.StyleDefault.Foreground(rgb(t.R, t.G, t.B)).Bold(t.Size > 1)
		x := col - runewidth.StringWidth(t.Text)/2
		for _, ch := range t.Text {
			if x >= 0 && x < cols {
				r.screen.SetContent(x, row, ch, nil, style)
			}
			x += runewidth.RuneWidth(ch)
		}
	}
}

func (r *Renderer) Present() error {
	r.screen.Show()
	return nil
}

// Close releases the terminal.
func (r *Renderer) Close() {
	r.screen.Fini()
}
