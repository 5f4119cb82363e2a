package game

import (
	"go.uber.org/zap"

	"github.com/stoneng/stoneng/internal/component"
	"github.com/stoneng/stoneng/internal/controller"
	"github.com/stoneng/stoneng/internal/core/event"
)

var moveKeys = map[event.Key]controller.MoveKey{
	event.KeyW: controller.MoveUp,
	event.KeyS: controller.MoveDown,
	event.KeyA: controller.MoveLeft,
	event.KeyD: controller.MoveRight,
}

func (g *Game) subscribe() {
	event.Subscribe(g.bus, g.onKey)
	event.Subscribe(g.bus, g.onMouse)
	event.Subscribe(g.bus, g.onCursor)
	event.Subscribe(g.bus, g.onResize)
	event.Subscribe(g.bus, func(event.CloseRequested) {
		g.log.Info("close requested")
		g.quit = true
	})
}

func (g *Game) onKey(ev event.KeyInput) {
	if mk, ok := moveKeys[ev.Key]; ok {
		g.contr.SetMoveInput(mk, ev.Pressed)
		return
	}
	if !ev.Pressed {
		return
	}
	view := &g.world.ECS.Resources.View
	switch ev.Key {
	case event.KeyUp:
		view.Y += PanStep
	case event.KeyDown:
		view.Y -= PanStep
	case event.KeyLeft:
		view.X -= PanStep
	case event.KeyRight:
		view.X += PanStep
	case event.KeyEscape:
		g.log.Info("escape pressed")
		g.quit = true
	}
}

// onMouse fires a muzzle flash at the crosshair when the left button is
// released.
func (g *Game) onMouse(ev event.MouseInput) {
	if ev.Button != event.MouseLeft || ev.Pressed {
		return
	}
	pos, ok := g.world.Positions.Get(g.cursor)
	if !ok {
		return
	}
	b := g.world.Create().
		Position(component.Position{X: pos.X, Y: pos.Y, Z: pos.Z}).
		Scale(component.Scale{X: flashScale, Y: flashScale}).
		Color(component.White).
		Sprite(g.flash).
		Animation(g.flash.Animations[""]).
		Light(float32(g.flashCfg.Light))
	if g.flashCfg.Lifetime > 0 {
		b.Lifetime(g.flashCfg.Lifetime)
	}
	g.log.Debug("muzzle flash", zap.Uint64("entity", uint64(b.ID())))
}

func (g *Game) onCursor(ev event.CursorMoved) {
	g.cursorX, g.cursorY = ev.X, ev.Y
}

func (g *Game) onResize(ev event.Resized) {
	g.log.Debug("resized", zap.Int("w", ev.W), zap.Int("h", ev.H))
}
