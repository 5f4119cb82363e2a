package game

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/stoneng/stoneng/internal/component"
	"github.com/stoneng/stoneng/internal/controller"
	"github.com/stoneng/stoneng/internal/core/ecs"
	coresys "github.com/stoneng/stoneng/internal/core/system"
	"github.com/stoneng/stoneng/internal/data"
	"github.com/stoneng/stoneng/internal/scripting"
	"github.com/stoneng/stoneng/internal/system"
)

// Step runs one frame: deferred removals, queued input, game logic, then
// every scheduled system. dt is in seconds and clamped at zero.
func (g *Game) Step(sched *coresys.Scheduler, dt float64) {
	if dt < 0 {
		dt = 0
	}
	w := g.world.ECS
	w.Maintain()
	g.bus.SwapBuffers()
	g.bus.DispatchAll()

	w.Resources.DeltaTime = ecs.DeltaTime(dt)
	g.Update(dt)

	g.tick++
	sched.Dispatch(coresys.NewContext(w, g.tick))
}

// Update applies player input and aim to the player entity and moves the
// crosshair under the cursor. Collisions read here are the ones written by
// the previous Step.
func (g *Game) Update(dt float64) {
	ws := g.world
	res := &ws.ECS.Resources

	// drained every tick so this reader never holds back compaction
	hits := 0
	for _, c := range ws.Collisions.Read(g.collisions) {
		if c.A == g.player {
			hits++
		}
	}

	vel, hasVel := ws.Velocities.Get(g.player)
	if hasVel {
		g.contr.Tick(vel, dt)
	}

	cx := float32(g.cursorX) + res.View.X
	cy := res.Window.H - float32(g.cursorY) + res.View.Y
	if p, ok := ws.Positions.Get(g.cursor); ok {
		p.X, p.Y = cx, cy
	}

	pos, ok := ws.Positions.Get(g.player)
	if !ok {
		return
	}
	aim := mgl32.Vec2{cx - pos.X, cy - pos.Y}

	var speed mgl32.Vec2
	if hasVel {
		speed = mgl32.Vec2{vel.X, vel.Y}
	}
	state := controller.StateOf(speed, g.idle)
	name := controller.AnimName(state, controller.Classify(aim))

	sprite, okS := ws.Sprites.Get(g.player)
	anim, okA := ws.Animations.Get(g.player)
	if okS && okA {
		g.selectAnimation(sprite, anim, state, name)
	}
	g.anim = name

	if sc, ok := ws.Scales.Get(g.player); ok {
		mag := sc.X
		if mag < 0 {
			mag = -mag
		}
		if aim.X() < 0 {
			mag = -mag
		}
		sc.X = mag
	}

	g.updateLabel(hits)
}

// selectAnimation plays name on the player. A standing player whose sprite
// lacks the directional idle falls back to the plain idle, or to a static
// sprite; a moving one keeps its current animation.
func (g *Game) selectAnimation(sprite *component.Sprite, anim *component.Animation, state controller.MoveState, name string) {
	err := system.SetAnimation(sprite, anim, name)
	if err == nil {
		return
	}
	if name != g.anim {
		g.log.Debug("player animation missing", zap.String("anim", name), zap.Error(err))
	}
	if state != controller.Idle || !errors.Is(err, data.ErrAnimationNotFound) {
		return
	}
	if !anim.Schema.Equal(sprite.Schema.Animations[system.IdleAnimation]) {
		system.ToIdle(sprite, anim)
	}
}

// updateLabel shows the resting name, or a collision label while anything
// overlaps the player.
func (g *Game) updateLabel(hits int) {
	text, ok := g.world.Texts.Get(g.player)
	if !ok {
		return
	}
	if hits == 0 {
		text.Content = g.name
		return
	}
	text.Content = g.lua.CollisionLabel(scripting.CollisionContext{
		Name: g.name,
		Hits: hits,
		Tick: g.tick,
	})
}

// Ticks returns how many frames Step has run.
func (g *Game) Ticks() uint64 { return g.tick }
