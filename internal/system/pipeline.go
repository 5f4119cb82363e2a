package system

import (
	coresys "github.com/stoneng/stoneng/internal/core/system"
	"github.com/stoneng/stoneng/internal/render"
	"github.com/stoneng/stoneng/internal/world"
)

// Options tunes the standard pipeline.
type Options struct {
	Seed      uint64  // wandering RNG seed
	TileScale float32 // <= 0 selects DefaultTileScale
}

// Install registers the engine's systems on b. Collision, particle and
// animation run in parallel; velocity integration follows collision and
// particle; the render passes run last on the dispatching goroutine in
// layer order.
func Install(b *coresys.Builder, ws *world.State, out render.Renderer, opt Options) *coresys.Builder {
	collision := NewCollisionSystem(ws)
	particle := NewParticleSystem(ws, opt.Seed)

	return b.
		With(collision).
		With(particle).
		With(NewAnimSpriteSystem(ws)).
		With(NewVelocitySystem(ws), collision.Name(), particle.Name()).
		WithThreadLocal(NewClearPass(out)).
		WithThreadLocal(NewTilePass(ws, out, opt.TileScale)).
		WithThreadLocal(NewSpritePass(ws, out)).
		WithThreadLocal(NewLightPass(ws, out)).
		WithThreadLocal(NewTextPass(ws, out))
}
