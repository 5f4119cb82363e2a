package system

import (
	"math"
	"math/rand/v2"

	"github.com/stoneng/stoneng/internal/component"
	"github.com/stoneng/stoneng/internal/core/ecs"
	coresys "github.com/stoneng/stoneng/internal/core/system"
	"github.com/stoneng/stoneng/internal/world"
)

// ParticleSystem ages Lifetime, shrinks Scaling entities and jitters the
// velocity of Wandering ones. Expired entities are marked for destruction
// and purged at the next Maintain.
type ParticleSystem struct {
	world *world.State
	rng   *rand.Rand
}

// NewParticleSystem seeds the wandering RNG so runs are reproducible.
func NewParticleSystem(ws *world.State, seed uint64) *ParticleSystem {
	return &ParticleSystem{world: ws, rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *ParticleSystem) Name() string { return "particle" }

func (s *ParticleSystem) Access() coresys.Access {
	return coresys.Access{
		Reads:  reads(ResWandering, ResScaling),
		Writes: writes(ResLifetime, ResVelocity, ResScale),
	}
}

func (s *ParticleSystem) Update(ctx *coresys.Context) {
	w := ctx.World
	dt := ctx.DT

	s.world.Lifetimes.Each(func(id ecs.EntityID, life *component.Lifetime) {
		life.Remaining -= dt
		if life.Remaining <= 0 {
			w.MarkForDestruction(id)
		}
	})

	fdt := float32(dt)
	ecs.Each2[component.Wandering, component.Velocity](s.world.Wanderings, s.world.Velocities,
		func(_ ecs.EntityID, wd *component.Wandering, vel *component.Velocity) {
			ax := (s.rng.Float32()*2 - 1 + wd.BiasX) * wd.Strength
			ay := (s.rng.Float32()*2 - 1 + wd.BiasY) * wd.Strength
			damp := float32(math.Max(0, float64(1-wd.Resistance*fdt)))
			vel.X = (vel.X + ax*fdt) * damp
			vel.Y = (vel.Y + ay*fdt) * damp
		})

	timeFactor := 1 - fdt
	ecs.Each2[component.Scaling, component.Scale](s.world.Scalings, s.world.Scales,
		func(id ecs.EntityID, sc *component.Scaling, scale *component.Scale) {
			scale.X *= sc.Factor * timeFactor
			scale.Y *= sc.Factor * timeFactor
			if abs32(scale.X) < sc.Threshold || abs32(scale.Y) < sc.Threshold {
				w.MarkForDestruction(id)
			}
		})
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
