package system

import (
	"github.com/stoneng/stoneng/internal/component"
	"github.com/stoneng/stoneng/internal/core/ecs"
	coresys "github.com/stoneng/stoneng/internal/core/system"
	"github.com/stoneng/stoneng/internal/world"
)

// VelocitySystem integrates Position by Velocity: pos += vel * dt.
type VelocitySystem struct {
	world *world.State
}

func NewVelocitySystem(ws *world.State) *VelocitySystem {
	return &VelocitySystem{world: ws}
}

func (s *VelocitySystem) Name() string { return "velocity" }

func (s *VelocitySystem) Access() coresys.Access {
	return coresys.Access{
		Reads:  reads(ResVelocity),
		Writes: writes(ResPosition),
	}
}

func (s *VelocitySystem) Update(ctx *coresys.Context) {
	dt := float32(ctx.DT)
	ecs.Each2[component.Position, component.Velocity](s.world.Positions, s.world.Velocities,
		func(_ ecs.EntityID, pos *component.Position, vel *component.Velocity) {
			pos.X += vel.X * dt
			pos.Y += vel.Y * dt
		})
}
