package world

import (
	"github.com/stoneng/stoneng/internal/component"
	"github.com/stoneng/stoneng/internal/core/ecs"
	"github.com/stoneng/stoneng/internal/core/event"
	"github.com/stoneng/stoneng/internal/data"
)

// State owns the ECS world, one store per component kind, the shared sprite
// catalog and the collision event channel. Stores are touched only by the
// game loop between ticks and by systems that declare them.
type State struct {
	ECS   *ecs.World
	Sheet *data.SpriteSheet

	// dense: present on nearly every drawable entity
	Positions *ecs.DenseStore[component.Position]
	Scales    *ecs.DenseStore[component.Scale]
	Colors    *ecs.DenseStore[component.Color]
	Sprites   *ecs.DenseStore[component.Sprite]
	Tiles     *ecs.DenseStore[component.Tile]
	Floors    *ecs.DenseStore[component.Floor]

	// sparse
	Rotations  *ecs.SparseStore[component.Rotation]
	Animations *ecs.SparseStore[component.Animation]
	Velocities *ecs.SparseStore[component.Velocity]
	Colliders  *ecs.SparseStore[component.Collider]
	Lights     *ecs.SparseStore[component.PointLight]
	Texts      *ecs.SparseStore[component.Text]
	Lifetimes  *ecs.SparseStore[component.Lifetime]
	Scalings   *ecs.SparseStore[component.Scaling]
	Wanderings *ecs.SparseStore[component.Wandering]
	Walls      *ecs.SparseStore[component.Wall]

	Collisions *event.Channel[event.Collision]
}

func NewState(sheet *data.SpriteSheet) *State {
	w := ecs.NewWorld()
	return &State{
		ECS:   w,
		Sheet: sheet,

		Positions: ecs.Register(w, ecs.NewDenseStore[component.Position]()),
		Scales:    ecs.Register(w, ecs.NewDenseStore[component.Scale]()),
		Colors:    ecs.Register(w, ecs.NewDenseStore[component.Color]()),
		Sprites:   ecs.Register(w, ecs.NewDenseStore[component.Sprite]()),
		Tiles:     ecs.Register(w, ecs.NewDenseStore[component.Tile]()),
		Floors:    ecs.Register(w, ecs.NewDenseStore[component.Floor]()),

		Rotations:  ecs.Register(w, ecs.NewSparseStore[component.Rotation]()),
		Animations: ecs.Register(w, ecs.NewSparseStore[component.Animation]()),
		Velocities: ecs.Register(w, ecs.NewSparseStore[component.Velocity]()),
		Colliders:  ecs.Register(w, ecs.NewSparseStore[component.Collider]()),
		Lights:     ecs.Register(w, ecs.NewSparseStore[component.PointLight]()),
		Texts:      ecs.Register(w, ecs.NewSparseStore[component.Text]()),
		Lifetimes:  ecs.Register(w, ecs.NewSparseStore[component.Lifetime]()),
		Scalings:   ecs.Register(w, ecs.NewSparseStore[component.Scaling]()),
		Wanderings: ecs.Register(w, ecs.NewSparseStore[component.Wandering]()),
		Walls:      ecs.Register(w, ecs.NewSparseStore[component.Wall]()),

		Collisions: event.NewChannel[event.Collision](),
	}
}

// EntityCount returns the number of live entities.
func (s *State) EntityCount() int { return s.ECS.Pool().Len() }
