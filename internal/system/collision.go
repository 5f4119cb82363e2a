package system

import (
	"github.com/stoneng/stoneng/internal/component"
	"github.com/stoneng/stoneng/internal/core/ecs"
	"github.com/stoneng/stoneng/internal/core/event"
	coresys "github.com/stoneng/stoneng/internal/core/system"
	"github.com/stoneng/stoneng/internal/world"
)

// box is an axis-aligned rectangle in world space.
type box struct {
	id ecs.EntityID

	left, right, bot, top float32
}

func (a box) overlaps(b box) bool {
	return a.left < b.right && b.left < a.right &&
		a.bot < b.top && b.bot < a.top
}

// CollisionSystem tests every pair of Position+Collider entities and writes
// one event per ordered overlapping pair, so a single overlap is reported
// as both (A, B) and (B, A).
type CollisionSystem struct {
	world *world.State
	boxes []box
	found []event.Collision
}

func NewCollisionSystem(ws *world.State) *CollisionSystem {
	return &CollisionSystem{world: ws}
}

func (s *CollisionSystem) Name() string { return "collision" }

func (s *CollisionSystem) Access() coresys.Access {
	return coresys.Access{
		Reads:  reads(ResPosition, ResCollider),
		Writes: writes(ResCollisions),
	}
}

func (s *CollisionSystem) Update(_ *coresys.Context) {
	s.boxes = s.boxes[:0]
	ecs.Each2[component.Position, component.Collider](s.world.Positions, s.world.Colliders,
		func(id ecs.EntityID, pos *component.Position, col *component.Collider) {
			hw, hh := col.Width/2, col.Height/2
			s.boxes = append(s.boxes, box{
				id:    id,
				left:  pos.X - hw,
				right: pos.X + hw,
				bot:   pos.Y - hh,
				top:   pos.Y + hh,
			})
		})

	s.found = s.found[:0]
	for i := range s.boxes {
		for j := range s.boxes {
			if i == j {
				continue
			}
			if s.boxes[i].overlaps(s.boxes[j]) {
				s.found = append(s.found, event.Collision{A: s.boxes[i].id, B: s.boxes[j].id})
			}
		}
	}
	if len(s.found) > 0 {
		s.world.Collisions.WriteAll(s.found)
	}
}
