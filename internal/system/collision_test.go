package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoneng/stoneng/internal/component"
	"github.com/stoneng/stoneng/internal/core/ecs"
	"github.com/stoneng/stoneng/internal/core/event"
	coresys "github.com/stoneng/stoneng/internal/core/system"
	"github.com/stoneng/stoneng/internal/data"
	"github.com/stoneng/stoneng/internal/world"
)

func newWorld() *world.State { return world.NewState(&data.SpriteSheet{}) }

func boxAt(ws *world.State, x, y, w, h float32) ecs.EntityID {
	return ws.Create().Position(component.Position{X: x, Y: y}).Collider(w, h).ID()
}

func collide(t *testing.T, ws *world.State) []event.Collision {
	t.Helper()
	r := ws.Collisions.RegisterReader()
	defer ws.Collisions.Unregister(r)
	NewCollisionSystem(ws).Update(&coresys.Context{World: ws.ECS})
	return ws.Collisions.Read(r)
}

func TestCollisionBoundary(t *testing.T) {
	tests := []struct {
		name   string
		bx, by float32
		hit    bool
	}{
		{"touching right edge", 10, 0, false},
		{"touching top edge", 0, 10, false},
		{"touching corner", 10, 10, false},
		{"overlap by epsilon x", 9.99, 0, true},
		{"overlap by epsilon y", 0, -9.99, true},
		{"overlap x separated y", 5, 12, false},
		{"same centre", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := newWorld()
			a := boxAt(ws, 0, 0, 10, 10)
			b := boxAt(ws, tt.bx, tt.by, 10, 10)

			got := collide(t, ws)
			if !tt.hit {
				assert.Empty(t, got)
				return
			}
			assert.ElementsMatch(t, []event.Collision{{A: a, B: b}, {A: b, B: a}}, got)
		})
	}
}

func TestCollisionReportsBothDirections(t *testing.T) {
	ws := newWorld()
	a := boxAt(ws, 0, 0, 4, 4)
	b := boxAt(ws, 3, 0, 4, 4)
	c := boxAt(ws, 6, 0, 4, 4)

	got := collide(t, ws)
	require.Len(t, got, 4, "a and c are apart")
	assert.ElementsMatch(t, []event.Collision{
		{A: a, B: b}, {A: b, B: a},
		{A: b, B: c}, {A: c, B: b},
	}, got)
}

func TestCollisionIgnoresEntitiesWithoutCollider(t *testing.T) {
	ws := newWorld()
	boxAt(ws, 0, 0, 4, 4)
	ws.Create().Position(component.Position{}).ID()
	ws.Create().Collider(4, 4).ID()

	assert.Empty(t, collide(t, ws))
}

func TestCollisionIsPairwiseExhaustive(t *testing.T) {
	ws := newWorld()
	const n = 12
	for range n {
		boxAt(ws, 0, 0, 1, 1)
	}
	assert.Len(t, collide(t, ws), n*(n-1), "every ordered pair of stacked boxes")
}

func TestCollisionEventsReachEveryReader(t *testing.T) {
	ws := newWorld()
	boxAt(ws, 0, 0, 2, 2)
	b := boxAt(ws, 1, 1, 2, 2)
	r1 := ws.Collisions.RegisterReader()
	r2 := ws.Collisions.RegisterReader()
	sys := NewCollisionSystem(ws)
	ctx := &coresys.Context{World: ws.ECS}

	sys.Update(ctx)
	assert.Len(t, ws.Collisions.Read(r1), 2)

	sys.Update(ctx)
	assert.Len(t, ws.Collisions.Read(r1), 2, "the next tick's pair only")
	assert.Len(t, ws.Collisions.Read(r2), 4, "a slow reader sees both ticks")
	assert.Empty(t, ws.Collisions.Read(r2))

	ws.ECS.MarkForDestruction(b)
	ws.ECS.Maintain()
	sys.Update(ctx)
	assert.Empty(t, ws.Collisions.Read(r1))
}
