package world

import (
	"github.com/stoneng/stoneng/internal/component"
	"github.com/stoneng/stoneng/internal/core/ecs"
	"github.com/stoneng/stoneng/internal/data"
)

// EntityBuilder attaches components to a freshly created entity. Use it
// only between ticks.
type EntityBuilder struct {
	s  *State
	id ecs.EntityID
}

// Create starts a new entity.
func (s *State) Create() *EntityBuilder {
	return &EntityBuilder{s: s, id: s.ECS.CreateEntity()}
}

func (b *EntityBuilder) Position(p component.Position) *EntityBuilder {
	b.s.Positions.Set(b.id, p)
	return b
}

func (b *EntityBuilder) Scale(sc component.Scale) *EntityBuilder {
	b.s.Scales.Set(b.id, sc)
	return b
}

func (b *EntityBuilder) Rotation(deg float32) *EntityBuilder {
	b.s.Rotations.Set(b.id, component.Rotation{Deg: deg})
	return b
}

func (b *EntityBuilder) Color(c component.Color) *EntityBuilder {
	b.s.Colors.Set(b.id, c)
	return b
}

// Sprite attaches a sprite drawing schema. The schema is shared, not copied.
func (b *EntityBuilder) Sprite(schema *data.SpriteSchema) *EntityBuilder {
	b.s.Sprites.Set(b.id, component.Sprite{Schema: schema})
	return b
}

// Animation attaches playback state for schema; nil leaves the sprite static.
func (b *EntityBuilder) Animation(schema *data.AnimationSchema) *EntityBuilder {
	b.s.Animations.Set(b.id, component.NewAnimation(schema))
	return b
}

func (b *EntityBuilder) Velocity(v component.Velocity) *EntityBuilder {
	b.s.Velocities.Set(b.id, v)
	return b
}

func (b *EntityBuilder) Collider(w, h float32) *EntityBuilder {
	b.s.Colliders.Set(b.id, component.Collider{Width: w, Height: h})
	return b
}

func (b *EntityBuilder) Light(intensity float32) *EntityBuilder {
	b.s.Lights.Set(b.id, component.PointLight{Intensity: intensity})
	return b
}

func (b *EntityBuilder) Text(t component.Text) *EntityBuilder {
	b.s.Texts.Set(b.id, t)
	return b
}

func (b *EntityBuilder) Lifetime(seconds float64) *EntityBuilder {
	b.s.Lifetimes.Set(b.id, component.Lifetime{Remaining: seconds})
	return b
}

func (b *EntityBuilder) Scaling(sc component.Scaling) *EntityBuilder {
	b.s.Scalings.Set(b.id, sc)
	return b
}

func (b *EntityBuilder) Wandering(w component.Wandering) *EntityBuilder {
	b.s.Wanderings.Set(b.id, w)
	return b
}

func (b *EntityBuilder) Floor(x, y int32, schema *data.SpriteSchema) *EntityBuilder {
	b.s.Tiles.Set(b.id, component.Tile{X: x, Y: y})
	b.s.Floors.Set(b.id, component.Floor{Schema: schema})
	return b
}

func (b *EntityBuilder) Wall(x, y int32, schema *data.SpriteSchema) *EntityBuilder {
	b.s.Tiles.Set(b.id, component.Tile{X: x, Y: y})
	b.s.Walls.Set(b.id, component.Wall{Schema: schema})
	return b
}

// ID finishes the builder.
func (b *EntityBuilder) ID() ecs.EntityID { return b.id }
