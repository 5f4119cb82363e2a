package system

import (
	"github.com/stoneng/stoneng/internal/component"
	"github.com/stoneng/stoneng/internal/core/ecs"
	coresys "github.com/stoneng/stoneng/internal/core/system"
	"github.com/stoneng/stoneng/internal/world"
)

// AnimSpriteSystem advances every Sprite+Animation pair and marks entities
// whose Once animation finishes, so the next Maintain removes them before
// any render pass sees the finished sprite.
type AnimSpriteSystem struct {
	world *world.State
}

func NewAnimSpriteSystem(ws *world.State) *AnimSpriteSystem {
	return &AnimSpriteSystem{world: ws}
}

func (s *AnimSpriteSystem) Name() string { return "anim_sprite" }

func (s *AnimSpriteSystem) Access() coresys.Access {
	return coresys.Access{Writes: writes(ResSprite, ResAnimation)}
}

func (s *AnimSpriteSystem) Update(ctx *coresys.Context) {
	ecs.Each2[component.Sprite, component.Animation](s.world.Sprites, s.world.Animations,
		func(id ecs.EntityID, spr *component.Sprite, anim *component.Animation) {
			if spr.Schema == nil {
				return
			}
			if anim.IsDone {
				ctx.World.MarkForDestruction(id)
				return
			}
			Advance(spr, anim, ctx.DT)
			if anim.IsDone {
				ctx.World.MarkForDestruction(id)
			}
		})
}
