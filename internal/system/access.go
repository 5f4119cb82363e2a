package system

import coresys "github.com/stoneng/stoneng/internal/core/system"

// Resource names declared by the systems in this package.
const (
	ResPosition   coresys.Resource = "position"
	ResScale      coresys.Resource = "scale"
	ResRotation   coresys.Resource = "rotation"
	ResColor      coresys.Resource = "color"
	ResSprite     coresys.Resource = "sprite"
	ResAnimation  coresys.Resource = "animation"
	ResVelocity   coresys.Resource = "velocity"
	ResCollider   coresys.Resource = "collider"
	ResLight      coresys.Resource = "point_light"
	ResText       coresys.Resource = "text"
	ResLifetime   coresys.Resource = "lifetime"
	ResScaling    coresys.Resource = "scaling"
	ResWandering  coresys.Resource = "wandering"
	ResTile       coresys.Resource = "tile"
	ResCollisions coresys.Resource = "collision_events"
	ResRenderer   coresys.Resource = "renderer"
)

func reads(rs ...coresys.Resource) []coresys.Resource  { return rs }
func writes(rs ...coresys.Resource) []coresys.Resource { return rs }
