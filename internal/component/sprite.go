package component

import "github.com/stoneng/stoneng/internal/data"

// Color is an RGBA tint in 0..1.
type Color struct {
	R, G, B, A float32
}

// White is the neutral tint.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// Sprite is a renderable sub-texture of the atlas. The drawn tile is
// Schema.Root + IDOffset; IDOffset is rewritten from the Animation every tick.
type Sprite struct {
	IDOffset int32
	Flags    uint8
	Schema   *data.SpriteSchema
}

// TileID returns the atlas tile currently drawn.
func (s *Sprite) TileID() uint32 {
	return uint32(int64(s.Schema.Root) + int64(s.IDOffset))
}

// Animation is the per-entity playback state of a shared AnimationSchema.
// A nil Schema means the sprite is static.
type Animation struct {
	Frame         uint8
	FrameProgress float64 // whole frames accumulate past 1 and are consumed
	IsReversing   bool
	IsDone        bool
	Schema        *data.AnimationSchema
}

// NewAnimation returns playback state positioned at frame 0 of schema.
func NewAnimation(schema *data.AnimationSchema) Animation {
	return Animation{Schema: schema}
}

// AnimationByName starts the named animation of sprite, or a static
// animation when the sprite has no such entry.
func AnimationByName(sprite *data.SpriteSchema, name string) Animation {
	return Animation{Schema: sprite.Animations[name]}
}
