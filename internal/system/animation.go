package system

import (
	"math"

	"github.com/stoneng/stoneng/internal/component"
	"github.com/stoneng/stoneng/internal/data"
)

// maxFrameStep bounds the work of one Advance. A tick implying more whole
// frames than this (a stall) only refreshes the displayed tile.
const maxFrameStep = 255

// IdleAnimation is the animation a sprite falls back to when it stops.
const IdleAnimation = "idle"

// accumulate adds dt to the fractional frame counter and returns the whole
// frames to advance; the remainder stays in FrameProgress.
func accumulate(a *component.Animation, frameTime, dt float64) float64 {
	a.FrameProgress += dt / frameTime
	whole := math.Floor(a.FrameProgress)
	a.FrameProgress -= whole
	return whole
}

// Advance steps a's playback by dt seconds and rewrites s.IDOffset so the
// drawn tile is the animation root plus the current frame.
//
// Reaching the last frame going forward turns around (Reverse,
// LoopReverse), wraps to frame 0 at the cost of one frame (Loop), freezes
// (OncePersist) or marks the animation done (Once). Reaching frame 0 going
// backwards resumes forward play in looping modes and marks done otherwise.
func Advance(s *component.Sprite, a *component.Animation, dt float64) {
	schema := a.Schema
	if schema == nil {
		s.IDOffset = 0
		return
	}
	if a.IsDone || schema.Frames == 0 || schema.FrameTime <= 0 {
		s.IDOffset = frameOffset(s, schema, a.Frame)
		return
	}

	whole := accumulate(a, schema.FrameTime, dt)
	if whole > maxFrameStep {
		s.IDOffset = frameOffset(s, schema, a.Frame)
		return
	}

	step := int(whole)
	frames := int(schema.Frames)
	frame := int(a.Frame)
	if frames == 1 && schema.Mode.Loops() {
		step = 0 // a single looping frame never moves
	}

	for step > 0 {
		if !a.IsReversing {
			if frame+step < frames {
				frame += step
				break
			}
			// consume what reaches the last frame; at least one step remains
			step -= frames - 1 - frame
			frame = frames - 1

			switch {
			case schema.Mode.Reverses():
				a.IsReversing = true
			case schema.Mode.Loops():
				step--
				frame = 0
			case schema.Mode == data.OncePersist:
				step = 0
			default:
				a.IsDone = true
				step = 0
			}
			continue
		}

		if frame >= step {
			frame -= step
			break
		}
		step -= frame
		frame = 0
		if schema.Mode.Loops() {
			a.IsReversing = false
		} else {
			a.IsDone = true
			step = 0
		}
	}

	a.Frame = uint8(frame)
	s.IDOffset = frameOffset(s, schema, a.Frame)
}

// frameOffset is the delta between the sprite's root tile and the tile of
// frame within schema.
func frameOffset(s *component.Sprite, schema *data.AnimationSchema, frame uint8) int32 {
	var root int64
	if s.Schema != nil {
		root = int64(s.Schema.Root)
	}
	return int32(int64(schema.Root) + int64(frame) - root)
}

// ToIdle restarts a on the sprite's "idle" animation. Sprites without one
// become static at their schema root.
func ToIdle(s *component.Sprite, a *component.Animation) {
	var idle *data.AnimationSchema
	if s.Schema != nil {
		idle = s.Schema.Animations[IdleAnimation]
	}
	*a = component.NewAnimation(idle)
}

// SetAnimation switches a to the sprite's animation called name. Asking for
// the animation already playing is a no-op. A missing name returns
// data.ErrAnimationNotFound and leaves a untouched.
func SetAnimation(s *component.Sprite, a *component.Animation, name string) error {
	if s.Schema == nil {
		return data.ErrSpriteNotFound
	}
	next, err := s.Schema.Animation(name)
	if err != nil {
		return err
	}
	SetAnimationSchema(a, next)
	return nil
}

// SetAnimationSchema restarts a on next unless next equals the current
// schema. Reports whether playback was reset.
func SetAnimationSchema(a *component.Animation, next *data.AnimationSchema) bool {
	if a.Schema.Equal(next) {
		return false
	}
	*a = component.NewAnimation(next)
	return true
}
