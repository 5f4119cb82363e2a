package controller

import "github.com/go-gl/mathgl/mgl32"

// DefaultIdleThreshold is the speed, in world units per second, at or
// below which an entity counts as standing still.
const DefaultIdleThreshold = 10

// MoveState is the locomotion half of an animation name.
type MoveState int

const (
	Idle MoveState = iota
	Walking
)

func (s MoveState) String() string {
	if s == Walking {
		return "walk"
	}
	return "idle"
}

// StateOf classifies a velocity against threshold.
func StateOf(vel mgl32.Vec2, threshold float32) MoveState {
	if vel.Len() > threshold {
		return Walking
	}
	return Idle
}

// AnimName composes the animation key, e.g. "walk-diag-up" or "idle-side".
func AnimName(s MoveState, d Direction) string {
	return s.String() + "-" + d.String()
}
