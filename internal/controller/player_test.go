package controller

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoneng/stoneng/internal/component"
)

func TestSetMoveInput(t *testing.T) {
	c := NewPlayerController(Instant{MaxSpeed: 100})

	require.True(t, c.SetMoveInput(MoveRight, true))
	assert.Equal(t, mgl32.Vec2{1, 0}, c.Direction())
	assert.False(t, c.SetMoveInput(MoveRight, true), "repeats are ignored")

	require.True(t, c.SetMoveInput(MoveUp, true))
	d := c.Direction()
	assert.InDelta(t, 1/math.Sqrt2, d.X(), 1e-6)
	assert.InDelta(t, 1/math.Sqrt2, d.Y(), 1e-6)

	require.True(t, c.SetMoveInput(MoveDown, true))
	assert.Equal(t, mgl32.Vec2{1, 0}, c.Direction(), "up and down cancel")

	c.SetMoveInput(MoveLeft, true)
	assert.Equal(t, mgl32.Vec2{}, c.Direction(), "all four held is no movement")
	assert.False(t, math.IsNaN(float64(c.Direction().X())))
	assert.Equal(t, [4]bool{true, true, true, true}, c.Input())

	assert.False(t, c.SetMoveInput(MoveKey(9), true))
}

func TestInstantMovement(t *testing.T) {
	c := NewPlayerController(Instant{MaxSpeed: 100})
	vel := component.Velocity{X: 5, Y: 5}

	c.SetMoveInput(MoveLeft, true)
	c.Tick(&vel, 0.016)
	assert.Equal(t, component.Velocity{X: -100, Y: 0}, vel)

	c.SetMoveInput(MoveLeft, false)
	c.Tick(&vel, 0.016)
	assert.Equal(t, component.Velocity{}, vel)
}

func TestAcceleratedMovement(t *testing.T) {
	c := NewPlayerController(DefaultAccelerated)
	var vel component.Velocity

	c.SetMoveInput(MoveRight, true)
	c.Tick(&vel, 0.1)
	assert.InDelta(t, 120, vel.X, 1e-3)
	c.Tick(&vel, 0.1)
	assert.InDelta(t, 240, vel.X, 1e-3, "no drag while pushing along the velocity")
	c.Tick(&vel, 0.1)
	assert.InDelta(t, 300, vel.X, 1e-3, "clamped to max speed")

	c.SetMoveInput(MoveRight, false)
	c.Tick(&vel, 0.05)
	assert.InDelta(t, 150, vel.X, 1e-3)
	for range 20 {
		c.Tick(&vel, 0.05)
	}
	assert.Equal(t, float32(0), vel.X, "snaps to rest")
}

func TestAcceleratedTurnaroundDrags(t *testing.T) {
	m := Accelerated{MaxSpeed: 300, Accel: 4, Deccel: 5}
	next := m.Apply(mgl32.Vec2{200, 0}, mgl32.Vec2{-1, 0}, 0.1)
	// drag 200*5*0.1 = 100, push -120
	assert.InDelta(t, -20, next.X(), 1e-3)
}
