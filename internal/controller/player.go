package controller

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/stoneng/stoneng/internal/component"
)

// MoveKey indexes the movement input array.
type MoveKey int

const (
	MoveUp MoveKey = iota
	MoveDown
	MoveLeft
	MoveRight
)

// snapSpeed is the speed below which the accelerated model stops dead.
const snapSpeed = 0.01

// Movement turns the desired unit direction into a new velocity.
type Movement interface {
	Apply(vel, dir mgl32.Vec2, dt float32) mgl32.Vec2
}

// Instant moves at MaxSpeed in the input direction with no inertia.
type Instant struct {
	MaxSpeed float32
}

func (m Instant) Apply(_, dir mgl32.Vec2, _ float32) mgl32.Vec2 {
	return dir.Mul(m.MaxSpeed)
}

// Accelerated gains Accel*MaxSpeed units/s² along the input and bleeds
// speed at Deccel per second on every axis the input is not pushing along.
type Accelerated struct {
	MaxSpeed float32
	Accel    float32
	Deccel   float32
}

// DefaultAccelerated is the tuning the demo player ships with.
var DefaultAccelerated = Accelerated{MaxSpeed: 300, Accel: 4, Deccel: 10}

func (m Accelerated) Apply(vel, dir mgl32.Vec2, dt float32) mgl32.Vec2 {
	push := dir.Mul(m.MaxSpeed * m.Accel * dt)

	drag := vel.Mul(-m.Deccel * dt)
	for i := range 2 {
		if dir[i] != 0 && (dir[i] > 0) == (vel[i] > 0) {
			drag[i] = 0
		}
	}

	next := vel.Add(drag).Add(push)
	if speed := next.Len(); speed > m.MaxSpeed {
		next = next.Normalize().Mul(m.MaxSpeed)
	} else if speed <= snapSpeed {
		next = mgl32.Vec2{}
	}
	return next
}

// PlayerController turns held movement keys into velocity.
type PlayerController struct {
	Model Movement

	input [4]bool
	dir   mgl32.Vec2
}

func NewPlayerController(model Movement) *PlayerController {
	return &PlayerController{Model: model}
}

// SetMoveInput records key as pressed or released. Repeats of the current
// state are ignored and report false.
func (c *PlayerController) SetMoveInput(key MoveKey, pressed bool) bool {
	if key < MoveUp || key > MoveRight || c.input[key] == pressed {
		return false
	}
	c.input[key] = pressed

	var x, y float32
	if c.input[MoveUp] {
		y++
	}
	if c.input[MoveDown] {
		y--
	}
	if c.input[MoveRight] {
		x++
	}
	if c.input[MoveLeft] {
		x--
	}
	c.dir = mgl32.Vec2{}
	if x != 0 || y != 0 {
		c.dir = mgl32.Vec2{x, y}.Normalize()
	}
	return true
}

// Input returns the held keys as [up, down, left, right].
func (c *PlayerController) Input() [4]bool { return c.input }

// Direction is the normalized movement direction, zero when idle or when
// opposite keys cancel.
func (c *PlayerController) Direction() mgl32.Vec2 { return c.dir }

// Tick applies the movement model to vel.
func (c *PlayerController) Tick(vel *component.Velocity, dt float64) {
	next := c.Model.Apply(mgl32.Vec2{vel.X, vel.Y}, c.dir, float32(dt))
	vel.X, vel.Y = next.X(), next.Y()
}
