package component

// Lifetime counts down in seconds; the particle system deletes the entity
// once it reaches zero.
type Lifetime struct {
	Remaining float64
}

// Scaling multiplies Scale by Factor every tick. When either axis shrinks
// below Threshold the entity is deleted; a negative Threshold disables that.
type Scaling struct {
	Factor    float32
	Threshold float32
}

func NewScaling(factor float32) Scaling { return Scaling{Factor: factor, Threshold: -1} }

// Wandering makes a particle drift. Bias (-1..1 per axis) skews the random
// acceleration, Strength scales it and Resistance damps velocity per second.
type Wandering struct {
	BiasX, BiasY float32
	Strength     float32
	Resistance   float32
}
