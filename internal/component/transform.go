package component

// Position is a world-space location. Z orders sprites back to front.
type Position struct {
	X, Y, Z float32
}

// Scale stretches a rendered sprite. A negative X mirrors it horizontally.
type Scale struct {
	X, Y float32
}

// DefaultScale is the identity scale.
var DefaultScale = Scale{X: 1, Y: 1}

// Rotation in degrees.
type Rotation struct {
	Deg float32
}
