package component

type Velocity struct {
	X, Y float32
}

// Collider is an axis-aligned box centred on the entity's Position.
// Width and Height are full extents.
type Collider struct {
	Width, Height float32
}
