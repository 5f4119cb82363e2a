package ecs

// DeltaTime is the number of seconds elapsed since the previous tick.
type DeltaTime float64

// WindowSize is the drawable surface size in pixels.
type WindowSize struct {
	W, H float32
}

// View is the camera offset applied by renderers. Z scales depth.
type View struct {
	X, Y, Z float32
}

// Resources are the per-tick globals owned by the World. They are written
// between scheduler passes and copied into each system's tick context.
type Resources struct {
	DeltaTime DeltaTime
	Window    WindowSize
	View      View
}
