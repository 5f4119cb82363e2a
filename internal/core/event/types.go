package event

import "github.com/stoneng/stoneng/internal/core/ecs"

// Collision is emitted once per ordered overlapping pair per tick. A
// physical overlap between A and B yields both (A,B) and (B,A).
type Collision struct {
	A, B ecs.EntityID
}

// Key identifies a keyboard key independent of the input backend.
type Key int

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEscape
)

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)

// KeyInput is a key transition. Repeat marks an auto-repeat press of a key
// that is already held.
type KeyInput struct {
	Key     Key
	Pressed bool
	Repeat  bool
	Mods    Modifier
}

type MouseInput struct {
	Button  MouseButton
	Pressed bool
	Mods    Modifier
}

// CursorMoved carries the cursor position in window pixels, origin top-left.
type CursorMoved struct {
	X, Y float64
}

type Resized struct {
	W, H int
}

// CloseRequested is emitted when the window or terminal asks to quit.
type CloseRequested struct{}
