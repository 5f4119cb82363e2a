package system

import "github.com/stoneng/stoneng/internal/core/ecs"

// Resource names a component store or shared resource a system touches.
type Resource string

// Access declares what a system reads and writes. The scheduler uses it once,
// at Build, to decide which systems may share a stage.
type Access struct {
	Reads  []Resource
	Writes []Resource
}

// Context is the per-tick input handed to every system. Systems must treat
// it as read-only; it is shared by concurrently running systems.
type Context struct {
	World  *ecs.World
	Tick   uint64
	DT     float64 // seconds since the previous tick, never negative
	Window ecs.WindowSize
	View   ecs.View
}

// NewContext snapshots the world's resources for one tick.
func NewContext(w *ecs.World, tick uint64) *Context {
	res := w.Resources
	dt := float64(res.DeltaTime)
	if dt < 0 {
		dt = 0
	}
	return &Context{World: w, Tick: tick, DT: dt, Window: res.Window, View: res.View}
}

// System is the interface every ECS system implements.
type System interface {
	Name() string
	Access() Access
	Update(ctx *Context)
}

// Func adapts a plain function into a System.
type Func struct {
	ID    string
	Uses  Access
	RunFn func(ctx *Context)
}

func (f Func) Name() string        { return f.ID }
func (f Func) Access() Access      { return f.Uses }
func (f Func) Update(ctx *Context) { f.RunFn(ctx) }
