package render

import (
	"errors"
	"sync"
)

// ErrContext wraps failures to acquire or drive the drawing context.
var ErrContext = errors.New("render context")

// Renderer is the drawing backend. All methods are called from the
// goroutine that owns the context, in pass order, once per tick.
type Renderer interface {
	Clear()
	DrawSprites(layer Layer, batch *SpriteBatch, vp Viewport)
	DrawLights(lights []LightRecord, vp Viewport)
	DrawText(texts []TextRecord, vp Viewport)
	Present() error
}

// Call is one recorded Renderer invocation.
type Call struct {
	Op      string // clear, sprites, lights, text, present
	Layer   Layer
	Sprites []SpriteRecord
	Lights  []LightRecord
	Texts   []TextRecord
}

// Recorder is an in-memory Renderer used headless and in tests. It keeps
// the calls of the frame in progress and of the last presented frame.
type Recorder struct {
	mu         sync.Mutex
	current    []Call
	last       []Call
	Frames     int
	PresentErr error
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Clear() {
	r.mu.Lock()
	r.current = append(r.current[:0:0], Call{Op: "clear"})
	r.mu.Unlock()
}

func (r *Recorder) DrawSprites(layer Layer, batch *SpriteBatch, _ Viewport) {
	r.mu.Lock()
	r.current = append(r.current, Call{Op: "sprites", Layer: layer, Sprites: append([]SpriteRecord(nil), batch.Records...)})
	r.mu.Unlock()
}

func (r *Recorder) DrawLights(lights []LightRecord, _ Viewport) {
	r.mu.Lock()
	r.current = append(r.current, Call{Op: "lights", Lights: append([]LightRecord(nil), lights...)})
	r.mu.Unlock()
}

func (r *Recorder) DrawText(texts []TextRecord, _ Viewport) {
	r.mu.Lock()
	r.current = append(r.current, Call{Op: "text", Texts: append([]TextRecord(nil), texts...)})
	r.mu.Unlock()
}

func (r *Recorder) Present() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.PresentErr != nil {
		return r.PresentErr
	}
	r.last = append(r.current, Call{Op: "present"})
	r.current = nil
	r.Frames++
	return nil
}

// LastFrame returns the calls of the last presented frame.
func (r *Recorder) LastFrame() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.last...)
}

// Pending returns the calls recorded since the last Present.
func (r *Recorder) Pending() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.current...)
}
