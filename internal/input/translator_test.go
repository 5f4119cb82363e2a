package input

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoneng/stoneng/internal/core/event"
)

type sink struct {
	keys    []event.KeyInput
	mice    []event.MouseInput
	cursors []event.CursorMoved
	resizes []event.Resized
	closes  int
}

func newSink(bus *event.Bus) *sink {
	s := &sink{}
	event.Subscribe(bus, func(e event.KeyInput) { s.keys = append(s.keys, e) })
	event.Subscribe(bus, func(e event.MouseInput) { s.mice = append(s.mice, e) })
	event.Subscribe(bus, func(e event.CursorMoved) { s.cursors = append(s.cursors, e) })
	event.Subscribe(bus, func(e event.Resized) { s.resizes = append(s.resizes, e) })
	event.Subscribe(bus, func(event.CloseRequested) { s.closes++ })
	return s
}

func flush(bus *event.Bus) {
	bus.SwapBuffers()
	bus.DispatchAll()
}

func locate(col, row int) (float64, float64) {
	return float64(col)*10 + 5, float64(row)*10 + 5
}

func TestTranslateKeys(t *testing.T) {
	bus := event.NewBus()
	s := newSink(bus)
	tr := NewTranslator(bus, locate, 0)

	assert.True(t, tr.Translate(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)))
	assert.True(t, tr.Translate(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)))
	assert.True(t, tr.Translate(tcell.NewEventKey(tcell.KeyRune, 'D', tcell.ModNone)))
	assert.True(t, tr.Translate(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModCtrl)))
	assert.True(t, tr.Translate(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, tr.Translate(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
	assert.True(t, tr.Translate(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)))
	flush(bus)

	assert.Equal(t, []event.KeyInput{
		{Key: event.KeyW, Pressed: true},
		{Key: event.KeyW, Pressed: true, Repeat: true},
		{Key: event.KeyD, Pressed: true, Mods: event.ModShift},
		{Key: event.KeyUp, Pressed: true, Mods: event.ModCtrl},
		{Key: event.KeyEscape, Pressed: true},
	}, s.keys)
	assert.Equal(t, 1, s.closes)
	assert.True(t, tr.Held(event.KeyW))
	assert.False(t, tr.Held(event.KeyA))
}

func TestExpireReleasesIdleKeys(t *testing.T) {
	bus := event.NewBus()
	s := newSink(bus)
	tr := NewTranslator(bus, locate, time.Minute)

	tr.Translate(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	tr.Translate(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	tr.Expire(time.Now())
	flush(bus)
	require.Len(t, s.keys, 2, "nothing expires inside the hold timeout")

	s.keys = nil
	tr.Expire(time.Now().Add(2 * time.Minute))
	flush(bus)
	assert.Equal(t, []event.KeyInput{
		{Key: event.KeyA, Pressed: false},
		{Key: event.KeyRight, Pressed: false},
	}, s.keys)
	assert.False(t, tr.Held(event.KeyA))

	s.keys = nil
	tr.Translate(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	flush(bus)
	assert.Equal(t, []event.KeyInput{{Key: event.KeyA, Pressed: true}}, s.keys, "a fresh press after release is not a repeat")
}

func TestTranslateMouse(t *testing.T) {
	bus := event.NewBus()
	s := newSink(bus)
	tr := NewTranslator(bus, locate, 0)

	tr.Translate(tcell.NewEventMouse(3, 4, tcell.ButtonNone, tcell.ModNone))
	tr.Translate(tcell.NewEventMouse(3, 4, tcell.Button1, tcell.ModShift))
	tr.Translate(tcell.NewEventMouse(3, 4, tcell.Button1|tcell.Button2, tcell.ModNone))
	tr.Translate(tcell.NewEventMouse(6, 1, tcell.ButtonNone, tcell.ModNone))
	flush(bus)

	assert.Equal(t, []event.CursorMoved{{X: 35, Y: 45}, {X: 65, Y: 15}}, s.cursors)
	assert.Equal(t, []event.MouseInput{
		{Button: event.MouseLeft, Pressed: true, Mods: event.ModShift},
		{Button: event.MouseRight, Pressed: true},
		{Button: event.MouseLeft, Pressed: false},
		{Button: event.MouseRight, Pressed: false},
	}, s.mice)
}

func TestTranslateResize(t *testing.T) {
	bus := event.NewBus()
	s := newSink(bus)
	tr := NewTranslator(bus, locate, 0)

	assert.True(t, tr.Translate(tcell.NewEventResize(100, 30)))
	assert.False(t, tr.Translate(tcell.NewEventInterrupt(nil)))
	flush(bus)
	assert.Equal(t, []event.Resized{{W: 100, H: 30}}, s.resizes)
}
