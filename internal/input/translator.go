// Package input turns terminal events into engine input events on the bus.
//
// Terminals report key presses and auto-repeats but never releases, so a
// held key is considered released once no repeat arrived for the hold
// timeout. Expire must be called once per tick to deliver those releases.
package input

import (
	"maps"
	"slices"
	"time"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/stoneng/stoneng/internal/core/event"
)

// DefaultHoldTimeout covers the initial auto-repeat delay of common
// terminals.
const DefaultHoldTimeout = 500 * time.Millisecond

// Locator converts a terminal cell to window pixels.
type Locator func(col, row int) (x, y float64)

var buttons = []struct {
	mask tcell.ButtonMask
	btn  event.MouseButton
}{
	{tcell.Button1, event.MouseLeft},
	{tcell.Button2, event.MouseRight},
	{tcell.Button3, event.MouseMiddle},
}

// Translator is driven by the goroutine that polls the terminal.
type Translator struct {
	bus    *event.Bus
	locate Locator
	hold   time.Duration

	held    map[event.Key]time.Time
	pressed tcell.ButtonMask
	cursor  [2]int
	moved   bool
}

func NewTranslator(bus *event.Bus, locate Locator, hold time.Duration) *Translator {
	if hold <= 0 {
		hold = DefaultHoldTimeout
	}
	return &Translator{
		bus:    bus,
		locate: locate,
		hold:   hold,
		held:   make(map[event.Key]time.Time),
	}
}

// Translate emits the engine events for ev and reports whether ev was
// understood.
func (t *Translator) Translate(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.key(ev)
	case *tcell.EventMouse:
		t.mouse(ev)
		return true
	case *tcell.EventResize:
		w, h := ev.Size()
		event.Emit(t.bus, event.Resized{W: w, H: h})
		return true
	}
	return false
}

func (t *Translator) key(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		event.Emit(t.bus, event.CloseRequested{})
		return true
	}

	mods := modifiers(ev.Modifiers())
	var key event.Key
	switch ev.Key() {
	case tcell.KeyUp:
		key = event.KeyUp
	case tcell.KeyDown:
		key = event.KeyDown
	case tcell.KeyLeft:
		key = event.KeyLeft
	case tcell.KeyRight:
		key = event.KeyRight
	case tcell.KeyEscape:
		key = event.KeyEscape
	case tcell.KeyRune:
		r := ev.Rune()
		if unicode.IsUpper(r) {
			mods |= event.ModShift
		}
		switch unicode.ToLower(r) {
		case 'w':
			key = event.KeyW
		case 'a':
			key = event.KeyA
		case 's':
			key = event.KeyS
		case 'd':
			key = event.KeyD
		}
	}
	if key == event.KeyUnknown {
		return false
	}

	_, repeat := t.held[key]
	t.held[key] = ev.When()
	event.Emit(t.bus, event.KeyInput{Key: key, Pressed: true, Repeat: repeat, Mods: mods})
	return true
}

func (t *Translator) mouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	if !t.moved || t.cursor != [2]int{col, row} {
		t.cursor, t.moved = [2]int{col, row}, true
		x, y := t.locate(col, row)
		event.Emit(t.bus, event.CursorMoved{X: x, Y: y})
	}

	mods := modifiers(ev.Modifiers())
	now := ev.Buttons()
	for _, b := range buttons {
		was, is := t.pressed&b.mask != 0, now&b.mask != 0
		if was != is {
			event.Emit(t.bus, event.MouseInput{Button: b.btn, Pressed: is, Mods: mods})
		}
	}
	t.pressed = now & (tcell.Button1 | tcell.Button2 | tcell.Button3)
}

// Expire releases keys whose last press is older than the hold timeout.
// Releases are emitted in key order.
func (t *Translator) Expire(now time.Time) {
	for _, k := range slices.Sorted(maps.Keys(t.held)) {
		if now.Sub(t.held[k]) >= t.hold {
			delete(t.held, k)
			event.Emit(t.bus, event.KeyInput{Key: k, Pressed: false})
		}
	}
}

// Held reports whether key is currently considered down.
func (t *Translator) Held(key event.Key) bool {
	_, ok := t.held[key]
	return ok
}

func modifiers(m tcell.ModMask) event.Modifier {
	var out event.Modifier
	if m&tcell.ModShift != 0 {
		out |= event.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= event.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= event.ModAlt
	}
	return out
}
