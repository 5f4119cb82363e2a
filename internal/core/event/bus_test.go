package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusDeliversOnNextTick(t *testing.T) {
	b := NewBus()
	var keys []KeyInput
	Subscribe(b, func(k KeyInput) { keys = append(keys, k) })

	Emit(b, KeyInput{Key: KeyW, Pressed: true})
	b.DispatchAll()
	assert.Empty(t, keys, "not visible before swap")

	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []KeyInput{{Key: KeyW, Pressed: true}}, keys)

	b.SwapBuffers()
	b.DispatchAll()
	assert.Len(t, keys, 1, "events are delivered once")
}

func TestBusRoutesByType(t *testing.T) {
	b := NewBus()
	var order []string
	Subscribe(b, func(CursorMoved) { order = append(order, "cursor") })
	Subscribe(b, func(MouseInput) { order = append(order, "mouse") })

	Emit(b, MouseInput{Button: MouseLeft})
	Emit(b, CursorMoved{X: 1})
	Emit(b, MouseInput{Button: MouseRight})
	b.SwapBuffers()
	b.DispatchAll()

	assert.Equal(t, []string{"mouse", "mouse", "cursor"}, order)
}
