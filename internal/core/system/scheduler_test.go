package system

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoneng/stoneng/internal/core/ecs"
)

func fn(name string, reads, writes []Resource, run func(*Context)) Func {
	if run == nil {
		run = func(*Context) {}
	}
	return Func{ID: name, Uses: Access{Reads: reads, Writes: writes}, RunFn: run}
}

func res(rs ...Resource) []Resource { return rs }

func TestBuildRejectsUnorderedWriteWrite(t *testing.T) {
	_, err := NewBuilder(nil).
		With(fn("a", nil, res("position"), nil)).
		With(fn("b", nil, res("position"), nil)).
		Build()
	require.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "position")
}

func TestBuildRejectsUnorderedWriteRead(t *testing.T) {
	_, err := NewBuilder(nil).
		With(fn("reader", res("sprite"), nil, nil)).
		With(fn("writer", nil, res("sprite"), nil)).
		Build()
	assert.ErrorIs(t, err, ErrConflict)
}

func TestBuildAllowsSharedReads(t *testing.T) {
	s, err := NewBuilder(nil).
		With(fn("a", res("position"), res("velocity"), nil)).
		With(fn("b", res("position"), res("collision_events"), nil)).
		Build()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {}}, s.Stages())
}

func TestDependencyResolvesConflict(t *testing.T) {
	s, err := NewBuilder(nil).
		With(fn("velocity", res("velocity"), res("position"), nil)).
		With(fn("collision", res("position"), res("collision_events"), nil), "velocity").
		With(fn("particle", nil, res("lifetime"), nil)).
		Build()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"velocity", "particle"}, {"collision"}, {}}, s.Stages())
}

func TestTransitiveDependencyOrders(t *testing.T) {
	_, err := NewBuilder(nil).
		With(fn("a", nil, res("x"), nil)).
		With(fn("b", nil, res("y"), nil), "a").
		With(fn("c", res("x"), nil, nil), "b").
		Build()
	assert.NoError(t, err, "c is ordered after a through b")
}

func TestBuildRejectsUnknownAndForwardDependencies(t *testing.T) {
	_, err := NewBuilder(nil).
		With(fn("a", nil, nil, nil), "b").
		With(fn("b", nil, nil, nil)).
		Build()
	assert.ErrorIs(t, err, ErrUnknownDependency)
}

func TestBuildRejectsDuplicates(t *testing.T) {
	_, err := NewBuilder(nil).
		With(fn("a", nil, nil, nil)).
		WithThreadLocal(fn("a", nil, nil, nil)).
		Build()
	assert.ErrorIs(t, err, ErrDuplicateSystem)
}

func TestThreadLocalRunsAfterParallelInOrder(t *testing.T) {
	var mu sync.Mutex
	var order []string
	record := func(name string) func(*Context) {
		return func(*Context) {
			mu.Lock()
			order = append(order, name)
			mu.Unlock()
		}
	}
	s, err := NewBuilder(nil).
		WithThreadLocal(fn("tile", nil, nil, record("tile"))).
		With(fn("p1", nil, res("a"), record("p"))).
		WithThreadLocal(fn("sprite", nil, nil, record("sprite"))).
		With(fn("p2", nil, res("b"), record("p"))).
		WithThreadLocal(fn("light", nil, nil, record("light"))).
		WithThreadLocal(fn("text", nil, nil, record("text"))).
		Build()
	require.NoError(t, err)

	s.Dispatch(NewContext(ecs.NewWorld(), 0))
	assert.Equal(t, []string{"p", "p", "tile", "sprite", "light", "text"}, order)
}

// Thread-local systems must observe every write committed by the parallel
// systems of the same tick.
func TestThreadLocalObservesParallelWrites(t *testing.T) {
	const writers = 8
	markers := make([]int64, writers)
	b := NewBuilder(nil).Workers(4)
	for i := 0; i < writers; i++ {
		i := i
		name := string(rune('a' + i))
		b.With(fn(name, nil, res(Resource(name)), func(ctx *Context) {
			time.Sleep(time.Millisecond)
			atomic.StoreInt64(&markers[i], int64(ctx.Tick))
		}))
	}
	var observed [][]int64
	b.WithThreadLocal(fn("render", res("a", "b", "c", "d", "e", "f", "g", "h"), nil, func(ctx *Context) {
		snap := make([]int64, writers)
		for i := range markers {
			snap[i] = atomic.LoadInt64(&markers[i])
		}
		observed = append(observed, snap)
	}))
	s, err := b.Build()
	require.NoError(t, err)

	w := ecs.NewWorld()
	for tick := uint64(1); tick <= 5; tick++ {
		s.Dispatch(NewContext(w, tick))
	}
	require.Len(t, observed, 5)
	for i, snap := range observed {
		for _, v := range snap {
			assert.Equal(t, int64(i+1), v)
		}
	}
}

func TestIndependentSystemsRunConcurrently(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(2)
	met := make(chan struct{})
	rendezvous := func(*Context) {
		wg.Done()
		wg.Wait()
		select {
		case met <- struct{}{}:
		default:
		}
	}
	s, err := NewBuilder(nil).Workers(2).
		With(fn("a", nil, res("x"), rendezvous)).
		With(fn("b", nil, res("y"), rendezvous)).
		Build()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		s.DispatchParallel(NewContext(ecs.NewWorld(), 0))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("systems in one stage did not run concurrently")
	}
}

func TestDependentSystemSeesPredecessorWrites(t *testing.T) {
	var value int
	s, err := NewBuilder(nil).
		With(fn("write", nil, res("v"), func(*Context) { value = 42 })).
		With(fn("read", res("v"), nil, func(*Context) { assert.Equal(t, 42, value) }), "write").
		Build()
	require.NoError(t, err)
	s.Dispatch(NewContext(ecs.NewWorld(), 0))
}

func TestPanicPropagates(t *testing.T) {
	s, err := NewBuilder(nil).
		WithThreadLocal(fn("boom", nil, nil, func(*Context) { panic("boom") })).
		Build()
	require.NoError(t, err)
	assert.Panics(t, func() { s.Dispatch(NewContext(ecs.NewWorld(), 0)) })
}

func TestNewContextClampsNegativeDelta(t *testing.T) {
	w := ecs.NewWorld()
	w.Resources.DeltaTime = -0.5
	w.Resources.Window = ecs.WindowSize{W: 800, H: 600}
	ctx := NewContext(w, 3)
	assert.Equal(t, 0.0, ctx.DT)
	assert.Equal(t, float32(800), ctx.Window.W)
	assert.Equal(t, uint64(3), ctx.Tick)
}
