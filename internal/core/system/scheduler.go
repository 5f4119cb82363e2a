package system

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrConflict: two unordered parallel systems declare overlapping
	// write/write or write/read access.
	ErrConflict          = errors.New("system access conflict")
	ErrDuplicateSystem   = errors.New("duplicate system name")
	ErrUnknownDependency = errors.New("unknown system dependency")
)

type entry struct {
	sys   System
	after []string
}

// Builder collects systems and validates the schedule once, at Build.
//
// Systems added with With may run concurrently with any system they are
// not ordered against. Systems added with WithThreadLocal run afterwards,
// one by one, on the goroutine that calls Dispatch, in registration order.
type Builder struct {
	log      *zap.Logger
	parallel []entry
	local    []System
	workers  int
}

func NewBuilder(log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{log: log, workers: runtime.GOMAXPROCS(0)}
}

// With registers a parallel-eligible system that must run after every
// system named in after. Dependencies must already be registered.
func (b *Builder) With(sys System, after ...string) *Builder {
	b.parallel = append(b.parallel, entry{sys: sys, after: after})
	return b
}

// WithThreadLocal registers a system bound to the dispatching goroutine.
func (b *Builder) WithThreadLocal(sys System) *Builder {
	b.local = append(b.local, sys)
	return b
}

// Workers caps how many parallel systems run at once. n < 1 means 1.
func (b *Builder) Workers(n int) *Builder {
	if n < 1 {
		n = 1
	}
	b.workers = n
	return b
}

// Build validates names, dependencies and access sets and computes stages.
func (b *Builder) Build() (*Scheduler, error) {
	index := make(map[string]int, len(b.parallel))
	seen := make(map[string]bool, len(b.parallel)+len(b.local))
	for _, s := range b.local {
		if seen[s.Name()] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSystem, s.Name())
		}
		seen[s.Name()] = true
	}

	n := len(b.parallel)
	ancestors := make([]map[int]bool, n)
	stageOf := make([]int, n)
	for i, e := range b.parallel {
		name := e.sys.Name()
		if seen[name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSystem, name)
		}
		seen[name] = true

		anc := make(map[int]bool)
		for _, dep := range e.after {
			j, ok := index[dep]
			if !ok {
				return nil, fmt.Errorf("%w: %q runs after %q, which is not registered before it", ErrUnknownDependency, name, dep)
			}
			anc[j] = true
			for k := range ancestors[j] {
				anc[k] = true
			}
			if stageOf[j]+1 > stageOf[i] {
				stageOf[i] = stageOf[j] + 1
			}
		}
		ancestors[i] = anc
		index[name] = i
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if ancestors[j][i] {
				continue // ordered
			}
			if shared := conflicts(b.parallel[i].sys.Access(), b.parallel[j].sys.Access()); len(shared) > 0 {
				return nil, fmt.Errorf("%w: %q and %q both access %s without an ordering edge",
					ErrConflict, b.parallel[i].sys.Name(), b.parallel[j].sys.Name(), joinResources(shared))
			}
		}
	}

	var stages [][]System
	for i, e := range b.parallel {
		for len(stages) <= stageOf[i] {
			stages = append(stages, nil)
		}
		stages[stageOf[i]] = append(stages[stageOf[i]], e.sys)
	}

	s := &Scheduler{
		stages:  stages,
		local:   append([]System(nil), b.local...),
		workers: b.workers,
	}
	b.log.Info("scheduler built",
		zap.Int("parallel", n),
		zap.Int("stages", len(stages)),
		zap.Int("thread_local", len(s.local)),
		zap.Int("workers", s.workers),
	)
	return s, nil
}

// conflicts returns the resources on which a and b cannot run together.
func conflicts(a, b Access) []Resource {
	var out []Resource
	add := func(r Resource) {
		for _, x := range out {
			if x == r {
				return
			}
		}
		out = append(out, r)
	}
	for _, w := range a.Writes {
		for _, r := range b.Writes {
			if w == r {
				add(w)
			}
		}
		for _, r := range b.Reads {
			if w == r {
				add(w)
			}
		}
	}
	for _, w := range b.Writes {
		for _, r := range a.Reads {
			if w == r {
				add(w)
			}
		}
	}
	return out
}

func joinResources(rs []Resource) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

// Scheduler runs a validated set of systems once per tick.
type Scheduler struct {
	stages  [][]System
	local   []System
	workers int
}

// Dispatch runs every parallel stage to completion, then the thread-local
// systems in order on the calling goroutine. Panics are not recovered.
func (s *Scheduler) Dispatch(ctx *Context) {
	s.DispatchParallel(ctx)
	s.DispatchThreadLocal(ctx)
}

// DispatchParallel runs the parallel stages only.
func (s *Scheduler) DispatchParallel(ctx *Context) {
	for _, stage := range s.stages {
		if len(stage) == 1 || s.workers == 1 {
			for _, sys := range stage {
				sys.Update(ctx)
			}
			continue
		}
		var g errgroup.Group
		g.SetLimit(s.workers)
		for _, sys := range stage {
			g.Go(func() error {
				sys.Update(ctx)
				return nil
			})
		}
		_ = g.Wait() // systems do not fail; Wait is the stage barrier
	}
}

// DispatchThreadLocal runs the thread-local systems in registration order.
func (s *Scheduler) DispatchThreadLocal(ctx *Context) {
	for _, sys := range s.local {
		sys.Update(ctx)
	}
}

// Stages returns system names grouped by stage, followed by one final group
// holding the thread-local sequence.
func (s *Scheduler) Stages() [][]string {
	out := make([][]string, 0, len(s.stages)+1)
	for _, stage := range s.stages {
		names := make([]string, len(stage))
		for i, sys := range stage {
			names[i] = sys.Name()
		}
		out = append(out, names)
	}
	local := make([]string, len(s.local))
	for i, sys := range s.local {
		local[i] = sys.Name()
	}
	return append(out, local)
}
