package ecs

import "sync"

type pendingRemoval struct {
	store Removable
	id    EntityID
}

// World is the top-level ECS container. It owns the entity pool, the component
// registry, the per-tick resources, and deferred destruction and removal
// queues flushed by Maintain between scheduler passes.
type World struct {
	pool     *EntityPool
	registry *Registry

	Resources Resources

	mu           sync.Mutex // guards the queues; systems mark from worker goroutines
	destroyQueue []EntityID
	removeQueue  []pendingRemoval
}

func NewWorld() *World {
	return &World{
		pool:         NewEntityPool(),
		registry:     NewRegistry(),
		destroyQueue: make([]EntityID, 0, 64),
		Resources: Resources{
			View: View{Z: 1},
		},
	}
}

func (w *World) Pool() *EntityPool   { return w.pool }
func (w *World) Registry() *Registry { return w.registry }

func (w *World) CreateEntity() EntityID {
	return w.pool.Create()
}

func (w *World) Alive(id EntityID) bool {
	return w.pool.Alive(id)
}

// MarkForDestruction queues an entity for deletion at the next Maintain.
// Safe to call from concurrently running systems.
func (w *World) MarkForDestruction(id EntityID) {
	w.mu.Lock()
	w.destroyQueue = append(w.destroyQueue, id)
	w.mu.Unlock()
}

// RemoveLater queues removal of one component at the next Maintain.
func (w *World) RemoveLater(store Removable, id EntityID) {
	w.mu.Lock()
	w.removeQueue = append(w.removeQueue, pendingRemoval{store: store, id: id})
	w.mu.Unlock()
}

// Pending returns the number of queued entity deletions.
func (w *World) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.destroyQueue)
}

// Maintain applies queued component removals, then destroys all queued
// entities and clears their components. Must only be called between
// scheduler passes. Returns the number of entities destroyed.
func (w *World) Maintain() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, r := range w.removeQueue {
		if w.pool.Alive(r.id) {
			r.store.Remove(r.id)
		}
	}
	w.removeQueue = w.removeQueue[:0]

	destroyed := 0
	for _, id := range w.destroyQueue {
		// duplicates and stale ids are ignored
		if !w.pool.Alive(id) {
			continue
		}
		w.registry.RemoveAll(id)
		w.pool.Destroy(id)
		destroyed++
	}
	w.destroyQueue = w.destroyQueue[:0]
	return destroyed
}
