package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// Store is the contract shared by the dense and sparse component stores.
// Get never returns a component for an entity that does not hold one.
type Store[T any] interface {
	Removable
	Set(id EntityID, c T)
	Get(id EntityID) (*T, bool)
	Has(id EntityID) bool
	Len() int
	Each(fn func(EntityID, *T))
}

// SparseStore is a generic typed map store, suited to components carried by
// a minority of entities (lights, text, colliders).
type SparseStore[T any] struct {
	data map[EntityID]*T
}

func NewSparseStore[T any]() *SparseStore[T] {
	return &SparseStore[T]{
		data: make(map[EntityID]*T, 64),
	}
}

func (s *SparseStore[T]) Set(id EntityID, c T) {
	if p, ok := s.data[id]; ok {
		*p = c
		return
	}
	s.data[id] = &c
}

func (s *SparseStore[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *SparseStore[T]) Remove(id EntityID) {
	delete(s.data, id)
}

func (s *SparseStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

func (s *SparseStore[T]) Len() int {
	return len(s.data)
}

func (s *SparseStore[T]) Each(fn func(EntityID, *T)) {
	for id, c := range s.data {
		fn(id, c)
	}
}

// DenseStore keeps components in a slice indexed by entity index. Suited to
// components nearly every entity carries (position, color, scale).
// Pointers returned by Get are valid until the next Set that grows the store.
type DenseStore[T any] struct {
	values  []T
	owners  []EntityID // zero when the slot is empty
	present int
}

func NewDenseStore[T any]() *DenseStore[T] {
	return &DenseStore[T]{
		values: make([]T, 0, 1024),
		owners: make([]EntityID, 0, 1024),
	}
}

func (s *DenseStore[T]) grow(idx int) {
	if idx < len(s.values) {
		return
	}
	n := idx + 1
	if n < 2*len(s.values) {
		n = 2 * len(s.values)
	}
	values := make([]T, n)
	owners := make([]EntityID, n)
	copy(values, s.values)
	copy(owners, s.owners)
	s.values, s.owners = values, owners
}

func (s *DenseStore[T]) Set(id EntityID, c T) {
	idx := int(id.Index())
	s.grow(idx)
	if s.owners[idx] != id {
		if s.owners[idx].IsZero() {
			s.present++
		}
		s.owners[idx] = id
	}
	s.values[idx] = c
}

func (s *DenseStore[T]) Get(id EntityID) (*T, bool) {
	idx := int(id.Index())
	if idx >= len(s.owners) || s.owners[idx] != id || id.IsZero() {
		return nil, false
	}
	return &s.values[idx], true
}

func (s *DenseStore[T]) Remove(id EntityID) {
	idx := int(id.Index())
	if idx >= len(s.owners) || s.owners[idx] != id || id.IsZero() {
		return
	}
	var zero T
	s.values[idx] = zero
	s.owners[idx] = 0
	s.present--
}

func (s *DenseStore[T]) Has(id EntityID) bool {
	_, ok := s.Get(id)
	return ok
}

func (s *DenseStore[T]) Len() int {
	return s.present
}

func (s *DenseStore[T]) Each(fn func(EntityID, *T)) {
	for i, owner := range s.owners {
		if !owner.IsZero() {
			fn(owner, &s.values[i])
		}
	}
}
