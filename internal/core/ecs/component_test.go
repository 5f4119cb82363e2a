package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pos struct{ X, Y float32 }

func storeContract(t *testing.T, s Store[pos]) {
	t.Helper()
	p := NewEntityPool()
	a, b := p.Create(), p.Create()

	_, ok := s.Get(a)
	assert.False(t, ok)

	s.Set(a, pos{1, 2})
	got, ok := s.Get(a)
	require.True(t, ok)
	assert.Equal(t, pos{1, 2}, *got)
	assert.False(t, s.Has(b))
	assert.Equal(t, 1, s.Len())

	got.X = 9
	again, _ := s.Get(a)
	assert.Equal(t, float32(9), again.X, "Get returns a mutable reference")

	s.Set(a, pos{3, 4})
	assert.Equal(t, 1, s.Len(), "overwrite does not add")

	s.Remove(a)
	assert.False(t, s.Has(a))
	assert.Equal(t, 0, s.Len())
	s.Remove(a)
	assert.Equal(t, 0, s.Len())
}

func TestSparseStoreContract(t *testing.T) {
	storeContract(t, NewSparseStore[pos]())
}

func TestDenseStoreContract(t *testing.T) {
	storeContract(t, NewDenseStore[pos]())
}

func TestDenseStoreRejectsStaleGeneration(t *testing.T) {
	p := NewEntityPool()
	s := NewDenseStore[pos]()
	a := p.Create()
	s.Set(a, pos{1, 1})
	p.Destroy(a)
	b := p.Create()
	require.Equal(t, a.Index(), b.Index())

	assert.False(t, s.Has(b), "recycled index must not see the old component")
	s.Remove(b)
	assert.True(t, s.Has(a))
}

func TestDenseStoreGrowsPastInitialCapacity(t *testing.T) {
	p := NewEntityPool()
	s := NewDenseStore[pos]()
	ids := make([]EntityID, 3000)
	for i := range ids {
		ids[i] = p.Create()
		s.Set(ids[i], pos{X: float32(i)})
	}
	assert.Equal(t, 3000, s.Len())
	for i, id := range ids {
		got, ok := s.Get(id)
		require.True(t, ok)
		assert.Equal(t, float32(i), got.X)
	}
}
