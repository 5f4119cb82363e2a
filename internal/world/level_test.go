package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stoneng/stoneng/internal/component"
	"github.com/stoneng/stoneng/internal/data"
)

func TestPopulateLevel(t *testing.T) {
	brick := &data.SpriteSchema{Name: "brick", Root: 8}
	water := &data.SpriteSchema{Name: "water", Root: 96}
	s := NewState(&data.SpriteSheet{})
	legend := Legend{'#': {Wall: brick}, '~': {Floor: water}}

	ids, err := s.PopulateLevel("#~\r\n #\n", legend, 10, 5)
	require.NoError(t, err)
	require.Len(t, ids, 3)

	tile, ok := s.Tiles.Get(ids[0])
	require.True(t, ok)
	assert.Equal(t, component.Tile{X: 10, Y: 5}, *tile)
	assert.True(t, s.Walls.Has(ids[0]))
	assert.False(t, s.Floors.Has(ids[0]))

	floor, ok := s.Floors.Get(ids[1])
	require.True(t, ok)
	assert.Same(t, water, floor.Schema)

	tile, _ = s.Tiles.Get(ids[2])
	assert.Equal(t, component.Tile{X: 11, Y: 4}, *tile, "second line sits one row lower")
}

func TestPopulateLevelRejects(t *testing.T) {
	s := NewState(&data.SpriteSheet{})
	legend := Legend{'#': {Wall: &data.SpriteSchema{Root: 8}}}

	_, err := s.PopulateLevel("###\n##\n", legend, 0, 0)
	assert.ErrorIs(t, err, ErrMalformedLevel)

	_, err = s.PopulateLevel("#?#\n", legend, 0, 0)
	assert.ErrorIs(t, err, ErrMalformedLevel)

	assert.Zero(t, s.EntityCount(), "a rejected level creates nothing")

	ids, err := s.PopulateLevel("", legend, 0, 0)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLoadShippedLevel(t *testing.T) {
	s := NewState(&data.SpriteSheet{})
	legend := Legend{
		'#': {Wall: &data.SpriteSchema{Root: 8}},
		'~': {Floor: &data.SpriteSchema{Root: 96}},
	}
	ids, err := s.LoadLevel("../../data/level/arena.txt", legend, -5, 3)
	require.NoError(t, err)
	assert.NotEmpty(t, ids)
	assert.Equal(t, len(ids), s.Tiles.Len())

	_, err = s.LoadLevel("../../data/level/missing.txt", legend, 0, 0)
	assert.Error(t, err)
}
