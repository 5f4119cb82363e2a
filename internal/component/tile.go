package component

import "github.com/stoneng/stoneng/internal/data"

// Tile is a cell on the background grid.
type Tile struct {
	X, Y int32
}

// Floor and Wall select the schema drawn for a Tile and its layer.
type Floor struct {
	Schema *data.SpriteSchema
}

type Wall struct {
	Schema *data.SpriteSchema
}
