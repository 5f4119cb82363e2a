package world

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/stoneng/stoneng/internal/core/ecs"
	"github.com/stoneng/stoneng/internal/data"
)

var ErrMalformedLevel = errors.New("malformed level")

// LevelCell is what one level character places: a floor, a wall or both.
type LevelCell struct {
	Floor *data.SpriteSchema
	Wall  *data.SpriteSchema
}

// Legend maps level characters to cells. A space places nothing unless
// the legend says otherwise.
type Legend map[rune]LevelCell

// LoadLevel reads a level file and populates it; see PopulateLevel.
func (s *State) LoadLevel(path string, legend Legend, originX, originY int32) ([]ecs.EntityID, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	ids, err := s.PopulateLevel(string(raw), legend, originX, originY)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return ids, nil
}

// PopulateLevel creates tile entities from a text level: equal-width lines,
// one character per tile. The first character of the first line lands on
// (originX, originY); rows go down the y axis. Nothing is created when the
// level is rejected.
func (s *State) PopulateLevel(level string, legend Legend, originX, originY int32) ([]ecs.EntityID, error) {
	lines := strings.Split(strings.TrimRight(strings.ReplaceAll(level, "\r\n", "\n"), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil, nil
	}

	width := len([]rune(lines[0]))
	type placement struct {
		x, y int32
		cell LevelCell
	}
	var todo []placement
	for row, line := range lines {
		runes := []rune(line)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: line %d is %d wide, want %d", ErrMalformedLevel, row+1, len(runes), width)
		}
		for col, ch := range runes {
			cell, ok := legend[ch]
			if !ok {
				if ch == ' ' {
					continue
				}
				return nil, fmt.Errorf("%w: unknown tile %q at line %d column %d", ErrMalformedLevel, ch, row+1, col+1)
			}
			todo = append(todo, placement{x: originX + int32(col), y: originY - int32(row), cell: cell})
		}
	}

	ids := make([]ecs.EntityID, 0, len(todo))
	for _, p := range todo {
		b := s.Create()
		if p.cell.Floor != nil {
			b.Floor(p.x, p.y, p.cell.Floor)
		}
		if p.cell.Wall != nil {
			b.Wall(p.x, p.y, p.cell.Wall)
		}
		ids = append(ids, b.ID())
	}
	return ids, nil
}
