package controller

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Direction is the facing used to pick a directional animation. Left and
// right share Side; the sprite is mirrored instead.
type Direction int

const (
	Up Direction = iota
	Down
	Side
	DiagUp
	DiagDown
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Side:
		return "side"
	case DiagUp:
		return "diag-up"
	case DiagDown:
		return "diag-down"
	}
	return "unknown"
}

// Reference pairs a Direction with its unit vector.
type Reference struct {
	Dir Direction
	Vec mgl32.Vec2
}

// References is the matching table. Order matters: on equal distance the
// earlier entry wins.
var References = []Reference{
	{Up, mgl32.Vec2{0, 1}},
	{Down, mgl32.Vec2{0, -1}},
	{Side, mgl32.Vec2{1, 0}},
	{DiagUp, mgl32.Vec2{1, 1}.Normalize()},
	{DiagDown, mgl32.Vec2{1, -1}.Normalize()},
}

// Classify maps v to the nearest canonical direction. The horizontal
// component is mirrored onto +x first, so (-1, 0) is Side like (1, 0).
func Classify(v mgl32.Vec2) Direction {
	return Nearest(References, mgl32.Vec2{abs32(v.X()), v.Y()})
}

// Nearest returns the entry of refs closest to the direction of v; the
// first of several equally close entries wins. A zero v matches refs[0].
func Nearest(refs []Reference, v mgl32.Vec2) Direction {
	if len(refs) == 0 {
		return Up
	}
	if v.Len() == 0 {
		return refs[0].Dir
	}
	v = v.Normalize()

	best := refs[0].Dir
	bestDist := float32(math.MaxFloat32)
	for _, r := range refs {
		if d := v.Sub(r.Vec).Len(); d < bestDist {
			best, bestDist = r.Dir, d
		}
	}
	return best
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
