package grid

import (
	"fmt"
	"strings"
)

// Position is a cell on the map grid
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Direction is one of the four arrow-key moves
type Direction int

const (
	Up Direction = iota + 1
	Down
	Left
	Right
)

var directionNames = map[Direction]string{
	Up:    "up",
	Down:  "down",
	Left:  "left",
	Right: "right",
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "none"
}

// ParseDirection converts "up", "down", "left" or "right" into a Direction
func ParseDirection(s string) (Direction, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for d, name := range directionNames {
		if name == needle {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction: %q", s)
}

// Bounds is the size of the grid in cells
type Bounds struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// DefaultBounds is the 20x15 board the map panel is drawn with.
var DefaultBounds = Bounds{Width: 20, Height: 15}

// Center returns the starting cell for a fresh character
func (b Bounds) Center() Position {
	return b.Clamp(Position{X: b.Width / 2, Y: b.Height / 2})
}

// Contains reports whether p lies on the grid
func (b Bounds) Contains(p Position) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Clamp caps both axes into [0, bound-1]. Degenerate bounds clamp to the origin.
func (b Bounds) Clamp(p Position) Position {
	return Position{
		X: clamp(p.X, b.Width-1),
		Y: clamp(p.Y, b.Height-1),
	}
}

// Move steps one cell in direction d and clamps the result into b.
// Moving into an edge leaves the position on the edge.
func Move(p Position, d Direction, b Bounds) Position {
	next := p
	switch d {
	case Up:
		next.Y--
	case Down:
		next.Y++
	case Left:
		next.X--
	case Right:
		next.X++
	}
	return b.Clamp(next)
}

func clamp(v, max int) int {
	if v > max {
		v = max
	}
	if v < 0 {
		v = 0
	}
	return v
}
