// Package grid defines the compass directions used to address neighbouring
// cells on the toroidal world grid.
// This package is PURE and must NOT import any infrastructure packages.
package grid

import "math/rand"

// Direction is a unit offset to one of the eight neighbouring cells.
// The Y axis grows southward, matching row-major grid indexing.
type Direction struct {
	DX, DY int
}

var (
	North     = Direction{0, -1}
	NorthEast = Direction{1, -1}
	East      = Direction{1, 0}
	SouthEast = Direction{1, 1}
	South     = Direction{0, 1}
	SouthWest = Direction{-1, 1}
	West      = Direction{-1, 0}
	NorthWest = Direction{-1, -1}
)

// Directions lists all eight compass directions in clockwise order
// starting at North. Behaviours iterate this to scan their surroundings.
var Directions = []Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return Direction{-d.DX, -d.DY}
}

// Random draws uniformly among the eight directions. Used whenever a
// behaviour needs an undirected fallback movement.
func Random() Direction {
	return Directions[rand.Intn(len(Directions))]
}
