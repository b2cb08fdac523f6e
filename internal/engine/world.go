package engine

import (
	"math/rand"

	"github.com/bugworks/bugbattle/internal/domain/creature"
	"github.com/bugworks/bugbattle/internal/domain/grid"
)

// World looks after the location of every occupant on the toroidal grid
// and lets each perform its turn. The grid is a fixed-size flat array of
// width*width cells; every index always holds exactly one occupant -
// a living creature, bare soil, or a transient poison drop - never nil.
type World struct {
	width int
	cells []*creature.Creature
	reg   *creature.Registry
}

// NewWorld creates a soil-filled world of width*width cells backed by the
// given species registry.
func NewWorld(width int, reg *creature.Registry) *World {
	w := &World{width: width, reg: reg}
	w.Reset()
	return w
}

// Width returns the side length of the square grid.
func (w *World) Width() int { return w.width }

// Registry exposes the species registry backing this world.
func (w *World) Registry() *creature.Registry { return w.reg }

// Reset zeroes every species counter and refills the grid with bare soil.
func (w *World) Reset() {
	w.reg.ResetCounts()
	w.cells = make([]*creature.Creature, w.width*w.width)
	for index := range w.cells {
		w.Place(w.reg.NewSoil(), index)
	}
}

// GrowInitialPlants replaces soil with a plant at each cell independently
// with the given probability. Called once per reset.
func (w *World) GrowInitialPlants(probability float64) {
	for index := range w.cells {
		if rand.Float64() < probability {
			w.Place(w.reg.NewPlant(), index)
		}
	}
}

// Populate spawns n instances of the species at randomly chosen cells,
// each fed the starting strength. Cells already holding a competitor are
// redrawn so initial live counts come out exact.
func (w *World) Populate(sp *creature.Species, n, startStrength int) {
	for i := 0; i < n; i++ {
		index := rand.Intn(len(w.cells))
		for attempts := 0; w.holdsCompetitor(index) && attempts < len(w.cells); attempts++ {
			index = rand.Intn(len(w.cells))
		}
		c := sp.Spawn()
		c.Feed(startStrength)
		w.Place(c, index)
	}
}

func (w *World) holdsCompetitor(index int) bool {
	occ := w.cells[index]
	return occ != nil && occ.Kind() != creature.KindSoil &&
		occ.Kind() != creature.KindPlant && occ.Kind() != creature.KindPoisonDrop
}

// Place installs the occupant at the index, unconditionally overwriting
// whatever was there.
func (w *World) Place(c *creature.Creature, index int) {
	c.SetLocation(index)
	c.SetTerrain(w)
	w.cells[index] = c
}

// OccupantAt returns the occupant of the given cell.
func (w *World) OccupantAt(index int) *creature.Creature {
	return w.cells[index]
}

// LocationOf verifies the occupant is still where it last reported. A
// miss means the creature was already consumed this turn; that is a
// normal transient state, not an error.
func (w *World) LocationOf(c *creature.Creature) (int, bool) {
	index := c.Location()
	if index < 0 || index >= len(w.cells) || w.cells[index] != c {
		return 0, false
	}
	return index, true
}

// DoTurn executes one full world turn in three strict passes: metabolism,
// actions, cleanup.
//
// One subtlety: creatures move during the action pass, so iterating the
// live cell array would let a creature that moved into a not-yet-visited
// cell act twice in the same world turn. The action pass therefore runs
// over a snapshot of the pre-turn occupant list.
func (w *World) DoTurn() {
	for _, occ := range w.cells {
		occ.MetabolicCycle()
	}

	snapshot := make([]*creature.Creature, len(w.cells))
	copy(snapshot, w.cells)
	for _, occ := range snapshot {
		occ.Act()
		occ.CapStrength()
	}

	remaining := make([]*creature.Creature, len(w.cells))
	copy(remaining, w.cells)
	for _, occ := range remaining {
		if !occ.Alive() {
			w.Replace(occ, w.reg.NewSoil())
		}
	}
}

// Move vacates the creature's cell to soil, then resolves combat at the
// offset destination; the winner occupies the destination. Silent no-op
// when the creature has already been consumed this turn.
func (w *World) Move(c *creature.Creature, bearing grid.Direction) {
	start, ok := w.LocationOf(c)
	if !ok {
		return
	}
	w.Place(w.reg.NewSoil(), start)
	w.launchAttack(start, bearing, c)
}

// DropBeside resolves combat at the offset from origin without vacating
// origin's own cell. Used for births and poison drops. Reports false when
// the origin has already been consumed this turn.
func (w *World) DropBeside(origin, dropped *creature.Creature, bearing grid.Direction) bool {
	start, ok := w.LocationOf(origin)
	if !ok {
		return false
	}
	w.launchAttack(start, bearing, dropped)
	return true
}

// OccupantAtOffsetFrom returns the neighbour of c at the bearing,
// wrapping around the grid edges, or nil when c has already been consumed
// this turn.
func (w *World) OccupantAtOffsetFrom(c *creature.Creature, bearing grid.Direction) *creature.Creature {
	start, ok := w.LocationOf(c)
	if !ok {
		return nil
	}
	return w.cells[w.offsetIndex(start, bearing)]
}

// Replace swaps the original occupant for a replacement in place. Silent
// no-op when the original has already been consumed this turn.
func (w *World) Replace(original, replacement *creature.Creature) {
	index, ok := w.LocationOf(original)
	if !ok {
		return
	}
	w.Place(replacement, index)
}

func (w *World) launchAttack(start int, bearing grid.Direction, attacker *creature.Creature) {
	battleground := w.offsetIndex(start, bearing)
	winner := attacker.Attack(w.cells[battleground])
	w.Place(winner, battleground)
}

// offsetIndex applies the bearing to a flat index with wraparound on both
// axes.
func (w *World) offsetIndex(start int, bearing grid.Direction) int {
	x := ((start%w.width)+bearing.DX+w.width) % w.width
	y := ((start/w.width)+bearing.DY+w.width) % w.width
	return y*w.width + x
}

// Colours returns each cell's display colour, row-major. Soil cells are
// the empty string; the display supplies its own background.
func (w *World) Colours() []string {
	colours := make([]string, len(w.cells))
	for index, occ := range w.cells {
		colours[index] = occ.Species().Colour
	}
	return colours
}
