// Package species holds the built-in competitor species. Each one is
// written purely against the public capability API in the creature
// package, the same way an external competitor would be.
package species

import (
	"github.com/bugworks/bugbattle/internal/domain/creature"
	"github.com/bugworks/bugbattle/internal/domain/grid"
)

const hunterColour = "#e6194b"

// NewHunterSpecies builds the Hunter family: a mobile predator that
// reproduces when strong and otherwise roams looking for prey. Offspring
// are LittleHunters; both subtypes share the one species counter.
func NewHunterSpecies() *creature.Species {
	return creature.NewSpecies("Hunter", hunterColour, func(sp *creature.Species) *creature.Creature {
		return newHunter(sp)
	})
}

// hunter keeps the organ handles a single instance grows over its first
// few turns. LittleHunters reuse the same behaviour.
type hunter struct {
	c          *creature.Creature
	cilia      *creature.Cilia
	typeSensor *creature.TypeSensor
	womb       *creature.Propagator
}

func newHunter(sp *creature.Species) *creature.Creature {
	h := &hunter{}
	h.c = creature.New(sp)
	h.c.SetBehavior(h.takeTurn)
	return h.c
}

// takeTurn grows organs until the full set exists, then reproduces if
// strong enough and hunts; with nothing to attack it wanders randomly.
func (h *hunter) takeTurn() {
	if h.cilia == nil || h.typeSensor == nil || h.womb == nil {
		h.growOrgans()
		return
	}
	h.reproduceIfAble()
	if !h.attackNeighbour() {
		h.cilia.MoveInDirection(grid.Random())
	}
}

func (h *hunter) growOrgans() {
	if h.cilia == nil && h.c.Strength() > creature.CiliaCreationCost {
		h.cilia = creature.NewCilia(h.c)
	}
	if h.typeSensor == nil && h.c.Strength() > creature.TypeSensorCreationCost {
		h.typeSensor = creature.NewTypeSensor(h.c)
	}
	if h.womb == nil && h.c.Strength() > creature.PropagatorCreationCost {
		sp := h.c.Species()
		h.womb = creature.NewPropagator(h.c, func() *creature.Creature {
			return newHunter(sp)
		})
	}
}

// reproduceIfAble gives birth into the first calm neighbouring cell
// (soil or plant) once strength nears the cap.
func (h *hunter) reproduceIfAble() {
	if h.c.Strength() < 9*creature.MaxStrength/10 {
		return
	}
	for _, d := range grid.Directions {
		nursery := h.typeSensor.Sense(d)
		if nursery == creature.KindSoil || nursery == creature.KindPlant {
			h.womb.GiveBirth(h.c.Strength()/2, d)
			return
		}
	}
}

// attackNeighbour charges the first neighbour that is neither soil nor
// kin. Reports whether an attack was launched.
func (h *hunter) attackNeighbour() bool {
	for _, d := range grid.Directions {
		victim := h.typeSensor.Sense(d)
		if victim != creature.KindSoil && victim != h.c.Kind() {
			h.cilia.MoveInDirection(d)
			return true
		}
	}
	return false
}
