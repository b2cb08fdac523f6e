package species

import (
	"github.com/bugworks/bugbattle/internal/domain/creature"
	"github.com/bugworks/bugbattle/internal/domain/grid"
)

const superPlantColour = "#0082c8"

// minimumBabyStrength is the smallest stake that lets a newborn
// SuperPlant afford both of its organs.
const minimumBabyStrength = creature.PropagatorCreationCost + creature.PhotoGlandCreationCost + 1

// NewSuperPlantSpecies builds the SuperPlant: a stationary photosynthesiser
// that grows one womb and a maximum spread of leaves, then floods its
// surroundings with offspring.
func NewSuperPlantSpecies() *creature.Species {
	return creature.NewSpecies("SuperPlant", superPlantColour, func(sp *creature.Species) *creature.Creature {
		return newSuperPlant(sp)
	})
}

type superPlant struct {
	c              *creature.Creature
	womb           *creature.Propagator
	leafCount      int
	allLeavesGrown bool
}

func newSuperPlant(sp *creature.Species) *creature.Creature {
	p := &superPlant{}
	p.c = creature.New(sp)
	p.c.SetBehavior(p.takeTurn)
	return p.c
}

func (p *superPlant) takeTurn() {
	if p.womb == nil || !p.allLeavesGrown {
		p.growOrgans()
		return
	}
	p.makeBabies()
}

func (p *superPlant) growOrgans() {
	if p.womb == nil && p.c.Strength() > creature.PropagatorCreationCost {
		sp := p.c.Species()
		p.womb = creature.NewPropagator(p.c, func() *creature.Creature {
			return newSuperPlant(sp)
		})
	}
	for p.leafCount < creature.MaxOrgans-1 && p.c.Strength() > creature.PhotoGlandCreationCost {
		if creature.NewPhotoGland(p.c) == nil {
			break
		}
		p.leafCount++
	}
	if p.leafCount == creature.MaxOrgans-1 {
		p.allLeavesGrown = true
	}
}

// makeBabies spends every spare scrap of strength on offspring, scattered
// in random directions.
func (p *superPlant) makeBabies() {
	for p.c.Strength() > minimumBabyStrength+creature.PropagatorUseCost {
		p.womb.GiveBirth(minimumBabyStrength, grid.Random())
	}
}
