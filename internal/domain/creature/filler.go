package creature

import (
	"math/rand"

	"github.com/bugworks/bugbattle/internal/domain/grid"
)

const (
	plantColour      = "#d2f53c"
	poisonDropColour = "black"

	// plantGrowthProbability is the per-turn chance a soil cell sprouts a plant.
	plantGrowthProbability = 0.01

	// poisonDissipationRate is the fraction of a drop's volume that
	// evaporates each turn, rounded up.
	poisonDissipationRate = 0.5
)

// NewSoil creates the bare-soil placeholder that fills every otherwise
// unoccupied cell. Soil never fights, eats, pays costs, or dies; each
// turn it sprouts a plant with a small probability.
func (r *Registry) NewSoil() *Creature {
	c := newCreature(r.soil, KindSoil, Profile{})
	c.SetBehavior(func() {
		if rand.Float64() < plantGrowthProbability {
			c.ReplaceWith(r.NewPlant())
		}
	})
	return c
}

// NewPlant creates a plant: a photosynthesising filler that does not
// fight back and propagates once its strength exceeds the cap. Its
// construction stake exactly covers its two organs.
func (r *Registry) NewPlant() *Creature {
	c := newCreature(r.plant, KindPlant, Profile{Consumes: true, PaysCosts: true, Mortal: true})
	c.Feed(PhotoGlandCreationCost + PropagatorCreationCost)
	NewPhotoGland(c)
	womb := NewPropagator(c, func() *Creature { return r.NewPlant() })
	c.SetBehavior(func() {
		if c.Strength() > MaxStrength {
			womb.GiveBirth(c.Strength()/2, grid.Random())
		}
	})
	return c
}

// NewPoisonDrop creates a transient drop carrying the given poison
// volume. Drops read as soil to sensors, fight back with strength 1,
// deal poison defensive damage, are exempt from metabolic costs, and
// dissipate to nothing over a few turns.
func (r *Registry) NewPoisonDrop(volume int) *Creature {
	c := newCreature(r.drop, KindPoisonDrop, Profile{FightsBack: true, Consumes: true, Mortal: true})
	c.disguise = KindSoil
	c.strength = 1
	c.poisonous = true

	gland := &PoisonGland{organ: organ{host: c, creation: PoisonGlandCreationCost, maintenance: poisonGlandMaintenanceCost}}
	gland.volume = min(PoisonReservoirCapacity, volume)
	c.attachOrgan(gland)

	c.SetBehavior(func() {
		evaporated := (gland.CurrentVolume() + 1) / 2 // ceil(volume * poisonDissipationRate)
		gland.RemovePoison(evaporated)
		if gland.CurrentVolume() <= 0 {
			c.Die()
		}
	})
	return c
}
