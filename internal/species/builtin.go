package species

import "github.com/bugworks/bugbattle/internal/domain/creature"

// RegisterBuiltin registers every built-in competitor species with the
// registry and returns the descriptors in registration order.
func RegisterBuiltin(reg *creature.Registry) []*creature.Species {
	all := []*creature.Species{
		NewHunterSpecies(),
		NewSuperPlantSpecies(),
	}
	for _, sp := range all {
		reg.Register(sp)
	}
	return all
}
