package creature

// Species describes a family of creatures sharing one live-instance
// counter, one display colour, and one death hook. Subtypes of a family
// (a hunter and its offspring, say) reuse the same Species value, so the
// counter stays consistent no matter which subtype dies.
type Species struct {
	Name   string
	Colour string

	make     func(*Species) *Creature
	registry *Registry
	count    int
	filler   bool
}

// NewSpecies builds a competitor species descriptor. The factory is
// invoked with the species itself so offspring can be routed back through
// the shared counter.
func NewSpecies(name, colour string, make func(*Species) *Creature) *Species {
	return &Species{Name: name, Colour: colour, make: make}
}

// Spawn creates a fresh instance of the species via its factory.
func (s *Species) Spawn() *Creature {
	return s.make(s)
}

// LiveCount reports how many instances of this species are currently alive.
func (s *Species) LiveCount() int {
	return s.count
}

func (s *Species) born()      { s.count++ }
func (s *Species) destroyed() { s.count-- }

// Registry maps species names to their live mutable counters. Every world
// owns exactly one registry; the terrain fillers (soil, plants, poison
// drops) are registered implicitly so their lifecycle stays uniform with
// competitor species.
type Registry struct {
	competitors []*Species
	byName      map[string]*Species

	soil  *Species
	plant *Species
	drop  *Species
}

// NewRegistry creates a registry pre-populated with the built-in fillers.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]*Species)}
	r.soil = &Species{Name: "Soil", Colour: "", filler: true, registry: r}
	r.plant = &Species{Name: "Plant", Colour: plantColour, filler: true, registry: r}
	r.drop = &Species{Name: "PoisonDrop", Colour: poisonDropColour, filler: true, registry: r}
	return r
}

// Register adds a competitor species. Registering the same name twice
// returns the already-registered descriptor.
func (r *Registry) Register(sp *Species) *Species {
	if existing, ok := r.byName[sp.Name]; ok {
		return existing
	}
	sp.registry = r
	r.byName[sp.Name] = sp
	r.competitors = append(r.competitors, sp)
	return sp
}

// Get returns the competitor species with the given name, or nil.
func (r *Registry) Get(name string) *Species {
	return r.byName[name]
}

// Competitors returns the registered competitor species in registration order.
func (r *Registry) Competitors() []*Species {
	return r.competitors
}

// ResetCounts zeroes every live-instance counter, fillers included.
// Called when the world is reseeded.
func (r *Registry) ResetCounts() {
	for _, sp := range r.competitors {
		sp.count = 0
	}
	r.soil.count = 0
	r.plant.count = 0
	r.drop.count = 0
}
