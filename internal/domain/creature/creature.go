// Package creature defines the core domain entities of the simulation:
// creatures, their organs, species descriptors, and the closed set of
// occupant variants that fill the world grid.
// This package is PURE and must NOT import any infrastructure packages.
package creature

import "github.com/bugworks/bugbattle/internal/domain/grid"

const (
	// MaxStrength is the energy cap applied once per turn after behaviours run.
	MaxStrength = 2000
	// UpkeepCost is the flat per-turn maintenance tax every creature pays
	// on top of its organ maintenance.
	UpkeepCost = 20
	// MaxOrgans bounds the organ set of a single creature.
	MaxOrgans = 10
)

// Kind identifies what a sensor perceives at a grid cell. Competitor
// species read as their species name; cloaked creatures and poison drops
// read as soil.
type Kind string

const (
	KindSoil       Kind = "Soil"
	KindPlant      Kind = "Plant"
	KindPoisonDrop Kind = "PoisonDrop"
)

// Profile is the closed variant table that distinguishes terrain fillers
// from living competitors. Combat and feeding consult it instead of
// dispatching on concrete types.
type Profile struct {
	FightsBack bool // participates in the strength comparison when attacked
	Consumes   bool // Feed adds energy; soil swallows food without gaining any
	PaysCosts  bool // Expend deducts energy; soil and poison drops are exempt
	Mortal     bool // Die transitions alive->dead and fires the species hook
}

// Terrain is the set of world services available to creatures and their
// organs. The engine's World implements it; keeping the interface here
// lets the domain stay free of engine imports.
type Terrain interface {
	// Move vacates the creature's cell and resolves combat at the offset
	// destination. Silent no-op if the creature is no longer in the grid.
	Move(c *Creature, bearing grid.Direction)
	// DropBeside resolves combat at the offset from origin without
	// vacating origin's own cell. Reports whether the drop happened;
	// it does not when origin is no longer in the grid.
	DropBeside(origin, dropped *Creature, bearing grid.Direction) bool
	// OccupantAtOffsetFrom returns the neighbour at the offset, or nil
	// when the creature is no longer in the grid.
	OccupantAtOffsetFrom(c *Creature, bearing grid.Direction) *Creature
	// Replace swaps the original occupant for a replacement in place.
	// Silent no-op if the original is no longer in the grid.
	Replace(original, replacement *Creature)
}

// Creature is a single occupant of the world grid: a living competitor,
// or one of the terrain fillers built from the same chassis.
type Creature struct {
	species   *Species
	kind      Kind
	profile   Profile
	disguise  Kind // non-empty: apparent kind even when uncloaked (poison drops read as soil)
	behavior  func()
	terrain   Terrain
	location  int
	alive     bool
	strength  int
	organs    []Organ
	cloaked   bool
	poisonous bool
}

// New creates a living competitor of the given species and increments the
// species' live counter. The behaviour is attached separately so it can
// close over the creature itself.
func New(sp *Species) *Creature {
	return newCreature(sp, Kind(sp.Name), Profile{
		FightsBack: true,
		Consumes:   true,
		PaysCosts:  true,
		Mortal:     true,
	})
}

func newCreature(sp *Species, kind Kind, profile Profile) *Creature {
	c := &Creature{species: sp, kind: kind, profile: profile, alive: true}
	sp.born()
	return c
}

// SetBehavior attaches the per-turn behaviour entry point.
func (c *Creature) SetBehavior(behavior func()) {
	c.behavior = behavior
}

// Act runs the creature's behaviour once. The world invokes this exactly
// once per turn, even for creatures already consumed earlier in the turn;
// a consumed creature's movement and attacks resolve to no-ops.
func (c *Creature) Act() {
	if c.behavior != nil {
		c.behavior()
	}
}

// Species returns the descriptor whose counter this creature feeds.
func (c *Creature) Species() *Species { return c.species }

// Kind returns the creature's true kind, ignoring cloaks and disguises.
func (c *Creature) Kind() Kind { return c.kind }

// Strength returns the creature's current energy reserve.
func (c *Creature) Strength() int { return c.strength }

// Alive reports whether the creature has not yet died.
func (c *Creature) Alive() bool { return c.alive }

// FightsBack reports whether the creature contests attacks.
func (c *Creature) FightsBack() bool { return c.profile.FightsBack }

// ApparentKind is the kind a sensor perceives: soil while cloaked, the
// disguise if one is set, the true kind otherwise.
func (c *Creature) ApparentKind() Kind {
	if c.cloaked {
		return KindSoil
	}
	if c.disguise != "" {
		return c.disguise
	}
	return c.kind
}

// ApparentStrength is the strength a sensor perceives: zero while cloaked.
func (c *Creature) ApparentStrength() int {
	if c.cloaked {
		return 0
	}
	return c.strength
}

// AppearsPoisonous reports whether a sensor perceives the poison flag.
func (c *Creature) AppearsPoisonous() bool {
	return c.poisonous && !c.cloaked
}

// IsCloaked reports whether the cloak is currently active.
func (c *Creature) IsCloaked() bool { return c.cloaked }

// OrganCount returns how many organs are attached.
func (c *Creature) OrganCount() int { return len(c.organs) }

// DefensiveDamage sums the defensive damage of all attached organs. It is
// subtracted from the energy a combat winner absorbs.
func (c *Creature) DefensiveDamage() int {
	damage := 0
	for _, o := range c.organs {
		damage += o.DefensiveDamage()
	}
	return damage
}

// Feed adds food energy. Dead creatures cannot eat. The amount may be
// negative when absorbing a loser whose defensive damage exceeds its
// strength; no death check happens here, the next Expend settles it.
func (c *Creature) Feed(energy int) {
	if !c.profile.Consumes || !c.alive {
		return
	}
	c.strength += energy
}

// Expend deducts energy and kills the creature if the reserve goes
// negative. Fillers exempt from costs ignore the call entirely.
func (c *Creature) Expend(energy int) {
	if !c.profile.PaysCosts {
		return
	}
	c.strength -= energy
	if c.strength < 0 {
		c.Die()
	}
}

// Die is idempotent: the species counter is decremented only on the
// living->dead transition. Immortal fillers (soil) ignore it.
func (c *Creature) Die() {
	if !c.profile.Mortal {
		return
	}
	if c.alive {
		c.species.destroyed()
	}
	c.strength = 0
	c.alive = false
}

// MetabolicCycle resets every organ's per-turn use counter, charges its
// maintenance cost, then charges the flat per-turn upkeep tax.
func (c *Creature) MetabolicCycle() {
	for _, o := range c.organs {
		o.newTurn()
		c.Expend(o.MaintenanceCost())
	}
	c.Expend(UpkeepCost)
}

// CapStrength clamps the reserve to MaxStrength. Applied once per turn
// after the behaviour runs; energy may transiently exceed the cap while
// organs execute.
func (c *Creature) CapStrength() {
	if c.strength > MaxStrength {
		c.strength = MaxStrength
	}
}

// Attack resolves combat between c (the attacker) and the defender,
// returning the occupant of the contested cell. Occupants that do not
// fight back lose unconditionally; otherwise strict strength comparison
// decides, with ties favouring the defender. The winner absorbs the
// loser's strength minus the loser's defensive damage.
func (c *Creature) Attack(defender *Creature) *Creature {
	if !defender.profile.FightsBack {
		return c.consume(defender)
	}
	if !c.profile.FightsBack {
		return defender.consume(c)
	}
	if c.strength > defender.strength {
		return c.consume(defender)
	}
	return defender.consume(c)
}

func (c *Creature) consume(loser *Creature) *Creature {
	c.Feed(loser.strength - loser.DefensiveDamage())
	loser.Die()
	return c
}

// ReplaceWith swaps this creature for a replacement at its current cell.
func (c *Creature) ReplaceWith(replacement *Creature) {
	if c.terrain != nil {
		c.terrain.Replace(c, replacement)
	}
}

// SetTerrain wires the creature to its world. Reserved for the engine.
func (c *Creature) SetTerrain(t Terrain) { c.terrain = t }

// SetLocation records the grid index the creature was last placed at.
// Reserved for the engine.
func (c *Creature) SetLocation(index int) { c.location = index }

// Location returns the grid index the creature last reported. The world
// verifies it still holds this creature before trusting it.
func (c *Creature) Location() int { return c.location }

// addOrgan charges the creation cost and attaches the organ. The attempt
// is silently skipped when the host has no free organ slot or cannot
// cover the cost; nothing is charged in that case.
func (c *Creature) addOrgan(o Organ) bool {
	if len(c.organs) >= MaxOrgans || c.strength < o.CreationCost() {
		return false
	}
	c.Expend(o.CreationCost())
	c.organs = append(c.organs, o)
	return true
}

// attachOrgan bypasses the creation economy. Used only when assembling
// fillers whose construction is paid for out-of-band (poison drops).
func (c *Creature) attachOrgan(o Organ) {
	c.organs = append(c.organs, o)
}
