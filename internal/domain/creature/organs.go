package creature

import "github.com/bugworks/bugbattle/internal/domain/grid"

// Organ cost table. Creation costs are exported so behaviours can guard
// their growth plans the way the built-in species do.
const (
	CiliaCreationCost    = 100
	ciliaMaintenanceCost = 10
	ciliaUseCost         = 20

	PhotoGlandCreationCost    = 250
	photoGlandMaintenanceCost = -150 // net energy producer

	PropagatorCreationCost    = 50
	propagatorMaintenanceCost = 5
	PropagatorUseCost         = 100

	CloakingCreationCost    = 500
	cloakingMaintenanceCost = 10
	cloakingUseCost         = 100

	EnergySensorCreationCost    = 100
	energySensorMaintenanceCost = 10
	energySensorUseCost         = 2

	TypeSensorCreationCost    = 100
	typeSensorMaintenanceCost = 10
	typeSensorUseCost         = 2

	LifeSensorCreationCost    = 50
	lifeSensorMaintenanceCost = 5
	lifeSensorUseCost         = 1

	PoisonSensorCreationCost    = 50
	poisonSensorMaintenanceCost = 5
	poisonSensorUseCost         = 1

	PoisonGlandCreationCost    = 500
	poisonGlandMaintenanceCost = 20

	SpikesCreationCost    = 100
	spikesMaintenanceCost = 5
	SpikesDefensiveDamage = 200
)

// PoisonReservoirCapacity caps a poison gland's reservoir volume.
const PoisonReservoirCapacity = 1000

const poisonDamageMultiplier = 4

// Cilia is the locomotion organ: one cell of movement, at most once per turn.
type Cilia struct {
	organ
}

// NewCilia grows cilia on the host. Returns nil when the host has no free
// organ slot or cannot cover the creation cost.
func NewCilia(host *Creature) *Cilia {
	c := &Cilia{organ{host: host, creation: CiliaCreationCost, maintenance: ciliaMaintenanceCost, use: ciliaUseCost}}
	if !host.addOrgan(c) {
		return nil
	}
	return c
}

// MoveInDirection moves the host one cell at the bearing, resolving
// combat at the destination. The use cost is committed before the
// liveness check; a host killed by the charge does not move.
func (c *Cilia) MoveInDirection(bearing grid.Direction) {
	if c.chargeThenCheckAlive() && c.usesThisTurn == 0 {
		c.usedOnce()
		c.host.terrain.Move(c.host, bearing)
	}
}

// PhotoGland passively produces energy each metabolic cycle.
type PhotoGland struct {
	organ
}

// NewPhotoGland grows a photo gland on the host, or returns nil if the
// attempt is skipped.
func NewPhotoGland(host *Creature) *PhotoGland {
	g := &PhotoGland{organ{host: host, creation: PhotoGlandCreationCost, maintenance: photoGlandMaintenanceCost}}
	if !host.addOrgan(g) {
		return nil
	}
	return g
}

// Propagator spawns offspring through a species-specific factory.
type Propagator struct {
	organ
	makeChild func() *Creature
}

// NewPropagator grows a propagator on the host, or returns nil if the
// attempt is skipped. makeChild builds one offspring; the shared species
// counter bookkeeping happens inside the factory.
func NewPropagator(host *Creature, makeChild func() *Creature) *Propagator {
	p := &Propagator{
		organ:     organ{host: host, creation: PropagatorCreationCost, maintenance: propagatorMaintenanceCost, use: PropagatorUseCost},
		makeChild: makeChild,
	}
	if !host.addOrgan(p) {
		return nil
	}
	return p
}

// GiveBirth stakes initialEnergy from the host, then spawns a child fed
// with the stake into the adjacent cell at the bearing. The parent's own
// cell is not vacated. Both the stake and the use cost are spent even
// when the host dies mid-birth and no child appears. A child that cannot
// be placed (parent already consumed this turn) dies immediately so the
// species counter stays balanced.
func (p *Propagator) GiveBirth(initialEnergy int, bearing grid.Direction) {
	p.host.Expend(initialEnergy)
	if !p.chargeThenCheckAlive() {
		return
	}
	child := p.makeChild()
	child.Feed(initialEnergy)
	if !p.host.terrain.DropBeside(p.host, child, bearing) {
		child.Die()
	}
}

// Cloaking hides the host from sensors: zero apparent strength, soil
// apparent kind, no visible poison flag.
type Cloaking struct {
	organ
}

// NewCloaking grows a cloaking device on the host, or returns nil if the
// attempt is skipped.
func NewCloaking(host *Creature) *Cloaking {
	k := &Cloaking{organ{host: host, creation: CloakingCreationCost, maintenance: cloakingMaintenanceCost, use: cloakingUseCost}}
	if !host.addOrgan(k) {
		return nil
	}
	return k
}

// Cloak activates the disguise. The use cost commits before the liveness
// check; a host killed by the charge stays visible.
func (k *Cloaking) Cloak() {
	if k.chargeThenCheckAlive() {
		k.host.cloaked = true
	}
}

// Uncloak drops the disguise. Free.
func (k *Cloaking) Uncloak() {
	k.host.cloaked = false
}

// MaintenanceCost is surcharged by the use cost while the cloak is active.
func (k *Cloaking) MaintenanceCost() int {
	if k.host.cloaked {
		return k.maintenance + k.use
	}
	return k.maintenance
}

// senseTarget commits the use cost and fetches the neighbour at the
// bearing. ok is false when the charge killed the host; target may also
// be nil when the host has already been consumed this turn.
func (o *organ) senseTarget(bearing grid.Direction) (target *Creature, ok bool) {
	if !o.chargeThenCheckAlive() {
		return nil, false
	}
	return o.host.terrain.OccupantAtOffsetFrom(o.host, bearing), true
}

// EnergySensor reads a neighbour's apparent strength.
type EnergySensor struct {
	organ
}

// NewEnergySensor grows an energy sensor on the host, or returns nil if
// the attempt is skipped.
func NewEnergySensor(host *Creature) *EnergySensor {
	s := &EnergySensor{organ{host: host, creation: EnergySensorCreationCost, maintenance: energySensorMaintenanceCost, use: energySensorUseCost}}
	if !host.addOrgan(s) {
		return nil
	}
	return s
}

// Sense returns the neighbour's apparent strength, or 0 when the use-cost
// charge kills the host or the host is no longer in the grid.
func (s *EnergySensor) Sense(bearing grid.Direction) int {
	target, ok := s.senseTarget(bearing)
	if !ok || target == nil {
		return 0
	}
	return target.ApparentStrength()
}

// TypeSensor reads a neighbour's apparent kind.
type TypeSensor struct {
	organ
}

// NewTypeSensor grows a type sensor on the host, or returns nil if the
// attempt is skipped.
func NewTypeSensor(host *Creature) *TypeSensor {
	s := &TypeSensor{organ{host: host, creation: TypeSensorCreationCost, maintenance: typeSensorMaintenanceCost, use: typeSensorUseCost}}
	if !host.addOrgan(s) {
		return nil
	}
	return s
}

// Sense returns the neighbour's apparent kind, defaulting to soil.
func (s *TypeSensor) Sense(bearing grid.Direction) Kind {
	target, ok := s.senseTarget(bearing)
	if !ok || target == nil {
		return KindSoil
	}
	return target.ApparentKind()
}

// LifeSensor reads whether a neighbour appears to be anything but soil.
type LifeSensor struct {
	organ
}

// NewLifeSensor grows a life sensor on the host, or returns nil if the
// attempt is skipped.
func NewLifeSensor(host *Creature) *LifeSensor {
	s := &LifeSensor{organ{host: host, creation: LifeSensorCreationCost, maintenance: lifeSensorMaintenanceCost, use: lifeSensorUseCost}}
	if !host.addOrgan(s) {
		return nil
	}
	return s
}

// Sense reports whether the neighbour's apparent kind differs from soil.
// Cloaked creatures and poison drops therefore read as lifeless.
func (s *LifeSensor) Sense(bearing grid.Direction) bool {
	target, ok := s.senseTarget(bearing)
	if !ok || target == nil {
		return false
	}
	return target.ApparentKind() != KindSoil
}

// PoisonSensor reads a neighbour's apparent poison flag.
type PoisonSensor struct {
	organ
}

// NewPoisonSensor grows a poison sensor on the host, or returns nil if
// the attempt is skipped.
func NewPoisonSensor(host *Creature) *PoisonSensor {
	s := &PoisonSensor{organ{host: host, creation: PoisonSensorCreationCost, maintenance: poisonSensorMaintenanceCost, use: poisonSensorUseCost}}
	if !host.addOrgan(s) {
		return nil
	}
	return s
}

// Sense reports whether the neighbour appears poisonous.
func (s *PoisonSensor) Sense(bearing grid.Direction) bool {
	target, ok := s.senseTarget(bearing)
	if !ok || target == nil {
		return false
	}
	return target.AppearsPoisonous()
}

// PoisonGland holds a capped reservoir of poison. Its volume multiplies
// into defensive damage and can be dropped as a transient poison drop.
type PoisonGland struct {
	organ
	volume int
}

// NewPoisonGland grows a poison gland on the host and flags the host
// poisonous, or returns nil if the attempt is skipped.
func NewPoisonGland(host *Creature) *PoisonGland {
	g := &PoisonGland{organ: organ{host: host, creation: PoisonGlandCreationCost, maintenance: poisonGlandMaintenanceCost}}
	if !host.addOrgan(g) {
		return nil
	}
	host.poisonous = true
	return g
}

// DefensiveDamage is the reservoir volume times the damage multiplier.
func (g *PoisonGland) DefensiveDamage() int {
	return g.volume * poisonDamageMultiplier
}

// AddPoison converts host strength into reservoir volume. The host is
// charged min(strength, toAdd) before the reservoir clips at capacity, so
// energy poured into a nearly-full reservoir is lost.
func (g *PoisonGland) AddPoison(toAdd int) {
	if toAdd <= 0 {
		return
	}
	toAdd = min(g.host.strength, toAdd)
	g.host.Expend(toAdd)
	g.volume = min(PoisonReservoirCapacity, g.volume+toAdd)
}

// RemovePoison drains up to toRemove from the reservoir.
func (g *PoisonGland) RemovePoison(toRemove int) {
	if toRemove > 0 {
		g.volume = max(0, g.volume-toRemove)
	}
}

// CurrentVolume returns the reservoir volume.
func (g *PoisonGland) CurrentVolume() int {
	return g.volume
}

// DropPoison moves up to volumeDesired out of the reservoir into a
// transient poison drop placed beside the host. A drop that cannot be
// placed (host already consumed this turn) dies immediately.
func (g *PoisonGland) DropPoison(bearing grid.Direction, volumeDesired int) {
	if volumeDesired <= 0 {
		return
	}
	reg := g.host.species.registry
	if reg == nil {
		return
	}
	volume := min(g.volume, volumeDesired)
	g.volume -= volume
	drop := reg.NewPoisonDrop(volume)
	if !g.host.terrain.DropBeside(g.host, drop, bearing) {
		drop.Die()
	}
}

// Spikes provide a constant defensive damage value with no internal state.
type Spikes struct {
	organ
}

// NewSpikes grows spikes on the host, or returns nil if the attempt is
// skipped.
func NewSpikes(host *Creature) *Spikes {
	s := &Spikes{organ{host: host, creation: SpikesCreationCost, maintenance: spikesMaintenanceCost}}
	if !host.addOrgan(s) {
		return nil
	}
	return s
}

// DefensiveDamage is constant for spikes.
func (s *Spikes) DefensiveDamage() int {
	return SpikesDefensiveDamage
}
