package creature

// Organ is an attached capability with creation, maintenance and use
// costs. The concrete organ set is closed: all implementations live in
// this package and die with their host.
type Organ interface {
	CreationCost() int
	MaintenanceCost() int
	UseCost() int
	// DefensiveDamage is this organ's contribution to the energy an
	// attacker forfeits when consuming the host.
	DefensiveDamage() int

	newTurn()
}

// organ carries the cost ledger and per-turn use counter shared by every
// concrete organ.
type organ struct {
	host         *Creature
	creation     int
	maintenance  int
	use          int
	usesThisTurn int
}

func (o *organ) Host() *Creature      { return o.host }
func (o *organ) CreationCost() int    { return o.creation }
func (o *organ) MaintenanceCost() int { return o.maintenance }
func (o *organ) UseCost() int         { return o.use }
func (o *organ) DefensiveDamage() int { return 0 }

func (o *organ) newTurn()  { o.usesThisTurn = 0 }
func (o *organ) usedOnce() { o.usesThisTurn++ }

// chargeThenCheckAlive commits the organ's use cost to the host and
// reports whether the host survived the charge. This always mutates:
// the cost is spent whether or not the caller proceeds to act. Actions
// are attempted, never free to test.
func (o *organ) chargeThenCheckAlive() bool {
	o.host.Expend(o.use)
	return o.host.alive
}
