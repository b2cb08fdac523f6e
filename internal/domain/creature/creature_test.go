package creature

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bugworks/bugbattle/internal/domain/grid"
)

// fakeTerrain records world calls so organ actions can be asserted
// without spinning up a real grid.
type fakeTerrain struct {
	moves     []grid.Direction
	dropped   []*Creature
	neighbour *Creature
	placeDrop bool
}

func (f *fakeTerrain) Move(c *Creature, bearing grid.Direction) {
	f.moves = append(f.moves, bearing)
}

func (f *fakeTerrain) DropBeside(origin, dropped *Creature, bearing grid.Direction) bool {
	f.dropped = append(f.dropped, dropped)
	return f.placeDrop
}

func (f *fakeTerrain) OccupantAtOffsetFrom(c *Creature, bearing grid.Direction) *Creature {
	return f.neighbour
}

func (f *fakeTerrain) Replace(original, replacement *Creature) {}

func testSpecies(name string) *Species {
	return NewSpecies(name, "#ffffff", func(sp *Species) *Creature { return New(sp) })
}

func TestNewCompetitorIncrementsLiveCount(t *testing.T) {
	sp := testSpecies("Tester")
	c := New(sp)
	require.True(t, c.Alive())
	require.Equal(t, 1, sp.LiveCount())
	require.Equal(t, Kind("Tester"), c.Kind())
}

func TestDieIsIdempotent(t *testing.T) {
	sp := testSpecies("Tester")
	c := New(sp)
	c.Feed(500)

	c.Die()
	require.False(t, c.Alive())
	require.Equal(t, 0, c.Strength())
	require.Equal(t, 0, sp.LiveCount())

	c.Die()
	require.Equal(t, 0, sp.LiveCount(), "second death must not decrement again")
}

func TestDeadCreaturesCannotEat(t *testing.T) {
	sp := testSpecies("Tester")
	c := New(sp)
	c.Die()
	c.Feed(500)
	require.Equal(t, 0, c.Strength())
}

func TestFeedSkipsTheDeathCheck(t *testing.T) {
	sp := testSpecies("Tester")
	c := New(sp)
	c.Feed(100)
	// Absorbing a loser whose defensive damage exceeds its strength
	// drives the reserve negative without killing the eater.
	c.Feed(-400)
	require.Equal(t, -300, c.Strength())
	require.True(t, c.Alive())

	c.Expend(0)
	require.False(t, c.Alive(), "the next expenditure settles the debt")
}

func TestExpendKillsOnNegativeReserve(t *testing.T) {
	sp := testSpecies("Tester")
	c := New(sp)
	c.Feed(10)
	c.Expend(11)
	require.False(t, c.Alive())
	require.Equal(t, 0, c.Strength())
}

func TestSoilIgnoresCostsAndDeath(t *testing.T) {
	reg := NewRegistry()
	soil := reg.NewSoil()

	soil.Feed(500)
	require.Equal(t, 0, soil.Strength())
	soil.Expend(500)
	require.Equal(t, 0, soil.Strength())
	soil.Die()
	require.True(t, soil.Alive())
}

func TestCapStrengthClampsAboveTheLimit(t *testing.T) {
	sp := testSpecies("Tester")
	c := New(sp)
	c.Feed(MaxStrength + 700)
	c.CapStrength()
	require.Equal(t, MaxStrength, c.Strength())

	c.Expend(100)
	c.CapStrength()
	require.Equal(t, MaxStrength-100, c.Strength(), "cap leaves reserves below the limit alone")
}

func TestMetabolicCycleChargesUpkeepAndMaintenance(t *testing.T) {
	sp := testSpecies("Tester")

	bare := New(sp)
	bare.Feed(100)
	bare.MetabolicCycle()
	require.Equal(t, 80, bare.Strength())

	leafy := New(sp)
	leafy.Feed(500)
	require.NotNil(t, NewPhotoGland(leafy)) // 500 - 250 = 250
	leafy.MetabolicCycle()                  // 250 + 150 - 20
	require.Equal(t, 380, leafy.Strength(), "photo glands are net producers")
}

func TestAttackStrictlyStrongerAttackerWins(t *testing.T) {
	atk := New(testSpecies("Attacker"))
	def := New(testSpecies("Defender"))
	atk.Feed(601)
	def.Feed(600)

	winner := atk.Attack(def)
	require.Same(t, atk, winner)
	require.False(t, def.Alive())
	require.Equal(t, 1201, atk.Strength(), "winner absorbs the loser's full reserve")
}

func TestAttackTieFavoursTheDefender(t *testing.T) {
	atkSpecies := testSpecies("Attacker")
	atk := New(atkSpecies)
	def := New(testSpecies("Defender"))
	atk.Feed(600)
	def.Feed(600)

	winner := atk.Attack(def)
	require.Same(t, def, winner)
	require.False(t, atk.Alive())
	require.Equal(t, 0, atkSpecies.LiveCount())
	require.Equal(t, 1200, def.Strength())
}

func TestAttackAbsorbsLoserMinusDefensiveDamage(t *testing.T) {
	atk := New(testSpecies("Attacker"))
	def := New(testSpecies("Defender"))
	atk.Feed(800)
	def.Feed(700)
	require.NotNil(t, NewSpikes(def)) // 700 - 100 = 600

	winner := atk.Attack(def)
	require.Same(t, atk, winner)
	require.Equal(t, 800+600-SpikesDefensiveDamage, atk.Strength())
}

func TestNonFightingDefenderLosesRegardlessOfStrength(t *testing.T) {
	reg := NewRegistry()
	plant := reg.NewPlant()
	plant.Feed(1500) // far stronger than the attacker

	atk := New(testSpecies("Attacker"))
	atk.Feed(10)

	winner := atk.Attack(plant)
	require.Same(t, atk, winner)
	require.False(t, plant.Alive())
	require.Equal(t, 10+1500, atk.Strength())
}

func TestNonFightingAttackerLosesRegardlessOfStrength(t *testing.T) {
	sp := testSpecies("Pacifist")
	atk := newCreature(sp, Kind(sp.Name), Profile{Consumes: true, PaysCosts: true, Mortal: true})
	atk.Feed(1500)

	def := New(testSpecies("Defender"))
	def.Feed(10)

	winner := atk.Attack(def)
	require.Same(t, def, winner)
	require.False(t, atk.Alive())
	require.Equal(t, 1510, def.Strength())
}

func TestOrganSlotLimit(t *testing.T) {
	sp := testSpecies("Tester")
	c := New(sp)
	c.Feed(2000)

	for i := 0; i < MaxOrgans; i++ {
		require.NotNil(t, NewLifeSensor(c))
	}
	require.Equal(t, MaxOrgans, c.OrganCount())

	before := c.Strength()
	require.Nil(t, NewLifeSensor(c))
	require.Equal(t, MaxOrgans, c.OrganCount())
	require.Equal(t, before, c.Strength(), "a skipped organ costs nothing")
}

func TestUnaffordableOrganIsSkippedWithoutCharge(t *testing.T) {
	sp := testSpecies("Tester")
	c := New(sp)
	c.Feed(CiliaCreationCost - 60)

	require.Nil(t, NewCilia(c))
	require.Equal(t, 0, c.OrganCount())
	require.Equal(t, CiliaCreationCost-60, c.Strength())
	require.True(t, c.Alive())
}

func TestRegistryRegisterIsIdempotentByName(t *testing.T) {
	reg := NewRegistry()
	first := reg.Register(testSpecies("Hunter"))
	second := reg.Register(testSpecies("Hunter"))
	require.Same(t, first, second)
	require.Len(t, reg.Competitors(), 1)
	require.Same(t, first, reg.Get("Hunter"))
	require.Nil(t, reg.Get("Unknown"))
}

func TestRegistryResetCountsZeroesFillersToo(t *testing.T) {
	reg := NewRegistry()
	sp := reg.Register(testSpecies("Hunter"))
	New(sp)
	reg.NewPlant()
	reg.NewSoil()

	reg.ResetCounts()
	require.Equal(t, 0, sp.LiveCount())
	require.Equal(t, 0, reg.plant.LiveCount())
	require.Equal(t, 0, reg.soil.LiveCount())
}
