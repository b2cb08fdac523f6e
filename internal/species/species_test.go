package species

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bugworks/bugbattle/internal/domain/creature"
	"github.com/bugworks/bugbattle/internal/engine"
)

func newArena(t *testing.T, width int) (*engine.World, *creature.Registry) {
	t.Helper()
	reg := creature.NewRegistry()
	RegisterBuiltin(reg)
	return engine.NewWorld(width, reg), reg
}

func TestRegisterBuiltinExposesAllSpecies(t *testing.T) {
	reg := creature.NewRegistry()
	all := RegisterBuiltin(reg)

	require.Len(t, all, 2)
	require.NotNil(t, reg.Get("Hunter"))
	require.NotNil(t, reg.Get("SuperPlant"))
	require.Len(t, reg.Competitors(), 2)

	// Registering twice must not duplicate the species.
	RegisterBuiltin(reg)
	require.Len(t, reg.Competitors(), 2)
}

func TestHunterGrowsItsOrganSetFirst(t *testing.T) {
	w, reg := newArena(t, 10)
	sp := reg.Get("Hunter")

	h := &hunter{c: creature.New(sp)}
	h.c.SetBehavior(h.takeTurn)
	h.c.Feed(1500)
	w.Place(h.c, 0)

	w.DoTurn() // upkeep 20, then cilia 100 + sensor 100 + womb 50

	require.NotNil(t, h.cilia)
	require.NotNil(t, h.typeSensor)
	require.NotNil(t, h.womb)
	require.Equal(t, 3, h.c.OrganCount())
	require.Equal(t, 1230, h.c.Strength())
}

func TestHunterLeavesTheNestOnceEquipped(t *testing.T) {
	w, reg := newArena(t, 10)
	sp := reg.Get("Hunter")

	h := &hunter{c: creature.New(sp)}
	h.c.SetBehavior(h.takeTurn)
	h.c.Feed(1500)
	w.Place(h.c, 0)

	w.DoTurn() // grows organs
	w.DoTurn() // hunts or wanders

	require.True(t, h.c.Alive())
	index, ok := w.LocationOf(h.c)
	require.True(t, ok)
	require.NotEqual(t, 0, index, "an equipped hunter never stays put")
}

func TestHunterAttacksTheFirstNonKinNeighbour(t *testing.T) {
	w, reg := newArena(t, 5)
	sp := reg.Get("Hunter")

	h := &hunter{c: creature.New(sp)}
	h.c.SetBehavior(h.takeTurn)
	h.c.Feed(1500)
	w.Place(h.c, 12)
	h.growOrgans()

	prey := reg.NewPlant()
	w.Place(prey, 7) // directly north, the first direction scanned

	require.True(t, h.attackNeighbour())
	require.Same(t, h.c, w.OccupantAt(7))
	require.False(t, prey.Alive())
}

func TestHunterIgnoresKinAndSoil(t *testing.T) {
	w, reg := newArena(t, 5)
	sp := reg.Get("Hunter")

	h := &hunter{c: creature.New(sp)}
	h.c.SetBehavior(h.takeTurn)
	h.c.Feed(1500)
	w.Place(h.c, 12)
	h.growOrgans()

	kin := sp.Spawn()
	kin.Feed(500)
	w.Place(kin, 7)

	require.False(t, h.attackNeighbour(), "kin and soil are not prey")
	require.Same(t, h.c, w.OccupantAt(12))
	require.True(t, kin.Alive())
}

func TestHunterReproducesNearTheCap(t *testing.T) {
	w, reg := newArena(t, 10)
	sp := reg.Get("Hunter")

	h := &hunter{c: creature.New(sp)}
	h.c.SetBehavior(h.takeTurn)
	h.c.Feed(1900)
	w.Place(h.c, 55)
	h.growOrgans() // 1900 - 250 = 1650, below the reproduction bar

	h.reproduceIfAble()
	require.Equal(t, 1, sp.LiveCount(), "too weak to reproduce yet")

	h.c.Feed(350) // 2000, comfortably over the bar
	h.reproduceIfAble()
	require.Equal(t, 2, sp.LiveCount(), "parent and child share the species counter")

	// First calm direction scanned is north; the child lands there. The
	// sensor charge lands before the stake is halved: (2000-2)/2.
	child := w.OccupantAt(45)
	require.Equal(t, creature.Kind("Hunter"), child.Kind())
	require.Equal(t, 999, child.Strength())
}

func TestSuperPlantGrowsThenFloods(t *testing.T) {
	w, reg := newArena(t, 10)
	sp := reg.Get("SuperPlant")

	p := &superPlant{c: creature.New(sp)}
	p.c.SetBehavior(p.takeTurn)
	p.c.Feed(1500)
	w.Place(p.c, 55)

	for turn := 0; turn < 6; turn++ {
		w.DoTurn()
	}

	require.True(t, p.allLeavesGrown)
	require.Equal(t, creature.MaxOrgans, p.c.OrganCount(), "one womb plus a full spread of leaves")
	require.True(t, p.c.Alive())
	require.GreaterOrEqual(t, sp.LiveCount(), 2, "offspring flood the surroundings")
	require.Same(t, p.c, w.OccupantAt(55), "the parent never moves")
}
