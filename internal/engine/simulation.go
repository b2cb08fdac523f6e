package engine

import (
	"context"
	"time"

	"github.com/bugworks/bugbattle/internal/domain/creature"
	"github.com/bugworks/bugbattle/internal/platform/logger"
)

const (
	// commandPollTimeout bounds how long a stopped simulation blocks
	// awaiting a command before checking for cancellation again.
	commandPollTimeout = 500 * time.Millisecond

	// bootstrapTPS seeds the turns-per-second estimate on the first tick
	// after a start, before two tick timestamps exist.
	bootstrapTPS = 4.0
)

// Params are the reset-time knobs of a simulation run.
type Params struct {
	// InitialPlantProbability is the per-cell chance of initial plant cover.
	InitialPlantProbability float64
	// StartStrength is fed to each starting creature.
	StartStrength int
	// CreaturesPerSpecies is how many instances each selected species
	// starts with.
	CreaturesPerSpecies int
}

// SnapshotSink receives every published snapshot synchronously on the
// simulation goroutine. Sinks must be fast and must never panic the loop;
// the storage recorder and telemetry writer implement this.
type SnapshotSink interface {
	OnSnapshot(Snapshot)
}

// Simulation owns all world, creature and organ state exclusively and
// drives the world one turn per tick. It talks to the outside world only
// through its Link: snapshots out, commands in.
type Simulation struct {
	world    *World
	reg      *creature.Registry
	link     *Link
	log      *logger.Logger
	params   Params
	sinks    []SnapshotSink
	selected []*creature.Species

	interval  time.Duration
	running   bool
	gameOver  bool
	turnCount int
	tps       float64
	lastStart time.Time
}

// NewSimulation wires a simulation around an existing world and link.
func NewSimulation(world *World, link *Link, params Params, interval time.Duration, log *logger.Logger) *Simulation {
	return &Simulation{
		world:    world,
		reg:      world.Registry(),
		link:     link,
		log:      log,
		params:   params,
		interval: interval,
	}
}

// AttachSink subscribes a snapshot consumer. Must be called before Run.
func (s *Simulation) AttachSink(sink SnapshotSink) {
	s.sinks = append(s.sinks, sink)
}

// Run drives the simulation until the context is cancelled. While running
// and not game-over it ticks at the configured interval; otherwise it
// blocks briefly awaiting a command. Call in a goroutine.
func (s *Simulation) Run(ctx context.Context) {
	s.log.Info("simulation loop started", "width", s.world.Width())
	for {
		select {
		case <-ctx.Done():
			s.log.Info("simulation loop stopped", "turn", s.turnCount)
			return
		default:
		}

		if s.running && !s.gameOver {
			s.tick(ctx)
			s.drainCommands()
		} else {
			if cmd, ok := s.link.nextCommand(commandPollTimeout); ok {
				cmd.applyTo(s)
			}
			s.drainCommands()
		}
	}
}

// tick executes exactly one world turn and sleeps off the remainder of
// the interval. A turn always runs to completion; there is no per-turn
// cancellation.
func (s *Simulation) tick(ctx context.Context) {
	start := time.Now()
	s.updateTPS(start)
	s.world.DoTurn()
	s.turnCount++
	s.checkWin()
	s.publish()

	if remaining := s.interval - time.Since(start); remaining > 0 {
		timer := time.NewTimer(remaining)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}
}

// updateTPS maintains an exponentially smoothed turns-per-second
// estimate, seeded with a fixed bootstrap value on the first tick.
func (s *Simulation) updateTPS(start time.Time) {
	if s.lastStart.IsZero() {
		s.tps = bootstrapTPS
	} else {
		instantaneous := 1 / start.Sub(s.lastStart).Seconds()
		s.tps = (0.8*s.tps + instantaneous) / 1.8
	}
	s.lastStart = start
}

// checkWin flags game-over when at most one of the selected species still
// has live instances. With nothing selected there is nothing to win.
func (s *Simulation) checkWin() {
	if len(s.selected) == 0 {
		return
	}
	live := 0
	for _, sp := range s.selected {
		if sp.LiveCount() > 0 {
			live++
		}
	}
	if live <= 1 {
		s.gameOver = true
		s.log.Info("game over", "turn", s.turnCount, "surviving_species", live)
	}
}

func (s *Simulation) drainCommands() {
	for {
		cmd, ok := s.link.pendingCommand()
		if !ok {
			return
		}
		cmd.applyTo(s)
	}
}

// reset reseeds the world with bare soil, grows initial plant cover,
// and populates the selected species at random cells. The simulation is
// left stopped, not game-over, at turn zero, and an initialization
// snapshot is published.
func (s *Simulation) reset(speciesNames []string, interval time.Duration) {
	if interval > 0 {
		s.interval = interval
	}
	s.running = false
	s.gameOver = false
	s.lastStart = time.Time{}
	s.turnCount = 0
	s.tps = 0

	s.selected = s.selected[:0]
	for _, name := range speciesNames {
		sp := s.reg.Get(name)
		if sp == nil {
			s.log.Warn("reset requested unknown species", "name", name)
			continue
		}
		s.selected = append(s.selected, sp)
	}

	s.world.Reset()
	s.world.GrowInitialPlants(s.params.InitialPlantProbability)
	for _, sp := range s.selected {
		s.world.Populate(sp, s.params.CreaturesPerSpecies, s.params.StartStrength)
	}

	names := make([]string, len(s.selected))
	for i, sp := range s.selected {
		names[i] = sp.Name
	}
	s.log.Info("world reset", "species", names, "interval", s.interval)
	s.publish()
}

// publish builds an immutable snapshot and hands it to the link and every
// attached sink.
func (s *Simulation) publish() {
	snap := s.snapshot()
	s.link.Publish(snap)
	for _, sink := range s.sinks {
		sink.OnSnapshot(snap)
	}
}

func (s *Simulation) snapshot() Snapshot {
	names := make([]string, len(s.selected))
	counts := make([]int, len(s.selected))
	for i, sp := range s.selected {
		names[i] = sp.Name
		counts[i] = sp.LiveCount()
	}
	return Snapshot{
		TurnCount:      s.turnCount,
		TurnsPerSecond: s.tps,
		GameOver:       s.gameOver,
		Species:        names,
		Counts:         counts,
		Colours:        s.world.Colours(),
	}
}

// TurnCount returns the number of completed turns since the last reset.
func (s *Simulation) TurnCount() int { return s.turnCount }

// GameOver reports whether the win condition has fired.
func (s *Simulation) GameOver() bool { return s.gameOver }

// Running reports whether the loop is ticking.
func (s *Simulation) Running() bool { return s.running }
