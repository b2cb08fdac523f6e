package engine

import "time"

// Command mutates simulation state when the loop drains its queue.
// Commands are created by the display side (or the network layer on its
// behalf) and applied strictly between turns.
type Command interface {
	applyTo(s *Simulation)
}

// StartCommand resumes ticking and resets the turn-rate tracking.
type StartCommand struct{}

func (StartCommand) applyTo(s *Simulation) {
	s.lastStart = time.Time{}
	s.running = true
	s.log.Info("simulation started", "turn", s.turnCount)
}

// PauseCommand stops ticking without touching world state.
type PauseCommand struct{}

func (PauseCommand) applyTo(s *Simulation) {
	s.running = false
	s.log.Info("simulation paused", "turn", s.turnCount)
}

// SetIntervalCommand adjusts the tick length. No other state changes.
type SetIntervalCommand struct {
	Interval time.Duration
}

func (c SetIntervalCommand) applyTo(s *Simulation) {
	s.interval = c.Interval
}

// ResetCommand reseeds the world, selects the competing species by name,
// and leaves the simulation stopped at turn zero.
type ResetCommand struct {
	Species  []string
	Interval time.Duration
}

func (c ResetCommand) applyTo(s *Simulation) {
	s.reset(c.Species, c.Interval)
}
