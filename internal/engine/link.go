package engine

import "time"

// Snapshot is an immutable point-in-time export of simulation state for a
// display. It never shares mutable state with the simulation: all slices
// are freshly built per snapshot. A snapshot with TurnCount zero is an
// initialization frame; later ones are incremental updates.
type Snapshot struct {
	TurnCount      int      `json:"turn_count"`
	TurnsPerSecond float64  `json:"turns_per_second"`
	GameOver       bool     `json:"game_over"`
	Species        []string `json:"species"`
	Counts         []int    `json:"counts"`
	Colours        []string `json:"colours"`
}

// Link is the duplex channel pair connecting the single-threaded
// simulation loop to a display loop. Snapshots flow out with latest-wins
// delivery; commands flow in. Neither side ever blocks the other.
type Link struct {
	snapshots chan Snapshot
	commands  chan Command
}

// NewLink creates a link with a one-slot snapshot buffer and a bounded
// command queue.
func NewLink() *Link {
	return &Link{
		snapshots: make(chan Snapshot, 1),
		commands:  make(chan Command, 64),
	}
}

// Publish hands a snapshot to the display side without ever blocking: a
// stale undelivered snapshot is discarded in favour of the new one.
func (l *Link) Publish(s Snapshot) {
	for {
		select {
		case l.snapshots <- s:
			return
		default:
			// Buffer full: evict the stale frame and retry.
			select {
			case <-l.snapshots:
			default:
			}
		}
	}
}

// Latest drains the snapshot buffer and returns the most recently
// published snapshot, if any. A slow consumer misses intermediate frames
// but never stalls the producer.
func (l *Link) Latest() (Snapshot, bool) {
	var latest Snapshot
	ok := false
	for {
		select {
		case s := <-l.snapshots:
			latest, ok = s, true
		default:
			return latest, ok
		}
	}
}

// Send queues a command for the simulation. Reports false when the queue
// is full; the display may simply retry on its next frame.
func (l *Link) Send(cmd Command) bool {
	select {
	case l.commands <- cmd:
		return true
	default:
		return false
	}
}

// nextCommand blocks up to wait for a command. Used while the simulation
// is paused or the game is over.
func (l *Link) nextCommand(wait time.Duration) (Command, bool) {
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case cmd := <-l.commands:
		return cmd, true
	case <-timer.C:
		return nil, false
	}
}

// pendingCommand pops a queued command without blocking.
func (l *Link) pendingCommand() (Command, bool) {
	select {
	case cmd := <-l.commands:
		return cmd, true
	default:
		return nil, false
	}
}
