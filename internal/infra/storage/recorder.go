package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bugworks/bugbattle/internal/engine"
	"github.com/bugworks/bugbattle/internal/platform/logger"
)

// sampleEvery thins the per-turn count rows; game-over frames are always
// recorded regardless.
const sampleEvery = 25

// Recorder consumes snapshots from the simulation and persists them. It
// runs synchronously on the simulation goroutine, so every write failure
// is logged and swallowed rather than propagated into the turn loop.
type Recorder struct {
	db     *sql.DB
	logger *logger.Logger
	runID  string
	closed bool
}

// NewRecorder creates a recorder writing to the given database.
func NewRecorder(db *sql.DB, log *logger.Logger) *Recorder {
	return &Recorder{db: db, logger: log}
}

// OnSnapshot implements engine.SnapshotSink. A turn-zero snapshot opens a
// new run; subsequent ones append sampled count rows and close the run on
// game over.
func (r *Recorder) OnSnapshot(snap engine.Snapshot) {
	if snap.TurnCount == 0 {
		if err := r.beginRun(snap); err != nil {
			r.logger.Error("failed to record run start", "error", err)
		}
		return
	}
	if r.runID == "" || r.closed {
		return
	}

	if snap.TurnCount%sampleEvery == 0 || snap.GameOver {
		if err := r.recordCounts(snap); err != nil {
			r.logger.Error("failed to record turn counts", "error", err, "turn", snap.TurnCount)
		}
	}
	if snap.GameOver {
		if err := r.finishRun(snap); err != nil {
			r.logger.Error("failed to record run result", "error", err)
		}
		r.closed = true
	}
}

func (r *Recorder) beginRun(snap engine.Snapshot) error {
	r.runID = uuid.NewString()
	r.closed = false

	speciesJSON, err := json.Marshal(snap.Species)
	if err != nil {
		return fmt.Errorf("failed to marshal species list: %w", err)
	}
	_, err = r.db.ExecContext(context.Background(),
		`INSERT INTO runs (run_id, started_at, species) VALUES (?, ?, ?)`,
		r.runID, time.Now(), string(speciesJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	r.logger.Info("recording run", "run_id", r.runID, "species", snap.Species)
	return nil
}

func (r *Recorder) recordCounts(snap engine.Snapshot) error {
	for i, name := range snap.Species {
		_, err := r.db.ExecContext(context.Background(),
			`INSERT OR REPLACE INTO turn_counts (run_id, turn, species, live_count) VALUES (?, ?, ?, ?)`,
			r.runID, snap.TurnCount, name, snap.Counts[i],
		)
		if err != nil {
			return fmt.Errorf("failed to insert turn count: %w", err)
		}
	}
	return nil
}

func (r *Recorder) finishRun(snap engine.Snapshot) error {
	winner := ""
	for i, count := range snap.Counts {
		if count > 0 {
			winner = snap.Species[i]
			break
		}
	}
	_, err := r.db.ExecContext(context.Background(),
		`UPDATE runs SET winner = ?, turns = ? WHERE run_id = ?`,
		winner, snap.TurnCount, r.runID,
	)
	if err != nil {
		return fmt.Errorf("failed to update run result: %w", err)
	}
	r.logger.Info("run finished", "run_id", r.runID, "winner", winner, "turns", snap.TurnCount)
	return nil
}
