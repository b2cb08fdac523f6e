package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bugworks/bugbattle/internal/engine"
	"github.com/bugworks/bugbattle/internal/platform/logger"
)

func TestInitSQLiteCreatesTheSchemas(t *testing.T) {
	db, err := InitSQLite(filepath.Join(t.TempDir(), "nested", "runs.db"))
	require.NoError(t, err)
	defer db.Close()

	for _, table := range []string{"runs", "turn_counts"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s must exist", table)
	}
}

func TestRecorderPersistsAWholeRun(t *testing.T) {
	db, err := InitSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer db.Close()

	rec := NewRecorder(db, logger.NewNop())
	species := []string{"Ant", "Beetle"}

	rec.OnSnapshot(engine.Snapshot{TurnCount: 0, Species: species, Counts: []int{3, 3}})
	require.NotEmpty(t, rec.runID)

	rec.OnSnapshot(engine.Snapshot{TurnCount: 7, Species: species, Counts: []int{3, 2}})  // off-sample, skipped
	rec.OnSnapshot(engine.Snapshot{TurnCount: 25, Species: species, Counts: []int{3, 1}}) // sampled
	rec.OnSnapshot(engine.Snapshot{TurnCount: 31, Species: species, Counts: []int{2, 0}, GameOver: true})

	var winner string
	var turns int
	err = db.QueryRow(`SELECT winner, turns FROM runs WHERE run_id = ?`, rec.runID).Scan(&winner, &turns)
	require.NoError(t, err)
	require.Equal(t, "Ant", winner)
	require.Equal(t, 31, turns)

	var rows int
	err = db.QueryRow(`SELECT COUNT(*) FROM turn_counts WHERE run_id = ?`, rec.runID).Scan(&rows)
	require.NoError(t, err)
	require.Equal(t, 4, rows, "turn 25 and the game-over turn, one row per species")

	var count int
	err = db.QueryRow(
		`SELECT live_count FROM turn_counts WHERE run_id = ? AND turn = 31 AND species = 'Beetle'`,
		rec.runID,
	).Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestRecorderIgnoresSnapshotsAfterGameOver(t *testing.T) {
	db, err := InitSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer db.Close()

	rec := NewRecorder(db, logger.NewNop())
	species := []string{"Ant"}

	rec.OnSnapshot(engine.Snapshot{TurnCount: 0, Species: species, Counts: []int{3}})
	rec.OnSnapshot(engine.Snapshot{TurnCount: 10, Species: species, Counts: []int{1}, GameOver: true})
	rec.OnSnapshot(engine.Snapshot{TurnCount: 50, Species: species, Counts: []int{1}})

	var rows int
	err = db.QueryRow(`SELECT COUNT(*) FROM turn_counts WHERE run_id = ?`, rec.runID).Scan(&rows)
	require.NoError(t, err)
	require.Equal(t, 1, rows, "nothing recorded once the run is closed")
}

func TestRecorderOpensANewRunPerReset(t *testing.T) {
	db, err := InitSQLite(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer db.Close()

	rec := NewRecorder(db, logger.NewNop())
	rec.OnSnapshot(engine.Snapshot{TurnCount: 0, Species: []string{"Ant"}, Counts: []int{3}})
	first := rec.runID

	rec.OnSnapshot(engine.Snapshot{TurnCount: 0, Species: []string{"Ant"}, Counts: []int{3}})
	require.NotEqual(t, first, rec.runID, "every initialization frame starts a fresh run")

	var runs int
	err = db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs)
	require.NoError(t, err)
	require.Equal(t, 2, runs)
}
