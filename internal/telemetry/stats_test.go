package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bugworks/bugbattle/internal/engine"
)

func TestWriterIsDisabledWithoutADirectory(t *testing.T) {
	w, err := NewWriter("")
	require.NoError(t, err)
	require.Nil(t, w)
}

func TestWriterAppendsOneRowPerSpecies(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)
	require.NotNil(t, w)

	w.OnSnapshot(engine.Snapshot{
		TurnCount:      1,
		TurnsPerSecond: 4,
		Species:        []string{"Ant", "Beetle"},
		Counts:         []int{3, 2},
	})
	w.OnSnapshot(engine.Snapshot{
		TurnCount: 2,
		Species:   []string{"Ant", "Beetle"},
		Counts:    []int{3, 0},
		GameOver:  true,
	})
	require.NoError(t, w.Close())

	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 5, "a header plus two rows per snapshot")
	require.Equal(t, "turn,species,live_count,tps,game_over", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "1,Ant,3,"))
	require.True(t, strings.HasPrefix(lines[4], "2,Beetle,0,"))
	require.Contains(t, lines[4], "true")
}

func TestWriterSkipsEmptySnapshots(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	require.NoError(t, err)

	w.OnSnapshot(engine.Snapshot{TurnCount: 1})
	require.NoError(t, w.Close())

	data, err := os.ReadFile(filepath.Join(dir, "stats.csv"))
	require.NoError(t, err)
	require.Empty(t, data, "no species selected means nothing to report")
}
