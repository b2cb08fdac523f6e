// Package telemetry exports per-turn population statistics as CSV for
// offline analysis of a match.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/bugworks/bugbattle/internal/engine"
)

// TurnStats is one CSV row: the live count of one species at one turn.
type TurnStats struct {
	Turn      int     `csv:"turn"`
	Species   string  `csv:"species"`
	LiveCount int     `csv:"live_count"`
	TPS       float64 `csv:"tps"`
	GameOver  bool    `csv:"game_over"`
}

// Writer appends per-turn stats rows to stats.csv in the output
// directory. It implements engine.SnapshotSink.
type Writer struct {
	file          *os.File
	headerWritten bool
}

// NewWriter creates the output directory and stats file. Returns nil
// (with no error) when dir is empty, meaning telemetry is disabled.
func NewWriter(dir string) (*Writer, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating telemetry directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "stats.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating stats.csv: %w", err)
	}
	return &Writer{file: f}, nil
}

// OnSnapshot appends one row per selected species.
func (w *Writer) OnSnapshot(snap engine.Snapshot) {
	rows := make([]*TurnStats, 0, len(snap.Species))
	for i, name := range snap.Species {
		rows = append(rows, &TurnStats{
			Turn:      snap.TurnCount,
			Species:   name,
			LiveCount: snap.Counts[i],
			TPS:       snap.TurnsPerSecond,
			GameOver:  snap.GameOver,
		})
	}
	if len(rows) == 0 {
		return
	}

	var err error
	if !w.headerWritten {
		err = gocsv.MarshalFile(&rows, w.file)
		w.headerWritten = true
	} else {
		err = gocsv.MarshalWithoutHeaders(&rows, w.file)
	}
	if err != nil {
		// Telemetry must never disturb the simulation loop.
		fmt.Fprintf(os.Stderr, "telemetry write failed: %v\n", err)
	}
}

// Close flushes and closes the stats file.
func (w *Writer) Close() error {
	return w.file.Close()
}
