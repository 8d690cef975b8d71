package main

import (
	"os"

	"astromine-sim/internal/catalog"
	"astromine-sim/internal/sim"
)

// shipWriter is the combined sink the simulator fans out to.
type shipWriter interface {
	sim.EventWriter
	sim.SnapshotWriter
	sim.FailureWriter
}

// newWriters sets up event, snapshot and failure writers based on flags and
// env vars. It returns the writers and a cleanup function to close any
// resources.
func newWriters(cat *catalog.Catalog, printOnly bool, logFile string, useTUI bool) (sim.EventWriter, sim.SnapshotWriter, sim.FailureWriter, func(), error) {
	cleanup := func() {}

	var base shipWriter
	switch {
	case useTUI:
		tw := sim.NewTUIWriter(cat)
		base = tw
		cleanup = func() { tw.Close() }
	case printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "":
		base = sim.NewColorStdoutWriter(cat)
	default:
		w, err := sim.NewGreptimeDBWriter(os.Getenv("GREPTIMEDB_ENDPOINT"), greptimeDatabase())
		if err != nil {
			return nil, nil, nil, nil, err
		}
		base = w
	}

	if logFile == "" {
		return base, base, base, cleanup, nil
	}

	fw, err := sim.NewFileWriter(logFile, logFile+".snapshots", logFile+".failures")
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, err
	}
	mw := sim.NewMultiWriter(
		[]sim.EventWriter{base, fw},
		[]sim.SnapshotWriter{base, fw},
		[]sim.FailureWriter{base, fw},
	)
	baseCleanup := cleanup
	cleanup = func() {
		fw.Close()
		baseCleanup()
	}
	return mw, mw, mw, cleanup, nil
}

// newReplayWriter creates the event sink for log playback. Replay output is
// plain JSON lines so it can be piped back into a log file.
func newReplayWriter(printOnly bool) (sim.EventWriter, error) {
	if printOnly || os.Getenv("GREPTIMEDB_ENDPOINT") == "" {
		return &sim.StdoutWriter{}, nil
	}
	return sim.NewGreptimeDBWriter(os.Getenv("GREPTIMEDB_ENDPOINT"), greptimeDatabase())
}

func greptimeDatabase() string {
	if db := os.Getenv("GREPTIMEDB_DATABASE"); db != "" {
		return db
	}
	return "public"
}
