package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"astromine-sim/internal/catalog"
	"astromine-sim/internal/events"
	"astromine-sim/internal/sim"
)

func TestNewWritersPrintOnly(t *testing.T) {
	ew, sw, fw, cleanup, err := newWriters(catalog.Default(), true, "", false)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := ew.(*sim.ColorStdoutWriter); !ok {
		t.Fatalf("expected *sim.ColorStdoutWriter, got %T", ew)
	}
	if _, ok := sw.(*sim.ColorStdoutWriter); !ok {
		t.Fatalf("expected snapshot writer *sim.ColorStdoutWriter, got %T", sw)
	}
	if _, ok := fw.(*sim.ColorStdoutWriter); !ok {
		t.Fatalf("expected failure writer *sim.ColorStdoutWriter, got %T", fw)
	}
}

func TestNewWritersGreptimeFallback(t *testing.T) {
	t.Setenv("GREPTIMEDB_ENDPOINT", "")
	ew, _, _, cleanup, err := newWriters(catalog.Default(), false, "", false)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	cleanup()
	if _, ok := ew.(*sim.ColorStdoutWriter); !ok {
		t.Fatalf("expected *sim.ColorStdoutWriter, got %T", ew)
	}
}

func TestNewWritersLogFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "events.log")
	ew, _, fw, cleanup, err := newWriters(catalog.Default(), true, path, false)
	if err != nil {
		t.Fatalf("newWriters returned error: %v", err)
	}
	defer cleanup()
	if _, ok := ew.(*sim.MultiWriter); !ok {
		t.Fatalf("expected *sim.MultiWriter, got %T", ew)
	}
	row := events.NewEvent("ship-1", "Jumped to sector tau-verge.", time.Now())
	if err := ew.Write(row); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := fw.WriteFailure(events.FailureReportRow{ShipID: "ship-1", Reason: "combat"}); err != nil {
		t.Fatalf("write failure failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected log file to be non-empty")
	}
	failInfo, err := os.Stat(path + ".failures")
	if err != nil {
		t.Fatalf("stat failures failed: %v", err)
	}
	if failInfo.Size() == 0 {
		t.Fatalf("expected failure file to be non-empty")
	}
}

func TestNewReplayWriterPrintOnly(t *testing.T) {
	w, err := newReplayWriter(true)
	if err != nil {
		t.Fatalf("newReplayWriter returned error: %v", err)
	}
	if _, ok := w.(*sim.StdoutWriter); !ok {
		t.Fatalf("expected *sim.StdoutWriter, got %T", w)
	}
}
