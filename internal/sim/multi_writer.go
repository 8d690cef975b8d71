package sim

import (
	"astromine-sim/internal/events"
)

// MultiWriter fans event, snapshot and failure rows out to multiple writers.
type MultiWriter struct {
	eventWriters    []EventWriter
	snapshotWriters []SnapshotWriter
	failureWriters  []FailureWriter
}

// NewMultiWriter creates a new MultiWriter.
func NewMultiWriter(ews []EventWriter, sws []SnapshotWriter, fws []FailureWriter) *MultiWriter {
	return &MultiWriter{eventWriters: ews, snapshotWriters: sws, failureWriters: fws}
}

// Write sends an event row to all writers.
func (mw *MultiWriter) Write(row events.EventRow) error {
	for _, w := range mw.eventWriters {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteBatch sends multiple event rows to all writers, using batch if supported.
func (mw *MultiWriter) WriteBatch(rows []events.EventRow) error {
	for _, w := range mw.eventWriters {
		if bw, ok := w.(batchEventWriter); ok {
			if err := bw.WriteBatch(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.Write(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteSnapshot sends a snapshot row to all snapshot writers.
func (mw *MultiWriter) WriteSnapshot(row events.SnapshotRow) error {
	for _, w := range mw.snapshotWriters {
		if err := w.WriteSnapshot(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteFailure sends a failure report to all failure writers.
func (mw *MultiWriter) WriteFailure(row events.FailureReportRow) error {
	for _, w := range mw.failureWriters {
		if err := w.WriteFailure(row); err != nil {
			return err
		}
	}
	return nil
}

// WriteFailures sends multiple failure reports to all failure writers, using
// batch if supported.
func (mw *MultiWriter) WriteFailures(rows []events.FailureReportRow) error {
	for _, w := range mw.failureWriters {
		if bw, ok := w.(batchFailureWriter); ok {
			if err := bw.WriteFailures(rows); err != nil {
				return err
			}
			continue
		}
		for _, r := range rows {
			if err := w.WriteFailure(r); err != nil {
				return err
			}
		}
	}
	return nil
}
