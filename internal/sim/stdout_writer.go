// Writer implementation printing simulation rows to STDOUT
package sim

import (
	"encoding/json"
	"fmt"

	"astromine-sim/internal/events"
)

// StdoutWriter prints simulation rows to STDOUT as JSON lines.
type StdoutWriter struct{}

// Write outputs a single event row.
func (w *StdoutWriter) Write(row events.EventRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteBatch outputs multiple event rows.
func (w *StdoutWriter) WriteBatch(rows []events.EventRow) error {
	for _, r := range rows {
		_ = w.Write(r)
	}
	return nil
}

// WriteSnapshot prints a runtime snapshot row.
func (w *StdoutWriter) WriteSnapshot(row events.SnapshotRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteFailure prints a failure report row.
func (w *StdoutWriter) WriteFailure(row events.FailureReportRow) error {
	data, _ := json.Marshal(row)
	fmt.Println(string(data))
	return nil
}

// WriteFailures prints multiple failure reports.
func (w *StdoutWriter) WriteFailures(rows []events.FailureReportRow) error {
	for _, r := range rows {
		_ = w.WriteFailure(r)
	}
	return nil
}
