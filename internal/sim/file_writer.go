package sim

import (
	"encoding/json"
	"os"

	"astromine-sim/internal/events"
)

// FileWriter writes event, snapshot and failure rows to JSONL files.
type FileWriter struct {
	eventFile    *os.File
	snapshotFile *os.File
	failureFile  *os.File
	eventEnc     *json.Encoder
	snapshotEnc  *json.Encoder
	failureEnc   *json.Encoder
}

// NewFileWriter creates a FileWriter. snapshotPath or failurePath may be
// empty to skip those logs.
func NewFileWriter(eventPath, snapshotPath, failurePath string) (*FileWriter, error) {
	ef, err := os.Create(eventPath)
	if err != nil {
		return nil, err
	}
	fw := &FileWriter{eventFile: ef, eventEnc: json.NewEncoder(ef)}
	if snapshotPath != "" {
		sf, err := os.Create(snapshotPath)
		if err != nil {
			ef.Close()
			return nil, err
		}
		fw.snapshotFile = sf
		fw.snapshotEnc = json.NewEncoder(sf)
	}
	if failurePath != "" {
		ff, err := os.Create(failurePath)
		if err != nil {
			if fw.snapshotFile != nil {
				fw.snapshotFile.Close()
			}
			ef.Close()
			return nil, err
		}
		fw.failureFile = ff
		fw.failureEnc = json.NewEncoder(ff)
	}
	return fw, nil
}

// Write logs a single event row.
func (f *FileWriter) Write(row events.EventRow) error {
	return f.eventEnc.Encode(row)
}

// WriteBatch logs multiple event rows.
func (f *FileWriter) WriteBatch(rows []events.EventRow) error {
	for _, r := range rows {
		if err := f.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// WriteSnapshot logs a runtime snapshot row, if enabled.
func (f *FileWriter) WriteSnapshot(row events.SnapshotRow) error {
	if f.snapshotEnc == nil {
		return nil
	}
	return f.snapshotEnc.Encode(row)
}

// WriteFailure logs a failure report row, if enabled.
func (f *FileWriter) WriteFailure(row events.FailureReportRow) error {
	if f.failureEnc == nil {
		return nil
	}
	return f.failureEnc.Encode(row)
}

// WriteFailures logs multiple failure reports.
func (f *FileWriter) WriteFailures(rows []events.FailureReportRow) error {
	for _, r := range rows {
		if err := f.WriteFailure(r); err != nil {
			return err
		}
	}
	return nil
}

// Close closes any underlying files.
func (f *FileWriter) Close() error {
	var err error
	if f.eventFile != nil {
		if e := f.eventFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.snapshotFile != nil {
		if e := f.snapshotFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	if f.failureFile != nil {
		if e := f.failureFile.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}
