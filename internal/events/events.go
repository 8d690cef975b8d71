// Simulation event rows shared between the core and its writers.
package events

import (
	"os"
	"sort"
	"time"

	"astromine-sim/internal/detrand"
)

// EventRow is one entry of the in-game simulation log. The ID is derived from
// the millisecond timestamp plus a hash jitter so concurrent entries still
// sort stably and stay practically unique across replays.
type EventRow struct {
	ShipID      string `json:"ship_id"` // TAG
	ID          int64  `json:"id"`
	Message     string `json:"message"` // FIELD
	TimestampMS int64  `json:"ts_ms"`   // TIME INDEX (milliseconds)
}

// EventTableName holds the table name used when writing to GreptimeDB.
// It defaults to "sim_events" but can be overridden via the
// ASTROMINE_EVENT_TABLE environment variable.
var EventTableName = func() string {
	if env := os.Getenv("ASTROMINE_EVENT_TABLE"); env != "" {
		return env
	}
	return "sim_events"
}()

func (EventRow) TableName() string {
	return EventTableName
}

// Time returns the entry timestamp as a time.Time.
func (e EventRow) Time() time.Time {
	return time.UnixMilli(e.TimestampMS).UTC()
}

// NewEvent builds an EventRow stamped at the given instant.
func NewEvent(shipID, message string, at time.Time) EventRow {
	ms := at.UnixMilli()
	jitter := int64(detrand.HashString01(message, uint64(ms)) * 1000)
	return EventRow{
		ShipID:      shipID,
		ID:          ms*1000 + jitter,
		Message:     message,
		TimestampMS: ms,
	}
}

// MaxLogEntries caps the retained in-game log; older entries are evicted.
const MaxLogEntries = 100

// PushLog prepends a row to a newest-first log, enforcing the cap.
func PushLog(log []EventRow, row EventRow) []EventRow {
	out := append([]EventRow{row}, log...)
	if len(out) > MaxLogEntries {
		out = out[:MaxLogEntries]
	}
	return out
}

// SortNewestFirst orders rows by descending ID (timestamp-derived).
func SortNewestFirst(rows []EventRow) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID > rows[j].ID })
}
