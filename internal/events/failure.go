package events

import "os"

// Failure reasons accepted by the repair accounting.
const (
	FailureCombat     = "combat"
	FailureStarvation = "starvation"
)

// MaterialShortage records how much of one repair material was missing.
type MaterialShortage struct {
	Resource string  `json:"resource"`
	Missing  float64 `json:"missing"`
}

// FailureReportRow captures one emergency repair. Append-only, capped.
type FailureReportRow struct {
	ID                  string             `json:"id"`
	ShipID              string             `json:"ship_id"` // TAG
	Reason              string             `json:"reason"`
	RepairCount         int                `json:"repair_count"`
	CreditsPenalty      float64            `json:"credits_penalty"`
	EnergyPenalty       float64            `json:"energy_penalty"`
	Shortages           []MaterialShortage `json:"shortages,omitempty"`
	HadMaterialShortage bool               `json:"had_material_shortage"`
	TimestampMS         int64              `json:"ts_ms"` // TIME INDEX
}

// FailureTableName follows the same env-override pattern as EventTableName.
var FailureTableName = func() string {
	if env := os.Getenv("ASTROMINE_FAILURE_TABLE"); env != "" {
		return env
	}
	return "failure_reports"
}()

func (FailureReportRow) TableName() string {
	return FailureTableName
}

// MaxFailureReports caps the retained report list.
const MaxFailureReports = 50

// PushFailureReport appends a report, evicting the oldest beyond the cap.
func PushFailureReport(reports []FailureReportRow, row FailureReportRow) []FailureReportRow {
	out := append(reports, row)
	if len(out) > MaxFailureReports {
		out = out[len(out)-MaxFailureReports:]
	}
	return out
}
