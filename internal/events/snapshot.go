package events

import (
	"os"
	"time"
)

// QuoteRow is the serialized market quote for one product.
type QuoteRow struct {
	Price  float64 `json:"price"`
	Demand float64 `json:"demand"`
}

// CrewStatusRow summarizes one crew member for snapshots and UI shells.
type CrewStatusRow struct {
	MemberID        string `json:"member_id"`
	Name            string `json:"name"`
	Status          string `json:"status"`
	BreakfastServed bool   `json:"breakfast_served"`
	LunchServed     bool   `json:"lunch_served"`
	DinnerServed    bool   `json:"dinner_served"`
	WaterServed     int    `json:"water_served"`
}

// SnapshotRow is the JSON-serializable runtime snapshot handed to the
// persistence collaborator. All float fields are 4-decimal rounded before the
// row is built, so the row round-trips through JSON without precision loss.
type SnapshotRow struct {
	ShipID            string              `json:"ship_id"` // TAG
	SectorID          string              `json:"sector_id"`
	Credits           float64             `json:"credits"`
	Energy            float64             `json:"energy"`
	MaxEnergy         float64             `json:"max_energy"`
	Charging          bool                `json:"charging"`
	Docked            bool                `json:"docked"`
	StationDistanceKM float64             `json:"station_distance_km"`
	CycleTimeSeconds  int64               `json:"cycle_time_seconds"`
	Inventory         map[string]float64  `json:"inventory"`
	Market            map[string]QuoteRow `json:"market"`
	Crew              []CrewStatusRow     `json:"crew"`
	FridgeBars        float64             `json:"fridge_bars"`
	FridgeWaterLiters float64             `json:"fridge_water_liters"`
	WorldRemaining    int                 `json:"world_remaining"`
	FailureCount      int                 `json:"failure_count"`
	Log               []EventRow          `json:"log"`
	Timestamp         time.Time           `json:"ts"` // TIME INDEX
}

// SnapshotTableName follows the env-override pattern of the other tables.
var SnapshotTableName = func() string {
	if env := os.Getenv("ASTROMINE_SNAPSHOT_TABLE"); env != "" {
		return env
	}
	return "ship_snapshots"
}()

func (SnapshotRow) TableName() string {
	return SnapshotTableName
}
