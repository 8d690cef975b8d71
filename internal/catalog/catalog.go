// YAML catalog loader with CUE validation integration.
package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProcessDefinition describes one production recipe. Immutable at runtime.
type ProcessDefinition struct {
	ID                   string             `yaml:"id"`
	Label                string             `yaml:"label"`
	Inputs               map[string]float64 `yaml:"inputs"`
	Outputs              map[string]float64 `yaml:"outputs"`
	EnergyCost           float64            `yaml:"energy_cost"`
	MaxStationDistanceKM float64            `yaml:"max_station_distance_km,omitempty"` // 0 = unconstrained
	RequireDocked        bool               `yaml:"require_docked,omitempty"`
}

// Product describes a sellable good and its baseline price.
type Product struct {
	ID        string  `yaml:"id"`
	Label     string  `yaml:"label"`
	BasePrice float64 `yaml:"base_price"`
}

// MarketTuning holds the supply-demand feedback constants.
type MarketTuning struct {
	DemandImpactPerUnit float64 `yaml:"demand_impact_per_unit"`
	RecoveryPerSecond   float64 `yaml:"recovery_per_second"`
	MinDemand           float64 `yaml:"min_demand"`
	MaxDemand           float64 `yaml:"max_demand"`
}

// CrewTuning holds the life-support schedule constants.
type CrewTuning struct {
	WaterLitersPerDay     float64 `yaml:"water_liters_per_day"`
	WaterLitersPerServing float64 `yaml:"water_liters_per_serving"`
	WakeOffsetHours       int     `yaml:"wake_offset_hours"`
	BreakfastOffsetSec    int     `yaml:"breakfast_offset_sec"`
	LunchOffsetSec        int     `yaml:"lunch_offset_sec"`
	DinnerOffsetSec       int     `yaml:"dinner_offset_sec"`
	MissedMealsStarving   int     `yaml:"missed_meals_starving"`
	MissedWaterDehydrated int     `yaml:"missed_water_dehydrated"`
}

// FailureTuning holds emergency-repair penalties and the bill of materials.
type FailureTuning struct {
	BaseCreditsPenalty      float64            `yaml:"base_credits_penalty"`
	CreditsPenaltyPerRepair float64            `yaml:"credits_penalty_per_repair"`
	BaseEnergyPenalty       float64            `yaml:"base_energy_penalty"`
	EnergyPenaltyPerRepair  float64            `yaml:"energy_penalty_per_repair"`
	RepairBill              map[string]float64 `yaml:"repair_bill"`
}

// BatteryCost is one resource line of the upgrade bill. The quantity charged
// at tier t is linear*t + quadratic*t*t.
type BatteryCost struct {
	Resource  string  `yaml:"resource"`
	Linear    float64 `yaml:"linear"`
	Quadratic float64 `yaml:"quadratic"`
}

// BatteryTuning describes the battery upgrade ladder.
type BatteryTuning struct {
	BaseMaxEnergy float64       `yaml:"base_max_energy"`
	StepMaxEnergy float64       `yaml:"step_max_energy"`
	Costs         []BatteryCost `yaml:"costs"`
}

// ChargingTuning describes station charging behavior.
type ChargingTuning struct {
	RangeKM         float64 `yaml:"range_km"`
	EnergyPerSecond float64 `yaml:"energy_per_second"`
}

// FridgeTuning caps the galley stores.
type FridgeTuning struct {
	CapacityBars   float64 `yaml:"capacity_bars"`
	CapacityLiters float64 `yaml:"capacity_liters"`
}

// TargetClass describes one minable class: how its targets render and what
// they drop per unit of richness.
type TargetClass struct {
	ID     string             `yaml:"id"`
	Kind   string             `yaml:"kind"`
	Yields map[string]float64 `yaml:"yields"`
}

// ZoneDefinition groups targets with a shared class-weight and risk profile.
type ZoneDefinition struct {
	ID           string             `yaml:"id"`
	ClassWeights map[string]float64 `yaml:"class_weights"`
	RiskMin      float64            `yaml:"risk_min"`
	RiskMax      float64            `yaml:"risk_max"`
}

// SectorDefinition describes one minable sector.
type SectorDefinition struct {
	ID           string           `yaml:"id"`
	TotalTargets int              `yaml:"total_targets"`
	Zones        []ZoneDefinition `yaml:"zones"`
}

// Catalog is the root read-only configuration for the simulation core.
type Catalog struct {
	Resources map[string]string   `yaml:"resources"` // id -> display label
	Processes []ProcessDefinition `yaml:"processes"`
	Products  []Product           `yaml:"products"`
	Market    MarketTuning        `yaml:"market"`
	Crew      CrewTuning          `yaml:"crew"`
	Failure   FailureTuning       `yaml:"failure"`
	Battery   BatteryTuning       `yaml:"battery"`
	Charging  ChargingTuning      `yaml:"charging"`
	Fridge    FridgeTuning        `yaml:"fridge"`
	Classes   []TargetClass       `yaml:"classes"`
	Sectors   []SectorDefinition  `yaml:"sectors"`
}

// Load loads a YAML catalog and validates it against a CUE schema first.
func Load(catalogPath, cueSchemaPath string) (*Catalog, error) {
	if err := ValidateWithCue(catalogPath, cueSchemaPath); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, err
	}
	var cat Catalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, err
	}
	if len(cat.Processes) == 0 {
		return nil, fmt.Errorf("catalog %s defines no processes", catalogPath)
	}
	if len(cat.Sectors) == 0 {
		return nil, fmt.Errorf("catalog %s defines no sectors", catalogPath)
	}
	return &cat, nil
}

// Process looks up a process definition by id. Returns nil when unknown.
func (c *Catalog) Process(id string) *ProcessDefinition {
	for i := range c.Processes {
		if c.Processes[i].ID == id {
			return &c.Processes[i]
		}
	}
	return nil
}

// Product looks up a sellable product by id. Returns nil when unknown.
func (c *Catalog) Product(id string) *Product {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i]
		}
	}
	return nil
}

// Class looks up a target class by id. Returns nil when unknown.
func (c *Catalog) Class(id string) *TargetClass {
	for i := range c.Classes {
		if c.Classes[i].ID == id {
			return &c.Classes[i]
		}
	}
	return nil
}

// Sector looks up a sector definition by id. Returns nil when unknown.
func (c *Catalog) Sector(id string) *SectorDefinition {
	for i := range c.Sectors {
		if c.Sectors[i].ID == id {
			return &c.Sectors[i]
		}
	}
	return nil
}

// ResourceLabel returns the display label for a resource, falling back to the
// raw id so log lines never render empty.
func (c *Catalog) ResourceLabel(id string) string {
	if label, ok := c.Resources[id]; ok && label != "" {
		return label
	}
	return id
}
