package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCatalog_Valid(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	schemaPath := filepath.Join(dir, "catalog.cue")

	yamlDoc := `
resources:
  waterIce: water ice
processes:
  - id: iceMelter
    label: Ice melter
    inputs:
      waterIce: 1
    outputs:
      water: 1
    energy_cost: 1
products:
  - id: water
    label: water
    base_price: 8
market:
  demand_impact_per_unit: 0.02
  recovery_per_second: 0.0005
  min_demand: 0.5
  max_demand: 1.5
crew:
  water_liters_per_day: 2.4
  water_liters_per_serving: 0.4
  wake_offset_hours: 8
  breakfast_offset_sec: 1800
  lunch_offset_sec: 21600
  dinner_offset_sec: 43200
  missed_meals_starving: 2
  missed_water_dehydrated: 3
failure:
  base_credits_penalty: 150
  credits_penalty_per_repair: 75
  base_energy_penalty: 25
  energy_penalty_per_repair: 10
  repair_bill:
    steelPlate: 4
battery:
  base_max_energy: 200
  step_max_energy: 150
  costs:
    - resource: powerCell
      linear: 4
      quadratic: 2
charging:
  range_km: 5
  energy_per_second: 0.25
fridge:
  capacity_bars: 24
  capacity_liters: 18
sectors:
  - id: sol-belt
    total_targets: 60
    zones:
      - id: inner-ring
        class_weights:
          ice: 3
        risk_min: 0.1
        risk_max: 0.4
`
	schemaDoc := `
processes: [...{
	id:    string & !=""
	label: string & !=""
	energy_cost: number & >=0
}]
`
	if err := os.WriteFile(catalogPath, []byte(yamlDoc), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if err := os.WriteFile(schemaPath, []byte(schemaDoc), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	cat, err := Load(catalogPath, schemaPath)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if got := cat.Process("iceMelter"); got == nil || got.Label != "Ice melter" {
		t.Errorf("unexpected process data: %+v", got)
	}
	if cat.Sector("sol-belt") == nil {
		t.Errorf("missing sector sol-belt: %+v", cat.Sectors)
	}
}

func TestLoadCatalog_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	catalogPath := filepath.Join(dir, "catalog.yaml")
	schemaPath := filepath.Join(dir, "catalog.cue")

	if err := os.WriteFile(catalogPath, []byte("processes:\n  - id: x\n    label: x\n    energy_cost: -5\n"), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if err := os.WriteFile(schemaPath, []byte("processes: [...{energy_cost: number & >=0}]\n"), 0o644); err != nil {
		t.Fatalf("write schema: %v", err)
	}

	if _, err := Load(catalogPath, schemaPath); err == nil {
		t.Fatal("expected schema violation error, got nil")
	}
}

func TestDefault_LookupsAndLabels(t *testing.T) {
	cat := Default()
	if p := cat.Process("iceMelter"); p == nil || p.EnergyCost != 1 {
		t.Fatalf("iceMelter missing or wrong: %+v", p)
	}
	if cat.Process("unknown") != nil {
		t.Error("unknown process should be nil")
	}
	if p := cat.Product("boxOfSand"); p == nil || p.BasePrice != 12 {
		t.Errorf("boxOfSand product wrong: %+v", p)
	}
	if got := cat.ResourceLabel("waterIce"); got != "water ice" {
		t.Errorf("ResourceLabel(waterIce) = %q", got)
	}
	if got := cat.ResourceLabel("mystery"); got != "mystery" {
		t.Errorf("expected id fallback, got %q", got)
	}
	if p := cat.Product("boxOfSand"); p.Label != "box of sand" {
		t.Errorf("product label = %q, want a display label", p.Label)
	}
	if c := cat.Class("wreckage"); c == nil || c.Kind != "debris" || c.Yields["wiring"] != 2 {
		t.Errorf("wreckage class wrong: %+v", c)
	}
	if cat.Class("unknown") != nil {
		t.Error("unknown class should be nil")
	}
}
