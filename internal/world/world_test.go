package world

import (
	"encoding/json"
	"fmt"
	"testing"

	"astromine-sim/internal/catalog"
	"astromine-sim/internal/detrand"
)

func TestMinActiveTargets(t *testing.T) {
	cases := []struct {
		total, want int
	}{
		{0, 0},
		{10, 10},  // floor capped at total for tiny sectors
		{15, 15},
		{20, 15},  // 45% of 20 is 9, lower bound 15 applies
		{60, 27},  // 45% of 60
		{100, 45},
		{24, 15},
	}
	for _, c := range cases {
		if got := MinActiveTargets(c.total); got != c.want {
			t.Errorf("MinActiveTargets(%d) = %d, want %d", c.total, got, c.want)
		}
	}
}

func TestSessionIDs(t *testing.T) {
	ids := SessionIDs("sol-belt")
	if len(ids) != 2 || ids[0] != "world-session-sol-belt" || ids[1] != "world-session" {
		t.Errorf("unexpected default sector ids: %v", ids)
	}
	ids = SessionIDs("tau-verge")
	if len(ids) != 1 || ids[0] != "world-session-tau-verge" {
		t.Errorf("non-default sector must not get the legacy fallback: %v", ids)
	}
}

func depletion(id string) TargetDepleted {
	return TargetDepleted{
		TargetID:   id,
		ClassID:    "ice",
		Kind:       "asteroid",
		ZoneID:     "inner-ring",
		RiskRating: 0.2,
	}
}

func TestRecordTargetDepleted_Counters(t *testing.T) {
	cat := catalog.Default()
	l := NewLedger(cat.Sector("sol-belt"))

	res := l.RecordTargetDepleted(depletion("t-1"))
	if !res.Recorded || len(res.Replenished) != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if l.DestroyedCount != 1 || l.ByZone["inner-ring"] != 1 || l.ByClass["ice"] != 1 {
		t.Errorf("counters off: %+v", l)
	}
	if !l.VisitedZones["inner-ring"] {
		t.Error("zone not marked visited")
	}
	if !l.IsDepleted("t-1") || l.RemainingCount() != 59 {
		t.Errorf("ledger state off: remaining=%d", l.RemainingCount())
	}
}

// Duplicate target ids within a session are ignored entirely: no counter
// moves and no eviction runs.
func TestRecordTargetDepleted_DuplicateIgnored(t *testing.T) {
	cat := catalog.Default()
	l := NewLedger(cat.Sector("sol-belt"))

	l.RecordTargetDepleted(depletion("t-1"))
	res := l.RecordTargetDepleted(depletion("t-1"))
	if res.Recorded {
		t.Fatal("duplicate depletion was recorded")
	}
	if l.DestroyedCount != 1 || len(l.DepletedIDs) != 1 || l.ByZone["inner-ring"] != 1 {
		t.Errorf("duplicate double-counted: %+v", l)
	}
}

// The active population must never fall below the floor; the oldest depleted
// ids are replenished first.
func TestRecordTargetDepleted_FloorEviction(t *testing.T) {
	cat := catalog.Default()
	sector := cat.Sector("sol-belt") // 60 targets, floor 27, cap 33
	l := NewLedger(sector)
	window := sector.TotalTargets - MinActiveTargets(sector.TotalTargets)

	for i := 0; i < window; i++ {
		l.RecordTargetDepleted(depletion(fmt.Sprintf("t-%d", i)))
	}
	if len(l.DepletedIDs) != window || l.RemainingCount() != MinActiveTargets(sector.TotalTargets) {
		t.Fatalf("window not at cap: %d depleted, %d remaining", len(l.DepletedIDs), l.RemainingCount())
	}

	res := l.RecordTargetDepleted(depletion("t-new"))
	if !res.Recorded {
		t.Fatal("new depletion not recorded")
	}
	if len(res.Replenished) != 1 || res.Replenished[0] != "t-0" {
		t.Fatalf("expected oldest id t-0 replenished, got %v", res.Replenished)
	}
	if l.IsDepleted("t-0") {
		t.Error("replenished target still marked depleted")
	}
	if !l.IsDepleted("t-new") {
		t.Error("new target not marked depleted")
	}
	if l.RemainingCount() != MinActiveTargets(sector.TotalTargets) {
		t.Errorf("remaining count left the floor: %d", l.RemainingCount())
	}
	if l.DestroyedCount != window+1 {
		t.Errorf("destroyed count should keep growing: %d", l.DestroyedCount)
	}
}

// Any sequence of depletions keeps the window within the cap.
func TestLedgerFloor_Property(t *testing.T) {
	cat := catalog.Default()
	sector := cat.Sector("tau-verge") // 24 targets, floor 15
	l := NewLedger(sector)
	maxDepleted := sector.TotalTargets - MinActiveTargets(sector.TotalTargets)

	for i := 0; i < 500; i++ {
		l.RecordTargetDepleted(depletion(fmt.Sprintf("t-%d", i%40)))
		if len(l.DepletedIDs) > maxDepleted {
			t.Fatalf("window exceeded cap at step %d: %d > %d", i, len(l.DepletedIDs), maxDepleted)
		}
	}
}

func TestLedger_JSONHydration(t *testing.T) {
	cat := catalog.Default()
	l := NewLedger(cat.Sector("sol-belt"))
	l.RecordTargetDepleted(depletion("t-1"))
	l.RecordTargetDepleted(depletion("t-2"))

	raw, err := json.Marshal(l)
	if err != nil {
		t.Fatal(err)
	}
	var restored Ledger
	if err := json.Unmarshal(raw, &restored); err != nil {
		t.Fatal(err)
	}
	if !restored.IsDepleted("t-1") || restored.IsDepleted("t-99") {
		t.Error("lookup index not rebuilt after hydration")
	}
	if res := restored.RecordTargetDepleted(depletion("t-2")); res.Recorded {
		t.Error("hydrated ledger double-counted a known target")
	}
}

func TestGenerateTarget(t *testing.T) {
	cat := catalog.Default()
	sector := cat.Sector("sol-belt")
	rng := detrand.New(42)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tgt := GenerateTarget(rng, cat, sector)
		if seen[tgt.ID] {
			t.Fatalf("duplicate target id %s", tgt.ID)
		}
		seen[tgt.ID] = true

		zone := findZone(sector, tgt.ZoneID)
		if zone == nil {
			t.Fatalf("unknown zone %q", tgt.ZoneID)
		}
		if _, ok := zone.ClassWeights[tgt.ClassID]; !ok {
			t.Errorf("class %q not valid for zone %q", tgt.ClassID, tgt.ZoneID)
		}
		if tgt.RiskRating < zone.RiskMin || tgt.RiskRating > zone.RiskMax {
			t.Errorf("risk %v outside [%v, %v]", tgt.RiskRating, zone.RiskMin, zone.RiskMax)
		}
		if len(tgt.ExpectedYield) == 0 {
			t.Errorf("target %s has no yield", tgt.ClassID)
		}
		class := cat.Class(tgt.ClassID)
		if class == nil {
			t.Fatalf("class %q not in catalog", tgt.ClassID)
		}
		if tgt.Kind != class.Kind {
			t.Errorf("kind = %q, want %q", tgt.Kind, class.Kind)
		}
		for res := range tgt.ExpectedYield {
			if _, ok := class.Yields[res]; !ok {
				t.Errorf("yield resource %q not in class %q", res, tgt.ClassID)
			}
		}
	}
}

func findZone(sector *catalog.SectorDefinition, id string) *catalog.ZoneDefinition {
	for i := range sector.Zones {
		if sector.Zones[i].ID == id {
			return &sector.Zones[i]
		}
	}
	return nil
}
