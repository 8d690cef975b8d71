package crew

import (
	"reflect"
	"testing"
	"time"

	"astromine-sim/internal/catalog"
	"astromine-sim/internal/inventory"
)

func TestBuildSchedule_Deterministic(t *testing.T) {
	cat := catalog.Default()
	a := BuildSchedule(cat, "member-1", 20642, 8)
	b := BuildSchedule(cat, "member-1", 20642, 8)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same inputs produced different schedules:\n%v\n%v", a, b)
	}
	c := BuildSchedule(cat, "member-1", 20643, 8)
	if reflect.DeepEqual(a.WaterSlots, c.WaterSlots) {
		t.Error("different day produced identical water slots")
	}
}

func TestBuildSchedule_SlotCountAndOrder(t *testing.T) {
	cat := catalog.Default()
	s := BuildSchedule(cat, "member-2", 100, 14)
	// 2.4 L/day at 0.4 L per serving is six slots.
	if len(s.WaterSlots) != 6 {
		t.Fatalf("expected 6 water slots, got %d", len(s.WaterSlots))
	}
	for i := 1; i < len(s.WaterSlots); i++ {
		if s.WaterSlots[i] <= s.WaterSlots[i-1] {
			t.Errorf("slots not strictly ascending at %d: %v", i, s.WaterSlots)
		}
	}
	for _, slot := range s.WaterSlots {
		if slot < 0 || slot >= secondsPerDay+len(s.WaterSlots) {
			t.Errorf("slot out of range: %d", slot)
		}
	}
}

func TestBuildSchedule_MealAnchorsFollowShift(t *testing.T) {
	cat := catalog.Default()
	s := BuildSchedule(cat, "member-3", 7, 8)
	// Shift at 08:00 wakes the member at 00:00; offsets apply directly.
	if s.BreakfastAt != cat.Crew.BreakfastOffsetSec {
		t.Errorf("breakfast anchor = %d, want %d", s.BreakfastAt, cat.Crew.BreakfastOffsetSec)
	}
	if s.LunchAt != cat.Crew.LunchOffsetSec || s.DinnerAt != cat.Crew.DinnerOffsetSec {
		t.Errorf("meal anchors off: %+v", s)
	}

	// A 04:00 shift wraps the wake time to 20:00 the previous day.
	late := BuildSchedule(cat, "member-3", 7, 4)
	wantBreakfast := (20*3600 + cat.Crew.BreakfastOffsetSec) % secondsPerDay
	if late.BreakfastAt != wantBreakfast {
		t.Errorf("wrapped breakfast anchor = %d, want %d", late.BreakfastAt, wantBreakfast)
	}
}

func TestExpectedAt(t *testing.T) {
	s := DaySchedule{
		WaterSlots:  []int{100, 200, 300},
		BreakfastAt: 150,
		LunchAt:     250,
		DinnerAt:    350,
	}
	exp := s.ExpectedAt(0)
	if exp.Water != 0 || exp.Breakfast {
		t.Errorf("unexpected expectation at 0: %+v", exp)
	}
	exp = s.ExpectedAt(200)
	if exp.Water != 2 || !exp.Breakfast || exp.Lunch {
		t.Errorf("unexpected expectation at 200: %+v", exp)
	}
	exp = s.ExpectedAt(secondsPerDay - 1)
	if exp.Water != 3 || !exp.Dinner {
		t.Errorf("unexpected expectation at end of day: %+v", exp)
	}
}

func testMember(dayIndex int64) Member {
	return Member{
		ID:             "m-test",
		Name:           "Ada",
		ShiftStartHour: 8,
		DayIndex:       dayIndex,
		Schedule: DaySchedule{
			WaterSlots:  []int{100, 200, 300},
			BreakfastAt: 150,
			LunchAt:     400,
			DinnerAt:    500,
		},
		Status: StatusNormal,
	}
}

func TestAdvance_ServesFromFridge(t *testing.T) {
	cat := catalog.Default()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	m := testMember(EpochDay(day))
	f := Fridge{GalaxyBars: 5, WaterLiters: 4}

	res := Advance(cat, m, f, day.Add(250*time.Second))
	if res.Member.WaterServed != 2 {
		t.Errorf("expected 2 water servings, got %d", res.Member.WaterServed)
	}
	if !res.Member.BreakfastServed || res.Member.LunchServed {
		t.Errorf("unexpected meal flags: %+v", res.Member)
	}
	if res.Fridge.GalaxyBars != 4 {
		t.Errorf("expected 4 bars left, got %v", res.Fridge.GalaxyBars)
	}
	if want := 4 - 2*cat.Crew.WaterLitersPerServing; res.Fridge.WaterLiters != want {
		t.Errorf("expected %v L left, got %v", want, res.Fridge.WaterLiters)
	}
	if len(res.Events) != 0 {
		t.Errorf("routine servings should stay quiet, got %v", res.Events)
	}
	if res.Member.Status != StatusNormal {
		t.Errorf("status = %s", res.Member.Status)
	}
}

func TestAdvance_IsIdempotentWithinDay(t *testing.T) {
	cat := catalog.Default()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	m := testMember(EpochDay(day))
	f := Fridge{GalaxyBars: 5, WaterLiters: 4}

	first := Advance(cat, m, f, day.Add(250*time.Second))
	second := Advance(cat, first.Member, first.Fridge, day.Add(250*time.Second))
	if !reflect.DeepEqual(first.Member, second.Member) || !reflect.DeepEqual(first.Fridge, second.Fridge) {
		t.Errorf("re-advancing to the same instant changed state")
	}
	if len(second.Events) != 0 {
		t.Errorf("unexpected events: %v", second.Events)
	}
}

func TestAdvance_StarvationAndRecovery(t *testing.T) {
	cat := catalog.Default()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	m := testMember(EpochDay(day))
	f := Fridge{GalaxyBars: 0, WaterLiters: 10}

	// Breakfast and lunch both missed: crosses the starvation threshold.
	res := Advance(cat, m, f, day.Add(450*time.Second))
	if res.Member.MissedMeals != 2 {
		t.Fatalf("expected 2 missed meals, got %d", res.Member.MissedMeals)
	}
	if res.Member.Status != StatusStarving || !res.EnteredStarving {
		t.Fatalf("expected starvation, got %+v", res)
	}
	found := false
	for _, ev := range res.Events {
		if ev == "Ada is starving." {
			found = true
		}
	}
	if !found {
		t.Errorf("missing starvation event in %v", res.Events)
	}

	// Restock, roll to the next day: the first served meal recovers them.
	restocked := res.Fridge
	restocked.GalaxyBars = 10
	next := day.Add(24 * time.Hour)
	res2 := Advance(cat, res.Member, restocked, next.Add(12*time.Hour))
	if res2.Member.DayIndex != EpochDay(next) {
		t.Fatalf("day did not roll over")
	}
	if res2.Member.MissedMeals != 0 || res2.Member.Status != StatusNormal {
		t.Errorf("expected recovery, got %+v", res2.Member)
	}
	if res2.EnteredStarving {
		t.Error("recovery flagged as starvation")
	}
}

// A ship offline for three days still owes every intermediate day its meals
// and water; nothing may be skipped on the way to the current day.
func TestAdvance_MultiDayGapServesEveryDay(t *testing.T) {
	cat := catalog.Default()
	start := time.Date(2026, 3, 1, 0, 0, 1, 0, time.UTC)
	m := NewMember(cat, "Rin", 8, start)
	f := Fridge{GalaxyBars: 24, WaterLiters: 18}

	res := Advance(cat, m, f, start.Add(72*time.Hour-2*time.Second))
	if res.Member.DayIndex != EpochDay(start)+2 {
		t.Fatalf("day index = %d, want %d", res.Member.DayIndex, EpochDay(start)+2)
	}
	// Three complete days: 9 meals and 18 water servings.
	if res.Fridge.GalaxyBars != 15 {
		t.Errorf("bars left = %v, want 15", res.Fridge.GalaxyBars)
	}
	if want := inventory.RoundQty(18 - 18*cat.Crew.WaterLitersPerServing); res.Fridge.WaterLiters != want {
		t.Errorf("liters left = %v, want %v", res.Fridge.WaterLiters, want)
	}
	if res.Member.MissedMeals != 0 || res.Member.MissedWater != 0 {
		t.Errorf("well-fed member has misses: %+v", res.Member)
	}
	if res.Member.Status != StatusNormal {
		t.Errorf("status = %s", res.Member.Status)
	}
	if len(res.Events) != 0 {
		t.Errorf("routine multi-day servings should stay quiet, got %v", res.Events)
	}
}

func TestAdvance_MultiDayGapEmptyFridgeAccumulatesMisses(t *testing.T) {
	cat := catalog.Default()
	start := time.Date(2026, 3, 1, 0, 0, 1, 0, time.UTC)
	m := NewMember(cat, "Rin", 8, start)

	res := Advance(cat, m, Fridge{}, start.Add(72*time.Hour-2*time.Second))
	if res.Member.MissedWater != 18 {
		t.Errorf("missed water = %d, want 18", res.Member.MissedWater)
	}
	if res.Member.MissedMeals != 9 {
		t.Errorf("missed meals = %d, want 9", res.Member.MissedMeals)
	}
	if res.Member.Status != StatusDehydrated {
		t.Errorf("status = %s, want %s", res.Member.Status, StatusDehydrated)
	}
}

func TestAdvance_DehydrationWinsOverStarvation(t *testing.T) {
	cat := catalog.Default()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	m := testMember(EpochDay(day))

	res := Advance(cat, m, Fridge{}, day.Add(550*time.Second))
	if res.Member.MissedWater != 3 || res.Member.MissedMeals != 3 {
		t.Fatalf("unexpected counters: %+v", res.Member)
	}
	if res.Member.Status != StatusDehydrated {
		t.Errorf("expected dehydrated, got %s", res.Member.Status)
	}
}

func TestAdvance_RolloverRegeneratesSchedule(t *testing.T) {
	cat := catalog.Default()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	m := NewMember(cat, "Grace", 14, day)
	m.BreakfastServed = true
	m.WaterServed = 3

	next := day.Add(24 * time.Hour)
	res := Advance(cat, m, Fridge{GalaxyBars: 10, WaterLiters: 10}, next)
	if res.Member.DayIndex != EpochDay(next) {
		t.Fatalf("day index not advanced")
	}
	want := BuildSchedule(cat, m.ID, EpochDay(next), 14)
	if !reflect.DeepEqual(res.Member.Schedule, want) {
		t.Errorf("schedule not regenerated for new day")
	}
	if res.Member.BreakfastServed && res.Member.Schedule.BreakfastAt > 0 {
		t.Errorf("served flags not reset: %+v", res.Member)
	}
}

func TestFridgeLoad_ClampsToCapacity(t *testing.T) {
	cat := catalog.Default()
	f := Fridge{GalaxyBars: 20, WaterLiters: 10}

	f2, bars, liters := f.Load(cat, 10, 100)
	if bars != cat.Fridge.CapacityBars-20 {
		t.Errorf("accepted %v bars, want %v", bars, cat.Fridge.CapacityBars-20)
	}
	if liters != cat.Fridge.CapacityLiters-10 {
		t.Errorf("accepted %v liters, want %v", liters, cat.Fridge.CapacityLiters-10)
	}
	if f2.GalaxyBars != cat.Fridge.CapacityBars || f2.WaterLiters != cat.Fridge.CapacityLiters {
		t.Errorf("fridge over capacity: %+v", f2)
	}

	f3, bars, liters := f2.Load(cat, 1, 1)
	if bars != 0 || liters != 0 {
		t.Errorf("full fridge accepted rations: %v bars, %v L", bars, liters)
	}
	if f3 != f2 {
		t.Errorf("full fridge changed: %+v", f3)
	}
}
