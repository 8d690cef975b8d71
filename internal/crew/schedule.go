// Deterministic daily life-support schedules.
//
// Every crew member gets a per-day schedule of discrete water servings plus
// three meal anchors. Slot jitter comes from a hash of (member id, day index,
// slot index), never from a stateful RNG, so the schedule for any day can be
// regenerated bit-identically during replays and tests.
package crew

import (
	"math"
	"sort"
	"time"

	"astromine-sim/internal/catalog"
	"astromine-sim/internal/detrand"
)

const secondsPerDay = 86400

// jitterWindowFraction is the share of the inter-slot spacing that jitter may
// cover (±half of it around the base slot).
const jitterWindowFraction = 0.72

// DaySchedule holds one member's serving times for a single UTC day, in
// seconds of day. WaterSlots are strictly ascending.
type DaySchedule struct {
	WaterSlots  []int `json:"water_slots"`
	BreakfastAt int   `json:"breakfast_at"`
	LunchAt     int   `json:"lunch_at"`
	DinnerAt    int   `json:"dinner_at"`
}

// BuildSchedule generates the schedule for a member and day index.
func BuildSchedule(cat *catalog.Catalog, memberID string, dayIndex int64, shiftStartHour int) DaySchedule {
	n := int(math.Round(cat.Crew.WaterLitersPerDay / cat.Crew.WaterLitersPerServing))
	if n < 1 {
		n = 1
	}

	spacing := float64(secondsPerDay) / float64(n)
	slots := make([]int, n)
	for i := 0; i < n; i++ {
		base := spacing*float64(i) + spacing/2
		jitter := (detrand.HashString01(memberID, uint64(dayIndex), uint64(i)) - 0.5) * jitterWindowFraction * spacing
		slot := int(base + jitter)
		if slot < 0 {
			slot = 0
		}
		if slot > secondsPerDay-1 {
			slot = secondsPerDay - 1
		}
		slots[i] = slot
	}
	sort.Ints(slots)
	// Nudge collisions forward by one second to keep the order strict.
	for i := 1; i < len(slots); i++ {
		if slots[i] <= slots[i-1] {
			slots[i] = slots[i-1] + 1
		}
	}

	wake := ((shiftStartHour-cat.Crew.WakeOffsetHours)%24 + 24) % 24 * 3600
	return DaySchedule{
		WaterSlots:  slots,
		BreakfastAt: (wake + cat.Crew.BreakfastOffsetSec) % secondsPerDay,
		LunchAt:     (wake + cat.Crew.LunchOffsetSec) % secondsPerDay,
		DinnerAt:    (wake + cat.Crew.DinnerOffsetSec) % secondsPerDay,
	}
}

// Expectation is what the schedule says should have been served by an instant.
type Expectation struct {
	Water     int
	Breakfast bool
	Lunch     bool
	Dinner    bool
}

// ExpectedAt evaluates the schedule at a second-of-UTC-day. Water count is the
// number of slots at or before the instant; meal flags latch once the anchor
// has passed.
func (s DaySchedule) ExpectedAt(secOfDay int) Expectation {
	exp := Expectation{
		Breakfast: secOfDay >= s.BreakfastAt,
		Lunch:     secOfDay >= s.LunchAt,
		Dinner:    secOfDay >= s.DinnerAt,
	}
	for _, slot := range s.WaterSlots {
		if slot > secOfDay {
			break
		}
		exp.Water++
	}
	return exp
}

// EpochDay returns the UTC day index for an instant.
func EpochDay(t time.Time) int64 {
	return t.UTC().Unix() / secondsPerDay
}

// SecondOfDay returns the second within the UTC day for an instant.
func SecondOfDay(t time.Time) int {
	return int(t.UTC().Unix() % secondsPerDay)
}
