package crew

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"astromine-sim/internal/catalog"
	"astromine-sim/internal/inventory"
)

// Status is a member's health state.
type Status string

const (
	StatusNormal     Status = "normal"
	StatusStarving   Status = "starving"
	StatusDehydrated Status = "dehydrated"
)

// Member is one crew member with their current-day serving state.
type Member struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	ShiftStartHour int         `json:"shift_start_hour"`
	DayIndex       int64       `json:"day_index"`
	Schedule       DaySchedule `json:"schedule"`

	BreakfastServed bool `json:"breakfast_served"`
	LunchServed     bool `json:"lunch_served"`
	DinnerServed    bool `json:"dinner_served"`
	WaterServed     int  `json:"water_served"`

	MissedMeals int    `json:"missed_meals"`
	MissedWater int    `json:"missed_water"`
	Status      Status `json:"status"`
}

// NewMember creates a member with a fresh schedule for the day containing now.
func NewMember(cat *catalog.Catalog, name string, shiftStartHour int, now time.Time) Member {
	id := uuid.NewString()
	day := EpochDay(now)
	return Member{
		ID:             id,
		Name:           name,
		ShiftStartHour: shiftStartHour,
		DayIndex:       day,
		Schedule:       BuildSchedule(cat, id, day, shiftStartHour),
		Status:         StatusNormal,
	}
}

// Fridge is the galley stock the crew draws from.
type Fridge struct {
	GalaxyBars  float64 `json:"galaxy_bars"`
	WaterLiters float64 `json:"water_liters"`
}

// Load moves rations into the fridge, clamped to catalog capacity. Returns
// the new fridge plus how much was actually accepted.
func (f Fridge) Load(cat *catalog.Catalog, bars, liters float64) (Fridge, float64, float64) {
	acceptBars := inventory.RoundQty(cat.Fridge.CapacityBars - f.GalaxyBars)
	if bars < acceptBars {
		acceptBars = inventory.RoundQty(bars)
	}
	acceptLiters := inventory.RoundQty(cat.Fridge.CapacityLiters - f.WaterLiters)
	if liters < acceptLiters {
		acceptLiters = inventory.RoundQty(liters)
	}
	if acceptBars < 0 {
		acceptBars = 0
	}
	if acceptLiters < 0 {
		acceptLiters = 0
	}
	f.GalaxyBars = inventory.RoundQty(f.GalaxyBars + acceptBars)
	f.WaterLiters = inventory.RoundQty(f.WaterLiters + acceptLiters)
	return f, acceptBars, acceptLiters
}

// AdvanceResult is the outcome of advancing one member to an instant.
type AdvanceResult struct {
	Member Member
	Fridge Fridge
	// Events holds log lines for missed servings and status changes.
	// Routine successful servings stay quiet.
	Events []string
	// EnteredStarving reports that the member newly crossed the starvation
	// threshold during this advance, which the caller treats as a failure.
	EnteredStarving bool
}

// Advance catches a member up to now: serves every water slot and meal the
// schedule says is due, drawing from the fridge, and updates miss counters
// and status. Each UTC day between the stored day index and now is finished
// out at end of day before the next one starts, so a gap spanning several
// days consumes (or misses) every scheduled serving instead of jumping
// straight to the current day. Rolling into a new day resets the served
// flags and regenerates the schedule for the new day index.
func Advance(cat *catalog.Catalog, m Member, f Fridge, now time.Time) AdvanceResult {
	res := AdvanceResult{Fridge: f}

	day := EpochDay(now)
	for m.DayIndex < day {
		serveDue(cat, &m, &res, m.Schedule.ExpectedAt(secondsPerDay-1))
		rollover(cat, &m, m.DayIndex+1)
	}
	if day != m.DayIndex {
		// The clock moved backwards; re-anchor without serving.
		rollover(cat, &m, day)
	}

	serveDue(cat, &m, &res, m.Schedule.ExpectedAt(SecondOfDay(now)))

	prev := m.Status
	m.Status = statusFor(cat, m)
	if m.Status != prev {
		switch m.Status {
		case StatusStarving:
			res.Events = append(res.Events, fmt.Sprintf("%s is starving.", m.Name))
			res.EnteredStarving = true
		case StatusDehydrated:
			res.Events = append(res.Events, fmt.Sprintf("%s is dehydrated.", m.Name))
		case StatusNormal:
			res.Events = append(res.Events, fmt.Sprintf("%s has recovered.", m.Name))
		}
	}

	res.Member = m
	return res
}

// rollover resets the serving state and regenerates the schedule for day.
func rollover(cat *catalog.Catalog, m *Member, day int64) {
	m.DayIndex = day
	m.Schedule = BuildSchedule(cat, m.ID, day, m.ShiftStartHour)
	m.BreakfastServed = false
	m.LunchServed = false
	m.DinnerServed = false
	m.WaterServed = 0
}

// serveDue serves everything exp says is outstanding, drawing from the fridge
// in res and accumulating misses on the member.
func serveDue(cat *catalog.Catalog, m *Member, res *AdvanceResult, exp Expectation) {
	for m.WaterServed < exp.Water {
		m.WaterServed++
		if res.Fridge.WaterLiters >= cat.Crew.WaterLitersPerServing {
			res.Fridge.WaterLiters = inventory.RoundQty(res.Fridge.WaterLiters - cat.Crew.WaterLitersPerServing)
			m.MissedWater = 0
		} else {
			m.MissedWater++
			res.Events = append(res.Events, fmt.Sprintf("%s missed a water serving: galley tank is dry.", m.Name))
		}
	}

	meals := []struct {
		label  string
		due    bool
		served *bool
	}{
		{"breakfast", exp.Breakfast, &m.BreakfastServed},
		{"lunch", exp.Lunch, &m.LunchServed},
		{"dinner", exp.Dinner, &m.DinnerServed},
	}
	for _, meal := range meals {
		if !meal.due || *meal.served {
			continue
		}
		*meal.served = true
		if res.Fridge.GalaxyBars >= 1 {
			res.Fridge.GalaxyBars = inventory.RoundQty(res.Fridge.GalaxyBars - 1)
			m.MissedMeals = 0
		} else {
			m.MissedMeals++
			res.Events = append(res.Events, fmt.Sprintf("%s missed %s: galley fridge is empty.", m.Name, meal.label))
		}
	}
}

// statusFor derives the member status from the miss counters. Dehydration
// wins over starvation when both thresholds are crossed.
func statusFor(cat *catalog.Catalog, m Member) Status {
	if m.MissedWater >= cat.Crew.MissedWaterDehydrated {
		return StatusDehydrated
	}
	if m.MissedMeals >= cat.Crew.MissedMealsStarving {
		return StatusStarving
	}
	return StatusNormal
}
