package sim

import (
	"fmt"

	"astromine-sim/internal/inventory"
)

// BatteryUpgradePlan prices the next capacity step. Tier 0 is the stock
// battery; the cost of reaching tier t is linear*t + quadratic*t*t per
// resource line.
type BatteryUpgradePlan struct {
	Tier      int                `json:"tier"`
	NextTier  int                `json:"next_tier"`
	NextMax   float64            `json:"next_max_energy"`
	Cost      map[string]float64 `json:"cost"`
	Shortfall map[string]float64 `json:"shortfall,omitempty"`
}

// PlanBatteryUpgrade computes the next upgrade step for the current battery.
func (s *Simulator) PlanBatteryUpgrade() BatteryUpgradePlan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.planBatteryUpgradeLocked()
}

func (s *Simulator) planBatteryUpgradeLocked() BatteryUpgradePlan {
	bat := s.cat.Battery
	tier := 0
	if bat.StepMaxEnergy > 0 {
		tier = int((s.ship.MaxEnergy - bat.BaseMaxEnergy) / bat.StepMaxEnergy)
	}
	next := tier + 1

	cost := map[string]float64{}
	for _, line := range bat.Costs {
		t := float64(next)
		cost[line.Resource] = inventory.RoundQty(line.Linear*t + line.Quadratic*t*t)
	}
	plan := BatteryUpgradePlan{
		Tier:     tier,
		NextTier: next,
		NextMax:  bat.BaseMaxEnergy + bat.StepMaxEnergy*float64(next),
		Cost:     cost,
	}
	for res, qty := range cost {
		if have := s.ship.Inventory.Get(res); have < qty {
			if plan.Shortfall == nil {
				plan.Shortfall = map[string]float64{}
			}
			plan.Shortfall[res] = inventory.RoundQty(qty - have)
		}
	}
	return plan
}

// UpgradeBattery consumes the upgrade bill and raises max energy by one step.
// Rejected without side effects when materials are missing.
func (s *Simulator) UpgradeBattery() (BatteryUpgradePlan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	plan := s.planBatteryUpgradeLocked()
	if len(plan.Shortfall) > 0 {
		s.emit(fmt.Sprintf("Battery upgrade blocked: missing %s.", describeYield(s.cat, plan.Shortfall)))
		return plan, false
	}
	for res, qty := range plan.Cost {
		s.ship.Inventory = s.ship.Inventory.Sub(res, qty)
	}
	s.ship.MaxEnergy = plan.NextMax
	s.emit(fmt.Sprintf("Battery upgraded to tier %d (%.0f max energy).", plan.NextTier, plan.NextMax))
	return plan, true
}

// chargeOver accrues charging energy for elapsed seconds. Returns the second
// offset at which the battery reached full, or -1 when it did not. Callers
// hold the lock.
func (s *Simulator) chargeOver(seconds int64) int64 {
	if !s.ship.Charging || seconds <= 0 {
		return -1
	}
	rate := s.cat.Charging.EnergyPerSecond
	if rate <= 0 {
		return -1
	}
	missing := s.ship.MaxEnergy - s.ship.Energy
	gained := rate * float64(seconds)
	if gained < missing {
		s.ship.Energy = inventory.RoundQty(s.ship.Energy + gained)
		return -1
	}
	s.ship.Energy = s.ship.MaxEnergy
	full := int64(missing/rate) + 1
	if full > seconds {
		full = seconds
	}
	return full
}
