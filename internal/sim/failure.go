package sim

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"astromine-sim/internal/events"
	"astromine-sim/internal/inventory"
)

// ReportFailure applies an emergency repair for a containment or crew-health
// failure and returns the report.
func (s *Simulator) ReportFailure(reason string) events.FailureReportRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyFailure(reason, s.now().UTC())
}

// applyFailure charges the penalties, consumes the repair bill and appends a
// capped report. Penalties grow linearly with the session repair count, so
// repeated failures are always at least as expensive as the previous one.
// Callers hold the lock.
func (s *Simulator) applyFailure(reason string, at time.Time) events.FailureReportRow {
	fail := s.cat.Failure

	creditsPenalty := fail.BaseCreditsPenalty + fail.CreditsPenaltyPerRepair*float64(s.ship.RepairCount)
	energyPenalty := fail.BaseEnergyPenalty + fail.EnergyPenaltyPerRepair*float64(s.ship.RepairCount)

	s.ship.Credits -= creditsPenalty
	if s.ship.Credits < 0 {
		s.ship.Credits = 0
	}
	s.ship.Energy -= energyPenalty
	if s.ship.Energy < 0 {
		s.ship.Energy = 0
	}

	// The repair proceeds even when materials are short; every missing unit
	// is recorded and the report is tagged degraded.
	var shortages []events.MaterialShortage
	next := s.ship.Inventory.Clone()
	for _, res := range sortedKeys(fail.RepairBill) {
		required := fail.RepairBill[res]
		available := next.Get(res)
		if available < required {
			shortages = append(shortages, events.MaterialShortage{
				Resource: res,
				Missing:  inventory.RoundQty(required - available),
			})
			next[res] = 0
			continue
		}
		next[res] = inventory.RoundQty(available - required)
	}
	s.ship.Inventory = next

	s.ship.RepairCount++
	s.ship.FailureCount++

	report := events.FailureReportRow{
		ID:                  uuid.NewString(),
		ShipID:              s.ship.ID,
		Reason:              reason,
		RepairCount:         s.ship.RepairCount,
		CreditsPenalty:      creditsPenalty,
		EnergyPenalty:       energyPenalty,
		Shortages:           shortages,
		HadMaterialShortage: len(shortages) > 0,
		TimestampMS:         at.UnixMilli(),
	}
	s.ship.FailureReports = events.PushFailureReport(s.ship.FailureReports, report)

	msg := fmt.Sprintf("Emergency repair after %s: -%.0f cr, -%.0f energy.", reason, creditsPenalty, energyPenalty)
	if report.HadMaterialShortage {
		msg += " Repair materials ran short."
	}
	row := s.pushEvent(msg, at)
	_ = s.writeRows([]events.EventRow{row})
	if s.failureWriter != nil {
		_ = s.failureWriter.WriteFailure(report)
	}
	return report
}
