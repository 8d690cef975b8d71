package sim

import (
	"fmt"
	"time"

	"astromine-sim/internal/crew"
	"astromine-sim/internal/events"
	"astromine-sim/internal/market"
)

// CatchUp replays the gap between the stored cycle time and now in one call,
// without iterating the elapsed seconds in real time. Interrupting events are
// stamped at the simulated instant they would have happened (start of gap
// plus offset), so the log stays in causal order; the closing summary is
// stamped at the resolved now. A zero or negative gap is a no-op, which makes
// repeated calls idempotent.
func (s *Simulator) CatchUp(now time.Time) []events.EventRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	now = now.UTC()
	start := s.ship.CycleTimeSeconds
	gap := now.Unix() - start
	if gap <= 0 {
		return nil
	}

	var batch []events.EventRow
	at := func(offset int64) time.Time { return time.Unix(start+offset, 0).UTC() }

	s.ship.Market = market.Tick(s.cat, s.ship.Market, float64(gap))

	if s.ship.Charging && s.ship.StationDistanceKM > s.cat.Charging.RangeKM {
		// The recorded position was already out of range, so the charge
		// dropped right at the start of the gap.
		s.ship.Charging = false
		batch = append(batch, s.pushEvent("Charging stopped: station out of range.", at(1)))
	} else if full := s.chargeOver(gap); full >= 0 {
		s.ship.Charging = false
		batch = append(batch, s.pushEvent("Battery fully charged.", at(full)))
	}

	crewAt := now.Add(-time.Second)
	for i := range s.ship.Crew {
		res := crew.Advance(s.cat, s.ship.Crew[i], s.ship.Fridge, now)
		s.ship.Crew[i] = res.Member
		s.ship.Fridge = res.Fridge
		for _, msg := range res.Events {
			batch = append(batch, s.pushEvent(msg, crewAt))
		}
		if res.EnteredStarving {
			s.applyFailure(events.FailureStarvation, crewAt)
		}
	}

	batch = append(batch, s.pushEvent(
		fmt.Sprintf("Offline catch-up complete: replayed %d seconds.", gap), now))

	s.ship.CycleTimeSeconds = now.Unix()

	_ = s.writeRows(batch)
	if s.snapshotWriter != nil {
		_ = s.snapshotWriter.WriteSnapshot(s.snapshotLocked(now))
	}
	return batch
}
