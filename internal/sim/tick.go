package sim

import (
	"context"
	"time"

	"astromine-sim/internal/crew"
	"astromine-sim/internal/events"
	"astromine-sim/internal/logging"
	"astromine-sim/internal/market"
)

// Run starts the simulation loop and stops when the context is done.
func (s *Simulator) Run(ctx context.Context) {
	log := logging.FromContext(ctx)
	log.Info("starting simulator", "tick_interval", s.tickInterval)
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.tick(ctx)
		case <-ctx.Done():
			log.Info("stopping simulator")
			return
		}
	}
}

// tick advances the simulation to wall-clock now and fans the results out.
func (s *Simulator) tick(ctx context.Context) {
	log := logging.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	elapsed := now.Unix() - s.ship.CycleTimeSeconds
	if elapsed <= 0 {
		return
	}

	var batch []events.EventRow

	// Market demand cools toward neutral over the elapsed seconds.
	s.ship.Market = market.Tick(s.cat, s.ship.Market, float64(elapsed))

	// Charging: out-of-range interrupts, otherwise energy accrues.
	if s.ship.Charging && s.ship.StationDistanceKM > s.cat.Charging.RangeKM {
		s.ship.Charging = false
		batch = append(batch, s.pushEvent("Charging stopped: station out of range.", now))
	} else if full := s.chargeOver(elapsed); full >= 0 {
		s.ship.Charging = false
		batch = append(batch, s.pushEvent("Battery fully charged.", now))
	}

	// Crew life support: serve everything due since the last tick.
	for i := range s.ship.Crew {
		res := crew.Advance(s.cat, s.ship.Crew[i], s.ship.Fridge, now)
		s.ship.Crew[i] = res.Member
		s.ship.Fridge = res.Fridge
		for _, msg := range res.Events {
			batch = append(batch, s.pushEvent(msg, now))
		}
		if res.EnteredStarving {
			s.applyFailure(events.FailureStarvation, now)
		}
	}

	s.ship.CycleTimeSeconds = now.Unix()

	if err := s.writeRows(batch); err != nil {
		log.Error("event write failed", "err", err)
	}
	if s.snapshotWriter != nil {
		if err := s.snapshotWriter.WriteSnapshot(s.snapshotLocked(now)); err != nil {
			log.Error("snapshot write failed", "err", err)
		}
	}
}
