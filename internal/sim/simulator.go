// Simulator orchestrating ship state and simulation ticks
package sim

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"astromine-sim/internal/catalog"
	"astromine-sim/internal/crew"
	"astromine-sim/internal/detrand"
	"astromine-sim/internal/events"
	"astromine-sim/internal/inventory"
	"astromine-sim/internal/market"
	"astromine-sim/internal/process"
	"astromine-sim/internal/world"
)

// EventWriter is an interface to support different output writers.
type EventWriter interface {
	Write(events.EventRow) error
}

// SnapshotWriter handles full runtime snapshot rows.
type SnapshotWriter interface {
	WriteSnapshot(events.SnapshotRow) error
}

// FailureWriter handles failure report rows.
type FailureWriter interface {
	WriteFailure(events.FailureReportRow) error
}

// Optional: writers can also support batch mode
type batchEventWriter interface {
	WriteBatch([]events.EventRow) error
}

// Optional: failure writers may support batch mode
type batchFailureWriter interface {
	WriteFailures([]events.FailureReportRow) error
}

// Ship is the full mutable simulation state for one vessel.
type Ship struct {
	ID                string
	SectorID          string
	Credits           float64
	Energy            float64
	MaxEnergy         float64
	Charging          bool
	Docked            bool
	StationDistanceKM float64
	// CycleTimeSeconds is the unix second of the last simulated tick; the
	// offline catch-up replays the distance between it and wall-clock now.
	CycleTimeSeconds int64

	Inventory inventory.Inventory
	Market    market.State
	Crew      []crew.Member
	Fridge    crew.Fridge

	// Ledgers keeps one depletion ledger per visited sector, so switching
	// back restores the sector exactly as it was left.
	Ledgers map[string]*world.Ledger

	FailureCount   int
	RepairCount    int
	Log            []events.EventRow
	FailureReports []events.FailureReportRow
}

// Simulator owns a Ship and applies every transition under one lock, keeping
// tick updates and user dispatches from interleaving.
type Simulator struct {
	cat            *catalog.Catalog
	writer         EventWriter
	snapshotWriter SnapshotWriter
	failureWriter  FailureWriter
	tickInterval   time.Duration

	mu   sync.Mutex
	ship Ship
	rng  *detrand.Source
	now  func() time.Time
}

// NewSimulator initializes a ship in the default sector with the catalog's
// base loadout. Snapshot and failure writers may be nil.
func NewSimulator(shipID string, cat *catalog.Catalog, writer EventWriter, sWriter SnapshotWriter, fWriter FailureWriter, tickInterval time.Duration) *Simulator {
	s := &Simulator{
		cat:            cat,
		writer:         writer,
		snapshotWriter: sWriter,
		failureWriter:  fWriter,
		tickInterval:   tickInterval,
		rng:            detrand.New(detrand.Seed(shipID)),
		now:            time.Now,
	}
	s.ship = Ship{
		ID:               shipID,
		SectorID:         world.DefaultSectorID,
		Credits:          0,
		Energy:           cat.Battery.BaseMaxEnergy,
		MaxEnergy:        cat.Battery.BaseMaxEnergy,
		Docked:           true,
		CycleTimeSeconds: s.now().UTC().Unix(),
		Inventory:        inventory.Inventory{},
		Market:           market.NewState(cat),
		Fridge:           crew.Fridge{},
		Ledgers:          map[string]*world.Ledger{},
	}
	s.ensureLedger(world.DefaultSectorID)
	return s
}

// ensureLedger returns the ledger for a sector, creating it on first visit.
// Callers hold the lock.
func (s *Simulator) ensureLedger(sectorID string) *world.Ledger {
	if l, ok := s.ship.Ledgers[sectorID]; ok {
		return l
	}
	sector := s.cat.Sector(sectorID)
	if sector == nil {
		return nil
	}
	l := world.NewLedger(sector)
	s.ship.Ledgers[sectorID] = l
	return l
}

// pushEvent appends a log entry and returns the row for writer fan-out.
// Callers hold the lock.
func (s *Simulator) pushEvent(message string, at time.Time) events.EventRow {
	row := events.NewEvent(s.ship.ID, message, at)
	s.ship.Log = events.PushLog(s.ship.Log, row)
	return row
}

// writeRows fans event rows out to the writer, batching when supported.
func (s *Simulator) writeRows(rows []events.EventRow) error {
	if s.writer == nil || len(rows) == 0 {
		return nil
	}
	if bw, ok := s.writer.(batchEventWriter); ok {
		return bw.WriteBatch(rows)
	}
	for _, row := range rows {
		if err := s.writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// RunProcess executes one production recipe by id and logs the outcome.
func (s *Simulator) RunProcess(processID string) process.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	def := s.cat.Process(processID)
	if def == nil {
		res := process.Result{Inventory: s.ship.Inventory, Energy: s.ship.Energy}
		res.LogMessage = fmt.Sprintf("Unknown process %q.", processID)
		s.emit(res.LogMessage)
		return res
	}

	res := process.Execute(s.cat, process.State{
		Inventory:         s.ship.Inventory,
		Energy:            s.ship.Energy,
		Docked:            s.ship.Docked,
		StationDistanceKM: s.ship.StationDistanceKM,
	}, def)
	if res.Succeeded {
		s.ship.Inventory = res.Inventory
		s.ship.Energy = res.Energy
	}
	if res.LogMessage != "" {
		s.emit(res.LogMessage)
	}
	return res
}

// SellProduct sells qty units on the dynamic market and logs the outcome.
func (s *Simulator) SellProduct(productID string, qty float64) market.SaleResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := market.ApplySale(s.cat, s.ship.Inventory, s.ship.Market, s.ship.Credits, productID, qty)
	if res.Succeeded {
		s.ship.Inventory = res.Inventory
		s.ship.Market = res.Market
		s.ship.Credits = res.Credits
	}
	if res.LogMessage != "" {
		s.emit(res.LogMessage)
	}
	return res
}

// MineTarget rolls a fresh target in the current sector, extracts its yield
// and records the depletion. A risk roll above the target's rating triggers a
// combat failure and an emergency repair.
func (s *Simulator) MineTarget() world.Target {
	s.mu.Lock()
	defer s.mu.Unlock()

	sector := s.cat.Sector(s.ship.SectorID)
	ledger := s.ensureLedger(s.ship.SectorID)
	if sector == nil || ledger == nil {
		s.emit(fmt.Sprintf("Mining aborted: unknown sector %q.", s.ship.SectorID))
		return world.Target{}
	}

	target := world.GenerateTarget(s.rng, s.cat, sector)
	for res, qty := range target.ExpectedYield {
		s.ship.Inventory = s.ship.Inventory.Add(res, qty)
	}
	ledger.RecordTargetDepleted(target.Depletion())
	s.emit(fmt.Sprintf("Extracted %s from a %s in %s (%d targets remain).",
		describeYield(s.cat, target.ExpectedYield), target.Kind, target.ZoneID, ledger.RemainingCount()))

	if s.rng.Float64() < target.RiskRating {
		s.applyFailure(events.FailureCombat, s.now().UTC())
	}
	return target
}

// RecordTargetDepleted applies an externally observed depletion to the
// current sector's ledger.
func (s *Simulator) RecordTargetDepleted(t world.TargetDepleted) world.RecordResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	ledger := s.ensureLedger(s.ship.SectorID)
	if ledger == nil {
		return world.RecordResult{}
	}
	res := ledger.RecordTargetDepleted(t)
	if res.Recorded {
		s.emit(fmt.Sprintf("Target %s depleted in %s (%d targets remain).",
			t.TargetID, t.ZoneID, ledger.RemainingCount()))
	}
	return res
}

// SwitchSector moves the ship to another sector, keeping the old ledger.
func (s *Simulator) SwitchSector(sectorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cat.Sector(sectorID) == nil {
		return fmt.Errorf("unknown sector %q", sectorID)
	}
	if sectorID == s.ship.SectorID {
		return nil
	}
	s.ship.SectorID = sectorID
	s.ensureLedger(sectorID)
	s.emit(fmt.Sprintf("Jumped to sector %s.", sectorID))
	return nil
}

// LoadFridge moves galaxy bars and water from cargo into the galley fridge,
// clamped to fridge capacity.
func (s *Simulator) LoadFridge(bars, liters float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bars > s.ship.Inventory.Get("galaxyBar") {
		bars = s.ship.Inventory.Get("galaxyBar")
	}
	if liters > s.ship.Inventory.Get("water") {
		liters = s.ship.Inventory.Get("water")
	}
	next, tookBars, tookLiters := s.ship.Fridge.Load(s.cat, bars, liters)
	if tookBars == 0 && tookLiters == 0 {
		s.emit("Fridge is already full.")
		return
	}
	s.ship.Fridge = next
	s.ship.Inventory = s.ship.Inventory.Sub("galaxyBar", tookBars).Sub("water", tookLiters)
	s.emit(fmt.Sprintf("Stocked the galley with %g bars and %g L of water.", tookBars, tookLiters))
}

// HireCrew adds a member with a fresh schedule for today.
func (s *Simulator) HireCrew(name string, shiftStartHour int) crew.Member {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := crew.NewMember(s.cat, name, shiftStartHour, s.now().UTC())
	s.ship.Crew = append(s.ship.Crew, m)
	s.emit(fmt.Sprintf("%s joined the crew (shift starts %02d:00).", name, shiftStartHour))
	return m
}

// ToggleCharging flips station charging on or off and returns the new state.
// Switching on outside charging range is rejected.
func (s *Simulator) ToggleCharging() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ship.Charging {
		s.ship.Charging = false
		s.emit("Charging stopped.")
		return false
	}
	if s.ship.StationDistanceKM > s.cat.Charging.RangeKM {
		s.emit(fmt.Sprintf("Charging unavailable: station is %.1f km away (max %.1f km).",
			s.ship.StationDistanceKM, s.cat.Charging.RangeKM))
		return false
	}
	s.ship.Charging = true
	s.emit("Charging started.")
	return true
}

// SetCourse updates docking state and station distance. Moving out of
// charging range interrupts an active charge.
func (s *Simulator) SetCourse(docked bool, stationDistanceKM float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ship.Docked = docked
	s.ship.StationDistanceKM = stationDistanceKM
	if s.ship.Charging && stationDistanceKM > s.cat.Charging.RangeKM {
		s.ship.Charging = false
		s.emit("Charging stopped: station out of range.")
	}
}

// emit pushes a log entry stamped now and writes it immediately. Callers
// hold the lock.
func (s *Simulator) emit(message string) {
	row := s.pushEvent(message, s.now().UTC())
	_ = s.writeRows([]events.EventRow{row})
}

// describeYield renders a yield map as "2 copper ore, 1 iron ore".
func describeYield(cat *catalog.Catalog, yield map[string]float64) string {
	out := ""
	for i, res := range sortedKeys(yield) {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%g %s", yield[res], cat.ResourceLabel(res))
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot builds the JSON-serializable runtime snapshot.
func (s *Simulator) Snapshot() events.SnapshotRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(s.now().UTC())
}

func (s *Simulator) snapshotLocked(at time.Time) events.SnapshotRow {
	quotes := make(map[string]events.QuoteRow, len(s.ship.Market))
	for id, q := range s.ship.Market {
		quotes[id] = events.QuoteRow{Price: q.Price, Demand: q.Demand}
	}
	crewRows := make([]events.CrewStatusRow, 0, len(s.ship.Crew))
	for _, m := range s.ship.Crew {
		crewRows = append(crewRows, events.CrewStatusRow{
			MemberID:        m.ID,
			Name:            m.Name,
			Status:          string(m.Status),
			BreakfastServed: m.BreakfastServed,
			LunchServed:     m.LunchServed,
			DinnerServed:    m.DinnerServed,
			WaterServed:     m.WaterServed,
		})
	}
	remaining := 0
	if l := s.ship.Ledgers[s.ship.SectorID]; l != nil {
		remaining = l.RemainingCount()
	}
	logCopy := make([]events.EventRow, len(s.ship.Log))
	copy(logCopy, s.ship.Log)

	return events.SnapshotRow{
		ShipID:            s.ship.ID,
		SectorID:          s.ship.SectorID,
		Credits:           s.ship.Credits,
		Energy:            s.ship.Energy,
		MaxEnergy:         s.ship.MaxEnergy,
		Charging:          s.ship.Charging,
		Docked:            s.ship.Docked,
		StationDistanceKM: s.ship.StationDistanceKM,
		CycleTimeSeconds:  s.ship.CycleTimeSeconds,
		Inventory:         s.ship.Inventory.Clone().Normalized(),
		Market:            quotes,
		Crew:              crewRows,
		FridgeBars:        s.ship.Fridge.GalaxyBars,
		FridgeWaterLiters: s.ship.Fridge.WaterLiters,
		WorldRemaining:    remaining,
		FailureCount:      s.ship.FailureCount,
		Log:               logCopy,
		Timestamp:         at,
	}
}

// CrewHealth returns per-member status rows for the admin surface.
func (s *Simulator) CrewHealth() []events.CrewStatusRow {
	return s.Snapshot().Crew
}

// FailureReports returns a copy of the retained failure reports.
func (s *Simulator) FailureReports() []events.FailureReportRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]events.FailureReportRow, len(s.ship.FailureReports))
	copy(out, s.ship.FailureReports)
	return out
}
