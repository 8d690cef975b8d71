// World target depletion ledger with population-floor replenishment.
//
// Each sector keeps its own ledger of depleted target ids in depletion order.
// A sliding-window cap guarantees the sector never runs dry: when marking one
// more target depleted would push the active population below the floor, the
// oldest depleted ids are evicted and count as replenished.
package world

import (
	"math"

	"astromine-sim/internal/catalog"
)

// DefaultSectorID is the starting sector whose ledger still answers to the
// unsuffixed legacy session id from early save files.
const DefaultSectorID = "sol-belt"

const legacySessionID = "world-session"

// SessionID returns the persistence key for a sector's ledger.
func SessionID(sectorID string) string {
	return "world-session-" + sectorID
}

// SessionIDs returns every key a sector's ledger may be stored under, the
// canonical id first. Only the default sector carries the legacy fallback.
func SessionIDs(sectorID string) []string {
	ids := []string{SessionID(sectorID)}
	if sectorID == DefaultSectorID {
		ids = append(ids, legacySessionID)
	}
	return ids
}

// MinActiveTargets computes the population floor for a sector size.
func MinActiveTargets(total int) int {
	floor := int(math.Floor(float64(total) * 0.45))
	if floor < 15 {
		floor = 15
	}
	if floor > total {
		floor = total
	}
	return floor
}

// TargetDepleted is the payload describing one depleted target.
type TargetDepleted struct {
	TargetID      string             `json:"target_id"`
	ClassID       string             `json:"class_id"`
	Kind          string             `json:"kind"`
	ZoneID        string             `json:"zone_id"`
	RiskRating    float64            `json:"risk_rating"`
	ExpectedYield map[string]float64 `json:"expected_yield"`
}

// Ledger is one sector's depletion bookkeeping.
type Ledger struct {
	SessionID      string         `json:"session_id"`
	SectorID       string         `json:"sector_id"`
	TotalTargets   int            `json:"total_targets"`
	DepletedIDs    []string       `json:"depleted_ids"` // oldest first
	DestroyedCount int            `json:"destroyed_count"`
	ByZone         map[string]int `json:"by_zone"`
	ByClass        map[string]int `json:"by_class"`
	VisitedZones   map[string]bool `json:"visited_zones"`

	depleted map[string]bool
}

// NewLedger initializes an empty ledger for a sector.
func NewLedger(sector *catalog.SectorDefinition) *Ledger {
	return &Ledger{
		SessionID:    SessionID(sector.ID),
		SectorID:     sector.ID,
		TotalTargets: sector.TotalTargets,
		ByZone:       map[string]int{},
		ByClass:      map[string]int{},
		VisitedZones: map[string]bool{},
		depleted:     map[string]bool{},
	}
}

// RecordResult reports what one depletion call changed.
type RecordResult struct {
	Recorded bool
	// Replenished lists target ids evicted from the depleted window to keep
	// the active population at or above the floor.
	Replenished []string
}

// RecordTargetDepleted marks a target depleted. Recording the same target id
// twice within a session is ignored entirely: no counter moves, no eviction
// runs. After appending, the oldest entries are evicted until the active
// count is back at or above the floor.
func (l *Ledger) RecordTargetDepleted(t TargetDepleted) RecordResult {
	if l.depleted == nil {
		l.rebuildIndex()
	}
	if l.depleted[t.TargetID] {
		return RecordResult{}
	}

	l.depleted[t.TargetID] = true
	l.DepletedIDs = append(l.DepletedIDs, t.TargetID)
	l.DestroyedCount++
	l.ByZone[t.ZoneID]++
	l.ByClass[t.ClassID]++
	l.VisitedZones[t.ZoneID] = true

	res := RecordResult{Recorded: true}
	maxDepleted := l.TotalTargets - MinActiveTargets(l.TotalTargets)
	for len(l.DepletedIDs) > maxDepleted {
		oldest := l.DepletedIDs[0]
		l.DepletedIDs = l.DepletedIDs[1:]
		delete(l.depleted, oldest)
		res.Replenished = append(res.Replenished, oldest)
	}
	return res
}

// IsDepleted reports whether a target id is currently in the depleted window.
func (l *Ledger) IsDepleted(targetID string) bool {
	if l.depleted == nil {
		l.rebuildIndex()
	}
	return l.depleted[targetID]
}

// RemainingCount is the number of active (non-depleted) targets.
func (l *Ledger) RemainingCount() int {
	return l.TotalTargets - len(l.DepletedIDs)
}

// rebuildIndex restores the lookup set after JSON hydration, which only
// round-trips the exported fields.
func (l *Ledger) rebuildIndex() {
	l.depleted = make(map[string]bool, len(l.DepletedIDs))
	for _, id := range l.DepletedIDs {
		l.depleted[id] = true
	}
	if l.ByZone == nil {
		l.ByZone = map[string]int{}
	}
	if l.ByClass == nil {
		l.ByClass = map[string]int{}
	}
	if l.VisitedZones == nil {
		l.VisitedZones = map[string]bool{}
	}
}
