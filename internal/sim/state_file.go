// Ship state persistence between runs
package sim

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"astromine-sim/internal/market"
	"astromine-sim/internal/world"
)

// RestoreStateFile loads persisted ship state from path. A missing file is
// not an error; the simulator keeps its fresh starting state. The restored
// CycleTimeSeconds is what CatchUp replays against.
func (s *Simulator) RestoreStateFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var ship Ship
	if err := json.Unmarshal(data, &ship); err != nil {
		return err
	}
	if ship.Ledgers == nil {
		ship.Ledgers = map[string]*world.Ledger{}
	}
	// Older saves keyed ledgers by session id rather than sector id. Adopt
	// those entries under the sector key; for the default sector this also
	// consults the unsuffixed legacy session id.
	for _, sector := range s.cat.Sectors {
		if _, ok := ship.Ledgers[sector.ID]; ok {
			continue
		}
		for _, key := range world.SessionIDs(sector.ID) {
			if l, ok := ship.Ledgers[key]; ok {
				ship.Ledgers[sector.ID] = l
				delete(ship.Ledgers, key)
				break
			}
		}
	}
	if ship.Market == nil {
		ship.Market = market.NewState(s.cat)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ship = ship
	s.ensureLedger(ship.SectorID)
	return nil
}

// SaveStateFile writes the current ship state to path as indented JSON.
func (s *Simulator) SaveStateFile(path string) error {
	s.mu.Lock()
	data, err := json.MarshalIndent(s.ship, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
