// Process execution engine: validates and applies one production recipe.
package process

import (
	"fmt"
	"sort"

	"astromine-sim/internal/catalog"
	"astromine-sim/internal/inventory"
)

// State is the slice of ship state a process transition reads and writes.
type State struct {
	Inventory         inventory.Inventory
	Energy            float64
	Docked            bool
	StationDistanceKM float64
}

// Result is the outcome of one execution attempt. On failure the inventory
// and energy are the caller's values, untouched.
type Result struct {
	Succeeded        bool
	Inventory        inventory.Inventory
	Energy           float64
	InventoryChanged bool
	LogMessage       string
}

// Execute runs one production recipe against the given state. Pure: the
// input state is never mutated and identical inputs always yield identical
// results. A nil definition is a silent no-op.
func Execute(cat *catalog.Catalog, st State, def *catalog.ProcessDefinition) Result {
	noop := Result{Inventory: st.Inventory, Energy: st.Energy}
	if def == nil {
		return noop
	}

	if def.RequireDocked && !st.Docked {
		noop.LogMessage = fmt.Sprintf("%s failed: ship is not docked.", def.Label)
		return noop
	}
	if def.MaxStationDistanceKM > 0 && st.StationDistanceKM > def.MaxStationDistanceKM {
		noop.LogMessage = fmt.Sprintf("%s failed: station is %.1f km away (max %.1f km).",
			def.Label, st.StationDistanceKM, def.MaxStationDistanceKM)
		return noop
	}
	for _, res := range sortedKeys(def.Inputs) {
		if !st.Inventory.Has(res, def.Inputs[res]) {
			noop.LogMessage = fmt.Sprintf("%s failed: insufficient %s.", def.Label, cat.ResourceLabel(res))
			return noop
		}
	}
	if st.Energy < def.EnergyCost {
		noop.LogMessage = fmt.Sprintf("%s failed: not enough energy (%.1f needed).", def.Label, def.EnergyCost)
		return noop
	}

	next := st.Inventory.Clone()
	for res, qty := range def.Inputs {
		next[res] = inventory.RoundQty(next[res] - qty)
	}
	for res, qty := range def.Outputs {
		next[res] = inventory.RoundQty(next[res] + qty)
	}

	return Result{
		Succeeded:        true,
		Inventory:        next,
		Energy:           st.Energy - def.EnergyCost,
		InventoryChanged: true,
		LogMessage: fmt.Sprintf("%s converted %s into %s.",
			def.Label, describe(cat, def.Inputs), describe(cat, def.Outputs)),
	}
}

// describe renders a quantity map as "1 water ice, 2 regolith" with stable
// ordering so log lines are reproducible.
func describe(cat *catalog.Catalog, quantities map[string]float64) string {
	out := ""
	for i, res := range sortedKeys(quantities) {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%g %s", quantities[res], cat.ResourceLabel(res))
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
