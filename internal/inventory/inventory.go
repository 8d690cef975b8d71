// Resource inventory map with fixed-precision quantities.
package inventory

import "math"

// Inventory maps resource ids to held quantities. Quantities are kept at four
// decimal places and never go negative; every transition that touches an
// inventory goes through RoundQty before storing a value.
type Inventory map[string]float64

// RoundQty normalizes a quantity: four decimal places, floored at zero.
func RoundQty(v float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return math.Round(v*10000) / 10000
}

// Clone returns an independent copy. Transitions operate copy-on-write so a
// rejected transition can hand back the caller's map untouched.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for k, v := range inv {
		out[k] = v
	}
	return out
}

// Get returns the held quantity for a resource, zero when absent.
func (inv Inventory) Get(resource string) float64 {
	return inv[resource]
}

// Has reports whether at least qty of the resource is held.
func (inv Inventory) Has(resource string, qty float64) bool {
	return inv[resource] >= qty
}

// Add returns a copy with qty added to the resource, rounded.
func (inv Inventory) Add(resource string, qty float64) Inventory {
	out := inv.Clone()
	out[resource] = RoundQty(out[resource] + qty)
	return out
}

// Sub returns a copy with qty removed from the resource, rounded and clamped
// at zero. Entries that reach zero are kept so snapshot rows stay stable.
func (inv Inventory) Sub(resource string, qty float64) Inventory {
	out := inv.Clone()
	out[resource] = RoundQty(out[resource] - qty)
	return out
}

// Normalized returns a copy with every quantity passed through RoundQty.
func (inv Inventory) Normalized() Inventory {
	out := make(Inventory, len(inv))
	for k, v := range inv {
		out[k] = RoundQty(v)
	}
	return out
}
