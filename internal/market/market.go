// Market pricing engine with supply-demand feedback.
//
// Selling pushes a product's demand multiplier down; the periodic tick cools
// it back toward the neutral 1.0 baseline. Price is always base price times
// demand, so the two stay consistent by construction.
package market

import (
	"fmt"
	"math"

	"astromine-sim/internal/catalog"
	"astromine-sim/internal/inventory"
)

// Quote is the live price/demand pair for one product.
type Quote struct {
	Price  float64 `json:"price"`
	Demand float64 `json:"demand"`
}

// State maps product ids to their live quotes.
type State map[string]Quote

// NewState seeds quotes at base price with neutral demand.
func NewState(cat *catalog.Catalog) State {
	st := make(State, len(cat.Products))
	for _, p := range cat.Products {
		st[p.ID] = Quote{Price: p.BasePrice, Demand: 1.0}
	}
	return st
}

// Clone returns an independent copy.
func (st State) Clone() State {
	out := make(State, len(st))
	for k, v := range st {
		out[k] = v
	}
	return out
}

// SaleResult is the outcome of one sale transition. On a blocked sale every
// field echoes the caller's state untouched.
type SaleResult struct {
	Succeeded        bool
	Inventory        inventory.Inventory
	Market           State
	Credits          float64
	InventoryChanged bool
	LogMessage       string
}

// ApplySale executes a single sale of qty units of productID. Pure transition:
// blocked sales mutate nothing and report why. The unit price is the pre-sale
// quote, so consecutive sales see non-increasing per-unit prices.
func ApplySale(cat *catalog.Catalog, inv inventory.Inventory, st State, credits float64, productID string, qty float64) SaleResult {
	blocked := SaleResult{Inventory: inv, Market: st, Credits: credits}

	prod := cat.Product(productID)
	if prod == nil {
		blocked.LogMessage = fmt.Sprintf("Sale blocked: %s is not tradable here.", productID)
		return blocked
	}
	if qty <= 0 {
		blocked.LogMessage = fmt.Sprintf("Sale blocked: invalid quantity for %s.", prod.Label)
		return blocked
	}
	if !inv.Has(productID, qty) {
		blocked.LogMessage = fmt.Sprintf("Sale blocked: not enough %s in cargo.", prod.Label)
		return blocked
	}

	quote, ok := st[productID]
	if !ok {
		quote = Quote{Price: prod.BasePrice, Demand: 1.0}
	}

	proceeds := qty * quote.Price

	nextMarket := st.Clone()
	nextMarket[productID] = adjustAfterSale(cat, prod, quote, qty)

	return SaleResult{
		Succeeded:        true,
		Inventory:        inv.Sub(productID, qty),
		Market:           nextMarket,
		Credits:          credits + proceeds,
		InventoryChanged: true,
		LogMessage:       fmt.Sprintf("Sold %g %s for %.2f cr.", qty, prod.Label, proceeds),
	}
}

// adjustAfterSale applies the saturation feedback: demand drops proportionally
// to the quantity sold and price tracks the new demand.
func adjustAfterSale(cat *catalog.Catalog, prod *catalog.Product, quote Quote, qty float64) Quote {
	demand := clamp(quote.Demand-qty*cat.Market.DemandImpactPerUnit, cat.Market.MinDemand, cat.Market.MaxDemand)
	return Quote{Demand: demand, Price: prod.BasePrice * demand}
}

// Tick cools every demand multiplier back toward 1.0, the way populations
// consume stockpiles between player visits. Belongs to the periodic tick, not
// to the sale transition. Returns the input state unchanged when seconds <= 0.
func Tick(cat *catalog.Catalog, st State, seconds float64) State {
	if seconds <= 0 {
		return st
	}
	step := cat.Market.RecoveryPerSecond * seconds
	out := make(State, len(st))
	for id, quote := range st {
		demand := quote.Demand
		if demand > 1.0 {
			demand = math.Max(1.0, demand-step)
		} else if demand < 1.0 {
			demand = math.Min(1.0, demand+step)
		}
		price := quote.Price
		if prod := cat.Product(id); prod != nil {
			price = prod.BasePrice * demand
		}
		out[id] = Quote{Demand: demand, Price: price}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
