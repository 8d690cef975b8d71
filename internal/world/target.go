package world

import (
	"sort"

	"github.com/google/uuid"

	"astromine-sim/internal/catalog"
	"astromine-sim/internal/detrand"
	"astromine-sim/internal/inventory"
)

// Target is one minable object offered to the player.
type Target struct {
	ID            string             `json:"id"`
	ClassID       string             `json:"class_id"`
	Kind          string             `json:"kind"`
	ZoneID        string             `json:"zone_id"`
	RiskRating    float64            `json:"risk_rating"`
	ExpectedYield map[string]float64 `json:"expected_yield"`
}

// GenerateTarget rolls a new target for a sector: a zone is picked uniformly,
// then the class by the zone's weights and the risk within the zone's band.
// Kind and per-class yields come from the catalog; yield scales with risk so
// dangerous targets pay better.
func GenerateTarget(rng *detrand.Source, cat *catalog.Catalog, sector *catalog.SectorDefinition) Target {
	zone := sector.Zones[rng.Intn(len(sector.Zones))]

	classes := make([]string, 0, len(zone.ClassWeights))
	for class := range zone.ClassWeights {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	weights := make([]float64, len(classes))
	for i, class := range classes {
		weights[i] = zone.ClassWeights[class]
	}
	classID := classes[rng.WeightedIndex(weights)]

	risk := rng.Range(zone.RiskMin, zone.RiskMax)
	richness := 0.5 + risk + rng.Range(0, 0.5)

	kind := "asteroid"
	yield := map[string]float64{}
	if class := cat.Class(classID); class != nil {
		kind = class.Kind
		for res, base := range class.Yields {
			yield[res] = inventory.RoundQty(base * richness)
		}
	}

	return Target{
		ID:            uuid.NewString(),
		ClassID:       classID,
		Kind:          kind,
		ZoneID:        zone.ID,
		RiskRating:    inventory.RoundQty(risk),
		ExpectedYield: yield,
	}
}

// Depletion converts a target into its ledger payload.
func (t Target) Depletion() TargetDepleted {
	return TargetDepleted{
		TargetID:      t.ID,
		ClassID:       t.ClassID,
		Kind:          t.Kind,
		ZoneID:        t.ZoneID,
		RiskRating:    t.RiskRating,
		ExpectedYield: t.ExpectedYield,
	}
}
