package catalog

// Default returns the built-in catalog used when no file is supplied and by
// the test suites. Values mirror config/catalog.yaml.
func Default() *Catalog {
	return &Catalog{
		Resources: map[string]string{
			"waterIce":    "water ice",
			"water":       "water",
			"regolith":    "regolith",
			"boxOfSand":   "box of sand",
			"copperOre":   "copper ore",
			"copperIngot": "copper ingot",
			"ironOre":     "iron ore",
			"steelPlate":  "steel plate",
			"wiring":      "wiring",
			"sealantFoam": "sealant foam",
			"powerCell":   "power cell",
			"galaxyBar":   "galaxy bar",
		},
		Processes: []ProcessDefinition{
			{
				ID:         "iceMelter",
				Label:      "Ice melter",
				Inputs:     map[string]float64{"waterIce": 1},
				Outputs:    map[string]float64{"water": 1},
				EnergyCost: 1,
			},
			{
				ID:         "sandSifter",
				Label:      "Sand sifter",
				Inputs:     map[string]float64{"regolith": 2},
				Outputs:    map[string]float64{"boxOfSand": 1},
				EnergyCost: 2,
			},
			{
				ID:         "oreSmelter",
				Label:      "Ore smelter",
				Inputs:     map[string]float64{"copperOre": 2},
				Outputs:    map[string]float64{"copperIngot": 1},
				EnergyCost: 3,
			},
			{
				ID:                   "platePress",
				Label:                "Plate press",
				Inputs:               map[string]float64{"ironOre": 3},
				Outputs:              map[string]float64{"steelPlate": 1},
				EnergyCost:           4,
				RequireDocked:        true,
				MaxStationDistanceKM: 2,
			},
			{
				ID:         "galleyPress",
				Label:      "Galley press",
				Inputs:     map[string]float64{"water": 0.5, "boxOfSand": 0.25},
				Outputs:    map[string]float64{"galaxyBar": 1},
				EnergyCost: 1,
			},
		},
		Products: []Product{
			{ID: "boxOfSand", Label: "box of sand", BasePrice: 12},
			{ID: "water", Label: "water", BasePrice: 8},
			{ID: "copperIngot", Label: "copper ingot", BasePrice: 35},
			{ID: "steelPlate", Label: "steel plate", BasePrice: 60},
		},
		Market: MarketTuning{
			DemandImpactPerUnit: 0.02,
			RecoveryPerSecond:   0.0005,
			MinDemand:           0.5,
			MaxDemand:           1.5,
		},
		Crew: CrewTuning{
			WaterLitersPerDay:     2.4,
			WaterLitersPerServing: 0.4,
			WakeOffsetHours:       8,
			BreakfastOffsetSec:    1800,
			LunchOffsetSec:        6 * 3600,
			DinnerOffsetSec:       12 * 3600,
			MissedMealsStarving:   2,
			MissedWaterDehydrated: 3,
		},
		Failure: FailureTuning{
			BaseCreditsPenalty:      150,
			CreditsPenaltyPerRepair: 75,
			BaseEnergyPenalty:       25,
			EnergyPenaltyPerRepair:  10,
			RepairBill: map[string]float64{
				"steelPlate":  4,
				"wiring":      2,
				"sealantFoam": 1,
			},
		},
		Battery: BatteryTuning{
			BaseMaxEnergy: 200,
			StepMaxEnergy: 150,
			Costs: []BatteryCost{
				{Resource: "powerCell", Linear: 4, Quadratic: 2},
				{Resource: "copperIngot", Linear: 6, Quadratic: 1},
			},
		},
		Charging: ChargingTuning{
			RangeKM:         5,
			EnergyPerSecond: 0.25,
		},
		Fridge: FridgeTuning{
			CapacityBars:   24,
			CapacityLiters: 18,
		},
		Classes: []TargetClass{
			{ID: "ice", Kind: "asteroid", Yields: map[string]float64{"waterIce": 4}},
			{ID: "silicate", Kind: "asteroid", Yields: map[string]float64{"regolith": 5}},
			{ID: "metallic", Kind: "asteroid", Yields: map[string]float64{"copperOre": 3, "ironOre": 2}},
			{ID: "wreckage", Kind: "debris", Yields: map[string]float64{"wiring": 2, "sealantFoam": 1, "steelPlate": 1}},
		},
		Sectors: []SectorDefinition{
			{
				ID:           "sol-belt",
				TotalTargets: 60,
				Zones: []ZoneDefinition{
					{
						ID:           "inner-ring",
						ClassWeights: map[string]float64{"ice": 3, "silicate": 2, "metallic": 1},
						RiskMin:      0.1,
						RiskMax:      0.4,
					},
					{
						ID:           "outer-ring",
						ClassWeights: map[string]float64{"ice": 1, "silicate": 1, "metallic": 3},
						RiskMin:      0.3,
						RiskMax:      0.9,
					},
				},
			},
			{
				ID:           "tau-verge",
				TotalTargets: 24,
				Zones: []ZoneDefinition{
					{
						ID:           "debris-field",
						ClassWeights: map[string]float64{"wreckage": 4, "metallic": 2},
						RiskMin:      0.5,
						RiskMax:      1.0,
					},
				},
			},
		},
	}
}
