package sim

import "math"

// maxCostPerDie caps the cost readout when yield collapses toward zero.
// The value stays finite and obviously pathological instead of Inf.
const maxCostPerDie = 1e12

// Yield models semiconductor yield economics with the Poisson defect
// model: yield = exp(−D·A). Even D·A = 40 (yield ≈ 4.2e-18) must report
// a finite small number, never 0 or NaN.
type Yield struct{}

func (Yield) Definition() Definition {
	return Definition{
		ID:      "yield",
		Title:   "Semiconductor Yield Economics",
		Tagline: "Why big dies cost so much",
		Params: []ParamSpec{
			{Name: "defect_density", Label: "Defect density", Unit: "/mm²", Min: 0, Max: 1, Step: 0.01, Default: 0.1},
			{Name: "die_area", Label: "Die area", Unit: "mm²", Min: 10, Max: 800, Step: 10, Default: 100},
			{Name: "wafer_diameter", Label: "Wafer diameter", Unit: "mm", Min: 100, Max: 300, Step: 50, Default: 300},
			{Name: "wafer_cost", Label: "Wafer cost", Unit: "$", Min: 1000, Max: 20000, Step: 500, Default: 5000},
		},
		Gates:           GateSpec{MinTrials: 3},
		PassThreshold:   8,
		GridCells:       400,
		GridLabel:       "wafer map",
		GridProbability: "yield_fraction",
	}
}

func (Yield) Compute(p *Params) Metrics {
	d := p.Get("defect_density")
	area := p.Get("die_area")
	diameter := p.Get("wafer_diameter")
	waferCost := p.Get("wafer_cost")

	yield := math.Exp(-d * area)

	// Dies per wafer: circle area minus an edge-loss term.
	radius := diameter / 2
	dies := math.Pi*radius*radius/area - math.Pi*diameter/math.Sqrt(2*area)
	if dies < 1 {
		dies = 1
	}
	dies = math.Floor(dies)

	goodDies := dies * yield
	costPerGood := maxCostPerDie
	if goodDies > 0 {
		costPerGood = math.Min(waferCost/goodDies, maxCostPerDie)
	}

	return Metrics{
		Items: []Metric{
			{Name: "yield_fraction", Label: "Yield", Unit: "", Value: finite(yield, 0)},
			{Name: "dies_per_wafer", Label: "Dies per wafer", Unit: "", Value: finite(dies, 1)},
			{Name: "good_dies", Label: "Good dies per wafer", Unit: "", Value: finite(goodDies, 0)},
			{Name: "cost_per_good_die", Label: "Cost per good die", Unit: "$", Value: finite(costPerGood, maxCostPerDie)},
		},
	}
}
