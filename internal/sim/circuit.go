package sim

// minResistance is the floor applied before any division. A control slid
// to zero ohms reads as a near-short, not a divide-by-zero.
const minResistance = 0.1

// Circuit models a series resistor feeding two parallel branches:
//
//	V ── R1 ──┬── R2 ──┐
//	          └── R3 ──┴── ground
//
// The junction obeys Kirchhoff's current law: the current through R1
// equals the sum of the branch currents.
type Circuit struct{}

func (Circuit) Definition() Definition {
	return Definition{
		ID:      "circuit",
		Title:   "Circuit Analysis",
		Tagline: "Series, parallel, and where the current goes",
		Params: []ParamSpec{
			{Name: "voltage", Label: "Source voltage", Unit: "V", Min: 1, Max: 24, Step: 1, Default: 9},
			{Name: "r1", Label: "Series R1", Unit: "Ω", Min: 0, Max: 1000, Step: 10, Default: 100},
			{Name: "r2", Label: "Branch R2", Unit: "Ω", Min: 0, Max: 1000, Step: 10, Default: 220},
			{Name: "r3", Label: "Branch R3", Unit: "Ω", Min: 0, Max: 1000, Step: 10, Default: 470},
		},
		Gates:         GateSpec{MinTrials: 3},
		PassThreshold: 7,
	}
}

func (Circuit) Compute(p *Params) Metrics {
	v := p.Get("voltage")
	r1 := max(p.Get("r1"), minResistance)
	r2 := max(p.Get("r2"), minResistance)
	r3 := max(p.Get("r3"), minResistance)

	parallel := (r2 * r3) / (r2 + r3)
	total := r1 + parallel

	iTotal := v / total
	vNode := v - iTotal*r1
	i2 := vNode / r2
	i3 := vNode / r3

	return Metrics{
		Items: []Metric{
			{Name: "total_resistance", Label: "Total resistance", Unit: "Ω", Value: finite(total, minResistance)},
			{Name: "total_current", Label: "Total current", Unit: "mA", Value: finite(iTotal*1000, 0)},
			{Name: "node_voltage", Label: "Junction voltage", Unit: "V", Value: finite(vNode, 0)},
			{Name: "branch2_current", Label: "Current through R2", Unit: "mA", Value: finite(i2*1000, 0)},
			{Name: "branch3_current", Label: "Current through R3", Unit: "mA", Value: finite(i3*1000, 0)},
			{Name: "power", Label: "Source power", Unit: "mW", Value: finite(v*iTotal*1000, 0)},
		},
	}
}
