package sim

import (
	"math"
	"testing"
)

func TestCircuit_CurrentConservation(t *testing.T) {
	// Kirchhoff at the junction: current through R1 equals the sum of
	// the branch currents, within 1e-9 relative tolerance, across a
	// sweep of the declared ranges.
	d := Circuit{}
	p := NewParams(d.Definition().Params)

	for _, v := range []float64{1, 5, 9, 24} {
		for _, r1 := range []float64{0, 10, 100, 1000} {
			for _, r2 := range []float64{0, 47, 220, 1000} {
				for _, r3 := range []float64{0, 100, 470, 1000} {
					p.Set("voltage", v)
					p.Set("r1", r1)
					p.Set("r2", r2)
					p.Set("r3", r3)

					m := d.Compute(p)
					total, _ := m.Value("total_current")
					i2, _ := m.Value("branch2_current")
					i3, _ := m.Value("branch3_current")

					sum := i2 + i3
					diff := math.Abs(total - sum)
					if total != 0 {
						diff /= math.Abs(total)
					}
					if diff > 1e-9 {
						t.Fatalf("v=%v r1=%v r2=%v r3=%v: total=%v branches=%v (rel diff %g)",
							v, r1, r2, r3, total, sum, diff)
					}
				}
			}
		}
	}
}

func TestCircuit_ZeroResistanceFinite(t *testing.T) {
	d := Circuit{}
	p := NewParams(d.Definition().Params)
	p.Set("r1", 0)
	p.Set("r2", 0)
	p.Set("r3", 0)

	m := d.Compute(p)
	for _, it := range m.Items {
		if math.IsNaN(it.Value) || math.IsInf(it.Value, 0) {
			t.Errorf("%s = %v with zero resistances", it.Name, it.Value)
		}
	}
}

func TestCircuit_MoreVoltageMoreCurrent(t *testing.T) {
	d := Circuit{}
	p := NewParams(d.Definition().Params)

	p.Set("voltage", 5)
	low, _ := d.Compute(p).Value("total_current")
	p.Set("voltage", 20)
	high, _ := d.Compute(p).Value("total_current")

	if high <= low {
		t.Errorf("current at 20V (%v) not above current at 5V (%v)", high, low)
	}
}
