// Package sim holds the parameter→metric formula plug-ins behind the
// guided labs. Each lab domain implements Domain: a static Definition
// (controls, thresholds, gating requirements) plus a pure Compute from
// the current parameter values to a metrics snapshot.
//
// Compute is total: every parameter combination inside the declared
// ranges yields finite values. Degenerate inputs (zero resistance,
// minimum node counts, vanishing yield) are clamped or special-cased,
// never allowed to surface NaN or Inf.
package sim

import "math"

// ParamSpec declares a single adjustable control with its valid range.
type ParamSpec struct {
	Name    string
	Label   string
	Unit    string
	Min     float64
	Max     float64
	Step    float64
	Default float64

	// Enum, when non-empty, marks a categorical control: the value is an
	// index into these names, and Min/Max/Step cover the index range.
	Enum []string
}

// Clamp forces v into the spec's declared range.
func (s ParamSpec) Clamp(v float64) float64 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// EnumName returns the categorical name for value v, or "" for numeric
// specs.
func (s ParamSpec) EnumName(v float64) string {
	if len(s.Enum) == 0 {
		return ""
	}
	i := int(s.Clamp(v))
	if i < 0 {
		i = 0
	}
	if i >= len(s.Enum) {
		i = len(s.Enum) - 1
	}
	return s.Enum[i]
}

// Params is a named parameter set. Every stored value stays within its
// spec's declared bounds; out-of-range writes are clamped, not rejected.
type Params struct {
	specs []ParamSpec
	index map[string]int
	vals  map[string]float64
}

// NewParams creates a parameter set at each spec's default value.
func NewParams(specs []ParamSpec) *Params {
	p := &Params{
		specs: specs,
		index: make(map[string]int, len(specs)),
		vals:  make(map[string]float64, len(specs)),
	}
	for i, s := range specs {
		p.index[s.Name] = i
		p.vals[s.Name] = s.Clamp(s.Default)
	}
	return p
}

// Set stores a clamped value. Unknown names are ignored. Returns true
// when the stored value actually changed.
func (p *Params) Set(name string, v float64) bool {
	i, ok := p.index[name]
	if !ok {
		return false
	}
	clamped := p.specs[i].Clamp(v)
	if p.vals[name] == clamped {
		return false
	}
	p.vals[name] = clamped
	return true
}

// Get returns the current value for name, or the NaN-free zero value for
// unknown names.
func (p *Params) Get(name string) float64 {
	return p.vals[name]
}

// Step nudges a parameter by n steps of its declared step size.
func (p *Params) Step(name string, n int) bool {
	i, ok := p.index[name]
	if !ok {
		return false
	}
	return p.Set(name, p.vals[name]+float64(n)*p.specs[i].Step)
}

// Specs returns the parameter specs in declaration order.
func (p *Params) Specs() []ParamSpec {
	return p.specs
}

// Spec returns the spec for name.
func (p *Params) Spec(name string) (ParamSpec, bool) {
	i, ok := p.index[name]
	if !ok {
		return ParamSpec{}, false
	}
	return p.specs[i], true
}

// Metric is a single derived readout.
type Metric struct {
	Name  string
	Label string
	Unit  string
	Value float64
}

// Metrics is a read-only snapshot computed from a parameter set.
// It is replaced wholesale on every parameter change.
type Metrics struct {
	Items []Metric

	// Connections lists node index pairs for topology domains; nil
	// elsewhere.
	Connections [][2]int
}

// Value looks up a metric by name.
func (m Metrics) Value(name string) (float64, bool) {
	for _, it := range m.Items {
		if it.Name == name {
			return it.Value, true
		}
	}
	return 0, false
}

// GateSpec declares per-phase completion requirements a lab opts into.
type GateSpec struct {
	// MinTrials is the number of parameter changes required in each play
	// phase before forward navigation opens. 0 means no trial gate.
	MinTrials int
}

// Definition is the static description of a lab domain.
type Definition struct {
	ID       string
	Title    string
	Tagline  string
	Params   []ParamSpec
	Gates    GateSpec

	// PassThreshold is the quiz score (out of 10) required to pass.
	// Per-lab configuration; observed values are 7 and 8.
	PassThreshold int

	// GridCells is the cell count of the illustrative layout grid, 0
	// when the lab has none. GridProbability names the parameter-derived
	// metric that drives the grid's success probability.
	GridCells       int
	GridLabel       string
	GridProbability string
}

// Domain is the strategy object a lab plugs into the shared engine.
type Domain interface {
	Definition() Definition

	// Compute derives the metrics snapshot for the current parameters.
	// Pure and synchronous; recomputed on every parameter change.
	Compute(p *Params) Metrics
}

// finite replaces NaN/Inf with a fallback so no degenerate arithmetic
// escapes a Compute implementation.
func finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// All returns the registered domains in display order.
func All() []Domain {
	return []Domain{
		Circuit{},
		SpatialAudio{},
		Interconnect{},
		Yield{},
	}
}

// ByID looks up a domain by its definition ID.
func ByID(id string) (Domain, bool) {
	for _, d := range All() {
		if d.Definition().ID == id {
			return d, true
		}
	}
	return nil, false
}
