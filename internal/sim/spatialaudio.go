package sim

import "math"

// speedOfSound is in meters per second at room temperature.
const speedOfSound = 343.0

// SpatialAudio models the two binaural localization cues for a single
// source on the horizontal plane: interaural time difference (Woodworth
// spherical-head model) and a frequency-weighted interaural level
// difference.
type SpatialAudio struct{}

func (SpatialAudio) Definition() Definition {
	return Definition{
		ID:      "spatialaudio",
		Title:   "Spatial Audio Perception",
		Tagline: "How two ears locate one sound",
		Params: []ParamSpec{
			{Name: "azimuth", Label: "Source azimuth", Unit: "°", Min: -90, Max: 90, Step: 5, Default: 30},
			{Name: "head_radius", Label: "Head radius", Unit: "cm", Min: 6, Max: 12, Step: 0.25, Default: 8.75},
			{Name: "frequency", Label: "Source frequency", Unit: "Hz", Min: 200, Max: 8000, Step: 100, Default: 1000},
		},
		PassThreshold: 8,
	}
}

func (SpatialAudio) Compute(p *Params) Metrics {
	theta := p.Get("azimuth") * math.Pi / 180
	r := p.Get("head_radius") / 100 // meters
	f := p.Get("frequency")

	// Woodworth: ITD = r(θ + sin θ)/c. Zero at θ=0 by construction.
	itd := r * (math.Abs(theta) + math.Sin(math.Abs(theta))) / speedOfSound
	if theta < 0 {
		itd = -itd
	}

	// Head shadow grows with frequency; a low-order fit good enough for
	// the lab's "ILD needs high frequencies" takeaway.
	ild := 0.3 * math.Sqrt(f/1000) * 20 * math.Sin(theta) / 2

	// Phase ambiguity: above this frequency the ITD cue exceeds half a
	// wavelength and stops being usable.
	halfPeriod := 1 / (2 * f)
	itdUsable := 0.0
	if math.Abs(itd) <= halfPeriod {
		itdUsable = 1.0
	}

	return Metrics{
		Items: []Metric{
			{Name: "itd", Label: "Interaural time difference", Unit: "µs", Value: finite(itd*1e6, 0)},
			{Name: "ild", Label: "Interaural level difference", Unit: "dB", Value: finite(ild, 0)},
			{Name: "itd_usable", Label: "ITD cue unambiguous", Unit: "", Value: itdUsable},
			{Name: "wavelength", Label: "Wavelength", Unit: "cm", Value: finite(speedOfSound/f*100, 0)},
		},
	}
}
