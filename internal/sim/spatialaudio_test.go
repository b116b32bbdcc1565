package sim

import (
	"math"
	"testing"
)

func TestSpatialAudio_CenteredSourceNoCues(t *testing.T) {
	p := NewParams(SpatialAudio{}.Definition().Params)
	p.Set("azimuth", 0)

	m := SpatialAudio{}.Compute(p)
	itd, _ := m.Value("itd")
	ild, _ := m.Value("ild")
	if itd != 0 {
		t.Errorf("ITD at azimuth 0 = %v, want 0", itd)
	}
	if ild != 0 {
		t.Errorf("ILD at azimuth 0 = %v, want 0", ild)
	}
}

func TestSpatialAudio_CuesAntisymmetric(t *testing.T) {
	p := NewParams(SpatialAudio{}.Definition().Params)

	p.Set("azimuth", 45)
	right := SpatialAudio{}.Compute(p)
	p.Set("azimuth", -45)
	left := SpatialAudio{}.Compute(p)

	ri, _ := right.Value("itd")
	li, _ := left.Value("itd")
	if math.Abs(ri+li) > 1e-9 {
		t.Errorf("ITD not antisymmetric: %v vs %v", ri, li)
	}

	rl, _ := right.Value("ild")
	ll, _ := left.Value("ild")
	if math.Abs(rl+ll) > 1e-9 {
		t.Errorf("ILD not antisymmetric: %v vs %v", rl, ll)
	}
}

func TestSpatialAudio_ITDGrowsWithAzimuth(t *testing.T) {
	p := NewParams(SpatialAudio{}.Definition().Params)
	prev := -1.0
	for az := 0.0; az <= 90; az += 5 {
		p.Set("azimuth", az)
		itd, _ := SpatialAudio{}.Compute(p).Value("itd")
		if itd < prev {
			t.Fatalf("ITD decreased at azimuth %v: %v < %v", az, itd, prev)
		}
		prev = itd
	}
}

func TestSpatialAudio_HighFrequencyAmbiguous(t *testing.T) {
	p := NewParams(SpatialAudio{}.Definition().Params)
	p.Set("azimuth", 90)

	p.Set("frequency", 200)
	usableLow, _ := SpatialAudio{}.Compute(p).Value("itd_usable")
	p.Set("frequency", 8000)
	usableHigh, _ := SpatialAudio{}.Compute(p).Value("itd_usable")

	if usableLow != 1 {
		t.Errorf("ITD at 200 Hz should be unambiguous, got %v", usableLow)
	}
	if usableHigh != 0 {
		t.Errorf("ITD at 8 kHz should be ambiguous, got %v", usableHigh)
	}
}
