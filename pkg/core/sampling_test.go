package core

import (
	"math"
	"testing"
)

func TestSampleUnitDiscInsideUnitCircle(t *testing.T) {
	for i := 0; i < 10000; i++ {
		u := Vec2{X: float64(i%100) / 100, Y: float64((i*37)%100) / 100}
		p := SampleUnitDisc(u)
		if l := p.X*p.X + p.Y*p.Y; l > 1+1e-9 {
			t.Fatalf("sample outside unit disc: %v (r^2=%f)", p, l)
		}
	}
}

// TestSampleUnitDiscAreaCoverage is a coarse chi-squared-style check
// that draws land roughly uniformly across four quadrants.
func TestSampleUnitDiscAreaCoverage(t *testing.T) {
	const n = 400000
	var quadrants [4]int
	r := NewRng(Hash64(99))
	for i := 0; i < n; i++ {
		p := SampleUnitDisc(r.Get2D())
		switch {
		case p.X >= 0 && p.Y >= 0:
			quadrants[0]++
		case p.X < 0 && p.Y >= 0:
			quadrants[1]++
		case p.X < 0 && p.Y < 0:
			quadrants[2]++
		default:
			quadrants[3]++
		}
	}
	expected := float64(n) / 4
	for i, c := range quadrants {
		dev := math.Abs(float64(c)-expected) / expected
		if dev > 0.02 {
			t.Errorf("quadrant %d deviates from uniform by %.2f%% (count=%d, expected=%.0f)", i, dev*100, c, expected)
		}
	}
}

func TestCosineSampleHemisphereStaysInHemisphere(t *testing.T) {
	n := Vec3{0, 0, 1}
	r := NewRng(Hash64(5))
	for i := 0; i < 10000; i++ {
		d := CosineSampleHemisphere(n, r.Get2D())
		if d.Dot(n) < -1e-9 {
			t.Fatalf("sample below hemisphere: %v . %v = %f", d, n, d.Dot(n))
		}
		if math.Abs(d.Length()-1) > 1e-6 {
			t.Fatalf("sample not unit length: %v", d)
		}
	}
}

func TestSRGBApproximatesPowerLaw(t *testing.T) {
	for _, x := range []float64{0, 0.01, 0.18, 0.5, 0.9, 1.0} {
		got := ToSRGB(x)
		want := math.Pow(x, 1/2.2)
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("ToSRGB(%f) = %f, want %f", x, got, want)
		}
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	for _, x := range []float64{0, 0.1, 0.3, 0.5, 0.75, 1.0} {
		got := FromSRGB(ToSRGB(x))
		if math.Abs(got-x) > 1e-9 {
			t.Errorf("round trip FromSRGB(ToSRGB(%f)) = %f", x, got)
		}
	}
}
