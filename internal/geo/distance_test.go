package geo

import (
	"math"
	"testing"
)

func TestDistanceIdentity(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{45.5, -73.6},
		{-33.87, 151.21},
		{90, 0},
	}

	for _, p := range points {
		if d := Distance(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("Distance(%v, %v, same) = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestDistanceSymmetry(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
	}{
		{"equator to pole", 0, 0, 90, 0},
		{"across meridian", 51.5, -0.12, 48.85, 2.35},
		{"southern hemisphere", -33.87, 151.21, -36.85, 174.76},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ab := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			ba := Distance(tt.lat2, tt.lon2, tt.lat1, tt.lon1)
			if math.Abs(ab-ba) > 1e-9 {
				t.Errorf("asymmetric: %v vs %v", ab, ba)
			}
		})
	}
}

func TestDistanceAntipodal(t *testing.T) {
	// Half the Earth's circumference, about 20015 km.
	got := Distance(0, 0, 0, 180)
	want := math.Pi * earthRadiusKm
	if math.Abs(got-want)/want > 0.01 {
		t.Errorf("Distance(0,0,0,180) = %v, want %v within 1%%", got, want)
	}
}

func TestDistanceOneKilometerAtEquator(t *testing.T) {
	// 0.009 degrees of longitude at the equator is roughly 1 km; this is the
	// boundary case for the nearby-report radius.
	got := Distance(0, 0, 0, 0.009)
	if math.Abs(got-1.0) > 0.01 {
		t.Errorf("Distance(0,0,0,0.009) = %v, want about 1.0 km", got)
	}
}

func TestDistanceKnownPairs(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		wantKm                 float64
		tolKm                  float64
	}{
		{"london to paris", 51.5074, -0.1278, 48.8566, 2.3522, 343.5, 5},
		{"one degree latitude", 0, 0, 1, 0, 111.2, 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(got-tt.wantKm) > tt.tolKm {
				t.Errorf("got %v km, want %v +/- %v", got, tt.wantKm, tt.tolKm)
			}
		})
	}
}
