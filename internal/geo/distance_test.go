package geo

import (
	"math"
	"testing"
)

func TestDistanceKm(t *testing.T) {
	const (
		lisboaLat = 38.7223
		lisboaLng = -9.1393
		portoLat  = 41.1579
		portoLng  = -8.6291
	)

	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		expected   float64
		tolerance  float64
	}{
		{"same point", lisboaLat, lisboaLng, lisboaLat, lisboaLng, 0, 1e-9},
		{"lisboa to porto", lisboaLat, lisboaLng, portoLat, portoLng, 274, 5},
		{"equator degree", 0, 0, 0, 1, 111.19, 0.1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := DistanceKm(tc.lat1, tc.lon1, tc.lat2, tc.lon2)
			if math.Abs(got-tc.expected) > tc.tolerance {
				t.Fatalf("expected ~%.2f got %.4f", tc.expected, got)
			}
			if got < 0 {
				t.Fatalf("distance must be non-negative, got %f", got)
			}
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a := DistanceKm(38.7223, -9.1393, 41.1579, -8.6291)
	b := DistanceKm(41.1579, -8.6291, 38.7223, -9.1393)
	if math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance not symmetric: %.12f vs %.12f", a, b)
	}
}
