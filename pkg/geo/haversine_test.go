package geo_test

import (
	"testing"

	"github.com/nearwave/nearwave/pkg/geo"
	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		lat1, lon1 float64
		lat2, lon2 float64
		expected   float64
		tolerance  float64
	}{
		{
			name: "same point is zero",
			lat1: 51.5074, lon1: -0.1278,
			lat2: 51.5074, lon2: -0.1278,
			expected:  0,
			tolerance: 0,
		},
		{
			name: "fifty meters north at equator",
			lat1: 0, lon1: 0,
			lat2: 0.00045, lon2: 0,
			expected:  50,
			tolerance: 0.5,
		},
		{
			name: "one degree of latitude",
			lat1: 0, lon1: 0,
			lat2: 1, lon2: 0,
			expected:  111195,
			tolerance: 100,
		},
		{
			name: "paris to london",
			lat1: 48.8566, lon1: 2.3522,
			lat2: 51.5074, lon2: -0.1278,
			expected:  343500,
			tolerance: 1000,
		},
		{
			name: "antipodal points",
			lat1: 0, lon1: 0,
			lat2: 0, lon2: 180,
			expected:  20015087,
			tolerance: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := geo.Distance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, got, tt.tolerance)
		})
	}
}

func TestDistanceSymmetry(t *testing.T) {
	t.Parallel()

	pairs := [][4]float64{
		{0, 0, 0.00045, 0},
		{48.8566, 2.3522, 51.5074, -0.1278},
		{-33.8688, 151.2093, 35.6762, 139.6503},
		{89.9, -179.9, -89.9, 179.9},
	}

	for _, p := range pairs {
		forward := geo.Distance(p[0], p[1], p[2], p[3])
		reverse := geo.Distance(p[2], p[3], p[0], p[1])
		assert.InDelta(t, forward, reverse, 1e-9)
	}
}

func TestDistanceIdentity(t *testing.T) {
	t.Parallel()

	points := [][2]float64{
		{0, 0},
		{90, 0},
		{-90, 0},
		{37.7749, -122.4194},
	}

	for _, p := range points {
		assert.Zero(t, geo.Distance(p[0], p[1], p[0], p[1]))
	}
}
