package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm_Identity(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{17.391178, 78.559051},
		{-33.868818, -151.209295},
		{89.999999, 179.999999},
		{-90, -180},
	}

	for _, p := range points {
		assert.Equal(t, 0.0, DistanceKm(p[0], p[1], p[0], p[1]))
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	pairs := [][4]float64{
		{17.391178, 78.559051, 17.458452, 78.363142},
		{48.1173, 11.516667, -33.868818, -151.209295},
		{0, 0, 0, 179.5},
	}

	for _, p := range pairs {
		assert.Equal(t, DistanceKm(p[0], p[1], p[2], p[3]), DistanceKm(p[2], p[3], p[0], p[1]))
	}
}

func TestDistanceKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
	}{
		{
			name: "hotel to mall",
			lat1: 17.391178, lon1: 78.559051,
			lat2: 17.458452, lon2: 78.363142,
			expected: 22.09,
		},
		{
			name: "one degree of longitude on the equator",
			lat1: 0, lon1: 0,
			lat2: 0, lon2: 1,
			expected: 111.19,
		},
		{
			name: "pole to pole",
			lat1: 90, lon1: 0,
			lat2: -90, lon2: 0,
			expected: 20015.09,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DistanceKm(tt.lat1, tt.lon1, tt.lat2, tt.lon2), 0.05)
		})
	}
}
