package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geofence-api/internal/models"
)

func zoneAt(id int, lat, lon, radiusKm float64) models.Zone {
	return models.Zone{
		ID:       id,
		Name:     string(rune('A' + id - 1)),
		Category: "test",
		Center:   models.Coordinate{Latitude: lat, Longitude: lon},
		RadiusKm: radiusKm,
	}
}

// Fixes sit on the equator so that distances are 111.19 km per degree of longitude.
func fixAt(lat, lon float64) models.PositionFix {
	return models.PositionFix{Latitude: lat, Longitude: lon}
}

func TestNearest_EmptyRegistry(t *testing.T) {
	_, ok := Nearest(fixAt(0, 0), nil)
	assert.False(t, ok)

	_, ok = Matcher{StrictNearest: true}.Nearest(fixAt(0, 0), []models.Zone{})
	assert.False(t, ok)
}

func TestNearest_SingleZoneAlwaysMatches(t *testing.T) {
	far := zoneAt(1, 0, 90, 0.5)

	for _, m := range []Matcher{{}, {StrictNearest: true}} {
		match, ok := m.Nearest(fixAt(0, 0), []models.Zone{far})

		require.True(t, ok)
		assert.Equal(t, 1, match.ZoneID)
		assert.Equal(t, "A", match.ZoneName)
		assert.Equal(t, "test", match.Category)
		assert.InDelta(t, 10007.54, match.DistanceKm, 0.01)
	}
}

func TestNearest_DistanceRoundedToTwoDecimals(t *testing.T) {
	match, ok := Nearest(fixAt(0, 0), []models.Zone{zoneAt(1, 0, 0.5, 100)})

	require.True(t, ok)
	// 55.5974633... km
	assert.Equal(t, 55.6, match.DistanceKm)
}

func TestNearest_FarZoneBeforeNearZone(t *testing.T) {
	// A is 111.19 km away with a 1 km radius; B is 1 km away with a 100 km radius.
	// A is taken first because any distance beats +Inf, then B replaces it.
	zones := []models.Zone{
		zoneAt(1, 0, 1.0, 1),
		zoneAt(2, 0, 0.009, 100),
	}

	match, ok := Nearest(fixAt(0, 0), zones)
	require.True(t, ok)
	assert.Equal(t, 2, match.ZoneID)
	assert.Equal(t, 1.0, match.DistanceKm)
}

func TestNearest_LaterContainingZoneOverridesNearerZone(t *testing.T) {
	// near: 2.22 km away, radius 1 km (fix outside it).
	// wide: 55.6 km away, radius 100 km (fix inside it).
	zones := []models.Zone{
		zoneAt(1, 0, 0.02, 1),
		zoneAt(2, 0, 0.5, 100),
	}

	match, ok := Nearest(fixAt(0, 0), zones)
	require.True(t, ok)
	assert.Equal(t, 2, match.ZoneID)
	assert.Equal(t, 55.6, match.DistanceKm)

	match, ok = Matcher{StrictNearest: true}.Nearest(fixAt(0, 0), zones)
	require.True(t, ok)
	assert.Equal(t, 1, match.ZoneID)
	assert.Equal(t, 2.22, match.DistanceKm)
}

func TestNearest_OrderDependent(t *testing.T) {
	near := zoneAt(1, 0, 0.02, 1)
	wide := zoneAt(2, 0, 0.5, 100)

	// With the wide zone first, the nearer zone is strictly closer and wins.
	match, ok := Nearest(fixAt(0, 0), []models.Zone{wide, near})
	require.True(t, ok)
	assert.Equal(t, 1, match.ZoneID)

	// Reversed, the wide zone claims the fix through its radius.
	match, ok = Nearest(fixAt(0, 0), []models.Zone{near, wide})
	require.True(t, ok)
	assert.Equal(t, 2, match.ZoneID)
}

func TestNearest_LastContainingZoneWins(t *testing.T) {
	zones := []models.Zone{
		zoneAt(1, 0, 0.001, 5),
		zoneAt(2, 0, 0.02, 5),
		zoneAt(3, 0, 0.03, 5),
		zoneAt(4, 0, 1.0, 5),
	}

	match, ok := Nearest(fixAt(0, 0), zones)
	require.True(t, ok)
	assert.Equal(t, 3, match.ZoneID)

	match, ok = Matcher{StrictNearest: true}.Nearest(fixAt(0, 0), zones)
	require.True(t, ok)
	assert.Equal(t, 1, match.ZoneID)
}

func TestNearest_StrictTieKeepsFirst(t *testing.T) {
	zones := []models.Zone{
		zoneAt(1, 0, 0.5, 1),
		zoneAt(2, 0, -0.5, 1),
	}

	match, ok := Matcher{StrictNearest: true}.Nearest(fixAt(0, 0), zones)
	require.True(t, ok)
	assert.Equal(t, 1, match.ZoneID)
}
