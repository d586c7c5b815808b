package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geofence-api/internal/geo"
	"geofence-api/internal/gps"
	"geofence-api/internal/models"
)

func TestNew(t *testing.T) {
	valid := models.Zone{ID: 1, Name: "Depot", RadiusKm: 1, Center: models.Coordinate{Latitude: 10, Longitude: 20}}

	tests := []struct {
		name        string
		zones       []models.Zone
		expectError bool
	}{
		{name: "defaults", zones: DefaultZones()},
		{name: "empty", zones: nil},
		{name: "zero id", zones: []models.Zone{{ID: 0, Name: "x", RadiusKm: 1}}, expectError: true},
		{name: "duplicate id", zones: []models.Zone{valid, {ID: 1, Name: "Other", RadiusKm: 1}}, expectError: true},
		{name: "duplicate name", zones: []models.Zone{valid, {ID: 2, Name: "Depot", RadiusKm: 1}}, expectError: true},
		{name: "missing name", zones: []models.Zone{{ID: 1, RadiusKm: 1}}, expectError: true},
		{name: "zero radius", zones: []models.Zone{{ID: 1, Name: "x"}}, expectError: true},
		{name: "latitude out of range", zones: []models.Zone{{ID: 1, Name: "x", RadiusKm: 1, Center: models.Coordinate{Latitude: 91}}}, expectError: true},
		{name: "longitude out of range", zones: []models.Zone{{ID: 1, Name: "x", RadiusKm: 1, Center: models.Coordinate{Longitude: -181}}}, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := New(tt.zones)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, reg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.zones), reg.Len())
		})
	}
}

func TestRegistry_IsImmutable(t *testing.T) {
	zones := DefaultZones()
	reg, err := New(zones)
	require.NoError(t, err)

	zones[0].Name = "changed by caller"
	out := reg.Zones()
	out[1].RadiusKm = 999

	assert.Equal(t, DefaultZones(), reg.Zones())
}

func TestRegistry_Lookup(t *testing.T) {
	reg, err := New(DefaultZones())
	require.NoError(t, err)

	zone, ok := reg.Lookup("Sharath City Capital Mall")
	require.True(t, ok)
	assert.Equal(t, 2, zone.ID)

	_, ok = reg.Lookup("nowhere")
	assert.False(t, ok)
}

func TestDefaultZones_MatchSentence(t *testing.T) {
	reg, err := New(DefaultZones())
	require.NoError(t, err)

	fix, ok := gps.Decode("$GPGGA,123519,1724.2473,N,07833.5431,E,1,08,0.9,545.4,M,46.9,M,,*00")
	require.True(t, ok)

	match, ok := geo.Nearest(fix, reg.Zones())
	require.True(t, ok)
	assert.Equal(t, models.ZoneMatch{
		ZoneID:     1,
		ZoneName:   "SVM Grand",
		Category:   "restaurant and Hotel",
		DistanceKm: 1.44,
	}, match)
}
