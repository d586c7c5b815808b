package registry

import (
	"fmt"

	"geofence-api/internal/models"
)

// Registry is the fixed, ordered list of zones vehicles are matched against.
// It is built once at start-up and never modified, so it is safe to share
// between goroutines.
type Registry struct {
	zones  []models.Zone
	byName map[string]int
}

// New validates the zones and returns a registry holding its own copy of them.
func New(zones []models.Zone) (*Registry, error) {
	r := &Registry{
		zones:  make([]models.Zone, len(zones)),
		byName: make(map[string]int, len(zones)),
	}
	copy(r.zones, zones)

	ids := make(map[int]struct{}, len(zones))
	for i, z := range r.zones {
		if z.ID <= 0 {
			return nil, fmt.Errorf("registry: zone %q: id must be positive, got %d", z.Name, z.ID)
		}
		if _, dup := ids[z.ID]; dup {
			return nil, fmt.Errorf("registry: duplicate zone id %d", z.ID)
		}
		ids[z.ID] = struct{}{}

		if z.Name == "" {
			return nil, fmt.Errorf("registry: zone %d: name is required", z.ID)
		}
		if _, dup := r.byName[z.Name]; dup {
			return nil, fmt.Errorf("registry: duplicate zone name %q", z.Name)
		}
		r.byName[z.Name] = i

		if !(z.RadiusKm > 0) {
			return nil, fmt.Errorf("registry: zone %q: radius must be positive, got %v", z.Name, z.RadiusKm)
		}
		if z.Center.Latitude < -90 || z.Center.Latitude > 90 {
			return nil, fmt.Errorf("registry: zone %q: invalid latitude: %f", z.Name, z.Center.Latitude)
		}
		if z.Center.Longitude < -180 || z.Center.Longitude > 180 {
			return nil, fmt.Errorf("registry: zone %q: invalid longitude: %f", z.Name, z.Center.Longitude)
		}
	}
	return r, nil
}

// Zones returns the zones in registration order. The slice is a copy.
func (r *Registry) Zones() []models.Zone {
	out := make([]models.Zone, len(r.zones))
	copy(out, r.zones)
	return out
}

// Lookup finds a zone by its display name.
func (r *Registry) Lookup(name string) (models.Zone, bool) {
	i, ok := r.byName[name]
	if !ok {
		return models.Zone{}, false
	}
	return r.zones[i], true
}

func (r *Registry) Len() int {
	return len(r.zones)
}

// DefaultZones are the clients registered when the configuration lists none.
func DefaultZones() []models.Zone {
	return []models.Zone{
		{
			ID:       1,
			Name:     "SVM Grand",
			Category: "restaurant and Hotel",
			Center:   models.Coordinate{Latitude: 17.391178050899487, Longitude: 78.55905092531569},
			RadiusKm: 5.0,
		},
		{
			ID:       2,
			Name:     "Sharath City Capital Mall",
			Category: "Mall",
			Center:   models.Coordinate{Latitude: 17.458452306695207, Longitude: 78.36314238570006},
			RadiusKm: 5.0,
		},
		{
			ID:       3,
			Name:     "Rajiv Gandhi International Airport",
			Category: "Airport",
			Center:   models.Coordinate{Latitude: 17.24520257711281, Longitude: 78.42957533889812},
			RadiusKm: 5.0,
		},
	}
}
