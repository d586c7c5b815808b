package geo

import (
	"math"

	"geofence-api/internal/models"
)

// Matcher selects the zone reported for a fix.
//
// By default it folds over the zones in order and moves to a zone whenever the
// fix lies inside that zone's radius or is closer to it than to the zone chosen
// so far. A later zone that contains the fix therefore wins over an earlier,
// nearer one. StrictNearest replaces the rule with a plain minimum distance,
// keeping the earlier zone on ties.
type Matcher struct {
	StrictNearest bool
}

// Nearest applies the default (non-strict) matching rule.
func Nearest(fix models.PositionFix, zones []models.Zone) (models.ZoneMatch, bool) {
	return Matcher{}.Nearest(fix, zones)
}

// Nearest returns the selected zone with the distance rounded to two decimals.
// It reports false only when zones is empty.
func (m Matcher) Nearest(fix models.PositionFix, zones []models.Zone) (models.ZoneMatch, bool) {
	var (
		best         *models.Zone
		bestDistance = math.Inf(1)
	)

	for i := range zones {
		zone := &zones[i]
		distance := DistanceKm(fix.Latitude, fix.Longitude, zone.Center.Latitude, zone.Center.Longitude)
		if m.takes(zone, distance, bestDistance) {
			best = zone
			bestDistance = distance
		}
	}

	if best == nil {
		return models.ZoneMatch{}, false
	}
	return models.ZoneMatch{
		ZoneID:     best.ID,
		ZoneName:   best.Name,
		Category:   best.Category,
		DistanceKm: math.Round(bestDistance*100) / 100,
	}, true
}

func (m Matcher) takes(zone *models.Zone, distance, bestDistance float64) bool {
	if m.StrictNearest {
		return distance < bestDistance
	}
	return distance <= zone.RadiusKm || distance < bestDistance
}
