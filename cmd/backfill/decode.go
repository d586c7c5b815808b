package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"geofence-api/internal/geo"
	"geofence-api/internal/gps"
	"geofence-api/internal/models"
)

type decodeStats struct {
	Strict   int
	Fallback int
	Rejected int
}

// decodeLog turns every decodable line of r into a history row. Blank lines
// and lines that are not sentences are ignored; rejected sentences are counted.
func decodeLog(r io.Reader, vehicleID string, zones []models.Zone, matcher geo.Matcher, receivedAt time.Time) ([]models.VehicleFix, decodeStats, error) {
	var (
		fixes []models.VehicleFix
		stats decodeStats
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "$") {
			continue
		}

		res := gps.DecodeSentence(line)
		switch res.Tier {
		case gps.Strict:
			stats.Strict++
		case gps.Fallback:
			stats.Fallback++
		default:
			stats.Rejected++
			continue
		}

		vf := models.VehicleFix{
			VehicleID:  vehicleID,
			Fix:        res.Fix,
			Tier:       res.Tier.String(),
			ReceivedAt: receivedAt,
		}
		if match, ok := matcher.Nearest(res.Fix, zones); ok {
			id := match.ZoneID
			vf.ZoneID = &id
		}
		fixes = append(fixes, vf)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("failed to read log: %w", err)
	}

	return fixes, stats, nil
}
