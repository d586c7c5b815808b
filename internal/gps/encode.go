package gps

import (
	"fmt"
	"strconv"
	"strings"

	nmea "github.com/adrianmo/go-nmea"

	"geofence-api/internal/models"
)

// EncodeGGA renders a fix as a $GPGGA sentence with a valid checksum. Both
// decode tiers accept its output.
func EncodeGGA(fix models.PositionFix) string {
	lat, latHemi := FormatCoordinate(fix.Latitude, true)
	lon, lonHemi := FormatCoordinate(fix.Longitude, false)

	var ts string
	if fix.Time != nil {
		ts = fmt.Sprintf("%02d%02d%02d", fix.Time.Hour, fix.Time.Minute, fix.Time.Second)
	}

	payload := strings.Join([]string{
		"GPGGA",
		ts,
		lat, latHemi,
		lon, lonHemi,
		strconv.Itoa(fix.Quality),
		fmt.Sprintf("%02d", fix.Satellites),
		strconv.FormatFloat(fix.HDOP, 'f', -1, 64),
		strconv.FormatFloat(fix.Altitude, 'f', -1, 64), "M",
		"0.0", "M",
		"", "",
	}, ",")

	return "$" + payload + "*" + nmea.Checksum(payload)
}
