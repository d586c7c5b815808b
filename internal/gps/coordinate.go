package gps

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ConvertCoordinate converts an NMEA magnitude (ddmm.mmmm or dddmm.mmmm) and its
// hemisphere letter into signed decimal degrees rounded to six places.
//
// The two digits before the decimal point and everything after it are minutes;
// whatever precedes them is whole degrees. Without a decimal point the last two
// characters are taken as minutes. S and W negate the result.
func ConvertCoordinate(value, hemisphere string) (float64, error) {
	split := len(value) - 2
	if dot := strings.IndexByte(value, '.'); dot != -1 {
		split = dot - 2
	}
	if split < 1 {
		return 0, fmt.Errorf("%w: %q has no degrees part", ErrBadCoordinate, value)
	}

	deg, err := strconv.ParseFloat(value[:split], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: degrees of %q: %v", ErrBadCoordinate, value, err)
	}
	mins, err := strconv.ParseFloat(value[split:], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: minutes of %q: %v", ErrBadCoordinate, value, err)
	}

	dec := deg + mins/60
	if math.IsNaN(dec) || math.IsInf(dec, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrBadCoordinate, value)
	}
	if hemisphere == "S" || hemisphere == "W" {
		dec = -dec
	}
	return round(dec, 6), nil
}

// FormatCoordinate is the inverse of ConvertCoordinate: it renders decimal degrees
// as ddmm.mmmm (latitude) or dddmm.mmmm (longitude) plus the hemisphere letter.
func FormatCoordinate(dec float64, isLat bool) (string, string) {
	hemi := "N"
	if !isLat {
		hemi = "E"
	}
	if dec < 0 {
		dec = -dec
		if isLat {
			hemi = "S"
		} else {
			hemi = "W"
		}
	}

	deg := math.Floor(dec)
	mins := round((dec-deg)*60, 4)
	if mins >= 60 {
		deg++
		mins -= 60
	}

	if isLat {
		return fmt.Sprintf("%02d%07.4f", int(deg), mins), hemi
	}
	return fmt.Sprintf("%03d%07.4f", int(deg), mins), hemi
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
