package gps

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	nmea "github.com/adrianmo/go-nmea"
	"github.com/rs/zerolog/log"

	"geofence-api/internal/models"
)

// minFields is the number of comma-separated fields in a complete GGA sentence,
// counting the talker+type field.
const minFields = 15

var (
	ErrTooFewFields      = errors.New("gps: too few fields")
	ErrMissingCoordinate = errors.New("gps: missing latitude or longitude")
	ErrBadCoordinate     = errors.New("gps: invalid coordinate")
	ErrBadField          = errors.New("gps: invalid field")
	ErrNotGGA            = errors.New("gps: not a GGA sentence")
)

// Tier records which decode path produced a fix.
type Tier int

const (
	Rejected Tier = iota
	Strict
	Fallback
)

func (t Tier) String() string {
	switch t {
	case Strict:
		return "strict"
	case Fallback:
		return "fallback"
	default:
		return "rejected"
	}
}

// Result is the outcome of decoding one sentence. Err carries the rejection
// reason and is nil whenever Tier is Strict or Fallback.
type Result struct {
	Tier Tier
	Fix  models.PositionFix
	Err  error
}

func (r Result) OK() bool {
	return r.Tier != Rejected
}

// The checksum is never a reason to reject a sentence, so the strict parser
// accepts any value after the '*'.
var strictParser = nmea.SentenceParser{
	CheckCRC: func(nmea.BaseSentence, string) error { return nil },
}

// Decode returns the fix carried by a GGA sentence, or false when the sentence
// cannot be decoded by either tier.
func Decode(sentence string) (models.PositionFix, bool) {
	res := DecodeSentence(sentence)
	return res.Fix, res.OK()
}

// DecodeSentence decodes with the strict parser first and falls back to the
// field-by-field decoder when the strict parser rejects the input.
func DecodeSentence(sentence string) Result {
	sentence = strings.TrimSpace(sentence)

	fix, err := decodeStrict(sentence)
	if err == nil {
		return Result{Tier: Strict, Fix: fix}
	}
	log.Debug().Err(err).Str("sentence", sentence).Msg("strict decode failed, trying manual decode")

	fix, err = decodeFallback(sentence)
	if err != nil {
		ev := log.Debug()
		if errors.Is(err, ErrBadField) || errors.Is(err, ErrBadCoordinate) {
			ev = log.Warn()
		}
		ev.Err(err).Str("sentence", sentence).Msg("manual decode failed")
		return Result{Tier: Rejected, Err: err}
	}
	return Result{Tier: Fallback, Fix: fix}
}

func decodeStrict(sentence string) (models.PositionFix, error) {
	s, err := strictParser.Parse(sentence)
	if err != nil {
		return models.PositionFix{}, err
	}
	gga, ok := s.(nmea.GGA)
	if !ok {
		return models.PositionFix{}, fmt.Errorf("%w: got %s", ErrNotGGA, s.DataType())
	}
	if len(gga.Fields) < minFields-1 {
		return models.PositionFix{}, fmt.Errorf("%w: %d", ErrTooFewFields, len(gga.Fields)+1)
	}
	if strings.TrimSpace(gga.Fields[1]) == "" || strings.TrimSpace(gga.Fields[3]) == "" {
		return models.PositionFix{}, ErrMissingCoordinate
	}

	quality, err := intOrDefault(gga.FixQuality)
	if err != nil {
		return models.PositionFix{}, fmt.Errorf("%w: fix quality: %v", ErrBadField, err)
	}

	fix := models.PositionFix{
		Latitude:   round(gga.Latitude, 6),
		Longitude:  round(gga.Longitude, 6),
		Altitude:   gga.Altitude,
		Satellites: int(gga.NumSatellites),
		HDOP:       gga.HDOP,
		Quality:    quality,
	}
	if gga.Time.Valid {
		fix.Time = &models.TimeOfDay{
			Hour:       gga.Time.Hour,
			Minute:     gga.Time.Minute,
			Second:     gga.Time.Second,
			Nanosecond: gga.Time.Millisecond * int(time.Millisecond),
		}
	}
	return fix, nil
}

// GGA fields after the leading '$' is stripped:
//
//	0: talker+type
//	1: time (hhmmss)
//	2: latitude (ddmm.mmmm)
//	3: N/S
//	4: longitude (dddmm.mmmm)
//	5: E/W
//	6: fix quality (0=invalid)
//	7: number of satellites
//	8: HDOP
//	9: altitude (meters)
func decodeFallback(sentence string) (models.PositionFix, error) {
	sentence = strings.TrimPrefix(sentence, "$")
	parts := strings.Split(sentence, ",")

	last := len(parts) - 1
	if star := strings.IndexByte(parts[last], '*'); star != -1 {
		parts[last] = parts[last][:star]
	}

	if len(parts) < minFields {
		return models.PositionFix{}, fmt.Errorf("%w: %d", ErrTooFewFields, len(parts))
	}
	if parts[2] == "" || parts[4] == "" {
		return models.PositionFix{}, ErrMissingCoordinate
	}

	lat, err := ConvertCoordinate(parts[2], parts[3])
	if err != nil {
		return models.PositionFix{}, err
	}
	lon, err := ConvertCoordinate(parts[4], parts[5])
	if err != nil {
		return models.PositionFix{}, err
	}

	fix := models.PositionFix{Latitude: lat, Longitude: lon}
	if fix.Quality, err = intOrDefault(parts[6]); err != nil {
		return models.PositionFix{}, fmt.Errorf("%w: fix quality: %v", ErrBadField, err)
	}
	if fix.Satellites, err = intOrDefault(parts[7]); err != nil {
		return models.PositionFix{}, fmt.Errorf("%w: satellites: %v", ErrBadField, err)
	}
	if fix.HDOP, err = floatOrDefault(parts[8]); err != nil {
		return models.PositionFix{}, fmt.Errorf("%w: hdop: %v", ErrBadField, err)
	}
	if fix.Altitude, err = floatOrDefault(parts[9]); err != nil {
		return models.PositionFix{}, fmt.Errorf("%w: altitude: %v", ErrBadField, err)
	}
	if fix.Time, err = timeOfDay(parts[1]); err != nil {
		return models.PositionFix{}, fmt.Errorf("%w: time: %v", ErrBadField, err)
	}
	return fix, nil
}

func intOrDefault(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func floatOrDefault(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

// timeOfDay parses a fixed six-digit hhmmss field. An empty field is not an error.
func timeOfDay(s string) (*models.TimeOfDay, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("150405", s)
	if err != nil {
		return nil, err
	}
	return &models.TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
}
