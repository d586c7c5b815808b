package gps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"geofence-api/internal/models"
)

const validGGA = "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47"

func TestDecodeSentence_Strict(t *testing.T) {
	res := DecodeSentence(validGGA)

	require.True(t, res.OK())
	assert.Equal(t, Strict, res.Tier)
	assert.NoError(t, res.Err)
	assert.Equal(t, models.PositionFix{
		Latitude:   48.1173,
		Longitude:  11.516667,
		Altitude:   545.4,
		Satellites: 8,
		HDOP:       0.9,
		Quality:    1,
		Time:       &models.TimeOfDay{Hour: 12, Minute: 35, Second: 19},
	}, res.Fix)
}

func TestDecodeSentence_ChecksumIgnored(t *testing.T) {
	zero := DecodeSentence("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*00")
	ff := DecodeSentence("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*FF")
	valid := DecodeSentence(validGGA)

	require.True(t, zero.OK())
	assert.Equal(t, zero, ff)
	assert.Equal(t, valid.Fix, zero.Fix)
}

func TestDecodeSentence_FallbackMatchesStrict(t *testing.T) {
	strict := DecodeSentence(validGGA)
	// No checksum separator: the strict parser refuses it.
	fallback := DecodeSentence("$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,")

	require.Equal(t, Strict, strict.Tier)
	require.Equal(t, Fallback, fallback.Tier)
	assert.Equal(t, strict.Fix, fallback.Fix)
}

func TestDecodeSentence_SouthWest(t *testing.T) {
	for _, sentence := range []string{
		"$GPGGA,123519,1724.2473,S,07833.5431,W,1,08,0.9,545.4,M,46.9,M,,*00",
		"GPGGA,123519,1724.2473,S,07833.5431,W,1,08,0.9,545.4,M,46.9,M,,",
	} {
		fix, ok := Decode(sentence)
		require.True(t, ok, sentence)
		assert.Equal(t, -17.404122, fix.Latitude)
		assert.Equal(t, -78.559052, fix.Longitude)
	}
}

func TestDecodeSentence_EmptyOptionalFieldsDefault(t *testing.T) {
	fix, ok := Decode("GPGGA,,1724.2473,N,07833.5431,E,,,,,M,,M,,")

	require.True(t, ok)
	assert.Equal(t, models.PositionFix{Latitude: 17.404122, Longitude: 78.559052}, fix)
}

func TestDecodeSentence_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		reason   error
	}{
		{
			name:     "fewer than fifteen fields",
			sentence: "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M",
			reason:   ErrTooFewFields,
		},
		{
			name:     "empty latitude",
			sentence: "$GPGGA,123519,,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,*47",
			reason:   ErrMissingCoordinate,
		},
		{
			name:     "empty longitude",
			sentence: "$GPGGA,123519,4807.038,N,,E,1,08,0.9,545.4,M,46.9,M,,",
			reason:   ErrMissingCoordinate,
		},
		{
			name:     "unparsable latitude",
			sentence: "$GPGGA,123519,48x7.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,",
			reason:   ErrBadCoordinate,
		},
		{
			name:     "fractional seconds are not hhmmss",
			sentence: "$GPGGA,123519.50,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,",
			reason:   ErrBadField,
		},
		{
			name:     "non numeric quality",
			sentence: "$GPGGA,123519,4807.038,N,01131.000,E,x,08,0.9,545.4,M,46.9,M,,",
			reason:   ErrBadField,
		},
		{
			name:     "non numeric altitude",
			sentence: "$GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,high,M,46.9,M,,",
			reason:   ErrBadField,
		},
		{
			name:     "other sentence type",
			sentence: "$GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W*6A",
			reason:   ErrTooFewFields,
		},
		{
			name:     "empty input",
			sentence: "",
			reason:   ErrTooFewFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := DecodeSentence(tt.sentence)

			assert.False(t, res.OK())
			assert.Equal(t, Rejected, res.Tier)
			assert.ErrorIs(t, res.Err, tt.reason)
			assert.Equal(t, models.PositionFix{}, res.Fix)

			_, ok := Decode(tt.sentence)
			assert.False(t, ok)
		})
	}
}

func TestDecodeFallback_CoordinateWithoutDegrees(t *testing.T) {
	_, err := decodeFallback("$GPGGA,123519,07.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,")

	assert.ErrorIs(t, err, ErrBadCoordinate)
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "strict", Strict.String())
	assert.Equal(t, "fallback", Fallback.String())
	assert.Equal(t, "rejected", Rejected.String())
}
