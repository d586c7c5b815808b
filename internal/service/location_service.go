package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"geofence-api/internal/geo"
	"geofence-api/internal/gps"
	"geofence-api/internal/models"

	"github.com/rs/zerolog/log"
)

var (
	ErrMissingData    = errors.New("service: vehicle_id and gps_data are required")
	ErrInvalidGPSData = errors.New("service: invalid GPS data")
)

// LocationService decodes vehicle updates and matches them against the zone registry
type LocationService struct {
	zones     ZoneSource
	matcher   geo.Matcher
	store     FixStore
	publisher MatchPublisher
	now       func() time.Time
}

// ZoneSource provides the ordered zones to match against
type ZoneSource interface {
	Zones() []models.Zone
}

// FixStore persists vehicle fix history. It is optional.
type FixStore interface {
	RecordFix(ctx context.Context, fix models.VehicleFix) error
	LatestFix(ctx context.Context, vehicleID string) (*models.VehicleFix, error)
}

// MatchPublisher announces matched zones to downstream consumers. It is optional.
type MatchPublisher interface {
	PublishMatch(ctx context.Context, report models.LocationReport) error
}

// NewLocationService creates a new location service. store and publisher may be nil.
func NewLocationService(zones ZoneSource, matcher geo.Matcher, store FixStore, publisher MatchPublisher) *LocationService {
	return &LocationService{
		zones:     zones,
		matcher:   matcher,
		store:     store,
		publisher: publisher,
		now:       time.Now,
	}
}

// UpdateLocation decodes the vehicle's sentence, finds its zone, records the fix and publishes the match
func (s *LocationService) UpdateLocation(ctx context.Context, update models.LocationUpdate) (models.LocationReport, error) {
	if update.VehicleID == "" || update.GPSData == "" {
		return models.LocationReport{}, ErrMissingData
	}

	res := gps.DecodeSentence(update.GPSData)
	if !res.OK() {
		return models.LocationReport{}, fmt.Errorf("%w: %w", ErrInvalidGPSData, res.Err)
	}

	var nearest *models.ZoneMatch
	if match, ok := s.matcher.Nearest(res.Fix, s.zones.Zones()); ok {
		nearest = &match
	}
	report := models.NewLocationReport(update.VehicleID, res.Fix, nearest, res.Tier.String())

	if s.store != nil {
		vf := models.VehicleFix{
			VehicleID:  update.VehicleID,
			Fix:        res.Fix,
			Tier:       res.Tier.String(),
			ReceivedAt: s.now().UTC(),
		}
		if nearest != nil {
			id := nearest.ZoneID
			vf.ZoneID = &id
		}
		if err := s.store.RecordFix(ctx, vf); err != nil {
			return models.LocationReport{}, fmt.Errorf("service: failed to record fix: %w", err)
		}
	}

	if s.publisher != nil && nearest != nil {
		if err := s.publisher.PublishMatch(ctx, report); err != nil {
			log.Warn().Err(err).Str("vehicle_id", update.VehicleID).Msg("failed to publish zone match")
		}
	}

	log.Debug().
		Str("vehicle_id", update.VehicleID).
		Str("tier", report.Tier).
		Interface("nearest_client", nearest).
		Msg("location updated")
	return report, nil
}

// LatestFix returns the last recorded fix of a vehicle, or nil when there is none or history is disabled
func (s *LocationService) LatestFix(ctx context.Context, vehicleID string) (*models.VehicleFix, error) {
	if s.store == nil {
		return nil, nil
	}
	if vehicleID == "" {
		return nil, ErrMissingData
	}

	fix, err := s.store.LatestFix(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load latest fix: %w", err)
	}
	return fix, nil
}
