package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"geofence-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the fix history table. It is safe to run repeatedly.
const Schema = `
	CREATE TABLE IF NOT EXISTS vehicle_fixes (
		id BIGSERIAL PRIMARY KEY,
		vehicle_id VARCHAR(64) NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		altitude DOUBLE PRECISION NOT NULL DEFAULT 0,
		satellites INTEGER NOT NULL DEFAULT 0,
		hdop DOUBLE PRECISION NOT NULL DEFAULT 0,
		quality INTEGER NOT NULL DEFAULT 0,
		fix_time TIME,
		client_id INTEGER,
		decoded_by VARCHAR(16) NOT NULL,
		received_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS vehicle_fixes_vehicle_received_idx ON vehicle_fixes (vehicle_id, received_at DESC);
`

// Columns lists the vehicle_fixes columns written by RecordFix and Row, in order.
var Columns = []string{
	"vehicle_id", "latitude", "longitude", "altitude", "satellites", "hdop",
	"quality", "fix_time", "client_id", "decoded_by", "received_at",
}

// Repository stores vehicle fix history in PostgreSQL
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// EnsureSchema creates the history table and its index if they do not exist
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// RecordFix appends one fix to a vehicle's history
func (r *Repository) RecordFix(ctx context.Context, fix models.VehicleFix) error {
	sql := `
		INSERT INTO vehicle_fixes (
			vehicle_id, latitude, longitude, altitude, satellites, hdop,
			quality, fix_time, client_id, decoded_by, received_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	if _, err := r.db.Exec(ctx, sql, Row(fix)...); err != nil {
		return fmt.Errorf("repository: failed to insert fix: %w", err)
	}
	return nil
}

// LatestFix returns the most recently received fix of a vehicle, or nil when it has none
func (r *Repository) LatestFix(ctx context.Context, vehicleID string) (*models.VehicleFix, error) {
	sql := `
		SELECT
			vehicle_id,
			latitude,
			longitude,
			altitude,
			satellites,
			hdop,
			quality,
			fix_time,
			client_id,
			decoded_by,
			received_at
		FROM vehicle_fixes
		WHERE vehicle_id = $1
		ORDER BY received_at DESC, id DESC
		LIMIT 1
	`

	var (
		vf      models.VehicleFix
		fixTime pgtype.Time
	)
	err := r.db.QueryRow(ctx, sql, vehicleID).Scan(
		&vf.VehicleID,
		&vf.Fix.Latitude,
		&vf.Fix.Longitude,
		&vf.Fix.Altitude,
		&vf.Fix.Satellites,
		&vf.Fix.HDOP,
		&vf.Fix.Quality,
		&fixTime,
		&vf.ZoneID,
		&vf.Tier,
		&vf.ReceivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("repository: failed to query latest fix: %w", err)
	}

	vf.Fix.Time = fromPgTime(fixTime)
	return &vf, nil
}

// Row returns the values of fix in Columns order, for INSERT and COPY.
func Row(fix models.VehicleFix) []any {
	return []any{
		fix.VehicleID,
		fix.Fix.Latitude,
		fix.Fix.Longitude,
		fix.Fix.Altitude,
		fix.Fix.Satellites,
		fix.Fix.HDOP,
		fix.Fix.Quality,
		toPgTime(fix.Fix.Time),
		fix.ZoneID,
		fix.Tier,
		fix.ReceivedAt,
	}
}

func toPgTime(t *models.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	d := time.Duration(t.Hour)*time.Hour +
		time.Duration(t.Minute)*time.Minute +
		time.Duration(t.Second)*time.Second +
		time.Duration(t.Nanosecond)
	return pgtype.Time{Microseconds: d.Microseconds(), Valid: true}
}

func fromPgTime(t pgtype.Time) *models.TimeOfDay {
	if !t.Valid {
		return nil
	}
	d := time.Duration(t.Microseconds) * time.Microsecond
	return &models.TimeOfDay{
		Hour:       int(d / time.Hour),
		Minute:     int(d % time.Hour / time.Minute),
		Second:     int(d % time.Minute / time.Second),
		Nanosecond: int(d % time.Second),
	}
}
