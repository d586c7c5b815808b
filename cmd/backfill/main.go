package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"geofence-api/internal/config"
	"geofence-api/internal/geo"
	"geofence-api/internal/models"
	"geofence-api/internal/registry"
	"geofence-api/internal/repository"

	"github.com/jackc/pgx/v5"
)

func main() {
	file := flag.String("file", "", "Path to the sentence log to import")
	vehicleID := flag.String("vehicle", "CAB001", "Vehicle the sentences belong to")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	fmt.Printf("Starting backfill from file: %s\n", *file)

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if cfg.DBSource == "" {
		fmt.Println("Error: db_source is not configured")
		os.Exit(1)
	}

	zones := cfg.Zones
	if len(zones) == 0 {
		zones = registry.DefaultZones()
	}
	reg, err := registry.New(zones)
	if err != nil {
		fmt.Printf("Error building client registry: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		fmt.Printf("Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	matcher := geo.Matcher{StrictNearest: cfg.Matching.StrictNearest}
	fixes, stats, err := decodeLog(f, *vehicleID, reg.Zones(), matcher, time.Now().UTC())
	if err != nil {
		fmt.Printf("Error reading log: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Decoded %d fixes (strict %d, fallback %d, rejected %d)\n",
		len(fixes), stats.Strict, stats.Fallback, stats.Rejected)

	// Connect to DB
	conn, err := pgx.Connect(context.Background(), cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close(context.Background())

	// Ensure table exists
	if _, err := conn.Exec(context.Background(), repository.Schema); err != nil {
		fmt.Printf("Error creating table: %v\n", err)
		os.Exit(1)
	}

	before, err := countFixes(conn, *vehicleID)
	if err != nil {
		fmt.Printf("Error counting fixes: %v\n", err)
		os.Exit(1)
	}

	// Insert records
	if err := insertFixes(conn, fixes); err != nil {
		fmt.Printf("Error inserting fixes: %v\n", err)
		os.Exit(1)
	}

	// Verify data
	after, err := countFixes(conn, *vehicleID)
	if err != nil {
		fmt.Printf("Error verifying backfill: %v\n", err)
		os.Exit(1)
	}
	if after-before != len(fixes) {
		fmt.Printf("Error verifying backfill: expected %d new fixes, got %d\n", len(fixes), after-before)
		os.Exit(1)
	}

	fmt.Printf("Successfully backfilled %d fixes for %s\n", len(fixes), *vehicleID)
}

func insertFixes(conn *pgx.Conn, fixes []models.VehicleFix) error {
	// Use CopyFrom for bulk insert
	_, err := conn.CopyFrom(
		context.Background(),
		pgx.Identifier{"vehicle_fixes"},
		repository.Columns,
		pgx.CopyFromSlice(len(fixes), func(i int) ([]any, error) {
			return repository.Row(fixes[i]), nil
		}),
	)
	return err
}

func countFixes(conn *pgx.Conn, vehicleID string) (int, error) {
	var count int
	err := conn.QueryRow(context.Background(), "SELECT COUNT(*) FROM vehicle_fixes WHERE vehicle_id = $1", vehicleID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count fixes: %w", err)
	}
	return count, nil
}
