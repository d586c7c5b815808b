package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"geofence-api/internal/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

// postUpdate sends one sentence to the backend and returns its report.
func postUpdate(ctx context.Context, client *http.Client, url, vehicleID, sentence string) (models.LocationReport, error) {
	var report models.LocationReport

	body, err := json.Marshal(models.LocationUpdate{VehicleID: vehicleID, GPSData: sentence})
	if err != nil {
		return report, fmt.Errorf("marshal update: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return report, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return report, fmt.Errorf("post update: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return report, fmt.Errorf("post update: status %d: %s", resp.StatusCode, e.Error)
	}

	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return report, fmt.Errorf("decode report: %w", err)
	}
	return report, nil
}
