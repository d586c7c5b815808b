package models

import "time"

// LocationUpdate is a raw report from a vehicle: its identifier and one positioning sentence.
type LocationUpdate struct {
	VehicleID string `json:"vehicle_id"`
	GPSData   string `json:"gps_data"`
}

// ReportedLocation is the decoded position returned to the caller of an update.
type ReportedLocation struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Altitude   float64 `json:"altitude"`
	Satellites int     `json:"satellites"`
	HDOP       float64 `json:"hdop"`
	Quality    int     `json:"quality"`
}

// LocationReport is the outcome of processing a LocationUpdate.
type LocationReport struct {
	VehicleID     string           `json:"vehicle_id"`
	Timestamp     *string          `json:"timestamp"`
	Location      ReportedLocation `json:"location"`
	NearestClient *ZoneMatch       `json:"nearest_client"`
	Tier          string           `json:"decoded_by"`
}

// VehicleFix is one row of a vehicle's position history.
type VehicleFix struct {
	VehicleID  string      `json:"vehicle_id"`
	Fix        PositionFix `json:"fix"`
	ZoneID     *int        `json:"client_id"`
	Tier       string      `json:"decoded_by"`
	ReceivedAt time.Time   `json:"received_at"`
}

// NewLocationReport builds the response for a decoded fix and its (possibly absent) match.
func NewLocationReport(vehicleID string, fix PositionFix, match *ZoneMatch, tier string) LocationReport {
	var ts *string
	if fix.Time != nil {
		s := fix.Time.String()
		ts = &s
	}
	return LocationReport{
		VehicleID: vehicleID,
		Timestamp: ts,
		Location: ReportedLocation{
			Latitude:   fix.Latitude,
			Longitude:  fix.Longitude,
			Altitude:   fix.Altitude,
			Satellites: fix.Satellites,
			HDOP:       fix.HDOP,
			Quality:    fix.Quality,
		},
		NearestClient: match,
		Tier:          tier,
	}
}
