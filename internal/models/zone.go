package models

// Coordinate is a point in signed decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude" mapstructure:"latitude"`
	Longitude float64 `json:"longitude" mapstructure:"longitude"`
}

// Zone is a registered client: a named circular area around a centre point that vehicles are matched against.
type Zone struct {
	ID       int        `json:"id" mapstructure:"id"`
	Name     string     `json:"name" mapstructure:"name"`
	Category string     `json:"type" mapstructure:"type"`
	Center   Coordinate `json:"location" mapstructure:"location"`
	RadiusKm float64    `json:"radius" mapstructure:"radius"`
}

// ZoneMatch is a snapshot of the zone selected for a fix together with the vehicle's distance to its centre.
type ZoneMatch struct {
	ZoneID     int     `json:"client_id"`
	ZoneName   string  `json:"client_name"`
	Category   string  `json:"client_type"`
	DistanceKm float64 `json:"distance"`
}
