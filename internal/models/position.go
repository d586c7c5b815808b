package models

import (
	"encoding/json"
	"fmt"
)

// PositionFix is one decoded positioning sentence: where the device was, how good the fix is, and when it was taken.
type PositionFix struct {
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	Altitude   float64    `json:"altitude"`
	Satellites int        `json:"satellites"`
	HDOP       float64    `json:"hdop"`
	Quality    int        `json:"quality"`
	Time       *TimeOfDay `json:"timestamp"`
}

// TimeOfDay is a UTC wall-clock time without a date, as carried by GGA sentences.
type TimeOfDay struct {
	Hour       int
	Minute     int
	Second     int
	Nanosecond int
}

// String renders the time in ISO 8601 form, adding microseconds only when they are non-zero.
func (t TimeOfDay) String() string {
	if us := t.Nanosecond / 1000; us != 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%06d", t.Hour, t.Minute, t.Second, us)
	}
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}
