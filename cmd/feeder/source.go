package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	serial "github.com/jacobsa/go-serial/serial"

	"geofence-api/internal/gps"
	"geofence-api/internal/models"
)

// Source yields one GGA sentence per call.
type Source interface {
	Next(ctx context.Context) (string, error)
	Close() error
}

// fileSource re-reads a file that a receiver keeps overwriting with its latest sentence.
type fileSource struct {
	path string
}

func (s *fileSource) Next(_ context.Context) (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", s.path, err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line, nil
		}
	}
	return "", fmt.Errorf("read %s: file is empty", s.path)
}

func (s *fileSource) Close() error { return nil }

// serialSource reads sentences from a receiver attached to a serial port.
type serialSource struct {
	port   io.ReadWriteCloser
	reader *bufio.Reader
}

func openSerial(portName string, baud uint) (*serialSource, error) {
	port, err := serial.Open(serial.OpenOptions{
		PortName:        portName,
		BaudRate:        baud,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
		ParityMode:      serial.PARITY_NONE,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial %s: %w", portName, err)
	}
	return &serialSource{port: port, reader: bufio.NewReader(port)}, nil
}

// Next skips everything up to the next GGA sentence. The receiver's other
// sentences are of no use to the backend.
func (s *serialSource) Next(ctx context.Context) (string, error) {
	return nextGGA(ctx, s.reader)
}

func (s *serialSource) Close() error { return s.port.Close() }

func nextGGA(ctx context.Context, r *bufio.Reader) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		line, err := r.ReadString('\n')
		line = strings.TrimSpace(line)
		if isGGA(line) {
			return line, nil
		}
		if err != nil {
			return "", fmt.Errorf("read sentence: %w", err)
		}
	}
}

func isGGA(line string) bool {
	return len(line) > 6 && line[0] == '$' && line[3:6] == "GGA"
}

// simSource drives a vehicle around a circle, one step per call.
type simSource struct {
	center   models.Coordinate
	radiusKm float64
	stepDeg  float64
	step     int
	now      func() time.Time
}

const kmPerDegree = 111.32

func (s *simSource) Next(_ context.Context) (string, error) {
	bearing := float64(s.step) * s.stepDeg * math.Pi / 180
	s.step++

	lat := s.center.Latitude + s.radiusKm/kmPerDegree*math.Cos(bearing)
	lon := s.center.Longitude + s.radiusKm/(kmPerDegree*math.Cos(s.center.Latitude*math.Pi/180))*math.Sin(bearing)

	t := s.now().UTC()
	fix := models.PositionFix{
		Latitude:   lat,
		Longitude:  lon,
		Altitude:   545.4,
		Satellites: 8,
		HDOP:       0.9,
		Quality:    1,
		Time:       &models.TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()},
	}
	return gps.EncodeGGA(fix), nil
}

func (s *simSource) Close() error { return nil }
