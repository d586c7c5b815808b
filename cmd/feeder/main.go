// Command feeder reads positioning sentences from a file, a serial receiver or
// a simulator and reports them to the geofence API at a fixed interval.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"geofence-api/internal/models"
	"geofence-api/internal/registry"
)

func main() {
	url := flag.String("url", "http://localhost:5000/update-location", "update-location endpoint")
	vehicleID := flag.String("vehicle", "CAB001", "vehicle id to report as")
	interval := flag.Duration("interval", 5*time.Second, "time between updates")
	file := flag.String("file", "gps.txt", "file holding the latest sentence")
	port := flag.String("serial", "", "serial port of a receiver, e.g. /dev/ttyUSB0 (overrides -file)")
	baud := flag.Uint("baud", 9600, "serial baud rate")
	simulate := flag.Bool("simulate", false, "generate sentences instead of reading them")
	radius := flag.Float64("radius", 3, "simulated orbit radius in km")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var src Source
	switch {
	case *simulate:
		// orbit the first default client
		center := registry.DefaultZones()[0].Center
		src = &simSource{center: center, radiusKm: *radius, stepDeg: 10, now: time.Now}
		log.Info().Float64("lat", center.Latitude).Float64("lon", center.Longitude).Float64("radius_km", *radius).Msg("simulating vehicle")
	case *port != "":
		s, err := openSerial(*port, *baud)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot open receiver")
		}
		src = s
		log.Info().Str("port", *port).Uint("baud", *baud).Msg("reading receiver")
	default:
		src = &fileSource{path: *file}
		log.Info().Str("file", *file).Msg("reading sentence file")
	}
	defer src.Close()

	f := &feeder{
		src:       src,
		client:    &http.Client{Timeout: 5 * time.Second},
		url:       *url,
		vehicleID: *vehicleID,
	}
	f.run(ctx, *interval)
}

type feeder struct {
	src       Source
	client    *http.Client
	url       string
	vehicleID string
	current   string
}

func (f *feeder) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		f.tick(ctx)
		select {
		case <-ctx.Done():
			log.Info().Msg("feeder stopped")
			return
		case <-ticker.C:
		}
	}
}

// tick sends one update and logs when the nearest client changes.
func (f *feeder) tick(ctx context.Context) {
	sentence, err := f.src.Next(ctx)
	if err != nil {
		log.Error().Err(err).Msg("no sentence")
		return
	}

	report, err := postUpdate(ctx, f.client, f.url, f.vehicleID, sentence)
	if err != nil {
		log.Error().Err(err).Str("sentence", sentence).Msg("location update failed")
		return
	}

	name := clientName(report.NearestClient)
	if name != f.current {
		log.Info().Str("previous", f.current).Str("client", name).Msg("nearest client changed")
		f.current = name
	}
	log.Debug().Str("client", name).Str("tier", report.Tier).Msg("location sent")
}

func clientName(m *models.ZoneMatch) string {
	if m == nil {
		return ""
	}
	return m.ZoneName
}
