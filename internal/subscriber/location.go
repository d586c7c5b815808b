package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"geofence-api/internal/config"
	"geofence-api/internal/models"
)

const handleTimeout = 10 * time.Second

type locationService interface {
	UpdateLocation(ctx context.Context, update models.LocationUpdate) (models.LocationReport, error)
}

// LocationSubscriber feeds location updates received over MQTT into the location service.
type LocationSubscriber struct {
	client mqtt.Client
	topic  string
	qos    byte
	svc    locationService
}

// Connect opens a client connection to the configured broker.
func Connect(cfg config.MQTTConfig) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			log.Warn().Err(err).Msg("mqtt connection lost")
		})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return client, nil
}

func NewLocationSubscriber(client mqtt.Client, topic string, qos byte, svc locationService) *LocationSubscriber {
	return &LocationSubscriber{
		client: client,
		topic:  topic,
		qos:    qos,
		svc:    svc,
	}
}

// Start subscribes to the location topic. Messages are handled on paho's callback goroutine.
func (s *LocationSubscriber) Start() error {
	token := s.client.Subscribe(s.topic, s.qos, s.handleMessage)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt subscribe %s: %w", s.topic, err)
	}
	log.Info().Str("topic", s.topic).Uint8("qos", s.qos).Msg("subscribed to location updates")
	return nil
}

// Stop unsubscribes and disconnects, waiting up to 250ms for in-flight work.
func (s *LocationSubscriber) Stop() {
	if token := s.client.Unsubscribe(s.topic); token.Wait() && token.Error() != nil {
		log.Warn().Err(token.Error()).Str("topic", s.topic).Msg("mqtt unsubscribe failed")
	}
	s.client.Disconnect(250)
}

func (s *LocationSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	update, err := decodeMessage(msg.Payload(), vehicleFromTopic(s.topic, msg.Topic()))
	if err != nil {
		log.Warn().Err(err).Str("topic", msg.Topic()).Msg("invalid location message")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	report, err := s.svc.UpdateLocation(ctx, update)
	if err != nil {
		log.Warn().Err(err).Str("vehicle_id", update.VehicleID).Msg("location update rejected")
		return
	}

	ev := log.Debug().Str("vehicle_id", report.VehicleID).Str("tier", report.Tier)
	if report.NearestClient != nil {
		ev = ev.Str("client_name", report.NearestClient.ZoneName).Float64("distance", report.NearestClient.DistanceKm)
	}
	ev.Msg("mqtt location processed")
}

// decodeMessage accepts either a LocationUpdate document or a bare sentence.
// topicVehicle fills in a missing vehicle id.
func decodeMessage(payload []byte, topicVehicle string) (models.LocationUpdate, error) {
	var update models.LocationUpdate

	trimmed := strings.TrimSpace(string(payload))
	switch {
	case strings.HasPrefix(trimmed, "$"):
		update.GPSData = trimmed
	default:
		if err := json.Unmarshal(payload, &update); err != nil {
			return update, fmt.Errorf("decode payload: %w", err)
		}
	}

	if update.VehicleID == "" {
		update.VehicleID = topicVehicle
	}
	if update.VehicleID == "" {
		return update, fmt.Errorf("vehicle_id: required")
	}
	if update.GPSData == "" {
		return update, fmt.Errorf("gps_data: required")
	}
	return update, nil
}

// vehicleFromTopic returns the topic level matched by the first single-level
// wildcard of pattern, or "" when topic does not line up with pattern.
func vehicleFromTopic(pattern, topic string) string {
	want := strings.Split(pattern, "/")
	got := strings.Split(topic, "/")
	if len(want) != len(got) {
		return ""
	}
	for i, level := range want {
		if level == "+" {
			return got[i]
		}
	}
	return ""
}
