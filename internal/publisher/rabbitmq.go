package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"geofence-api/internal/models"
)

// ErrNoMatch is returned when a report without a nearest client is published.
var ErrNoMatch = errors.New("publisher: report has no nearest client")

// channel is the subset of *amqp.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// MatchPublisher announces zone matches on a fanout exchange.
// An amqp channel is not safe for concurrent publishing, so calls are serialised.
type MatchPublisher struct {
	mu       sync.Mutex
	ch       channel
	exchange string
	now      func() time.Time
}

// Dial connects to the broker at url.
func Dial(url string) (*amqp.Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq connect: %w", err)
	}
	return conn, nil
}

// NewMatchPublisher opens a channel on conn and declares the durable fanout exchange.
func NewMatchPublisher(conn *amqp.Connection, exchange string) (*MatchPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	p, err := newMatchPublisher(ch, exchange)
	if err != nil {
		_ = ch.Close()
		return nil, err
	}
	return p, nil
}

func newMatchPublisher(ch channel, exchange string) (*MatchPublisher, error) {
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &MatchPublisher{ch: ch, exchange: exchange, now: time.Now}, nil
}

type matchMessage struct {
	VehicleID  string  `json:"vehicle_id"`
	ClientID   int     `json:"client_id"`
	ClientName string  `json:"client_name"`
	ClientType string  `json:"client_type"`
	Distance   float64 `json:"distance"`
	Tier       string  `json:"tier"`
	Timestamp  int64   `json:"timestamp"`
}

// PublishMatch publishes the report's nearest client as a persistent JSON message.
func (p *MatchPublisher) PublishMatch(ctx context.Context, report models.LocationReport) error {
	if report.NearestClient == nil {
		return ErrNoMatch
	}

	now := p.now()
	msg := matchMessage{
		VehicleID:  report.VehicleID,
		ClientID:   report.NearestClient.ZoneID,
		ClientName: report.NearestClient.ZoneName,
		ClientType: report.NearestClient.Category,
		Distance:   report.NearestClient.DistanceKm,
		Tier:       report.Tier,
		Timestamp:  now.Unix(),
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal match: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.PublishWithContext(ctx, p.exchange, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    now,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish match: %w", err)
	}
	return nil
}

// Close closes the underlying channel.
func (p *MatchPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.Close()
}
