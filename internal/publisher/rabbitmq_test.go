package publisher

import (
	"context"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"geofence-api/internal/models"
)

type mockChannel struct {
	mock.Mock
}

func (m *mockChannel) ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error {
	return m.Called(name, kind, durable, autoDelete, internal, noWait, args).Error(0)
}

func (m *mockChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	return m.Called(ctx, exchange, key, mandatory, immediate, msg).Error(0)
}

func (m *mockChannel) Close() error {
	return m.Called().Error(0)
}

func TestNewMatchPublisher_DeclaresFanout(t *testing.T) {
	ch := new(mockChannel)
	ch.On("ExchangeDeclare", "vehicle.events", "fanout", true, false, false, false, amqp.Table(nil)).Return(nil)

	p, err := newMatchPublisher(ch, "vehicle.events")
	require.NoError(t, err)
	assert.NotNil(t, p)
	ch.AssertExpectations(t)
}

func TestNewMatchPublisher_DeclareError(t *testing.T) {
	ch := new(mockChannel)
	ch.On("ExchangeDeclare", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := newMatchPublisher(ch, "vehicle.events")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestPublishMatch(t *testing.T) {
	report := models.LocationReport{
		VehicleID:     "CAB001",
		NearestClient: &models.ZoneMatch{ZoneID: 1, ZoneName: "SVM Grand", Category: "restaurant and Hotel", DistanceKm: 1.44},
		Tier:          "fallback",
	}
	at := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		report     models.LocationReport
		publishErr error
		wantErr    error
		publishes  bool
	}{
		{name: "published", report: report, publishes: true},
		{name: "broker error", report: report, publishErr: assert.AnError, wantErr: assert.AnError, publishes: true},
		{name: "no nearest client", report: models.LocationReport{VehicleID: "CAB001"}, wantErr: ErrNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := new(mockChannel)
			p := &MatchPublisher{ch: ch, exchange: "vehicle.events", now: func() time.Time { return at }}

			var sent amqp.Publishing
			if tt.publishes {
				ch.On("PublishWithContext", mock.Anything, "vehicle.events", "", false, false, mock.AnythingOfType("amqp091.Publishing")).
					Run(func(args mock.Arguments) { sent = args.Get(5).(amqp.Publishing) }).
					Return(tt.publishErr)
			}

			err := p.PublishMatch(context.Background(), tt.report)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "application/json", sent.ContentType)
				assert.Equal(t, amqp.Persistent, sent.DeliveryMode)
				assert.JSONEq(t, `{
					"vehicle_id": "CAB001",
					"client_id": 1,
					"client_name": "SVM Grand",
					"client_type": "restaurant and Hotel",
					"distance": 1.44,
					"tier": "fallback",
					"timestamp": 1792227600
				}`, string(sent.Body))
			}
			ch.AssertExpectations(t)
		})
	}
}
