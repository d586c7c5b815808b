package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"geofence-api/internal/models"
)

// Config stores all configuration of the application.
// Values are read from app.yaml in the config directory and can be overridden by environment variables
// (LOG_LEVEL, MQTT_BROKER, ...).
type Config struct {
	ServerAddress string         `mapstructure:"server_address"`
	DBSource      string         `mapstructure:"db_source"`
	Log           LogConfig      `mapstructure:"log"`
	Matching      MatchingConfig `mapstructure:"matching"`
	MQTT          MQTTConfig     `mapstructure:"mqtt"`
	AMQP          AMQPConfig     `mapstructure:"amqp"`
	Zones         []models.Zone  `mapstructure:"zones"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

type MatchingConfig struct {
	// StrictNearest picks the closest zone instead of letting a later zone that contains the fix win.
	StrictNearest bool `mapstructure:"strict_nearest"`
}

// MQTTConfig enables ingest of location updates over MQTT when Broker is set.
type MQTTConfig struct {
	Broker   string `mapstructure:"broker"`
	ClientID string `mapstructure:"client_id"`
	Topic    string `mapstructure:"topic"`
	QoS      byte   `mapstructure:"qos"`
}

// AMQPConfig enables publishing of zone matches when URL is set.
type AMQPConfig struct {
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

// LoadConfig reads configuration from app.yaml in path, if present, and from the environment.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("yaml")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server_address", "0.0.0.0:5000")
	v.SetDefault("db_source", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("matching.strict_nearest", false)
	v.SetDefault("mqtt.broker", "")
	v.SetDefault("mqtt.client_id", "geofence-api")
	v.SetDefault("mqtt.topic", "vehicles/+/gps")
	v.SetDefault("mqtt.qos", 1)
	v.SetDefault("amqp.url", "")
	v.SetDefault("amqp.exchange", "vehicle.events")

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, fmt.Errorf("config: failed to read config: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("config: failed to decode config: %w", err)
	}

	if config.MQTT.QoS > 2 {
		return config, fmt.Errorf("config: mqtt.qos must be 0, 1 or 2, got %d", config.MQTT.QoS)
	}
	return config, nil
}
