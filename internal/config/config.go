// Package config loads animtrack settings from defaults, an optional YAML
// file and ANIMTRACK_* environment variables, in increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

const (
	DefaultEnvPrefix  = "ANIMTRACK"
	DefaultConfigName = "animtrack"

	DefaultMQTTURL   = "tcp://localhost:1883"
	DefaultMQTTTopic = "animtrack/frames"
	DefaultTick      = 40 * time.Millisecond
)

type Config struct {
	LogLevel string         `mapstructure:"log_level"`
	ClipsDir string         `mapstructure:"clips_dir"`
	MQTT     MQTTConfig     `mapstructure:"mqtt"`
	Playback PlaybackConfig `mapstructure:"playback"`
	Sampling SamplingConfig `mapstructure:"sampling"`
}

type MQTTConfig struct {
	URL            string        `mapstructure:"url"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	Topic          string        `mapstructure:"topic"`
	ClientID       string        `mapstructure:"client_id"` // session ID is appended
	QoS            byte          `mapstructure:"qos"`
	Retained       bool          `mapstructure:"retained"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

type PlaybackConfig struct {
	Speed   float64       `mapstructure:"speed"`
	Looping bool          `mapstructure:"looping"`
	Easing  string        `mapstructure:"easing"`
	Tick    time.Duration `mapstructure:"tick"`
	// Channels limits what is published; empty means every channel.
	Channels []string `mapstructure:"channels"`
}

type SamplingConfig struct {
	Step float64 `mapstructure:"step"`
}

var defaults = map[string]any{
	"log_level":            "info",
	"clips_dir":            "clips",
	"mqtt.url":             DefaultMQTTURL,
	"mqtt.username":        "",
	"mqtt.password":        "",
	"mqtt.topic":           DefaultMQTTTopic,
	"mqtt.client_id":       "animtrack",
	"mqtt.qos":             0,
	"mqtt.retained":        false,
	"mqtt.connect_timeout": "5s",
	"playback.speed":       1.0,
	"playback.looping":     false,
	"playback.easing":      "",
	"playback.tick":        DefaultTick.String(),
	"playback.channels":    []string{},
	"sampling.step":        1.0,
}

// Load reads the configuration. An empty path searches the working directory
// for animtrack.yaml and ignores its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.NewWithOptions(
		viper.KeyDelimiter("."),
		viper.EnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_")),
	)

	v.SetEnvPrefix(DefaultEnvPrefix)
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	for key, value := range defaults {
		_ = v.BindEnv(key)
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	decodeHooks := mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)

	config := &Config{}
	if err := v.Unmarshal(config, viper.DecodeHook(decodeHooks)); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects values playback cannot work with.
func (c *Config) Validate() error {
	if c.Playback.Speed <= 0 {
		return fmt.Errorf("playback.speed must be positive, got %v", c.Playback.Speed)
	}
	if c.Playback.Tick <= 0 {
		return fmt.Errorf("playback.tick must be positive, got %v", c.Playback.Tick)
	}
	if c.Sampling.Step <= 0 {
		return fmt.Errorf("sampling.step must be positive, got %v", c.Sampling.Step)
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt.qos must be 0, 1 or 2, got %d", c.MQTT.QoS)
	}
	return nil
}
