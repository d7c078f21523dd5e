// Package config loads the typed configuration a neolith server needs at
// startup: the bounds the frame stack and input buffer enforce, the
// listen addresses, and the notify-fail default message.
package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ErrInvalidConfig wraps a failed validation check after load.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full set of driver-wide tunables. Field names echo the
// CONFIG_INT/CONFIG_STR keys they replace (MAX_CALL_DEPTH, MAX_USERS,
// MAX_TEXT, __DEFAULT_FAIL_MESSAGE__) so a reader who knows the original
// constants can find their new home immediately.
type Config struct {
	MaxUsers    int           `mapstructure:"max_users"`
	MaxCallDepth int          `mapstructure:"max_call_depth"`
	MaxText     int           `mapstructure:"max_text"`
	DefaultFailMessage string `mapstructure:"default_fail_message"`

	ListenTelnet   string `mapstructure:"listen_telnet"`
	ListenWebsocket string `mapstructure:"listen_websocket"`

	TickInterval time.Duration `mapstructure:"tick_interval"`

	// StripEscapes mirrors the NO_ANSI + STRIP_BEFORE_PROCESS_INPUT build
	// flags folded into one runtime switch: when set, every ESC byte in a
	// command is replaced with a space before it reaches the
	// preprocessor/parser; the rest of an escape sequence is left in place.
	StripEscapes bool `mapstructure:"strip_escapes"`

	LogLevel string `mapstructure:"log_level"`
}

// defaults mirrors the original driver's compiled-in constants so a
// config file only needs to override what it cares about.
func defaults() Config {
	return Config{
		MaxUsers:           100,
		MaxCallDepth:        30,
		MaxText:             2048,
		DefaultFailMessage: "What?",
		ListenTelnet:        ":4242",
		ListenWebsocket:     ":4243",
		TickInterval:        2 * time.Second,
		StripEscapes:        false,
		LogLevel:            "info",
	}
}

// Load reads a YAML config file at path through viper, overlaying it on
// top of the compiled-in defaults, and validates the result. An empty
// path loads defaults only.
func Load(path string) (*Config, error) {
	cfg := defaults()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("max_users", cfg.MaxUsers)
	v.SetDefault("max_call_depth", cfg.MaxCallDepth)
	v.SetDefault("max_text", cfg.MaxText)
	v.SetDefault("default_fail_message", cfg.DefaultFailMessage)
	v.SetDefault("listen_telnet", cfg.ListenTelnet)
	v.SetDefault("listen_websocket", cfg.ListenWebsocket)
	v.SetDefault("tick_interval", cfg.TickInterval)
	v.SetDefault("strip_escapes", cfg.StripEscapes)
	v.SetDefault("log_level", cfg.LogLevel)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: reading %s", path)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: unmarshal")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if c.MaxUsers <= 0 {
		return errors.Wrap(ErrInvalidConfig, "max_users must be positive")
	}
	if c.MaxCallDepth <= 0 {
		return errors.Wrap(ErrInvalidConfig, "max_call_depth must be positive")
	}
	if c.MaxText <= 0 {
		return errors.Wrap(ErrInvalidConfig, "max_text must be positive")
	}
	return nil
}
