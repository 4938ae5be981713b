package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Primary Primary      `koanf:"primary"`
	Server  ServerConfig `koanf:"server"`
	Woo     WooConfig    `koanf:"woo"`
	Mpesa   MpesaConfig  `koanf:"mpesa"`
	Poller  PollerConfig `koanf:"poller"`
	Retry   RetryConfig  `koanf:"retry"`
	Logger  LoggerConfig `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port        string        `koanf:"port" validate:"required"`
	ReadTimeout time.Duration `koanf:"read_timeout" validate:"required"`
	// WriteTimeout must exceed poller.max_wait: the /checkout route holds the
	// response open for the full bounded poll.
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

// WooConfig holds the commerce backend credentials. The key/secret pair is
// sent as Basic auth on every catalog and order call.
type WooConfig struct {
	BaseURL        string        `koanf:"base_url" validate:"required"`
	ConsumerKey    string        `koanf:"consumer_key" validate:"required"`
	ConsumerSecret string        `koanf:"consumer_secret" validate:"required"`
	ConnTimeout    time.Duration `koanf:"conn_timeout" validate:"required"`
}

// MpesaConfig holds the Daraja gateway credentials and endpoints.
type MpesaConfig struct {
	BaseURL        string        `koanf:"base_url" validate:"required"`
	StatusURL      string        `koanf:"status_url" validate:"required"`
	ConsumerKey    string        `koanf:"consumer_key" validate:"required"`
	ConsumerSecret string        `koanf:"consumer_secret" validate:"required"`
	ShortCode      string        `koanf:"short_code" validate:"required"`
	PassKey        string        `koanf:"pass_key" validate:"required"`
	CallbackURL    string        `koanf:"callback_url" validate:"required"`
	ConnTimeout    time.Duration `koanf:"conn_timeout" validate:"required"`
}

type PollerConfig struct {
	Interval time.Duration `koanf:"interval" validate:"required"`
	MaxWait  time.Duration `koanf:"max_wait" validate:"required"`
}

type RetryConfig struct {
	BaseDelay  int32 `koanf:"base_delay"`
	MaxRetries int32 `koanf:"max_retries"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

// LoadConfig reads configuration from STOREFRONT_-prefixed environment
// variables (a .env file is loaded if present). Missing required values fail
// here, at startup, never per-request.
func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider("STOREFRONT_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "STOREFRONT_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}
