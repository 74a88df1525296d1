// Package configs parses the application configuration from environment
// variables.
package configs

import (
	"time"

	"github.com/caarlos0/env/v6"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "PAYMENT_GATEWAY_"

type Config struct {
	Host                 string        `env:"HOST"`
	Port                 int           `env:"PORT" envDefault:"3000"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	ServerRequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"60s"`

	DatabaseDSN  string `env:"DATABASE_DSN" envDefault:"gateway.db"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`

	// Durable store for the settings record: local, shared (main SQL
	// database) or redis.
	KeyValueStoreType string `env:"KEYVALUE_STORE_TYPE" envDefault:"shared"`
	KeyValueRedisURL  string `env:"KEYVALUE_REDIS_URL"`

	DisableIdempotencyMiddleware bool   `env:"DISABLE_IDEMPOTENCY_MIDDLEWARE" envDefault:"false"`
	IdempotencyStoreType         string `env:"IDEMPOTENCY_MIDDLEWARE_STORE_TYPE" envDefault:"shared"`
	IdempotencyRedisURL          string `env:"IDEMPOTENCY_MIDDLEWARE_REDIS_URL"`

	// Maximum number of settings updates accepted per second.
	SettingsMaxUpdateRate int `env:"SETTINGS_MAX_UPDATE_RATE" envDefault:"10"`

	// Webhook notified of every settings update, disabled when empty.
	SettingsWebhookURL     string        `env:"SETTINGS_WEBHOOK_URL"`
	SettingsWebhookTimeout time.Duration `env:"SETTINGS_WEBHOOK_TIMEOUT" envDefault:"10s"`
}

// Parse parses environment variables into a Config.
func Parse() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConfigureLogger sets the global log level. An unknown level falls back to
// info.
func ConfigureLogger(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
		log.WithFields(log.Fields{"level": level}).Warn("Unknown log level, using info")
	}
	log.SetLevel(lvl)
}
