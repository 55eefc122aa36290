// internal/config/config.go
//
// Process configuration, parsed from the environment. main loads .env first
// so local development and deployment both go through the same path.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the full runtime configuration.
type Config struct {
	Port      string `env:"PORT" envDefault:"5010"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	// SecretKey signs the anonymous player cookie. Override it anywhere
	// that is not a laptop.
	SecretKey string `env:"SECRET_KEY" envDefault:"dev_secret_change_me"`

	DBPath string `env:"DB_PATH" envDefault:"./data/minesweeper.db"`

	// ClientOrigin is the CORS origin allowed to call the API from the
	// browser. The embedded client is same-origin and unaffected.
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"*"`

	// SessionTTL is the idle window before a game expires. The short default
	// makes expiry part of normal play.
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"3s"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1s"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

// Addr is the HTTP listen address.
func (c Config) Addr() string { return ":" + c.Port }
