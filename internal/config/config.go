// internal/config/config.go
//
// Typed configuration for the num game server, parsed from environment
// variables. `.env` files are loaded by main before Load is called.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable of the server. Defaults make a bare
// `go run .` work against the real OEIS API.
type Config struct {
	// Port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"5175"`

	// ClientOrigin is the single origin allowed by credentialed CORS.
	ClientOrigin string `env:"CLIENT_ORIGIN" envDefault:"http://localhost:5173"`

	// LogLevel is a zerolog level name (trace..panic).
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// OEISBaseURL is the sequence database endpoint, overridable for tests.
	OEISBaseURL string `env:"OEIS_BASE_URL" envDefault:"https://oeis.org"`

	// PoolFile optionally replaces the embedded seed pool of identifiers.
	PoolFile string `env:"POOL_FILE"`

	// FetchRetryDelay is the pause before re-attempting a failed fetch
	// with a fresh identifier.
	FetchRetryDelay time.Duration `env:"FETCH_RETRY_DELAY" envDefault:"1500ms"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
