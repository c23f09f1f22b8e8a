// Package config centralizes environment configuration so main stays lean.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures everything the server reads from the environment. Stores
// fall back to in-memory implementations when their backing URL is unset.
type Config struct {
	Addr            string        `env:"NSCC_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"NSCC_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout  time.Duration `env:"NSCC_REQUEST_TIMEOUT" envDefault:"30s"`

	DatabaseURL string `env:"DATABASE_URL"`

	RedisURL      string        `env:"REDIS_URL"`
	EventCacheTTL time.Duration `env:"EVENT_CACHE_TTL" envDefault:"5m"`

	// Default is for development only and must be overridden in production.
	JWTSigningKey string `env:"JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer     string `env:"JWT_ISSUER" envDefault:"nscc-backend"`
	JWTAudience   string `env:"JWT_AUDIENCE" envDefault:"nscc-app"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	AuditTopic   string   `env:"AUDIT_TOPIC" envDefault:"nscc.audit"`

	// Validator knobs; see the registration validator for semantics.
	EnforceFieldConstraints bool `env:"REGISTRATION_ENFORCE_REGEX" envDefault:"false"`
	ReportAllMissing        bool `env:"REGISTRATION_REPORT_ALL_MISSING" envDefault:"false"`
}

// FromEnv parses the process environment into a Config.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
