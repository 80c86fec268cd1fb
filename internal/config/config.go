package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port        string `env:"PORT"         envDefault:"8080"`
	Env         string `env:"ENV"          envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`
	Store       string `env:"STORE"        envDefault:"postgres"`
	DatabaseURL string `env:"DATABASE_URL"`
	SeedFile    string `env:"SEED_FILE"`

	JWTSecret       string        `env:"JWT_SECRET,required,notEmpty"`
	JWTAccessExpiry time.Duration `env:"JWT_ACCESS_EXPIRY" envDefault:"15m"`

	BaseURL       string        `env:"BASE_URL"        envDefault:"http://localhost:8080"`
	ClaimTokenTTL time.Duration `env:"CLAIM_TOKEN_TTL" envDefault:"168h"`

	Redis        RedisConfig
	PreviewLimit RateLimitConfig
	OTel         OTelConfig
	SMTP         SMTPConfig
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// RateLimitConfig bounds unauthenticated access-code previews per client.
type RateLimitConfig struct {
	Limit  int           `env:"PREVIEW_RATE_LIMIT"  envDefault:"20"`
	Window time.Duration `env:"PREVIEW_RATE_WINDOW" envDefault:"1m"`
}

type OTelConfig struct {
	Endpoint    string `env:"OTEL_ENDPOINT"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"baseline-api"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     string `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when STORE=postgres")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown STORE %q", c.Store)
	}
	if c.ClaimTokenTTL <= 0 {
		return errors.New("CLAIM_TOKEN_TTL must be positive")
	}
	if c.PreviewLimit.Limit <= 0 || c.PreviewLimit.Window <= 0 {
		return errors.New("preview rate limit and window must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
