package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppHost                string `env:"APP_HOST" envDefault:"127.0.0.1"`
	AppPort                string `env:"APP_PORT" envDefault:"8080"`
	DatabaseDriver         string `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	DatabaseDSN            string `env:"DATABASE_DSN" envDefault:"tasks.db"`
	PrivilegedDatabaseDSN  string `env:"DATABASE_PRIVILEGED_DSN"`
	RedisHost              string `env:"REDIS_HOST" envDefault:"127.0.0.1"`
	RedisPort              string `env:"REDIS_PORT" envDefault:"6379"`
	SessionKeyPrefix       string `env:"SESSION_KEY_PREFIX" envDefault:"session:"`
	SessionCookie          string `env:"SESSION_COOKIE" envDefault:"session"`
	JWTSecret              string `env:"AUTH_JWT_SECRET"`
	AllowUnsignedTokens    bool   `env:"AUTH_ALLOW_UNSIGNED_TOKENS"`
	RateLimit              int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"60"`
	AuditWorkers           int    `env:"AUDIT_WORKERS" envDefault:"2"`
	AuditQueueSize         int    `env:"AUDIT_QUEUE_SIZE" envDefault:"256"`
	ShutdownTimeoutSeconds int    `env:"SHUTDOWN_TIMEOUT_SECONDS" envDefault:"20"`
	OtelEndpoint           string `env:"OTEL_ENDPOINT"`
	ServiceName            string `env:"OTEL_SERVICE_NAME" envDefault:"task-market"`
}

func (c Config) AppURL() string {
	return fmt.Sprintf("%s:%s", c.AppHost, c.AppPort)
}

// UnsignedTokens reports whether bearer tokens are accepted without a
// signature check, relying on the profile lookup alone.
func (c Config) UnsignedTokens() bool {
	return c.JWTSecret == ""
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// Load reads .env (if present) and the environment, exiting on invalid values.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using environment variables")
	}

	cfg, err := Parse()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}

func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.PrivilegedDatabaseDSN == "" {
		cfg.PrivilegedDatabaseDSN = cfg.DatabaseDSN
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	if cfg.AppHost == "" || cfg.AppPort == "" {
		return errors.New("APP_HOST and APP_PORT must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "mysql" {
		return errors.New("DATABASE_DRIVER must be sqlite or mysql")
	}
	if cfg.DatabaseDSN == "" {
		return errors.New("DATABASE_DSN must not be empty")
	}
	if cfg.JWTSecret == "" && cfg.DatabaseDriver != "sqlite" && !cfg.AllowUnsignedTokens {
		return errors.New("AUTH_JWT_SECRET must be set unless AUTH_ALLOW_UNSIGNED_TOKENS=true")
	}
	if cfg.SessionKeyPrefix == "" {
		return errors.New("SESSION_KEY_PREFIX must not be empty")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.AuditWorkers <= 0 {
		return errors.New("AUDIT_WORKERS must be greater than 0")
	}
	if cfg.AuditQueueSize <= 0 {
		return errors.New("AUDIT_QUEUE_SIZE must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}
