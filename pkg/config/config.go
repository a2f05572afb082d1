package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv         string `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr       string `envconfig:"HTTP_ADDR"`
	Port           string `envconfig:"PORT"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH"`

	// DATABASE_URL is the runtime connection (may be a pooler).
	// DIRECT_URL is used for migrations when set.
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DirectURL   string `envconfig:"DIRECT_URL"`

	DB   DBConfig   `envconfig:"DB"`
	Auth AuthConfig `envconfig:"JWT"`
	Log  LogConfig  `envconfig:"LOG"`
	AMQP AMQPConfig `envconfig:"AMQP"`

	// AllowedOrigins is the CORS allowlist for browser clients. Example:
	//   https://booking.example.edu,http://localhost:5173
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:4173"`
}

type DBConfig struct {
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"5432"`
	Name     string `envconfig:"NAME" default:"venuebooking"`
	User     string `envconfig:"USER" default:"venuebooking"`
	Password string `envconfig:"PASSWORD" default:"venuebooking"`
	SSLMode  string `envconfig:"SSLMODE" default:"disable"`
}

type AuthConfig struct {
	Secret string        `envconfig:"SECRET"`
	Issuer string        `envconfig:"ISSUER" default:"venuebooking"`
	TTL    time.Duration `envconfig:"TTL" default:"12h"`
}

type LogConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`
	Format string `envconfig:"FORMAT" default:"json"`
}

// AMQPConfig enables domain event publishing. Empty URL disables it.
type AMQPConfig struct {
	URL      string `envconfig:"URL"`
	Exchange string `envconfig:"EXCHANGE" default:"venuebooking.events"`
}

func Load() (Config, error) {
	// Local dev convenience; production relies on real environment variables.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	// Cloud Run style platforms set PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	if cfg.HTTPAddr == "" {
		if cfg.Port != "" {
			cfg.HTTPAddr = ":" + cfg.Port
		} else {
			cfg.HTTPAddr = ":8081"
		}
	}

	if cfg.Auth.Secret == "" {
		if cfg.IsProd() {
			return Config{}, errors.New("JWT_SECRET is required")
		}
		cfg.Auth.Secret = "dev-secret"
	}

	return cfg, nil
}

func (c Config) IsProd() bool {
	return c.AppEnv == "prod"
}
