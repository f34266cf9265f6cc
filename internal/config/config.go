package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds the auth API service configuration.
type Config struct {
	Server  ServerConfig  `envPrefix:"SERVER_"`
	Mongo   MongoConfig   `envPrefix:"MONGO_"`
	Redis   RedisConfig   `envPrefix:"REDIS_"`
	Google  GoogleConfig  `envPrefix:"GOOGLE_"`
	Session SessionConfig `envPrefix:"SESSION_"`
	Code    CodeConfig    `envPrefix:"CODE_"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `env:"PORT" envDefault:"8000"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI      string `env:"URI"      envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"auth"`
}

// RedisConfig holds Redis connection settings for the session store.
type RedisConfig struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB"`
}

// GoogleConfig holds the Google OAuth client settings.
type GoogleConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	CallbackURL  string `env:"CALLBACK_URL"  envDefault:"http://localhost:8000/api/v1/auth/google/callback"`
	DashboardURL string `env:"DASHBOARD_URL" envDefault:"http://localhost:5173/dashboard/client"`
}

// SessionConfig holds session handle and cookie settings.
type SessionConfig struct {
	TTL          time.Duration `env:"TTL"           envDefault:"168h"`
	CookieName   string        `env:"COOKIE_NAME"   envDefault:"session_id"`
	CookieSecure bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

// CodeConfig holds the one-time code expiry windows.
type CodeConfig struct {
	VerificationTTL  time.Duration `env:"VERIFICATION_TTL"   envDefault:"15m"`
	PasswordResetTTL time.Duration `env:"PASSWORD_RESET_TTL" envDefault:"15m"`
}

// New creates a Config instance from environment variables.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate configuration")
	}

	return &cfg
}

// validate checks if the configuration is valid.
func (c *Config) validate() error {
	if c.Google.ClientID == "" {
		return fmt.Errorf("missing GOOGLE_CLIENT_ID environment variable")
	}
	if c.Google.ClientSecret == "" {
		return fmt.Errorf("missing GOOGLE_CLIENT_SECRET environment variable")
	}

	return nil
}
