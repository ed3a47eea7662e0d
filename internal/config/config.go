// Package config loads the service configuration from the environment and an optional
// .env file.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSessionSecret is only acceptable outside production.
const DefaultSessionSecret = "dev_session_secret_change_me"

// Config holds every runtime setting of the service.
type Config struct {
	Env     string
	AppPort string

	DBDriver    string
	DatabaseDSN string

	SessionSecret       string
	CookieEncryptionKey string
	SessionTTL          time.Duration
	CookieHTTPOnly      bool
	CookieSecure        bool
	CookieSameSite      string

	CORSAllowedOrigins string

	RabbitMQURL string

	LoginRateLimit  int
	LoginRateWindow time.Duration

	MetricsEnabled bool
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file", "error", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Env:                 v.GetString("APP_ENV"),
		AppPort:             v.GetString("APP_PORT"),
		DBDriver:            strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:         v.GetString("DATABASE_DSN"),
		SessionSecret:       v.GetString("SESSION_SECRET"),
		CookieEncryptionKey: v.GetString("COOKIE_ENCRYPTION_KEY"),
		SessionTTL:          v.GetDuration("SESSION_TTL"),
		CookieHTTPOnly:      v.GetBool("COOKIE_HTTP_ONLY"),
		CookieSecure:        v.GetBool("COOKIE_SECURE"),
		CookieSameSite:      v.GetString("COOKIE_SAME_SITE"),
		CORSAllowedOrigins:  v.GetString("CORS_ALLOWED_ORIGINS"),
		RabbitMQURL:         v.GetString("RABBITMQ_URL"),
		LoginRateLimit:      v.GetInt("LOGIN_RATE_LIMIT"),
		LoginRateWindow:     v.GetDuration("LOGIN_RATE_WINDOW"),
		MetricsEnabled:      v.GetBool("METRICS_ENABLED"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "social.db")
	v.SetDefault("SESSION_SECRET", DefaultSessionSecret)
	v.SetDefault("COOKIE_ENCRYPTION_KEY", "")
	v.SetDefault("SESSION_TTL", 2*time.Hour)
	v.SetDefault("COOKIE_HTTP_ONLY", false)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("COOKIE_SAME_SITE", fiber.CookieSameSiteDisabled)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOGIN_RATE_LIMIT", 10)
	v.SetDefault("LOGIN_RATE_WINDOW", 15*time.Minute)
	v.SetDefault("METRICS_ENABLED", true)
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate rejects unusable or unsafe settings.
func (c *Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be sqlite or postgres, got %q", c.DBDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN is required"))
	}
	if c.SessionSecret == "" {
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL))
	}
	switch strings.ToLower(c.CookieSameSite) {
	case fiber.CookieSameSiteDisabled, fiber.CookieSameSiteLaxMode, fiber.CookieSameSiteStrictMode, fiber.CookieSameSiteNoneMode:
	default:
		errs = append(errs, fmt.Errorf("COOKIE_SAME_SITE must be disabled, lax, strict or none, got %q", c.CookieSameSite))
	}
	if c.CookieEncryptionKey != "" {
		if err := checkEncryptionKey(c.CookieEncryptionKey); err != nil {
			errs = append(errs, err)
		}
	}
	for _, o := range c.AllowedOrigins() {
		if o == "*" {
			errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS cannot be * because session cookies need credentials"))
		}
	}
	if c.LoginRateLimit <= 0 {
		errs = append(errs, fmt.Errorf("LOGIN_RATE_LIMIT must be positive, got %d", c.LoginRateLimit))
	}
	if c.LoginRateWindow <= 0 {
		errs = append(errs, fmt.Errorf("LOGIN_RATE_WINDOW must be positive, got %s", c.LoginRateWindow))
	}

	if c.IsProduction() {
		if c.SessionSecret == DefaultSessionSecret {
			errs = append(errs, errors.New("SESSION_SECRET must be changed in production"))
		}
		if c.CookieEncryptionKey == "" {
			errs = append(errs, errors.New("COOKIE_ENCRYPTION_KEY is required in production"))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

func checkEncryptionKey(key string) error {
	raw, err := base64.StdEncoding.DecodeString(key)
	if err != nil {
		return fmt.Errorf("COOKIE_ENCRYPTION_KEY must be base64: %w", err)
	}
	switch len(raw) {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("COOKIE_ENCRYPTION_KEY must decode to 16, 24 or 32 bytes, got %d", len(raw))
	}
}

// AllowedOrigins returns the configured CORS origins as a list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSAllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
