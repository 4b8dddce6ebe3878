package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Source backends.
const (
	BackendHTTP   = "http"
	BackendObject = "object"
)

// SourceConfig describes where the directory CSV document is read from.
type SourceConfig struct {
	// Backend is "http" (published spreadsheet export) or "object" (snapshot in MinIO).
	Backend   string        `env:"SOURCE_BACKEND" envDefault:"http"`
	URL       string        `env:"SOURCE_URL"`
	Timeout   time.Duration `env:"SOURCE_TIMEOUT" envDefault:"10s"`
	MaxBytes  int64         `env:"SOURCE_MAX_BYTES" envDefault:"5242880"`
	ObjectKey string        `env:"SOURCE_OBJECT_KEY" envDefault:"directory/latest.csv"`
}

// SiteConfig holds the branding and redirect settings used by the pages.
type SiteConfig struct {
	Name          string        `env:"SITE_NAME" envDefault:"TheQuiltHub"`
	Description   string        `env:"SITE_DESCRIPTION" envDefault:"Your quilting community directory"`
	Tagline       string        `env:"SITE_TAGLINE" envDefault:"Share profiles from our quilting community directory"`
	DirectoryURL  string        `env:"SITE_DIRECTORY_URL" envDefault:"https://thequilthub.com/pages/resource-hub"`
	RedirectParam string        `env:"SITE_REDIRECT_PARAM" envDefault:"business"`
	RedirectDelay time.Duration `env:"SITE_REDIRECT_DELAY" envDefault:"3s"`
	// BaseURL is the public origin of this service, used for og:url. Optional.
	BaseURL string `env:"SITE_BASE_URL"`
}

// DatabaseConfig holds PostgreSQL database connection settings.
// The database is optional; lookup statistics are disabled when Host is empty.
type DatabaseConfig struct {
	Host               string `env:"DB_HOST"`
	Port               string `env:"DB_PORT" envDefault:"5432"`
	User               string `env:"DB_USER"`
	Password           string `env:"DB_PASSWORD"`
	Name               string `env:"DB_NAME"`
	SSLMode            string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxOpenConns       int    `env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns       int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetimeSec int    `env:"DB_CONN_MAX_LIFETIME_SEC" envDefault:"300"`
}

// Enabled reports whether a database has been configured.
func (c DatabaseConfig) Enabled() bool { return c.Host != "" }

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
}

// Enabled reports whether object storage has been configured.
func (c MinIOConfig) Enabled() bool { return c.Endpoint != "" }

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	TimeZone string `env:"APP_TIMEZONE" envDefault:"UTC"`
	Source   SourceConfig
	Site     SiteConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the .env file.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that cannot be expressed as defaults.
func (c *AppConfig) Validate() error {
	var errs []error

	switch c.Source.Backend {
	case BackendHTTP:
		if c.Source.URL == "" {
			errs = append(errs, errors.New("SOURCE_URL is required for the http source backend"))
		}
	case BackendObject:
		if !c.MinIO.Enabled() || c.MinIO.Bucket == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT and MINIO_BUCKET are required for the object source backend"))
		}
		if c.Source.ObjectKey == "" {
			errs = append(errs, errors.New("SOURCE_OBJECT_KEY is required for the object source backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown SOURCE_BACKEND %q", c.Source.Backend))
	}

	if c.Source.Timeout <= 0 {
		errs = append(errs, errors.New("SOURCE_TIMEOUT must be positive"))
	}
	if c.Source.MaxBytes <= 0 {
		errs = append(errs, errors.New("SOURCE_MAX_BYTES must be positive"))
	}
	if c.Site.RedirectDelay < 0 {
		errs = append(errs, errors.New("SITE_REDIRECT_DELAY must not be negative"))
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		errs = append(errs, fmt.Errorf("invalid APP_TIMEZONE: %w", err))
	}

	return errors.Join(errs...)
}

// Location returns the configured log time zone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
