package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("SOURCE_URL", "https://docs.example.com/sheet.csv")
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("SITE_REDIRECT_DELAY", "1500ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendHTTP, cfg.Source.Backend)
	assert.Equal(t, "https://docs.example.com/sheet.csv", cfg.Source.URL)
	assert.Equal(t, 10*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.True(t, cfg.Database.Enabled())
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 1500*time.Millisecond, cfg.Site.RedirectDelay)
	assert.Equal(t, "TheQuiltHub", cfg.Site.Name)
	assert.Equal(t, "https://thequilthub.com/pages/resource-hub", cfg.Site.DirectoryURL)
}

func TestLoad_MissingSourceURL(t *testing.T) {
	t.Setenv("SOURCE_URL", "")

	cfg, err := Load()
	assert.Nil(t, cfg)
	assert.ErrorContains(t, err, "SOURCE_URL is required")
}

func TestLoad_InvalidDuration(t *testing.T) {
	t.Setenv("SOURCE_URL", "https://docs.example.com/sheet.csv")
	t.Setenv("SOURCE_TIMEOUT", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "parse env")
}

func TestValidate(t *testing.T) {
	valid := func() *AppConfig {
		return &AppConfig{
			TimeZone: "UTC",
			Source: SourceConfig{
				Backend:   BackendHTTP,
				URL:       "https://docs.example.com/sheet.csv",
				Timeout:   time.Second,
				MaxBytes:  1024,
				ObjectKey: "directory/latest.csv",
			},
			Site: SiteConfig{RedirectDelay: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *AppConfig)
		wantErr string
	}{
		{name: "valid http", mutate: func(c *AppConfig) {}},
		{
			name: "valid object",
			mutate: func(c *AppConfig) {
				c.Source.Backend = BackendObject
				c.Source.URL = ""
				c.MinIO = MinIOConfig{Endpoint: "minio:9000", Bucket: "directory"}
			},
		},
		{
			name:    "object without minio",
			mutate:  func(c *AppConfig) { c.Source.Backend = BackendObject },
			wantErr: "MINIO_ENDPOINT and MINIO_BUCKET are required",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *AppConfig) { c.Source.Backend = "ftp" },
			wantErr: `unknown SOURCE_BACKEND "ftp"`,
		},
		{
			name:    "negative delay",
			mutate:  func(c *AppConfig) { c.Site.RedirectDelay = -time.Second },
			wantErr: "SITE_REDIRECT_DELAY must not be negative",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *AppConfig) { c.Source.Timeout = 0 },
			wantErr: "SOURCE_TIMEOUT must be positive",
		},
		{
			name:    "bad time zone",
			mutate:  func(c *AppConfig) { c.TimeZone = "Mars/Olympus" },
			wantErr: "invalid APP_TIMEZONE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{TimeZone: "Asia/Jakarta"}
	assert.Equal(t, "Asia/Jakarta", cfg.Location().String())

	cfg.TimeZone = "nowhere"
	assert.Equal(t, time.UTC, cfg.Location())
}
