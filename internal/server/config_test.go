package server

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/philly/spacetraveling/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PRISMIC_API_ENDPOINT", "https://spacetraveling.cdn.prismic.io/api/v2")

	config, err := LoadConfig(logger.NewBootstrapLoggerTo(io.Discard))
	require.NoError(t, err)

	assert.Equal(t, ":8080", config.ServerAddress)
	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "po", config.PostDocumentType)
	assert.Equal(t, 1, config.ListingPageSize)
	assert.Equal(t, 100, config.PathsPageSize)
	assert.Equal(t, 30*time.Minute, config.RevalidateInterval)
	assert.Equal(t, 10*time.Second, config.CMSTimeout)
	assert.Equal(t, "pt-BR", config.DisplayLocale)
	assert.Empty(t, config.DatabaseURL)
	assert.False(t, config.JWTEnabled())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PRISMIC_API_ENDPOINT", "https://spacetraveling.cdn.prismic.io/api/v2")
	t.Setenv("PRISMIC_ACCESS_TOKEN", "token")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PREVIEW_SESSION_SECRET", strings.Repeat("s", 32))
	t.Setenv("LISTING_PAGE_SIZE", "5")
	t.Setenv("REVALIDATE_INTERVAL", "1h")
	t.Setenv("JWKS_ENDPOINT", "https://auth.example.com/.well-known/jwks.json")
	t.Setenv("JWT_ISSUER", "https://auth.example.com/")
	t.Setenv("S3_BUCKET", "blog-pages")

	config, err := LoadConfig(logger.NewBootstrapLoggerTo(io.Discard))
	require.NoError(t, err)

	assert.Equal(t, "token", config.PrismicAccessToken)
	assert.Equal(t, 5, config.ListingPageSize)
	assert.Equal(t, time.Hour, config.RevalidateInterval)
	assert.True(t, config.JWTEnabled())
	assert.Equal(t, "blog-pages", config.S3Bucket)
	assert.False(t, config.IsDevelopment())
}

func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Environment:        "development",
		PrismicAPIEndpoint: "https://spacetraveling.cdn.prismic.io/api/v2",
		PostDocumentType:   "po",
		ListingPageSize:    1,
		PathsPageSize:      100,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing endpoint", mutate: func(c *Config) { c.PrismicAPIEndpoint = "" }, wantErr: "PRISMIC_API_ENDPOINT is required"},
		{name: "page size too large", mutate: func(c *Config) { c.PathsPageSize = 101 }, wantErr: "PATHS_PAGE_SIZE"},
		{name: "page size zero", mutate: func(c *Config) { c.ListingPageSize = 0 }, wantErr: "LISTING_PAGE_SIZE"},
		{name: "secret required in production", mutate: func(c *Config) { c.Environment = "production" }, wantErr: "PREVIEW_SESSION_SECRET"},
		{name: "half configured jwt", mutate: func(c *Config) { c.JWKSEndpoint = "https://auth.example.com/jwks" }, wantErr: "must be set together"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
