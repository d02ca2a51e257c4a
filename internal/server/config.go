package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/philly/spacetraveling/internal/platform/logger"
	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL   string `mapstructure:"DATABASE_URL"` // optional; pages are kept in memory without it
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`
	Environment   string `mapstructure:"ENVIRONMENT"`
	LogLevel      string `mapstructure:"LOG_LEVEL"` // Logging level (debug, info, warn, error)

	PrismicAPIEndpoint string        `mapstructure:"PRISMIC_API_ENDPOINT"`
	PrismicAccessToken string        `mapstructure:"PRISMIC_ACCESS_TOKEN"`
	CMSTimeout         time.Duration `mapstructure:"CMS_TIMEOUT"`
	CMSRefTTL          time.Duration `mapstructure:"CMS_REF_TTL"`

	PostDocumentType   string        `mapstructure:"POST_DOCUMENT_TYPE"`
	ListingPageSize    int           `mapstructure:"LISTING_PAGE_SIZE"`
	PathsPageSize      int           `mapstructure:"PATHS_PAGE_SIZE"`
	RevalidateInterval time.Duration `mapstructure:"REVALIDATE_INTERVAL"`

	PreviewSessionSecret string `mapstructure:"PREVIEW_SESSION_SECRET"`
	PreviewCookieName    string `mapstructure:"PREVIEW_COOKIE_NAME"`

	JWKSEndpoint string `mapstructure:"JWKS_ENDPOINT"` // admin routes are mounted only with both JWT settings
	JWTIssuer    string `mapstructure:"JWT_ISSUER"`

	S3Bucket string `mapstructure:"S3_BUCKET"` // export is disabled when empty
	S3Prefix string `mapstructure:"S3_PREFIX"`

	DisplayLocale   string `mapstructure:"DISPLAY_LOCALE"`
	DisplayTimezone string `mapstructure:"DISPLAY_TIMEZONE"`
}

// maxPageSize is the largest pageSize the CMS accepts.
const maxPageSize = 100

// IsDevelopment reports whether the service runs in the development
// environment.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// JWTEnabled reports whether the admin routes can be protected.
func (c Config) JWTEnabled() bool {
	return c.JWKSEndpoint != "" && c.JWTIssuer != ""
}

func LoadConfig(bootstrapLogger *logger.BootstrapLogger) (Config, error) {
	ctx := context.Background()

	// It's okay if the file doesn't exist - we'll use environment variables
	if err := godotenv.Load(); err != nil {
		bootstrapLogger.Info(ctx, "no .env file found, using environment variables only")
	} else {
		bootstrapLogger.Info(ctx, "loaded .env file")
	}

	v := viper.New()

	// Every key needs a default so Unmarshal picks it up from the environment.
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PRISMIC_API_ENDPOINT", "")
	v.SetDefault("PRISMIC_ACCESS_TOKEN", "")
	v.SetDefault("CMS_TIMEOUT", "10s")
	v.SetDefault("CMS_REF_TTL", "30s")
	v.SetDefault("POST_DOCUMENT_TYPE", "po")
	v.SetDefault("LISTING_PAGE_SIZE", 1)
	v.SetDefault("PATHS_PAGE_SIZE", 100)
	v.SetDefault("REVALIDATE_INTERVAL", "30m")
	v.SetDefault("PREVIEW_SESSION_SECRET", "")
	v.SetDefault("PREVIEW_COOKIE_NAME", "spacetraveling_preview")
	v.SetDefault("JWKS_ENDPOINT", "")
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("S3_BUCKET", "")
	v.SetDefault("S3_PREFIX", "")
	v.SetDefault("DISPLAY_LOCALE", "pt-BR")
	v.SetDefault("DISPLAY_TIMEZONE", "America/Sao_Paulo")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		bootstrapLogger.Error(ctx, "failed to unmarshal configuration", "error", err)
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	bootstrapLogger.Info(ctx, "configuration loaded",
		"environment", config.Environment,
		"log_level", config.LogLevel,
		"server_address", config.ServerAddress,
		"database", config.DatabaseURL != "",
		"admin_routes", config.JWTEnabled(),
		"export_bucket", config.S3Bucket,
	)

	if err := config.Validate(); err != nil {
		bootstrapLogger.Error(ctx, "configuration validation failed", "error", err)
		return Config{}, err
	}

	bootstrapLogger.Info(ctx, "configuration validated successfully")
	return config, nil
}

// Validate checks required and bounded settings.
func (c Config) Validate() error {
	var errs []error

	if c.PrismicAPIEndpoint == "" {
		errs = append(errs, errors.New("PRISMIC_API_ENDPOINT is required"))
	}
	if c.PostDocumentType == "" {
		errs = append(errs, errors.New("POST_DOCUMENT_TYPE is required"))
	}
	if c.ListingPageSize < 1 || c.ListingPageSize > maxPageSize {
		errs = append(errs, fmt.Errorf("LISTING_PAGE_SIZE must be between 1 and %d", maxPageSize))
	}
	if c.PathsPageSize < 1 || c.PathsPageSize > maxPageSize {
		errs = append(errs, fmt.Errorf("PATHS_PAGE_SIZE must be between 1 and %d", maxPageSize))
	}
	if c.RevalidateInterval < 0 {
		errs = append(errs, errors.New("REVALIDATE_INTERVAL cannot be negative"))
	}
	if !c.IsDevelopment() && len(c.PreviewSessionSecret) < 32 {
		errs = append(errs, errors.New("PREVIEW_SESSION_SECRET must be at least 32 bytes outside development"))
	}
	if (c.JWKSEndpoint == "") != (c.JWTIssuer == "") {
		errs = append(errs, errors.New("JWKS_ENDPOINT and JWT_ISSUER must be set together"))
	}

	return errors.Join(errs...)
}
