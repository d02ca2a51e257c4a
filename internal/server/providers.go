package server

import (
	"context"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/philly/spacetraveling/internal/adapters/memory"
	"github.com/philly/spacetraveling/internal/adapters/objectstore"
	"github.com/philly/spacetraveling/internal/adapters/postgres"
	"github.com/philly/spacetraveling/internal/adapters/prismic"
	"github.com/philly/spacetraveling/internal/adapters/rest/middleware"
	"github.com/philly/spacetraveling/internal/api"
	"github.com/philly/spacetraveling/internal/platform/datefmt"
	"github.com/philly/spacetraveling/internal/platform/logger"
	"github.com/philly/spacetraveling/internal/posts/application"
	"github.com/philly/spacetraveling/internal/posts/ports"
)

// provideLoggerConfig creates logger config from server config
func provideLoggerConfig(config Config) logger.Config {
	return logger.Config{
		Environment: config.Environment,
		LogLevel:    config.LogLevel,
	}
}

func providePrismicConfig(config Config) prismic.Config {
	return prismic.Config{
		Endpoint:    config.PrismicAPIEndpoint,
		AccessToken: config.PrismicAccessToken,
		Timeout:     config.CMSTimeout,
		RefTTL:      config.CMSRefTTL,
	}
}

func provideSettings(config Config) application.Settings {
	return application.Settings{
		DocumentType:    config.PostDocumentType,
		ListingPageSize: config.ListingPageSize,
		PathsPageSize:   config.PathsPageSize,
	}
}

func provideStaticPagesConfig(config Config) application.StaticPagesConfig {
	return application.StaticPagesConfig{RevalidateInterval: config.RevalidateInterval}
}

func provideDateFormatter(config Config) (*datefmt.Formatter, error) {
	return datefmt.New(config.DisplayLocale, config.DisplayTimezone)
}

// provideSnapshotStore uses the database when one is configured and process
// memory otherwise.
func provideSnapshotStore(ctx context.Context, pool *pgxpool.Pool, repo *postgres.SnapshotRepository, log logger.Logger) (ports.SnapshotStore, error) {
	if pool == nil {
		return memory.NewSnapshotStore(), nil
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Error(ctx, "failed to prepare snapshot table", "error", err)
		return nil, err
	}
	return repo, nil
}

// provideExporter returns a nil exporter when no bucket is configured.
func provideExporter(ctx context.Context, config Config, presenter *api.Presenter, log logger.Logger) (ports.SnapshotExporter, error) {
	if config.S3Bucket == "" {
		return nil, nil
	}
	client, err := objectstore.NewS3Client(ctx)
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "exporting generated pages", "bucket", config.S3Bucket, "prefix", config.S3Prefix)
	return objectstore.NewExporter(client, config.S3Bucket, config.S3Prefix, presenter, log), nil
}

func provideJWTConfig(config Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		JWKS:   config.JWKSEndpoint,
		Issuer: config.JWTIssuer,
	}
}

// providePreviewConfig falls back to a random per-process secret in
// development, which invalidates preview cookies on restart.
func providePreviewConfig(ctx context.Context, config Config, log logger.Logger) middleware.PreviewConfig {
	secret := config.PreviewSessionSecret
	if secret == "" && config.IsDevelopment() {
		log.Warn(ctx, "PREVIEW_SESSION_SECRET not set, using a random development secret")
		secret = string(securecookie.GenerateRandomKey(32))
	}
	return middleware.PreviewConfig{
		Secret:     secret,
		CookieName: config.PreviewCookieName,
		MaxAge:     time.Hour,
		Secure:     !config.IsDevelopment(),
	}
}
