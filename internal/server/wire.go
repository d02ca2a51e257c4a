//go:build wireinject
// +build wireinject

package server

import (
	"context"

	"github.com/google/wire"
	"github.com/philly/spacetraveling/internal/adapters/postgres"
	"github.com/philly/spacetraveling/internal/adapters/prismic"
	"github.com/philly/spacetraveling/internal/adapters/rest"
	"github.com/philly/spacetraveling/internal/adapters/rest/middleware"
	"github.com/philly/spacetraveling/internal/api"
	"github.com/philly/spacetraveling/internal/platform/eventbus"
	"github.com/philly/spacetraveling/internal/platform/logger"
	"github.com/philly/spacetraveling/internal/platform/richtext"
	"github.com/philly/spacetraveling/internal/posts/application"
)

// coreSet builds everything below the transport layer.
var coreSet = wire.NewSet(
	// Bootstrap phase and logger configuration
	logger.ProviderSet,
	LoadConfig,
	provideLoggerConfig,

	// Storage
	ConnectDatabase,
	postgres.ProviderSet,
	provideSnapshotStore,

	// Content backend
	providePrismicConfig,
	prismic.ProviderSet,

	// Presentation
	provideDateFormatter,
	richtext.NewRenderer,
	api.NewPresenter,
	provideExporter,

	// Application services
	eventbus.ProviderSet,
	provideSettings,
	provideStaticPagesConfig,
	application.ProviderSet,
)

// InitializeApp creates a fully configured App with all dependencies
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		coreSet,

		// Middleware
		provideJWTConfig,
		providePreviewConfig,
		middleware.ProviderSet,

		// REST handlers
		rest.ProviderSet,

		NewHTTPServer,
		NewApp,
	)

	return nil, nil, nil
}

// InitializeTools wires the services used by the command line tool.
func InitializeTools(ctx context.Context) (*Tools, func(), error) {
	wire.Build(
		coreSet,
		wire.Struct(new(Tools), "*"),
	)

	return nil, nil, nil
}
