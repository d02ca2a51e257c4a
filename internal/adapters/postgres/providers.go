package postgres

import (
	"github.com/google/wire"
	"github.com/philly/spacetraveling/internal/platform/postgres"
)

// ProviderSet is the wire provider set for postgres repositories
var ProviderSet = wire.NewSet(
	postgres.NewTransactionManager,
	NewSnapshotRepository,
)
