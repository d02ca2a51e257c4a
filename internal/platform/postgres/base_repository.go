package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is implemented by both *pgxpool.Pool and pgx.Tx, so a repository
// runs the same statements inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row
}

// BaseRepository holds what every repository needs: a connection and a
// statement builder using $n placeholders.
type BaseRepository struct {
	DB Querier
	SB sq.StatementBuilderType
}

// NewBaseRepository creates a base repository on top of the pool.
func NewBaseRepository(db *pgxpool.Pool) BaseRepository {
	return NewBaseRepositoryFor(db)
}

// NewBaseRepositoryFor creates a base repository on any Querier.
func NewBaseRepositoryFor(db Querier) BaseRepository {
	return BaseRepository{
		DB: db,
		SB: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// WithTx returns a copy bound to tx.
func (b BaseRepository) WithTx(tx pgx.Tx) BaseRepository {
	return BaseRepository{
		DB: tx,
		SB: b.SB,
	}
}
