package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/philly/spacetraveling/internal/platform/postgres"
	"github.com/philly/spacetraveling/internal/posts/domain"
	"github.com/philly/spacetraveling/internal/posts/ports"
)

const snapshotsTable = "post_snapshots"

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS post_snapshots (
	id           UUID PRIMARY KEY,
	slug         TEXT NOT NULL UNIQUE,
	payload      JSONB NOT NULL,
	generated_at TIMESTAMPTZ NOT NULL
)`

// SnapshotRepository implements ports.SnapshotStore using PostgreSQL.
type SnapshotRepository struct {
	postgres.BaseRepository
	txManager postgres.TransactionManager
}

// NewSnapshotRepository creates a new PostgreSQL snapshot repository
func NewSnapshotRepository(db *pgxpool.Pool, txManager postgres.TransactionManager) *SnapshotRepository {
	return &SnapshotRepository{
		BaseRepository: postgres.NewBaseRepository(db),
		txManager:      txManager,
	}
}

// WithTx creates a new repository instance that uses the provided transaction
func (r *SnapshotRepository) WithTx(tx pgx.Tx) *SnapshotRepository {
	return &SnapshotRepository{
		BaseRepository: r.BaseRepository.WithTx(tx),
		txManager:      r.txManager,
	}
}

// EnsureSchema creates the snapshots table if it does not exist.
func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.DB.Exec(ctx, createSnapshotsTable); err != nil {
		return fmt.Errorf("SnapshotRepository.EnsureSchema: %w", err)
	}
	return nil
}

// Get loads the snapshot for slug.
func (r *SnapshotRepository) Get(ctx context.Context, slug string) (*domain.Snapshot, error) {
	query, args, err := r.SB.
		Select("payload", "generated_at").
		From(snapshotsTable).
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("SnapshotRepository.Get: build query: %w", err)
	}

	var (
		payload     []byte
		generatedAt pgtype.Timestamptz
	)
	err = r.DB.QueryRow(ctx, query, args...).Scan(&payload, &generatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("SnapshotRepository.Get: %w", err)
	}

	page, err := decodePage(payload)
	if err != nil {
		return nil, fmt.Errorf("SnapshotRepository.Get: %w", err)
	}

	return &domain.Snapshot{
		Slug:        slug,
		Page:        page,
		GeneratedAt: generatedAt.Time.UTC(),
	}, nil
}

// Save upserts the snapshot for snap.Slug.
func (r *SnapshotRepository) Save(ctx context.Context, snap domain.Snapshot) error {
	query, args, err := r.upsert(snap)
	if err != nil {
		return fmt.Errorf("SnapshotRepository.Save: build query: %w", err)
	}

	if _, err := r.DB.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("SnapshotRepository.Save: %w", err)
	}
	return nil
}

// SaveAll upserts every snapshot in a single transaction.
func (r *SnapshotRepository) SaveAll(ctx context.Context, snaps []domain.Snapshot) error {
	if len(snaps) == 0 {
		return nil
	}

	err := postgres.RunInTx(ctx, r.txManager, func(tx pgx.Tx) error {
		repo := r.WithTx(tx)
		for _, snap := range snaps {
			if err := repo.Save(ctx, snap); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("SnapshotRepository.SaveAll: %w", err)
	}
	return nil
}

// Delete removes the snapshot for slug, if any.
func (r *SnapshotRepository) Delete(ctx context.Context, slug string) error {
	query, args, err := r.SB.
		Delete(snapshotsTable).
		Where(sq.Eq{"slug": slug}).
		ToSql()
	if err != nil {
		return fmt.Errorf("SnapshotRepository.Delete: build query: %w", err)
	}

	if _, err := r.DB.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("SnapshotRepository.Delete: %w", err)
	}
	return nil
}

func (r *SnapshotRepository) upsert(snap domain.Snapshot) (string, []any, error) {
	payload, err := encodePage(snap.Page)
	if err != nil {
		return "", nil, err
	}

	return r.SB.
		Insert(snapshotsTable).
		Columns("id", "slug", "payload", "generated_at").
		Values(
			pgtype.UUID{Bytes: uuid.New(), Valid: true},
			snap.Slug,
			payload,
			pgtype.Timestamptz{Time: snap.GeneratedAt, Valid: true},
		).
		Suffix("ON CONFLICT (slug) DO UPDATE SET payload = EXCLUDED.payload, generated_at = EXCLUDED.generated_at").
		ToSql()
}

func encodePage(page domain.PostPage) (json.RawMessage, error) {
	payload, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return payload, nil
}

func decodePage(payload []byte) (domain.PostPage, error) {
	var page domain.PostPage
	if err := json.Unmarshal(payload, &page); err != nil {
		return domain.PostPage{}, fmt.Errorf("decode payload: %w", err)
	}
	return page, nil
}

var _ ports.SnapshotStore = (*SnapshotRepository)(nil)
