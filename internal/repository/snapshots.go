package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/benknight/cocolist/internal/entity"
)

// ErrSnapshotNotFound is returned when no snapshot has been stored yet.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotRepository stores fetched content as JSON documents.
type SnapshotRepository interface {
	Save(ctx context.Context, snap *entity.Snapshot) (int64, error)
	Latest(ctx context.Context) (*entity.Snapshot, error)
	Prune(ctx context.Context, keep int) (int64, error)
}

// PGXSnapshotRepository keeps snapshots in the content_snapshots table.
type PGXSnapshotRepository struct {
	pool pgxPool
}

// NewPGXSnapshotRepository instantiates a snapshot repository.
func NewPGXSnapshotRepository(pool *pgxpool.Pool) *PGXSnapshotRepository {
	return &PGXSnapshotRepository{pool: pool}
}

// Save inserts snap and returns the new row id.
func (r *PGXSnapshotRepository) Save(ctx context.Context, snap *entity.Snapshot) (int64, error) {
	if snap == nil {
		return 0, errors.New("snapshot is nil")
	}
	body, err := json.Marshal(snap)
	if err != nil {
		return 0, fmt.Errorf("encode snapshot: %w", err)
	}

	var id int64
	row := r.pool.QueryRow(ctx, `
        INSERT INTO content_snapshots (fetched_at, body)
        VALUES ($1, $2)
        RETURNING id
    `, snap.FetchedAt, body)
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("insert snapshot: %w", err)
	}
	return id, nil
}

// Latest loads the most recently fetched snapshot.
func (r *PGXSnapshotRepository) Latest(ctx context.Context) (*entity.Snapshot, error) {
	var body []byte
	row := r.pool.QueryRow(ctx, `SELECT body FROM content_snapshots ORDER BY fetched_at DESC, id DESC LIMIT 1`)
	if err := row.Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}

	var snap entity.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

// Prune deletes all but the newest keep snapshots.
func (r *PGXSnapshotRepository) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 1 {
		keep = 1
	}
	cmd, err := r.pool.Exec(ctx, `
        DELETE FROM content_snapshots
        WHERE id NOT IN (
            SELECT id FROM content_snapshots ORDER BY fetched_at DESC, id DESC LIMIT $1
        )
    `, keep)
	if err != nil {
		return 0, fmt.Errorf("prune snapshots: %w", err)
	}
	return cmd.RowsAffected(), nil
}

var _ SnapshotRepository = (*PGXSnapshotRepository)(nil)
