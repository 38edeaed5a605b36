package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CauseRepository defines persistence access for fundraising causes.
type CauseRepository interface {
	Exists(ctx context.Context, causeID int64) (bool, error)
	OwnerID(ctx context.Context, causeID int64) (int64, error)
}

type causeRepository struct {
	pool *pgxpool.Pool
}

// NewCauseRepository returns a Postgres-backed implementation.
func NewCauseRepository(pool *pgxpool.Pool) CauseRepository {
	return &causeRepository{pool: pool}
}

func (r *causeRepository) Exists(ctx context.Context, causeID int64) (bool, error) {
	const query = `SELECT COUNT(1) FROM causes WHERE id=$1`

	var count int
	if err := r.pool.QueryRow(ctx, query, causeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *causeRepository) OwnerID(ctx context.Context, causeID int64) (int64, error) {
	const query = `SELECT receiver_id FROM causes WHERE id=$1`

	var ownerID int64
	if err := r.pool.QueryRow(ctx, query, causeID).Scan(&ownerID); err != nil {
		return 0, err
	}
	return ownerID, nil
}
