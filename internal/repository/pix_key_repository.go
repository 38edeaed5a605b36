package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/donation-service/internal/domain"
)

// PixKeyRepository defines persistence access for receiver payment keys.
type PixKeyRepository interface {
	Exists(ctx context.Context, ownerID int64, key string, keyType domain.PixKeyType) (bool, error)
	Create(ctx context.Context, pix *domain.PixKey) error
	// Delete removes the key triple and returns pgx.ErrNoRows when nothing
	// matched.
	Delete(ctx context.Context, ownerID int64, key string, keyType domain.PixKeyType) error
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.PixKey, error)
}

type pixKeyRepository struct {
	pool *pgxpool.Pool
}

// NewPixKeyRepository returns a Postgres-backed implementation.
func NewPixKeyRepository(pool *pgxpool.Pool) PixKeyRepository {
	return &pixKeyRepository{pool: pool}
}

func (r *pixKeyRepository) Exists(ctx context.Context, ownerID int64, key string, keyType domain.PixKeyType) (bool, error) {
	const query = `
        SELECT COUNT(1) FROM pix_keys
        WHERE owner_id=$1 AND key=$2 AND key_type=$3`

	var count int
	if err := r.pool.QueryRow(ctx, query, ownerID, key, keyType).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *pixKeyRepository) Create(ctx context.Context, pix *domain.PixKey) error {
	const query = `
        INSERT INTO pix_keys (owner_id, key, key_type)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		pix.OwnerID,
		pix.Key,
		pix.KeyType,
	).Scan(&pix.ID, &pix.CreatedAt)
}

func (r *pixKeyRepository) Delete(ctx context.Context, ownerID int64, key string, keyType domain.PixKeyType) error {
	const query = `
        DELETE FROM pix_keys
        WHERE owner_id=$1 AND key=$2 AND key_type=$3`

	cmd, err := r.pool.Exec(ctx, query, ownerID, key, keyType)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pixKeyRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.PixKey, error) {
	const query = `
        SELECT id, owner_id, key, key_type, created_at
        FROM pix_keys WHERE owner_id=$1
        ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []domain.PixKey
	for rows.Next() {
		var pix domain.PixKey
		if err := rows.Scan(&pix.ID, &pix.OwnerID, &pix.Key, &pix.KeyType, &pix.CreatedAt); err != nil {
			return nil, err
		}
		keys = append(keys, pix)
	}
	return keys, rows.Err()
}
