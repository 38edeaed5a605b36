package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/donation-service/internal/domain"
)

// FavoriteRepository defines persistence access for donor favorites.
type FavoriteRepository interface {
	Exists(ctx context.Context, donorID, causeID int64) (bool, error)
	Create(ctx context.Context, fav *domain.Favorite) error
	// Delete removes a favorite and returns pgx.ErrNoRows when nothing
	// matched.
	Delete(ctx context.Context, donorID, causeID int64) error
	ListByDonor(ctx context.Context, donorID int64) ([]domain.Favorite, error)
}

type favoriteRepository struct {
	pool *pgxpool.Pool
}

// NewFavoriteRepository returns a Postgres-backed implementation.
func NewFavoriteRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &favoriteRepository{pool: pool}
}

func (r *favoriteRepository) Exists(ctx context.Context, donorID, causeID int64) (bool, error) {
	const query = `
        SELECT COUNT(1) FROM favorites WHERE donor_id=$1 AND cause_id=$2`

	var count int
	if err := r.pool.QueryRow(ctx, query, donorID, causeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) Create(ctx context.Context, fav *domain.Favorite) error {
	const query = `
        INSERT INTO favorites (donor_id, cause_id)
        VALUES ($1, $2)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query, fav.DonorID, fav.CauseID).Scan(&fav.ID, &fav.CreatedAt)
}

func (r *favoriteRepository) Delete(ctx context.Context, donorID, causeID int64) error {
	const query = `
        DELETE FROM favorites WHERE donor_id=$1 AND cause_id=$2`

	cmd, err := r.pool.Exec(ctx, query, donorID, causeID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *favoriteRepository) ListByDonor(ctx context.Context, donorID int64) ([]domain.Favorite, error) {
	const query = `
        SELECT id, donor_id, cause_id, created_at
        FROM favorites WHERE donor_id=$1
        ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, donorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []domain.Favorite
	for rows.Next() {
		var fav domain.Favorite
		if err := rows.Scan(&fav.ID, &fav.DonorID, &fav.CauseID, &fav.CreatedAt); err != nil {
			return nil, err
		}
		favorites = append(favorites, fav)
	}
	return favorites, rows.Err()
}
