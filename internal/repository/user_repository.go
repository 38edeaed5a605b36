package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/donation-service/internal/domain"
)

// ReceiverSort enumerates the supported receiver-listing orders.
type ReceiverSort string

const (
	ReceiverSortNameAsc  ReceiverSort = "name_asc"
	ReceiverSortNameDesc ReceiverSort = "name_desc"
	ReceiverSortUserID   ReceiverSort = "user_id"
)

// UserRepository defines persistence access for platform accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// Deactivate flips the active flag for an active user of the given
	// role. It returns pgx.ErrNoRows when no such row exists, including
	// when the account is already deactivated.
	Deactivate(ctx context.Context, id int64, role domain.Role) error
	ListReceivers(ctx context.Context, sort ReceiverSort) ([]domain.Receiver, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (name, email, password_hash, role, active, cause_id, document)
        VALUES ($1, $2, $3, $4, TRUE, $5, $6)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.CauseID,
		user.Document,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, name, email, password_hash, role, active, cause_id, document, created_at, updated_at
        FROM users WHERE email=$1`

	return r.scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
        SELECT id, name, email, password_hash, role, active, cause_id, document, created_at, updated_at
        FROM users WHERE id=$1`

	return r.scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) Deactivate(ctx context.Context, id int64, role domain.Role) error {
	const query = `
        UPDATE users SET active=FALSE, updated_at=NOW()
        WHERE id=$1 AND role=$2 AND active=TRUE`

	cmd, err := r.pool.Exec(ctx, query, id, role)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) ListReceivers(ctx context.Context, sort ReceiverSort) ([]domain.Receiver, error) {
	orderBy := "u.name ASC"
	switch sort {
	case ReceiverSortNameDesc:
		orderBy = "u.name DESC"
	case ReceiverSortUserID:
		orderBy = "u.id ASC"
	}

	query := fmt.Sprintf(`
        SELECT u.id, u.name, u.email, u.document, COALESCE(a.postal_code, ''), COALESCE(c.description, '')
        FROM users u
        LEFT JOIN causes c ON c.receiver_id = u.id
        LEFT JOIN addresses a ON a.user_id = u.id
        WHERE u.role = 'receiver' AND u.active = TRUE
        ORDER BY %s`, orderBy)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var receivers []domain.Receiver
	for rows.Next() {
		var rec domain.Receiver
		if err := rows.Scan(&rec.UserID, &rec.Name, &rec.Email, &rec.Document, &rec.PostalCode, &rec.Description); err != nil {
			return nil, err
		}
		receivers = append(receivers, rec)
	}
	return receivers, rows.Err()
}

func (r *userRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Active,
		&user.CauseID,
		&user.Document,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}
