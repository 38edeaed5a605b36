package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/donation-service/internal/domain"
	"github.com/spec-kit/donation-service/internal/repository"
	apperrors "github.com/spec-kit/donation-service/pkg/util"
)

// Identity is the resolved runtime representation of a verified subject.
// It lives for one request and is never persisted.
type Identity struct {
	Subject string
	UserID  int64
	Role    domain.Role
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == domain.RoleAdmin
}

// IdentityResolver maps a verified subject to a concrete user record.
type IdentityResolver struct {
	users repository.UserRepository
}

// NewIdentityResolver constructs a resolver.
func NewIdentityResolver(users repository.UserRepository) *IdentityResolver {
	return &IdentityResolver{users: users}
}

// Resolve looks up the active user behind a verified subject. A subject
// whose account was deleted or deactivated after token issuance resolves to
// ErrInvalidCredential, so the gate reports it as an authentication failure
// rather than a server error.
func (r *IdentityResolver) Resolve(ctx context.Context, subject string) (*Identity, error) {
	user, err := r.users.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredential
		}
		return nil, apperrors.NewServiceUnavailable(err)
	}
	if !user.Active {
		return nil, ErrInvalidCredential
	}
	return &Identity{Subject: subject, UserID: user.ID, Role: user.Role}, nil
}
