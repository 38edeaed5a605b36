package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/donation-service/internal/domain"
	"github.com/spec-kit/donation-service/internal/repository"
	apperrors "github.com/spec-kit/donation-service/pkg/util"
)

type stubUserRepo struct {
	users map[string]*domain.User
	err   error
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error { return nil }

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	user, ok := s.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) Deactivate(ctx context.Context, id int64, role domain.Role) error {
	return nil
}

func (s *stubUserRepo) ListReceivers(ctx context.Context, sort repository.ReceiverSort) ([]domain.Receiver, error) {
	return nil, nil
}

func TestResolveActiveUser(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"alice@example.com": {ID: 10, Email: "alice@example.com", Role: domain.RoleDonor, Active: true},
	}}
	resolver := NewIdentityResolver(repo)

	identity, err := resolver.Resolve(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, int64(10), identity.UserID)
	require.Equal(t, domain.RoleDonor, identity.Role)
	require.Equal(t, "alice@example.com", identity.Subject)
}

func TestResolveUnknownSubject(t *testing.T) {
	resolver := NewIdentityResolver(&stubUserRepo{users: map[string]*domain.User{}})

	_, err := resolver.Resolve(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, ErrInvalidCredential)
}

func TestResolveDeactivatedUser(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"gone@example.com": {ID: 11, Email: "gone@example.com", Role: domain.RoleReceiver, Active: false},
	}}
	resolver := NewIdentityResolver(repo)

	_, err := resolver.Resolve(context.Background(), "gone@example.com")
	require.ErrorIs(t, err, ErrInvalidCredential)
}

func TestResolvePersistenceFailure(t *testing.T) {
	resolver := NewIdentityResolver(&stubUserRepo{err: errors.New("connection refused")})

	_, err := resolver.Resolve(context.Background(), "alice@example.com")
	require.NotErrorIs(t, err, ErrInvalidCredential)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "SERVICE_UNAVAILABLE", domainErr.Code)
}
