package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/donation-service/internal/auth"
	"github.com/spec-kit/donation-service/internal/config"
	"github.com/spec-kit/donation-service/internal/domain"
	"github.com/spec-kit/donation-service/internal/events"
	"github.com/spec-kit/donation-service/internal/repository"
	apperrors "github.com/spec-kit/donation-service/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		users:      users,
		dispatcher: dispatcher,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput carries the registration payload. Receivers must provide a
// cause and document; admins are provisioned out of band and cannot
// self-register.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
	CauseID  *int64
	Document string
}

// Register creates a new account and issues its first credential.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, time.Time, error) {
	if input.Role != domain.RoleDonor && input.Role != domain.RoleReceiver {
		return nil, "", time.Time{}, apperrors.NewValidationError("role must be donor or receiver", nil)
	}
	if input.Role == domain.RoleReceiver && input.Document == "" {
		return nil, "", time.Time{}, apperrors.NewValidationError("receivers must provide a document", nil)
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, apperrors.NewServiceUnavailable(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
		CauseID:      input.CauseID,
		Document:     input.Document,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.NewServiceUnavailable(err)
	}

	token, exp, err := s.tokenMgr.Generate(user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventUserRegistered, user, events.UserRegisteredPayload{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	return user, token, exp, nil
}

// Login authenticates an account by email and password.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.NewServiceUnavailable(err)
	}
	if !user.Active {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.Generate(user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) publish(ctx context.Context, eventType events.EventType, user *domain.User, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{UserID: user.ID, Role: user.Role},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
