package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/donation-service/internal/auth"
	"github.com/spec-kit/donation-service/internal/domain"
	"github.com/spec-kit/donation-service/internal/events"
	"github.com/spec-kit/donation-service/internal/repository"
	apperrors "github.com/spec-kit/donation-service/pkg/util"
)

// AccountService handles account deactivation for donors and receivers.
type AccountService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	// onDeactivate runs after a successful deactivation, e.g. to drop the
	// receivers cache.
	onDeactivate func(context.Context)
}

// NewAccountService builds the service.
func NewAccountService(users repository.UserRepository, dispatcher events.Dispatcher, onDeactivate func(context.Context)) *AccountService {
	return &AccountService{users: users, dispatcher: dispatcher, onDeactivate: onDeactivate}
}

// Deactivate marks the target account of the given kind inactive. Only the
// account owner or an admin may do this; a missing, already-deactivated or
// wrong-kind target reports not found. The role check runs before the
// target is looked up.
func (s *AccountService) Deactivate(ctx context.Context, identity *auth.Identity, targetID int64, kind domain.Role) error {
	action := auth.ActionDeactivateDonor
	if kind == domain.RoleReceiver {
		action = auth.ActionDeactivateReceiver
	}
	if err := auth.Authorize(identity, action, &targetID); err != nil {
		return err
	}

	if err := s.users.Deactivate(ctx, targetID, kind); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"user_id": targetID})
		}
		return apperrors.NewServiceUnavailable(err)
	}

	if s.onDeactivate != nil {
		s.onDeactivate(ctx)
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserDeactivated,
			Actor:     events.Actor{UserID: identity.UserID, Role: identity.Role},
			Timestamp: time.Now(),
			Payload:   events.UserDeactivatedPayload{TargetID: targetID, Kind: kind},
		})
	}
	return nil
}
