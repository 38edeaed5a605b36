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

// ReceiverService implements the receiver-facing operations: PIX key
// management and product listings for the receiver's cause.
type ReceiverService struct {
	pixKeys    repository.PixKeyRepository
	causes     repository.CauseRepository
	products   repository.ProductRepository
	dispatcher events.Dispatcher
}

// NewReceiverService builds the service.
func NewReceiverService(pixKeys repository.PixKeyRepository, causes repository.CauseRepository, products repository.ProductRepository, dispatcher events.Dispatcher) *ReceiverService {
	return &ReceiverService{pixKeys: pixKeys, causes: causes, products: products, dispatcher: dispatcher}
}

// AddPixKey registers a payment key for the caller. Duplicate triples
// report a conflict.
func (s *ReceiverService) AddPixKey(ctx context.Context, identity *auth.Identity, key string, keyType domain.PixKeyType) (*domain.PixKey, error) {
	if err := auth.Authorize(identity, auth.ActionAddPixKey, nil); err != nil {
		return nil, err
	}

	exists, err := s.pixKeys.Exists(ctx, identity.UserID, key, keyType)
	if err != nil {
		return nil, apperrors.NewServiceUnavailable(err)
	}
	if exists {
		return nil, apperrors.NewConflict("pix key already exists", nil)
	}

	pix := &domain.PixKey{OwnerID: identity.UserID, Key: key, KeyType: keyType}
	if err := s.pixKeys.Create(ctx, pix); err != nil {
		return nil, apperrors.NewServiceUnavailable(err)
	}

	s.publish(ctx, identity, events.EventPixKeyAdded, events.PixKeyAddedPayload{KeyType: keyType})
	return pix, nil
}

// DeletePixKey removes one of the caller's payment keys.
func (s *ReceiverService) DeletePixKey(ctx context.Context, identity *auth.Identity, key string, keyType domain.PixKeyType) error {
	if err := auth.Authorize(identity, auth.ActionDeletePixKey, nil); err != nil {
		return err
	}

	if err := s.pixKeys.Delete(ctx, identity.UserID, key, keyType); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("pix key", nil)
		}
		return apperrors.NewServiceUnavailable(err)
	}
	return nil
}

// ListPixKeys returns the caller's payment keys.
func (s *ReceiverService) ListPixKeys(ctx context.Context, identity *auth.Identity) ([]domain.PixKey, error) {
	if err := auth.Authorize(identity, auth.ActionAddPixKey, nil); err != nil {
		return nil, err
	}

	keys, err := s.pixKeys.ListByOwner(ctx, identity.UserID)
	if err != nil {
		return nil, apperrors.NewServiceUnavailable(err)
	}
	return keys, nil
}

// CreateProduct adds a product to one of the caller's causes.
func (s *ReceiverService) CreateProduct(ctx context.Context, identity *auth.Identity, product *domain.Product) error {
	if err := s.authorizeCause(ctx, identity, product.CauseID); err != nil {
		return err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return apperrors.NewServiceUnavailable(err)
	}
	return nil
}

// UpdateProduct modifies a product on one of the caller's causes.
func (s *ReceiverService) UpdateProduct(ctx context.Context, identity *auth.Identity, product *domain.Product) error {
	if err := auth.Authorize(identity, auth.ActionManageProducts, nil); err != nil {
		return err
	}

	existing, err := s.products.GetByID(ctx, product.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", map[string]any{"product_id": product.ID})
		}
		return apperrors.NewServiceUnavailable(err)
	}
	if err := s.authorizeCause(ctx, identity, existing.CauseID); err != nil {
		return err
	}

	product.CauseID = existing.CauseID
	if err := s.products.Update(ctx, product); err != nil {
		return apperrors.NewServiceUnavailable(err)
	}
	return nil
}

// DeleteProduct removes a product from one of the caller's causes.
func (s *ReceiverService) DeleteProduct(ctx context.Context, identity *auth.Identity, productID int64) error {
	if err := auth.Authorize(identity, auth.ActionManageProducts, nil); err != nil {
		return err
	}

	existing, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", map[string]any{"product_id": productID})
		}
		return apperrors.NewServiceUnavailable(err)
	}
	if err := s.authorizeCause(ctx, identity, existing.CauseID); err != nil {
		return err
	}

	if err := s.products.Delete(ctx, productID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("product", map[string]any{"product_id": productID})
		}
		return apperrors.NewServiceUnavailable(err)
	}
	return nil
}

// authorizeCause runs the product-management policy against the cause's
// owner. The role check happens before the cause is ever looked up, so a
// non-receiver is refused with a role mismatch even for a missing cause.
func (s *ReceiverService) authorizeCause(ctx context.Context, identity *auth.Identity, causeID int64) error {
	if err := auth.Authorize(identity, auth.ActionManageProducts, nil); err != nil {
		return err
	}

	ownerID, err := s.causes.OwnerID(ctx, causeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("cause", map[string]any{"cause_id": causeID})
		}
		return apperrors.NewServiceUnavailable(err)
	}
	return auth.Authorize(identity, auth.ActionManageProducts, &ownerID)
}

func (s *ReceiverService) publish(ctx context.Context, identity *auth.Identity, eventType events.EventType, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     events.Actor{UserID: identity.UserID, Role: identity.Role},
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
