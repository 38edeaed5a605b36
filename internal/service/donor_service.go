package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/donation-service/internal/auth"
	"github.com/spec-kit/donation-service/internal/domain"
	"github.com/spec-kit/donation-service/internal/events"
	"github.com/spec-kit/donation-service/internal/persistence"
	"github.com/spec-kit/donation-service/internal/repository"
	apperrors "github.com/spec-kit/donation-service/pkg/util"
)

const receiversCachePrefix = "receivers:"

// DonorService implements the donor-facing operations. Every operation
// consults the authorization policy before touching persistence.
type DonorService struct {
	users      repository.UserRepository
	favorites  repository.FavoriteRepository
	causes     repository.CauseRepository
	products   repository.ProductRepository
	cache      *persistence.Redis
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// DonorDependencies encapsulates repo requirements for the donor service.
type DonorDependencies struct {
	UserRepo     repository.UserRepository
	FavoriteRepo repository.FavoriteRepository
	CauseRepo    repository.CauseRepository
	ProductRepo  repository.ProductRepository
	Cache        *persistence.Redis
	CacheTTL     time.Duration
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
}

// NewDonorService builds the service.
func NewDonorService(deps DonorDependencies) *DonorService {
	return &DonorService{
		users:      deps.UserRepo,
		favorites:  deps.FavoriteRepo,
		causes:     deps.CauseRepo,
		products:   deps.ProductRepo,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ListReceivers returns active receivers in the requested order, serving
// from the redis cache when possible.
func (s *DonorService) ListReceivers(ctx context.Context, identity *auth.Identity, sort repository.ReceiverSort) ([]domain.Receiver, error) {
	if err := auth.Authorize(identity, auth.ActionListReceivers, nil); err != nil {
		return nil, err
	}

	cacheKey := receiversCachePrefix + string(sort)
	if cached, ok := s.cacheGet(ctx, cacheKey); ok {
		return cached, nil
	}

	receivers, err := s.users.ListReceivers(ctx, sort)
	if err != nil {
		return nil, apperrors.NewServiceUnavailable(err)
	}

	s.cacheSet(ctx, cacheKey, receivers)
	return receivers, nil
}

// Favorite marks a cause as favorited by the caller.
func (s *DonorService) Favorite(ctx context.Context, identity *auth.Identity, causeID int64) error {
	if err := auth.Authorize(identity, auth.ActionFavoriteCause, nil); err != nil {
		return err
	}

	exists, err := s.causes.Exists(ctx, causeID)
	if err != nil {
		return apperrors.NewServiceUnavailable(err)
	}
	if !exists {
		return apperrors.NewNotFound("cause", map[string]any{"cause_id": causeID})
	}

	favorited, err := s.favorites.Exists(ctx, identity.UserID, causeID)
	if err != nil {
		return apperrors.NewServiceUnavailable(err)
	}
	if favorited {
		return apperrors.NewConflict("cause already favorited", map[string]any{"cause_id": causeID})
	}

	fav := &domain.Favorite{DonorID: identity.UserID, CauseID: causeID}
	if err := s.favorites.Create(ctx, fav); err != nil {
		return apperrors.NewServiceUnavailable(err)
	}

	s.publish(ctx, identity, events.EventCauseFavorited, events.CauseFavoritedPayload{CauseID: causeID})
	return nil
}

// Unfavorite removes the caller's favorite for a cause.
func (s *DonorService) Unfavorite(ctx context.Context, identity *auth.Identity, causeID int64) error {
	if err := auth.Authorize(identity, auth.ActionUnfavoriteCause, nil); err != nil {
		return err
	}

	if err := s.favorites.Delete(ctx, identity.UserID, causeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("favorite", map[string]any{"cause_id": causeID})
		}
		return apperrors.NewServiceUnavailable(err)
	}
	return nil
}

// ListFavorites returns the caller's favorites.
func (s *DonorService) ListFavorites(ctx context.Context, identity *auth.Identity) ([]domain.Favorite, error) {
	if err := auth.Authorize(identity, auth.ActionListFavorites, nil); err != nil {
		return nil, err
	}

	favorites, err := s.favorites.ListByDonor(ctx, identity.UserID)
	if err != nil {
		return nil, apperrors.NewServiceUnavailable(err)
	}
	return favorites, nil
}

// ListCauseProducts returns the products a cause accepts.
func (s *DonorService) ListCauseProducts(ctx context.Context, identity *auth.Identity, causeID int64) ([]domain.Product, error) {
	if err := auth.Authorize(identity, auth.ActionListCauseProducts, nil); err != nil {
		return nil, err
	}

	exists, err := s.causes.Exists(ctx, causeID)
	if err != nil {
		return nil, apperrors.NewServiceUnavailable(err)
	}
	if !exists {
		return nil, apperrors.NewNotFound("cause", map[string]any{"cause_id": causeID})
	}

	products, err := s.products.ListByCause(ctx, causeID)
	if err != nil {
		return nil, apperrors.NewServiceUnavailable(err)
	}
	return products, nil
}

// InvalidateReceiversCache drops cached receiver listings. Called after a
// receiver account changes state.
func (s *DonorService) InvalidateReceiversCache(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	sorts := []repository.ReceiverSort{
		repository.ReceiverSortNameAsc,
		repository.ReceiverSortNameDesc,
		repository.ReceiverSortUserID,
	}
	keys := make([]string, 0, len(sorts))
	for _, sort := range sorts {
		keys = append(keys, receiversCachePrefix+string(sort))
	}
	if err := s.cache.Client.Del(ctx, keys...).Err(); err != nil && s.logger != nil {
		s.logger.Warn("failed to invalidate receivers cache", zap.Error(err))
	}
}

func (s *DonorService) cacheGet(ctx context.Context, key string) ([]domain.Receiver, bool) {
	if s.cache == nil || s.cache.Client == nil {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var receivers []domain.Receiver
	if err := json.Unmarshal(raw, &receivers); err != nil {
		return nil, false
	}
	return receivers, true
}

func (s *DonorService) cacheSet(ctx context.Context, key string, receivers []domain.Receiver) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	raw, err := json.Marshal(receivers)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil && s.logger != nil {
		s.logger.Warn("failed to cache receivers", zap.Error(err))
	}
}

func (s *DonorService) publish(ctx context.Context, identity *auth.Identity, eventType events.EventType, payload interface{}) {
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
