package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/donation-service/internal/domain"
	"github.com/spec-kit/donation-service/internal/repository"
	apperrors "github.com/spec-kit/donation-service/pkg/util"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	byID    map[int64]*domain.User
	nextID  int64
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{byEmail: map[string]*domain.User{}, byID: map[int64]*domain.User{}, nextID: 1}
	for _, user := range users {
		if user.ID >= repo.nextID {
			repo.nextID = user.ID + 1
		}
		repo.byEmail[user.Email] = user
		repo.byID[user.ID] = user
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) Deactivate(ctx context.Context, id int64, role domain.Role) error {
	user, ok := f.byID[id]
	if !ok || user.Role != role || !user.Active {
		return pgx.ErrNoRows
	}
	user.Active = false
	return nil
}

func (f *fakeUserRepo) ListReceivers(ctx context.Context, sort repository.ReceiverSort) ([]domain.Receiver, error) {
	var receivers []domain.Receiver
	for _, user := range f.byID {
		if user.Role == domain.RoleReceiver && user.Active {
			receivers = append(receivers, domain.Receiver{UserID: user.ID, Name: user.Name, Email: user.Email})
		}
	}
	return receivers, nil
}

type fakeFavoriteRepo struct {
	favorites map[[2]int64]*domain.Favorite
	nextID    int64
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: map[[2]int64]*domain.Favorite{}, nextID: 1}
}

func (f *fakeFavoriteRepo) Exists(ctx context.Context, donorID, causeID int64) (bool, error) {
	_, ok := f.favorites[[2]int64{donorID, causeID}]
	return ok, nil
}

func (f *fakeFavoriteRepo) Create(ctx context.Context, fav *domain.Favorite) error {
	fav.ID = f.nextID
	f.nextID++
	fav.CreatedAt = time.Now()
	f.favorites[[2]int64{fav.DonorID, fav.CauseID}] = fav
	return nil
}

func (f *fakeFavoriteRepo) Delete(ctx context.Context, donorID, causeID int64) error {
	key := [2]int64{donorID, causeID}
	if _, ok := f.favorites[key]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.favorites, key)
	return nil
}

func (f *fakeFavoriteRepo) ListByDonor(ctx context.Context, donorID int64) ([]domain.Favorite, error) {
	var out []domain.Favorite
	for key, fav := range f.favorites {
		if key[0] == donorID {
			out = append(out, *fav)
		}
	}
	return out, nil
}

type fakeCauseRepo struct {
	owners map[int64]int64
}

func newFakeCauseRepo() *fakeCauseRepo {
	return &fakeCauseRepo{owners: map[int64]int64{}}
}

func (f *fakeCauseRepo) Exists(ctx context.Context, causeID int64) (bool, error) {
	_, ok := f.owners[causeID]
	return ok, nil
}

func (f *fakeCauseRepo) OwnerID(ctx context.Context, causeID int64) (int64, error) {
	ownerID, ok := f.owners[causeID]
	if !ok {
		return 0, pgx.ErrNoRows
	}
	return ownerID, nil
}

type pixTriple struct {
	ownerID int64
	key     string
	keyType domain.PixKeyType
}

type fakePixKeyRepo struct {
	keys   map[pixTriple]*domain.PixKey
	nextID int64
}

func newFakePixKeyRepo() *fakePixKeyRepo {
	return &fakePixKeyRepo{keys: map[pixTriple]*domain.PixKey{}, nextID: 1}
}

func (f *fakePixKeyRepo) Exists(ctx context.Context, ownerID int64, key string, keyType domain.PixKeyType) (bool, error) {
	_, ok := f.keys[pixTriple{ownerID, key, keyType}]
	return ok, nil
}

func (f *fakePixKeyRepo) Create(ctx context.Context, pix *domain.PixKey) error {
	pix.ID = f.nextID
	f.nextID++
	pix.CreatedAt = time.Now()
	f.keys[pixTriple{pix.OwnerID, pix.Key, pix.KeyType}] = pix
	return nil
}

func (f *fakePixKeyRepo) Delete(ctx context.Context, ownerID int64, key string, keyType domain.PixKeyType) error {
	triple := pixTriple{ownerID, key, keyType}
	if _, ok := f.keys[triple]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.keys, triple)
	return nil
}

func (f *fakePixKeyRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.PixKey, error) {
	var out []domain.PixKey
	for triple, pix := range f.keys {
		if triple.ownerID == ownerID {
			out = append(out, *pix)
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products map[int64]*domain.Product
	nextID   int64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[int64]*domain.Product{}, nextID: 1}
}

func (f *fakeProductRepo) Create(ctx context.Context, product *domain.Product) error {
	product.ID = f.nextID
	f.nextID++
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *domain.Product) error {
	existing, ok := f.products[product.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	existing.Name = product.Name
	existing.Description = product.Description
	existing.Value = product.Value
	existing.UpdatedAt = time.Now()
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepo) ListByCause(ctx context.Context, causeID int64) ([]domain.Product, error) {
	var out []domain.Product
	for _, product := range f.products {
		if product.CauseID == causeID {
			out = append(out, *product)
		}
	}
	return out, nil
}

func requireDomainError(t *testing.T, err error, code string) *apperrors.DomainError {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr), "expected DomainError, got %v", err)
	require.Equal(t, code, domainErr.Code)
	return domainErr
}
