package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/donation-service/internal/auth"
	"github.com/spec-kit/donation-service/internal/domain"
)

func newReceiverServiceForTest(pixKeys *fakePixKeyRepo, causes *fakeCauseRepo, products *fakeProductRepo) *ReceiverService {
	return NewReceiverService(pixKeys, causes, products, nil)
}

func TestAddPixKey(t *testing.T) {
	svc := newReceiverServiceForTest(newFakePixKeyRepo(), newFakeCauseRepo(), newFakeProductRepo())

	pix, err := svc.AddPixKey(context.Background(), receiver(7), "mail@example.com", domain.PixKeyTypeEmail)
	require.NoError(t, err)
	require.Equal(t, int64(7), pix.OwnerID)
	require.NotZero(t, pix.ID)
}

func TestAddPixKeyDuplicateConflicts(t *testing.T) {
	svc := newReceiverServiceForTest(newFakePixKeyRepo(), newFakeCauseRepo(), newFakeProductRepo())

	_, err := svc.AddPixKey(context.Background(), receiver(7), "mail@example.com", domain.PixKeyTypeEmail)
	require.NoError(t, err)

	_, err = svc.AddPixKey(context.Background(), receiver(7), "mail@example.com", domain.PixKeyTypeEmail)
	requireDomainError(t, err, "CONFLICT")

	// same key value under a different type is a different triple
	_, err = svc.AddPixKey(context.Background(), receiver(7), "mail@example.com", domain.PixKeyTypeRandom)
	require.NoError(t, err)
}

func TestAddPixKeyRequiresReceiver(t *testing.T) {
	svc := newReceiverServiceForTest(newFakePixKeyRepo(), newFakeCauseRepo(), newFakeProductRepo())

	_, err := svc.AddPixKey(context.Background(), donor(10), "mail@example.com", domain.PixKeyTypeEmail)
	domainErr := requireDomainError(t, err, "FORBIDDEN")
	require.Equal(t, auth.ReasonRoleMismatch, domainErr.Details["reason"])
}

func TestDeletePixKey(t *testing.T) {
	svc := newReceiverServiceForTest(newFakePixKeyRepo(), newFakeCauseRepo(), newFakeProductRepo())

	_, err := svc.AddPixKey(context.Background(), receiver(7), "11122233344", domain.PixKeyTypeCPF)
	require.NoError(t, err)

	require.NoError(t, svc.DeletePixKey(context.Background(), receiver(7), "11122233344", domain.PixKeyTypeCPF))

	err = svc.DeletePixKey(context.Background(), receiver(7), "11122233344", domain.PixKeyTypeCPF)
	requireDomainError(t, err, "NOT_FOUND")
}

func TestDeletePixKeyScopedToOwner(t *testing.T) {
	svc := newReceiverServiceForTest(newFakePixKeyRepo(), newFakeCauseRepo(), newFakeProductRepo())

	_, err := svc.AddPixKey(context.Background(), receiver(7), "key", domain.PixKeyTypeRandom)
	require.NoError(t, err)

	// a different receiver cannot see the first one's key
	err = svc.DeletePixKey(context.Background(), receiver(8), "key", domain.PixKeyTypeRandom)
	requireDomainError(t, err, "NOT_FOUND")
}

func TestCreateProductOnOwnCause(t *testing.T) {
	causes := newFakeCauseRepo()
	causes.owners[5] = 7
	svc := newReceiverServiceForTest(newFakePixKeyRepo(), causes, newFakeProductRepo())

	product := &domain.Product{CauseID: 5, Name: "Canned food", Value: 12}
	require.NoError(t, svc.CreateProduct(context.Background(), receiver(7), product))
	require.NotZero(t, product.ID)
}

func TestCreateProductOnForeignCause(t *testing.T) {
	causes := newFakeCauseRepo()
	causes.owners[5] = 7
	svc := newReceiverServiceForTest(newFakePixKeyRepo(), causes, newFakeProductRepo())

	err := svc.CreateProduct(context.Background(), receiver(8), &domain.Product{CauseID: 5, Name: "X"})
	domainErr := requireDomainError(t, err, "FORBIDDEN")
	require.Equal(t, auth.ReasonNotOwner, domainErr.Details["reason"])
}

func TestCreateProductRoleCheckedBeforeCauseLookup(t *testing.T) {
	svc := newReceiverServiceForTest(newFakePixKeyRepo(), newFakeCauseRepo(), newFakeProductRepo())

	err := svc.CreateProduct(context.Background(), donor(10), &domain.Product{CauseID: 999, Name: "X"})
	domainErr := requireDomainError(t, err, "FORBIDDEN")
	require.Equal(t, auth.ReasonRoleMismatch, domainErr.Details["reason"])
}

func TestProductMutationRoleCheckedBeforeLookup(t *testing.T) {
	// product 999 does not exist, but a donor still gets the role mismatch
	svc := newReceiverServiceForTest(newFakePixKeyRepo(), newFakeCauseRepo(), newFakeProductRepo())

	err := svc.UpdateProduct(context.Background(), donor(10), &domain.Product{ID: 999, Name: "X"})
	domainErr := requireDomainError(t, err, "FORBIDDEN")
	require.Equal(t, auth.ReasonRoleMismatch, domainErr.Details["reason"])

	err = svc.DeleteProduct(context.Background(), donor(10), 999)
	domainErr = requireDomainError(t, err, "FORBIDDEN")
	require.Equal(t, auth.ReasonRoleMismatch, domainErr.Details["reason"])
}

func TestUpdateAndDeleteProduct(t *testing.T) {
	causes := newFakeCauseRepo()
	causes.owners[5] = 7
	products := newFakeProductRepo()
	svc := newReceiverServiceForTest(newFakePixKeyRepo(), causes, products)

	product := &domain.Product{CauseID: 5, Name: "Rice", Value: 8}
	require.NoError(t, svc.CreateProduct(context.Background(), receiver(7), product))

	product.Name = "Rice 5kg"
	require.NoError(t, svc.UpdateProduct(context.Background(), receiver(7), product))

	stored, err := products.GetByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Equal(t, "Rice 5kg", stored.Name)

	// admin may manage any receiver's products
	require.NoError(t, svc.DeleteProduct(context.Background(), admin(1), product.ID))

	err = svc.DeleteProduct(context.Background(), receiver(7), product.ID)
	requireDomainError(t, err, "NOT_FOUND")
}
