package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/donation-service/internal/domain"
	apperrors "github.com/spec-kit/donation-service/pkg/util"
)

func donorIdentity(id int64) *Identity {
	return &Identity{Subject: "donor@example.com", UserID: id, Role: domain.RoleDonor}
}

func receiverIdentity(id int64) *Identity {
	return &Identity{Subject: "receiver@example.com", UserID: id, Role: domain.RoleReceiver}
}

func adminIdentity(id int64) *Identity {
	return &Identity{Subject: "admin@example.com", UserID: id, Role: domain.RoleAdmin}
}

func requireForbidden(t *testing.T, err error, reason string) {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "FORBIDDEN", domainErr.Code)
	require.Equal(t, reason, domainErr.Details["reason"])
}

func TestAuthorizeRoleChecks(t *testing.T) {
	ownerID := int64(10)

	tests := []struct {
		name     string
		identity *Identity
		action   Action
		ownerID  *int64
		reason   string
	}{
		{"donor lists receivers", donorIdentity(10), ActionListReceivers, nil, ""},
		{"receiver cannot list receivers", receiverIdentity(10), ActionListReceivers, nil, ReasonRoleMismatch},
		{"admin cannot list receivers", adminIdentity(1), ActionListReceivers, nil, ReasonRoleMismatch},
		{"donor favorites cause", donorIdentity(10), ActionFavoriteCause, nil, ""},
		{"admin cannot favorite", adminIdentity(1), ActionFavoriteCause, nil, ReasonRoleMismatch},
		{"donor lists own favorites", donorIdentity(10), ActionListFavorites, nil, ""},
		{"receiver adds pix key", receiverIdentity(10), ActionAddPixKey, nil, ""},
		{"donor cannot add pix key", donorIdentity(10), ActionAddPixKey, nil, ReasonRoleMismatch},
		{"donor lists cause products", donorIdentity(10), ActionListCauseProducts, nil, ""},
		{"receiver cannot list cause products", receiverIdentity(10), ActionListCauseProducts, nil, ReasonRoleMismatch},
		{"receiver manages own products", receiverIdentity(10), ActionManageProducts, &ownerID, ""},
		{"donor cannot manage products", donorIdentity(10), ActionManageProducts, &ownerID, ReasonRoleMismatch},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Authorize(tc.identity, tc.action, tc.ownerID)
			if tc.reason == "" {
				require.NoError(t, err)
				return
			}
			requireForbidden(t, err, tc.reason)
		})
	}
}

func TestAuthorizeOwnership(t *testing.T) {
	self := int64(10)
	other := int64(99)

	require.NoError(t, Authorize(donorIdentity(10), ActionDeactivateDonor, &self))
	requireForbidden(t, Authorize(donorIdentity(10), ActionDeactivateDonor, &other), ReasonNotOwner)

	require.NoError(t, Authorize(receiverIdentity(10), ActionDeactivateReceiver, &self))
	requireForbidden(t, Authorize(receiverIdentity(10), ActionDeactivateReceiver, &other), ReasonNotOwner)

	// admin overrides both the role and the owner check on ownership actions
	require.NoError(t, Authorize(adminIdentity(1), ActionDeactivateDonor, &other))
	require.NoError(t, Authorize(adminIdentity(1), ActionDeactivateReceiver, &other))
	require.NoError(t, Authorize(adminIdentity(1), ActionManageProducts, &other))

	requireForbidden(t, Authorize(receiverIdentity(10), ActionManageProducts, &other), ReasonNotOwner)
}

func TestAuthorizeRolePrecedesOwnership(t *testing.T) {
	// a receiver deactivating a donor account fails on role, not ownership,
	// even though the target is also not theirs
	other := int64(99)
	requireForbidden(t, Authorize(receiverIdentity(10), ActionDeactivateDonor, &other), ReasonRoleMismatch)
}

func TestAuthorizeNilIdentity(t *testing.T) {
	err := Authorize(nil, ActionListReceivers, nil)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "UNAUTHORIZED", domainErr.Code)
}

func TestAuthorizeUnknownAction(t *testing.T) {
	requireForbidden(t, Authorize(donorIdentity(10), Action("unknown"), nil), ReasonRoleMismatch)
}

func TestEndToEndDonorToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	token, _, err := tm.Generate("alice@example.com")
	require.NoError(t, err)

	subject, ok := tm.Subject(token)
	require.True(t, ok)

	identity := &Identity{Subject: subject, UserID: 10, Role: domain.RoleDonor}
	require.NoError(t, Authorize(identity, ActionListReceivers, nil))

	ownerID := int64(10)
	requireForbidden(t, Authorize(identity, ActionAddPixKey, &ownerID), ReasonRoleMismatch)
}
