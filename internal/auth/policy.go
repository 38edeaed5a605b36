package auth

import (
	"github.com/spec-kit/donation-service/internal/domain"
	apperrors "github.com/spec-kit/donation-service/pkg/util"
)

// Action identifies a protected operation.
type Action string

const (
	ActionListReceivers      Action = "list_receivers"
	ActionDeactivateDonor    Action = "deactivate_donor"
	ActionDeactivateReceiver Action = "deactivate_receiver"
	ActionFavoriteCause      Action = "favorite_cause"
	ActionUnfavoriteCause    Action = "unfavorite_cause"
	ActionListFavorites      Action = "list_favorites"
	ActionAddPixKey          Action = "add_pix_key"
	ActionDeletePixKey       Action = "delete_pix_key"
	ActionListCauseProducts  Action = "list_cause_products"
	ActionManageProducts     Action = "manage_products"
)

// Forbidden reasons reported in error details.
const (
	ReasonRoleMismatch = "role_mismatch"
	ReasonNotOwner     = "not_owner"
)

type policyRule struct {
	roles map[domain.Role]struct{}
	// ownership marks self-or-admin actions: the admin role overrides both
	// the role and the owner check, but only for these.
	ownership bool
}

func roleSet(roles ...domain.Role) map[domain.Role]struct{} {
	set := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

var policyTable = map[Action]policyRule{
	ActionListReceivers:      {roles: roleSet(domain.RoleDonor)},
	ActionDeactivateDonor:    {roles: roleSet(domain.RoleDonor), ownership: true},
	ActionDeactivateReceiver: {roles: roleSet(domain.RoleReceiver), ownership: true},
	ActionFavoriteCause:      {roles: roleSet(domain.RoleDonor)},
	ActionUnfavoriteCause:    {roles: roleSet(domain.RoleDonor)},
	ActionListFavorites:      {roles: roleSet(domain.RoleDonor)},
	ActionAddPixKey:          {roles: roleSet(domain.RoleReceiver)},
	ActionDeletePixKey:       {roles: roleSet(domain.RoleReceiver)},
	ActionListCauseProducts:  {roles: roleSet(domain.RoleDonor)},
	ActionManageProducts:     {roles: roleSet(domain.RoleReceiver), ownership: true},
}

// Authorize decides whether identity may perform action on the resource
// owned by targetOwnerID (nil when the action has no target owner). The
// role check runs strictly before the ownership check; resource existence
// is the action handler's concern and is reported through the same error
// taxonomy afterwards.
func Authorize(identity *Identity, action Action, targetOwnerID *int64) error {
	if identity == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	rule, ok := policyTable[action]
	if !ok {
		return apperrors.NewForbidden("unknown action", map[string]any{
			"reason": ReasonRoleMismatch,
			"action": string(action),
		})
	}

	_, roleAllowed := rule.roles[identity.Role]
	if !roleAllowed && !(rule.ownership && identity.IsAdmin()) {
		return apperrors.NewForbidden("insufficient role for this action", map[string]any{
			"reason": ReasonRoleMismatch,
			"action": string(action),
		})
	}

	if rule.ownership && targetOwnerID != nil && identity.UserID != *targetOwnerID && !identity.IsAdmin() {
		return apperrors.NewForbidden("you can only act on your own account", map[string]any{
			"reason": ReasonNotOwner,
			"action": string(action),
		})
	}

	return nil
}
