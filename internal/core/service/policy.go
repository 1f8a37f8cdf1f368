package service

import (
	"github.com/backoffice/user-admin-api/internal/core/domain"
	"github.com/backoffice/user-admin-api/internal/core/ports"
)

// PermissionGate is the default Authorizer: a pure policy over the effective
// permission names carried by the actor, with one ownership rule on top — an
// actor may always view their own record. Being pure (no I/O) keeps every
// authorization check cheap and race-free.
type PermissionGate struct{}

func NewPermissionGate() *PermissionGate {
	return &PermissionGate{}
}

var actionPermissions = map[domain.Action]string{
	domain.ActionList:   domain.PermUsersList,
	domain.ActionView:   domain.PermUsersView,
	domain.ActionCreate: domain.PermUsersCreate,
	domain.ActionUpdate: domain.PermUsersUpdate,
	domain.ActionDelete: domain.PermUsersDelete,
}

func (g *PermissionGate) Authorize(actor domain.Actor, action domain.Action, targetID string) error {
	if action == domain.ActionView && targetID != "" && targetID == actor.ID {
		return nil
	}

	required, ok := actionPermissions[action]
	if !ok || !actor.Can(required) {
		return domain.ErrForbidden
	}
	return nil
}

// ListScope scopes rather than denies where possible: an actor without
// users.list but with users.view is limited to their own record. An actor
// with neither is denied outright.
func (g *PermissionGate) ListScope(actor domain.Actor) (ports.Scope, error) {
	switch {
	case actor.Can(domain.PermUsersList):
		return ports.Scope{}, nil
	case actor.Can(domain.PermUsersView):
		return ports.Scope{SelfOnly: true}, nil
	default:
		return ports.Scope{}, domain.ErrForbidden
	}
}
