package ports

import "github.com/backoffice/user-admin-api/internal/core/domain"

// Scope restricts a List result set instead of denying the call outright.
type Scope struct {
	// SelfOnly limits the listing to the actor's own record.
	SelfOnly bool
}

// Authorizer decides whether an actor may perform an action on a user record.
// The service consults it before every operation and before any load, so a
// denied actor never learns whether a target exists.
type Authorizer interface {
	// Authorize returns domain.ErrForbidden when the actor may not perform
	// action on the target. An empty targetID references the user class
	// (a not-yet-persisted record), used for create and list checks.
	Authorize(actor domain.Actor, action domain.Action, targetID string) error
	// ListScope returns the restriction to apply to a listing, or
	// domain.ErrForbidden when the actor may not list at all.
	ListScope(actor domain.Actor) (Scope, error)
}
