package domain

import "errors"

var ErrForbidden = errors.New("access forbidden")

// Action is an operation on user records subject to authorization.
type Action string

const (
	ActionList   Action = "list"
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Permission names the gate checks, one per action.
const (
	PermUsersList   = "users.list"
	PermUsersView   = "users.view"
	PermUsersCreate = "users.create"
	PermUsersUpdate = "users.update"
	PermUsersDelete = "users.delete"
)

// Actor is the authenticated entity attempting an operation. Permissions
// holds the effective permission names computed at login (direct grants plus
// role-derived grants), so authorization checks need no further I/O.
type Actor struct {
	ID          string
	Email       string
	Name        string
	Permissions []string
}

// Can reports whether the actor holds the named permission.
func (a Actor) Can(permission string) bool {
	for _, p := range a.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
