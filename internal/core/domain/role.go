package domain

import "errors"

var ErrRoleNotFound = errors.New("role not found")
var ErrPermissionNotFound = errors.New("permission not found")

// Permission is an atomic capability. It can be granted to a user directly
// or inherited through a role.
type Permission struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Role is a named bundle of permissions assignable to a user. Roles and
// permissions are managed outside this service; it only reads the catalogs
// and records assignments.
type Role struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	PermissionIDs []string `json:"permission_ids"`
}
