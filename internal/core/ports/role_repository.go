package ports

import (
	"context"

	"github.com/backoffice/user-admin-api/internal/core/domain"
)

// RoleRepository reads the role and permission catalogs. The catalogs are
// owned by an external system; this service never mutates them beyond the
// initial seed.
type RoleRepository interface {
	ListRoles(ctx context.Context) ([]domain.Role, error)
	ListPermissions(ctx context.Context) ([]domain.Permission, error)
	// FindRoles resolves the given ids. It returns domain.ErrRoleNotFound if
	// any id is unknown.
	FindRoles(ctx context.Context, ids []string) ([]domain.Role, error)
	// FindPermissions resolves the given ids. It returns
	// domain.ErrPermissionNotFound if any id is unknown.
	FindPermissions(ctx context.Context, ids []string) ([]domain.Permission, error)
}
