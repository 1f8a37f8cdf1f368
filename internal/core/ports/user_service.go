package ports

import (
	"context"

	"github.com/backoffice/user-admin-api/internal/core/domain"
)

// CreateUserInput carries all data needed to create a user. The initial
// password is generated by the service, never supplied by the caller.
type CreateUserInput struct {
	Name          string `validate:"required,max=255"`
	Email         string `validate:"required,email,max=255"`
	RoleIDs       []string
	PermissionIDs []string
}

// UpdateUserInput carries a partial update: nil fields are left unchanged.
// Role and permission reassignment is intentionally not part of update even
// though the edit form loads both catalogs.
type UpdateUserInput struct {
	Name  *string `validate:"omitnil,min=1,max=255"`
	Email *string `validate:"omitnil,email,max=255"`
}

// RoleWithPermissions pairs a role with its resolved permission set for form
// presentation.
type RoleWithPermissions struct {
	Role        domain.Role         `json:"role"`
	Permissions []domain.Permission `json:"permissions"`
}

// UserForm is the data an administrator needs to fill the create or edit
// form: the full role catalog (with permissions resolved) and the full
// permission catalog. User is nil for the create form.
type UserForm struct {
	User        *domain.User
	Roles       []RoleWithPermissions
	Permissions []domain.Permission
}

// UserService defines the use-case operations for administering users.
type UserService interface {
	List(ctx context.Context, actor domain.Actor) ([]*domain.User, error)
	CreateForm(ctx context.Context, actor domain.Actor) (*UserForm, error)
	Create(ctx context.Context, actor domain.Actor, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, actor domain.Actor, userID string) (*domain.User, error)
	EditForm(ctx context.Context, actor domain.Actor, userID string) (*UserForm, error)
	Update(ctx context.Context, actor domain.Actor, userID string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Actor, userID string) error
}
