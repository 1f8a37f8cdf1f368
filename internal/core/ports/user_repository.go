package ports

import (
	"context"

	"github.com/backoffice/user-admin-api/internal/core/domain"
)

// ListUsersFilter scopes a List call. A non-empty ID restricts the result to
// that single user (the self-only scope produced by the authorization gate).
type ListUsersFilter struct {
	ID string
}

// UserUpdate carries a partial update. Nil fields are left unchanged, not
// cleared.
type UserUpdate struct {
	Name  *string
	Email *string
}

// UserRepository defines persistence for user records.
//
// Create and Update must enforce email uniqueness race-free (unique index or
// equivalent): they return domain.ErrEmailTaken when the address is already
// held by another user, including under concurrent writes with the same email.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// List returns users matching filter, ordered by CreatedAt ascending with
	// ID as tiebreak so listings are deterministic.
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	// Delete removes the user together with its role and permission
	// assignment links. Returns domain.ErrUserNotFound when no row matched.
	Delete(ctx context.Context, id string) error
}
