package domain

import (
	"errors"
	"time"
)

// Field limits enforced on create and update input.
const (
	MaxNameLength  = 255
	MaxEmailLength = 255
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already in use")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is a managed account record. PasswordHash is a bcrypt hash; the
// plaintext password exists only between generation and the welcome
// notification and is never persisted.
type User struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	RoleIDs       []string  `json:"role_ids"`
	PermissionIDs []string  `json:"permission_ids"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EffectivePermissionIDs returns the union of the user's direct permission
// grants and the permissions inherited from every assigned role. The catalog
// may contain roles the user does not hold; those are ignored.
func (u *User) EffectivePermissionIDs(catalog []Role) []string {
	assigned := make(map[string]struct{}, len(u.RoleIDs))
	for _, id := range u.RoleIDs {
		assigned[id] = struct{}{}
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	for _, id := range u.PermissionIDs {
		add(id)
	}
	for _, role := range catalog {
		if _, ok := assigned[role.ID]; !ok {
			continue
		}
		for _, id := range role.PermissionIDs {
			add(id)
		}
	}
	return out
}

// HasRole reports whether the role is assigned to the user.
func (u *User) HasRole(roleID string) bool {
	for _, id := range u.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}
