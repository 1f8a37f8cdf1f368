package handler

import "time"

// --- Request types ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// createUserRequest deliberately has no password field: the initial password
// is generated server-side and delivered out-of-band.
type createUserRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	RoleIDs       []string `json:"role_ids"`
	PermissionIDs []string `json:"permission_ids"`
}

// updateUserRequest carries a partial update: absent fields stay unchanged.
// Role and permission assignments are not updatable through this endpoint.
type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// --- Response types ---
// These are intentionally separate from domain types so the JSON contract is
// not coupled to internal changes.

type userResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	RoleIDs       []string  `json:"role_ids,omitempty"`
	PermissionIDs []string  `json:"permission_ids,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type permissionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type roleResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Permissions []permissionResponse `json:"permissions"`
}

// userFormResponse feeds the create and edit forms: both catalogs, plus the
// user being edited (absent on the create form).
type userFormResponse struct {
	User        *userResponse        `json:"user,omitempty"`
	Roles       []roleResponse       `json:"roles"`
	Permissions []permissionResponse `json:"permissions"`
}

type listUsersResponse struct {
	Data []userResponse `json:"data"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}
