package handler

import (
	"github.com/backoffice/user-admin-api/internal/core/domain"
	"github.com/backoffice/user-admin-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createUserRequest) ports.CreateUserInput {
	return ports.CreateUserInput{
		Name:          req.Name,
		Email:         req.Email,
		RoleIDs:       req.RoleIDs,
		PermissionIDs: req.PermissionIDs,
	}
}

func toUpdateInput(req updateUserRequest) ports.UpdateUserInput {
	return ports.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	}
}

// --- Service result → HTTP response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		RoleIDs:       u.RoleIDs,
		PermissionIDs: u.PermissionIDs,
		CreatedAt:     u.CreatedAt.UTC(),
		UpdatedAt:     u.UpdatedAt.UTC(),
	}
}

func toListResponse(users []*domain.User) listUsersResponse {
	items := make([]userResponse, len(users))
	for i, u := range users {
		items[i] = toUserResponse(u)
	}
	return listUsersResponse{Data: items}
}

func toFormResponse(form *ports.UserForm) userFormResponse {
	roles := make([]roleResponse, len(form.Roles))
	for i, r := range form.Roles {
		roles[i] = roleResponse{
			ID:          r.Role.ID,
			Name:        r.Role.Name,
			Permissions: toPermissionResponses(r.Permissions),
		}
	}

	resp := userFormResponse{
		Roles:       roles,
		Permissions: toPermissionResponses(form.Permissions),
	}
	if form.User != nil {
		u := toUserResponse(form.User)
		resp.User = &u
	}
	return resp
}

func toPermissionResponses(perms []domain.Permission) []permissionResponse {
	out := make([]permissionResponse, len(perms))
	for i, p := range perms {
		out[i] = permissionResponse{ID: p.ID, Name: p.Name}
	}
	return out
}
