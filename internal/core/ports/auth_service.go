package ports

import (
	"context"

	"github.com/backoffice/user-admin-api/internal/core/domain"
)

// AuthService authenticates administrators against stored credentials.
type AuthService interface {
	// Login verifies the password and returns a signed token whose claims
	// carry the user's effective permissions, plus the user itself. Unknown
	// email and wrong password both yield domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
