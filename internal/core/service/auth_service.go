package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/backoffice/user-admin-api/internal/core/domain"
	"github.com/backoffice/user-admin-api/internal/core/ports"
)

// AuthService implements administrator login. The issued token embeds the
// user's effective permission names, computed against the catalogs at login
// time, so the authorization gate never needs to touch a store.
type AuthService struct {
	users     ports.UserRepository
	roles     ports.RoleRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, roles: roles, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Unknown email and wrong password look identical to the caller.
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	perms, err := s.effectivePermissionNames(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	token, err := s.generateToken(user, perms)
	if err != nil {
		return "", nil, fmt.Errorf("login: sign token: %w", err)
	}

	return token, user, nil
}

func (s *AuthService) effectivePermissionNames(ctx context.Context, user *domain.User) ([]string, error) {
	roles, err := s.roles.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := s.roles.ListPermissions(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]string, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p.Name
	}

	ids := user.EffectivePermissionIDs(roles)
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *AuthService) generateToken(user *domain.User, perms []string) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"perms": perms,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
