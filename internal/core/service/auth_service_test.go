package service

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/backoffice/user-admin-api/internal/core/domain"
)

const testSecret = "test-secret"

func seedLoginUser(t *testing.T, repo *stubUserRepo, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return repo.seed(&domain.User{
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		PasswordHash:  string(hash),
		RoleIDs:       []string{"2"},
		PermissionIDs: []string{"users.delete"},
	})
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	user := seedLoginUser(t, repo, "s3cret!!")
	svc := NewAuthService(repo, newStubRoleRepo(), testSecret, time.Hour)

	token, loggedIn, err := svc.Login(context.Background(), "jane@example.com", "s3cret!!")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("unexpected user: %+v", loggedIn)
	}

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("issued token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != user.ID || claims["email"] != "jane@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	// Support role contributes list+view, the direct grant adds delete.
	raw := claims["perms"].([]interface{})
	perms := make([]string, len(raw))
	for i, p := range raw {
		perms[i] = p.(string)
	}
	want := []string{"users.delete", "users.list", "users.view"}
	if !reflect.DeepEqual(perms, want) {
		t.Fatalf("expected perms %v, got %v", want, perms)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	seedLoginUser(t, repo, "s3cret!!")
	svc := NewAuthService(repo, newStubRoleRepo(), testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "jane@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

// Unknown email and wrong password are indistinguishable to the caller.
func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubRoleRepo(), testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubRoleRepo(), testSecret, time.Hour)

	if _, _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
