package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/backoffice/user-admin-api/internal/core/domain"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, secret string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   "u001",
		"email": "jane@example.com",
		"name":  "Jane Doe",
		"perms": []string{"users.list", "users.view"},
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func invoke(t *testing.T, header string) (*httptest.ResponseRecorder, domain.Actor, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var actor domain.Actor
	next := func(c echo.Context) error {
		actor, _ = c.Get("actor").(domain.Actor)
		return c.NoContent(http.StatusOK)
	}
	err := Auth(testSecret)(next)(c)
	return rec, actor, err
}

func TestAuth_ValidToken(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, testSecret)

	rec, actor, err := invoke(t, "Bearer "+token)
	if err != nil {
		t.Fatalf("expected handler to run, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if actor.ID != "u001" || actor.Email != "jane@example.com" {
		t.Fatalf("actor not populated from claims: %+v", actor)
	}
	if !actor.Can("users.view") {
		t.Fatalf("perms claim not carried into the actor: %+v", actor.Permissions)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	_, _, err := invoke(t, "")
	assertUnauthorized(t, err)
}

func TestAuth_MalformedHeader(t *testing.T) {
	_, _, err := invoke(t, "Token abc123")
	assertUnauthorized(t, err)
}

func TestAuth_WrongSecret(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, "other-secret")
	_, _, err := invoke(t, "Bearer "+token)
	assertUnauthorized(t, err)
}

func TestAuth_ExpiredToken(t *testing.T) {
	claims := jwt.MapClaims{"sub": "u001", "exp": time.Now().Add(-time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	_, _, err = invoke(t, "Bearer "+token)
	assertUnauthorized(t, err)
}

func assertUnauthorized(t *testing.T, err error) {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", he.Code)
	}
}
