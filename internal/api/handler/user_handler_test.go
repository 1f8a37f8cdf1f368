package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/backoffice/user-admin-api/internal/core/domain"
	"github.com/backoffice/user-admin-api/internal/core/ports"
)

// stubUserService records the last call and returns canned results.
type stubUserService struct {
	users []*domain.User
	user  *domain.User
	form  *ports.UserForm
	err   error

	lastActor  domain.Actor
	lastUserID string
	lastCreate ports.CreateUserInput
	lastUpdate ports.UpdateUserInput
	deleted    bool
}

func (s *stubUserService) List(_ context.Context, actor domain.Actor) ([]*domain.User, error) {
	s.lastActor = actor
	return s.users, s.err
}

func (s *stubUserService) CreateForm(_ context.Context, actor domain.Actor) (*ports.UserForm, error) {
	s.lastActor = actor
	return s.form, s.err
}

func (s *stubUserService) Create(_ context.Context, actor domain.Actor, input ports.CreateUserInput) (*domain.User, error) {
	s.lastActor = actor
	s.lastCreate = input
	return s.user, s.err
}

func (s *stubUserService) Get(_ context.Context, actor domain.Actor, userID string) (*domain.User, error) {
	s.lastActor = actor
	s.lastUserID = userID
	return s.user, s.err
}

func (s *stubUserService) EditForm(_ context.Context, actor domain.Actor, userID string) (*ports.UserForm, error) {
	s.lastActor = actor
	s.lastUserID = userID
	return s.form, s.err
}

func (s *stubUserService) Update(_ context.Context, actor domain.Actor, userID string, input ports.UpdateUserInput) (*domain.User, error) {
	s.lastActor = actor
	s.lastUserID = userID
	s.lastUpdate = input
	return s.user, s.err
}

func (s *stubUserService) Delete(_ context.Context, actor domain.Actor, userID string) error {
	s.lastActor = actor
	s.lastUserID = userID
	s.deleted = s.err == nil
	return s.err
}

func sampleUser() *domain.User {
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	return &domain.User{
		ID:        "u001",
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		RoleIDs:   []string{"support"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func actorCtx(method, path, body string, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("actor", domain.Actor{ID: "admin1", Permissions: []string{domain.PermUsersCreate}})

	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	return c, rec
}

func TestUserHandler_List(t *testing.T) {
	svc := &stubUserService{users: []*domain.User{sampleUser()}}
	h := NewUserHandler(svc)

	c, rec := actorCtx(http.MethodGet, "/v1/users", "")
	if err := h.List(c); err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body listUsersResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0].ID != "u001" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if svc.lastActor.ID != "admin1" {
		t.Fatalf("actor not forwarded to the service")
	}
}

func TestUserHandler_Create(t *testing.T) {
	svc := &stubUserService{user: sampleUser()}
	h := NewUserHandler(svc)

	payload := `{"name":"Jane Doe","email":"jane@example.com","role_ids":["support"]}`
	c, rec := actorCtx(http.MethodPost, "/v1/users", payload)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastCreate.Name != "Jane Doe" || svc.lastCreate.Email != "jane@example.com" {
		t.Fatalf("input not mapped: %+v", svc.lastCreate)
	}
	if len(svc.lastCreate.RoleIDs) != 1 || svc.lastCreate.RoleIDs[0] != "support" {
		t.Fatalf("role ids not mapped: %+v", svc.lastCreate)
	}

	var body userResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.ID != "u001" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response must never carry password material: %s", rec.Body.String())
	}
}

func TestUserHandler_Create_BadPayload(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := actorCtx(http.MethodPost, "/v1/users", `{"name":`)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

// Service errors pass through untouched so the central handler can map them.
func TestUserHandler_ServiceErrorsPassThrough(t *testing.T) {
	svc := &stubUserService{err: domain.ErrUserNotFound}
	h := NewUserHandler(svc)

	c, _ := actorCtx(http.MethodGet, "/v1/users/missing", "", "id", "missing")
	if err := h.Get(c); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if svc.lastUserID != "missing" {
		t.Fatalf("path param not forwarded: %q", svc.lastUserID)
	}
}

func TestUserHandler_Update_PartialBody(t *testing.T) {
	svc := &stubUserService{user: sampleUser()}
	h := NewUserHandler(svc)

	c, rec := actorCtx(http.MethodPatch, "/v1/users/u001", `{"name":"Jane Smith"}`, "id", "u001")
	if err := h.Update(c); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastUpdate.Name == nil || *svc.lastUpdate.Name != "Jane Smith" {
		t.Fatalf("name not mapped: %+v", svc.lastUpdate)
	}
	if svc.lastUpdate.Email != nil {
		t.Fatalf("absent email must stay nil: %+v", svc.lastUpdate)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)

	c, rec := actorCtx(http.MethodDelete, "/v1/users/u001", "", "id", "u001")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if !svc.deleted {
		t.Fatalf("service delete not invoked")
	}
}

func TestUserHandler_MissingActor(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.List(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth claims, got %v", err)
	}
}

func TestUserHandler_FormResponses(t *testing.T) {
	form := &ports.UserForm{
		User: sampleUser(),
		Roles: []ports.RoleWithPermissions{{
			Role:        domain.Role{ID: "support", Name: "Support", PermissionIDs: []string{"users.view"}},
			Permissions: []domain.Permission{{ID: "users.view", Name: "users.view"}},
		}},
		Permissions: []domain.Permission{{ID: "users.view", Name: "users.view"}},
	}
	svc := &stubUserService{form: form}
	h := NewUserHandler(svc)

	c, rec := actorCtx(http.MethodGet, "/v1/users/u001/edit", "", "id", "u001")
	if err := h.EditForm(c); err != nil {
		t.Fatalf("EditForm returned error: %v", err)
	}

	var body userFormResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.User == nil || body.User.ID != "u001" {
		t.Fatalf("edit form must carry the user: %+v", body)
	}
	if len(body.Roles) != 1 || len(body.Roles[0].Permissions) != 1 {
		t.Fatalf("catalogs not rendered: %+v", body)
	}
}
