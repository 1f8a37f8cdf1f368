package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/backoffice/user-admin-api/internal/core/domain"
	"github.com/backoffice/user-admin-api/internal/core/ports"
)

// UserService orchestrates user administration. It authorizes the actor
// before anything else, validates input, and delegates persistence, password
// generation and notification delivery to injected collaborators. It holds no
// state between invocations and is safe for concurrent use.
type UserService struct {
	users      ports.UserRepository
	roles      ports.RoleRepository
	gate       ports.Authorizer
	passwords  ports.PasswordGenerator
	dispatcher ports.NotificationDispatcher
	validate   *validator.Validate
	logger     zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	gate ports.Authorizer,
	passwords ports.PasswordGenerator,
	dispatcher ports.NotificationDispatcher,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:      users,
		roles:      roles,
		gate:       gate,
		passwords:  passwords,
		dispatcher: dispatcher,
		validate:   validator.New(),
		logger:     logger,
	}
}

// List returns the users the actor is authorized to see. The gate may scope
// the result (self-only) rather than deny the call.
func (s *UserService) List(ctx context.Context, actor domain.Actor) ([]*domain.User, error) {
	scope, err := s.gate.ListScope(actor)
	if err != nil {
		return nil, err
	}

	filter := ports.ListUsersFilter{}
	if scope.SelfOnly {
		filter.ID = actor.ID
	}

	users, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// CreateForm authorizes the actor for create and returns both catalogs for
// the assignment pickers.
func (s *UserService) CreateForm(ctx context.Context, actor domain.Actor) (*ports.UserForm, error) {
	if err := s.gate.Authorize(actor, domain.ActionCreate, ""); err != nil {
		return nil, err
	}
	return s.loadForm(ctx, nil)
}

// Create provisions a new account with a generated initial password and the
// requested role and permission assignments. The insert is a single document
// write, so assignments are all-or-nothing with the user itself. The welcome
// notification is fire-and-forget: a delivery failure never rolls back the
// creation.
func (s *UserService) Create(ctx context.Context, actor domain.Actor, input ports.CreateUserInput) (*domain.User, error) {
	if err := s.gate.Authorize(actor, domain.ActionCreate, ""); err != nil {
		return nil, err
	}

	if err := s.validateCreate(ctx, input); err != nil {
		return nil, err
	}

	// Resolve assignments before writing anything: unknown ids must fail the
	// whole operation without leaving a partial user behind.
	if len(input.RoleIDs) > 0 {
		if _, err := s.roles.FindRoles(ctx, input.RoleIDs); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
	}
	if len(input.PermissionIDs) > 0 {
		if _, err := s.roles.FindPermissions(ctx, input.PermissionIDs); err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
	}

	plaintext, err := s.passwords.Generate()
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:          input.Name,
		Email:         input.Email,
		PasswordHash:  string(hash),
		RoleIDs:       input.RoleIDs,
		PermissionIDs: input.PermissionIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		// Lost a race with a concurrent create; the unique index is the
		// authority, the earlier pre-check only improves error reporting.
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, emailTakenError()
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.dispatcher.Enqueue(ports.UserCreatedEvent{User: *created, PlaintextPassword: plaintext})

	s.logger.Info().
		Str("user_id", created.ID).
		Str("actor_id", actor.ID).
		Int("roles", len(created.RoleIDs)).
		Int("permissions", len(created.PermissionIDs)).
		Msg("user created")

	return created, nil
}

// Get returns a single user. The gate decides per target: besides the view
// permission, an actor may always view their own record.
func (s *UserService) Get(ctx context.Context, actor domain.Actor, userID string) (*domain.User, error) {
	if err := s.gate.Authorize(actor, domain.ActionView, userID); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, userID)
}

// EditForm authorizes the actor for update and returns the user together with
// both catalogs so the UI can pre-select current assignments.
func (s *UserService) EditForm(ctx context.Context, actor domain.Actor, userID string) (*ports.UserForm, error) {
	if err := s.gate.Authorize(actor, domain.ActionUpdate, userID); err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.loadForm(ctx, user)
}

// Update applies a partial update to name and/or email. Absent fields are
// left unchanged. Role and permission assignments are not updatable here.
func (s *UserService) Update(ctx context.Context, actor domain.Actor, userID string, input ports.UpdateUserInput) (*domain.User, error) {
	if err := s.gate.Authorize(actor, domain.ActionUpdate, userID); err != nil {
		return nil, err
	}

	if err := s.validateUpdate(ctx, userID, input); err != nil {
		return nil, err
	}

	updated, err := s.users.Update(ctx, userID, ports.UserUpdate{Name: input.Name, Email: input.Email})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, emailTakenError()
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Str("actor_id", actor.ID).Msg("user updated")
	return updated, nil
}

// Delete hard-deletes the user; assignment links are removed with the record.
func (s *UserService) Delete(ctx context.Context, actor domain.Actor, userID string) error {
	if err := s.gate.Authorize(actor, domain.ActionDelete, userID); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Str("user_id", userID).Str("actor_id", actor.ID).Msg("user deleted")
	return nil
}

// loadForm assembles the role catalog (permissions resolved) and the
// permission catalog.
func (s *UserService) loadForm(ctx context.Context, user *domain.User) (*ports.UserForm, error) {
	roles, err := s.roles.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("load form: %w", err)
	}
	permissions, err := s.roles.ListPermissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load form: %w", err)
	}

	byID := make(map[string]domain.Permission, len(permissions))
	for _, p := range permissions {
		byID[p.ID] = p
	}

	withPerms := make([]ports.RoleWithPermissions, len(roles))
	for i, role := range roles {
		resolved := make([]domain.Permission, 0, len(role.PermissionIDs))
		for _, id := range role.PermissionIDs {
			if p, ok := byID[id]; ok {
				resolved = append(resolved, p)
			}
		}
		withPerms[i] = ports.RoleWithPermissions{Role: role, Permissions: resolved}
	}

	return &ports.UserForm{User: user, Roles: withPerms, Permissions: permissions}, nil
}

// validateCreate collects every field error instead of failing fast. The
// uniqueness pre-check only improves the report; the repository's unique
// index is what settles concurrent creates.
func (s *UserService) validateCreate(ctx context.Context, input ports.CreateUserInput) error {
	verr := s.structErrors(input)

	if !hasFieldError(verr, "email") {
		_, err := s.users.FindByEmail(ctx, input.Email)
		switch {
		case err == nil:
			verr.Add("email", "is already in use")
		case !errors.Is(err, domain.ErrUserNotFound):
			return fmt.Errorf("validate create: %w", err)
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// validateUpdate applies the create rules to the fields that are present; the
// uniqueness check excludes the user being updated.
func (s *UserService) validateUpdate(ctx context.Context, userID string, input ports.UpdateUserInput) error {
	verr := s.structErrors(input)

	if input.Email != nil && !hasFieldError(verr, "email") {
		existing, err := s.users.FindByEmail(ctx, *input.Email)
		switch {
		case err == nil && existing.ID != userID:
			verr.Add("email", "is already in use")
		case err != nil && !errors.Is(err, domain.ErrUserNotFound):
			return fmt.Errorf("validate update: %w", err)
		}
	}

	if verr.HasErrors() {
		return verr
	}
	return nil
}

// structErrors runs tag validation and converts the result into field errors.
func (s *UserService) structErrors(input any) *domain.ValidationError {
	verr := &domain.ValidationError{}

	err := s.validate.Struct(input)
	if err == nil {
		return verr
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		verr.Add("input", "invalid payload")
		return verr
	}

	for _, fe := range ve {
		verr.Add(strings.ToLower(fe.Field()), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "min":
		return "must not be empty"
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}

func hasFieldError(verr *domain.ValidationError, field string) bool {
	for _, f := range verr.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// emailTakenError surfaces a uniqueness conflict as a field-level validation
// error so form callers handle it like any other invalid input.
func emailTakenError() *domain.ValidationError {
	verr := &domain.ValidationError{}
	verr.Add("email", "is already in use")
	return verr
}
