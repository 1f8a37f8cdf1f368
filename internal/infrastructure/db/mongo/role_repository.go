package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/backoffice/user-admin-api/internal/core/domain"
)

const (
	rolesCollection       = "roles"
	permissionsCollection = "permissions"
)

// RoleRepository reads the role and permission catalogs. The catalogs are
// maintained by an external admin tool; here they are read-only apart from
// the first-boot seed.
type RoleRepository struct {
	roles       *mongo.Collection
	permissions *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{
		roles:       db.Collection(rolesCollection),
		permissions: db.Collection(permissionsCollection),
	}
}

type roleDoc struct {
	ID            string   `bson:"_id"`
	Name          string   `bson:"name"`
	PermissionIDs []string `bson:"permission_ids,omitempty"`
}

type permissionDoc struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
}

func (r *RoleRepository) ListRoles(ctx context.Context) ([]domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.roles.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cursor.Close(ctx)

	roles := []domain.Role{}
	for cursor.Next(ctx) {
		var doc roleDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		roles = append(roles, domain.Role{ID: doc.ID, Name: doc.Name, PermissionIDs: doc.PermissionIDs})
	}
	return roles, cursor.Err()
}

func (r *RoleRepository) ListPermissions(ctx context.Context) ([]domain.Permission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.permissions.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	defer cursor.Close(ctx)

	perms := []domain.Permission{}
	for cursor.Next(ctx) {
		var doc permissionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode permission: %w", err)
		}
		perms = append(perms, domain.Permission{ID: doc.ID, Name: doc.Name})
	}
	return perms, cursor.Err()
}

// FindRoles resolves ids via a single $in query and fails when any id is
// unknown, naming the first missing one.
func (r *RoleRepository) FindRoles(ctx context.Context, ids []string) ([]domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.roles.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}
	defer cursor.Close(ctx)

	found := make(map[string]domain.Role, len(ids))
	for cursor.Next(ctx) {
		var doc roleDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		found[doc.ID] = domain.Role{ID: doc.ID, Name: doc.Name, PermissionIDs: doc.PermissionIDs}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find roles: %w", err)
	}

	roles := make([]domain.Role, 0, len(ids))
	for _, id := range ids {
		role, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrRoleNotFound, id)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// FindPermissions resolves ids and fails when any id is unknown.
func (r *RoleRepository) FindPermissions(ctx context.Context, ids []string) ([]domain.Permission, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.permissions.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find permissions: %w", err)
	}
	defer cursor.Close(ctx)

	found := make(map[string]domain.Permission, len(ids))
	for cursor.Next(ctx) {
		var doc permissionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode permission: %w", err)
		}
		found[doc.ID] = domain.Permission{ID: doc.ID, Name: doc.Name}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find permissions: %w", err)
	}

	perms := make([]domain.Permission, 0, len(ids))
	for _, id := range ids {
		perm, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrPermissionNotFound, id)
		}
		perms = append(perms, perm)
	}
	return perms, nil
}

// Seed installs a default catalog on an empty database so a fresh deployment
// has a working admin role. Existing catalogs are never touched.
func (r *RoleRepository) Seed(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	n, err := r.roles.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seed catalogs: %w", err)
	}
	if n > 0 {
		return nil
	}

	perms := []any{
		permissionDoc{ID: "users.list", Name: "users.list"},
		permissionDoc{ID: "users.view", Name: "users.view"},
		permissionDoc{ID: "users.create", Name: "users.create"},
		permissionDoc{ID: "users.update", Name: "users.update"},
		permissionDoc{ID: "users.delete", Name: "users.delete"},
	}
	roles := []any{
		roleDoc{ID: "admin", Name: "Administrator", PermissionIDs: []string{
			"users.list", "users.view", "users.create", "users.update", "users.delete",
		}},
		roleDoc{ID: "support", Name: "Support", PermissionIDs: []string{
			"users.list", "users.view",
		}},
	}

	if _, err := r.permissions.InsertMany(ctx, perms); err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("seed permissions: %w", err)
	}
	if _, err := r.roles.InsertMany(ctx, roles); err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("seed roles: %w", err)
	}
	return nil
}
