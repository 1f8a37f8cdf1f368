package domain

import (
	"reflect"
	"testing"
)

func TestUser_EffectivePermissionIDs(t *testing.T) {
	catalog := []Role{
		{ID: "admin", PermissionIDs: []string{"users.list", "users.view", "users.create"}},
		{ID: "support", PermissionIDs: []string{"users.list", "users.view"}},
	}

	user := &User{
		RoleIDs:       []string{"support"},
		PermissionIDs: []string{"users.delete", "users.view"},
	}

	got := user.EffectivePermissionIDs(catalog)
	// Direct grants first, then role permissions, duplicates collapsed. The
	// admin role is in the catalog but not assigned, so create is absent.
	want := []string{"users.delete", "users.view", "users.list"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestUser_EffectivePermissionIDs_NoAssignments(t *testing.T) {
	user := &User{}
	if got := user.EffectivePermissionIDs([]Role{{ID: "admin", PermissionIDs: []string{"users.list"}}}); len(got) != 0 {
		t.Fatalf("expected no permissions, got %v", got)
	}
}

func TestUser_HasRole(t *testing.T) {
	user := &User{RoleIDs: []string{"admin", "support"}}
	if !user.HasRole("support") {
		t.Fatalf("expected support to be assigned")
	}
	if user.HasRole("auditor") {
		t.Fatalf("auditor is not assigned")
	}
}

func TestActor_Can(t *testing.T) {
	actor := Actor{Permissions: []string{PermUsersList, PermUsersView}}
	if !actor.Can(PermUsersView) {
		t.Fatalf("expected users.view to be granted")
	}
	if actor.Can(PermUsersDelete) {
		t.Fatalf("users.delete is not granted")
	}
}

func TestValidationError_Message(t *testing.T) {
	verr := &ValidationError{}
	if verr.HasErrors() {
		t.Fatalf("empty error must report no errors")
	}

	verr.Add("name", "is required")
	verr.Add("email", "must be a valid email address")

	if !verr.HasErrors() {
		t.Fatalf("expected errors to be reported")
	}
	want := "validation failed: name: is required; email: must be a valid email address"
	if verr.Error() != want {
		t.Fatalf("unexpected message: %q", verr.Error())
	}
}
