package auth

import (
	"context"
	"errors"
	"testing"

	"payroll-backend/internal/database"
	"payroll-backend/internal/models"
	"payroll-backend/internal/testutil"

	"golang.org/x/crypto/bcrypt"
)

func TestUserStore(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(testutil.OpenDB(t))

	u := models.User{Username: "alice", PasswordHash: "hash", Role: models.RoleEmployee}
	if err := store.Create(ctx, &u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("id not assigned")
	}

	dup := models.User{Username: "alice", PasswordHash: "hash", Role: models.RoleAdmin}
	if err := store.Create(ctx, &dup); !errors.Is(err, database.ErrDuplicateKey) {
		t.Errorf("duplicate create err = %v", err)
	}

	got, err := store.FindByUsername(ctx, "alice")
	if err != nil || got.ID != u.ID {
		t.Errorf("find by username = %+v, %v", got, err)
	}
	if _, err := store.FindByID(ctx, 999); !database.IsNotFound(err) {
		t.Errorf("missing id err = %v", err)
	}

	n, err := store.CountByRole(ctx, models.RoleAdmin)
	if err != nil || n != 0 {
		t.Errorf("admin count = %d, %v", n, err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore(testutil.OpenDB(t))

	if err := EnsureAdmin(ctx, store, "admin", "s3cret"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	admin, err := store.FindByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("bootstrap admin missing: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Errorf("role = %q", admin.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret")) != nil {
		t.Error("bootstrap password does not match")
	}

	// second run is a no-op even with different credentials
	if err := EnsureAdmin(ctx, store, "other", "x"); err != nil {
		t.Fatalf("second bootstrap: %v", err)
	}
	if _, err := store.FindByUsername(ctx, "other"); !database.IsNotFound(err) {
		t.Errorf("second admin created: %v", err)
	}
}

func TestEnsureAdminRequiresCredentials(t *testing.T) {
	store := NewUserStore(testutil.OpenDB(t))
	if err := EnsureAdmin(context.Background(), store, "", ""); err == nil {
		t.Error("expected error without credentials")
	}
}
