package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"payroll-backend/internal/database"
	"payroll-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin creates the first admin account when the users table holds
// none, so a fresh deployment can log in and register everyone else.
func EnsureAdmin(ctx context.Context, users UserStore, username, password string) error {
	n, err := users.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if n > 0 {
		return nil
	}
	if username == "" || password == "" {
		return errors.New("no admin user exists and ADMIN_USERNAME/ADMIN_PASSWORD are empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{Username: username, PasswordHash: string(hash), Role: models.RoleAdmin}
	if err := users.Create(ctx, &admin); err != nil {
		if errors.Is(err, database.ErrDuplicateKey) {
			return fmt.Errorf("bootstrap admin %q: username taken by a non-admin user", username)
		}
		return fmt.Errorf("create admin: %w", err)
	}

	slog.Info("bootstrap admin created", "username", username)
	return nil
}
