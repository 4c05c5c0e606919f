package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bondifuzz/api-gateway/internal/auth"
	"github.com/bondifuzz/api-gateway/internal/domain/user"
	"github.com/bondifuzz/api-gateway/internal/store/mongostore"
)

// SeedRootUser ensures the configured root account exists, the same
// "bootstrap credentials" the configuration surface names. It runs once at
// startup, outside the command.UseCase's normal actor-privilege checks,
// since there is no existing admin yet to act as the creator.
func SeedRootUser(ctx context.Context, users *mongostore.UserRepository, cfg *Config) error {
	if cfg.RootPassword == "" {
		return nil
	}

	_, err := users.GetByName(ctx, cfg.RootUsername)
	if err == nil {
		return nil
	}

	if !errors.Is(err, mongostore.ErrNotFound) {
		return fmt.Errorf("bootstrap: seed root user: %w", err)
	}

	hash, err := auth.HashPassword(cfg.RootPassword)
	if err != nil {
		return fmt.Errorf("bootstrap: hash root password: %w", err)
	}

	root := &user.User{
		ID:           uuid.NewString(),
		Name:         cfg.RootUsername,
		DisplayName:  "Administrator",
		PasswordHash: hash,
		Email:        cfg.RootEmail,
		IsConfirmed:  true,
		IsAdmin:      true,
		IsSystem:     true,
	}

	if err := users.Create(ctx, root); err != nil {
		return fmt.Errorf("bootstrap: create root user: %w", err)
	}

	return nil
}
