// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/avbelov/taskboard/internal/model"
	"github.com/gofrs/uuid/v5"
)

// UserRepository provides account storage for registration and login.
type UserRepository interface {
	// Create inserts a new user; a duplicate username or email yields errs.ErrAlreadyExists.
	Create(ctx context.Context, u *model.User) error
	// GetByID loads a user by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetByEmail loads a user by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}
