// Package model holds the user entity and the store contracts shared by
// every backend.
package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. PasswordHash is the bcrypt
// output and must never reach a client response.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserStore defines persistence operations for users. Implementations
// assign the ID on Create and enforce email uniqueness at insert time.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
}
