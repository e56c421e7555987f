package identity

import (
	"context"

	"github.com/google/uuid"
)

// ClinicRepository stores clinic (tenant) records
type ClinicRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Clinic, error)
	FindBySlug(ctx context.Context, slug string) (*Clinic, error)
	Save(ctx context.Context, clinic *Clinic) error
}

// UserRepository stores login accounts. Email lookup is global because the
// login form carries no clinic context.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
}
