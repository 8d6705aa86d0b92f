package profile

import (
	"context"

	"chickpick/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p domain.Profile) (*domain.Profile, error)
	// Ensure creates the profile if it does not exist yet; it never
	// overwrites an existing row.
	Ensure(ctx context.Context, id, email, displayName string) error
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	ListAll(ctx context.Context) ([]domain.Profile, error)
	Count(ctx context.Context) (int64, error)
}
