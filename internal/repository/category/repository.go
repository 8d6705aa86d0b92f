package category

import (
	"context"

	"chickpick/internal/domain"
)

type Repository interface {
	ListAll(ctx context.Context) ([]domain.Category, error)
	GetByName(ctx context.Context, name string) (*domain.Category, error)
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}
