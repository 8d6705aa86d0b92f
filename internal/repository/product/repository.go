package product

import (
	"context"

	"chickpick/internal/domain"
)

type Repository interface {
	ListAll(ctx context.Context) ([]domain.Product, error)
	ListByCategoryName(ctx context.Context, categoryName string) ([]domain.Product, error)
	ListFeatured(ctx context.Context) ([]domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	// Upsert inserts by slug, replacing the writable fields when the slug
	// is already taken. Used by bulk imports.
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
