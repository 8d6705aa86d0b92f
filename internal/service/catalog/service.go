package catalog

import (
	"context"
	"errors"
	"strings"

	"chickpick/internal/domain"
	categoryrepo "chickpick/internal/repository/category"
	productrepo "chickpick/internal/repository/product"
)

// Service exposes catalog reads for the storefront and product management
// for the admin console.
type Service struct {
	products   productrepo.Repository
	categories categoryrepo.Repository
}

func New(products productrepo.Repository, categories categoryrepo.Repository) *Service {
	return &Service{products: products, categories: categories}
}

// ListProducts returns the catalog, optionally filtered by category name.
func (s *Service) ListProducts(ctx context.Context, categoryName string) ([]domain.Product, error) {
	if strings.TrimSpace(categoryName) != "" {
		return s.products.ListByCategoryName(ctx, categoryName)
	}
	return s.products.ListAll(ctx)
}

func (s *Service) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListFeatured(ctx)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return s.products.GetBySlug(ctx, slug)
}

func (s *Service) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.categories.ListAll(ctx)
}

// ProductInput carries the writable product fields for admin create/update.
type ProductInput struct {
	Slug          string   `json:"slug"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	PriceCents    int64    `json:"priceCents"`
	ImageURLs     []string `json:"imageUrls"`
	SwatchColor   string   `json:"swatchColor"`
	StockQuantity int      `json:"stockQuantity"`
	IsFeatured    bool     `json:"isFeatured"`
	CategoryName  string   `json:"categoryName"`
}

// CreateProduct validates and inserts a new catalog entry.
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	p, err := s.productFromInput(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.products.Create(ctx, *p)
}

// UpdateProduct replaces the writable fields of an existing product.
func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	p, err := s.productFromInput(ctx, in)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return s.products.Update(ctx, *p)
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

func (s *Service) productFromInput(ctx context.Context, in ProductInput) (*domain.Product, error) {
	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		return nil, errors.New("slug required")
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, errors.New("name required")
	}
	if in.PriceCents < 0 {
		return nil, errors.New("price must not be negative")
	}
	if in.StockQuantity < 0 {
		return nil, errors.New("stock must not be negative")
	}

	p := domain.Product{
		Slug:          slug,
		Name:          name,
		Description:   strings.TrimSpace(in.Description),
		PriceCents:    in.PriceCents,
		ImageURLs:     in.ImageURLs,
		SwatchColor:   strings.TrimSpace(in.SwatchColor),
		StockQuantity: in.StockQuantity,
		IsFeatured:    in.IsFeatured,
	}
	if categoryName := strings.TrimSpace(in.CategoryName); categoryName != "" {
		cat, err := s.categories.GetByName(ctx, categoryName)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, errors.New("unknown category")
			}
			return nil, err
		}
		p.CategoryID = &cat.ID
		p.CategoryName = cat.Name
	}
	return &p, nil
}
