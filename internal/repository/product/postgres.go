package product

import (
	"context"
	"errors"
	"io"
	"log"

	"chickpick/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `
p.id::text, p.slug, p.name, COALESCE(p.description, ''), p.price_cents, p.image_urls,
COALESCE(p.swatch_color, ''), p.stock_quantity, p.is_featured, p.category_id::text,
COALESCE(c.name, ''), p.created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
ORDER BY p.created_at DESC
`
	return r.list(ctx, q)
}

func (r *postgresRepo) ListByCategoryName(ctx context.Context, categoryName string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
JOIN categories c ON c.id = p.category_id
WHERE c.name = $1
ORDER BY p.created_at DESC
`
	return r.list(ctx, q, categoryName)
}

func (r *postgresRepo) ListFeatured(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.is_featured
ORDER BY p.created_at DESC
`
	return r.list(ctx, q)
}

func (r *postgresRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.slug = $1
`
	return r.get(ctx, q, slug)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products p
LEFT JOIN categories c ON c.id = p.category_id
WHERE p.id = $1
`
	return r.get(ctx, q, id)
}

func (r *postgresRepo) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (slug, name, description, price_cents, image_urls, swatch_color, stock_quantity, is_featured, category_id)
VALUES ($1, $2, NULLIF($3, ''), $4, COALESCE($5, '[]'::jsonb), NULLIF($6, ''), $7, $8, $9)
RETURNING id::text, created_at
`
	res := p
	err := r.pool.QueryRow(ctx, q,
		p.Slug, p.Name, p.Description, p.PriceCents, p.ImageURLs, p.SwatchColor,
		p.StockQuantity, p.IsFeatured, p.CategoryID,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("product repo: create slug=%s error=%v", p.Slug, err)
		return nil, err
	}
	r.logger.Printf("product repo: created slug=%s id=%s", res.Slug, res.ID)
	return &res, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET slug = $2,
    name = $3,
    description = NULLIF($4, ''),
    price_cents = $5,
    image_urls = COALESCE($6, '[]'::jsonb),
    swatch_color = NULLIF($7, ''),
    stock_quantity = $8,
    is_featured = $9,
    category_id = $10
WHERE id = $1
RETURNING created_at
`
	res := p
	err := r.pool.QueryRow(ctx, q,
		p.ID, p.Slug, p.Name, p.Description, p.PriceCents, p.ImageURLs, p.SwatchColor,
		p.StockQuantity, p.IsFeatured, p.CategoryID,
	).Scan(&res.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: update id=%s error=%v", p.ID, err)
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (slug, name, description, price_cents, image_urls, swatch_color, stock_quantity, is_featured, category_id)
VALUES ($1, $2, NULLIF($3, ''), $4, COALESCE($5, '[]'::jsonb), NULLIF($6, ''), $7, $8, $9)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    image_urls = EXCLUDED.image_urls,
    swatch_color = EXCLUDED.swatch_color,
    stock_quantity = EXCLUDED.stock_quantity,
    is_featured = EXCLUDED.is_featured,
    category_id = EXCLUDED.category_id
RETURNING id::text, created_at
`
	res := p
	err := r.pool.QueryRow(ctx, q,
		p.Slug, p.Name, p.Description, p.PriceCents, p.ImageURLs, p.SwatchColor,
		p.StockQuantity, p.IsFeatured, p.CategoryID,
	).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert slug=%s error=%v", p.Slug, err)
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%s error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) get(ctx context.Context, q string, arg string) (*domain.Product, error) {
	rows, err := r.pool.Query(ctx, q, arg)
	if err != nil {
		r.logger.Printf("product repo: get error=%v", err)
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrNotFound
	}
	p, err := scanProduct(rows)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	var categoryID *string
	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.Description,
		&p.PriceCents,
		&p.ImageURLs,
		&p.SwatchColor,
		&p.StockQuantity,
		&p.IsFeatured,
		&categoryID,
		&p.CategoryName,
		&p.CreatedAt,
	)
	if err != nil {
		return domain.Product{}, err
	}
	p.CategoryID = categoryID
	return p, nil
}
