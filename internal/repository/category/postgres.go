package category

import (
	"context"
	"errors"

	"chickpick/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT id::text, name, created_at
FROM categories
ORDER BY name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	const q = `
SELECT id::text, name, created_at
FROM categories
WHERE name = $1
`
	var c domain.Category
	if err := r.pool.QueryRow(ctx, q, name).Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text, name, created_at
`
	var res domain.Category
	if err := r.pool.QueryRow(ctx, q, c.Name).Scan(&res.ID, &res.Name, &res.CreatedAt); err != nil {
		return nil, err
	}
	return &res, nil
}
