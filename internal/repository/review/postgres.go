package review

import (
	"context"

	"chickpick/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in domain.Review) (*domain.Review, error) {
	const q = `
INSERT INTO reviews (product_id, user_id, rating, comment)
VALUES ($1, $2, $3, NULLIF($4, ''))
RETURNING id::text, created_at
`
	res := in
	err := r.pool.QueryRow(ctx, q, in.ProductID, in.UserID, in.Rating, in.Comment).Scan(&res.ID, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) ListByProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	const q = `
SELECT r.id::text, r.product_id::text, r.user_id::text, COALESCE(p.display_name, p.email, ''), r.rating, COALESCE(r.comment, ''), r.created_at
FROM reviews r
LEFT JOIN profiles p ON p.id = r.user_id
WHERE r.product_id = $1
ORDER BY r.created_at DESC
`
	rows, err := r.pool.Query(ctx, q, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(&rev.ID, &rev.ProductID, &rev.UserID, &rev.AuthorName, &rev.Rating, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
