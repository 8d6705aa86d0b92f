package order

import (
	"context"
	"errors"
	"io"
	"log"

	"chickpick/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

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

func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	const q = `
INSERT INTO orders (user_id, status, total_cents, shipping_address)
VALUES ($1, 'PENDING', $2, $3)
RETURNING id::text, user_id::text, status, total_cents, shipping_address, created_at
`
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, in.UserID, in.TotalCents, in.ShippingAddress).Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.TotalCents,
		&o.ShippingAddress,
		&o.CreatedAt,
	)
	if err != nil {
		r.logger.Printf("order repo: create user_id=%s error=%v", in.UserID, err)
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s user_id=%s total_cents=%d", o.ID, o.UserID, o.TotalCents)
	return &o, nil
}

func (r *postgresRepo) CreateLines(ctx context.Context, orderID string, lines []domain.OrderLine) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const q = `
INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase_cents)
VALUES ($1, $2, $3, $4)
`
	for _, line := range lines {
		if _, err := tx.Exec(ctx, q, orderID, line.ProductID, line.Quantity, line.PriceAtPurchaseCents); err != nil {
			r.logger.Printf("order repo: insert line order_id=%s product_id=%s error=%v", orderID, line.ProductID, err)
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) Delete(ctx context.Context, orderID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		r.logger.Printf("order repo: delete id=%s error=%v", orderID, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, status, total_cents, shipping_address, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC
`
	return r.list(ctx, q, userID)
}

func (r *postgresRepo) GetForUser(ctx context.Context, orderID, userID string) (*domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, status, total_cents, shipping_address, created_at
FROM orders
WHERE id = $1 AND user_id = $2
`
	var o domain.Order
	err := r.pool.QueryRow(ctx, q, orderID, userID).Scan(
		&o.ID,
		&o.UserID,
		&o.Status,
		&o.TotalCents,
		&o.ShippingAddress,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const linesQuery = `
SELECT i.id::text, i.order_id::text, i.product_id::text, COALESCE(p.name, ''), i.quantity, i.price_at_purchase_cents
FROM order_items i
LEFT JOIN products p ON p.id = i.product_id
WHERE i.order_id = $1
ORDER BY i.id ASC
`
	rows, err := r.pool.Query(ctx, linesQuery, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.ProductName, &line.Quantity, &line.PriceAtPurchaseCents); err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Order, error) {
	const q = `
SELECT id::text, user_id::text, status, total_cents, shipping_address, created_at
FROM orders
ORDER BY created_at DESC
`
	return r.list(ctx, q)
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, orderID, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, orderID, status)
	if err != nil {
		r.logger.Printf("order repo: update status id=%s status=%s error=%v", orderID, status, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Printf("order repo: status id=%s -> %s", orderID, status)
	return nil
}

func (r *postgresRepo) Metrics(ctx context.Context) (int64, int64, error) {
	const q = `
SELECT COUNT(*), COALESCE(SUM(total_cents), 0)
FROM orders
WHERE status <> 'CANCELLED'
`
	var count, revenue int64
	if err := r.pool.QueryRow(ctx, q).Scan(&count, &revenue); err != nil {
		return 0, 0, err
	}
	return count, revenue, nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("order repo: list error=%v", err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalCents, &o.ShippingAddress, &o.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
