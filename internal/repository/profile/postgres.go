package profile

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

func (r *postgresRepo) Create(ctx context.Context, p domain.Profile) (*domain.Profile, error) {
	const q = `
INSERT INTO profiles (email, display_name, role, password_hash)
VALUES ($1, NULLIF($2, ''), COALESCE(NULLIF($3, ''), 'customer'), $4)
RETURNING id::text, role, created_at
`
	res := p
	err := r.pool.QueryRow(ctx, q, p.Email, p.DisplayName, p.Role, p.PasswordHash).Scan(&res.ID, &res.Role, &res.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("profile repo: create email=%s error=%v", p.Email, err)
		return nil, err
	}
	return &res, nil
}

func (r *postgresRepo) Ensure(ctx context.Context, id, email, displayName string) error {
	const q = `
INSERT INTO profiles (id, email, display_name)
VALUES ($1, $2, NULLIF($3, ''))
ON CONFLICT (id) DO NOTHING
`
	if _, err := r.pool.Exec(ctx, q, id, email, displayName); err != nil {
		r.logger.Printf("profile repo: ensure id=%s error=%v", id, err)
		return err
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	const q = `
SELECT id::text, email, COALESCE(display_name, ''), role, COALESCE(password_hash, ''), created_at
FROM profiles
WHERE id = $1
`
	return r.get(ctx, q, id)
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	const q = `
SELECT id::text, email, COALESCE(display_name, ''), role, COALESCE(password_hash, ''), created_at
FROM profiles
WHERE email = $1
`
	return r.get(ctx, q, email)
}

func (r *postgresRepo) ListAll(ctx context.Context) ([]domain.Profile, error) {
	const q = `
SELECT id::text, email, COALESCE(display_name, ''), role, '', created_at
FROM profiles
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.Email, &p.DisplayName, &p.Role, &p.PasswordHash, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *postgresRepo) get(ctx context.Context, q, arg string) (*domain.Profile, error) {
	var p domain.Profile
	err := r.pool.QueryRow(ctx, q, arg).Scan(&p.ID, &p.Email, &p.DisplayName, &p.Role, &p.PasswordHash, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}
