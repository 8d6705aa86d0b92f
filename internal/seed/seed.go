package seed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type productSeed struct {
	Slug        string
	Name        string
	Description string
	PriceCents  int64
	ImageURL    string
	SwatchColor string
	Stock       int
	Featured    bool
	Category    string
}

var categories = []string{"Matte", "Glossy", "Liquid Lipstick", "Lip Liner"}

var products = []productSeed{
	{
		Slug:        "dreamer-matte-lipstick",
		Name:        "Dreamer Matte Lipstick",
		Description: "A long-lasting matte finish that feels as light as a cloud.",
		PriceCents:  1850,
		ImageURL:    "https://placehold.co/600x600/FF69B4/FFFFFF?text=Dreamer+Matte",
		SwatchColor: "#FF69B4",
		Stock:       150,
		Featured:    true,
		Category:    "Matte",
	},
	{
		Slug:        "sparkle-glossy-lipstick",
		Name:        "Sparkle Glossy Lipstick",
		Description: "High-shine, non-sticky formula that keeps your lips looking plump and hydrated.",
		PriceCents:  2200,
		ImageURL:    "https://placehold.co/600x600/FFD700/000000?text=Sparkle+Gloss",
		SwatchColor: "#FFD700",
		Stock:       100,
		Featured:    true,
		Category:    "Glossy",
	},
	{
		Slug:        "rebel-red-liquid",
		Name:        "Rebel Red Liquid",
		Description: "A bold, vibrant liquid lipstick with intense pigment and all-day wear.",
		PriceCents:  2500,
		ImageURL:    "https://placehold.co/600x600/DC143C/FFFFFF?text=Rebel+Red",
		SwatchColor: "#DC143C",
		Stock:       80,
		Featured:    true,
		Category:    "Liquid Lipstick",
	},
	{
		Slug:        "perfect-pink-lip-liner",
		Name:        "Perfect Pink Lip Liner",
		Description: "Creamy, waterproof lip liner for a precise and flawless outline.",
		PriceCents:  1200,
		ImageURL:    "https://placehold.co/600x600/FFB6C1/000000?text=Pink+Liner",
		SwatchColor: "#FFB6C1",
		Stock:       200,
		Category:    "Lip Liner",
	},
	{
		Slug:        "neon-pop-gloss",
		Name:        "Neon Pop Gloss",
		Description: "An electrifying, glossy lipstick that will make your lips pop. Perfect for a night out.",
		PriceCents:  2000,
		ImageURL:    "https://placehold.co/600x600/00FFFF/000000?text=Neon+Pop+Gloss",
		SwatchColor: "#00FFFF",
		Stock:       120,
		Featured:    true,
		Category:    "Glossy",
	},
	{
		Slug:        "vixen-matte",
		Name:        "Vixen Matte",
		Description: "A deep, rich purple matte that gives off a confident and edgy vibe.",
		PriceCents:  1950,
		ImageURL:    "https://placehold.co/600x600/800080/FFFFFF?text=Vixen+Matte",
		SwatchColor: "#800080",
		Stock:       95,
		Category:    "Matte",
	},
	{
		Slug:        "bubblegum-liquid",
		Name:        "Bubblegum Liquid",
		Description: "A fun, playful pink liquid lipstick that's perfect for everyday wear.",
		PriceCents:  2300,
		ImageURL:    "https://placehold.co/600x600/FFC0CB/000000?text=Bubblegum+Liquid",
		SwatchColor: "#FFC0CB",
		Stock:       110,
		Category:    "Liquid Lipstick",
	},
	{
		Slug:        "jetsetter-liner",
		Name:        "Jetsetter Liner",
		Description: "A deep brown lip liner for a bold, defined look.",
		PriceCents:  1350,
		ImageURL:    "https://placehold.co/600x600/5C4033/FFFFFF?text=Jetsetter+Liner",
		SwatchColor: "#5C4033",
		Stock:       180,
		Category:    "Lip Liner",
	},
	{
		Slug:        "sunshine-gloss",
		Name:        "Sunshine Gloss",
		Description: "A sheer, shimmering gloss that adds a touch of brightness to any lipstick.",
		PriceCents:  1500,
		ImageURL:    "https://placehold.co/600x600/F4D03F/000000?text=Sunshine+Gloss",
		SwatchColor: "#F4D03F",
		Stock:       250,
		Featured:    true,
		Category:    "Glossy",
	},
	{
		Slug:        "midnight-matte",
		Name:        "Midnight Matte",
		Description: "A classic, dark matte lipstick for a sophisticated and dramatic look.",
		PriceCents:  2100,
		ImageURL:    "https://placehold.co/600x600/000000/FFFFFF?text=Midnight+Matte",
		SwatchColor: "#000000",
		Stock:       75,
		Category:    "Matte",
	},
}

// Apply inserts the starter catalog plus an admin account for the console.
// It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	categoryIDs := make(map[string]string, len(categories))
	for _, name := range categories {
		id, err := ensureCategory(ctx, pool, name)
		if err != nil {
			return fmt.Errorf("ensure category %s: %w", name, err)
		}
		categoryIDs[name] = id
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, categoryIDs[p.Category], p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Slug, err)
		}
	}

	if err := ensureAdmin(ctx, pool, "admin@chickpick.test", "Admin1234"); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	return nil
}

func ensureCategory(ctx context.Context, pool *pgxpool.Pool, name string) (string, error) {
	const q = `
INSERT INTO categories (name)
VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, categoryID string, p productSeed) error {
	images, err := json.Marshal([]string{p.ImageURL})
	if err != nil {
		return err
	}
	const q = `
INSERT INTO products (slug, name, description, price_cents, image_urls, swatch_color, stock_quantity, is_featured, category_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (slug) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    image_urls = EXCLUDED.image_urls,
    swatch_color = EXCLUDED.swatch_color,
    stock_quantity = EXCLUDED.stock_quantity,
    is_featured = EXCLUDED.is_featured,
    category_id = EXCLUDED.category_id
`
	_, err = pool.Exec(ctx, q, p.Slug, p.Name, p.Description, p.PriceCents, images, p.SwatchColor, p.Stock, p.Featured, categoryID)
	return err
}

func ensureAdmin(ctx context.Context, pool *pgxpool.Pool, email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO profiles (email, display_name, role, password_hash)
VALUES ($1, 'Store Admin', 'admin', $2)
ON CONFLICT (email) DO NOTHING
`
	_, err = pool.Exec(ctx, q, email, string(hashed))
	return err
}
