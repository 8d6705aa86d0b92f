package domain

import "time"

type Product struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	PriceCents    int64     `json:"priceCents"`
	ImageURLs     []string  `json:"imageUrls,omitempty"`
	SwatchColor   string    `json:"swatchColor,omitempty"`
	StockQuantity int       `json:"stockQuantity"`
	IsFeatured    bool      `json:"isFeatured"`
	CategoryID    *string   `json:"categoryId,omitempty"`
	CategoryName  string    `json:"categoryName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}
