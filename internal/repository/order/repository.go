package order

import (
	"context"

	"chickpick/internal/domain"
)

type CreateOrderInput struct {
	UserID          string
	TotalCents      int64
	ShippingAddress string
}

type Repository interface {
	Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error)
	CreateLines(ctx context.Context, orderID string, lines []domain.OrderLine) error
	// Delete removes the order and, via cascade, any lines written so far.
	// Used to compensate a failed placement.
	Delete(ctx context.Context, orderID string) error
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	GetForUser(ctx context.Context, orderID, userID string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
	Metrics(ctx context.Context) (orderCount int64, revenueCents int64, err error)
}
