package order

import (
	"context"
	"errors"
	"strings"

	"chickpick/internal/domain"
	orderrepo "chickpick/internal/repository/order"
)

// ErrInvalidStatus is returned when a status is not one of the fixed set.
var ErrInvalidStatus = errors.New("invalid order status")

// Service exposes order tracking for customers and order management for
// the admin console.
type Service struct {
	repo orderrepo.Repository
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Get returns the order with its lines, scoped to the requesting user.
func (s *Service) Get(ctx context.Context, orderID, userID string) (*domain.Order, error) {
	return s.repo.GetForUser(ctx, orderID, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Order, error) {
	return s.repo.ListAll(ctx)
}

// UpdateStatus moves an order to a new status from the fixed set.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) error {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !domain.ValidOrderStatus(status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, orderID, status)
}

// Metrics summarizes non-cancelled order volume for the admin dashboard.
func (s *Service) Metrics(ctx context.Context) (orderCount int64, revenueCents int64, err error) {
	return s.repo.Metrics(ctx)
}
