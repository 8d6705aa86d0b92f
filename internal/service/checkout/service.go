package checkout

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"chickpick/internal/cart"
	"chickpick/internal/domain"
	orderrepo "chickpick/internal/repository/order"
)

var (
	// ErrNotAuthenticated means no identity could be resolved; the caller
	// should send the user to login rather than show an inline error.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrEmptyCart means there is nothing to place an order for.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidShipping wraps shipping address validation failures.
	ErrInvalidShipping = errors.New("invalid shipping info")
)

type identitySvc interface {
	Current(ctx context.Context, token string) (*domain.Profile, error)
	EnsureProfile(ctx context.Context, id, email, displayName string) error
}

type orderWriter interface {
	Create(ctx context.Context, in orderrepo.CreateOrderInput) (*domain.Order, error)
	CreateLines(ctx context.Context, orderID string, lines []domain.OrderLine) error
	Delete(ctx context.Context, orderID string) error
}

// CartStore is the slice of the cart the checkout needs: a snapshot to
// price and persist, and a clear once the order is safely placed.
type CartStore interface {
	State() cart.State
	Clear(ctx context.Context)
}

// Service drives the checkout flow: it prices the cart and performs the one
// state-changing transaction of the system, converting a cart into a
// persisted order.
type Service struct {
	identity identitySvc
	orders   orderWriter
	logger   *log.Logger
}

func New(identity identitySvc, orders orderWriter, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{identity: identity, orders: orders, logger: logger}
}

// ShippingInfo is the address block collected in the wizard's first step.
type ShippingInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// Format renders the address as the multi-line string stored on the order.
func (s ShippingInfo) Format() string {
	return fmt.Sprintf("%s %s\n%s\n%s, %s %s\n%s",
		s.FirstName, s.LastName, s.Address, s.City, s.State, s.ZipCode, s.Country)
}

// Validate checks the fields needed to ship anything at all.
func (s ShippingInfo) Validate() error {
	if strings.TrimSpace(s.Address) == "" {
		return fmt.Errorf("%w: address required", ErrInvalidShipping)
	}
	if strings.TrimSpace(s.City) == "" {
		return fmt.Errorf("%w: city required", ErrInvalidShipping)
	}
	return nil
}

// PlaceOrder converts the cart into a persisted order.
//
// The sequence is ensure-profile, insert order, insert line snapshots.
// Each line copies the cart line's current unit price into the snapshot;
// that price is never recomputed from the catalog. If the line insert
// fails, the just-created order is deleted so no orphaned order survives,
// and the cart is left intact for a retry. The cart is cleared only after
// every step succeeded.
func (s *Service) PlaceOrder(ctx context.Context, token string, store CartStore, shipping ShippingInfo, promoCode string) (*domain.Order, error) {
	user, err := s.identity.Current(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotAuthenticated
	}

	state := store.State()
	if len(state.Lines) == 0 {
		return nil, ErrEmptyCart
	}
	if err := shipping.Validate(); err != nil {
		return nil, err
	}

	if err := s.identity.EnsureProfile(ctx, user.ID, user.Email, user.DisplayName); err != nil {
		return nil, fmt.Errorf("ensure profile: %w", err)
	}

	quote := Price(state.SubtotalCents(), promoCode)
	order, err := s.orders.Create(ctx, orderrepo.CreateOrderInput{
		UserID:          user.ID,
		TotalCents:      quote.TotalCents,
		ShippingAddress: shipping.Format(),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	lines := make([]domain.OrderLine, 0, len(state.Lines))
	for _, l := range state.Lines {
		lines = append(lines, domain.OrderLine{
			ProductID:            l.ProductID,
			Quantity:             l.Quantity,
			PriceAtPurchaseCents: l.UnitPriceCents,
		})
	}
	if err := s.orders.CreateLines(ctx, order.ID, lines); err != nil {
		s.logger.Printf("checkout: line insert failed for order %s, compensating: %v", order.ID, err)
		if delErr := s.orders.Delete(ctx, order.ID); delErr != nil {
			s.logger.Printf("checkout: CRITICAL failed to compensate order %s: %v", order.ID, delErr)
		}
		return nil, fmt.Errorf("create order lines: %w", err)
	}

	store.Clear(ctx)
	s.logger.Printf("checkout: placed order %s user=%s total_cents=%d lines=%d", order.ID, user.ID, quote.TotalCents, len(lines))
	return order, nil
}
