package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"

	"chickpick/internal/cache"
	"chickpick/internal/domain"
)

// Store is the single source of truth for one session's cart. Mutations go
// through the methods below; every mutation writes the full line list to
// the stash and publishes the new state on the updates channel. The stash
// is a convenience copy only — in-memory state stays authoritative even
// when a write fails.
type Store struct {
	mu      sync.Mutex
	key     string
	stash   cache.Stash
	logger  *log.Logger
	lines   []Line
	isOpen  bool
	updates chan State
}

// NewStore builds a store for the given stash key and rehydrates any
// previously persisted line list. Missing or malformed payloads yield an
// empty cart, never an error.
func NewStore(ctx context.Context, key string, stash cache.Stash, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{
		key:     key,
		stash:   stash,
		logger:  logger,
		updates: make(chan State, 1),
	}
	s.rehydrate(ctx)
	return s
}

func (s *Store) rehydrate(ctx context.Context) {
	if s.stash == nil {
		return
	}
	data, err := s.stash.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			s.logger.Printf("cart store: rehydrate key=%s error=%v", s.key, err)
		}
		return
	}
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		s.logger.Printf("cart store: rehydrate key=%s malformed snapshot, starting empty", s.key)
		return
	}
	// Drop anything a buggy snapshot could contain; a line never carries
	// quantity <= 0.
	for _, l := range lines {
		if l.ProductID == "" || l.Quantity <= 0 {
			continue
		}
		s.lines = append(s.lines, l)
	}
}

// Add merges the product into the cart. An existing line grows by qty,
// clamped to its stock ceiling; otherwise a new line is appended with
// quantity min(qty, stock). A product with zero stock is a silent no-op.
func (s *Store) Add(ctx context.Context, p domain.Product, qty int) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != p.ID {
			continue
		}
		next := s.lines[i].Quantity + qty
		if next > s.lines[i].StockQuantity {
			next = s.lines[i].StockQuantity
		}
		s.lines[i].Quantity = next
		s.afterMutateLocked(ctx)
		return
	}

	if p.StockQuantity <= 0 {
		return
	}
	if qty > p.StockQuantity {
		qty = p.StockQuantity
	}
	s.lines = append(s.lines, Line{
		ProductID:      p.ID,
		Name:           p.Name,
		UnitPriceCents: p.PriceCents,
		SwatchColor:    p.SwatchColor,
		StockQuantity:  p.StockQuantity,
		Quantity:       qty,
	})
	s.afterMutateLocked(ctx)
}

// Remove deletes the line entirely. No-op if the product is not in the cart.
func (s *Store) Remove(ctx context.Context, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.afterMutateLocked(ctx)
			return
		}
	}
}

// SetQuantity sets the line's quantity clamped to [1, stock]. A quantity of
// zero or less removes the line. No-op if the product is not in the cart.
func (s *Store) SetQuantity(ctx context.Context, productID string, qty int) {
	if qty <= 0 {
		s.Remove(ctx, productID)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		if qty > s.lines[i].StockQuantity {
			qty = s.lines[i].StockQuantity
		}
		if qty < 1 {
			qty = 1
		}
		s.lines[i].Quantity = qty
		s.afterMutateLocked(ctx)
		return
	}
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.afterMutateLocked(ctx)
}

// ToggleOpen flips the drawer visibility flag. Not persisted.
func (s *Store) ToggleOpen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = !s.isOpen
	s.notifyLocked()
}

// SetOpen sets the drawer visibility flag. Not persisted.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isOpen == open {
		return
	}
	s.isOpen = open
	s.notifyLocked()
}

// State returns a copy of the current cart state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Updates returns a channel carrying the state after each change. The
// channel is conflated: a slow reader sees only the latest state.
func (s *Store) Updates() <-chan State {
	return s.updates
}

func (s *Store) afterMutateLocked(ctx context.Context) {
	s.persistLocked(ctx)
	s.notifyLocked()
}

func (s *Store) persistLocked(ctx context.Context) {
	if s.stash == nil {
		return
	}
	lines := s.lines
	if lines == nil {
		lines = []Line{}
	}
	data, err := json.Marshal(lines)
	if err != nil {
		s.logger.Printf("cart store: marshal key=%s error=%v", s.key, err)
		return
	}
	if err := s.stash.Set(ctx, s.key, data); err != nil {
		s.logger.Printf("cart store: persist key=%s error=%v", s.key, err)
	}
}

func (s *Store) notifyLocked() {
	st := s.snapshotLocked()
	for {
		select {
		case s.updates <- st:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}

func (s *Store) snapshotLocked() State {
	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return State{Lines: lines, IsOpen: s.isOpen}
}
