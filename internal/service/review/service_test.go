package review

import (
	"context"
	"errors"
	"testing"

	"chickpick/internal/domain"
)

type stubReviewRepo struct {
	created *domain.Review
	reviews []domain.Review
	err     error
}

func (s *stubReviewRepo) Create(_ context.Context, r domain.Review) (*domain.Review, error) {
	if s.err != nil {
		return nil, s.err
	}
	r.ID = "r1"
	s.created = &r
	return &r, nil
}

func (s *stubReviewRepo) ListByProduct(_ context.Context, _ string) ([]domain.Review, error) {
	return s.reviews, s.err
}

func TestCreateRejectsOutOfRangeRating(t *testing.T) {
	svc := New(&stubReviewRepo{})
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6, 100} {
		if _, err := svc.Create(ctx, "p1", "u1", rating, "nope"); !errors.Is(err, ErrInvalidRating) {
			t.Fatalf("rating %d: expected ErrInvalidRating, got %v", rating, err)
		}
	}
}

func TestCreateTrimsComment(t *testing.T) {
	repo := &stubReviewRepo{}
	svc := New(repo)

	r, err := svc.Create(context.Background(), "p1", "u1", 5, "  lovely shade  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.Comment != "lovely shade" {
		t.Fatalf("expected trimmed comment, got %q", r.Comment)
	}
	if repo.created.ProductID != "p1" || repo.created.UserID != "u1" || repo.created.Rating != 5 {
		t.Fatalf("unexpected persisted review %+v", repo.created)
	}
}

func TestListByProductAverages(t *testing.T) {
	repo := &stubReviewRepo{reviews: []domain.Review{
		{ID: "r1", Rating: 5},
		{ID: "r2", Rating: 4},
		{ID: "r3", Rating: 3},
	}}
	svc := New(repo)

	summary, err := svc.ListByProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if summary.AverageRating != 4 {
		t.Fatalf("expected average 4, got %v", summary.AverageRating)
	}
	if len(summary.Reviews) != 3 {
		t.Fatalf("expected 3 reviews, got %d", len(summary.Reviews))
	}
}

func TestListByProductEmpty(t *testing.T) {
	svc := New(&stubReviewRepo{})

	summary, err := svc.ListByProduct(context.Background(), "p1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if summary.AverageRating != 0 {
		t.Fatalf("expected zero average for no reviews, got %v", summary.AverageRating)
	}
}
