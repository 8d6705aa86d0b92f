package review

import (
	"context"
	"errors"
	"strings"

	"chickpick/internal/domain"
	reviewrepo "chickpick/internal/repository/review"
)

// ErrInvalidRating is returned when a rating falls outside 1..5.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

type Service struct {
	repo reviewrepo.Repository
}

func New(repo reviewrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Create records a review for a product.
func (s *Service) Create(ctx context.Context, productID, userID string, rating int, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}
	return s.repo.Create(ctx, domain.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
	})
}

// Summary bundles a product's reviews with their average rating.
type Summary struct {
	Reviews       []domain.Review `json:"reviews"`
	AverageRating float64         `json:"averageRating"`
}

// ListByProduct returns all reviews for the product, newest first.
func (s *Service) ListByProduct(ctx context.Context, productID string) (*Summary, error) {
	reviews, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := &Summary{Reviews: reviews}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		out.AverageRating = float64(sum) / float64(len(reviews))
	}
	return out, nil
}
