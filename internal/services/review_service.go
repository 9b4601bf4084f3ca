// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vendora/vendora-backend/internal/apperr"
	"github.com/vendora/vendora-backend/internal/models"
	"github.com/vendora/vendora-backend/internal/store"
	"github.com/vendora/vendora-backend/internal/utils"
)

// ReviewService enforces buyer-only reviews, one per (product, reviewer),
// last write wins.
type ReviewService struct {
	store store.Store
}

type AddReviewRequest struct {
	Rating int    `json:"rating"`
	Body   string `json:"body" validate:"max=10000"`
}

func NewReviewService(store store.Store) *ReviewService {
	return &ReviewService{store: store}
}

// AddReview creates or overwrites the caller's review of a product they
// purchased. The purchase requirement is checked before the rating bounds.
func (s *ReviewService) AddReview(reviewerID uuid.UUID, productID uint64, req *AddReviewRequest) (*models.Review, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var review *models.Review
	err := s.store.Atomic(func(tx store.Store) error {
		if _, err := tx.FindPurchase(reviewerID, productID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return apperr.NotAuthorized("reviews require a purchase of the product")
			}
			return fmt.Errorf("checking purchase: %w", err)
		}

		if req.Rating < 1 || req.Rating > 5 {
			return apperr.InvalidPrice("rating must be between 1 and 5")
		}

		existing, err := tx.FindReviewForUpdate(productID, reviewerID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			review = &models.Review{
				ProductID:  productID,
				ReviewerID: reviewerID,
				Rating:     req.Rating,
				Body:       req.Body,
			}
			if err := tx.CreateReview(review); err != nil {
				return fmt.Errorf("creating review: %w", err)
			}
		case err != nil:
			return fmt.Errorf("loading review: %w", err)
		default:
			existing.Rating = req.Rating
			existing.Body = req.Body
			if err := tx.SaveReview(existing); err != nil {
				return fmt.Errorf("updating review: %w", err)
			}
			review = existing
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) GetReview(productID uint64, reviewerID uuid.UUID) (*models.Review, error) {
	review, err := s.store.FindReview(productID, reviewerID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apperr.NotFound("review not found")
	}
	if err != nil {
		return nil, fmt.Errorf("loading review: %w", err)
	}
	return review, nil
}

// ListReviews pages through a product's reviews, most recently written
// first.
func (s *ReviewService) ListReviews(productID uint64, params utils.PaginationParams) ([]models.Review, int64, error) {
	if _, err := s.store.GetProduct(productID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, 0, apperr.NotFound("product not found")
		}
		return nil, 0, fmt.Errorf("loading product: %w", err)
	}

	reviews, total, err := s.store.ListReviews(productID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("listing reviews: %w", err)
	}
	return reviews, total, nil
}
