package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "gharbazaar/internal/errors"
	"gharbazaar/internal/model"
	"gharbazaar/internal/repository"
)

// ListingReviews is the public review set for one listing.
type ListingReviews struct {
	Reviews       []model.Review `json:"reviews"`
	AverageRating float64        `json:"average_rating"`
	Total         int64          `json:"total"`
}

// ReviewService handles listing reviews with upsert semantics.
type ReviewService interface {
	ListForListing(ctx context.Context, listingID uint) (*ListingReviews, error)
	// Upsert inserts the caller's review of a listing or updates the
	// existing one. The returned flag is true when a new row was created.
	Upsert(ctx context.Context, userID, listingID uint, rating int, reviewText string) (*model.Review, bool, error)
	GetUserReview(ctx context.Context, userID, listingID uint) (*model.Review, error)
	Delete(ctx context.Context, userID, listingID uint) error
}

type reviewService struct {
	reviews  repository.ReviewRepository
	listings repository.ListingRepository
	tx       repository.Transactor
}

// NewReviewService creates a new review service.
func NewReviewService(reviews repository.ReviewRepository, listings repository.ListingRepository, tx repository.Transactor) ReviewService {
	return &reviewService{reviews: reviews, listings: listings, tx: tx}
}

// ListForListing returns a listing's reviews with the average rating.
func (s *reviewService) ListForListing(ctx context.Context, listingID uint) (*ListingReviews, error) {
	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}

	reviews, err := s.reviews.ListByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	average, total, err := s.reviews.AverageForListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	return &ListingReviews{Reviews: reviews, AverageRating: average, Total: total}, nil
}

// Upsert enforces one review per (user, listing). The existence check and the
// write run inside one transaction so two concurrent submissions cannot
// double-insert; the unique index backs this up at the database level.
func (s *reviewService) Upsert(ctx context.Context, userID, listingID uint, rating int, reviewText string) (*model.Review, bool, error) {
	if rating < 1 || rating > 5 {
		return nil, false, apperrors.ErrInvalidRating
	}

	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperrors.ErrListingNotFound
		}
		return nil, false, fmt.Errorf("find listing: %w", err)
	}
	if listing.UserID == userID {
		return nil, false, apperrors.ErrOwnListingReview
	}

	var review *model.Review
	var created bool
	err = s.tx.WithTransaction(ctx, func(r *repository.Repositories) error {
		existing, err := r.Reviews.FindByListingAndUser(ctx, listingID, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find review: %w", err)
		}
		if existing != nil {
			existing.Rating = rating
			existing.ReviewText = reviewText
			if err := r.Reviews.Update(ctx, existing); err != nil {
				return fmt.Errorf("update review: %w", err)
			}
			review = existing
			return nil
		}

		review = &model.Review{
			ListingID:  listingID,
			UserID:     userID,
			Rating:     rating,
			ReviewText: reviewText,
		}
		created = true
		if err := r.Reviews.Create(ctx, review); err != nil {
			return fmt.Errorf("create review: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return review, created, nil
}

// GetUserReview returns the caller's review of a listing.
func (s *reviewService) GetUserReview(ctx context.Context, userID, listingID uint) (*model.Review, error) {
	review, err := s.reviews.FindByListingAndUser(ctx, listingID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return review, nil
}

// Delete removes the caller's review of a listing.
func (s *reviewService) Delete(ctx context.Context, userID, listingID uint) error {
	affected, err := s.reviews.DeleteByUserAndListing(ctx, userID, listingID)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrReviewNotFound
	}
	return nil
}
