package repository

import (
	"context"

	"gorm.io/gorm"

	"gharbazaar/internal/model"
)

// ReviewRepository defines review persistence operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	Update(ctx context.Context, review *model.Review) error
	ListByListing(ctx context.Context, listingID uint) ([]model.Review, error)
	FindByListingAndUser(ctx context.Context, listingID, userID uint) (*model.Review, error)
	// AverageForListing returns the mean rating and review count for a listing.
	AverageForListing(ctx context.Context, listingID uint) (float64, int64, error)
	DeleteByUserAndListing(ctx context.Context, userID, listingID uint) (int64, error)
	DeleteByListing(ctx context.Context, listingID uint) error
	DeleteForUserAndListings(ctx context.Context, userID uint, listingIDs []uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create creates a new review.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

// Update updates an existing review.
func (r *reviewRepository) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

// ListByListing lists a listing's reviews, newest first, with reviewers preloaded.
func (r *reviewRepository) ListByListing(ctx context.Context, listingID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// FindByListingAndUser finds the user's review of a listing.
func (r *reviewRepository) FindByListingAndUser(ctx context.Context, listingID, userID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Where("listing_id = ? AND user_id = ?", listingID, userID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// AverageForListing returns the mean rating and count for a listing.
func (r *reviewRepository) AverageForListing(ctx context.Context, listingID uint) (float64, int64, error) {
	var result struct {
		Average float64
		Total   int64
	}
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("listing_id = ?", listingID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Average, result.Total, nil
}

// DeleteByUserAndListing removes the user's review of a listing.
func (r *reviewRepository) DeleteByUserAndListing(ctx context.Context, userID, listingID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&model.Review{})
	return res.RowsAffected, res.Error
}

// DeleteByListing removes every review of a listing.
func (r *reviewRepository) DeleteByListing(ctx context.Context, listingID uint) error {
	return r.db.WithContext(ctx).Where("listing_id = ?", listingID).Delete(&model.Review{}).Error
}

// DeleteForUserAndListings removes the user's reviews plus reviews of any of
// the given listings.
func (r *reviewRepository) DeleteForUserAndListings(ctx context.Context, userID uint, listingIDs []uint) error {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(listingIDs) > 0 {
		q = r.db.WithContext(ctx).Where("user_id = ? OR listing_id IN ?", userID, listingIDs)
	}
	return q.Delete(&model.Review{}).Error
}
