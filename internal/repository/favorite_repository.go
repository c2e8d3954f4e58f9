package repository

import (
	"context"

	"gorm.io/gorm"

	"gharbazaar/internal/model"
)

// FavoriteRepository defines favorite persistence operations.
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *model.Favorite) error
	ListByUser(ctx context.Context, userID uint) ([]model.Favorite, error)
	Exists(ctx context.Context, userID, listingID uint) (bool, error)
	DeleteByUserAndListing(ctx context.Context, userID, listingID uint) (int64, error)
	DeleteByListing(ctx context.Context, listingID uint) error
	DeleteForUserAndListings(ctx context.Context, userID uint, listingIDs []uint) error
}

type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Create creates a new favorite.
func (r *favoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	return r.db.WithContext(ctx).Create(favorite).Error
}

// ListByUser lists a user's favorites, newest first, with listings preloaded.
func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint) ([]model.Favorite, error) {
	var favorites []model.Favorite
	err := r.db.WithContext(ctx).
		Preload("Listing").Preload("Listing.Owner").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// Exists reports whether the user has favorited the listing.
func (r *favoriteRepository) Exists(ctx context.Context, userID, listingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByUserAndListing removes a favorite and reports rows affected.
func (r *favoriteRepository) DeleteByUserAndListing(ctx context.Context, userID, listingID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&model.Favorite{})
	return res.RowsAffected, res.Error
}

// DeleteByListing removes every favorite of a listing.
func (r *favoriteRepository) DeleteByListing(ctx context.Context, listingID uint) error {
	return r.db.WithContext(ctx).Where("listing_id = ?", listingID).Delete(&model.Favorite{}).Error
}

// DeleteForUserAndListings removes the user's favorites plus favorites of any
// of the given listings.
func (r *favoriteRepository) DeleteForUserAndListings(ctx context.Context, userID uint, listingIDs []uint) error {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(listingIDs) > 0 {
		q = r.db.WithContext(ctx).Where("user_id = ? OR listing_id IN ?", userID, listingIDs)
	}
	return q.Delete(&model.Favorite{}).Error
}
