package repository

import (
	"context"

	"gorm.io/gorm"

	"gharbazaar/internal/model"
)

// ListingRepository defines listing persistence operations.
type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	Update(ctx context.Context, listing *model.Listing) error
	FindByID(ctx context.Context, id uint) (*model.Listing, error)
	List(ctx context.Context, limit int) ([]model.Listing, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Listing, error)
	IDsByUser(ctx context.Context, userID uint) ([]uint, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint) error
	DeleteByUser(ctx context.Context, userID uint) error
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository creates a new listing repository.
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

// Create creates a new listing.
func (r *listingRepository) Create(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Create(listing).Error
}

// Update updates an existing listing.
func (r *listingRepository) Update(ctx context.Context, listing *model.Listing) error {
	return r.db.WithContext(ctx).Save(listing).Error
}

// FindByID finds a listing by ID with its owner preloaded.
func (r *listingRepository) FindByID(ctx context.Context, id uint) (*model.Listing, error) {
	var listing model.Listing
	if err := r.db.WithContext(ctx).Preload("Owner").Where("id = ?", id).First(&listing).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

// List lists listings newest first. A limit <= 0 means no limit.
func (r *listingRepository) List(ctx context.Context, limit int) ([]model.Listing, error) {
	var listings []model.Listing
	q := r.db.WithContext(ctx).Preload("Owner").Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&listings).Error; err != nil {
		return nil, err
	}
	return listings, nil
}

// ListByUser lists a user's listings newest first.
func (r *listingRepository) ListByUser(ctx context.Context, userID uint) ([]model.Listing, error) {
	var listings []model.Listing
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&listings).Error
	if err != nil {
		return nil, err
	}
	return listings, nil
}

// IDsByUser returns the IDs of every listing owned by the user.
func (r *listingRepository) IDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Listing{}).
		Where("user_id = ?", userID).Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Count returns the total number of listings.
func (r *listingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Listing{}).Count(&count).Error
	return count, err
}

// Delete removes a listing row.
func (r *listingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Listing{}, id).Error
}

// DeleteByUser removes every listing owned by the user.
func (r *listingRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.Listing{}).Error
}
