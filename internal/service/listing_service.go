package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gharbazaar/internal/cache"
	apperrors "gharbazaar/internal/errors"
	"gharbazaar/internal/model"
	"gharbazaar/internal/repository"
)

const (
	listingCacheTTL   = 5 * time.Minute
	listingKeyPrefix  = "listing:"
	listingListPrefix = "listings:"
	statsCacheKey     = "admin:dashboard-stats"
	statsCacheTTL     = time.Minute
)

// ListingInput carries the writable fields of a listing.
type ListingInput struct {
	Title        string
	Description  string
	PropertyType string
	Purpose      string
	Price        decimal.Decimal
	Location     string
	Area         string
	PhoneNumber  string
	Latitude     *float64
	Longitude    *float64
	// ExistingImagesJSON is the client-submitted surviving image set, in
	// either the legacy string-array or {url,isCover} object form.
	ExistingImagesJSON string
	// NewImageURLs are the stored public paths of freshly uploaded files.
	NewImageURLs []string
	// CoverImageIndex, when set, overrides the recovered cover position.
	CoverImageIndex *int
}

// ListingService handles property listing operations.
type ListingService interface {
	List(ctx context.Context, limit int) ([]model.Listing, error)
	Get(ctx context.Context, id uint) (*model.Listing, error)
	ListByUser(ctx context.Context, caller *model.User, userID uint) ([]model.Listing, error)
	Create(ctx context.Context, userID uint, input ListingInput) (*model.Listing, error)
	Update(ctx context.Context, caller *model.User, id uint, input ListingInput) (*model.Listing, error)
	// Delete removes the listing and its dependent rows and returns the
	// deleted listing so callers can clean up stored images.
	Delete(ctx context.Context, caller *model.User, id uint) (*model.Listing, error)
}

type listingService struct {
	listings repository.ListingRepository
	tx       repository.Transactor
	cache    *cache.Client
}

// NewListingService creates a new listing service.
func NewListingService(listings repository.ListingRepository, tx repository.Transactor, c *cache.Client) ListingService {
	return &listingService{listings: listings, tx: tx, cache: c}
}

// ReconcileImages merges the surviving image set with newly uploaded URLs and
// flags exactly one cover. The cover recovered from the old data survives
// unless coverIndex overrides it; an index outside the merged bounds falls
// back to 0 so a cover is always present when any image exists.
func ReconcileImages(existingJSON string, newURLs []string, coverIndex *int) (model.ImageList, error) {
	var existing model.ImageList
	if strings.TrimSpace(existingJSON) != "" {
		if err := existing.Scan([]byte(existingJSON)); err != nil {
			return nil, apperrors.NewHTTPError(http.StatusBadRequest, "invalid existingImages payload")
		}
	}

	cover := existing.CoverIndex()
	merged := make(model.ImageList, 0, len(existing)+len(newURLs))
	for _, img := range existing {
		merged = append(merged, model.ListingImage{URL: img.URL})
	}
	for _, url := range newURLs {
		merged = append(merged, model.ListingImage{URL: url})
	}

	if coverIndex != nil {
		cover = *coverIndex
	}
	if len(merged) > 0 {
		if cover < 0 || cover >= len(merged) {
			cover = 0
		}
		merged[cover].IsCover = true
	}
	return merged, nil
}

// List returns listings newest first, optionally limited, via the cache.
func (s *listingService) List(ctx context.Context, limit int) ([]model.Listing, error) {
	key := listingListPrefix + "all:" + strconv.Itoa(limit)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var listings []model.Listing
		if err := json.Unmarshal(data, &listings); err == nil {
			return listings, nil
		}
	}

	listings, err := s.listings.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	if data, err := json.Marshal(listings); err == nil {
		_ = s.cache.Set(ctx, key, data, listingCacheTTL)
	}
	return listings, nil
}

// Get returns a single listing via the cache.
func (s *listingService) Get(ctx context.Context, id uint) (*model.Listing, error) {
	key := listingKeyPrefix + strconv.FormatUint(uint64(id), 10)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var listing model.Listing
		if err := json.Unmarshal(data, &listing); err == nil {
			return &listing, nil
		}
	}

	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	if data, err := json.Marshal(listing); err == nil {
		_ = s.cache.Set(ctx, key, data, listingCacheTTL)
	}
	return listing, nil
}

// ListByUser returns a user's listings; only the user themselves or an admin
// may ask.
func (s *listingService) ListByUser(ctx context.Context, caller *model.User, userID uint) ([]model.Listing, error) {
	if caller.ID != userID && !caller.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	listings, err := s.listings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user listings: %w", err)
	}
	return listings, nil
}

// Create stores a new listing with its reconciled image set.
func (s *listingService) Create(ctx context.Context, userID uint, input ListingInput) (*model.Listing, error) {
	images, err := ReconcileImages("", input.NewImageURLs, input.CoverImageIndex)
	if err != nil {
		return nil, err
	}

	listing := &model.Listing{
		UserID:       userID,
		Title:        input.Title,
		Description:  input.Description,
		PropertyType: input.PropertyType,
		Purpose:      input.Purpose,
		Price:        input.Price,
		Location:     input.Location,
		Area:         input.Area,
		PhoneNumber:  input.PhoneNumber,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		Images:       images,
	}
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}
	s.invalidate(ctx, listing.ID)
	return listing, nil
}

// Update rewrites a listing; only the owner or an admin may do so.
func (s *listingService) Update(ctx context.Context, caller *model.User, id uint, input ListingInput) (*model.Listing, error) {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	if listing.UserID != caller.ID && !caller.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	images, err := ReconcileImages(input.ExistingImagesJSON, input.NewImageURLs, input.CoverImageIndex)
	if err != nil {
		return nil, err
	}

	listing.Title = input.Title
	listing.Description = input.Description
	listing.PropertyType = input.PropertyType
	listing.Purpose = input.Purpose
	listing.Price = input.Price
	listing.Location = input.Location
	listing.Area = input.Area
	listing.PhoneNumber = input.PhoneNumber
	listing.Latitude = input.Latitude
	listing.Longitude = input.Longitude
	listing.Images = images
	listing.Owner = nil

	if err := s.listings.Update(ctx, listing); err != nil {
		return nil, fmt.Errorf("update listing: %w", err)
	}
	s.invalidate(ctx, listing.ID)
	return listing, nil
}

// Delete removes a listing and its favorites, reviews and messages in one
// transaction; only the owner or an admin may do so.
func (s *listingService) Delete(ctx context.Context, caller *model.User, id uint) (*model.Listing, error) {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	if listing.UserID != caller.ID && !caller.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	err = s.tx.WithTransaction(ctx, func(r *repository.Repositories) error {
		if err := r.Favorites.DeleteByListing(ctx, id); err != nil {
			return fmt.Errorf("delete favorites: %w", err)
		}
		if err := r.Reviews.DeleteByListing(ctx, id); err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}
		if err := r.Messages.DeleteByListing(ctx, id); err != nil {
			return fmt.Errorf("delete messages: %w", err)
		}
		return r.Listings.Delete(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("delete listing: %w", err)
	}
	s.invalidate(ctx, id)
	return listing, nil
}

func (s *listingService) invalidate(ctx context.Context, id uint) {
	_ = s.cache.Delete(ctx, listingKeyPrefix+strconv.FormatUint(uint64(id), 10), statsCacheKey)
	_ = s.cache.DeleteByPrefix(ctx, listingListPrefix)
}
