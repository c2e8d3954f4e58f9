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

// FavoriteService handles saved listings.
type FavoriteService interface {
	Add(ctx context.Context, userID, listingID uint) (*model.Favorite, error)
	List(ctx context.Context, userID uint) ([]model.Favorite, error)
	Remove(ctx context.Context, userID, listingID uint) error
	Check(ctx context.Context, userID, listingID uint) (bool, error)
}

type favoriteService struct {
	favorites repository.FavoriteRepository
	listings  repository.ListingRepository
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(favorites repository.FavoriteRepository, listings repository.ListingRepository) FavoriteService {
	return &favoriteService{favorites: favorites, listings: listings}
}

// Add favorites a listing for the user, once.
func (s *favoriteService) Add(ctx context.Context, userID, listingID uint) (*model.Favorite, error) {
	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}

	exists, err := s.favorites.Exists(ctx, userID, listingID)
	if err != nil {
		return nil, fmt.Errorf("check favorite: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyFavorite
	}

	favorite := &model.Favorite{UserID: userID, ListingID: listingID}
	if err := s.favorites.Create(ctx, favorite); err != nil {
		return nil, fmt.Errorf("create favorite: %w", err)
	}
	return favorite, nil
}

// List returns the user's favorites with listings attached.
func (s *favoriteService) List(ctx context.Context, userID uint) ([]model.Favorite, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}

// Remove deletes a favorite.
func (s *favoriteService) Remove(ctx context.Context, userID, listingID uint) error {
	affected, err := s.favorites.DeleteByUserAndListing(ctx, userID, listingID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFavoriteNotFound
	}
	return nil
}

// Check reports whether the user has favorited the listing.
func (s *favoriteService) Check(ctx context.Context, userID, listingID uint) (bool, error) {
	exists, err := s.favorites.Exists(ctx, userID, listingID)
	if err != nil {
		return false, fmt.Errorf("check favorite: %w", err)
	}
	return exists, nil
}
