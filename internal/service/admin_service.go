package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gharbazaar/internal/cache"
	apperrors "gharbazaar/internal/errors"
	"gharbazaar/internal/model"
	"gharbazaar/internal/repository"
)

// DashboardStats is the aggregate view for the admin dashboard.
type DashboardStats struct {
	TotalUsers     int64           `json:"total_users"`
	TotalListings  int64           `json:"total_listings"`
	TotalMessages  int64           `json:"total_messages"`
	NewSubmissions int64           `json:"new_submissions"`
	RecentListings []model.Listing `json:"recent_listings"`
}

// AdminService handles administrative operations.
type AdminService interface {
	ListUsers(ctx context.Context) ([]repository.UserSummary, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)
	ListListings(ctx context.Context) ([]model.Listing, error)
	// DeleteListing removes a listing with its dependents and returns it for
	// stored-image cleanup.
	DeleteListing(ctx context.Context, id uint) (*model.Listing, error)
	// DeleteUser removes a user, their listings and every dependent row in
	// one transaction.
	DeleteUser(ctx context.Context, id uint) error
}

type adminService struct {
	repos *repository.Repositories
	cache *cache.Client
}

// NewAdminService creates a new admin service.
func NewAdminService(repos *repository.Repositories, c *cache.Client) AdminService {
	return &adminService{repos: repos, cache: c}
}

// ListUsers returns every user with its listing count.
func (s *adminService) ListUsers(ctx context.Context) ([]repository.UserSummary, error) {
	summaries, err := s.repos.Users.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return summaries, nil
}

// DashboardStats aggregates platform totals, cached for a minute.
func (s *adminService) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	if data, _ := s.cache.Get(ctx, statsCacheKey); data != nil {
		var stats DashboardStats
		if err := json.Unmarshal(data, &stats); err == nil {
			return &stats, nil
		}
	}

	stats := &DashboardStats{}
	var err error
	if stats.TotalUsers, err = s.repos.Users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalListings, err = s.repos.Listings.Count(ctx); err != nil {
		return nil, fmt.Errorf("count listings: %w", err)
	}
	if stats.TotalMessages, err = s.repos.Messages.Count(ctx); err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	if stats.NewSubmissions, err = s.repos.Contacts.CountByStatus(ctx, model.SubmissionStatusNew); err != nil {
		return nil, fmt.Errorf("count submissions: %w", err)
	}
	if stats.RecentListings, err = s.repos.Listings.List(ctx, 5); err != nil {
		return nil, fmt.Errorf("recent listings: %w", err)
	}

	if data, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, data, statsCacheTTL)
	}
	return stats, nil
}

// ListListings returns every listing.
func (s *adminService) ListListings(ctx context.Context) ([]model.Listing, error) {
	listings, err := s.repos.Listings.List(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	return listings, nil
}

// DeleteListing removes a listing and its dependent rows in one transaction.
func (s *adminService) DeleteListing(ctx context.Context, id uint) (*model.Listing, error) {
	listing, err := s.repos.Listings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}

	err = s.repos.WithTransaction(ctx, func(r *repository.Repositories) error {
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

	s.invalidate(ctx)
	return listing, nil
}

// DeleteUser cascades through the user's listings and every dependent row,
// then removes the user, all inside one transaction.
func (s *adminService) DeleteUser(ctx context.Context, id uint) error {
	if _, err := s.repos.Users.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	err := s.repos.WithTransaction(ctx, func(r *repository.Repositories) error {
		listingIDs, err := r.Listings.IDsByUser(ctx, id)
		if err != nil {
			return fmt.Errorf("collect listing ids: %w", err)
		}
		if err := r.Favorites.DeleteForUserAndListings(ctx, id, listingIDs); err != nil {
			return fmt.Errorf("delete favorites: %w", err)
		}
		if err := r.Reviews.DeleteForUserAndListings(ctx, id, listingIDs); err != nil {
			return fmt.Errorf("delete reviews: %w", err)
		}
		if err := r.Messages.DeleteForUserAndListings(ctx, id, listingIDs); err != nil {
			return fmt.Errorf("delete messages: %w", err)
		}
		if err := r.Listings.DeleteByUser(ctx, id); err != nil {
			return fmt.Errorf("delete listings: %w", err)
		}
		return r.Users.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.invalidate(ctx)
	return nil
}

func (s *adminService) invalidate(ctx context.Context) {
	_ = s.cache.Delete(ctx, statsCacheKey)
	_ = s.cache.DeleteByPrefix(ctx, listingKeyPrefix)
	_ = s.cache.DeleteByPrefix(ctx, listingListPrefix)
}
