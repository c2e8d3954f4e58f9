package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "gharbazaar/internal/errors"
	"gharbazaar/internal/model"
	"gharbazaar/internal/repository"
)

func intPtr(v int) *int { return &v }

func TestReconcileImages(t *testing.T) {
	tests := []struct {
		name          string
		existingJSON  string
		newURLs       []string
		coverIndex    *int
		expectedURLs  []string
		expectedCover int
		expectError   bool
	}{
		{
			name:          "existing cover survives appended uploads",
			existingJSON:  `[{"url":"/uploads/properties/a.jpg","isCover":false},{"url":"/uploads/properties/b.jpg","isCover":true}]`,
			newURLs:       []string{"/uploads/properties/c.jpg"},
			expectedURLs:  []string{"/uploads/properties/a.jpg", "/uploads/properties/b.jpg", "/uploads/properties/c.jpg"},
			expectedCover: 1,
		},
		{
			name:          "explicit index overrides recovered cover",
			existingJSON:  `[{"url":"/uploads/properties/a.jpg","isCover":true},{"url":"/uploads/properties/b.jpg","isCover":false}]`,
			newURLs:       []string{"/uploads/properties/c.jpg"},
			coverIndex:    intPtr(2),
			expectedURLs:  []string{"/uploads/properties/a.jpg", "/uploads/properties/b.jpg", "/uploads/properties/c.jpg"},
			expectedCover: 2,
		},
		{
			name:          "out of bounds index falls back to first image",
			existingJSON:  `[{"url":"/uploads/properties/a.jpg","isCover":false}]`,
			coverIndex:    intPtr(9),
			expectedURLs:  []string{"/uploads/properties/a.jpg"},
			expectedCover: 0,
		},
		{
			name:          "legacy string array treats first entry as cover",
			existingJSON:  `["/uploads/properties/a.jpg","/uploads/properties/b.jpg"]`,
			expectedURLs:  []string{"/uploads/properties/a.jpg", "/uploads/properties/b.jpg"},
			expectedCover: 0,
		},
		{
			name:          "fresh uploads only default to first image as cover",
			newURLs:       []string{"/uploads/properties/a.jpg", "/uploads/properties/b.jpg"},
			expectedURLs:  []string{"/uploads/properties/a.jpg", "/uploads/properties/b.jpg"},
			expectedCover: 0,
		},
		{
			name:         "empty inputs yield an empty set",
			expectedURLs: []string{},
		},
		{
			name:         "malformed payload rejected",
			existingJSON: `{"not":"an array"}`,
			expectError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, err := ReconcileImages(tt.existingJSON, tt.newURLs, tt.coverIndex)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedURLs, merged.URLs())
			if len(tt.expectedURLs) > 0 {
				assert.Equal(t, tt.expectedCover, merged.CoverIndex())
				covers := 0
				for _, img := range merged {
					if img.IsCover {
						covers++
					}
				}
				assert.Equal(t, 1, covers)
			}
		})
	}
}

func newListingService(listings *MockListingRepository, repos *repository.Repositories) ListingService {
	return NewListingService(listings, &stubTransactor{repos: repos}, nil)
}

func TestListingService_ListByUser(t *testing.T) {
	owner := &model.User{ID: 2, Role: model.RoleUser}
	admin := &model.User{ID: 9, Role: model.RoleAdmin}
	stranger := &model.User{ID: 3, Role: model.RoleUser}

	tests := []struct {
		name          string
		caller        *model.User
		expectedError error
	}{
		{name: "owner sees own listings", caller: owner},
		{name: "admin sees any user's listings", caller: admin},
		{name: "stranger is denied", caller: stranger, expectedError: apperrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockListings := new(MockListingRepository)
			if tt.expectedError == nil {
				mockListings.On("ListByUser", mock.Anything, uint(2)).Return([]model.Listing{{ID: 10, UserID: 2}}, nil)
			}

			service := newListingService(mockListings, nil)
			listings, err := service.ListByUser(context.Background(), tt.caller, 2)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, listings)
			} else {
				assert.NoError(t, err)
				assert.Len(t, listings, 1)
			}
			mockListings.AssertExpectations(t)
		})
	}
}

func TestListingService_Create(t *testing.T) {
	mockListings := new(MockListingRepository)
	mockListings.On("Create", mock.Anything, mock.AnythingOfType("*model.Listing")).Return(nil)

	service := newListingService(mockListings, nil)
	listing, err := service.Create(context.Background(), 2, ListingInput{
		Title:        "Sunny flat",
		PropertyType: "apartment",
		Purpose:      model.PurposeRent,
		Price:        decimal.NewFromInt(35000),
		Location:     "Patan",
		NewImageURLs: []string{"/uploads/properties/a.jpg"},
	})

	assert.NoError(t, err)
	assert.Equal(t, uint(2), listing.UserID)
	assert.Equal(t, 0, listing.Images.CoverIndex())
	mockListings.AssertExpectations(t)
}

func TestListingService_Update(t *testing.T) {
	stored := func() *model.Listing {
		return &model.Listing{
			ID:     10,
			UserID: 2,
			Title:  "Old title",
			Images: model.ImageList{{URL: "/uploads/properties/a.jpg", IsCover: true}},
		}
	}

	t.Run("owner may update", func(t *testing.T) {
		mockListings := new(MockListingRepository)
		mockListings.On("FindByID", mock.Anything, uint(10)).Return(stored(), nil)
		mockListings.On("Update", mock.Anything, mock.AnythingOfType("*model.Listing")).Return(nil)

		service := newListingService(mockListings, nil)
		listing, err := service.Update(context.Background(), &model.User{ID: 2}, 10, ListingInput{
			Title:              "New title",
			Price:              decimal.NewFromInt(40000),
			ExistingImagesJSON: `[{"url":"/uploads/properties/a.jpg","isCover":true}]`,
			NewImageURLs:       []string{"/uploads/properties/b.jpg"},
		})

		assert.NoError(t, err)
		assert.Equal(t, "New title", listing.Title)
		assert.Len(t, listing.Images, 2)
		assert.Equal(t, 0, listing.Images.CoverIndex())
		mockListings.AssertExpectations(t)
	})

	t.Run("non owner is denied", func(t *testing.T) {
		mockListings := new(MockListingRepository)
		mockListings.On("FindByID", mock.Anything, uint(10)).Return(stored(), nil)

		service := newListingService(mockListings, nil)
		_, err := service.Update(context.Background(), &model.User{ID: 3}, 10, ListingInput{Title: "x"})

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockListings.AssertExpectations(t)
	})

	t.Run("missing listing", func(t *testing.T) {
		mockListings := new(MockListingRepository)
		mockListings.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)

		service := newListingService(mockListings, nil)
		_, err := service.Update(context.Background(), &model.User{ID: 2}, 10, ListingInput{Title: "x"})

		assert.ErrorIs(t, err, apperrors.ErrListingNotFound)
		mockListings.AssertExpectations(t)
	})
}

func TestListingService_Delete(t *testing.T) {
	stored := &model.Listing{ID: 10, UserID: 2}

	t.Run("owner delete cascades dependent rows", func(t *testing.T) {
		mockListings := new(MockListingRepository)
		mockFavorites := new(MockFavoriteRepository)
		mockReviews := new(MockReviewRepository)
		mockMessages := new(MockMessageRepository)

		mockListings.On("FindByID", mock.Anything, uint(10)).Return(stored, nil)
		mockFavorites.On("DeleteByListing", mock.Anything, uint(10)).Return(nil)
		mockReviews.On("DeleteByListing", mock.Anything, uint(10)).Return(nil)
		mockMessages.On("DeleteByListing", mock.Anything, uint(10)).Return(nil)
		mockListings.On("Delete", mock.Anything, uint(10)).Return(nil)

		repos := &repository.Repositories{
			Listings:  mockListings,
			Favorites: mockFavorites,
			Reviews:   mockReviews,
			Messages:  mockMessages,
		}
		service := newListingService(mockListings, repos)
		deleted, err := service.Delete(context.Background(), &model.User{ID: 2}, 10)

		assert.NoError(t, err)
		assert.Equal(t, uint(10), deleted.ID)
		mockListings.AssertExpectations(t)
		mockFavorites.AssertExpectations(t)
		mockReviews.AssertExpectations(t)
		mockMessages.AssertExpectations(t)
	})

	t.Run("admin may delete another user's listing", func(t *testing.T) {
		mockListings := new(MockListingRepository)
		mockFavorites := new(MockFavoriteRepository)
		mockReviews := new(MockReviewRepository)
		mockMessages := new(MockMessageRepository)

		mockListings.On("FindByID", mock.Anything, uint(10)).Return(stored, nil)
		mockFavorites.On("DeleteByListing", mock.Anything, uint(10)).Return(nil)
		mockReviews.On("DeleteByListing", mock.Anything, uint(10)).Return(nil)
		mockMessages.On("DeleteByListing", mock.Anything, uint(10)).Return(nil)
		mockListings.On("Delete", mock.Anything, uint(10)).Return(nil)

		repos := &repository.Repositories{
			Listings:  mockListings,
			Favorites: mockFavorites,
			Reviews:   mockReviews,
			Messages:  mockMessages,
		}
		service := newListingService(mockListings, repos)
		_, err := service.Delete(context.Background(), &model.User{ID: 9, Role: model.RoleAdmin}, 10)
		assert.NoError(t, err)
	})

	t.Run("stranger is denied before any write", func(t *testing.T) {
		mockListings := new(MockListingRepository)
		mockListings.On("FindByID", mock.Anything, uint(10)).Return(stored, nil)

		service := newListingService(mockListings, nil)
		_, err := service.Delete(context.Background(), &model.User{ID: 3}, 10)

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		mockListings.AssertExpectations(t)
	})
}
