package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gharbazaar/internal/model"
	"gharbazaar/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ListSummaries(ctx context.Context) ([]repository.UserSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.UserSummary), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockListingRepository is a mock implementation of repository.ListingRepository.
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *model.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) Update(ctx context.Context, listing *model.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uint) (*model.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Listing), args.Error(1)
}

func (m *MockListingRepository) List(ctx context.Context, limit int) ([]model.Listing, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MockListingRepository) ListByUser(ctx context.Context, userID uint) ([]model.Listing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Listing), args.Error(1)
}

func (m *MockListingRepository) IDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

func (m *MockListingRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockListingRepository) DeleteByUser(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockMessageRepository is a mock implementation of repository.MessageRepository.
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *model.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) FindByID(ctx context.Context, id uint) (*model.Message, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Message), args.Error(1)
}

func (m *MockMessageRepository) ListForUser(ctx context.Context, userID uint) ([]model.Message, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockMessageRepository) ListBetween(ctx context.Context, listingID, userA, userB uint) ([]model.Message, error) {
	args := m.Called(ctx, listingID, userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockMessageRepository) ExistsBetween(ctx context.Context, listingID, userA, userB uint) (bool, error) {
	args := m.Called(ctx, listingID, userA, userB)
	return args.Bool(0), args.Error(1)
}

func (m *MockMessageRepository) ListByListing(ctx context.Context, listingID uint) ([]model.Message, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Message), args.Error(1)
}

func (m *MockMessageRepository) MarkConversationRead(ctx context.Context, listingID, senderID, receiverID uint) error {
	args := m.Called(ctx, listingID, senderID, receiverID)
	return args.Error(0)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMessageRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMessageRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMessageRepository) DeleteByListing(ctx context.Context, listingID uint) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

func (m *MockMessageRepository) DeleteForUserAndListings(ctx context.Context, userID uint, listingIDs []uint) error {
	args := m.Called(ctx, userID, listingIDs)
	return args.Error(0)
}

// MockReviewRepository is a mock implementation of repository.ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) ListByListing(ctx context.Context, listingID uint) ([]model.Review, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByListingAndUser(ctx context.Context, listingID, userID uint) (*model.Review, error) {
	args := m.Called(ctx, listingID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) AverageForListing(ctx context.Context, listingID uint) (float64, int64, error) {
	args := m.Called(ctx, listingID)
	return args.Get(0).(float64), args.Get(1).(int64), args.Error(2)
}

func (m *MockReviewRepository) DeleteByUserAndListing(ctx context.Context, userID, listingID uint) (int64, error) {
	args := m.Called(ctx, userID, listingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) DeleteByListing(ctx context.Context, listingID uint) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

func (m *MockReviewRepository) DeleteForUserAndListings(ctx context.Context, userID uint, listingIDs []uint) error {
	args := m.Called(ctx, userID, listingIDs)
	return args.Error(0)
}

// MockFavoriteRepository is a mock implementation of repository.FavoriteRepository.
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Create(ctx context.Context, favorite *model.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID uint) ([]model.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, listingID uint) (bool, error) {
	args := m.Called(ctx, userID, listingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) DeleteByUserAndListing(ctx context.Context, userID, listingID uint) (int64, error) {
	args := m.Called(ctx, userID, listingID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFavoriteRepository) DeleteByListing(ctx context.Context, listingID uint) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) DeleteForUserAndListings(ctx context.Context, userID uint, listingIDs []uint) error {
	args := m.Called(ctx, userID, listingIDs)
	return args.Error(0)
}

// stubTransactor satisfies repository.Transactor without a real database:
// the callback runs against the supplied repository set and nothing is
// rolled back.
type stubTransactor struct {
	repos *repository.Repositories
}

func (s *stubTransactor) WithTransaction(ctx context.Context, fn func(r *repository.Repositories) error) error {
	return fn(s.repos)
}
