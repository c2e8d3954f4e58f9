package repository

import (
	"context"

	"gorm.io/gorm"

	"gharbazaar/internal/model"
)

// MessageRepository defines message persistence operations.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByID(ctx context.Context, id uint) (*model.Message, error)
	// ListForUser returns every message the user sent or received, newest
	// first, with sender, receiver and listing preloaded. Conversation
	// grouping is derived from this single result set.
	ListForUser(ctx context.Context, userID uint) ([]model.Message, error)
	// ListBetween returns the messages exchanged between two users about a
	// listing, oldest first.
	ListBetween(ctx context.Context, listingID, userA, userB uint) ([]model.Message, error)
	ExistsBetween(ctx context.Context, listingID, userA, userB uint) (bool, error)
	ListByListing(ctx context.Context, listingID uint) ([]model.Message, error)
	// MarkConversationRead marks all unread messages from sender to receiver
	// on the listing as read.
	MarkConversationRead(ctx context.Context, listingID, senderID, receiverID uint) error
	MarkRead(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint) error
	DeleteByListing(ctx context.Context, listingID uint) error
	DeleteForUserAndListings(ctx context.Context, userID uint, listingIDs []uint) error
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create creates a new message.
func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// FindByID finds a message by ID.
func (r *messageRepository) FindByID(ctx context.Context, id uint) (*model.Message, error) {
	var message model.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// ListForUser returns every message involving the user, newest first.
func (r *messageRepository) ListForUser(ctx context.Context, userID uint) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").Preload("Receiver").Preload("Listing").
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ListBetween returns the conversation between two users on a listing.
func (r *messageRepository) ListBetween(ctx context.Context, listingID, userA, userB uint) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").Preload("Receiver").
		Where("listing_id = ?", listingID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// ExistsBetween reports whether any message exists between two users on a listing.
func (r *messageRepository) ExistsBetween(ctx context.Context, listingID, userA, userB uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("listing_id = ?", listingID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListByListing returns every message about a listing, newest first.
func (r *messageRepository) ListByListing(ctx context.Context, listingID uint) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Preload("Sender").Preload("Receiver").
		Where("listing_id = ?", listingID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkConversationRead marks unread messages from sender to receiver as read.
func (r *messageRepository) MarkConversationRead(ctx context.Context, listingID, senderID, receiverID uint) error {
	return r.db.WithContext(ctx).Model(&model.Message{}).
		Where("listing_id = ? AND sender_id = ? AND receiver_id = ? AND is_read = ?",
			listingID, senderID, receiverID, false).
		Update("is_read", true).Error
}

// MarkRead marks a single message as read.
func (r *messageRepository) MarkRead(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

// Count returns the total number of messages.
func (r *messageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).Count(&count).Error
	return count, err
}

// Delete removes a message row.
func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Message{}, id).Error
}

// DeleteByListing removes every message about a listing.
func (r *messageRepository) DeleteByListing(ctx context.Context, listingID uint) error {
	return r.db.WithContext(ctx).Where("listing_id = ?", listingID).Delete(&model.Message{}).Error
}

// DeleteForUserAndListings removes every message the user participates in,
// plus messages about any of the given listings.
func (r *messageRepository) DeleteForUserAndListings(ctx context.Context, userID uint, listingIDs []uint) error {
	q := r.db.WithContext(ctx).Where("sender_id = ? OR receiver_id = ?", userID, userID)
	if len(listingIDs) > 0 {
		q = r.db.WithContext(ctx).
			Where("sender_id = ? OR receiver_id = ? OR listing_id IN ?", userID, userID, listingIDs)
	}
	return q.Delete(&model.Message{}).Error
}
