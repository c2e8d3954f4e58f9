package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "gharbazaar/internal/errors"
	"gharbazaar/internal/model"
	"gharbazaar/internal/repository"
)

// Conversation is a derived grouping of messages sharing a listing and a
// pair of participants. It is never stored.
type Conversation struct {
	ListingID       uint      `json:"listing_id"`
	ListingTitle    string    `json:"listing_title"`
	ListingLocation string    `json:"listing_location"`
	OtherUserID     uint      `json:"other_user_id"`
	OtherUserName   string    `json:"other_user_name"`
	OtherUserEmail  string    `json:"other_user_email"`
	LastMessage     string    `json:"last_message"`
	LastMessageAt   time.Time `json:"last_message_time"`
	UnreadCount     int       `json:"unread_count"`
}

// MessageService handles messaging between users about listings.
type MessageService interface {
	// ListConversations enumerates the caller's conversations, sorted by
	// last-message time descending.
	ListConversations(ctx context.Context, userID uint) ([]Conversation, error)
	// GetConversation returns the messages between the caller and another
	// user about a listing, oldest first, marking messages addressed to the
	// caller as read.
	GetConversation(ctx context.Context, callerID, listingID, otherUserID uint) ([]model.Message, error)
	ListForUser(ctx context.Context, userID uint) ([]model.Message, error)
	ListForListing(ctx context.Context, callerID, listingID uint) ([]model.Message, error)
	Send(ctx context.Context, senderID, receiverID, listingID uint, subject, body string) (*model.Message, error)
	MarkRead(ctx context.Context, callerID, messageID uint) error
	Delete(ctx context.Context, callerID, messageID uint) error
}

type messageService struct {
	messages repository.MessageRepository
	listings repository.ListingRepository
	users    repository.UserRepository
}

// NewMessageService creates a new message service.
func NewMessageService(messages repository.MessageRepository, listings repository.ListingRepository, users repository.UserRepository) MessageService {
	return &messageService{messages: messages, listings: listings, users: users}
}

// ListConversations derives conversations from a single pass over the
// caller's messages. The repository returns them newest first, so the first
// message seen for each (listing, counterpart) pair is its latest, and the
// first-seen order of pairs is already the required sort.
func (s *messageService) ListConversations(ctx context.Context, userID uint) ([]Conversation, error) {
	messages, err := s.messages.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	type pairKey struct {
		listingID   uint
		otherUserID uint
	}
	index := make(map[pairKey]int)
	conversations := make([]Conversation, 0)

	for _, msg := range messages {
		other := msg.Sender
		otherID := msg.SenderID
		if msg.SenderID == userID {
			other = msg.Receiver
			otherID = msg.ReceiverID
		}

		key := pairKey{listingID: msg.ListingID, otherUserID: otherID}
		idx, seen := index[key]
		if !seen {
			conv := Conversation{
				ListingID:     msg.ListingID,
				OtherUserID:   otherID,
				LastMessage:   msg.Body,
				LastMessageAt: msg.CreatedAt,
			}
			if other != nil {
				conv.OtherUserName = other.Name
				conv.OtherUserEmail = other.Email
			}
			if msg.Listing != nil {
				conv.ListingTitle = msg.Listing.Title
				conv.ListingLocation = msg.Listing.Location
			}
			index[key] = len(conversations)
			conversations = append(conversations, conv)
			idx = index[key]
		}
		if msg.ReceiverID == userID && !msg.IsRead {
			conversations[idx].UnreadCount++
		}
	}
	return conversations, nil
}

// GetConversation returns one conversation's messages. The caller must be
// the listing owner, the counterpart named in the request, or a prior
// participant. Reading marks unread messages from the counterpart to the
// caller as read; repeating the read is a no-op.
func (s *messageService) GetConversation(ctx context.Context, callerID, listingID, otherUserID uint) ([]model.Message, error) {
	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}

	allowed := callerID == listing.UserID || callerID == otherUserID
	if !allowed {
		exists, err := s.messages.ExistsBetween(ctx, listingID, callerID, otherUserID)
		if err != nil {
			return nil, fmt.Errorf("check conversation: %w", err)
		}
		allowed = exists
	}
	if !allowed {
		return nil, apperrors.ErrForbidden
	}

	messages, err := s.messages.ListBetween(ctx, listingID, callerID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}

	if err := s.messages.MarkConversationRead(ctx, listingID, otherUserID, callerID); err != nil {
		return nil, fmt.Errorf("mark conversation read: %w", err)
	}
	for i := range messages {
		if messages[i].ReceiverID == callerID {
			messages[i].IsRead = true
		}
	}
	return messages, nil
}

// ListForUser returns every message the user sent or received.
func (s *messageService) ListForUser(ctx context.Context, userID uint) ([]model.Message, error) {
	messages, err := s.messages.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

// ListForListing returns every message about a listing; owner only.
func (s *messageService) ListForListing(ctx context.Context, callerID, listingID uint) ([]model.Message, error) {
	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}
	if listing.UserID != callerID {
		return nil, apperrors.ErrForbidden
	}

	messages, err := s.messages.ListByListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("list listing messages: %w", err)
	}
	return messages, nil
}

// Send stores a new message after checking that the receiver and listing
// exist and that the sender is not messaging themselves.
func (s *messageService) Send(ctx context.Context, senderID, receiverID, listingID uint, subject, body string) (*model.Message, error) {
	if senderID == receiverID {
		return nil, apperrors.ErrSelfMessage
	}
	if _, err := s.users.FindByID(ctx, receiverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find receiver: %w", err)
	}
	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrListingNotFound
		}
		return nil, fmt.Errorf("find listing: %w", err)
	}

	message := &model.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		ListingID:  listingID,
		Subject:    subject,
		Body:       body,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return message, nil
}

// MarkRead marks a message as read; receiver only.
func (s *messageService) MarkRead(ctx context.Context, callerID, messageID uint) error {
	message, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMessageNotFound
		}
		return fmt.Errorf("find message: %w", err)
	}
	if message.ReceiverID != callerID {
		return apperrors.ErrForbidden
	}
	return s.messages.MarkRead(ctx, messageID)
}

// Delete removes a message; sender only.
func (s *messageService) Delete(ctx context.Context, callerID, messageID uint) error {
	message, err := s.messages.FindByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrMessageNotFound
		}
		return fmt.Errorf("find message: %w", err)
	}
	if message.SenderID != callerID {
		return apperrors.ErrForbidden
	}
	return s.messages.Delete(ctx, messageID)
}
