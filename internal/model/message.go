package model

import "time"

// Message represents a single message between two users about a listing.
// Conversations are not stored; they are derived from the
// (listing_id, unordered sender/receiver pair) composite at query time.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SenderID   uint      `json:"sender_id" gorm:"not null;index"`
	ReceiverID uint      `json:"receiver_id" gorm:"not null;index"`
	ListingID  uint      `json:"listing_id" gorm:"not null;index"`
	Subject    string    `json:"subject" gorm:"size:255"`
	Body       string    `json:"message" gorm:"column:message;type:text;not null"`
	IsRead     bool      `json:"is_read" gorm:"not null;default:false;index"`
	CreatedAt  time.Time `json:"created_at"`

	// Relations
	Sender   *User    `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Receiver *User    `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
	Listing  *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}
