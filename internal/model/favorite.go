package model

import "time"

// Favorite marks a listing as saved by a user. One row per (user, listing).
type Favorite struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_favorites_user_listing"`
	ListingID uint      `json:"listing_id" gorm:"not null;uniqueIndex:idx_favorites_user_listing"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Listing *Listing `json:"listing,omitempty" gorm:"foreignKey:ListingID"`
}
