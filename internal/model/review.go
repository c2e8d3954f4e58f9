package model

import "time"

// Review is a user's rating of a listing. The (listing_id, user_id) unique
// index enforces one review per user per listing; submissions after the
// first update the existing row.
type Review struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ListingID  uint      `json:"listing_id" gorm:"not null;uniqueIndex:idx_reviews_listing_user"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_reviews_listing_user"`
	Rating     int       `json:"rating" gorm:"not null"`
	ReviewText string    `json:"review_text" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Reviewer *User `json:"reviewer,omitempty" gorm:"foreignKey:UserID"`
}
