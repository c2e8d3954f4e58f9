package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ListingImage is the canonical form of a stored listing image.
type ListingImage struct {
	URL     string `json:"url"`
	IsCover bool   `json:"isCover"`
}

// ImageList is the JSON image column of a listing. Two historical shapes
// exist on disk: a bare array of URL strings and an array of
// {url, isCover} objects. Scan normalizes both to the object form, so no
// other code ever sees the legacy shape.
type ImageList []ListingImage

// Scan implements sql.Scanner.
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported images column type %T", value)
	}
	if len(raw) == 0 {
		*l = nil
		return nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("parse images column: %w", err)
	}

	images := make(ImageList, 0, len(entries))
	for i, entry := range entries {
		var img ListingImage
		if err := json.Unmarshal(entry, &img); err == nil {
			images = append(images, img)
			continue
		}
		// Legacy shape: plain URL string. The first entry becomes the cover.
		var url string
		if err := json.Unmarshal(entry, &url); err != nil {
			return fmt.Errorf("parse images column entry %d: %w", i, err)
		}
		images = append(images, ListingImage{URL: url, IsCover: i == 0})
	}

	*l = images
	return nil
}

// Value implements driver.Valuer.
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	return json.Marshal(l)
}

// CoverIndex returns the index of the flagged cover image, or -1.
func (l ImageList) CoverIndex() int {
	for i, img := range l {
		if img.IsCover {
			return i
		}
	}
	return -1
}

// URLs returns the image URLs in order.
func (l ImageList) URLs() []string {
	urls := make([]string, len(l))
	for i, img := range l {
		urls[i] = img.URL
	}
	return urls
}

// Listing purposes.
const (
	PurposeSale = "sale"
	PurposeRent = "rent"
)

// Listing represents a property classified ad.
type Listing struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	UserID       uint            `json:"user_id" gorm:"not null;index"`
	Title        string          `json:"title" gorm:"size:255;not null"`
	Description  string          `json:"description" gorm:"type:text"`
	PropertyType string          `json:"property_type" gorm:"size:50;not null;index"`
	Purpose      string          `json:"purpose" gorm:"size:20;not null;index"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Location     string          `json:"location" gorm:"size:255;not null"`
	Area         string          `json:"area" gorm:"size:100"`
	PhoneNumber  string          `json:"phone_number" gorm:"size:30"`
	Images       ImageList       `json:"images" gorm:"type:json"`
	Latitude     *float64        `json:"latitude,omitempty"`
	Longitude    *float64        `json:"longitude,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations
	Owner *User `json:"owner,omitempty" gorm:"foreignKey:UserID"`
}
