package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles every repository over a single gorm handle so that
// multi-entity writes can run inside one transaction.
type Repositories struct {
	Users     UserRepository
	Listings  ListingRepository
	Messages  MessageRepository
	Favorites FavoriteRepository
	Reviews   ReviewRepository
	Contacts  ContactRepository

	db *gorm.DB
}

// NewRepositories builds the repository set from a gorm handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(db),
		Listings:  NewListingRepository(db),
		Messages:  NewMessageRepository(db),
		Favorites: NewFavoriteRepository(db),
		Reviews:   NewReviewRepository(db),
		Contacts:  NewContactRepository(db),
		db:        db,
	}
}

// Transactor runs a function within a single database transaction, handing it
// a repository set bound to that transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(r *Repositories) error) error
}

// WithTransaction implements Transactor. The callback's repository set shares
// one transaction; any error rolls the whole unit back.
func (r *Repositories) WithTransaction(ctx context.Context, fn func(r *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
