package repository

import (
	"context"

	"gorm.io/gorm"

	"gharbazaar/internal/model"
)

// ContactRepository defines contact submission persistence operations.
type ContactRepository interface {
	Create(ctx context.Context, submission *model.ContactSubmission) error
	FindByID(ctx context.Context, id uint) (*model.ContactSubmission, error)
	List(ctx context.Context) ([]model.ContactSubmission, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

// Create creates a new contact submission.
func (r *contactRepository) Create(ctx context.Context, submission *model.ContactSubmission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

// FindByID finds a contact submission by ID.
func (r *contactRepository) FindByID(ctx context.Context, id uint) (*model.ContactSubmission, error) {
	var submission model.ContactSubmission
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// List lists every contact submission, newest first.
func (r *contactRepository) List(ctx context.Context) ([]model.ContactSubmission, error) {
	var submissions []model.ContactSubmission
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&submissions).Error
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

// UpdateStatus sets the status of a submission.
func (r *contactRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&model.ContactSubmission{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// CountByStatus counts submissions with the given status.
func (r *contactRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ContactSubmission{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// Delete removes a contact submission.
func (r *contactRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.ContactSubmission{}, id).Error
}
