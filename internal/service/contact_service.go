package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "gharbazaar/internal/errors"
	"gharbazaar/internal/model"
	"gharbazaar/internal/repository"
)

// ContactService handles contact-form submissions.
type ContactService interface {
	Submit(ctx context.Context, name, email, subject, message string) (*model.ContactSubmission, error)
	List(ctx context.Context) ([]model.ContactSubmission, error)
	UpdateStatus(ctx context.Context, id uint, status string) (*model.ContactSubmission, error)
	Delete(ctx context.Context, id uint) error
}

type contactService struct {
	contacts repository.ContactRepository
}

// NewContactService creates a new contact service.
func NewContactService(contacts repository.ContactRepository) ContactService {
	return &contactService{contacts: contacts}
}

// Submit stores a new submission in the "new" status.
func (s *contactService) Submit(ctx context.Context, name, email, subject, message string) (*model.ContactSubmission, error) {
	submission := &model.ContactSubmission{
		Name:    name,
		Email:   email,
		Subject: subject,
		Message: message,
		Status:  model.SubmissionStatusNew,
	}
	if err := s.contacts.Create(ctx, submission); err != nil {
		return nil, fmt.Errorf("create submission: %w", err)
	}
	return submission, nil
}

// List returns every submission, newest first.
func (s *contactService) List(ctx context.Context) ([]model.ContactSubmission, error) {
	submissions, err := s.contacts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}

// UpdateStatus sets a submission's status. Any status may follow any other.
func (s *contactService) UpdateStatus(ctx context.Context, id uint, status string) (*model.ContactSubmission, error) {
	if !model.ValidSubmissionStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}
	if _, err := s.contacts.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("find submission: %w", err)
	}
	if err := s.contacts.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	submission, err := s.contacts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload submission: %w", err)
	}
	return submission, nil
}

// Delete removes a submission.
func (s *contactService) Delete(ctx context.Context, id uint) error {
	if _, err := s.contacts.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrSubmissionNotFound
		}
		return fmt.Errorf("find submission: %w", err)
	}
	if err := s.contacts.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	return nil
}
