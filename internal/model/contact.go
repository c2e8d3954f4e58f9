package model

import "time"

// Contact submission statuses. Transitions are unrestricted; any status may
// follow any other.
const (
	SubmissionStatusNew     = "new"
	SubmissionStatusRead    = "read"
	SubmissionStatusReplied = "replied"
	SubmissionStatusClosed  = "closed"
)

// ValidSubmissionStatus reports whether s is a known submission status.
func ValidSubmissionStatus(s string) bool {
	switch s {
	case SubmissionStatusNew, SubmissionStatusRead, SubmissionStatusReplied, SubmissionStatusClosed:
		return true
	}
	return false
}

// ContactSubmission is a contact-form ticket.
type ContactSubmission struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	Email     string    `json:"email" gorm:"size:255;not null;index"`
	Subject   string    `json:"subject" gorm:"size:255;not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Status    string    `json:"status" gorm:"size:20;not null;default:'new'"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
