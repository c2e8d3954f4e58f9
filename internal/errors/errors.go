package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user record is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrListingNotFound is returned when a listing is not found.
	ErrListingNotFound = errors.New("property not found")
	// ErrMessageNotFound is returned when a message is not found.
	ErrMessageNotFound = errors.New("message not found")
	// ErrReviewNotFound is returned when a review is not found.
	ErrReviewNotFound = errors.New("review not found")
	// ErrFavoriteNotFound is returned when a favorite is not found.
	ErrFavoriteNotFound = errors.New("favorite not found")
	// ErrSubmissionNotFound is returned when a contact submission is not found.
	ErrSubmissionNotFound = errors.New("contact submission not found")
	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrWrongPassword is returned when the current password does not match.
	ErrWrongPassword = errors.New("current password is incorrect")
	// ErrNotAdmin is returned when a non-admin account hits an admin route.
	ErrNotAdmin = errors.New("admin access required")
	// ErrForbidden is returned when the caller lacks ownership of a resource.
	ErrForbidden = errors.New("you do not have permission to access this resource")
	// ErrOwnListingReview is returned when an owner reviews their own listing.
	ErrOwnListingReview = errors.New("you cannot review your own property")
	// ErrInvalidRating is returned when a rating falls outside 1-5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrSelfMessage is returned when sender and receiver are the same user.
	ErrSelfMessage = errors.New("you cannot send a message to yourself")
	// ErrAlreadyFavorite is returned when a listing is favorited twice.
	ErrAlreadyFavorite = errors.New("property is already in favorites")
	// ErrInvalidStatus is returned for an unknown contact submission status.
	ErrInvalidStatus = errors.New("invalid submission status")
	// ErrTooManyImages is returned when an upload exceeds the image limit.
	ErrTooManyImages = errors.New("a maximum of 10 images is allowed")
)

// Envelope is the uniform response wrapper used by every endpoint.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so raw database messages never reach the client.
func MapErrorToHTTP(err error) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrListingNotFound),
		errors.Is(err, ErrMessageNotFound),
		errors.Is(err, ErrReviewNotFound),
		errors.Is(err, ErrFavoriteNotFound),
		errors.Is(err, ErrSubmissionNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrOwnListingReview),
		errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrSelfMessage),
		errors.Is(err, ErrAlreadyFavorite),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrTooManyImages):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrWrongPassword):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrNotAdmin), errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
