package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gharbazaar/internal/middleware"
	"gharbazaar/internal/service"
)

// ReviewHandler handles review endpoints.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// UpsertReviewRequest represents a review submission. Submitting again for
// the same listing replaces the caller's previous review.
type UpsertReviewRequest struct {
	ListingID  uint   `json:"listing_id" validate:"required"`
	Rating     int    `json:"rating" validate:"required"`
	ReviewText string `json:"review_text"`
}

// ByListing godoc
// @Summary List a property's reviews
// @Tags reviews
// @Produce json
// @Param listing_id path int true "Listing ID"
// @Success 200 {object} errors.Envelope
// @Router /reviews/listing/{listing_id} [get]
func (h *ReviewHandler) ByListing(c echo.Context) error {
	listingID, err := paramUint(c, "listing_id")
	if err != nil {
		return respondError(c, err)
	}
	reviews, err := h.reviewService.ListForListing(c.Request().Context(), listingID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", reviews)
}

// Upsert godoc
// @Summary Create or replace the caller's review
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpsertReviewRequest true "Review"
// @Success 200 {object} errors.Envelope
// @Success 201 {object} errors.Envelope
// @Router /reviews [post]
func (h *ReviewHandler) Upsert(c echo.Context) error {
	var req UpsertReviewRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	review, created, err := h.reviewService.Upsert(c.Request().Context(), middleware.CurrentUser(c).ID, req.ListingID, req.Rating, req.ReviewText)
	if err != nil {
		return respondError(c, err)
	}
	if created {
		return respond(c, http.StatusCreated, "review submitted successfully", review)
	}
	return respond(c, http.StatusOK, "review updated successfully", review)
}

// UserReview godoc
// @Summary Get the caller's review of a property
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param listing_id path int true "Listing ID"
// @Success 200 {object} errors.Envelope
// @Router /reviews/user/{listing_id} [get]
func (h *ReviewHandler) UserReview(c echo.Context) error {
	listingID, err := paramUint(c, "listing_id")
	if err != nil {
		return respondError(c, err)
	}
	review, err := h.reviewService.GetUserReview(c.Request().Context(), middleware.CurrentUser(c).ID, listingID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", review)
}

// Delete godoc
// @Summary Delete the caller's review of a property
// @Tags reviews
// @Produce json
// @Security BearerAuth
// @Param listing_id path int true "Listing ID"
// @Success 200 {object} errors.Envelope
// @Router /reviews/{listing_id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	listingID, err := paramUint(c, "listing_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.reviewService.Delete(c.Request().Context(), middleware.CurrentUser(c).ID, listingID); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "review deleted successfully", nil)
}
