package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gharbazaar/internal/service"
)

// ContactHandler handles contact-form endpoints.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// ContactRequest represents a contact-form submission.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// UpdateStatusRequest represents a submission status change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Submit godoc
// @Summary Submit the contact form
// @Tags contact
// @Accept json
// @Produce json
// @Param request body ContactRequest true "Submission"
// @Success 201 {object} errors.Envelope
// @Router /contact/submit [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	submission, err := h.contactService.Submit(c.Request().Context(), req.Name, req.Email, req.Subject, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "message received, we will get back to you soon", submission)
}

// List godoc
// @Summary List contact submissions
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Envelope
// @Router /contact/submissions [get]
func (h *ContactHandler) List(c echo.Context) error {
	submissions, err := h.contactService.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", submissions)
}

// UpdateStatus godoc
// @Summary Update a submission's status
// @Tags contact
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Param request body UpdateStatusRequest true "Status"
// @Success 200 {object} errors.Envelope
// @Router /contact/submissions/{id}/status [put]
func (h *ContactHandler) UpdateStatus(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	submission, err := h.contactService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "status updated successfully", submission)
}

// Delete godoc
// @Summary Delete a submission
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path int true "Submission ID"
// @Success 200 {object} errors.Envelope
// @Router /contact/submissions/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.contactService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "submission deleted successfully", nil)
}
