package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gharbazaar/internal/middleware"
	"gharbazaar/internal/service"
)

// MessageHandler handles messaging endpoints.
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessageRequest represents a new message.
type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver_id" validate:"required"`
	ListingID  uint   `json:"listing_id" validate:"required"`
	Subject    string `json:"subject"`
	Message    string `json:"message" validate:"required"`
}

// Conversations godoc
// @Summary List the caller's conversations
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Envelope
// @Router /messages/conversations [get]
func (h *MessageHandler) Conversations(c echo.Context) error {
	conversations, err := h.messageService.ListConversations(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", conversations)
}

// Conversation godoc
// @Summary Read one conversation and mark it read
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param listingId path int true "Listing ID"
// @Param otherUserId path int true "Counterpart user ID"
// @Success 200 {object} errors.Envelope
// @Router /messages/conversation/{listingId}/{otherUserId} [get]
func (h *MessageHandler) Conversation(c echo.Context) error {
	listingID, err := paramUint(c, "listingId")
	if err != nil {
		return respondError(c, err)
	}
	otherUserID, err := paramUint(c, "otherUserId")
	if err != nil {
		return respondError(c, err)
	}

	messages, err := h.messageService.GetConversation(c.Request().Context(), middleware.CurrentUser(c).ID, listingID, otherUserID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", messages)
}

// List godoc
// @Summary List every message for the caller
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Envelope
// @Router /messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	messages, err := h.messageService.ListForUser(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", messages)
}

// ByListing godoc
// @Summary List a listing's messages (owner only)
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param listingId path int true "Listing ID"
// @Success 200 {object} errors.Envelope
// @Router /messages/listing/{listingId} [get]
func (h *MessageHandler) ByListing(c echo.Context) error {
	listingID, err := paramUint(c, "listingId")
	if err != nil {
		return respondError(c, err)
	}
	messages, err := h.messageService.ListForListing(c.Request().Context(), middleware.CurrentUser(c).ID, listingID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", messages)
}

// Send godoc
// @Summary Send a message
// @Tags messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SendMessageRequest true "Message"
// @Success 201 {object} errors.Envelope
// @Router /messages [post]
func (h *MessageHandler) Send(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	message, err := h.messageService.Send(c.Request().Context(), middleware.CurrentUser(c).ID, req.ReceiverID, req.ListingID, req.Subject, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "message sent successfully", message)
}

// MarkRead godoc
// @Summary Mark a message as read (receiver only)
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} errors.Envelope
// @Router /messages/{id}/read [patch]
func (h *MessageHandler) MarkRead(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.messageService.MarkRead(c.Request().Context(), middleware.CurrentUser(c).ID, id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "message marked as read", nil)
}

// Delete godoc
// @Summary Delete a message (sender only)
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} errors.Envelope
// @Router /messages/{id} [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.messageService.Delete(c.Request().Context(), middleware.CurrentUser(c).ID, id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "message deleted successfully", nil)
}
