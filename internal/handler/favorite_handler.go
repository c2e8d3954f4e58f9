package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gharbazaar/internal/middleware"
	"gharbazaar/internal/service"
)

// FavoriteHandler handles favorite endpoints.
type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

// NewFavoriteHandler creates a new favorite handler.
func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// AddFavoriteRequest represents a new favorite.
type AddFavoriteRequest struct {
	ListingID uint `json:"listing_id" validate:"required"`
}

// List godoc
// @Summary List the caller's favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Envelope
// @Router /favorites [get]
func (h *FavoriteHandler) List(c echo.Context) error {
	favorites, err := h.favoriteService.List(c.Request().Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", favorites)
}

// Add godoc
// @Summary Favorite a property
// @Tags favorites
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddFavoriteRequest true "Listing"
// @Success 201 {object} errors.Envelope
// @Router /favorites [post]
func (h *FavoriteHandler) Add(c echo.Context) error {
	var req AddFavoriteRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	favorite, err := h.favoriteService.Add(c.Request().Context(), middleware.CurrentUser(c).ID, req.ListingID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "property added to favorites", favorite)
}

// Remove godoc
// @Summary Remove a property from favorites
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param listing_id path int true "Listing ID"
// @Success 200 {object} errors.Envelope
// @Router /favorites/{listing_id} [delete]
func (h *FavoriteHandler) Remove(c echo.Context) error {
	listingID, err := paramUint(c, "listing_id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.favoriteService.Remove(c.Request().Context(), middleware.CurrentUser(c).ID, listingID); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "property removed from favorites", nil)
}

// Check godoc
// @Summary Check whether a property is favorited
// @Tags favorites
// @Produce json
// @Security BearerAuth
// @Param listing_id path int true "Listing ID"
// @Success 200 {object} errors.Envelope
// @Router /favorites/check/{listing_id} [get]
func (h *FavoriteHandler) Check(c echo.Context) error {
	listingID, err := paramUint(c, "listing_id")
	if err != nil {
		return respondError(c, err)
	}
	isFavorite, err := h.favoriteService.Check(c.Request().Context(), middleware.CurrentUser(c).ID, listingID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", echo.Map{"is_favorite": isFavorite})
}
