package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gharbazaar/internal/service"
	"gharbazaar/internal/upload"
)

// AdminHandler handles admin endpoints.
type AdminHandler struct {
	adminService service.AdminService
	storage      *upload.Storage
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(adminService service.AdminService, storage *upload.Storage) *AdminHandler {
	return &AdminHandler{adminService: adminService, storage: storage}
}

// Users godoc
// @Summary List every user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Envelope
// @Router /admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	users, err := h.adminService.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", users)
}

// DashboardStats godoc
// @Summary Platform totals for the dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Envelope
// @Router /admin/dashboard-stats [get]
func (h *AdminHandler) DashboardStats(c echo.Context) error {
	stats, err := h.adminService.DashboardStats(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", stats)
}

// Properties godoc
// @Summary List every property
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Envelope
// @Router /admin/properties [get]
func (h *AdminHandler) Properties(c echo.Context) error {
	listings, err := h.adminService.ListListings(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", listings)
}

// DeleteProperty godoc
// @Summary Delete a property and its dependents
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 200 {object} errors.Envelope
// @Router /admin/properties/{id} [delete]
func (h *AdminHandler) DeleteProperty(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	listing, err := h.adminService.DeleteListing(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	for _, url := range listing.Images.URLs() {
		h.storage.Remove(url)
	}
	return respond(c, http.StatusOK, "property deleted successfully", nil)
}

// DeleteUser godoc
// @Summary Delete a user and cascade through their data
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} errors.Envelope
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := h.adminService.DeleteUser(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "user deleted successfully", nil)
}
