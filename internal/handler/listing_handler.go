package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "gharbazaar/internal/errors"
	"gharbazaar/internal/middleware"
	"gharbazaar/internal/service"
	"gharbazaar/internal/upload"
)

// ListingHandler handles property listing endpoints.
type ListingHandler struct {
	listingService service.ListingService
	storage        *upload.Storage
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(listingService service.ListingService, storage *upload.Storage) *ListingHandler {
	return &ListingHandler{listingService: listingService, storage: storage}
}

// listingForm carries the multipart fields of a create/update request.
// Image files arrive separately under the "images" form key.
type listingForm struct {
	Title           string   `form:"title" validate:"required"`
	Description     string   `form:"description"`
	PropertyType    string   `form:"property_type" validate:"required"`
	Purpose         string   `form:"purpose" validate:"required,oneof=sale rent"`
	Price           string   `form:"price" validate:"required"`
	Location        string   `form:"location" validate:"required"`
	Area            string   `form:"area"`
	PhoneNumber     string   `form:"phone_number"`
	Latitude        *float64 `form:"latitude"`
	Longitude       *float64 `form:"longitude"`
	ExistingImages  string   `form:"existingImages"`
	CoverImageIndex *int     `form:"coverImageIndex"`
}

func (h *ListingHandler) bindForm(c echo.Context) (*service.ListingInput, error) {
	var form listingForm
	if err := c.Bind(&form); err != nil {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&form); err != nil {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil || price.IsNegative() {
		return nil, apperrors.NewHTTPError(http.StatusBadRequest, "invalid price")
	}

	input := &service.ListingInput{
		Title:              form.Title,
		Description:        form.Description,
		PropertyType:       form.PropertyType,
		Purpose:            form.Purpose,
		Price:              price,
		Location:           form.Location,
		Area:               form.Area,
		PhoneNumber:        form.PhoneNumber,
		Latitude:           form.Latitude,
		Longitude:          form.Longitude,
		ExistingImagesJSON: form.ExistingImages,
		CoverImageIndex:    form.CoverImageIndex,
	}

	// Uploads are optional; a bare form post has no multipart reader.
	mf, err := c.MultipartForm()
	if err != nil {
		return input, nil
	}
	files := mf.File["images"]
	if len(files) > upload.MaxImages {
		return nil, apperrors.ErrTooManyImages
	}
	urls, err := h.storage.SaveImages(files)
	if err != nil {
		return nil, err
	}
	input.NewImageURLs = urls
	return input, nil
}

// List godoc
// @Summary List properties
// @Tags properties
// @Produce json
// @Param limit query int false "Maximum results"
// @Success 200 {object} errors.Envelope
// @Router /properties [get]
func (h *ListingHandler) List(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return respondBadRequest(c, "invalid limit parameter")
		}
		limit = parsed
	}

	listings, err := h.listingService.List(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", listings)
}

// Get godoc
// @Summary Get a property
// @Tags properties
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} errors.Envelope
// @Router /properties/{id} [get]
func (h *ListingHandler) Get(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	listing, err := h.listingService.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", listing)
}

// ByUser godoc
// @Summary List a user's properties
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} errors.Envelope
// @Router /properties/user/{userId} [get]
func (h *ListingHandler) ByUser(c echo.Context) error {
	userID, err := paramUint(c, "userId")
	if err != nil {
		return respondError(c, err)
	}
	listings, err := h.listingService.ListByUser(c.Request().Context(), middleware.CurrentUser(c), userID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", listings)
}

// MyListings godoc
// @Summary List the caller's properties
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Envelope
// @Router /properties/my-listings [get]
func (h *ListingHandler) MyListings(c echo.Context) error {
	user := middleware.CurrentUser(c)
	listings, err := h.listingService.ListByUser(c.Request().Context(), user, user.ID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "", listings)
}

// Create godoc
// @Summary Create a property
// @Tags properties
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} errors.Envelope
// @Router /properties [post]
func (h *ListingHandler) Create(c echo.Context) error {
	input, err := h.bindForm(c)
	if err != nil {
		return respondError(c, err)
	}
	listing, err := h.listingService.Create(c.Request().Context(), middleware.CurrentUser(c).ID, *input)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "property created successfully", listing)
}

// Update godoc
// @Summary Update a property
// @Tags properties
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 200 {object} errors.Envelope
// @Router /properties/{id} [put]
func (h *ListingHandler) Update(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	input, err := h.bindForm(c)
	if err != nil {
		return respondError(c, err)
	}
	listing, err := h.listingService.Update(c.Request().Context(), middleware.CurrentUser(c), id, *input)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "property updated successfully", listing)
}

// Delete godoc
// @Summary Delete a property
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 200 {object} errors.Envelope
// @Router /properties/{id} [delete]
func (h *ListingHandler) Delete(c echo.Context) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	listing, err := h.listingService.Delete(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return respondError(c, err)
	}
	for _, url := range listing.Images.URLs() {
		h.storage.Remove(url)
	}
	return respond(c, http.StatusOK, "property deleted successfully", nil)
}
