package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"gharbazaar/internal/middleware"
	"gharbazaar/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a signup request.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// Signup godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} errors.Envelope
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	token, user, err := h.authService.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "account created successfully", echo.Map{
		"token": token,
		"user":  user,
	})
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} errors.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "login successful", echo.Map{
		"token": token,
		"user":  user,
	})
}

// AdminLogin godoc
// @Summary Log in to an admin account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} errors.Envelope
// @Router /auth/admin-login [post]
func (h *AuthHandler) AdminLogin(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	token, user, err := h.authService.AdminLogin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "login successful", echo.Map{
		"token": token,
		"user":  user,
	})
}

// Profile godoc
// @Summary Current account profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Envelope
// @Router /auth/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	return respond(c, http.StatusOK, "", middleware.CurrentUser(c))
}

// Verify godoc
// @Summary Verify the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Envelope
// @Router /auth/verify [get]
func (h *AuthHandler) Verify(c echo.Context) error {
	return respond(c, http.StatusOK, "token is valid", echo.Map{
		"user": middleware.CurrentUser(c),
	})
}

// ChangePassword godoc
// @Summary Change the account password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 200 {object} errors.Envelope
// @Router /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return respondBadRequest(c, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return respondBadRequest(c, err.Error())
	}

	user := middleware.CurrentUser(c)
	if err := h.authService.ChangePassword(c.Request().Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "password changed successfully", nil)
}
