package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"gharbazaar/internal/auth"
	apperrors "gharbazaar/internal/errors"
	"gharbazaar/internal/model"
	"gharbazaar/internal/repository"
)

const userContextKey = "current_user"

// AuthMiddleware guards routes with bearer-token authentication. Every
// request re-resolves the token's user against the users table, so a deleted
// account cannot keep using a stale token.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	users      repository.UserRepository
}

// NewAuthMiddleware creates the auth middleware.
func NewAuthMiddleware(jwtService *auth.JWTService, users repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService, users: users}
}

// RequireAuth validates the bearer token, re-fetches the user record and
// attaches it to the request context. Missing or expired tokens are 401;
// malformed or badly signed ones are 403.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return fail(c, http.StatusUnauthorized, "authentication token is required")
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if tokenString == "" {
			return fail(c, http.StatusUnauthorized, "authentication token is required")
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return fail(c, http.StatusUnauthorized, "token has expired, please log in again")
			}
			return fail(c, http.StatusForbidden, "invalid authentication token")
		}

		user, err := m.users.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fail(c, http.StatusUnauthorized, "account no longer exists")
			}
			return fail(c, http.StatusInternalServerError, "internal server error")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

// RequireAdmin allows only accounts with the admin role through. It must run
// after RequireAuth.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := CurrentUser(c)
		if user == nil {
			return fail(c, http.StatusUnauthorized, "authentication token is required")
		}
		if !user.IsAdmin() {
			return fail(c, http.StatusForbidden, apperrors.ErrNotAdmin.Error())
		}
		return next(c)
	}
}

// CurrentUser returns the authenticated user attached by RequireAuth, or nil.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

func fail(c echo.Context, status int, message string) error {
	return c.JSON(status, apperrors.Envelope{Success: false, Error: message})
}
