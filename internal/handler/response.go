package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "gharbazaar/internal/errors"
)

// respond writes the success envelope shared by every endpoint.
func respond(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, apperrors.Envelope{Success: true, Message: message, Data: data})
}

// respondError maps err to its HTTP status and writes the failure envelope.
// Unexpected errors are logged and reach the client as a generic message.
func respondError(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	if he.StatusCode == http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	return c.JSON(he.StatusCode, apperrors.Envelope{Success: false, Error: he.Message})
}

// respondBadRequest writes a 400 failure envelope.
func respondBadRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, apperrors.Envelope{Success: false, Error: message})
}

// paramUint parses a numeric path parameter.
func paramUint(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperrors.NewHTTPError(http.StatusBadRequest, "invalid "+name+" parameter")
	}
	return uint(v), nil
}
