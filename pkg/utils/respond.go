package utils

import (
	"errors"
	"net/http"

	"roadside-dispatch/internal/models"

	"github.com/labstack/echo/v4"
)

// RespondWithJSON writes a JSON payload with the given status code.
func RespondWithJSON(c echo.Context, code int, payload interface{}) error {
	return c.JSON(code, payload)
}

// RespondWithError writes a standard error payload.
func RespondWithError(c echo.Context, code int, message string) error {
	return c.JSON(code, models.ErrorResponse{Message: message})
}

// HandleServiceError maps a service error to an HTTP response. Partial
// dispatch failures are reported as 500s with an explicit message because
// some writes have already committed.
func HandleServiceError(c echo.Context, err error) error {
	var partial *models.PartialFailureError
	switch {
	case errors.As(err, &partial):
		return RespondWithError(c, http.StatusInternalServerError, partial.Error())
	case errors.Is(err, models.ErrNotFound):
		return RespondWithError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, models.ErrBadRequest):
		return RespondWithError(c, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, models.ErrConflict):
		return RespondWithError(c, http.StatusConflict, "Resource state conflict")
	case errors.Is(err, models.ErrInvalidCredentials):
		return RespondWithError(c, http.StatusUnauthorized, "Invalid username or password")
	default:
		c.Logger().Errorf("unhandled service error: %v", err)
		return RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}
