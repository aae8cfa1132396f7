package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cvds/identity-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors: a map of
// field names to messages, matching the shape validation failures produce.
type errorResponse struct {
	Errors domain.FieldErrors `json:"errors"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain error taxonomy to deterministic HTTP status codes.
//   - Renders field-keyed JSON envelopes: {"errors": {"<field>": "<message>"}}.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, fields := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Errors: fields})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, domain.FieldErrors) {
	// Validation failures arrive pre-keyed by field.
	var fe domain.FieldErrors
	if errors.As(err, &fe) {
		return http.StatusBadRequest, fe
	}

	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, domain.FieldErrors{"request": fmt.Sprintf("%v", he.Message)}
	}

	// Known domain errors → deterministic HTTP codes and field keys.
	switch {
	case errors.Is(err, domain.ErrUsernameNotFound):
		return http.StatusNotFound, domain.FieldErrors{"username": "Username not found"}
	case errors.Is(err, domain.ErrUserIDNotFound):
		return http.StatusNotFound, domain.FieldErrors{"id": "User not found"}
	case errors.Is(err, domain.ErrInvalidPassword):
		return http.StatusUnauthorized, domain.FieldErrors{"password": "Invalid password"}
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, domain.FieldErrors{"token": "Missing or invalid token"}
	case errors.Is(err, domain.ErrInsufficientPermissions):
		return http.StatusForbidden, domain.FieldErrors{"permissions": "Insufficient permissions"}
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, domain.FieldErrors{"username": "Username already taken"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, domain.FieldErrors{"server": "Internal server error"}
}
