package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cvds/identity-service/internal/core/domain"
	"github.com/cvds/identity-service/internal/core/ports"
)

const sessionContextKey = "session"

// BearerToken extracts the token from the Authorization header. A missing or
// malformed header maps to the same 401 as an invalid token.
func BearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", domain.ErrInvalidToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", domain.ErrInvalidToken
	}
	return parts[1], nil
}

// Session decodes the bearer token through the auth service, which requires
// both a valid signature and session-store registration, and injects the
// session into the request context for downstream handlers.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := BearerToken(c)
			if err != nil {
				return err
			}

			session, err := auth.DecodeSession(c.Request().Context(), token)
			if err != nil {
				return err
			}

			c.Set(sessionContextKey, session)
			return next(c)
		}
	}
}
