package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/cvds/identity-service/internal/core/domain"
)

// sessionContextKey is where the session middleware stores the decoded
// session for downstream handlers.
const sessionContextKey = "session"

// ctxSession extracts the session injected by the middleware. A missing or
// mistyped value means the route was registered without the middleware;
// fail closed with the same 401 an invalid token gets.
func ctxSession(c echo.Context) (*domain.Session, error) {
	session, ok := c.Get(sessionContextKey).(*domain.Session)
	if !ok || session == nil {
		return nil, domain.ErrInvalidToken
	}
	return session, nil
}
