package session

import (
	"github.com/labstack/echo/v4"
)

// SessionHeader carries the session ID between the client and the server.
// The server echoes the resolved ID back so clients can persist it.
const SessionHeader = "X-Session-ID"

// Middleware resolves the session ID for the request and stores it on the
// echo context under "session_id". Requests without a header get a new
// session.
func Middleware(mgr *Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := mgr.Resolve(c.Request().Header.Get(SessionHeader))
			c.Set("session_id", id)
			c.Response().Header().Set(SessionHeader, id)
			return next(c)
		}
	}
}
