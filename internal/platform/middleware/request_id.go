package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestIDHeader is the header used to propagate request IDs.
const RequestIDHeader = "X-Request-ID"

// requestIDContextKey is the echo context key holding the request ID.
// Logger and Recovery read it back when emitting their events.
const requestIDContextKey = "request_id"

// RequestID assigns a request ID to every request. An incoming X-Request-ID
// header is preserved so IDs propagate across services; otherwise a new UUID
// is generated. The ID is stored on the echo context under "request_id" and
// echoed back in the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			c.Set(requestIDContextKey, rid)
			c.Response().Header().Set(RequestIDHeader, rid)
			return next(c)
		}
	}
}
