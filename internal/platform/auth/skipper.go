package auth

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// publicPaths lists URL paths that bypass authentication. These are
// infrastructure endpoints (health checks) that must be accessible without
// credentials.
var publicPaths = map[string]bool{
	"/health":    true,
	"/health/db": true,
}

// publicPrefixes lists URL path prefixes that bypass authentication. Exercise
// video search is public so the landing page can show results before sign-in.
var publicPrefixes = []string{
	"/api/v1/videos",
}

// AuthSkipper returns true for requests whose path should skip authentication.
// Wrap JWTMiddleware or DevAuthMiddleware with SkipPublic so health-check and
// video search endpoints remain accessible without a bearer token.
func AuthSkipper(c echo.Context) bool {
	path := c.Path()
	if path == "" {
		path = c.Request().URL.Path
	}
	if publicPaths[path] {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// SkipPublic wraps an auth middleware so that public paths pass through
// untouched.
func SkipPublic(mw echo.MiddlewareFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		wrapped := mw(next)
		return func(c echo.Context) error {
			if AuthSkipper(c) {
				return next(c)
			}
			return wrapped(c)
		}
	}
}
