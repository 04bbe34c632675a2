package middleware

import (
	"github.com/labstack/echo/v4"

	"task-market.com/task-market/internal/auth"
	apperrors "task-market.com/task-market/internal/errors"
)

const identityKey = "identity"

// RequireIdentity rejects requests that cannot be resolved to a user.
func RequireIdentity(resolver auth.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := resolver.ResolveIdentity(c.Request().Context(), c.Request())
			if err != nil || userID == "" {
				return apperrors.ErrUnauthenticated
			}
			c.Set(identityKey, userID)
			return next(c)
		}
	}
}

// OptionalIdentity resolves the caller when possible and lets anonymous
// requests through.
func OptionalIdentity(resolver auth.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if userID, err := resolver.ResolveIdentity(c.Request().Context(), c.Request()); err == nil {
				c.Set(identityKey, userID)
			}
			return next(c)
		}
	}
}

// Identity returns the resolved user id, or "" for anonymous requests.
func Identity(c echo.Context) string {
	id, _ := c.Get(identityKey).(string)
	return id
}
