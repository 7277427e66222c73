// Package middleware provides HTTP middleware for facilitycheck.
// This file resolves the acting user's identity from the X-User-Id header.
package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// ActorIDKey is the Locals key under which the resolved actor ID is stored.
const ActorIDKey = "actor_id"

// ActorHeader is the request header carrying the caller's claimed user ID.
const ActorHeader = "X-User-Id"

// ActorContext parses the X-User-Id header into a *int64 stored in Locals.
// An absent or malformed header stores nil: the caller claimed no identity,
// and downstream self-protection checks are skipped for it.
//
// The header is trusted as-is. Identity here feeds business rules, not
// authorization.
func ActorContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var actorID *int64

		if raw := c.Get(ActorHeader); raw != "" {
			if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
				actorID = &id
			}
		}

		c.Locals(ActorIDKey, actorID)
		return c.Next()
	}
}

// ActorID retrieves the actor pointer stored by ActorContext. Returns nil
// when the middleware did not run or no identity was claimed.
func ActorID(c *fiber.Ctx) *int64 {
	if id, ok := c.Locals(ActorIDKey).(*int64); ok {
		return id
	}
	return nil
}
