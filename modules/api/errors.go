package api

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// serviceError maps a bus error onto an HTTP status. Errors cross the
// service bus as strings, so classification matches on the stable sentinel
// messages the modules emit. Anything unrecognized is logged and hidden
// behind a generic message.
func serviceError(c *fiber.Ctx, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "invalid email or password"):
		return respondError(c, fiber.StatusUnauthorized, "Invalid email or password")
	case strings.Contains(errStr, "already exists"):
		return respondError(c, fiber.StatusConflict, "User with this email already exists")
	case strings.Contains(errStr, "not found"):
		return respondError(c, fiber.StatusNotFound, clientMessage(errStr))
	case strings.Contains(errStr, "not authorized"):
		return respondError(c, fiber.StatusForbidden, clientMessage(errStr))
	case strings.Contains(errStr, "is required"),
		strings.Contains(errStr, "invalid"),
		strings.Contains(errStr, "must be"),
		strings.Contains(errStr, "cannot be"):
		return respondError(c, fiber.StatusBadRequest, clientMessage(errStr))
	default:
		log.Printf("[api] Internal error: %v", err)
		return respondError(c, fiber.StatusInternalServerError, "An internal error occurred")
	}
}

// clientMessage strips transport wrapping so the client sees the sentinel
// message itself, not the chain of contexts it traveled through. Sentinel
// messages never contain ": ".
func clientMessage(errStr string) string {
	if start := strings.LastIndex(errStr, ": "); start >= 0 {
		return errStr[start+2:]
	}
	return errStr
}
