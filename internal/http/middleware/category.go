package middleware

import (
	"github.com/gofiber/fiber/v2"

	"saraban/internal/registry"
)

// RequireCategory rejects requests whose :category path parameter does not
// name a registered category. Attached to the /docs routes so a typo'd
// category surfaces as a distinct 404 instead of an empty list.
func RequireCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !registry.Known(c.Params("category")) {
			return fiber.NewError(fiber.StatusNotFound, "unknown category")
		}
		return c.Next()
	}
}
