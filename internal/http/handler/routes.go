package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"saraban/internal/http/middleware"
	"saraban/internal/service"
)

// HealthCheck reports readiness: DB connectivity only.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a bare liveness check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// RegisterRoutes attaches all HTTP routes to the Fiber app. Handlers stay
// thin; the use cases live in the service layer.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService, authSvc service.AuthService) {
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Post("/login", Login(authSvc))

	app.Get("/categories", Categories())

	// Derived views. Registered before the parameterized /docs routes so
	// the static segments win.
	app.Get("/docs/stamp/balance", StampBalance(docSvc))
	app.Get("/docs/outgoing-mail/receipts", ReceiptGroups(docSvc))
	app.Get("/docs/meeting/calendar", MeetingCalendar(docSvc))
	app.Get("/docs/:category/by-date", middleware.RequireCategory(), DateGroups(docSvc))

	// Category-scoped CRUD, the registry UI's wire contract.
	app.Get("/docs/:category", middleware.RequireCategory(), ListRecords(docSvc))
	app.Post("/docs/:category", middleware.RequireCategory(), CreateRecord(docSvc))
	app.Put("/docs/:category/:id", middleware.RequireCategory(), UpdateRecord(docSvc))
	app.Delete("/docs/:category/:id", middleware.RequireCategory(), DeleteRecord(docSvc))

	// Public attachment route.
	app.Get("/uploads/:name", ServeUpload(docSvc))
}
