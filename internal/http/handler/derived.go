package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"saraban/internal/derive"
	"saraban/internal/registry"
	"saraban/internal/service"
)

// The derived-view endpoints recompute their aggregate from the full
// category list on every call. Nothing here is cached or persisted: the
// flat record list stays the single source of truth.

// StampBalance returns the stamp-duty running balance.
func StampBalance(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := svc.List(c.UserContext(), registry.Stamp)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		}
		return c.JSON(derive.StampBalance(recs))
	}
}

// ReceiptGroups returns outgoing mail grouped by receipt number.
func ReceiptGroups(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := svc.List(c.UserContext(), registry.OutgoingMail)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		}
		return c.JSON(derive.GroupReceipts(recs))
	}
}

// DateGroups returns a category's records bucketed by receive date.
func DateGroups(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		recs, err := svc.List(c.UserContext(), c.Params("category"))
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		}
		return c.JSON(derive.GroupByReceiveDate(recs))
	}
}

// MeetingCalendar returns the month grid of room bookings. Defaults to the
// current month when year/month query params are absent.
func MeetingCalendar(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		now := time.Now()
		year, err := strconv.Atoi(c.Query("year", strconv.Itoa(now.Year())))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_YEAR", "invalid year")
		}
		month, err := strconv.Atoi(c.Query("month", strconv.Itoa(int(now.Month()))))
		if err != nil || month < 1 || month > 12 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_MONTH", "invalid month")
		}

		recs, err := svc.List(c.UserContext(), registry.Meeting)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		}
		return c.JSON(derive.MonthCalendar(recs, year, time.Month(month)))
	}
}

// Categories returns the static menu the home grid renders.
func Categories() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(registry.Menus)
	}
}
