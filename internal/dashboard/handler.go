package dashboard

import (
	"payroll-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

// GET /api/dashboard
func SummaryHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summary, err := store.Summary(c.UserContext())
		if err != nil {
			return web.StoreError("building dashboard", "Dashboard", err)
		}
		return c.JSON(summary)
	}
}
