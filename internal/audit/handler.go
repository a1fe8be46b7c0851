package audit

import (
	"strconv"

	"payroll-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// GET /api/audit-logs?entity_type=employee&entity_id=1&user_id=1&limit=50
func ListAuditLogsHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := Filter{
			EntityType: c.Query("entity_type"),
			EntityID:   queryUint(c, "entity_id"),
			UserID:     queryUint(c, "user_id"),
			Limit:      defaultListLimit,
		}

		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid limit")
			}
			f.Limit = min(n, maxListLimit)
		}

		logs, err := store.List(c.UserContext(), f)
		if err != nil {
			return web.StoreError("listing audit logs", "Audit log", err)
		}
		return c.JSON(logs)
	}
}

func queryUint(c *fiber.Ctx, key string) uint {
	n, err := strconv.ParseInt(c.Query(key), 10, 32)
	if err != nil || n < 0 {
		return 0
	}
	return uint(n)
}
