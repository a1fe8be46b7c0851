package payroll

import (
	"fmt"

	"payroll-backend/internal/audit"
	"payroll-backend/internal/auth"
	"payroll-backend/internal/models"
	"payroll-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

const entityType = "payroll"

type GenerateRequest struct {
	Month int `json:"month" validate:"required,min=1,max=12"`
	Year  int `json:"year" validate:"required,gte=1"`
}

// GET /api/payroll
func ListPayrollHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := store.List(c.UserContext())
		if err != nil {
			return web.StoreError("fetching payroll records", "Payroll record", err)
		}
		return c.JSON(rows)
	}
}

// GET /api/payroll/:id
func GetPayrollHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		row, err := store.Get(c.UserContext(), id)
		if err != nil {
			return web.StoreError("fetching payroll record", "Payroll record", err)
		}
		return c.JSON(row)
	}
}

// POST /api/payroll
func CreatePayrollHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body Input
		if err := web.Bind(c, &body); err != nil {
			return err
		}
		if err := web.Validate(&body); err != nil {
			return err
		}

		row, err := store.Create(c.UserContext(), body)
		if err != nil {
			return web.StoreError("creating payroll record", "Payroll record", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			EntityID:    row.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("created payroll record for employee #%d", row.EmployeeID),
			Data:        row,
		})

		return c.Status(fiber.StatusCreated).JSON(row)
	}
}

// PUT /api/payroll/:id
func UpdatePayrollHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		var body Input
		if err := web.Bind(c, &body); err != nil {
			return err
		}
		if err := web.Validate(&body); err != nil {
			return err
		}

		row, err := store.Update(c.UserContext(), id, body)
		if err != nil {
			return web.StoreError("updating payroll record", "Payroll record", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			EntityID:    row.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("updated payroll record #%d (%s)", row.ID, row.Status),
			Data:        row,
		})

		return c.JSON(row)
	}
}

// DELETE /api/payroll/:id
func DeletePayrollHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		if err := store.Delete(c.UserContext(), id); err != nil {
			return web.StoreError("deleting payroll record", "Payroll record", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("deleted payroll record #%d", id),
		})

		return web.Message(c, fiber.StatusOK, "Payroll record deleted successfully")
	}
}

// POST /api/payroll/generate
func GeneratePayrollHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body GenerateRequest
		if err := web.Bind(c, &body); err != nil {
			return err
		}
		if err := web.Validate(&body); err != nil {
			return err
		}

		if err := store.Generate(c.UserContext(), body.Month, body.Year); err != nil {
			return web.StoreError("generating payroll", "Payroll record", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			Action:      models.AuditActionGenerate,
			Description: fmt.Sprintf("generated payroll for %04d-%02d", body.Year, body.Month),
			Data:        body,
		})

		return web.Message(c, fiber.StatusOK, "Monthly payroll generated successfully")
	}
}
