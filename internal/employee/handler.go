package employee

import (
	"errors"
	"fmt"

	"payroll-backend/internal/audit"
	"payroll-backend/internal/auth"
	"payroll-backend/internal/database"
	"payroll-backend/internal/models"
	"payroll-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

const entityType = "employee"

// GET /api/employees
func ListEmployeesHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		employees, err := store.List(c.UserContext())
		if err != nil {
			return web.StoreError("fetching employees", "Employee", err)
		}
		return c.JSON(employees)
	}
}

// GET /api/employees/:id
func GetEmployeeHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		e, err := store.Get(c.UserContext(), id)
		if err != nil {
			return web.StoreError("fetching employee", "Employee", err)
		}
		return c.JSON(e)
	}
}

// POST /api/employees
func CreateEmployeeHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body Input
		if err := web.Bind(c, &body); err != nil {
			return err
		}

		e, err := store.Create(c.UserContext(), body)
		if err != nil {
			return web.StoreError("creating employee", "Employee", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			EntityID:    e.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("created employee %s", e.FullName()),
			Data:        e,
		})

		return c.Status(fiber.StatusCreated).JSON(e)
	}
}

// PUT /api/employees/:id
func UpdateEmployeeHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		var body Input
		if err := web.Bind(c, &body); err != nil {
			return err
		}

		e, err := store.Update(c.UserContext(), id, body)
		if err != nil {
			return web.StoreError("updating employee", "Employee", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			EntityID:    e.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("updated employee %s", e.FullName()),
			Data:        e,
		})

		return c.JSON(e)
	}
}

// DELETE /api/employees/:id
func DeleteEmployeeHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		if err := store.Delete(c.UserContext(), id); err != nil {
			return web.StoreError("deleting employee", "Employee", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("deleted employee #%d", id),
		})

		return web.Message(c, fiber.StatusOK, "Employee deleted successfully")
	}
}

// GET /api/profile
// The employee record linked to the caller's login account.
func ProfileHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := auth.ClaimsFrom(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
		}

		p, err := store.GetByUserID(c.UserContext(), claims.ID)
		if errors.Is(err, database.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Profile not found")
		}
		if err != nil {
			return web.StoreError("fetching profile", "Profile", err)
		}
		return c.JSON(p)
	}
}
