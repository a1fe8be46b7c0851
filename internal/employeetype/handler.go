package employeetype

import (
	"errors"

	"payroll-backend/internal/audit"
	"payroll-backend/internal/auth"
	"payroll-backend/internal/models"
	"payroll-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

const entityType = "employee_type"

// GET /api/employee-types
func ListEmployeeTypesHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		types, err := store.List(c.UserContext())
		if err != nil {
			return web.StoreError("fetching employee types", "Employee type", err)
		}
		return c.JSON(types)
	}
}

// GET /api/employee-types/:id
func GetEmployeeTypeHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		t, err := store.Get(c.UserContext(), id)
		if err != nil {
			return web.StoreError("fetching employee type", "Employee type", err)
		}
		return c.JSON(t)
	}
}

// POST /api/employee-types
func CreateEmployeeTypeHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body Input
		if err := web.Bind(c, &body); err != nil {
			return err
		}

		t, err := store.Create(c.UserContext(), body)
		if err != nil {
			return web.StoreError("creating employee type", "Employee type", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			EntityID:    t.ID,
			Action:      models.AuditActionCreate,
			Description: "created employee type " + t.Name,
			Data:        t,
		})

		return c.Status(fiber.StatusCreated).JSON(t)
	}
}

// PUT /api/employee-types/:id
func UpdateEmployeeTypeHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		var body Input
		if err := web.Bind(c, &body); err != nil {
			return err
		}

		t, err := store.Update(c.UserContext(), id, body)
		if err != nil {
			return web.StoreError("updating employee type", "Employee type", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			EntityID:    t.ID,
			Action:      models.AuditActionUpdate,
			Description: "updated employee type " + t.Name,
			Data:        t,
		})

		return c.JSON(t)
	}
}

// DELETE /api/employee-types/:id
func DeleteEmployeeTypeHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		if err := store.Delete(c.UserContext(), id); err != nil {
			if errors.Is(err, ErrInUse) {
				return fiber.NewError(fiber.StatusBadRequest, "Cannot delete employee type that is assigned to employees")
			}
			return web.StoreError("deleting employee type", "Employee type", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: "deleted employee type",
		})

		return web.Message(c, fiber.StatusOK, "Employee type deleted successfully")
	}
}
