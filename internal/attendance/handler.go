package attendance

import (
	"fmt"

	"payroll-backend/internal/audit"
	"payroll-backend/internal/auth"
	"payroll-backend/internal/models"
	"payroll-backend/internal/web"

	"github.com/gofiber/fiber/v2"
)

const entityType = "attendance"

// GET /api/attendance
func ListAttendanceHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := store.List(c.UserContext())
		if err != nil {
			return web.StoreError("fetching attendance records", "Attendance record", err)
		}
		return c.JSON(out)
	}
}

// GET /api/attendance/employee/:employee_id
func ListEmployeeAttendanceHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		employeeID, err := web.ParseID(c, "employee_id")
		if err != nil {
			return err
		}

		out, err := store.ListByEmployee(c.UserContext(), employeeID)
		if err != nil {
			return web.StoreError("fetching employee attendance", "Attendance record", err)
		}
		return c.JSON(out)
	}
}

// GET /api/attendance/:id
func GetAttendanceHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		row, err := store.Get(c.UserContext(), id)
		if err != nil {
			return web.StoreError("fetching attendance record", "Attendance record", err)
		}
		return c.JSON(row)
	}
}

// POST /api/attendance
func CreateAttendanceHandler(store Store, rec audit.Recorder) fiber.Handler {
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
			return web.StoreError("creating attendance record", "Attendance record", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			EntityID:    row.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("recorded %s for employee #%d on %s", row.Status, row.EmployeeID, row.Date),
			Data:        row,
		})

		return c.Status(fiber.StatusCreated).JSON(row)
	}
}

// PUT /api/attendance/:id
func UpdateAttendanceHandler(store Store, rec audit.Recorder) fiber.Handler {
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
			return web.StoreError("updating attendance record", "Attendance record", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			EntityID:    row.ID,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("updated attendance #%d", row.ID),
			Data:        row,
		})

		return c.JSON(row)
	}
}

// DELETE /api/attendance/:id
func DeleteAttendanceHandler(store Store, rec audit.Recorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := web.ParseID(c, "id")
		if err != nil {
			return err
		}

		if err := store.Delete(c.UserContext(), id); err != nil {
			return web.StoreError("deleting attendance record", "Attendance record", err)
		}

		rec.Record(c.UserContext(), auth.ActorFrom(c), audit.Entry{
			EntityType:  entityType,
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("deleted attendance #%d", id),
		})

		return web.Message(c, fiber.StatusOK, "Attendance record deleted successfully")
	}
}
