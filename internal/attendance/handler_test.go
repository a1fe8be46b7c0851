package attendance

import (
	"context"
	"testing"
	"time"

	"payroll-backend/internal/audit"
	"payroll-backend/internal/auth"
	"payroll-backend/internal/models"
	"payroll-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
)

func TestAttendanceRoutes(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenDB(t)
	store := NewStore(db)
	ts := auth.NewTokenService("secret", time.Hour)

	emp := models.Employee{FirstName: "Ada", LastName: "Lovelace"}
	if err := db.Create(&emp).Error; err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(ctx, Input{EmployeeID: emp.ID, Date: models.NewDate(2024, time.May, 1)}); err != nil {
		t.Fatal(err)
	}

	app := testutil.NewApp()
	g := app.Group("/api/attendance", auth.RequireAuth(ts))
	admin := auth.RequireRole(auth.AdminOnly...)
	g.Get("/employee/:employee_id", ListEmployeeAttendanceHandler(store))
	g.Get("/:id", GetAttendanceHandler(store))
	g.Post("/", admin, CreateAttendanceHandler(store, audit.Nop{}))
	g.Delete("/:id", admin, DeleteAttendanceHandler(store, audit.Nop{}))

	adminTok := testutil.Token(t, ts, 1, models.RoleAdmin)

	status, body := testutil.Do(t, app, "POST", "/api/attendance", adminTok, fiber.Map{
		"employee_id": emp.ID, "date": "2024-05-02", "check_in": "08:55:00", "check_out": "17:05:00", "status": "present",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create: %d %s", status, body)
	}
	var row map[string]any
	testutil.Decode(t, body, &row)
	if row["date"] != "2024-05-02" || row["check_in"] != "08:55:00" || row["first_name"] != "Ada" {
		t.Errorf("created = %v", row)
	}

	status, _ = testutil.Do(t, app, "POST", "/api/attendance", adminTok, fiber.Map{
		"employee_id": emp.ID, "date": "2024-05-03", "status": "sick",
	})
	if status != fiber.StatusBadRequest {
		t.Errorf("unknown status: %d", status)
	}

	status, body = testutil.Do(t, app, "GET", "/api/attendance/employee/1", testutil.Token(t, ts, 2, models.RoleEmployee), nil)
	if status != fiber.StatusOK {
		t.Fatalf("by employee: %d %s", status, body)
	}
	var rows []models.AttendanceRow
	testutil.Decode(t, body, &rows)
	if len(rows) != 2 || rows[0].Date.String() != "2024-05-02" {
		t.Errorf("by employee = %+v", rows)
	}

	status, body = testutil.Do(t, app, "DELETE", "/api/attendance/99", adminTok, nil)
	if status != fiber.StatusNotFound || testutil.Message(t, body) != "Attendance record not found" {
		t.Errorf("delete missing: %d %s", status, body)
	}
}
