package employeetype

import (
	"context"
	"testing"
	"time"

	"payroll-backend/internal/audit"
	"payroll-backend/internal/auth"
	"payroll-backend/internal/database"
	"payroll-backend/internal/models"
	"payroll-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
)

type fakeStore struct {
	types    map[uint]models.EmployeeType
	assigned map[uint]int
	nextID   uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{types: map[uint]models.EmployeeType{}, assigned: map[uint]int{}}
}

func (f *fakeStore) List(context.Context) ([]models.EmployeeType, error) {
	out := []models.EmployeeType{}
	for _, t := range f.types {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id uint) (*models.EmployeeType, error) {
	t, ok := f.types[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &t, nil
}

func (f *fakeStore) Create(_ context.Context, in Input) (*models.EmployeeType, error) {
	f.nextID++
	t := models.EmployeeType{ID: f.nextID, Name: in.Name, Description: in.Description, BaseSalary: deref(in.BaseSalary), WorkingHours: deref(in.WorkingHours)}
	f.types[t.ID] = t
	return &t, nil
}

func (f *fakeStore) Update(_ context.Context, id uint, in Input) (*models.EmployeeType, error) {
	if _, ok := f.types[id]; !ok {
		return nil, database.ErrNotFound
	}
	t := models.EmployeeType{ID: id, Name: in.Name, BaseSalary: deref(in.BaseSalary), WorkingHours: deref(in.WorkingHours)}
	f.types[id] = t
	return &t, nil
}

func (f *fakeStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.types[id]; !ok {
		return database.ErrNotFound
	}
	if f.assigned[id] > 0 {
		return ErrInUse
	}
	delete(f.types, id)
	return nil
}

func TestEmployeeTypeLifecycle(t *testing.T) {
	ts := auth.NewTokenService("secret", time.Hour)
	store := newFakeStore()

	app := testutil.NewApp()
	g := app.Group("/api/employee-types", auth.RequireAuth(ts))
	admin := auth.RequireRole(auth.AdminOnly...)
	g.Get("/:id", GetEmployeeTypeHandler(store))
	g.Post("/", admin, CreateEmployeeTypeHandler(store, audit.Nop{}))
	g.Put("/:id", admin, UpdateEmployeeTypeHandler(store, audit.Nop{}))
	g.Delete("/:id", admin, DeleteEmployeeTypeHandler(store, audit.Nop{}))

	tok := testutil.Token(t, ts, 1, models.RoleAdmin)

	status, body := testutil.Do(t, app, "POST", "/api/employee-types", tok,
		fiber.Map{"name": "Manager", "base_salary": 5000, "working_hours": 40})
	if status != fiber.StatusCreated {
		t.Fatalf("create: %d %s", status, body)
	}
	var created models.EmployeeType
	testutil.Decode(t, body, &created)
	if created.ID == 0 || created.Name != "Manager" || created.BaseSalary != 5000 {
		t.Errorf("created = %+v", created)
	}

	store.assigned[created.ID] = 1
	status, body = testutil.Do(t, app, "DELETE", "/api/employee-types/1", tok, nil)
	if status != fiber.StatusBadRequest || testutil.Message(t, body) != "Cannot delete employee type that is assigned to employees" {
		t.Errorf("delete in use: %d %s", status, body)
	}

	store.assigned[created.ID] = 0
	status, body = testutil.Do(t, app, "DELETE", "/api/employee-types/1", tok, nil)
	if status != fiber.StatusOK || testutil.Message(t, body) != "Employee type deleted successfully" {
		t.Errorf("delete: %d %s", status, body)
	}

	status, body = testutil.Do(t, app, "GET", "/api/employee-types/1", tok, nil)
	if status != fiber.StatusNotFound || testutil.Message(t, body) != "Employee type not found" {
		t.Errorf("get deleted: %d %s", status, body)
	}

	status, _ = testutil.Do(t, app, "PUT", "/api/employee-types/abc", tok, fiber.Map{"name": "x"})
	if status != fiber.StatusBadRequest {
		t.Errorf("non-numeric id: %d", status)
	}
}
