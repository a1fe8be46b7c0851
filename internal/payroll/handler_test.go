package payroll

import (
	"bytes"
	"context"
	"testing"
	"time"

	"payroll-backend/internal/audit"
	"payroll-backend/internal/auth"
	"payroll-backend/internal/database"
	"payroll-backend/internal/models"
	"payroll-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type generateCall struct{ month, year int }

type fakeStore struct {
	rows      map[uint]models.PayrollRow
	nextID    uint
	generated []generateCall
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[uint]models.PayrollRow{}}
}

func total(p models.Payroll) float64 {
	return p.BasicSalary + p.Allowances - p.Deductions - p.TaxAmount
}

func (f *fakeStore) List(context.Context) ([]models.PayrollRow, error) {
	out := []models.PayrollRow{}
	for id := uint(1); id <= f.nextID; id++ {
		if r, ok := f.rows[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) Get(_ context.Context, id uint) (*models.PayrollRow, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &r, nil
}

func (f *fakeStore) Create(_ context.Context, in Input) (*models.PayrollRow, error) {
	f.nextID++
	p := models.Payroll{
		ID: f.nextID, EmployeeID: in.EmployeeID, BasicSalary: in.BasicSalary, Allowances: in.Allowances,
		Deductions: in.Deductions, TaxAmount: in.TaxAmount, PaymentDate: in.PaymentDate, Status: in.Status,
	}
	if p.Status == "" {
		p.Status = models.PayrollPending
	}
	r := models.PayrollRow{Payroll: p, FirstName: "Ada", LastName: "Lovelace", TotalSalary: total(p)}
	f.rows[p.ID] = r
	return &r, nil
}

func (f *fakeStore) Update(_ context.Context, id uint, in Input) (*models.PayrollRow, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	r.BasicSalary, r.Allowances, r.Deductions, r.TaxAmount = in.BasicSalary, in.Allowances, in.Deductions, in.TaxAmount
	r.PaymentDate, r.Status = in.PaymentDate, in.Status
	r.TotalSalary = total(r.Payroll)
	f.rows[id] = r
	return &r, nil
}

func (f *fakeStore) Delete(_ context.Context, id uint) error {
	if _, ok := f.rows[id]; !ok {
		return database.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeStore) Generate(_ context.Context, month, year int) error {
	f.generated = append(f.generated, generateCall{month, year})
	return nil
}

func (f *fakeStore) ListForMonth(_ context.Context, month, year int) ([]models.PayrollRow, error) {
	out := []models.PayrollRow{}
	for _, r := range f.rows {
		if int(r.PaymentDate.Month()) == month && r.PaymentDate.Year() == year {
			out = append(out, r)
		}
	}
	return out, nil
}

func newApp(store Store, ts *auth.TokenService) *fiber.App {
	app := testutil.NewApp()
	g := app.Group("/api/payroll", auth.RequireAuth(ts))
	admin := auth.RequireRole(auth.AdminOnly...)
	g.Post("/generate", admin, GeneratePayrollHandler(store, audit.Nop{}))
	g.Get("/export", admin, ExportPayrollHandler(store))
	g.Get("/", ListPayrollHandler(store))
	g.Get("/:id", GetPayrollHandler(store))
	g.Post("/", admin, CreatePayrollHandler(store, audit.Nop{}))
	g.Put("/:id", admin, UpdatePayrollHandler(store, audit.Nop{}))
	g.Delete("/:id", admin, DeletePayrollHandler(store, audit.Nop{}))
	return app
}

func TestPayrollRowsCarryTotal(t *testing.T) {
	ts := auth.NewTokenService("secret", time.Hour)
	app := newApp(newFakeStore(), ts)
	admin := testutil.Token(t, ts, 1, models.RoleAdmin)

	status, body := testutil.Do(t, app, "POST", "/api/payroll", admin, fiber.Map{
		"employee_id": 1, "basic_salary": 5000, "allowances": 500, "deductions": 200,
		"tax_amount": 300, "payment_date": "2024-05-31",
	})
	if status != fiber.StatusCreated {
		t.Fatalf("create: %d %s", status, body)
	}

	status, body = testutil.Do(t, app, "GET", "/api/payroll", testutil.Token(t, ts, 2, models.RoleEmployee), nil)
	if status != fiber.StatusOK {
		t.Fatalf("list: %d %s", status, body)
	}
	var rows []map[string]any
	testutil.Decode(t, body, &rows)
	if len(rows) != 1 {
		t.Fatalf("rows = %v", rows)
	}
	for _, key := range []string{"total_salary", "first_name", "last_name", "status", "payment_date"} {
		if _, ok := rows[0][key]; !ok {
			t.Errorf("row missing %q: %v", key, rows[0])
		}
	}
	if rows[0]["total_salary"] != 5000.0 || rows[0]["status"] != "pending" {
		t.Errorf("row = %v", rows[0])
	}
}

func TestPayrollStatusValidated(t *testing.T) {
	ts := auth.NewTokenService("secret", time.Hour)
	store := newFakeStore()
	app := newApp(store, ts)
	admin := testutil.Token(t, ts, 1, models.RoleAdmin)

	status, _ := testutil.Do(t, app, "POST", "/api/payroll", admin, fiber.Map{"employee_id": 1, "status": "bogus"})
	if status != fiber.StatusBadRequest {
		t.Errorf("bogus status: %d", status)
	}

	testutil.Do(t, app, "POST", "/api/payroll", admin, fiber.Map{"employee_id": 1, "basic_salary": 100})
	// any transition is accepted
	status, body := testutil.Do(t, app, "PUT", "/api/payroll/1", admin, fiber.Map{"basic_salary": 100, "status": "cancelled"})
	if status != fiber.StatusOK {
		t.Fatalf("update: %d %s", status, body)
	}
	status, _ = testutil.Do(t, app, "PUT", "/api/payroll/1", admin, fiber.Map{"basic_salary": 100, "status": "paid"})
	if status != fiber.StatusOK {
		t.Errorf("cancelled -> paid: %d", status)
	}

	status, body = testutil.Do(t, app, "DELETE", "/api/payroll/7", admin, nil)
	if status != fiber.StatusNotFound || testutil.Message(t, body) != "Payroll record not found" {
		t.Errorf("delete missing: %d %s", status, body)
	}
}

func TestGeneratePayroll(t *testing.T) {
	ts := auth.NewTokenService("secret", time.Hour)
	store := newFakeStore()
	app := newApp(store, ts)
	admin := testutil.Token(t, ts, 1, models.RoleAdmin)

	status, body := testutil.Do(t, app, "POST", "/api/payroll/generate", admin, fiber.Map{"month": 5, "year": 2024})
	if status != fiber.StatusOK || testutil.Message(t, body) != "Monthly payroll generated successfully" {
		t.Fatalf("generate: %d %s", status, body)
	}
	if len(store.generated) != 1 || store.generated[0] != (generateCall{5, 2024}) {
		t.Errorf("store calls = %v", store.generated)
	}

	for _, bad := range []fiber.Map{
		{"month": 13, "year": 2024},
		{"month": 0, "year": 2024},
		{"month": 5},
	} {
		if status, _ := testutil.Do(t, app, "POST", "/api/payroll/generate", admin, bad); status != fiber.StatusBadRequest {
			t.Errorf("generate %v: %d, want 400", bad, status)
		}
	}
	if len(store.generated) != 1 {
		t.Errorf("invalid requests reached the store: %v", store.generated)
	}

	status, _ = testutil.Do(t, app, "POST", "/api/payroll/generate", testutil.Token(t, ts, 2, models.RoleEmployee), fiber.Map{"month": 5, "year": 2024})
	if status != fiber.StatusForbidden {
		t.Errorf("generate as employee: %d", status)
	}
}

func TestExportPayroll(t *testing.T) {
	ts := auth.NewTokenService("secret", time.Hour)
	store := newFakeStore()
	app := newApp(store, ts)
	admin := testutil.Token(t, ts, 1, models.RoleAdmin)

	for _, date := range []string{"2024-05-31", "2024-05-31", "2024-04-30"} {
		testutil.Do(t, app, "POST", "/api/payroll", admin, fiber.Map{"employee_id": 1, "basic_salary": 1000, "payment_date": date})
	}

	status, body := testutil.Do(t, app, "GET", "/api/payroll/export?month=5&year=2024", admin, nil)
	if status != fiber.StatusOK {
		t.Fatalf("export: %d %s", status, body)
	}

	f, err := excelize.OpenReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("workbook rows = %d, want header + 2", len(rows))
	}
	if rows[0][8] != "Total Salary" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][9] != "2024-05-31" {
		t.Errorf("payment date cell = %q", rows[1][9])
	}

	if status, _ := testutil.Do(t, app, "GET", "/api/payroll/export?month=13&year=2024", admin, nil); status != fiber.StatusBadRequest {
		t.Errorf("bad month: %d", status)
	}
}

type brokenExportStore struct {
	*fakeStore
	err error
}

func (s brokenExportStore) ListForMonth(context.Context, int, int) ([]models.PayrollRow, error) {
	return nil, s.err
}

func TestExportPayrollStoreErrors(t *testing.T) {
	ts := auth.NewTokenService("secret", time.Hour)
	admin := testutil.Token(t, ts, 1, models.RoleAdmin)

	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{&database.Error{Sentinel: database.ErrTimeout, Cause: context.DeadlineExceeded}, fiber.StatusInternalServerError, "Server error"},
		{&database.Error{Sentinel: database.ErrNotFound, Cause: context.Canceled}, fiber.StatusNotFound, "Payroll record not found"},
	}
	for _, tc := range cases {
		app := newApp(brokenExportStore{fakeStore: newFakeStore(), err: tc.err}, ts)
		status, body := testutil.Do(t, app, "GET", "/api/payroll/export?month=5&year=2024", admin, nil)
		if status != tc.status || testutil.Message(t, body) != tc.msg {
			t.Errorf("%v: got %d %s", tc.err, status, body)
		}
	}
}
