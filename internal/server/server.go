// Package server assembles the fiber application: error handling, the
// middleware chain and the route table.
package server

import (
	"payroll-backend/internal/adjustment"
	"payroll-backend/internal/attendance"
	"payroll-backend/internal/audit"
	"payroll-backend/internal/auth"
	"payroll-backend/internal/config"
	"payroll-backend/internal/dashboard"
	"payroll-backend/internal/employee"
	"payroll-backend/internal/employeetype"
	"payroll-backend/internal/payroll"
	"payroll-backend/internal/taxslab"
	"payroll-backend/internal/web"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Deps is everything the route table needs. Tests build it from fakes.
type Deps struct {
	Tokens        *auth.TokenService
	Users         auth.UserStore
	Employees     employee.Store
	EmployeeTypes employeetype.Store
	Payroll       payroll.Store
	Allowances    adjustment.Store
	Deductions    adjustment.Store
	Attendance    attendance.Store
	TaxSlabs      taxslab.Store
	Dashboard     dashboard.Store
	AuditLogs     audit.Store
	Audit         audit.Recorder
}

// NewDeps wires the gorm-backed stores.
func NewDeps(cfg *config.Config, db *gorm.DB) Deps {
	auditStore := audit.NewStore(db)
	return Deps{
		Tokens:        auth.NewTokenService(cfg.JWTSecret, cfg.JWTExpiresIn),
		Users:         auth.NewUserStore(db),
		Employees:     employee.NewStore(db),
		EmployeeTypes: employeetype.NewStore(db),
		Payroll:       payroll.NewStore(db),
		Allowances:    adjustment.NewStore(db, adjustment.Allowances),
		Deductions:    adjustment.NewStore(db, adjustment.Deductions),
		Attendance:    attendance.NewStore(db),
		TaxSlabs:      taxslab.NewStore(db),
		Dashboard:     dashboard.NewStore(db),
		AuditLogs:     auditStore,
		Audit:         audit.NewService(auditStore),
	}
}

func New(cfg *config.Config, d Deps) *fiber.App {
	if d.Audit == nil {
		d.Audit = audit.Nop{}
	}

	app := fiber.New(fiber.Config{
		AppName:               "payroll-backend",
		ErrorHandler:          web.ErrorHandler,
		DisableStartupMessage: true,
	})

	setupMiddlewares(app, cfg)
	registerRoutes(app, d)

	return app
}

func registerRoutes(app *fiber.App, d Deps) {
	app.Get("/", func(c *fiber.Ctx) error {
		return web.Message(c, fiber.StatusOK, "Welcome to Payroll Management System API")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	api := app.Group("/api")

	// Public. /login is the legacy path; both share one limiter.
	limitLogin := loginRateLimiter()
	login := auth.LoginHandler(d.Users, d.Tokens)
	api.Post("/auth/login", limitLogin, login)
	api.Post("/login", limitLogin, login)

	// Protected
	protected := api.Group("", auth.RequireAuth(d.Tokens))
	admin := auth.RequireRole(auth.AdminOnly...)

	protected.Get("/auth/me", auth.MeHandler(d.Users))
	protected.Get("/profile", employee.ProfileHandler(d.Employees))
	protected.Post("/auth/register", admin, auth.RegisterHandler(d.Users, d.Audit))

	employees := protected.Group("/employees")
	employees.Get("/", employee.ListEmployeesHandler(d.Employees))
	employees.Get("/:id", employee.GetEmployeeHandler(d.Employees))
	employees.Post("/", admin, employee.CreateEmployeeHandler(d.Employees, d.Audit))
	employees.Put("/:id", admin, employee.UpdateEmployeeHandler(d.Employees, d.Audit))
	employees.Delete("/:id", admin, employee.DeleteEmployeeHandler(d.Employees, d.Audit))

	types := protected.Group("/employee-types")
	types.Get("/", employeetype.ListEmployeeTypesHandler(d.EmployeeTypes))
	types.Get("/:id", employeetype.GetEmployeeTypeHandler(d.EmployeeTypes))
	types.Post("/", admin, employeetype.CreateEmployeeTypeHandler(d.EmployeeTypes, d.Audit))
	types.Put("/:id", admin, employeetype.UpdateEmployeeTypeHandler(d.EmployeeTypes, d.Audit))
	types.Delete("/:id", admin, employeetype.DeleteEmployeeTypeHandler(d.EmployeeTypes, d.Audit))

	// /generate and /export before /:id
	pr := protected.Group("/payroll")
	pr.Post("/generate", admin, payroll.GeneratePayrollHandler(d.Payroll, d.Audit))
	pr.Get("/export", admin, payroll.ExportPayrollHandler(d.Payroll))
	pr.Get("/", payroll.ListPayrollHandler(d.Payroll))
	pr.Get("/:id", payroll.GetPayrollHandler(d.Payroll))
	pr.Post("/", admin, payroll.CreatePayrollHandler(d.Payroll, d.Audit))
	pr.Put("/:id", admin, payroll.UpdatePayrollHandler(d.Payroll, d.Audit))
	pr.Delete("/:id", admin, payroll.DeletePayrollHandler(d.Payroll, d.Audit))

	registerAdjustments(protected.Group("/allowances"), admin,
		adjustment.NewHandlers(adjustment.Allowances, d.Allowances, d.Audit))
	registerAdjustments(protected.Group("/deductions"), admin,
		adjustment.NewHandlers(adjustment.Deductions, d.Deductions, d.Audit))

	att := protected.Group("/attendance")
	att.Get("/employee/:employee_id", attendance.ListEmployeeAttendanceHandler(d.Attendance))
	att.Get("/", attendance.ListAttendanceHandler(d.Attendance))
	att.Get("/:id", attendance.GetAttendanceHandler(d.Attendance))
	att.Post("/", admin, attendance.CreateAttendanceHandler(d.Attendance, d.Audit))
	att.Put("/:id", admin, attendance.UpdateAttendanceHandler(d.Attendance, d.Audit))
	att.Delete("/:id", admin, attendance.DeleteAttendanceHandler(d.Attendance, d.Audit))

	slabs := protected.Group("/tax-slabs")
	slabs.Get("/", taxslab.ListTaxSlabsHandler(d.TaxSlabs))
	slabs.Get("/:id", taxslab.GetTaxSlabHandler(d.TaxSlabs))
	slabs.Post("/", admin, taxslab.CreateTaxSlabHandler(d.TaxSlabs, d.Audit))
	slabs.Put("/:id", admin, taxslab.UpdateTaxSlabHandler(d.TaxSlabs, d.Audit))
	slabs.Delete("/:id", admin, taxslab.DeleteTaxSlabHandler(d.TaxSlabs, d.Audit))

	protected.Get("/dashboard", auth.RequireRole(auth.AnyRole...), dashboard.SummaryHandler(d.Dashboard))
	protected.Get("/audit-logs", admin, audit.ListAuditLogsHandler(d.AuditLogs))
}

func registerAdjustments(r fiber.Router, admin fiber.Handler, h *adjustment.Handlers) {
	r.Get("/", h.List())
	r.Get("/:id", h.Get())
	r.Post("/", admin, h.Create())
	r.Put("/:id", admin, h.Update())
	r.Delete("/:id", admin, h.Delete())
}
