// Package testutil holds helpers shared by handler and store tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"payroll-backend/internal/models"
	"payroll-backend/internal/web"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// OpenDB returns a fresh in-memory SQLite database with every table migrated.
// Postgres-only routines (add_employee, calculate_total_salary, ...) are not
// available.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&models.User{},
		&models.EmployeeType{},
		&models.Employee{},
		&models.Payroll{},
		&models.Attendance{},
		&models.TaxSlab{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	for _, table := range []string{"allowances", "deductions"} {
		if err := db.Table(table).AutoMigrate(&models.Adjustment{}); err != nil {
			t.Fatalf("automigrate %s: %v", table, err)
		}
	}
	return db
}

// NewApp returns a fiber app rendering errors the way the server does.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler})
}

type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

func Token(t testing.TB, issuer TokenIssuer, id uint, role models.Role) string {
	t.Helper()
	tok, err := issuer.Issue(&models.User{ID: id, Username: string(role) + "-user", Role: role})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

// Do sends a request through app and returns the status and raw body.
// body is JSON encoded unless it is already a string.
func Do(t testing.TB, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}

// Message extracts the "message" field of an error or status body.
func Message(t testing.TB, raw []byte) string {
	t.Helper()
	var m struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("decode message from %q: %v", raw, err)
	}
	return m.Message
}

func Decode(t testing.TB, raw []byte, dst any) {
	t.Helper()
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
}

