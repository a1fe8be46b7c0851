package payroll

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"payroll-backend/internal/models"
	"payroll-backend/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Payroll"

var exportHeaders = []string{
	"ID", "Employee ID", "First Name", "Last Name", "Basic Salary",
	"Allowances", "Deductions", "Tax", "Total Salary", "Payment Date", "Status",
}

// WriteWorkbook renders payroll rows as a single-sheet xlsx workbook with a
// header row followed by one row per record.
func WriteWorkbook(w io.Writer, rows []models.PayrollRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return err
	}

	header := make([]any, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []any{
			r.ID, r.EmployeeID, r.FirstName, r.LastName, r.BasicSalary,
			r.Allowances, r.Deductions, r.TaxAmount, r.TotalSalary, r.PaymentDate.String(), string(r.Status),
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return err
		}
	}

	if err := f.SetPanes(exportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

// GET /api/payroll/export?month=5&year=2024
func ExportPayrollHandler(store Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		month, err := strconv.Atoi(c.Query("month"))
		if err != nil || month < 1 || month > 12 {
			return fiber.NewError(fiber.StatusBadRequest, "month must be between 1 and 12")
		}
		year, err := strconv.Atoi(c.Query("year"))
		if err != nil || year < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "year must be a positive number")
		}

		rows, err := store.ListForMonth(c.UserContext(), month, year)
		if err != nil {
			return web.StoreError("exporting payroll", "Payroll record", err)
		}

		var buf bytes.Buffer
		if err := WriteWorkbook(&buf, rows); err != nil {
			return fmt.Errorf("render payroll workbook: %w", err)
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Attachment(fmt.Sprintf("payroll-%04d-%02d.xlsx", year, month))
		return c.Send(buf.Bytes())
	}
}
