package payroll

import (
	"context"
	"time"

	"payroll-backend/internal/database"
	"payroll-backend/internal/models"

	"gorm.io/gorm"
)

type Input struct {
	EmployeeID  uint                 `json:"employee_id"`
	BasicSalary float64              `json:"basic_salary"`
	Allowances  float64              `json:"allowances"`
	Deductions  float64              `json:"deductions"`
	TaxAmount   float64              `json:"tax_amount"`
	PaymentDate models.Date          `json:"payment_date"`
	Status      models.PayrollStatus `json:"status" validate:"omitempty,oneof=pending paid cancelled"`
}

type Store interface {
	List(ctx context.Context) ([]models.PayrollRow, error)
	Get(ctx context.Context, id uint) (*models.PayrollRow, error)
	Create(ctx context.Context, in Input) (*models.PayrollRow, error)
	Update(ctx context.Context, id uint, in Input) (*models.PayrollRow, error)
	Delete(ctx context.Context, id uint) error
	Generate(ctx context.Context, month, year int) error
	ListForMonth(ctx context.Context, month, year int) ([]models.PayrollRow, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// rows selects payroll joined with the employee name and the total computed
// by calculate_total_salary.
func rows(tx *gorm.DB) *gorm.DB {
	return tx.Table("payroll AS p").
		Select("p.*, e.first_name, e.last_name, " +
			"calculate_total_salary(p.basic_salary, p.allowances, p.deductions, p.tax_amount) AS total_salary").
		Joins("JOIN employees e ON p.employee_id = e.id")
}

func (s *gormStore) List(ctx context.Context) ([]models.PayrollRow, error) {
	var out []models.PayrollRow
	if err := rows(s.db.WithContext(ctx)).Order("p.id").Scan(&out).Error; err != nil {
		return nil, database.Translate(err)
	}
	return out, nil
}

func (s *gormStore) Get(ctx context.Context, id uint) (*models.PayrollRow, error) {
	return getRow(s.db.WithContext(ctx), id)
}

func getRow(tx *gorm.DB, id uint) (*models.PayrollRow, error) {
	var out []models.PayrollRow
	if err := rows(tx).Where("p.id = ?", id).Limit(1).Scan(&out).Error; err != nil {
		return nil, database.Translate(err)
	}
	if len(out) == 0 {
		return nil, database.ErrNotFound
	}
	return &out[0], nil
}

func (s *gormStore) Create(ctx context.Context, in Input) (*models.PayrollRow, error) {
	p := models.Payroll{
		EmployeeID:  in.EmployeeID,
		BasicSalary: in.BasicSalary,
		Allowances:  in.Allowances,
		Deductions:  in.Deductions,
		TaxAmount:   in.TaxAmount,
		PaymentDate: in.PaymentDate,
		Status:      in.Status,
	}
	if p.Status == "" {
		p.Status = models.PayrollPending
	}

	var row *models.PayrollRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&p).Error; err != nil {
			return err
		}
		var err error
		row, err = getRow(tx, p.ID)
		return err
	})
	if err != nil {
		return nil, database.Translate(err)
	}
	return row, nil
}

// Update rewrites the amounts, date and status. The employee a payroll
// record belongs to never changes.
func (s *gormStore) Update(ctx context.Context, id uint, in Input) (*models.PayrollRow, error) {
	status := in.Status
	if status == "" {
		status = models.PayrollPending
	}

	var row *models.PayrollRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Payroll{}).Where("id = ?", id).Updates(map[string]any{
			"basic_salary": in.BasicSalary,
			"allowances":   in.Allowances,
			"deductions":   in.Deductions,
			"tax_amount":   in.TaxAmount,
			"payment_date": in.PaymentDate,
			"status":       status,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return database.ErrNotFound
		}
		var err error
		row, err = getRow(tx, id)
		return err
	})
	if err != nil {
		return nil, database.Translate(err)
	}
	return row, nil
}

func (s *gormStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Payroll{}, id)
	if res.Error != nil {
		return database.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (s *gormStore) Generate(ctx context.Context, month, year int) error {
	return database.Translate(s.db.WithContext(ctx).Exec("CALL generate_monthly_payroll(?, ?)", month, year).Error)
}

func (s *gormStore) ListForMonth(ctx context.Context, month, year int) ([]models.PayrollRow, error) {
	start, end := monthBounds(month, year)

	var out []models.PayrollRow
	err := rows(s.db.WithContext(ctx)).
		Where("p.payment_date BETWEEN ? AND ?", start, end).
		Order("e.last_name").Order("e.first_name").Order("p.id").
		Scan(&out).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return out, nil
}

// monthBounds returns the first and last day of a calendar month.
func monthBounds(month, year int) (models.Date, models.Date) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return models.Date{Time: first}, models.Date{Time: last}
}
