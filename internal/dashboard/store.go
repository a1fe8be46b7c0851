package dashboard

import (
	"context"

	"payroll-backend/internal/database"
	"payroll-backend/internal/models"

	"gorm.io/gorm"
)

const recentLimit = 5

type Summary struct {
	TotalEmployees   int64                  `json:"total_employees"`
	TotalPayroll     int64                  `json:"total_payroll"`
	TotalAttendance  int64                  `json:"total_attendance"`
	RecentPayrolls   []models.PayrollRow    `json:"recent_payrolls"`
	RecentAttendance []models.AttendanceRow `json:"recent_attendance"`
}

type Store interface {
	Summary(ctx context.Context) (*Summary, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Summary reads every figure inside one read-only transaction so the counts
// and the recent rows describe the same snapshot.
func (s *gormStore) Summary(ctx context.Context) (*Summary, error) {
	out := Summary{
		RecentPayrolls:   []models.PayrollRow{},
		RecentAttendance: []models.AttendanceRow{},
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Employee{}).Count(&out.TotalEmployees).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Payroll{}).Count(&out.TotalPayroll).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Attendance{}).Count(&out.TotalAttendance).Error; err != nil {
			return err
		}

		err := tx.Table("payroll AS p").
			Select("p.*, e.first_name, e.last_name, " +
				"calculate_total_salary(p.basic_salary, p.allowances, p.deductions, p.tax_amount) AS total_salary").
			Joins("JOIN employees e ON p.employee_id = e.id").
			Order("p.payment_date DESC NULLS LAST").Order("p.id DESC").
			Limit(recentLimit).
			Scan(&out.RecentPayrolls).Error
		if err != nil {
			return err
		}

		return tx.Table("attendance AS a").
			Select("a.*, e.first_name, e.last_name").
			Joins("JOIN employees e ON a.employee_id = e.id").
			Order("a.date DESC").Order("a.id DESC").
			Limit(recentLimit).
			Scan(&out.RecentAttendance).Error
	})
	if err != nil {
		return nil, database.Translate(err)
	}
	return &out, nil
}
