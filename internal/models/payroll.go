package models

import "time"

type PayrollStatus string

const (
	PayrollPending   PayrollStatus = "pending"
	PayrollPaid      PayrollStatus = "paid"
	PayrollCancelled PayrollStatus = "cancelled"
)

type Payroll struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	EmployeeID  uint          `gorm:"not null;index" json:"employee_id"`
	BasicSalary float64       `gorm:"type:numeric(12,2);not null;default:0" json:"basic_salary"`
	Allowances  float64       `gorm:"type:numeric(12,2);not null;default:0" json:"allowances"`
	Deductions  float64       `gorm:"type:numeric(12,2);not null;default:0" json:"deductions"`
	TaxAmount   float64       `gorm:"type:numeric(12,2);not null;default:0" json:"tax_amount"`
	PaymentDate Date          `json:"payment_date"`
	Status      PayrollStatus `gorm:"size:20;not null;default:pending" json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (Payroll) TableName() string {
	return "payroll"
}

// PayrollRow is a payroll record as read back: joined with the employee's
// name and carrying the store-computed total.
type PayrollRow struct {
	Payroll
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	TotalSalary float64 `json:"total_salary"`
}
