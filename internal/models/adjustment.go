package models

// Adjustment is a line item attached to a payroll record. Allowances and
// deductions share this shape and live in separate tables.
type Adjustment struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Type        string  `gorm:"size:100;not null" json:"type"`
	Amount      float64 `gorm:"type:numeric(12,2);not null;default:0" json:"amount"`
	Description *string `json:"description"`
	PayrollID   *uint   `gorm:"index" json:"payroll_id"`
}
