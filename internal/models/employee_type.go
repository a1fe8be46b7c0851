package models

import "time"

type EmployeeType struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Description  *string   `json:"description"`
	BaseSalary   float64   `gorm:"type:numeric(12,2);not null;default:0" json:"base_salary"`
	WorkingHours float64   `gorm:"type:numeric(5,2);not null;default:0" json:"working_hours"`
	Benefits     *string   `json:"benefits"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
