package models

import "time"

type Employee struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	FirstName      string    `gorm:"size:100;not null" json:"first_name"`
	LastName       string    `gorm:"size:100;not null" json:"last_name"`
	Email          *string   `gorm:"size:150" json:"email"`
	Phone          *string   `gorm:"size:30" json:"phone"`
	Address        *string   `json:"address"`
	Position       *string   `gorm:"size:100" json:"position"`
	Department     *string   `gorm:"size:100" json:"department"`
	HireDate       Date      `json:"hire_date"`
	Salary         float64   `gorm:"type:numeric(12,2);not null;default:0" json:"salary"`
	EmployeeTypeID *uint     `gorm:"index" json:"employee_type_id"`
	UserID         *uint     `gorm:"uniqueIndex" json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// Profile is an employee joined with the login account linked to it.
type Profile struct {
	Employee
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
