package models

import "gorm.io/datatypes"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

type Attendance struct {
	ID         uint             `gorm:"primaryKey" json:"id"`
	EmployeeID uint             `gorm:"not null;index" json:"employee_id"`
	Date       Date             `gorm:"not null" json:"date"`
	CheckIn    *datatypes.Time  `json:"check_in"`
	CheckOut   *datatypes.Time  `json:"check_out"`
	Status     AttendanceStatus `gorm:"size:20;not null;default:present" json:"status"`
}

func (Attendance) TableName() string {
	return "attendance"
}

type AttendanceRow struct {
	Attendance
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
