package attendance

import (
	"context"

	"payroll-backend/internal/database"
	"payroll-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Input struct {
	EmployeeID uint                    `json:"employee_id"`
	Date       models.Date             `json:"date"`
	CheckIn    *datatypes.Time         `json:"check_in"`
	CheckOut   *datatypes.Time         `json:"check_out"`
	Status     models.AttendanceStatus `json:"status" validate:"omitempty,oneof=present absent late"`
}

type Store interface {
	List(ctx context.Context) ([]models.AttendanceRow, error)
	ListByEmployee(ctx context.Context, employeeID uint) ([]models.AttendanceRow, error)
	Get(ctx context.Context, id uint) (*models.AttendanceRow, error)
	Create(ctx context.Context, in Input) (*models.AttendanceRow, error)
	Update(ctx context.Context, id uint, in Input) (*models.AttendanceRow, error)
	Delete(ctx context.Context, id uint) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func rows(tx *gorm.DB) *gorm.DB {
	return tx.Table("attendance AS a").
		Select("a.*, e.first_name, e.last_name").
		Joins("JOIN employees e ON a.employee_id = e.id")
}

func (s *gormStore) List(ctx context.Context) ([]models.AttendanceRow, error) {
	var out []models.AttendanceRow
	if err := rows(s.db.WithContext(ctx)).Order("a.date DESC").Order("a.id DESC").Scan(&out).Error; err != nil {
		return nil, database.Translate(err)
	}
	return out, nil
}

func (s *gormStore) ListByEmployee(ctx context.Context, employeeID uint) ([]models.AttendanceRow, error) {
	var out []models.AttendanceRow
	err := rows(s.db.WithContext(ctx)).
		Where("a.employee_id = ?", employeeID).
		Order("a.date DESC").Order("a.id DESC").
		Scan(&out).Error
	if err != nil {
		return nil, database.Translate(err)
	}
	return out, nil
}

func (s *gormStore) Get(ctx context.Context, id uint) (*models.AttendanceRow, error) {
	return getRow(s.db.WithContext(ctx), id)
}

func getRow(tx *gorm.DB, id uint) (*models.AttendanceRow, error) {
	var out []models.AttendanceRow
	if err := rows(tx).Where("a.id = ?", id).Limit(1).Scan(&out).Error; err != nil {
		return nil, database.Translate(err)
	}
	if len(out) == 0 {
		return nil, database.ErrNotFound
	}
	return &out[0], nil
}

func (s *gormStore) Create(ctx context.Context, in Input) (*models.AttendanceRow, error) {
	a := models.Attendance{
		EmployeeID: in.EmployeeID,
		Date:       in.Date,
		CheckIn:    in.CheckIn,
		CheckOut:   in.CheckOut,
		Status:     statusOrDefault(in.Status),
	}

	var row *models.AttendanceRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&a).Error; err != nil {
			return err
		}
		var err error
		row, err = getRow(tx, a.ID)
		return err
	})
	if err != nil {
		return nil, database.Translate(err)
	}
	return row, nil
}

func (s *gormStore) Update(ctx context.Context, id uint, in Input) (*models.AttendanceRow, error) {
	var row *models.AttendanceRow
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Attendance{}).Where("id = ?", id).Updates(map[string]any{
			"employee_id": in.EmployeeID,
			"date":        in.Date,
			"check_in":    in.CheckIn,
			"check_out":   in.CheckOut,
			"status":      statusOrDefault(in.Status),
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
	res := s.db.WithContext(ctx).Delete(&models.Attendance{}, id)
	if res.Error != nil {
		return database.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

func statusOrDefault(s models.AttendanceStatus) models.AttendanceStatus {
	if s == "" {
		return models.AttendancePresent
	}
	return s
}
