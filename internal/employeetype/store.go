package employeetype

import (
	"context"
	"errors"

	"payroll-backend/internal/database"
	"payroll-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInUse is returned when deleting a type that employees still reference.
var ErrInUse = errors.New("employee type is assigned to employees")

type Input struct {
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	BaseSalary   *float64 `json:"base_salary"`
	WorkingHours *float64 `json:"working_hours"`
	Benefits     *string  `json:"benefits"`
}

type Store interface {
	List(ctx context.Context) ([]models.EmployeeType, error)
	Get(ctx context.Context, id uint) (*models.EmployeeType, error)
	Create(ctx context.Context, in Input) (*models.EmployeeType, error)
	Update(ctx context.Context, id uint, in Input) (*models.EmployeeType, error)
	Delete(ctx context.Context, id uint) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) List(ctx context.Context) ([]models.EmployeeType, error) {
	var types []models.EmployeeType
	if err := s.db.WithContext(ctx).Order("name").Find(&types).Error; err != nil {
		return nil, database.Translate(err)
	}
	return types, nil
}

func (s *gormStore) Get(ctx context.Context, id uint) (*models.EmployeeType, error) {
	var t models.EmployeeType
	if err := s.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &t, nil
}

func (s *gormStore) Create(ctx context.Context, in Input) (*models.EmployeeType, error) {
	t := models.EmployeeType{
		Name:         in.Name,
		Description:  in.Description,
		BaseSalary:   deref(in.BaseSalary),
		WorkingHours: deref(in.WorkingHours),
		Benefits:     in.Benefits,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		return tx.First(&t, t.ID).Error
	})
	if err != nil {
		return nil, database.Translate(err)
	}
	return &t, nil
}

func (s *gormStore) Update(ctx context.Context, id uint, in Input) (*models.EmployeeType, error) {
	var t models.EmployeeType
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.EmployeeType{}).Where("id = ?", id).Updates(map[string]any{
			"name":          in.Name,
			"description":   in.Description,
			"base_salary":   deref(in.BaseSalary),
			"working_hours": deref(in.WorkingHours),
			"benefits":      in.Benefits,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return database.ErrNotFound
		}
		return tx.First(&t, id).Error
	})
	if err != nil {
		return nil, database.Translate(err)
	}
	return &t, nil
}

// Delete locks the type row before counting references, so an employee
// cannot be assigned to it between the count and the delete.
func (s *gormStore) Delete(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var t models.EmployeeType
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&t, id).Error; err != nil {
			return err
		}

		var n int64
		if err := tx.Model(&models.Employee{}).Where("employee_type_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrInUse
		}

		return tx.Delete(&models.EmployeeType{}, id).Error
	})
	return database.Translate(err)
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
