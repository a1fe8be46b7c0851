package employee

import (
	"context"

	"payroll-backend/internal/database"
	"payroll-backend/internal/models"

	"gorm.io/gorm"
)

// Input is the writable part of an employee. A nil Salary on create lets
// add_employee fall back to the employee type's base salary.
type Input struct {
	FirstName      string      `json:"first_name"`
	LastName       string      `json:"last_name"`
	Email          *string     `json:"email"`
	Phone          *string     `json:"phone"`
	Address        *string     `json:"address"`
	Position       *string     `json:"position"`
	Department     *string     `json:"department"`
	HireDate       models.Date `json:"hire_date"`
	Salary         *float64    `json:"salary"`
	EmployeeTypeID *uint       `json:"employee_type_id"`
	UserID         *uint       `json:"user_id"`
}

type Store interface {
	List(ctx context.Context) ([]models.Employee, error)
	Get(ctx context.Context, id uint) (*models.Employee, error)
	Create(ctx context.Context, in Input) (*models.Employee, error)
	Update(ctx context.Context, id uint, in Input) (*models.Employee, error)
	Delete(ctx context.Context, id uint) error
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) List(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.db.WithContext(ctx).Order("id").Find(&employees).Error; err != nil {
		return nil, database.Translate(err)
	}
	return employees, nil
}

func (s *gormStore) Get(ctx context.Context, id uint) (*models.Employee, error) {
	var e models.Employee
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &e, nil
}

// Create goes through the add_employee procedure, which owns the defaults
// for hire date and salary and returns the new id through its INOUT param.
func (s *gormStore) Create(ctx context.Context, in Input) (*models.Employee, error) {
	var e models.Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var id uint
		err := tx.Raw("CALL add_employee(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)",
			in.FirstName, in.LastName, in.Email, in.Phone, in.Address,
			in.Position, in.Department, in.HireDate, in.Salary, in.EmployeeTypeID,
		).Scan(&id).Error
		if err != nil {
			return err
		}
		if in.UserID != nil {
			err := tx.Model(&models.Employee{}).Where("id = ?", id).Update("user_id", in.UserID).Error
			if err != nil {
				return err
			}
		}
		return tx.First(&e, id).Error
	})
	if err != nil {
		return nil, database.Translate(err)
	}
	return &e, nil
}

// Update overwrites every writable column. hire_date is only touched when
// the caller sends one; a missing salary falls back to the type's base
// salary the way add_employee does.
func (s *gormStore) Update(ctx context.Context, id uint, in Input) (*models.Employee, error) {
	var salary any = in.Salary
	if in.Salary == nil {
		salary = gorm.Expr("COALESCE((SELECT base_salary FROM employee_types WHERE id = ?), 0)", in.EmployeeTypeID)
	}

	fields := map[string]any{
		"first_name":       in.FirstName,
		"last_name":        in.LastName,
		"email":            in.Email,
		"phone":            in.Phone,
		"address":          in.Address,
		"position":         in.Position,
		"department":       in.Department,
		"salary":           salary,
		"employee_type_id": in.EmployeeTypeID,
		"user_id":          in.UserID,
	}
	if !in.HireDate.IsZero() {
		fields["hire_date"] = in.HireDate
	}

	var e models.Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Employee{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return database.ErrNotFound
		}
		return tx.First(&e, id).Error
	})
	if err != nil {
		return nil, database.Translate(err)
	}
	return &e, nil
}

func (s *gormStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Employee{}, id)
	if res.Error != nil {
		return database.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// GetByUserID returns the employee linked to a login account.
func (s *gormStore) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var p models.Profile
	res := s.db.WithContext(ctx).
		Table("employees AS e").
		Select("e.*, u.username, u.role").
		Joins("JOIN users u ON e.user_id = u.id").
		Where("u.id = ?", userID).
		Limit(1).
		Scan(&p)
	if res.Error != nil {
		return nil, database.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, database.ErrNotFound
	}
	return &p, nil
}
