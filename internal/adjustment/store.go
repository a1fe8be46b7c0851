// Package adjustment serves allowances and deductions. Both are payroll line
// items with the same columns, kept in separate tables, so one store and one
// set of handlers is instantiated per kind.
package adjustment

import (
	"context"

	"payroll-backend/internal/database"
	"payroll-backend/internal/models"

	"gorm.io/gorm"
)

// Kind names one adjustment table and the label its messages use.
type Kind struct {
	Table      string
	Label      string
	EntityType string
}

var (
	Allowances = Kind{Table: "allowances", Label: "Allowance", EntityType: "allowance"}
	Deductions = Kind{Table: "deductions", Label: "Deduction", EntityType: "deduction"}
)

type Input struct {
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Description *string `json:"description"`
	PayrollID   *uint   `json:"payroll_id"`
}

type Store interface {
	List(ctx context.Context) ([]models.Adjustment, error)
	Get(ctx context.Context, id uint) (*models.Adjustment, error)
	Create(ctx context.Context, in Input) (*models.Adjustment, error)
	Update(ctx context.Context, id uint, in Input) (*models.Adjustment, error)
	Delete(ctx context.Context, id uint) error
}

type gormStore struct {
	db    *gorm.DB
	table string
}

func NewStore(db *gorm.DB, kind Kind) Store {
	return &gormStore{db: db, table: kind.Table}
}

func (s *gormStore) List(ctx context.Context) ([]models.Adjustment, error) {
	var out []models.Adjustment
	if err := s.db.WithContext(ctx).Table(s.table).Order("id").Find(&out).Error; err != nil {
		return nil, database.Translate(err)
	}
	return out, nil
}

func (s *gormStore) Get(ctx context.Context, id uint) (*models.Adjustment, error) {
	var a models.Adjustment
	if err := s.db.WithContext(ctx).Table(s.table).First(&a, id).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &a, nil
}

func (s *gormStore) Create(ctx context.Context, in Input) (*models.Adjustment, error) {
	a := models.Adjustment{
		Type:        in.Type,
		Amount:      in.Amount,
		Description: in.Description,
		PayrollID:   in.PayrollID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table(s.table).Create(&a).Error; err != nil {
			return err
		}
		return tx.Table(s.table).First(&a, a.ID).Error
	})
	if err != nil {
		return nil, database.Translate(err)
	}
	return &a, nil
}

func (s *gormStore) Update(ctx context.Context, id uint, in Input) (*models.Adjustment, error) {
	var a models.Adjustment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table(s.table).Where("id = ?", id).Updates(map[string]any{
			"type":        in.Type,
			"amount":      in.Amount,
			"description": in.Description,
			"payroll_id":  in.PayrollID,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return database.ErrNotFound
		}
		return tx.Table(s.table).First(&a, id).Error
	})
	if err != nil {
		return nil, database.Translate(err)
	}
	return &a, nil
}

func (s *gormStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Table(s.table).Delete(&models.Adjustment{}, id)
	if res.Error != nil {
		return database.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}
