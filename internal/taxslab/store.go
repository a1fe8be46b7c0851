package taxslab

import (
	"context"
	"errors"

	"payroll-backend/internal/database"
	"payroll-backend/internal/models"

	"gorm.io/gorm"
)

// ErrOverlap is returned when a slab's closed range intersects another's.
var ErrOverlap = errors.New("tax slab range overlaps with existing slabs")

type Input struct {
	MinAmount     float64 `json:"min_amount" validate:"gte=0"`
	MaxAmount     float64 `json:"max_amount" validate:"gtefield=MinAmount"`
	TaxPercentage float64 `json:"tax_percentage" validate:"gte=0,lte=100"`
}

type Store interface {
	List(ctx context.Context) ([]models.TaxSlab, error)
	Get(ctx context.Context, id uint) (*models.TaxSlab, error)
	Create(ctx context.Context, in Input) (*models.TaxSlab, error)
	Update(ctx context.Context, id uint, in Input) (*models.TaxSlab, error)
	Delete(ctx context.Context, id uint) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) List(ctx context.Context) ([]models.TaxSlab, error) {
	var slabs []models.TaxSlab
	if err := s.db.WithContext(ctx).Order("min_amount").Find(&slabs).Error; err != nil {
		return nil, database.Translate(err)
	}
	return slabs, nil
}

func (s *gormStore) Get(ctx context.Context, id uint) (*models.TaxSlab, error) {
	var slab models.TaxSlab
	if err := s.db.WithContext(ctx).First(&slab, id).Error; err != nil {
		return nil, database.Translate(err)
	}
	return &slab, nil
}

// overlapping counts slabs whose closed range meets [min, max], ignoring
// excludeID. The tax_slabs_no_overlap constraint catches a concurrent writer
// that passes this check at the same time.
func overlapping(tx *gorm.DB, in Input, excludeID uint) (bool, error) {
	q := tx.Model(&models.TaxSlab{}).Where("min_amount <= ? AND max_amount >= ?", in.MaxAmount, in.MinAmount)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *gormStore) Create(ctx context.Context, in Input) (*models.TaxSlab, error) {
	slab := models.TaxSlab{
		MinAmount:     in.MinAmount,
		MaxAmount:     in.MaxAmount,
		TaxPercentage: in.TaxPercentage,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		overlap, err := overlapping(tx, in, 0)
		if err != nil {
			return err
		}
		if overlap {
			return ErrOverlap
		}
		if err := tx.Create(&slab).Error; err != nil {
			return err
		}
		return tx.First(&slab, slab.ID).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &slab, nil
}

func (s *gormStore) Update(ctx context.Context, id uint, in Input) (*models.TaxSlab, error) {
	var slab models.TaxSlab
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		overlap, err := overlapping(tx, in, id)
		if err != nil {
			return err
		}
		if overlap {
			return ErrOverlap
		}

		res := tx.Model(&models.TaxSlab{}).Where("id = ?", id).Updates(map[string]any{
			"min_amount":     in.MinAmount,
			"max_amount":     in.MaxAmount,
			"tax_percentage": in.TaxPercentage,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return database.ErrNotFound
		}
		return tx.First(&slab, id).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &slab, nil
}

func (s *gormStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.TaxSlab{}, id)
	if res.Error != nil {
		return database.Translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

func translate(err error) error {
	err = database.Translate(err)
	if errors.Is(err, database.ErrExclusion) {
		return ErrOverlap
	}
	return err
}
