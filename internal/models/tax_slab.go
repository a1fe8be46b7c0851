package models

type TaxSlab struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	MinAmount     float64 `gorm:"type:numeric(12,2);not null" json:"min_amount"`
	MaxAmount     float64 `gorm:"type:numeric(12,2);not null" json:"max_amount"`
	TaxPercentage float64 `gorm:"type:numeric(5,2);not null" json:"tax_percentage"`
}

// Overlaps reports whether two closed ranges share at least one amount.
func (s TaxSlab) Overlaps(o TaxSlab) bool {
	return s.MinAmount <= o.MaxAmount && s.MaxAmount >= o.MinAmount
}
