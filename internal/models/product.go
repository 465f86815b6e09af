package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product: ürün koleksiyonunun bir satırı. Varyantlar ve serbest öznitelikler
// denormalize JSONB kolonlarında gömülü durur, yazan servis dolduruyor.
type Product struct {
	ID          string          `gorm:"size:36;primaryKey"`
	ProductCode string          `gorm:"size:50;index"`
	Name        string          `gorm:"size:150;not null"`
	Description string          `gorm:"size:1000"`
	Category    string          `gorm:"size:100;index;not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Unit        string          `gorm:"size:20;not null"` // kg, adet, koli vs.
	Variants    datatypes.JSON  // [{variant_id, attributes, price_delta}]
	Attributes  datatypes.JSON  // serbest anahtar/değer (organik, marka vs.)
	CreatedAt   time.Time       `gorm:"index"`
	UpdatedAt   time.Time
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
