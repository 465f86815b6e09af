package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryBatch: stok koleksiyonunun bir satırı. Bir ürünün birden fazla
// partisi olabilir; hiç partisi olmayan ürün stok takibi dışında sayılır.
type InventoryBatch struct {
	ProductID string     `gorm:"size:36;primaryKey"`
	BatchID   string     `gorm:"size:36;primaryKey"`
	VariantID string     `gorm:"size:36;index"` // boşsa stok ürün seviyesinde
	Quantity  int        `gorm:"not null"`
	Expiry    *time.Time `gorm:"index"` // opsiyonel son kullanma tarihi
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *InventoryBatch) BeforeCreate(tx *gorm.DB) error {
	if b.BatchID == "" {
		b.BatchID = uuid.NewString()
	}
	return nil
}
