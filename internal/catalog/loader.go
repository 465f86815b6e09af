package catalog

import (
	"context"
	"encoding/json"
	"time"

	"katalog-backend/internal/models"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Variant: ürünün JSONB kolonundan çözülen gömülü varyantı.
type Variant struct {
	VariantID  string            `json:"variant_id"`
	Attributes map[string]string `json:"attributes,omitempty"`
	PriceDelta decimal.Decimal   `json:"price_delta"`
}

// ProductRecord: doğrulanmış ürün satırı. JSONB kolonlar çözülmüş halde;
// filtre motoruna asla ham map akmaz.
type ProductRecord struct {
	ProductID   string
	ProductCode string
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	Unit        string
	Variants    []Variant
	Attributes  map[string]any
}

// InventoryBatchRecord: doğrulanmış stok parti satırı.
type InventoryBatchRecord struct {
	ProductID string
	BatchID   string
	VariantID string // boşsa stok ürün seviyesinde
	Quantity  int
	Expiry    *time.Time
}

// RecordLoader: iki koleksiyonu okuyan arayüz. İkinci dönüş değeri
// çözümlenemeyip atlanan satır sayısıdır; bozuk satır tüm yüklemeyi asla
// düşürmez. Boş katalog hata değildir, boş liste döner.
type RecordLoader interface {
	LoadProducts(ctx context.Context) ([]ProductRecord, int, error)
	// LoadInventory, productIDs boşsa tüm koleksiyonu tarar; doluysa sadece
	// verilen ürünlerin partilerini okur.
	LoadInventory(ctx context.Context, productIDs []string) ([]InventoryBatchRecord, int, error)
}

// GormRecordLoader: Postgres üzerindeki koleksiyonları gorm ile okur.
type GormRecordLoader struct {
	db  *gorm.DB
	log *zap.Logger
}

var _ RecordLoader = (*GormRecordLoader)(nil)

func NewGormRecordLoader(db *gorm.DB, log *zap.Logger) *GormRecordLoader {
	return &GormRecordLoader{db: db, log: log}
}

func (l *GormRecordLoader) LoadProducts(ctx context.Context) ([]ProductRecord, int, error) {
	var rows []models.Product
	if err := l.db.WithContext(ctx).Order("created_at asc").Find(&rows).Error; err != nil {
		return nil, 0, mapStoreError(err)
	}

	records := make([]ProductRecord, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		rec, err := parseProductRow(row)
		if err != nil {
			skipped++
			l.log.Warn("Bozuk ürün satırı atlandı",
				zap.String("product_id", row.ID),
				zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func (l *GormRecordLoader) LoadInventory(ctx context.Context, productIDs []string) ([]InventoryBatchRecord, int, error) {
	q := l.db.WithContext(ctx).Model(&models.InventoryBatch{})
	if len(productIDs) > 0 {
		q = q.Where("product_id IN ?", productIDs)
	}

	var rows []models.InventoryBatch
	if err := q.Find(&rows).Error; err != nil {
		return nil, 0, mapStoreError(err)
	}

	records := make([]InventoryBatchRecord, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		rec, err := parseBatchRow(row)
		if err != nil {
			skipped++
			l.log.Warn("Bozuk stok satırı atlandı",
				zap.String("product_id", row.ProductID),
				zap.String("batch_id", row.BatchID),
				zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// parseProductRow: satır bazında doğrulama. Burada elenen satır sorguyu
// düşürmez, sayılıp atlanır.
func parseProductRow(row models.Product) (ProductRecord, error) {
	if row.ID == "" {
		return ProductRecord{}, errors.New("product_id boş")
	}
	if row.Name == "" {
		return ProductRecord{}, errors.New("name boş")
	}
	if row.Price.IsNegative() {
		return ProductRecord{}, errors.New("price negatif")
	}

	var variants []Variant
	if len(row.Variants) > 0 {
		if err := json.Unmarshal(row.Variants, &variants); err != nil {
			return ProductRecord{}, errors.Wrap(err, "variants çözümlenemedi")
		}
	}

	var attrs map[string]any
	if len(row.Attributes) > 0 {
		if err := json.Unmarshal(row.Attributes, &attrs); err != nil {
			return ProductRecord{}, errors.Wrap(err, "attributes çözümlenemedi")
		}
	}

	return ProductRecord{
		ProductID:   row.ID,
		ProductCode: row.ProductCode,
		Name:        row.Name,
		Description: row.Description,
		Category:    row.Category,
		Price:       row.Price,
		Unit:        row.Unit,
		Variants:    variants,
		Attributes:  attrs,
	}, nil
}

func parseBatchRow(row models.InventoryBatch) (InventoryBatchRecord, error) {
	if row.ProductID == "" {
		return InventoryBatchRecord{}, errors.New("product_id boş")
	}
	if row.BatchID == "" {
		return InventoryBatchRecord{}, errors.New("batch_id boş")
	}
	if row.Quantity < 0 {
		return InventoryBatchRecord{}, errors.New("quantity negatif")
	}

	return InventoryBatchRecord{
		ProductID: row.ProductID,
		BatchID:   row.BatchID,
		VariantID: row.VariantID,
		Quantity:  row.Quantity,
		Expiry:    row.Expiry,
	}, nil
}

func mapStoreError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return ErrCancelled
	}
	return errors.Wrapf(ErrStoreUnavailable, "%v", err)
}
