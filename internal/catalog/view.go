package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// VariantView: varyantın nihai fiyatı (ana fiyat + price_delta) ve stok
// özetiyle çözülmüş hali.
type VariantView struct {
	VariantID  string            `json:"variant_id"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Price      decimal.Decimal   `json:"price"`
	Stock      StockSummary      `json:"stock"`
}

// CatalogEntry: tek isteğin ömrüyle sınırlı, ürün + mutabakatlı stok
// birleşimi. Oluşturulduktan sonra değiştirilmez, hiçbir yerde saklanmaz.
type CatalogEntry struct {
	ProductID   string          `json:"product_id"`
	ProductCode string          `json:"product_code,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Attributes  map[string]any  `json:"attributes,omitempty"`
	Variants    []VariantView   `json:"variants,omitempty"`
	Stock       StockSummary    `json:"stock"`
}

// buildEntries, her ürün için stok mutabakatını çalıştırıp CatalogEntry
// üretir. Sıra yükleyicinin verdiği sırayla birebir aynıdır, örtük sıralama
// yoktur. Varyantlar, kendilerine özel parti yoksa ürün özetini devralır.
func buildEntries(products []ProductRecord, batches []InventoryBatchRecord, now time.Time) []CatalogEntry {
	byProduct := make(map[string][]InventoryBatchRecord, len(products))
	for _, b := range batches {
		byProduct[b.ProductID] = append(byProduct[b.ProductID], b)
	}

	entries := make([]CatalogEntry, 0, len(products))
	for _, p := range products {
		summary, variantSummaries := reconcileProduct(byProduct[p.ProductID], now)

		var variants []VariantView
		for _, v := range p.Variants {
			vs := summary
			if s, ok := variantSummaries[v.VariantID]; ok {
				vs = s
			}
			variants = append(variants, VariantView{
				VariantID:  v.VariantID,
				Attributes: v.Attributes,
				Price:      p.Price.Add(v.PriceDelta),
				Stock:      vs,
			})
		}

		entries = append(entries, CatalogEntry{
			ProductID:   p.ProductID,
			ProductCode: p.ProductCode,
			Name:        p.Name,
			Description: p.Description,
			Category:    p.Category,
			Price:       p.Price,
			Unit:        p.Unit,
			Attributes:  p.Attributes,
			Variants:    variants,
			Stock:       summary,
		})
	}
	return entries
}
