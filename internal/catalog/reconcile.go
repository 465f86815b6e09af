package catalog

import "time"

// StockSummary: bir ürünün (ya da varyantın) tüm partilerinden türetilen tek
// stok görünümü. Kalıcı değildir, her sorguda yeniden hesaplanır.
type StockSummary struct {
	Available       int  `json:"available"`
	InStock         bool `json:"in_stock"`
	TracksInventory bool `json:"tracks_inventory"`
}

// reconcile, parti satırlarını tek stok özetine indirger. Süresi geçmiş
// partiler sıfır sayılır; "geçmiş" kararı yazma anında değil, verilen
// değerlendirme anına (now) göre sorgu anında verilir. Aynı kayıtlı veri
// zaman geçtikçe farklı available üretebilir, bu bilinçli bir tercih.
func reconcile(batches []InventoryBatchRecord, now time.Time) StockSummary {
	if len(batches) == 0 {
		// Stok takibi dışındaki ürün satılabilir kabul edilir.
		return StockSummary{Available: 0, InStock: true, TracksInventory: false}
	}

	available := 0
	for _, b := range batches {
		if b.Expiry != nil && !b.Expiry.After(now) {
			continue
		}
		available += b.Quantity
	}

	return StockSummary{
		Available:       available,
		InStock:         available > 0,
		TracksInventory: true,
	}
}

// reconcileProduct: parti satırlarından herhangi biri varyant kimliği
// taşıyorsa mutabakat (product_id, variant_id) bazında ayrışır ve ürün özeti
// varyantların birleşimi olur: available'ların en büyüğü, in_stock'ların
// VEYA'sı. Hiçbiri taşımıyorsa düz reconcile çalışır ve varyant kırılımı
// üretilmez.
func reconcileProduct(batches []InventoryBatchRecord, now time.Time) (StockSummary, map[string]StockSummary) {
	hasVariant := false
	for _, b := range batches {
		if b.VariantID != "" {
			hasVariant = true
			break
		}
	}
	if !hasVariant {
		return reconcile(batches, now), nil
	}

	byVariant := make(map[string][]InventoryBatchRecord)
	for _, b := range batches {
		byVariant[b.VariantID] = append(byVariant[b.VariantID], b)
	}

	product := StockSummary{TracksInventory: true}
	summaries := make(map[string]StockSummary, len(byVariant))
	for id, vb := range byVariant {
		s := reconcile(vb, now)
		summaries[id] = s
		if s.Available > product.Available {
			product.Available = s.Available
		}
		if s.InStock {
			product.InStock = true
		}
	}
	return product, summaries
}
