package catalog

import "sort"

// CategoryCount: tek kategorinin ürün sayısı.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CategoryStats: filtreden bağımsız, tüm katalog üzerinden kategori
// istatistikleri.
type CategoryStats struct {
	Categories      []CategoryCount `json:"categories"`
	TotalCategories int             `json:"total_categories"`
	TotalProducts   int             `json:"total_products"`
}

// aggregateCategories, girdileri kategori adına göre gruplar. Gruplama
// kayıtlı yazıma göre büyük/küçük harfe DUYARLIDIR: katalog sahibinin ayrı
// tutmak istediği yazımlar sessizce birleştirilmez. (browse'daki kategori
// filtresi ise duyarsızdır; asimetri bilinçli.) Çıktı ada göre sıralanır ki
// map gezme sırası cevaba sızmasın.
func aggregateCategories(entries []CatalogEntry) CategoryStats {
	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Category]++
	}

	categories := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		categories = append(categories, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})

	return CategoryStats{
		Categories:      categories,
		TotalCategories: len(categories),
		TotalProducts:   len(entries),
	}
}
