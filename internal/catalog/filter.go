package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultMaxResults = 20
	MaxResultsCap     = 100
)

// BrowseParams: browse-products operasyonunun filtre kümesi. nil alan,
// o filtrenin hiç uygulanmayacağı anlamına gelir.
type BrowseParams struct {
	Category          *string
	SearchTerm        *string
	MaxResults        *int
	IncludeOutOfStock *bool
	MinPrice          *decimal.Decimal
	MaxPrice          *decimal.Decimal
}

// Validate: sınır dışı değer reddedilir, asla sessizce düzeltilmez.
func (p BrowseParams) Validate() error {
	if p.MaxResults != nil && (*p.MaxResults < 1 || *p.MaxResults > MaxResultsCap) {
		return invalidParam("max_results", "1 ile 100 arasında olmalı")
	}
	if p.MinPrice != nil && p.MinPrice.IsNegative() {
		return invalidParam("min_price", "negatif olamaz")
	}
	if p.MaxPrice != nil && p.MaxPrice.IsNegative() {
		return invalidParam("max_price", "negatif olamaz")
	}
	if p.MinPrice != nil && p.MaxPrice != nil && p.MinPrice.GreaterThan(*p.MaxPrice) {
		return invalidParam("min_price", "max_price'tan büyük olamaz")
	}
	return nil
}

func (p BrowseParams) maxResults() int {
	if p.MaxResults != nil {
		return *p.MaxResults
	}
	return DefaultMaxResults
}

func (p BrowseParams) includeOutOfStock() bool {
	if p.IncludeOutOfStock != nil {
		return *p.IncludeOutOfStock
	}
	return true
}

// applyFilters: tüm filtreler VE ile bağlanır, kaynak sırası korunur
// (alaka sıralaması yok), en sonda max_results kadar kesilir. Filtre
// sonrası boş liste hata değil, geçerli bir sonuçtur.
func applyFilters(entries []CatalogEntry, p BrowseParams) []CatalogEntry {
	limit := p.maxResults()
	out := make([]CatalogEntry, 0, limit)
	for _, e := range entries {
		if !matches(e, p) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}

func matches(e CatalogEntry, p BrowseParams) bool {
	// Kategori: büyük/küçük harfe duyarsız tam eşleşme
	if p.Category != nil && !strings.EqualFold(e.Category, *p.Category) {
		return false
	}

	// Arama: isim VEYA açıklamada duyarsız substring; öznitelik metni
	// bilerek aranmıyor (bkz. DESIGN.md)
	if p.SearchTerm != nil {
		term := strings.ToLower(*p.SearchTerm)
		if !strings.Contains(strings.ToLower(e.Name), term) &&
			!strings.Contains(strings.ToLower(e.Description), term) {
			return false
		}
	}

	// Fiyat aralığı: iki uç da dahil
	if p.MinPrice != nil && e.Price.LessThan(*p.MinPrice) {
		return false
	}
	if p.MaxPrice != nil && e.Price.GreaterThan(*p.MaxPrice) {
		return false
	}

	if !p.includeOutOfStock() && !e.Stock.InStock {
		return false
	}
	return true
}
