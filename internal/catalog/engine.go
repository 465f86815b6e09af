package catalog

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine: katalog sorgu motoru. Durum tutmaz, kilit kullanmaz; her çağrı
// kendi yükle-mutabakat-filtrele hattını baştan çalıştırır ve türetilen her
// şey cevapla birlikte atılır. Eşzamanlı çağrılar bu yüzden doğal olarak
// güvenlidir.
type Engine struct {
	loader RecordLoader
	log    *zap.Logger
	now    func() time.Time
}

func NewEngine(loader RecordLoader, log *zap.Logger) *Engine {
	return &Engine{loader: loader, log: log, now: time.Now}
}

// WithClock, değerlendirme anını sabitler. Son kullanma tarihi kontrolü bu
// saate göre çalıştığı için testler buradan deterministik hale gelir.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// SearchMetadata: uygulanan filtrelerin cevapta geri yankısı. skipped_records
// ile kısmi yükleme görünür kılınır.
type SearchMetadata struct {
	Category          *string          `json:"category,omitempty"`
	SearchTerm        *string          `json:"search_term,omitempty"`
	MaxResults        int              `json:"max_results"`
	IncludeOutOfStock bool             `json:"include_out_of_stock"`
	MinPrice          *decimal.Decimal `json:"min_price,omitempty"`
	MaxPrice          *decimal.Decimal `json:"max_price,omitempty"`
	SkippedRecords    int              `json:"skipped_records"`
}

type BrowseResult struct {
	Products      []CatalogEntry `json:"products"`
	ReturnedCount int            `json:"returned_count"`
	Metadata      SearchMetadata `json:"search_metadata"`
}

// Browse: filtreli/sayfalı katalog sorgusu. Parametre doğrulaması depoya
// gitmeden önce yapılır; geçersiz parametre hiç yük bindirmez.
func (e *Engine) Browse(ctx context.Context, params BrowseParams) (*BrowseResult, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	products, batches, skipped, err := e.load(ctx)
	if err != nil {
		return nil, err
	}

	entries := buildEntries(products, batches, e.now())
	filtered := applyFilters(entries, params)

	return &BrowseResult{
		Products:      filtered,
		ReturnedCount: len(filtered),
		Metadata: SearchMetadata{
			Category:          params.Category,
			SearchTerm:        params.SearchTerm,
			MaxResults:        params.maxResults(),
			IncludeOutOfStock: params.includeOutOfStock(),
			MinPrice:          params.MinPrice,
			MaxPrice:          params.MaxPrice,
			SkippedRecords:    skipped,
		},
	}, nil
}

// CategoryCounts: filtreden bağımsız kategori sayıları. Sayım için stok
// bilgisi gerekmediğinden parti koleksiyonu hiç okunmaz.
func (e *Engine) CategoryCounts(ctx context.Context) (*CategoryStats, error) {
	products, skipped, err := e.loader.LoadProducts(ctx)
	if err != nil {
		return nil, e.mapLoadError(ctx, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, ErrCancelled
	}
	if skipped > 0 {
		e.log.Warn("Bozuk satırlar sayım dışı bırakıldı", zap.Int("skipped", skipped))
	}

	entries := buildEntries(products, nil, e.now())
	stats := aggregateCategories(entries)
	return &stats, nil
}

// load, iki koleksiyonu eşzamanlı okur; okumalar birbirinden bağımsızdır ama
// mutabakat ikisi de bitmeden başlamaz. İptal yükleme aşamasında kooperatif
// yakalanır, kısmi sonuç dönülmez.
func (e *Engine) load(ctx context.Context) ([]ProductRecord, []InventoryBatchRecord, int, error) {
	var (
		products        []ProductRecord
		batches         []InventoryBatchRecord
		skippedProducts int
		skippedBatches  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, skippedProducts, err = e.loader.LoadProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		batches, skippedBatches, err = e.loader.LoadInventory(gctx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, 0, e.mapLoadError(ctx, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, 0, ErrCancelled
	}

	skipped := skippedProducts + skippedBatches
	if skipped > 0 {
		e.log.Warn("Bozuk satırlar atlandı",
			zap.Int("skipped_products", skippedProducts),
			zap.Int("skipped_batches", skippedBatches))
	}
	return products, batches, skipped, nil
}

func (e *Engine) mapLoadError(ctx context.Context, err error) error {
	switch {
	case ctx.Err() != nil,
		errors.Is(err, ErrCancelled),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return ErrCancelled
	case errors.Is(err, ErrStoreUnavailable):
		return err
	default:
		return errors.Wrapf(ErrStoreUnavailable, "%v", err)
	}
}
