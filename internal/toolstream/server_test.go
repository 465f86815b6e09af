package toolstream

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"katalog-backend/internal/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubLoader struct {
	products []catalog.ProductRecord
	batches  []catalog.InventoryBatchRecord
	err      error
}

func (s *stubLoader) LoadProducts(ctx context.Context) ([]catalog.ProductRecord, int, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.products, 0, nil
}

func (s *stubLoader) LoadInventory(ctx context.Context, productIDs []string) ([]catalog.InventoryBatchRecord, int, error) {
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.batches, 0, nil
}

func newTestServer(loader catalog.RecordLoader, input string) (*Server, *bytes.Buffer) {
	engine := catalog.NewEngine(loader, zap.NewNop())
	out := &bytes.Buffer{}
	return NewServer(engine, zap.NewNop(), strings.NewReader(input), out), out
}

func testCatalogLoader() *stubLoader {
	return &stubLoader{
		products: []catalog.ProductRecord{
			{ProductID: "p1", Name: "Elma", Category: "Meyve", Price: decimal.RequireFromString("50"), Unit: "kg"},
			{ProductID: "p2", Name: "Mango", Category: "Meyve", Price: decimal.RequireFromString("150"), Unit: "kg"},
		},
		batches: []catalog.InventoryBatchRecord{
			{ProductID: "p1", BatchID: "b1", Quantity: 10},
		},
	}
}

// runLines: istek satırlarını akıştan geçirip cevap satırlarını çözer.
func runLines(t *testing.T, loader catalog.RecordLoader, lines ...string) []map[string]any {
	t.Helper()

	srv, out := newTestServer(loader, strings.Join(lines, "\n")+"\n")
	require.NoError(t, srv.Run(context.Background()))

	var responses []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var resp map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func TestServerRun(t *testing.T) {
	t.Run("initialize", func(t *testing.T) {
		resps := runLines(t, testCatalogLoader(),
			`{"jsonrpc":"2.0","id":1,"method":"initialize"}`)

		require.Len(t, resps, 1)
		result := resps[0]["result"].(map[string]any)
		assert.Equal(t, "katalog-backend", result["server"])
	})

	t.Run("tools/list iki aracı tanımlar", func(t *testing.T) {
		resps := runLines(t, testCatalogLoader(),
			`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)

		require.Len(t, resps, 1)
		tools := resps[0]["result"].(map[string]any)["tools"].([]any)
		require.Len(t, tools, 2)
		assert.Equal(t, "browse-products", tools[0].(map[string]any)["name"])
		assert.Equal(t, "get-category-counts", tools[1].(map[string]any)["name"])
	})

	t.Run("browse-products çağrısı", func(t *testing.T) {
		resps := runLines(t, testCatalogLoader(),
			`{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"browse-products","arguments":{"category":"meyve","max_price":100}}}`)

		require.Len(t, resps, 1)
		require.Nil(t, resps[0]["error"])

		result := resps[0]["result"].(map[string]any)
		products := result["products"].([]any)
		require.Len(t, products, 1)
		assert.Equal(t, "p1", products[0].(map[string]any)["product_id"])
		assert.Equal(t, float64(1), result["returned_count"])
	})

	t.Run("get-category-counts çağrısı", func(t *testing.T) {
		resps := runLines(t, testCatalogLoader(),
			`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"get-category-counts"}}`)

		require.Len(t, resps, 1)
		result := resps[0]["result"].(map[string]any)
		assert.Equal(t, float64(2), result["total_products"])
		assert.Equal(t, float64(1), result["total_categories"])
	})

	t.Run("geçersiz filtre -32602 döner", func(t *testing.T) {
		resps := runLines(t, testCatalogLoader(),
			`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"browse-products","arguments":{"min_price":10,"max_price":5}}}`)

		require.Len(t, resps, 1)
		rpcErr := resps[0]["error"].(map[string]any)
		assert.Equal(t, float64(codeInvalidParams), rpcErr["code"])
	})

	t.Run("depo hatası retryable işaretlenir", func(t *testing.T) {
		resps := runLines(t, &stubLoader{err: catalog.ErrStoreUnavailable},
			`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"browse-products"}}`)

		require.Len(t, resps, 1)
		rpcErr := resps[0]["error"].(map[string]any)
		assert.Equal(t, float64(codeServer), rpcErr["code"])
		assert.Equal(t, true, rpcErr["data"].(map[string]any)["retryable"])
	})

	t.Run("bilinmeyen metot -32601 döner", func(t *testing.T) {
		resps := runLines(t, testCatalogLoader(),
			`{"jsonrpc":"2.0","id":5,"method":"resources/read"}`)

		require.Len(t, resps, 1)
		rpcErr := resps[0]["error"].(map[string]any)
		assert.Equal(t, float64(codeMethodNotFound), rpcErr["code"])
	})

	t.Run("bilinmeyen araç -32602 döner", func(t *testing.T) {
		resps := runLines(t, testCatalogLoader(),
			`{"jsonrpc":"2.0","id":6,"method":"tools/call","params":{"name":"delete-product"}}`)

		require.Len(t, resps, 1)
		rpcErr := resps[0]["error"].(map[string]any)
		assert.Equal(t, float64(codeInvalidParams), rpcErr["code"])
	})

	t.Run("bozuk JSON -32700 döner", func(t *testing.T) {
		resps := runLines(t, testCatalogLoader(), `{bozuk json`)

		require.Len(t, resps, 1)
		rpcErr := resps[0]["error"].(map[string]any)
		assert.Equal(t, float64(codeParse), rpcErr["code"])
		assert.Nil(t, resps[0]["id"])
	})

	t.Run("bildirime cevap dönülmez", func(t *testing.T) {
		resps := runLines(t, testCatalogLoader(),
			`{"jsonrpc":"2.0","method":"tools/list"}`,
			`{"jsonrpc":"2.0","id":8,"method":"tools/list"}`)

		// Sadece id'li isteğin cevabı yazılır
		require.Len(t, resps, 1)
		assert.Equal(t, float64(8), resps[0]["id"])
	})

	t.Run("boş satırlar atlanır", func(t *testing.T) {
		srv, out := newTestServer(testCatalogLoader(), "\n\n")
		require.NoError(t, srv.Run(context.Background()))
		assert.Empty(t, strings.TrimSpace(out.String()))
	})
}
