package toolstream

import (
	"context"
	"encoding/json"
	"errors"

	"katalog-backend/internal/catalog"

	"github.com/shopspring/decimal"
)

const (
	toolBrowseProducts    = "browse-products"
	toolGetCategoryCounts = "get-category-counts"
)

type toolDef struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

func toolDefs() []toolDef {
	return []toolDef{
		{
			Name:        toolBrowseProducts,
			Description: "Katalogda filtreli/sayfalı ürün araması yapar",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"category": map[string]any{
						"type":        "string",
						"description": "Kategori adı, büyük/küçük harfe duyarsız tam eşleşme",
					},
					"search_term": map[string]any{
						"type":        "string",
						"description": "İsim veya açıklamada aranacak metin",
					},
					"max_results": map[string]any{
						"type":    "integer",
						"minimum": 1,
						"maximum": catalog.MaxResultsCap,
						"default": catalog.DefaultMaxResults,
					},
					"include_out_of_stock": map[string]any{
						"type":    "boolean",
						"default": true,
					},
					"min_price": map[string]any{
						"type":    "number",
						"minimum": 0,
					},
					"max_price": map[string]any{
						"type":    "number",
						"minimum": 0,
					},
				},
			},
		},
		{
			Name:        toolGetCategoryCounts,
			Description: "Kategori başına ürün sayılarını ve toplamları döndürür",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}

type callParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

type browseArgs struct {
	Category          *string          `json:"category"`
	SearchTerm        *string          `json:"search_term"`
	MaxResults        *int             `json:"max_results"`
	IncludeOutOfStock *bool            `json:"include_out_of_stock"`
	MinPrice          *decimal.Decimal `json:"min_price"`
	MaxPrice          *decimal.Decimal `json:"max_price"`
}

func (s *Server) call(ctx context.Context, params json.RawMessage) (any, *rpcError) {
	var p callParams
	if len(params) == 0 {
		return nil, &rpcError{Code: codeInvalidParams, Message: "params zorunlu"}
	}
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, &rpcError{Code: codeInvalidParams, Message: "Geçersiz çağrı parametreleri"}
	}

	switch p.Name {
	case toolBrowseProducts:
		var args browseArgs
		if len(p.Arguments) > 0 {
			if err := json.Unmarshal(p.Arguments, &args); err != nil {
				return nil, &rpcError{Code: codeInvalidParams, Message: "Geçersiz araç argümanları"}
			}
		}
		result, err := s.engine.Browse(ctx, catalog.BrowseParams{
			Category:          args.Category,
			SearchTerm:        args.SearchTerm,
			MaxResults:        args.MaxResults,
			IncludeOutOfStock: args.IncludeOutOfStock,
			MinPrice:          args.MinPrice,
			MaxPrice:          args.MaxPrice,
		})
		if err != nil {
			return nil, mapEngineError(err)
		}
		return result, nil

	case toolGetCategoryCounts:
		stats, err := s.engine.CategoryCounts(ctx)
		if err != nil {
			return nil, mapEngineError(err)
		}
		return stats, nil

	default:
		return nil, &rpcError{Code: codeInvalidParams, Message: "Bilinmeyen araç: " + p.Name}
	}
}

// mapEngineError: HTTP tarafındaki 400/503 ayrımının JSON-RPC karşılığı.
// retryable bayrağı çağırana "sonra tekrar dene"yi işaretler.
func mapEngineError(err error) *rpcError {
	var ip *catalog.InvalidParameterError
	switch {
	case errors.As(err, &ip):
		return &rpcError{Code: codeInvalidParams, Message: ip.Error()}
	case errors.Is(err, catalog.ErrCancelled):
		return &rpcError{
			Code:    codeServer,
			Message: "İstek iptal edildi",
			Data:    map[string]any{"retryable": true},
		}
	case errors.Is(err, catalog.ErrStoreUnavailable):
		return &rpcError{
			Code:    codeServer,
			Message: "Veri deposuna ulaşılamadı",
			Data:    map[string]any{"retryable": true},
		}
	default:
		return &rpcError{Code: codeInternal, Message: "Beklenmeyen sunucu hatası"}
	}
}
