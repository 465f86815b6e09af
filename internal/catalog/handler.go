package catalog

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// GET /api/catalog/products?category=&search_term=&max_results=&include_out_of_stock=&min_price=&max_price=
func BrowseProductsHandler(engine *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params, err := parseBrowseQuery(c)
		if err != nil {
			return mapEngineError(err)
		}

		result, err := engine.Browse(c.UserContext(), params)
		if err != nil {
			return mapEngineError(err)
		}
		return c.JSON(result)
	}
}

// GET /api/catalog/category-counts
func CategoryCountsHandler(engine *Engine) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := engine.CategoryCounts(c.UserContext())
		if err != nil {
			return mapEngineError(err)
		}
		return c.JSON(stats)
	}
}

func parseBrowseQuery(c *fiber.Ctx) (BrowseParams, error) {
	var p BrowseParams

	if v := strings.TrimSpace(c.Query("category")); v != "" {
		p.Category = &v
	}
	if v := strings.TrimSpace(c.Query("search_term")); v != "" {
		p.SearchTerm = &v
	}
	if v := c.Query("max_results"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, invalidParam("max_results", "tam sayı olmalı")
		}
		p.MaxResults = &n
	}
	if v := c.Query("include_out_of_stock"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return p, invalidParam("include_out_of_stock", "true veya false olmalı")
		}
		p.IncludeOutOfStock = &b
	}
	if v := c.Query("min_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return p, invalidParam("min_price", "sayısal değer olmalı")
		}
		p.MinPrice = &d
	}
	if v := c.Query("max_price"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return p, invalidParam("max_price", "sayısal değer olmalı")
		}
		p.MaxPrice = &d
	}

	return p, nil
}

// mapEngineError, motor hatalarını HTTP durum kodlarına çevirir. Çağıran
// "isteğini düzelt" (400) ile "sonra tekrar dene" (503) ayrımını durum
// kodundan yapabilmeli.
func mapEngineError(err error) error {
	var ip *InvalidParameterError
	switch {
	case errors.As(err, &ip):
		return fiber.NewError(fiber.StatusBadRequest, ip.Error())
	case errors.Is(err, ErrCancelled):
		return fiber.NewError(fiber.StatusRequestTimeout, "İstek iptal edildi")
	case errors.Is(err, ErrStoreUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, "Veri deposuna ulaşılamadı, sonra tekrar deneyin")
	default:
		return err
	}
}
