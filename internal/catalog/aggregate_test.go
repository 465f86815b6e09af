package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateCategories(t *testing.T) {
	t.Run("boş katalog", func(t *testing.T) {
		stats := aggregateCategories(nil)

		assert.Empty(t, stats.Categories)
		assert.Equal(t, 0, stats.TotalCategories)
		assert.Equal(t, 0, stats.TotalProducts)
	})

	t.Run("kategori başına sayım ve toplamlar", func(t *testing.T) {
		entries := []CatalogEntry{
			entry("p1", "Elma", "Meyve", "50", true),
			entry("p2", "Armut", "Meyve", "60", true),
			entry("p3", "Ispanak", "Sebze", "30", true),
		}
		stats := aggregateCategories(entries)

		require.Len(t, stats.Categories, 2)
		assert.Equal(t, CategoryCount{Name: "Meyve", Count: 2}, stats.Categories[0])
		assert.Equal(t, CategoryCount{Name: "Sebze", Count: 1}, stats.Categories[1])
		assert.Equal(t, 2, stats.TotalCategories)
		assert.Equal(t, 3, stats.TotalProducts)
	})

	t.Run("sayıların toplamı ürün sayısına eşit", func(t *testing.T) {
		entries := []CatalogEntry{
			entry("p1", "a", "A", "1", true),
			entry("p2", "b", "B", "1", true),
			entry("p3", "c", "A", "1", true),
			entry("p4", "d", "C", "1", false),
			entry("p5", "e", "B", "1", true),
		}
		stats := aggregateCategories(entries)

		sum := 0
		for _, c := range stats.Categories {
			sum += c.Count
		}
		assert.Equal(t, stats.TotalProducts, sum)
		assert.Equal(t, len(entries), stats.TotalProducts)
	})

	t.Run("gruplama büyük/küçük harfe duyarlı", func(t *testing.T) {
		entries := []CatalogEntry{
			entry("p1", "a", "Meyve", "1", true),
			entry("p2", "b", "meyve", "1", true),
		}
		stats := aggregateCategories(entries)

		// Farklı yazımlar birleştirilmez
		require.Len(t, stats.Categories, 2)
		assert.Equal(t, 2, stats.TotalCategories)
		assert.Equal(t, 2, stats.TotalProducts)
	})

	t.Run("çıktı ada göre sıralı", func(t *testing.T) {
		entries := []CatalogEntry{
			entry("p1", "a", "Sebze", "1", true),
			entry("p2", "b", "Bakliyat", "1", true),
			entry("p3", "c", "Meyve", "1", true),
		}
		stats := aggregateCategories(entries)

		require.Len(t, stats.Categories, 3)
		assert.Equal(t, "Bakliyat", stats.Categories[0].Name)
		assert.Equal(t, "Meyve", stats.Categories[1].Name)
		assert.Equal(t, "Sebze", stats.Categories[2].Name)
	})
}
