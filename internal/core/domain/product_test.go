package domain_test

import (
	"math"
	"testing"

	"github.com/peakgear/storefront/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImageSet(t *testing.T) {

	t.Run("ClassifiesSlots", func(t *testing.T) {
		s := domain.ParseImageSet(
			"a_main.jpg, a_prev.jpg, a_1.jpg, a_2.jpg, random.jpg",
		)

		assert.Equal(t, "a_main.jpg", s.Main)
		assert.Equal(t, "a_prev.jpg", s.Preview)

		require.Len(t, s.Gallery, 2)
		assert.Equal(t, "a_1.jpg", s.Gallery[0].URL)
		assert.Equal(t, "a_2.jpg", s.Gallery[1].URL)
	})

	t.Run("GalleryOrderedByNumericSuffix", func(t *testing.T) {
		s := domain.ParseImageSet("b_10.png,b_2.png,b_1.png")

		require.Len(t, s.Gallery, 3)
		assert.Equal(t, 1, s.Gallery[0].Index)
		assert.Equal(t, 2, s.Gallery[1].Index)
		assert.Equal(t, 10, s.Gallery[2].Index)
	})

	t.Run("ExcludesUnmatchedURLs", func(t *testing.T) {
		s := domain.ParseImageSet("random.jpg,another_x.jpg")

		assert.Empty(t, s.Main)
		assert.Empty(t, s.Preview)
		assert.Empty(t, s.Gallery)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		s := domain.ParseImageSet("")

		assert.Empty(t, s.Main)
		assert.Empty(t, s.Preview)
		assert.Empty(t, s.Gallery)
	})

	t.Run("JoinRebuildsSlotOrder", func(t *testing.T) {
		s := domain.ParseImageSet("a_2.jpg,a_main.jpg,a_1.jpg,a_prev.jpg")

		assert.Equal(t, "a_main.jpg,a_prev.jpg,a_1.jpg,a_2.jpg", s.Join())
	})
}

func TestEffectivePrice(t *testing.T) {

	t.Run("ListPriceWithoutDiscount", func(t *testing.T) {
		p := domain.Product{Price: "10000", Discount: 0}
		assert.Equal(t, 10000.0, p.EffectivePrice())
	})

	t.Run("DiscountPriceWins", func(t *testing.T) {
		p := domain.Product{Price: "10000", DiscountPrice: "8000"}
		assert.Equal(t, 8000.0, p.EffectivePrice())
	})

	t.Run("ZeroDiscountPriceIgnored", func(t *testing.T) {
		p := domain.Product{Price: "10000", DiscountPrice: "0"}
		assert.Equal(t, 10000.0, p.EffectivePrice())
	})

	t.Run("AbsentPriceIsInfinite", func(t *testing.T) {
		p := domain.Product{}
		assert.True(t, math.IsInf(p.EffectivePrice(), 1))
	})

	t.Run("NonNumericPriceIsInfinite", func(t *testing.T) {
		p := domain.Product{Price: "n/a"}
		assert.True(t, math.IsInf(p.EffectivePrice(), 1))
	})
}

func TestSortProducts(t *testing.T) {
	products := func() []domain.Product {
		return []domain.Product{
			{ProductID: "1", Price: "300", Views: 5, Discount: 10},
			{ProductID: "2", Price: "100", Views: 50, Discount: 0},
			{ProductID: "3", Price: "", Views: 20, Discount: 30},
			{ProductID: "4", Price: "200", DiscountPrice: "50", Views: 1, Discount: 75},
		}
	}

	ids := func(ps []domain.Product) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.ProductID)
		}
		return out
	}

	t.Run("PriceAscendingPushesUnpricedLast", func(t *testing.T) {
		ps := products()
		domain.SortProducts(ps, domain.SortPriceAsc)
		assert.Equal(t, []string{"4", "2", "1", "3"}, ids(ps))
	})

	t.Run("PriceDescending", func(t *testing.T) {
		ps := products()
		domain.SortProducts(ps, domain.SortPriceDesc)
		assert.Equal(t, []string{"3", "1", "2", "4"}, ids(ps))
	})

	t.Run("PopularByViews", func(t *testing.T) {
		ps := products()
		domain.SortProducts(ps, domain.SortPopular)
		assert.Equal(t, []string{"2", "3", "1", "4"}, ids(ps))
	})

	t.Run("DiscountDescending", func(t *testing.T) {
		ps := products()
		domain.SortProducts(ps, domain.SortDiscount)
		assert.Equal(t, []string{"4", "3", "1", "2"}, ids(ps))
	})

	t.Run("DefaultKeepsServerOrder", func(t *testing.T) {
		ps := products()
		domain.SortProducts(ps, domain.SortDefault)
		assert.Equal(t, []string{"1", "2", "3", "4"}, ids(ps))
	})
}
