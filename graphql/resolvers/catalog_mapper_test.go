package resolvers

import (
	"math"
	"testing"

	"eyewear.GO/core/catalog"
)

func TestMapItem_SaturatesPrices(t *testing.T) {
	it := catalog.Display(catalog.Item{
		ID:        "big",
		Name:      "Kính Lớn",
		BasePrice: math.MaxInt32 + 1,
		Variants:  []catalog.Variant{{VariantID: "v", SalePrice: -5_000_000_000, IsActive: true}},
	})
	got := mapItem(it)
	if got.BasePrice != math.MaxInt32 {
		t.Errorf("BasePrice = %d, want MaxInt32", got.BasePrice)
	}
	if got.Price != math.MinInt32 || got.Variants[0].SalePrice != math.MinInt32 {
		t.Errorf("Price = %d SalePrice = %d, want MinInt32", got.Price, got.Variants[0].SalePrice)
	}
}

func TestMapPage_HugePage(t *testing.T) {
	res, err := catalog.Paginate(nil, catalog.PageRequest{PageNumber: math.MaxInt, PageSize: 6})
	if err != nil {
		t.Fatalf("Paginate: %v", err)
	}
	page := mapPage(res)
	if page.CurrentPage != math.MaxInt32 || page.TotalPages != 1 || len(page.Items) != 0 {
		t.Errorf("page = %+v", page)
	}
}
