package catalog

import (
	"reflect"
	"testing"

	core "eyewear.GO/core/catalog"
)

func TestProduct_TableNames(t *testing.T) {
	if (Product{}).TableName() != "catalog_product" {
		t.Errorf("Product.TableName = %q", (Product{}).TableName())
	}
	if (ProductVariant{}).TableName() != "catalog_product_variant" {
		t.Errorf("ProductVariant.TableName = %q", (ProductVariant{}).TableName())
	}
	if (ProductImage{}).TableName() != "catalog_product_image" {
		t.Errorf("ProductImage.TableName = %q", (ProductImage{}).TableName())
	}
}

func TestFromItem_ToItem(t *testing.T) {
	it := core.Item{
		ID:         "frame-1",
		Name:       "Lily",
		BasePrice:  450000,
		IsActive:   true,
		Badge:      "new",
		Attributes: map[string][]string{"shape": {"ROUND"}},
		Measures:   map[string]float64{"total_width_mm": 138},
		Text:       map[string][]string{"description": {"nhẹ"}},
		Variants: []core.Variant{
			{VariantID: "v1", SKU: "LILY-BLK", Attributes: map[string]string{"color_name": "Black"}, SalePrice: 399000, IsActive: true},
		},
		Images: []string{"a.jpg", "b.jpg"},
	}
	p := FromItem("frames", 3, it)
	if p.Kind != "frames" || p.Position != 3 {
		t.Errorf("Kind/Position = %q/%d", p.Kind, p.Position)
	}
	if p.Images[1].Position != 1 || p.Variants[0].ProductID != "frame-1" {
		t.Errorf("children not linked: %+v %+v", p.Images, p.Variants)
	}
	if got := p.ToItem(); !reflect.DeepEqual(got, it) {
		t.Errorf("ToItem = %+v\nwant %+v", got, it)
	}
}
