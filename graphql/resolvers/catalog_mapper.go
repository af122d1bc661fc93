package resolvers

import (
	"math"
	"sort"

	"github.com/graph-gophers/graphql-go"

	"eyewear.GO/core/catalog"
	gqlmodels "eyewear.GO/graphql/models"
)

func mapKind(d *catalog.Descriptor) *gqlmodels.CatalogKind {
	return &gqlmodels.CatalogKind{
		Kind:            d.Kind,
		Label:           d.Label,
		DefaultPageSize: toInt32(d.DefaultPageSize),
		MinPrice:        toInt32(d.DefaultPriceRange.Min),
		MaxPrice:        toInt32(d.DefaultPriceRange.Max),
	}
}

func mapPage(res catalog.PageResult) *gqlmodels.CatalogPage {
	items := make([]*gqlmodels.CatalogItem, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, mapItem(it))
	}
	return &gqlmodels.CatalogPage{
		Items:       items,
		TotalItems:  toInt32(res.TotalItems),
		TotalPages:  toInt32(res.TotalPages),
		CurrentPage: toInt32(res.CurrentPage),
		PageSize:    toInt32(res.PageSize),
	}
}

func mapItem(it catalog.DisplayItem) *gqlmodels.CatalogItem {
	out := &gqlmodels.CatalogItem{
		ID:        graphql.ID(it.ID),
		Name:      it.Name,
		URLKey:    it.URLKey,
		Price:     toInt32(it.Price),
		BasePrice: toInt32(it.BasePrice),
		Image:     optional(it.Image),
		Badge:     optional(it.Badge),
		IsActive:  it.IsActive,
		Images:    append([]string{}, it.Images...),
	}

	keys := make([]string, 0, len(it.Attributes))
	for k := range it.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out.Attributes = make([]*gqlmodels.AttributeValue, 0, len(keys))
	for _, k := range keys {
		out.Attributes = append(out.Attributes, &gqlmodels.AttributeValue{
			Key:    k,
			Values: append([]string{}, it.Attributes[k]...),
		})
	}

	out.Variants = make([]*gqlmodels.CatalogVariant, 0, len(it.Variants))
	for _, v := range it.Variants {
		out.Variants = append(out.Variants, &gqlmodels.CatalogVariant{
			VariantID:  graphql.ID(v.VariantID),
			SKU:        v.SKU,
			SalePrice:  toInt32(v.SalePrice),
			ColorName:  optional(v.Attributes["color_name"]),
			IsActive:   v.IsActive,
			IsPreorder: v.IsPreorder,
		})
	}
	return out
}

func mapDimension(dim catalog.Dimension) *gqlmodels.CatalogDimension {
	out := &gqlmodels.CatalogDimension{Key: dim.Key, Label: dim.Label}
	out.Options = make([]*gqlmodels.CatalogOption, 0, len(dim.Options))
	for _, o := range dim.Options {
		out.Options = append(out.Options, &gqlmodels.CatalogOption{ID: o.ID, Label: o.Label})
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// toInt32 saturates n to the GraphQL Int range.
func toInt32[T int | int64](n T) int32 {
	switch {
	case int64(n) > math.MaxInt32:
		return math.MaxInt32
	case int64(n) < math.MinInt32:
		return math.MinInt32
	}
	return int32(n)
}
