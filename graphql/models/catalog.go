package models

import "github.com/graph-gophers/graphql-go"

// GraphQL types resolved by field name (gql.UseFieldResolvers).

type CatalogKind struct {
	Kind            string
	Label           string
	DefaultPageSize int32
	MinPrice        int32
	MaxPrice        int32
}

type CatalogPage struct {
	Items       []*CatalogItem
	TotalItems  int32
	TotalPages  int32
	CurrentPage int32
	PageSize    int32
}

type CatalogItem struct {
	ID         graphql.ID
	Name       string
	URLKey     string
	Price      int32
	BasePrice  int32
	Image      *string
	Badge      *string
	IsActive   bool
	Attributes []*AttributeValue
	Variants   []*CatalogVariant
	Images     []string
}

type AttributeValue struct {
	Key    string
	Values []string
}

type CatalogVariant struct {
	VariantID  graphql.ID
	SKU        string
	SalePrice  int32
	ColorName  *string
	IsActive   bool
	IsPreorder bool
}

type CatalogDimension struct {
	Key     string
	Label   string
	Options []*CatalogOption
}

type CatalogOption struct {
	ID    string
	Label string
}
