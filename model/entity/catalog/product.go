package catalog

import (
	"time"

	"gorm.io/datatypes"

	core "eyewear.GO/core/catalog"
)

// Product represents catalog_product: one sellable frame, lens or accessory.
type Product struct {
	ProductID  string                                  `gorm:"column:product_id;primaryKey;size:64" json:"product_id"`
	Kind       string                                  `gorm:"column:kind;size:32;not null;index:idx_catalog_product_kind_position,priority:1" json:"kind"`
	Position   int                                     `gorm:"column:position;not null;index:idx_catalog_product_kind_position,priority:2" json:"position"`
	Name       string                                  `gorm:"column:name;size:255;not null" json:"name"`
	BasePrice  int64                                   `gorm:"column:base_price;not null" json:"base_price"`
	IsActive   bool                                    `gorm:"column:is_active;not null" json:"is_active"`
	Badge      string                                  `gorm:"column:badge;size:64" json:"badge,omitempty"`
	Attributes datatypes.JSONType[map[string][]string] `gorm:"column:attributes" json:"attributes"`
	Measures   datatypes.JSONType[map[string]float64]  `gorm:"column:measures" json:"measures"`
	Texts      datatypes.JSONType[map[string][]string] `gorm:"column:texts" json:"texts"`
	Variants   []ProductVariant                        `gorm:"foreignKey:ProductID;references:ProductID" json:"variants"`
	Images     []ProductImage                          `gorm:"foreignKey:ProductID;references:ProductID" json:"images"`
	CreatedAt  time.Time                               `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time                               `gorm:"column:updated_at" json:"updated_at"`
}

func (Product) TableName() string {
	return "catalog_product"
}

// ProductVariant represents catalog_product_variant (color/finish option).
type ProductVariant struct {
	VariantID  string                                `gorm:"column:variant_id;primaryKey;size:64" json:"variant_id"`
	ProductID  string                                `gorm:"column:product_id;size:64;not null;index" json:"product_id"`
	Position   int                                   `gorm:"column:position;not null" json:"position"`
	SKU        string                                `gorm:"column:sku;size:64" json:"sku"`
	Attributes datatypes.JSONType[map[string]string] `gorm:"column:attributes" json:"attributes"`
	SalePrice  int64                                 `gorm:"column:sale_price;not null" json:"sale_price"`
	IsActive   bool                                  `gorm:"column:is_active;not null" json:"is_active"`
	IsPreorder bool                                  `gorm:"column:is_preorder;not null" json:"is_preorder"`
}

func (ProductVariant) TableName() string {
	return "catalog_product_variant"
}

// ProductImage represents catalog_product_image; position 0 is the primary image.
type ProductImage struct {
	ImageID   uint   `gorm:"column:image_id;primaryKey;autoIncrement" json:"image_id"`
	ProductID string `gorm:"column:product_id;size:64;not null;index" json:"product_id"`
	Position  int    `gorm:"column:position;not null" json:"position"`
	URL       string `gorm:"column:url;size:1024;not null" json:"url"`
}

func (ProductImage) TableName() string {
	return "catalog_product_image"
}

// ToItem converts the row and its preloaded children into an engine item.
// Variants and images keep slice order, which the repository sorts by position.
func (p *Product) ToItem() core.Item {
	it := core.Item{
		ID:         p.ProductID,
		Name:       p.Name,
		BasePrice:  p.BasePrice,
		IsActive:   p.IsActive,
		Badge:      p.Badge,
		Attributes: p.Attributes.Data(),
		Measures:   p.Measures.Data(),
		Text:       p.Texts.Data(),
	}
	for _, v := range p.Variants {
		it.Variants = append(it.Variants, core.Variant{
			VariantID:  v.VariantID,
			SKU:        v.SKU,
			Attributes: v.Attributes.Data(),
			SalePrice:  v.SalePrice,
			IsActive:   v.IsActive,
			IsPreorder: v.IsPreorder,
		})
	}
	for _, img := range p.Images {
		it.Images = append(it.Images, img.URL)
	}
	return it
}

// FromItem builds the row for it at merchandising position pos.
func FromItem(kind string, pos int, it core.Item) Product {
	p := Product{
		ProductID:  it.ID,
		Kind:       kind,
		Position:   pos,
		Name:       it.Name,
		BasePrice:  it.BasePrice,
		IsActive:   it.IsActive,
		Badge:      it.Badge,
		Attributes: datatypes.NewJSONType(it.Attributes),
		Measures:   datatypes.NewJSONType(it.Measures),
		Texts:      datatypes.NewJSONType(it.Text),
	}
	for i, v := range it.Variants {
		p.Variants = append(p.Variants, ProductVariant{
			VariantID:  v.VariantID,
			ProductID:  it.ID,
			Position:   i,
			SKU:        v.SKU,
			Attributes: datatypes.NewJSONType(v.Attributes),
			SalePrice:  v.SalePrice,
			IsActive:   v.IsActive,
			IsPreorder: v.IsPreorder,
		})
	}
	for i, url := range it.Images {
		p.Images = append(p.Images, ProductImage{ProductID: it.ID, Position: i, URL: url})
	}
	return p
}
