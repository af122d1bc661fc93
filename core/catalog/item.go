package catalog

import "github.com/gosimple/slug"

// Variant is a purchasable option of an item (color, sku).
type Variant struct {
	VariantID  string            `json:"variant_id" mapstructure:"variant_id"`
	SKU        string            `json:"sku" mapstructure:"sku"`
	Attributes map[string]string `json:"attributes,omitempty" mapstructure:"attributes"`
	SalePrice  int64             `json:"sale_price" mapstructure:"sale_price"`
	IsActive   bool              `json:"is_active" mapstructure:"is_active"`
	IsPreorder bool              `json:"is_preorder" mapstructure:"is_preorder"`
}

// Item is a sellable catalog entity. Prices are whole currency units (VND).
type Item struct {
	ID        string `json:"id" mapstructure:"id"`
	Name      string `json:"name" mapstructure:"name"`
	BasePrice int64  `json:"base_price" mapstructure:"base_price"`
	IsActive  bool   `json:"is_active" mapstructure:"is_active"`
	Badge     string `json:"badge,omitempty" mapstructure:"badge"`

	// Attributes holds the classification values per dimension key.
	Attributes map[string][]string `json:"attributes,omitempty" mapstructure:"attributes"`
	// Measures holds numeric properties used by bucket dimensions (e.g. total_width_mm).
	Measures map[string]float64 `json:"measures,omitempty" mapstructure:"measures"`
	// Text holds secondary searchable fields (description, technology names).
	Text map[string][]string `json:"text,omitempty" mapstructure:"text"`

	Variants []Variant `json:"variants" mapstructure:"variants"`
	Images   []string  `json:"images" mapstructure:"images"`
}

// DisplayItem is an Item resolved for rendering.
type DisplayItem struct {
	Item
	Price  int64  `json:"price"`
	Image  string `json:"image"`
	URLKey string `json:"url_key"`
}

// DisplayPrice returns the sale price of the first active variant,
// falling back to the base price.
func (it Item) DisplayPrice() int64 {
	for _, v := range it.Variants {
		if v.IsActive {
			return v.SalePrice
		}
	}
	return it.BasePrice
}

// PrimaryImage returns the first image URL or "".
func (it Item) PrimaryImage() string {
	if len(it.Images) == 0 {
		return ""
	}
	return it.Images[0]
}

// Display resolves price, thumbnail and url key.
func Display(it Item) DisplayItem {
	return DisplayItem{
		Item:   it,
		Price:  it.DisplayPrice(),
		Image:  it.PrimaryImage(),
		URLKey: slug.Make(it.Name),
	}
}
