package catalog

// Descriptor declares the shape of one catalog: its filter dimensions,
// which text fields participate in search, and browsing defaults.
type Descriptor struct {
	Kind         string      `json:"kind"`
	Label        string      `json:"label"`
	Dimensions   []Dimension `json:"dimensions"`
	SearchFields []string    `json:"search_fields,omitempty"`

	DefaultPageSize   int        `json:"default_page_size"`
	DefaultPriceRange PriceRange `json:"default_price_range"`
}

// Dimension looks up a dimension by key.
func (d *Descriptor) Dimension(key string) (Dimension, bool) {
	for _, dim := range d.Dimensions {
		if dim.Key == key {
			return dim, true
		}
	}
	return Dimension{}, false
}

// DefaultCriteria returns the criteria a fresh browsing session starts with.
func (d *Descriptor) DefaultCriteria() Criteria {
	p := d.DefaultPriceRange
	return Criteria{Price: &p}
}

// DefaultPage returns page 1 at the default page size.
func (d *Descriptor) DefaultPage() PageRequest {
	size := d.DefaultPageSize
	if size <= 0 {
		size = 20
	}
	return PageRequest{PageNumber: 1, PageSize: size}
}
