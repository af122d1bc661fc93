package catalog

// PriceRange is an inclusive bound on the display price.
type PriceRange struct {
	Min int64 `json:"min" mapstructure:"min"`
	Max int64 `json:"max" mapstructure:"max"`
}

func (r PriceRange) Contains(price int64) bool {
	return price >= r.Min && price <= r.Max
}

// Criteria is the full set of constraints applied to a catalog query.
// A nil Price imposes no price constraint; a dimension missing from
// Selections or selected with an empty set imposes none either.
type Criteria struct {
	Selections map[string]Set[string] `json:"selections,omitempty"`
	Price      *PriceRange            `json:"price_range,omitempty"`
	Search     string                 `json:"search,omitempty"`
}

// Selected returns the selection for a dimension key (possibly nil).
func (c Criteria) Selected(key string) Set[string] {
	return c.Selections[key]
}

// Clone deep-copies the criteria.
func (c Criteria) Clone() Criteria {
	out := Criteria{Search: c.Search}
	if c.Selections != nil {
		out.Selections = make(map[string]Set[string], len(c.Selections))
		for k, s := range c.Selections {
			out.Selections[k] = s.Clone()
		}
	}
	if c.Price != nil {
		p := *c.Price
		out.Price = &p
	}
	return out
}

// Toggle returns criteria with value toggled in the key dimension.
func (c Criteria) Toggle(key, value string) Criteria {
	out := c.Clone()
	if out.Selections == nil {
		out.Selections = make(map[string]Set[string])
	}
	next := ToggleSetMember(out.Selections[key], value)
	if next.Len() == 0 {
		delete(out.Selections, key)
	} else {
		out.Selections[key] = next
	}
	return out
}

// PageRequest asks for one 1-based page.
type PageRequest struct {
	PageNumber int `json:"page" mapstructure:"page"`
	PageSize   int `json:"page_size" mapstructure:"page_size"`
}

// PageResult is one page of display items plus pagination metadata.
type PageResult struct {
	Items       []DisplayItem `json:"items"`
	TotalItems  int           `json:"total_items"`
	TotalPages  int           `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
	PageSize    int           `json:"page_size"`
}
