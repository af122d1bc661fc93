package catalog

import "strings"

// Trace counts the items surviving each filter stage, in evaluation order.
type Trace struct {
	Input      int            `json:"input"`
	Active     int            `json:"active"`
	Dimensions map[string]int `json:"dimensions,omitempty"`
	Price      int            `json:"price"`
	Search     int            `json:"search"`
}

// ApplyFilters returns the order-preserving subsequence of items that
// satisfy c. Stages: inactive items dropped, each constrained dimension,
// price range, then search.
func (d *Descriptor) ApplyFilters(items []Item, c Criteria) []Item {
	out, _ := d.ApplyFiltersTrace(items, c)
	return out
}

// ApplyFiltersTrace is ApplyFilters plus per-stage survivor counts.
func (d *Descriptor) ApplyFiltersTrace(items []Item, c Criteria) ([]Item, Trace) {
	tr := Trace{Input: len(items)}

	out := keep(items, func(it Item) bool { return it.IsActive })
	tr.Active = len(out)

	for _, dim := range d.Dimensions {
		sel := c.Selected(dim.Key)
		if sel.Len() == 0 {
			continue
		}
		out = keep(out, func(it Item) bool { return dim.Matches(it, sel) })
		if tr.Dimensions == nil {
			tr.Dimensions = make(map[string]int)
		}
		tr.Dimensions[dim.Key] = len(out)
	}

	if c.Price != nil {
		r := *c.Price
		out = keep(out, func(it Item) bool { return r.Contains(it.DisplayPrice()) })
	}
	tr.Price = len(out)

	if c.Search != "" {
		q := strings.ToLower(c.Search)
		out = keep(out, func(it Item) bool { return d.matchesSearch(it, q) })
	}
	tr.Search = len(out)

	return out, tr
}

func (d *Descriptor) matchesSearch(it Item, lowered string) bool {
	if strings.Contains(strings.ToLower(it.Name), lowered) {
		return true
	}
	for _, field := range d.SearchFields {
		for _, text := range it.Text[field] {
			if strings.Contains(strings.ToLower(text), lowered) {
				return true
			}
		}
	}
	return false
}

// keep never aliases the input slice.
func keep(items []Item, pred func(Item) bool) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if pred(it) {
			out = append(out, it)
		}
	}
	return out
}
