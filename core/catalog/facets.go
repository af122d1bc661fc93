package catalog

// FacetCount is how many items would match if an option were selected.
type FacetCount struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Facet lists the option counts of one dimension.
type Facet struct {
	Key     string       `json:"key"`
	Label   string       `json:"label"`
	Options []FacetCount `json:"options"`
}

// Facets counts, per dimension option, the items that pass c with that
// dimension's own selection ignored, so selected options of a dimension
// do not zero out their siblings. Options keep descriptor order.
func (d *Descriptor) Facets(items []Item, c Criteria) []Facet {
	out := make([]Facet, 0, len(d.Dimensions))
	for _, dim := range d.Dimensions {
		others := c.Clone()
		delete(others.Selections, dim.Key)

		counts := make(map[string]int, len(dim.Options))
		for _, it := range d.ApplyFilters(items, others) {
			for _, v := range NewSet(dim.Values(it)...).Values() {
				counts[v]++
			}
		}

		opts := dim.Options
		if len(opts) == 0 {
			for _, b := range dim.Buckets {
				opts = append(opts, Option{ID: b.ID, Label: b.ID})
			}
		}
		f := Facet{Key: dim.Key, Label: dim.Label, Options: make([]FacetCount, 0, len(opts))}
		for _, o := range opts {
			f.Options = append(f.Options, FacetCount{ID: o.ID, Label: o.Label, Count: counts[o.ID]})
		}
		out = append(out, f)
	}
	return out
}
