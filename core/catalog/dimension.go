package catalog

// Option is one value of a closed classification enumeration.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Bucket classifies a numeric measure into an option; bounds are inclusive.
type Bucket struct {
	ID  string  `json:"id"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Dimension describes one filterable facet of a catalog.
//
// An attribute dimension compares Item.Attributes[Attribute] (Key when
// Attribute is empty) against the selected values; multi-valued attributes
// match when any value is selected. A bucket dimension classifies
// Item.Measures[Measure] into the Buckets containing it and matches those
// bucket IDs instead.
type Dimension struct {
	Key       string   `json:"key"`
	Label     string   `json:"label"`
	Options   []Option `json:"options"`
	Attribute string   `json:"attribute,omitempty"`
	Measure   string   `json:"measure,omitempty"`
	Buckets   []Bucket `json:"buckets,omitempty"`
}

func (d Dimension) attribute() string {
	if d.Attribute != "" {
		return d.Attribute
	}
	return d.Key
}

// Values returns the dimension values an item carries.
func (d Dimension) Values(it Item) []string {
	if len(d.Buckets) == 0 {
		return it.Attributes[d.attribute()]
	}
	m, ok := it.Measures[d.Measure]
	if !ok {
		return nil
	}
	var ids []string
	for _, b := range d.Buckets {
		if m >= b.Min && m <= b.Max {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// Matches reports whether the item has at least one selected value.
// An empty selection matches everything.
func (d Dimension) Matches(it Item, selected Set[string]) bool {
	if selected.Len() == 0 {
		return true
	}
	for _, v := range d.Values(it) {
		if selected.Has(v) {
			return true
		}
	}
	return false
}

// OptionLabel returns the display label of an option id, or the id itself.
func (d Dimension) OptionLabel(id string) string {
	for _, o := range d.Options {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}
