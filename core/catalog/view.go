package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query-string keys used by View.Encode and ParseView. Every other key is
// treated as a dimension selection.
const (
	ParamMinPrice = "min_price"
	ParamMaxPrice = "max_price"
	ParamSearch   = "q"
	ParamPage     = "page"
	ParamPageSize = "page_size"
)

// View is the browsing state of one catalog session. It is a value: every
// mutator returns a new View. Filter mutations reset the page to 1.
type View struct {
	Kind     string      `json:"kind"`
	Criteria Criteria    `json:"criteria"`
	Page     PageRequest `json:"page"`
}

// NewView starts a session with the descriptor defaults.
func NewView(d *Descriptor) View {
	return View{Kind: d.Kind, Criteria: d.DefaultCriteria(), Page: d.DefaultPage()}
}

func (v View) firstPage() View {
	v.Page.PageNumber = 1
	return v
}

func (v View) Toggle(dimension, value string) View {
	v.Criteria = v.Criteria.Toggle(dimension, value)
	return v.firstPage()
}

func (v View) SetPriceRange(r PriceRange) View {
	v.Criteria = v.Criteria.Clone()
	v.Criteria.Price = &r
	return v.firstPage()
}

func (v View) SetSearch(q string) View {
	v.Criteria = v.Criteria.Clone()
	v.Criteria.Search = q
	return v.firstPage()
}

// ClearFilters restores the descriptor's default criteria.
func (v View) ClearFilters(d *Descriptor) View {
	v.Criteria = d.DefaultCriteria()
	return v.firstPage()
}

func (v View) SetPage(page int) View {
	v.Page.PageNumber = page
	return v
}

func (v View) SetPageSize(size int) View {
	v.Page.PageSize = size
	return v.firstPage()
}

// Reconcile clamps the current page into the range of res so the next
// render is never a blank page after the result set shrank.
func (v View) Reconcile(res PageResult) View {
	v.Page.PageNumber = ClampPage(v.Page.PageNumber, res.TotalPages)
	return v
}

// Encode serializes the view as URL query parameters.
func (v View) Encode() url.Values {
	q := url.Values{}
	for key, sel := range v.Criteria.Selections {
		for _, val := range sel.Values() {
			q.Add(key, val)
		}
	}
	if p := v.Criteria.Price; p != nil {
		q.Set(ParamMinPrice, strconv.FormatInt(p.Min, 10))
		q.Set(ParamMaxPrice, strconv.FormatInt(p.Max, 10))
	}
	if v.Criteria.Search != "" {
		q.Set(ParamSearch, v.Criteria.Search)
	}
	q.Set(ParamPage, strconv.Itoa(v.Page.PageNumber))
	q.Set(ParamPageSize, strconv.Itoa(v.Page.PageSize))
	return q
}

// ParseView rebuilds a view from query parameters on top of the descriptor
// defaults. Dimension values may be repeated or comma separated; keys that
// are not dimensions of d are ignored.
func ParseView(d *Descriptor, q url.Values) (View, error) {
	v := NewView(d)
	for _, dim := range d.Dimensions {
		raw, ok := q[dim.Key]
		if !ok {
			continue
		}
		for _, val := range splitValues(raw) {
			if !v.Criteria.Selected(dim.Key).Has(val) {
				v.Criteria = v.Criteria.Toggle(dim.Key, val)
			}
		}
	}

	price := *v.Criteria.Price
	if s := q.Get(ParamMinPrice); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return View{}, fmt.Errorf("%s: %w", ParamMinPrice, err)
		}
		price.Min = n
	}
	if s := q.Get(ParamMaxPrice); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return View{}, fmt.Errorf("%s: %w", ParamMaxPrice, err)
		}
		price.Max = n
	}
	v.Criteria.Price = &price
	v.Criteria.Search = q.Get(ParamSearch)

	if s := q.Get(ParamPage); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return View{}, fmt.Errorf("%s: %w", ParamPage, err)
		}
		v.Page.PageNumber = n
	}
	if s := q.Get(ParamPageSize); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return View{}, fmt.Errorf("%s: %w", ParamPageSize, err)
		}
		v.Page.PageSize = n
	}
	return v, nil
}

func splitValues(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
