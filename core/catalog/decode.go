package catalog

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

var validate = validator.New()

// viewInput is the loose JSON/GraphQL shape accepted by DecodeView.
type viewInput struct {
	Selections map[string][]string `mapstructure:"selections"`
	Price      *PriceRange         `mapstructure:"price_range"`
	Search     string              `mapstructure:"search" validate:"max=256"`
	Page       int                 `mapstructure:"page" validate:"gte=0"`
	PageSize   int                 `mapstructure:"page_size" validate:"gte=0,lte=500"`
}

var viewDecodeHook = mapstructure.ComposeDecodeHookFunc(
	mapstructure.StringToSliceHookFunc(","),
)

// DecodeView builds a view from a decoded JSON object such as
//
//	{"selections": {"shape": ["ROUND", "OVAL"]}, "price_range": {"min": 0, "max": 900000},
//	 "search": "lily", "page": 2, "page_size": 6}
//
// Missing fields fall back to the descriptor defaults; a zero page or page
// size means "default".
func DecodeView(d *Descriptor, in map[string]interface{}) (View, error) {
	var raw viewInput
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       viewDecodeHook,
		Result:           &raw,
		TagName:          "mapstructure",
	})
	if err != nil {
		return View{}, err
	}
	if err := dec.Decode(in); err != nil {
		return View{}, fmt.Errorf("decode view: %w", err)
	}
	if err := validate.Struct(raw); err != nil {
		return View{}, fmt.Errorf("validate view: %w", err)
	}

	v := NewView(d)
	for key, values := range raw.Selections {
		for _, val := range values {
			val = strings.TrimSpace(val)
			if val == "" || v.Criteria.Selected(key).Has(val) {
				continue
			}
			v.Criteria = v.Criteria.Toggle(key, val)
		}
	}
	if raw.Price != nil {
		p := *raw.Price
		v.Criteria.Price = &p
	}
	v.Criteria.Search = raw.Search
	if raw.Page > 0 {
		v.Page.PageNumber = raw.Page
	}
	if raw.PageSize > 0 {
		v.Page.PageSize = raw.PageSize
	}
	return v, nil
}
