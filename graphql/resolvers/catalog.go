package resolvers

import (
	"context"
	"errors"

	gql "github.com/graph-gophers/graphql-go"

	"eyewear.GO/core/catalog"
	"eyewear.GO/graphql"
	gqlmodels "eyewear.GO/graphql/models"
	catalogService "eyewear.GO/service/catalog"
)

func (r *QueryResolver) CatalogKinds() []*gqlmodels.CatalogKind {
	kinds := r.svc.Kinds()
	out := make([]*gqlmodels.CatalogKind, 0, len(kinds))
	for _, d := range kinds {
		out = append(out, mapKind(d))
	}
	return out
}

// CatalogArgs matches catalog(kind, filter, page, pageSize).
type CatalogArgs struct {
	Kind     string
	Filter   *graphql.CatalogFilter
	Page     *int32
	PageSize *int32
}

func (r *QueryResolver) Catalog(ctx context.Context, args CatalogArgs) (*gqlmodels.CatalogPage, error) {
	d, err := r.svc.Descriptor(args.Kind)
	if err != nil {
		return nil, err
	}
	page := d.DefaultPage()
	if args.Page != nil {
		page.PageNumber = int(*args.Page)
	}
	if args.PageSize != nil {
		page.PageSize = int(*args.PageSize)
	}
	res, err := r.svc.Query(ctx, args.Kind, criteriaFromFilter(d, args.Filter), page)
	if err != nil {
		return nil, err
	}
	return mapPage(res), nil
}

// ItemArgs matches catalogItem(kind, id).
type ItemArgs struct {
	Kind string
	ID   gql.ID
}

// CatalogItem returns null for an unknown id; an unknown kind is an error.
func (r *QueryResolver) CatalogItem(ctx context.Context, args ItemArgs) (*gqlmodels.CatalogItem, error) {
	it, err := r.svc.Item(ctx, args.Kind, string(args.ID))
	if errors.Is(err, catalogService.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return mapItem(it), nil
}

// KindArgs matches catalogOptions(kind).
type KindArgs struct {
	Kind string
}

func (r *QueryResolver) CatalogOptions(args KindArgs) ([]*gqlmodels.CatalogDimension, error) {
	dims, err := r.svc.Options(args.Kind)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.CatalogDimension, 0, len(dims))
	for _, dim := range dims {
		out = append(out, mapDimension(dim))
	}
	return out, nil
}

// criteriaFromFilter starts from the descriptor defaults so an omitted
// price bound keeps the default one.
func criteriaFromFilter(d *catalog.Descriptor, f *graphql.CatalogFilter) catalog.Criteria {
	c := d.DefaultCriteria()
	if f == nil {
		return c
	}
	if f.Selections != nil {
		for _, sel := range *f.Selections {
			for _, v := range sel.Values {
				if !c.Selected(sel.Dimension).Has(v) {
					c = c.Toggle(sel.Dimension, v)
				}
			}
		}
	}
	if f.MinPrice != nil {
		c.Price.Min = int64(*f.MinPrice)
	}
	if f.MaxPrice != nil {
		c.Price.Max = int64(*f.MaxPrice)
	}
	if f.Search != nil {
		c.Search = *f.Search
	}
	return c
}
