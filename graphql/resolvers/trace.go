package resolvers

import (
	"context"
	"errors"
	"fmt"

	"eyewear.GO/core/catalog"
	"eyewear.GO/graphql"
	gqlregistry "eyewear.GO/graphql/registry"
)

// TraceExtension is the _extension name of the filter diagnostics resolver.
const TraceExtension = "catalogTrace"

func init() {
	gqlregistry.Register(TraceExtension, resolveTrace)
}

// traceResult reports how many items survived each filter stage.
type traceResult struct {
	Kind  string        `json:"kind"`
	Trace catalog.Trace `json:"trace"`
	Total int           `json:"total"`
}

// resolveTrace takes {"kind": "...", <DecodeView fields>} and replays the
// filter pipeline over the current snapshot.
func resolveTrace(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	svc := graphql.CatalogFromContext(ctx)
	if svc == nil {
		return nil, errors.New("catalogTrace: catalog service not available")
	}
	kind, _ := args["kind"].(string)
	if kind == "" {
		return nil, fmt.Errorf("catalogTrace: kind is required")
	}
	d, err := svc.Descriptor(kind)
	if err != nil {
		return nil, err
	}
	v, err := catalog.DecodeView(d, args)
	if err != nil {
		return nil, err
	}
	items, err := svc.Snapshot(ctx, kind)
	if err != nil {
		return nil, err
	}
	filtered, tr := d.ApplyFiltersTrace(items, v.Criteria)
	return traceResult{Kind: kind, Trace: tr, Total: len(filtered)}, nil
}
