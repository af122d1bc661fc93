package graphql

import (
	"context"

	catalogService "eyewear.GO/service/catalog"
)

// Context keys for resolver injection (avoids circular imports).
type contextKey string

const CtxKeyCatalog contextKey = "catalogService"

// WithCatalog attaches the catalog service for _extension resolvers.
func WithCatalog(ctx context.Context, svc *catalogService.Service) context.Context {
	return context.WithValue(ctx, CtxKeyCatalog, svc)
}

// CatalogFromContext returns the catalog service attached by WithCatalog, or nil.
func CatalogFromContext(ctx context.Context) *catalogService.Service {
	if svc, ok := ctx.Value(CtxKeyCatalog).(*catalogService.Service); ok {
		return svc
	}
	return nil
}
