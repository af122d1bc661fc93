package resolvers

import (
	"context"
	"encoding/json"

	"eyewear.GO/graphql"
	gqlregistry "eyewear.GO/graphql/registry"
	catalogService "eyewear.GO/service/catalog"
)

func init() {
	gqlregistry.RegisterQueryResolverFactory(func(svc *catalogService.Service) interface{} {
		return NewQueryResolver(svc)
	})
}

// QueryResolver is the single resolver for all Query fields.
// Methods live in catalog.go. New Query fields: use RegisterSchemaExtension
// + add method on QueryResolver, or use _extension for fully dynamic resolvers.
type QueryResolver struct {
	svc *catalogService.Service
}

func NewQueryResolver(svc *catalogService.Service) *QueryResolver {
	return &QueryResolver{svc: svc}
}

// ExtensionArgs for _extension(name, args). Args is a JSON object.
type ExtensionArgs struct {
	Name string
	Args *string
}

// Extension dispatches to registered custom resolvers and returns their
// result as JSON.
func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		if err := json.Unmarshal([]byte(*args.Args), &m); err != nil {
			return nil, err
		}
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := gqlregistry.Resolve(graphql.WithCatalog(ctx, r.svc), args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}
