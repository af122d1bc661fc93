package graphqlserver

import (
	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"eyewear.GO/graphql"
	"eyewear.GO/graphql/registry"
	_ "eyewear.GO/graphql/resolvers"
	catalogService "eyewear.GO/service/catalog"
)

// NewSchema parses the schema (base + registered extensions) against the
// registered Query resolver.
func NewSchema(svc *catalogService.Service) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), registry.GetQueryResolver(svc), gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
