package graphqlserver

import (
	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"chatshop.GO/graphql"
	"chatshop.GO/graphql/resolvers"
	"chatshop.GO/service/search"
)

// NewSchema parses the base schema plus registered extensions over the engine.
func NewSchema(engine *search.Engine) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), resolvers.NewQueryResolver(engine), gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
