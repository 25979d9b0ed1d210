package resolvers

import (
	"context"
	"encoding/json"
	"fmt"

	gqlmodels "chatshop.GO/graphql/models"
	gqlregistry "chatshop.GO/graphql/registry"
	"chatshop.GO/service/search"
)

// QueryResolver is the single resolver for all Query fields.
// Methods live in product.go and session.go.
// New Query fields: RegisterSchemaExtension plus a method here, or a
// gqlregistry.Extension reached through _extension.
type QueryResolver struct {
	engine *search.Engine
}

func NewQueryResolver(engine *search.Engine) *QueryResolver {
	return &QueryResolver{engine: engine}
}

// ExtensionArgs for _extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

// Extension dispatches to registered custom resolvers.
func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	m := make(map[string]interface{})
	if args.Args != nil && *args.Args != "" {
		if err := json.Unmarshal([]byte(*args.Args), &m); err != nil {
			return nil, fmt.Errorf("_extension %s: args must be a JSON object: %w", args.Name, err)
		}
	}
	out, err := gqlregistry.Resolve(ctx, args.Name, m)
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

// Extensions lists what _extension can dispatch to.
func (r *QueryResolver) Extensions() []*gqlmodels.ExtensionInfo {
	list := gqlregistry.List()
	out := make([]*gqlmodels.ExtensionInfo, 0, len(list))
	for _, ext := range list {
		required := ext.Required
		if required == nil {
			required = []string{}
		}
		out = append(out, &gqlmodels.ExtensionInfo{Name: ext.Name, Description: ext.Description, Required: required})
	}
	return out
}
