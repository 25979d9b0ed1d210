package graphqlserver

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatshop.GO/config"
	"chatshop.GO/graphql"
	gqlregistry "chatshop.GO/graphql/registry"
	entity "chatshop.GO/model/entity/catalog"
	"chatshop.GO/model/repository/catalog"
	"chatshop.GO/service/search"
	"chatshop.GO/service/session"
)

func newTestEngine() *search.Engine {
	repo := catalog.NewMemoryRepository(
		entity.Product{ID: "p1", Name: "Áo thun đỏ", Slug: "ao-thun-do", IsActive: true,
			Category: entity.Category{ID: "c1", Name: "Áo"}, Images: []string{"p1.jpg"},
			Variants: []entity.Variant{{Color: "đỏ", Size: "M", Price: 1200000, DiscountPercent: 10}}},
		entity.Product{ID: "p2", Name: "Áo thun trắng", Slug: "ao-thun-trang", IsActive: true,
			Category: entity.Category{ID: "c1", Name: "Áo"},
			Variants: []entity.Variant{{Color: "trắng", Size: "L", Price: 300000}}},
	)
	store := session.NewMemoryStore(10, time.Minute)
	return search.NewEngine(repo, store, config.DefaultSearchConfig(), search.Options{})
}

func exec(t *testing.T, ctx context.Context, engine *search.Engine, query string) map[string]interface{} {
	t.Helper()
	schema, err := NewSchema(engine)
	require.NoError(t, err)
	resp := schema.Exec(ctx, query, "", nil)
	require.Empty(t, resp.Errors)
	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data
}

func TestProductsQuery(t *testing.T) {
	data := exec(t, context.Background(), newTestEngine(), `{
		products(name: "áo thun", priceRange: "1m", pageSize: 1) {
			totalCount
			pageInfo { pageSize currentPage totalPages }
			filters { name priceRange color }
			items { id price image category { name } variants { effectivePrice } }
		}
	}`)

	res := data["products"].(map[string]interface{})
	assert.Equal(t, float64(1), res["totalCount"])
	assert.Equal(t, "1m-2m", res["filters"].(map[string]interface{})["priceRange"])
	assert.Nil(t, res["filters"].(map[string]interface{})["color"])

	items := res["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "p1", item["id"])
	assert.Equal(t, float64(1080000), item["price"])
	assert.Equal(t, "p1.jpg", item["image"])
}

func TestSessionQuery(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()
	_, err := engine.Search(ctx, "s1", []search.Entity{{Entity: search.EntityName, Value: "áo thun"}})
	require.NoError(t, err)

	data := exec(t, graphql.WithSessionID(ctx, "s1"), engine, `{
		session { id resultCount offset suggestion { dimension value } currentPage { id } }
	}`)
	sess := data["session"].(map[string]interface{})
	assert.Equal(t, "s1", sess["id"])
	assert.Equal(t, float64(2), sess["resultCount"])
	assert.Equal(t, map[string]interface{}{"dimension": "color", "value": "trắng"}, sess["suggestion"])
	assert.Len(t, sess["currentPage"], 2)

	data = exec(t, ctx, engine, `{ session { id } }`)
	assert.Nil(t, data["session"])
}

func TestPriceBandsQuery(t *testing.T) {
	data := exec(t, context.Background(), newTestEngine(), `{ priceBands { name } }`)
	bands := data["priceBands"].([]interface{})
	require.Len(t, bands, 5)
	assert.Equal(t, "under-500k", bands[0].(map[string]interface{})["name"])
}

func TestExtensionsQuery(t *testing.T) {
	gqlregistry.Unregister("colorCount")
	gqlregistry.Register(gqlregistry.Extension{
		Name:        "colorCount",
		Description: "Number of colors in a list",
		Required:    []string{"colors"},
		Resolve: func(_ context.Context, args map[string]interface{}) (interface{}, error) {
			return len(args["colors"].([]interface{})), nil
		},
	})
	defer gqlregistry.Unregister("colorCount")

	data := exec(t, context.Background(), newTestEngine(), `{
		_extensions { name description required }
		_extension(name: "colorCount", args: "{\"colors\":[\"đỏ\",\"trắng\"]}")
	}`)
	assert.Contains(t, data["_extensions"], map[string]interface{}{
		"name": "colorCount", "description": "Number of colors in a list", "required": []interface{}{"colors"},
	})
	assert.Equal(t, "2", data["_extension"])

	schema, err := NewSchema(newTestEngine())
	require.NoError(t, err)
	resp := schema.Exec(context.Background(), `{ _extension(name: "colorCount", args: "not json") }`, "", nil)
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0].Message, "args must be a JSON object")
}
