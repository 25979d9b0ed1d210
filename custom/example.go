// Package custom shows how to extend the service without touching core packages:
// GraphQL extensions, CLI commands and root routes register here from init().
package custom

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"chatshop.GO/api"
	"chatshop.GO/cmd"
	gqlregistry "chatshop.GO/graphql/registry"
	entity "chatshop.GO/model/entity/catalog"
	"chatshop.GO/service/search"
)

func init() {
	// GraphQL extension: _extension(name: "priceBand", args: "{\"price\":1200000,\"discountPercent\":10}")
	gqlregistry.Register(gqlregistry.Extension{
		Name:        "priceBand",
		Description: "Effective price and price band of a price with an optional discount",
		Required:    []string{"price"},
		Resolve:     priceBandResolver,
	})

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "catalog:bands",
		Short: "List the price bands understood by the search",
		Run: func(c *cobra.Command, args []string) {
			for _, b := range search.Bands() {
				fmt.Fprintln(c.OutOrStdout(), b.String())
			}
		},
	})

	// HTTP route
	api.RegisterGET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func priceBandResolver(_ context.Context, args map[string]interface{}) (interface{}, error) {
	price, ok := args["price"].(float64)
	if !ok {
		return nil, fmt.Errorf("priceBand: numeric price is required")
	}
	discount, _ := args["discountPercent"].(float64)
	effective, ok := search.EffectivePrice(entity.Variant{Price: int64(price), DiscountPercent: discount})
	if !ok {
		return map[string]interface{}{"effectivePrice": nil, "band": nil}, nil
	}
	return map[string]interface{}{"effectivePrice": effective, "band": search.BandOf(effective).String()}, nil
}
