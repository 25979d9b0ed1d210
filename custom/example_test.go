package custom

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gqlregistry "chatshop.GO/graphql/registry"
)

func TestPriceBandExtension(t *testing.T) {
	out, err := gqlregistry.Resolve(context.Background(), "priceBand", map[string]interface{}{
		"price":           float64(1200000),
		"discountPercent": float64(10),
	})
	require.NoError(t, err)
	res := out.(map[string]interface{})
	assert.Equal(t, int64(1080000), res["effectivePrice"])
	assert.Equal(t, "1m-2m", res["band"])

	_, err = gqlregistry.Resolve(context.Background(), "priceBand", map[string]interface{}{})
	assert.ErrorIs(t, err, gqlregistry.ErrMissingArgument)

	_, err = gqlregistry.Resolve(context.Background(), "priceBand", map[string]interface{}{"price": "1200000"})
	assert.Error(t, err)
}
