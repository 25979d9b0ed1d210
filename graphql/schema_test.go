package graphql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatshop.GO/core/registry"
)

func resetSchema(t *testing.T) {
	t.Helper()
	reset := func() {
		registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistrySchema)
		registry.GlobalRegistry.SetGlobal(registry.KeyRegistrySchema, nil)
	}
	reset()
	t.Cleanup(reset)
}

func TestSchema_BaseOnly(t *testing.T) {
	resetSchema(t)
	base := Schema()
	assert.Contains(t, base, "priceBands")
	assert.Contains(t, base, "_extensions: [ExtensionInfo!]!")
}

func TestSchema_ExtensionsInNameOrder(t *testing.T) {
	resetSchema(t)
	RegisterSchemaExtension("zz-hello", "  extend type Query { hello: String }  ")
	RegisterSchemaExtension("aa-stock", "extend type Query { inStock(id: String!): Boolean! }")

	s := Schema()
	hello := strings.Index(s, "# extension: zz-hello\nextend type Query { hello: String }")
	stock := strings.Index(s, "# extension: aa-stock\nextend type Query { inStock(id: String!): Boolean! }")
	require.NotEqual(t, -1, hello)
	require.NotEqual(t, -1, stock)
	assert.Less(t, stock, hello)
	assert.Equal(t, s, Schema())
}

func TestSchema_RegistrationRules(t *testing.T) {
	resetSchema(t)
	RegisterSchemaExtension("dup", "extend type Query { a: String }")
	assert.PanicsWithValue(t, "graphql/schema: duplicate extension dup", func() {
		RegisterSchemaExtension("dup", "extend type Query { b: String }")
	})
	assert.Panics(t, func() { RegisterSchemaExtension("blank", "   ") })

	Schema()
	assert.Panics(t, func() {
		RegisterSchemaExtension("late", "extend type Query { c: String }")
	})
}
