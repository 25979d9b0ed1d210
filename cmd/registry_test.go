package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatshop.GO/core/registry"
)

func resetRegistry(t *testing.T) {
	t.Helper()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCmd)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, nil)
	t.Cleanup(func() {
		registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCmd)
		registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, nil)
	})
}

func TestRegistry_Register_Apply(t *testing.T) {
	resetRegistry(t)
	out := &bytes.Buffer{}
	testCmd := &cobra.Command{
		Use:   "test:registry",
		Short: "registry check",
		Run: func(c *cobra.Command, args []string) {
			out.WriteString("ok")
		},
	}
	Register(testCmd)
	assert.Equal(t, []string{"test:registry"}, Registered())

	root := &cobra.Command{Use: "chatshop"}
	applyTo(root)
	applyTo(root)
	assert.Len(t, root.Commands(), 1)
	assert.Equal(t, ExtensionGroup, testCmd.GroupID)

	help := &bytes.Buffer{}
	root.SetOut(help)
	require.NoError(t, root.Usage())
	assert.Contains(t, help.String(), "Extension Commands:")
	assert.Contains(t, help.String(), "test:registry")

	root.SetArgs([]string{"test:registry"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "ok", out.String())
}

func TestRegistry_DuplicateNamesPanic(t *testing.T) {
	resetRegistry(t)
	assert.PanicsWithValue(t, "cmd/registry: duplicate command chat", func() {
		Register(&cobra.Command{Use: "chat"})
	})

	Register(&cobra.Command{Use: "catalog:report", Aliases: []string{"report"}})
	assert.Panics(t, func() { Register(&cobra.Command{Use: "report"}) })
	assert.Panics(t, func() { Register(&cobra.Command{Use: ""}) })
}

func TestRegistry_LockedAfterApply(t *testing.T) {
	resetRegistry(t)
	applyTo(&cobra.Command{Use: "chatshop"})
	assert.Panics(t, func() { Register(&cobra.Command{Use: "late"}) })
}
