package cmd

import (
	"sort"
	"sync"

	"github.com/spf13/cobra"

	"chatshop.GO/core/registry"
)

// ExtensionGroup is the help group for commands added through Register.
const ExtensionGroup = "extensions"

var mu sync.Mutex

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Register queues a command for the root. Call from init() in extension
// packages. Panics once Apply has run, or when the name is empty or already
// used by a built-in or registered command.
func Register(c *cobra.Command) {
	mu.Lock()
	defer mu.Unlock()
	name := c.Name()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd/registry: locked, " + name + " registered after Apply")
	}
	if name == "" {
		panic("cmd/registry: command without a name")
	}
	if hasCommand(rootCmd.Commands(), name) || hasCommand(registered(), name) {
		panic("cmd/registry: duplicate command " + name)
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(registered(), c))
}

// Registered returns the queued command names, sorted.
func Registered() []string {
	mu.Lock()
	defer mu.Unlock()
	list := registered()
	names := make([]string, 0, len(list))
	for _, c := range list {
		names = append(names, c.Name())
	}
	sort.Strings(names)
	return names
}

// Apply attaches registered commands to the root command and locks the registry.
func Apply() {
	applyTo(rootCmd)
}

// applyTo is safe to call more than once; commands already on root are skipped.
func applyTo(root *cobra.Command) {
	mu.Lock()
	defer mu.Unlock()
	list := registered()
	if len(list) > 0 && !root.ContainsGroup(ExtensionGroup) {
		root.AddGroup(&cobra.Group{ID: ExtensionGroup, Title: "Extension Commands:"})
	}
	for _, c := range list {
		if c.Parent() == root {
			continue
		}
		if c.GroupID == "" {
			c.GroupID = ExtensionGroup
		}
		root.AddCommand(c)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}

func hasCommand(list []*cobra.Command, name string) bool {
	for _, c := range list {
		if c.Name() == name || c.HasAlias(name) {
			return true
		}
	}
	return false
}
