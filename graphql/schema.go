package graphql

import (
	"sort"
	"strings"
	"sync"

	_ "embed"

	"chatshop.GO/core/registry"
)

//go:embed schema.graphqls
var schemaBase string

var schemaMu sync.Mutex

func getExtensions() map[string]string {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistrySchema); ok && v != nil {
		return v.(map[string]string)
	}
	return make(map[string]string)
}

// RegisterSchemaExtension adds named SDL, usually "extend type Query { ... }"
// backed by a QueryResolver method. Call from init(). Panics on an empty or
// duplicate name, or once Schema has been built.
func RegisterSchemaExtension(name, sdl string) {
	sdl = strings.TrimSpace(sdl)
	if name == "" || sdl == "" {
		panic("graphql/schema: extension needs a name and SDL")
	}
	schemaMu.Lock()
	defer schemaMu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistrySchema) {
		panic("graphql/schema: locked, " + name + " registered after the schema was built")
	}
	ext := getExtensions()
	if _, ok := ext[name]; ok {
		panic("graphql/schema: duplicate extension " + name)
	}
	ext[name] = sdl
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistrySchema, ext)
}

// Schema returns the base schema followed by extensions in name order, so
// every server instance parses identical SDL. It locks extension registration.
func Schema() string {
	schemaMu.Lock()
	defer schemaMu.Unlock()
	registry.GlobalRegistry.Lock(registry.KeyRegistrySchema)

	ext := getExtensions()
	if len(ext) == 0 {
		return schemaBase
	}
	names := make([]string, 0, len(ext))
	for n := range ext {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(strings.TrimRight(schemaBase, "\n"))
	for _, n := range names {
		b.WriteString("\n\n# extension: " + n + "\n")
		b.WriteString(ext[n])
	}
	b.WriteString("\n")
	return b.String()
}
