package registry

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"

	"chatshop.GO/core/registry"
)

// ResolverFunc handles one _extension call. Args is the JSON-decoded args string.
type ResolverFunc func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Extension is a dynamic resolver reachable through _extension(name, args).
type Extension struct {
	Name        string
	Description string
	// Required lists argument keys checked before Resolve runs.
	Required []string
	Resolve  ResolverFunc
}

var (
	ErrUnknownExtension = errors.New("unknown extension")
	ErrMissingArgument  = errors.New("missing argument")
)

var mu sync.Mutex
var graphqlLocked int32

func getEntries() map[string]Extension {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryGraphQL); ok && v != nil {
		return v.(map[string]Extension)
	}
	return make(map[string]Extension)
}

// Register adds an extension. Call from init(). Panics on an empty or
// duplicate name, a nil resolver, or after the first Resolve.
func Register(ext Extension) {
	if ext.Name == "" || ext.Resolve == nil {
		panic("graphql/registry: extension needs a name and a resolver")
	}
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryGraphQL) {
		panic("graphql/registry: locked, " + ext.Name + " registered after first request")
	}
	entries := getEntries()
	if _, ok := entries[ext.Name]; ok {
		panic("graphql/registry: duplicate " + ext.Name)
	}
	entries[ext.Name] = ext
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryGraphQL, entries)
}

// Unregister removes an extension and reopens the registry. Tests only.
func Unregister(name string) {
	mu.Lock()
	defer mu.Unlock()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryGraphQL)
	atomic.StoreInt32(&graphqlLocked, 0)
	entries := getEntries()
	delete(entries, name)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryGraphQL, entries)
}

// Resolve runs the named extension after checking its required arguments.
// The first call locks the registry.
func Resolve(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	if atomic.CompareAndSwapInt32(&graphqlLocked, 0, 1) {
		registry.GlobalRegistry.Lock(registry.KeyRegistryGraphQL)
	}
	mu.Lock()
	ext, ok := getEntries()[name]
	mu.Unlock()
	if !ok {
		return nil, errors.Wrap(ErrUnknownExtension, name)
	}
	for _, key := range ext.Required {
		if v, ok := args[key]; !ok || v == nil {
			return nil, errors.Wrapf(ErrMissingArgument, "%s: %s", name, key)
		}
	}
	return ext.Resolve(ctx, args)
}

// List returns the registered extensions ordered by name.
func List() []Extension {
	mu.Lock()
	defer mu.Unlock()
	entries := getEntries()
	out := make([]Extension, 0, len(entries))
	for _, ext := range entries {
		out = append(out, ext)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
