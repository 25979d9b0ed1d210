package api

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"chatshop.GO/bootstrap"
	"chatshop.GO/core/registry"
)

var mu sync.Mutex

// ModuleFunc mounts routes on the authenticated /api group.
type ModuleFunc func(g *echo.Group, svc *bootstrap.ServiceContext)

// RouteFunc mounts public routes on the root Echo instance (webhook, graphql, health).
type RouteFunc func(e *echo.Echo, svc *bootstrap.ServiceContext)

type module struct {
	name string
	fn   ModuleFunc
}

type route struct {
	name string
	fn   RouteFunc
}

func getModules() []module {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryAPI); ok && v != nil {
		return v.([]module)
	}
	return nil
}

func getRoutes() []route {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryRoutes); ok && v != nil {
		return v.([]route)
	}
	return nil
}

// RegisterModule adds a named /api module. Call from init(). Panics on a
// duplicate name or once ApplyModules has run.
func RegisterModule(name string, fn ModuleFunc) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryAPI) {
		panic("api/registry: modules locked, " + name + " registered after ApplyModules")
	}
	list := getModules()
	for _, m := range list {
		if m.name == name {
			panic("api/registry: duplicate module " + name)
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryAPI, append(list, module{name: name, fn: fn}))
}

// RegisterRoute adds a named root-level route bundle. Same rules as RegisterModule.
func RegisterRoute(name string, fn RouteFunc) {
	mu.Lock()
	defer mu.Unlock()
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryRoutes) {
		panic("api/registry: routes locked, " + name + " registered after ApplyRoutes")
	}
	list := getRoutes()
	for _, r := range list {
		if r.name == name {
			panic("api/registry: duplicate route " + name)
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryRoutes, append(list, route{name: name, fn: fn}))
}

// RegisterGET registers a single public GET handler named after its path.
func RegisterGET(path string, handler echo.HandlerFunc) {
	registerMethod(http.MethodGet, path, handler)
}

// RegisterPOST registers a single public POST handler named after its path.
func RegisterPOST(path string, handler echo.HandlerFunc) {
	registerMethod(http.MethodPost, path, handler)
}

func registerMethod(method, path string, handler echo.HandlerFunc) {
	RegisterRoute(method+" "+path, func(e *echo.Echo, _ *bootstrap.ServiceContext) {
		e.Add(method, path, handler)
	})
}

// ApplyModules mounts every /api module in registration order, locks the
// registry and returns the mounted names.
func ApplyModules(g *echo.Group, svc *bootstrap.ServiceContext) []string {
	mu.Lock()
	list := getModules()
	registry.GlobalRegistry.Lock(registry.KeyRegistryAPI)
	mu.Unlock()

	names := make([]string, 0, len(list))
	for _, m := range list {
		m.fn(g, svc)
		names = append(names, m.name)
	}
	loggerOf(svc).Info("api modules mounted", "group", "/api", "modules", names)
	return names
}

// ApplyRoutes mounts every root route bundle, locks the registry and returns
// the mounted names.
func ApplyRoutes(e *echo.Echo, svc *bootstrap.ServiceContext) []string {
	mu.Lock()
	list := getRoutes()
	registry.GlobalRegistry.Lock(registry.KeyRegistryRoutes)
	mu.Unlock()

	names := make([]string, 0, len(list))
	for _, r := range list {
		r.fn(e, svc)
		names = append(names, r.name)
	}
	loggerOf(svc).Info("root routes mounted", "routes", names)
	return names
}

func loggerOf(svc *bootstrap.ServiceContext) *slog.Logger {
	if svc != nil && svc.Logger != nil {
		return svc.Logger
	}
	return slog.Default()
}
