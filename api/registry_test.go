package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatshop.GO/bootstrap"
	"chatshop.GO/core/registry"
)

func reopen(t *testing.T) {
	t.Helper()
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryAPI)
	registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryRoutes)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryAPI, nil)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryRoutes, nil)
	t.Cleanup(func() {
		registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryAPI)
		registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryRoutes)
		registry.GlobalRegistry.SetGlobal(registry.KeyRegistryAPI, nil)
		registry.GlobalRegistry.SetGlobal(registry.KeyRegistryRoutes, nil)
	})
}

func TestRegistry_RoutesMountInOrder(t *testing.T) {
	reopen(t)
	RegisterGET("/test/registry/check", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	RegisterPOST("/test/registry/post", func(c echo.Context) error {
		return c.NoContent(http.StatusAccepted)
	})

	e := echo.New()
	names := ApplyRoutes(e, nil)
	assert.Equal(t, []string{"GET /test/registry/check", "POST /test/registry/post"}, names)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test/registry/check", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/test/registry/post", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestRegistry_ModulesGetGroupAndServices(t *testing.T) {
	reopen(t)
	svc := &bootstrap.ServiceContext{}
	var got *bootstrap.ServiceContext
	RegisterModule("chat-test", func(g *echo.Group, s *bootstrap.ServiceContext) {
		got = s
		g.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
	})

	e := echo.New()
	names := ApplyModules(e.Group("/api"), svc)
	assert.Equal(t, []string{"chat-test"}, names)
	assert.Same(t, svc, got)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, "pong", rec.Body.String())
}

func TestRegistry_DuplicateNamesPanic(t *testing.T) {
	reopen(t)
	noopModule := func(*echo.Group, *bootstrap.ServiceContext) {}
	RegisterModule("catalog-test", noopModule)
	assert.PanicsWithValue(t, "api/registry: duplicate module catalog-test", func() {
		RegisterModule("catalog-test", noopModule)
	})

	RegisterGET("/dup", func(echo.Context) error { return nil })
	assert.PanicsWithValue(t, "api/registry: duplicate route GET /dup", func() {
		RegisterGET("/dup", func(echo.Context) error { return nil })
	})
	// same path, other method
	require.NotPanics(t, func() {
		RegisterPOST("/dup", func(echo.Context) error { return nil })
	})
}

func TestRegistry_RegisterAfterApplyPanics(t *testing.T) {
	reopen(t)
	e := echo.New()
	ApplyRoutes(e, nil)
	ApplyModules(e.Group("/api"), nil)

	assert.Panics(t, func() {
		RegisterGET("/too/late", func(echo.Context) error { return nil })
	})
	assert.Panics(t, func() {
		RegisterModule("late", func(*echo.Group, *bootstrap.ServiceContext) {})
	})
}
