package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newServer(t *testing.T, env map[string]string) *echo.Echo {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
	e := echo.New()
	e.Use(Middleware())
	ok := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	e.POST("/api/chat/search", ok)
	e.POST("/webhook", ok)
	return e
}

func do(e *echo.Echo, path string, mutate func(*http.Request)) int {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestBasicAuth(t *testing.T) {
	e := newServer(t, map[string]string{"AUTH_TYPE": "basic", "API_USER": "shop", "API_PASS": "secret"})

	assert.Equal(t, http.StatusUnauthorized, do(e, "/api/chat/search", nil))
	assert.Equal(t, http.StatusUnauthorized, do(e, "/api/chat/search", func(r *http.Request) {
		r.SetBasicAuth("shop", "wrong")
	}))
	assert.Equal(t, http.StatusOK, do(e, "/api/chat/search", func(r *http.Request) {
		r.SetBasicAuth("shop", "secret")
	}))
}

func TestKeyAuth(t *testing.T) {
	e := newServer(t, map[string]string{"AUTH_TYPE": "key", "API_KEY": "k-123"})

	assert.Equal(t, http.StatusUnauthorized, do(e, "/api/chat/search", func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer nope")
	}))
	assert.Equal(t, http.StatusOK, do(e, "/api/chat/search", func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer k-123")
	}))
}

func TestSkipperPaths(t *testing.T) {
	e := newServer(t, map[string]string{"AUTH_TYPE": "basic", "API_USER": "shop", "API_PASS": "secret"})
	assert.Equal(t, http.StatusOK, do(e, "/webhook", nil))
}

func TestAuthDisabled(t *testing.T) {
	e := newServer(t, map[string]string{"AUTH_TYPE": "none"})
	assert.Equal(t, http.StatusOK, do(e, "/api/chat/search", nil))
}
