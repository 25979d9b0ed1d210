package graphql

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	graphqlpkg "chatshop.GO/graphql"
)

func captureSession(t *testing.T, r *http.Request) string {
	t.Helper()
	var got string
	h := sessionContextMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = graphqlpkg.SessionIDFromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), r)
	return got
}

func TestSessionContextMiddleware(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	r.Header.Set("Session-Id", "from-header")
	assert.Equal(t, "from-header", captureSession(t, r))

	r = httptest.NewRequest(http.MethodPost, "/graphql",
		strings.NewReader(`{"query":"{ session { id } }","variables":{"__Session":"from-body"}}`))
	r.Header.Set("Session-Id", "from-header")
	assert.Equal(t, "from-body", captureSession(t, r))

	r = httptest.NewRequest(http.MethodGet, "/graphql?__Session=from-query", nil)
	assert.Equal(t, "from-query", captureSession(t, r))

	r = httptest.NewRequest(http.MethodGet, "/graphql", nil)
	assert.Equal(t, "", captureSession(t, r))
}

func TestPlaygroundHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	playgroundHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/playground", nil))
	assert.Equal(t, "text/html", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "endpoint: '/graphql'")
}
