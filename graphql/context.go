package graphql

import (
	"context"
	"net/http"
)

type contextKey string

const CtxKeySessionID contextKey = "sessionID"

// The chat session a request is about.
// Resolved from: Session-Id header > __Session query param.
const (
	HeaderSession     = "Session-Id"
	QueryParamSession = "__Session"
)

// SessionIDFromContext returns the session id attached to the request, or "".
func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeySessionID).(string); ok {
		return v
	}
	return ""
}

// WithSessionID attaches a session id to context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, CtxKeySessionID, sessionID)
}

// GetSessionID extracts the session id from a request.
func GetSessionID(r *http.Request) string {
	if h := r.Header.Get(HeaderSession); h != "" {
		return h
	}
	return r.URL.Query().Get(QueryParamSession)
}
