package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/xid"
)

type requestIDContextKey struct{}

const requestIDHeader = "X-Request-Id"

// RequestID propagates an incoming request id or generates one when absent.
// The id is set on both the response header and the request context, where
// the logging middleware picks it up.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if id == "" {
			id = xid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDContextKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the request id stored by RequestID, or "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey{}).(string)
	return id
}
