package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
)

const callerContextKey contextKey = "caller"

// CallerIdentity derives the admission identity of a request: the first entry of
// X-Forwarded-For, falling back to the host part of the connection address.
func CallerIdentity(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Caller is middleware that adds the caller identity to the context.
func Caller() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := SetCallerInContext(r.Context(), CallerIdentity(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCallerFromContext retrieves the caller identity, or "" when Caller did not run.
func GetCallerFromContext(ctx context.Context) string {
	caller, _ := ctx.Value(callerContextKey).(string)
	return caller
}

// SetCallerInContext adds a caller identity to the context.
func SetCallerInContext(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerContextKey, caller)
}
