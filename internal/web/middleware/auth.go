package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/kozaktomas/namevibe/internal/config"
)

type contextKey string

const debugContextKey contextKey = "debug"

// DebugTokenHeader carries the token that authorizes the debug override.
const DebugTokenHeader = "X-Debug-Token"

// DebugOverride is middleware that marks requests allowed to use the debug override.
// A request is authorized when the override is enabled with a target identifier and,
// if a token is configured, the request presents it in DebugTokenHeader.
func DebugOverride(cfg config.DebugConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if debugAuthorized(cfg, r.Header.Get(DebugTokenHeader)) {
				r = r.WithContext(SetDebugInContext(r.Context()))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func debugAuthorized(cfg config.DebugConfig, token string) bool {
	if !cfg.Enabled || cfg.Identifier == "" {
		return false
	}
	if cfg.Token == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(cfg.Token)) == 1
}

// DebugAllowed reports whether DebugOverride authorized the request.
func DebugAllowed(ctx context.Context) bool {
	allowed, _ := ctx.Value(debugContextKey).(bool)
	return allowed
}

// SetDebugInContext marks the context as authorized for the debug override.
// This is primarily for testing - use DebugOverride middleware in production.
func SetDebugInContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, debugContextKey, true)
}
