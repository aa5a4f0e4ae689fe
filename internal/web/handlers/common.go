package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/kozaktomas/namevibe/internal/recommend"
)

// errInvalidRequestBody is a shared error message for unreadable request bodies.
const errInvalidRequestBody = "invalid request body"

// errGeneric is the only detail callers see for internal failures.
const errGeneric = "something went wrong, please try again"

// sanitizeForLog removes newlines and carriage returns to prevent log injection.
func sanitizeForLog(s string) string {
	return strings.NewReplacer("\n", "", "\r", "").Replace(s)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// FailureResponse is the body of every rejected request.
type FailureResponse struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason"`
	Detail  string `json:"detail,omitempty"`
}

// respondError sends a failure response.
func respondError(w http.ResponseWriter, status int, reason recommend.Kind, detail string) {
	respondJSON(w, status, FailureResponse{Success: false, Reason: string(reason), Detail: detail})
}

// statusFor maps a rejection kind to its HTTP status.
func statusFor(kind recommend.Kind) int {
	switch kind {
	case recommend.InvalidInput:
		return http.StatusBadRequest
	case recommend.RateLimited:
		return http.StatusTooManyRequests
	case recommend.NoMatch, recommend.NotFound:
		return http.StatusNotFound
	case recommend.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondFailure writes err as a failure response. Causes of internal failures are
// logged by the matcher and never sent to the caller.
func respondFailure(w http.ResponseWriter, err error) {
	kind := recommend.KindOf(err)
	detail := errGeneric
	var e *recommend.Error
	if kind != recommend.Internal && errors.As(err, &e) {
		detail = e.Detail
	}
	if kind == recommend.Unavailable {
		w.Header().Set("Retry-After", "30")
	}
	respondError(w, statusFor(kind), kind, detail)
}

// Pinger is a dependency that can report whether it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports the server and its stores as healthy or degraded.
type HealthHandler struct {
	checks  map[string]Pinger
	timeout time.Duration
}

// NewHealthHandler creates a health handler pinging each named dependency.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks, timeout: 2 * time.Second}
}

// Check handles the health check endpoint.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	status := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			results[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}
	respondJSON(w, status, map[string]any{
		"status": overall,
		"checks": results,
	})
}
