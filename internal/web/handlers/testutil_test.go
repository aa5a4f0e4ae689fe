package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kozaktomas/namevibe/internal/admission"
	aimock "github.com/kozaktomas/namevibe/internal/ai/mock"
	"github.com/kozaktomas/namevibe/internal/config"
	"github.com/kozaktomas/namevibe/internal/database"
	"github.com/kozaktomas/namevibe/internal/database/mock"
	"github.com/kozaktomas/namevibe/internal/recommend"
	"github.com/kozaktomas/namevibe/internal/web/middleware"
)

// testConfig creates a minimal config for testing
func testConfig() *config.Config {
	return &config.Config{
		Vision: config.VisionConfig{Provider: "gemini"},
		Admission: config.AdmissionConfig{
			Limit:  5,
			Window: time.Minute,
		},
		Debug: config.DebugConfig{
			Enabled:    true,
			Marker:     "999",
			Identifier: "debug_디버그",
		},
	}
}

// testEnv wires a real matcher to in-memory stores and a scripted classifier
type testEnv struct {
	dataset    *mock.MockDataset
	events     *mock.MockRateEvents
	classifier *aimock.MockClassifier
	handler    *RecommendHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := testConfig()

	ds := mock.NewMockDataset()
	ds.AddName(database.NameRecord{ID: 1, Identifier: "jisoo_지수_01", Gender: database.GenderFemale, VibeTags: "friendly", Hangul: "지수", Romanized: "Jisoo", Meaning: "beautiful and excellent"})
	ds.AddName(database.NameRecord{ID: 2, Identifier: "seojun_서준", Gender: database.GenderMale, VibeTags: "cool", Hangul: "서준", Romanized: "Seojun"})
	ds.AddName(database.NameRecord{ID: 3, Identifier: "debug_디버그", Gender: database.GenderFemale, Hangul: "디버그", Romanized: "Debug"})
	ds.AddCompanion(database.CompanionRecord{ID: 10, Identifier: "jisoo_지수", Name: "Kim Jisoo", Category: "singer", ImageURL: "https://img.example/jisoo.jpg"})
	ds.AddCompanion(database.CompanionRecord{ID: 11, Identifier: "jisoo_지수", Name: "Seo Jisoo", Category: "actress"})
	ds.AddCompanion(database.CompanionRecord{ID: 12, Identifier: "debug_디버그", Name: "Debug Person", Category: "tester"})

	events := mock.NewMockRateEvents()
	classifier := aimock.NewMockClassifier()
	gate := admission.NewGate(events, cfg.Admission.Limit, cfg.Admission.Window)
	matcher := recommend.NewMatcher(ds, gate, classifier, recommend.WithDebugIdentifier(cfg.Debug.Identifier))

	return &testEnv{
		dataset:    ds,
		events:     events,
		classifier: classifier,
		handler:    NewRecommendHandler(matcher, cfg.Debug),
	}
}

// withCaller adds a caller identity to the request context, as the Caller middleware does
func withCaller(r *http.Request, caller string) *http.Request {
	return r.WithContext(middleware.SetCallerInContext(r.Context(), caller))
}

// requestWithChiParams creates a request with chi URL parameters
func requestWithChiParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// parseJSONResponse parses a JSON response body into the target type
func parseJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), target); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nBody: %s", err, recorder.Body.String())
	}
}

// assertStatusCode checks if the response has the expected status code
func assertStatusCode(t *testing.T, recorder *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if recorder.Code != expected {
		t.Errorf("expected status %d, got %d\nBody: %s", expected, recorder.Code, recorder.Body.String())
	}
}

// assertContentType checks if the response has the expected content type
func assertContentType(t *testing.T, recorder *httptest.ResponseRecorder, expected string) {
	t.Helper()
	ct := recorder.Header().Get("Content-Type")
	if ct != expected {
		t.Errorf("expected Content-Type '%s', got '%s'", expected, ct)
	}
}

// assertFailure checks if the response is a failure with the expected reason
func assertFailure(t *testing.T, recorder *httptest.ResponseRecorder, expectedReason recommend.Kind) FailureResponse {
	t.Helper()
	var result FailureResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse error response: %v\nBody: %s", err, recorder.Body.String())
	}
	if result.Success {
		t.Error("expected success false")
	}
	if result.Reason != string(expectedReason) {
		t.Errorf("expected reason '%s', got '%s'", expectedReason, result.Reason)
	}
	return result
}
