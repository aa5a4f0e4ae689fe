// Package recommend selects a name for a face photo and resolves its companions.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/kozaktomas/namevibe/internal/ai"
	"github.com/kozaktomas/namevibe/internal/database"
	"github.com/kozaktomas/namevibe/internal/identity"
	"github.com/kozaktomas/namevibe/internal/vibe"
	"github.com/rs/zerolog"
)

// Admitter decides whether a caller may run the classification pipeline.
type Admitter interface {
	Admit(ctx context.Context, caller string) bool
}

// Observer receives recommendation outcomes and classifier timings.
type Observer interface {
	ObserveRecommendation(outcome string)
	ObserveClassify(provider string, elapsed time.Duration, err error)
}

// Request is a recommendation request.
type Request struct {
	Gender    database.Gender
	AgeMarker string
	Image     []byte
	MIMEType  string
	Caller    string
	// Override returns the configured debug name without classification.
	// Callers set it only after authorizing the request.
	Override bool
}

// Result is a selected name with every companion sharing its base identity.
type Result struct {
	Name       database.NameRecord
	Companions []database.CompanionRecord
	Vibe       vibe.Category // empty for override and shared lookups
}

// Companion returns the first companion or nil.
func (r *Result) Companion() *database.CompanionRecord {
	if len(r.Companions) == 0 {
		return nil
	}
	return &r.Companions[0]
}

// Matcher orchestrates admission, classification, candidate selection and companion resolution.
type Matcher struct {
	dataset    database.DatasetReader
	gate       Admitter
	classifier ai.FaceClassifier

	debugIdentifier string
	classifyTimeout time.Duration
	storeTimeout    time.Duration
	pick            func(n int) int
	log             zerolog.Logger
	observer        Observer
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithDebugIdentifier sets the exact identifier returned by override requests.
func WithDebugIdentifier(identifier string) Option {
	return func(m *Matcher) { m.debugIdentifier = identity.Normalize(identifier) }
}

// WithTimeouts bounds classifier calls and store queries. Zero leaves a bound unset.
func WithTimeouts(classify, store time.Duration) Option {
	return func(m *Matcher) {
		m.classifyTimeout = classify
		m.storeTimeout = store
	}
}

// WithPicker replaces the uniform random index source. pick(n) must return a value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(m *Matcher) { m.pick = pick }
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Matcher) { m.log = log }
}

// WithObserver registers a metrics observer.
func WithObserver(o Observer) Option {
	return func(m *Matcher) { m.observer = o }
}

// NewMatcher creates a matcher. classifier may be nil when only shared lookups
// and override requests are served.
func NewMatcher(dataset database.DatasetReader, gate Admitter, classifier ai.FaceClassifier, opts ...Option) *Matcher {
	m := &Matcher{
		dataset:    dataset,
		gate:       gate,
		classifier: classifier,
		pick:       rand.IntN,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Recommend runs the full pipeline for one request. Rejections are returned as *Error.
func (m *Matcher) Recommend(ctx context.Context, req Request) (*Result, error) {
	result, err := m.recommend(ctx, req)
	m.observe(err)
	return result, err
}

func (m *Matcher) recommend(ctx context.Context, req Request) (*Result, error) {
	if !req.Gender.Valid() {
		return nil, reject(InvalidInput, "genderPreference must be one of M, F, U")
	}
	if !req.Override && len(req.Image) == 0 {
		return nil, reject(InvalidInput, "image is required")
	}

	actx, cancel := withTimeout(ctx, m.storeTimeout)
	admitted := m.gate.Admit(actx, req.Caller)
	cancel()
	if !admitted {
		return nil, reject(RateLimited, "too many requests, try again in a minute")
	}

	if req.Override {
		return m.debugResult(ctx)
	}

	category, err := m.classify(ctx, req)
	if err != nil {
		return nil, err
	}

	candidates, err := m.findNames(ctx, database.NameFilter{Vibe: category.Tag(), Gender: req.Gender})
	if err != nil {
		return nil, internal("failed to query candidate names", err)
	}
	if len(candidates) == 0 {
		m.log.Debug().Str("vibe", string(category)).Str("gender", string(req.Gender)).Msg("no candidate names")
		return nil, reject(NoMatch, "no name matches this photo, try another one")
	}

	selected := candidates[m.pick(len(candidates))]
	companions, err := m.companions(ctx, selected)
	if err != nil {
		return nil, err
	}
	return &Result{Name: selected, Companions: companions, Vibe: category}, nil
}

// classify sends the image to the provider and derives the vibe of the single detected face.
func (m *Matcher) classify(ctx context.Context, req Request) (vibe.Category, error) {
	if m.classifier == nil {
		return "", internal("no vision provider configured", nil)
	}

	cctx, cancel := withTimeout(ctx, m.classifyTimeout)
	defer cancel()

	mimeType := req.MIMEType
	if mimeType == "" {
		mimeType = ai.DetectMIMEType(req.Image)
	}

	start := time.Now()
	faces, err := m.classifier.ClassifyFaces(cctx, req.Image, mimeType)
	if m.observer != nil {
		m.observer.ObserveClassify(m.classifier.Name(), time.Since(start), err)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ai.ErrProviderUnavailable) {
			return "", &Error{Kind: Unavailable, Detail: "photo analysis is temporarily unavailable, try again later", Err: err}
		}
		return "", internal("face classification failed", err)
	}
	if len(faces) != 1 {
		return "", reject(InvalidInput, fmt.Sprintf("photo must contain exactly one face, detected %d", len(faces)))
	}
	return vibe.Classify(faces[0].Signals()), nil
}

func (m *Matcher) debugResult(ctx context.Context) (*Result, error) {
	if m.debugIdentifier == "" {
		return nil, reject(NotFound, "debug name is not configured")
	}

	sctx, cancel := withTimeout(ctx, m.storeTimeout)
	name, err := m.dataset.GetNameByIdentifier(sctx, m.debugIdentifier)
	cancel()
	if err != nil {
		return nil, internal("failed to load debug name", err)
	}
	if name == nil {
		return nil, reject(NotFound, "debug name not found")
	}

	companions, err := m.companions(ctx, *name)
	if err != nil {
		return nil, err
	}
	return &Result{Name: *name, Companions: companions}, nil
}

// ResolveShared rebuilds a previously issued result from the name's stable ID.
func (m *Matcher) ResolveShared(ctx context.Context, nameID int64) (*Result, error) {
	result, err := m.resolveShared(ctx, nameID)
	m.logInternal(err)
	return result, err
}

func (m *Matcher) resolveShared(ctx context.Context, nameID int64) (*Result, error) {
	sctx, cancel := withTimeout(ctx, m.storeTimeout)
	name, err := m.dataset.GetName(sctx, nameID)
	cancel()
	if err != nil {
		return nil, internal("failed to load name", err)
	}
	if name == nil {
		return nil, reject(NotFound, "result not found")
	}

	companions, err := m.companions(ctx, *name)
	if err != nil {
		return nil, err
	}
	return &Result{Name: *name, Companions: companions}, nil
}

// companions is the single lookup used by both the recommendation and shared-result paths.
func (m *Matcher) companions(ctx context.Context, name database.NameRecord) ([]database.CompanionRecord, error) {
	sctx, cancel := withTimeout(ctx, m.storeTimeout)
	defer cancel()

	companions, err := m.dataset.GetCompanions(sctx, identity.Base(name.Identifier))
	if err != nil {
		return nil, internal("failed to load companions", err)
	}
	if companions == nil {
		companions = []database.CompanionRecord{}
	}
	return companions, nil
}

func (m *Matcher) findNames(ctx context.Context, filter database.NameFilter) ([]database.NameRecord, error) {
	sctx, cancel := withTimeout(ctx, m.storeTimeout)
	defer cancel()
	return m.dataset.FindNames(sctx, filter)
}

func (m *Matcher) logInternal(err error) {
	var e *Error
	if errors.As(err, &e) && e.Kind == Internal {
		m.log.Error().Err(e.Err).Str("detail", e.Detail).Msg("request failed")
	}
}

func (m *Matcher) observe(err error) {
	m.logInternal(err)
	if m.observer == nil {
		return
	}
	if err != nil {
		m.observer.ObserveRecommendation(string(KindOf(err)))
		return
	}
	m.observer.ObserveRecommendation("success")
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
