package recommend

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kozaktomas/namevibe/internal/admission"
	"github.com/kozaktomas/namevibe/internal/ai"
	aimock "github.com/kozaktomas/namevibe/internal/ai/mock"
	"github.com/kozaktomas/namevibe/internal/database"
	"github.com/kozaktomas/namevibe/internal/database/mock"
	"github.com/kozaktomas/namevibe/internal/vibe"
	"golang.org/x/text/unicode/norm"
)

var jpeg = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

// allowAll admits every call.
type allowAll struct{}

func (allowAll) Admit(context.Context, string) bool { return true }

// recordingObserver captures outcomes.
type recordingObserver struct {
	mu         sync.Mutex
	outcomes   []string
	classified int
}

func (o *recordingObserver) ObserveRecommendation(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, outcome)
}

func (o *recordingObserver) ObserveClassify(string, time.Duration, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.classified++
}

func seedDataset() *mock.MockDataset {
	ds := mock.NewMockDataset()
	ds.AddName(database.NameRecord{ID: 1, Identifier: "jisoo_지수_01", Gender: database.GenderFemale, VibeTags: "friendly,calm", Hangul: "지수", Romanized: "Jisoo", Meaning: "beautiful and excellent"})
	ds.AddName(database.NameRecord{ID: 2, Identifier: "jisoo_지수_02", Gender: database.GenderFemale, VibeTags: "cool", Hangul: "지수", Romanized: "Jisoo"})
	ds.AddName(database.NameRecord{ID: 3, Identifier: "seojun_서준", Gender: database.GenderMale, VibeTags: "friendly", Hangul: "서준", Romanized: "Seojun"})
	ds.AddName(database.NameRecord{ID: 4, Identifier: "haneul_하늘", Gender: database.GenderFemale, Unisex: true, VibeTags: "calm", Hangul: "하늘", Romanized: "Haneul"})
	ds.AddName(database.NameRecord{ID: 5, Identifier: "debug_디버그", Gender: database.GenderFemale, VibeTags: "", Hangul: "디버그", Romanized: "Debug"})
	ds.AddCompanion(database.CompanionRecord{Identifier: "jisoo_지수", Name: "Kim Jisoo", Category: "singer"})
	ds.AddCompanion(database.CompanionRecord{Identifier: "jisoo_지수", Name: "Seo Jisoo", Category: "actress"})
	ds.AddCompanion(database.CompanionRecord{Identifier: "seojun_서준", Name: "Park Seojun", Category: "actor"})
	ds.AddCompanion(database.CompanionRecord{Identifier: "debug_디버그", Name: "Debug Person", Category: "tester"})
	return ds
}

func newTestMatcher(ds *mock.MockDataset, gate Admitter, classifier ai.FaceClassifier, opts ...Option) *Matcher {
	opts = append([]Option{WithDebugIdentifier("debug_디버그"), WithPicker(func(int) int { return 0 })}, opts...)
	return NewMatcher(ds, gate, classifier, opts...)
}

func assertKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Errorf("expected kind %s, got %s (%v)", want, got, err)
	}
}

func TestMatcher_Recommend(t *testing.T) {
	tests := []struct {
		name       string
		face       ai.FaceExpression
		gender     database.Gender
		wantName   int64
		wantVibe   vibe.Category
		companions int
	}{
		{"joy female", aimock.Face(vibe.VeryLikely, vibe.VeryLikely, vibe.Unlikely), database.GenderFemale, 1, vibe.Friendly, 2},
		{"joy male", aimock.Face(vibe.Likely, vibe.Unlikely, vibe.Unlikely), database.GenderMale, 3, vibe.Friendly, 1},
		{"sorrow unisex", aimock.Face(vibe.Unlikely, vibe.Likely, vibe.Unlikely), database.GenderUnisex, 4, vibe.Calm, 0},
		{"anger female", aimock.Face(vibe.Unlikely, vibe.Possible, vibe.VeryLikely), database.GenderFemale, 2, vibe.Cool, 2},
		{"all unlikely defaults to friendly", aimock.Face(vibe.Unlikely, vibe.Unlikely, vibe.Unlikely), database.GenderMale, 3, vibe.Friendly, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := seedDataset()
			m := newTestMatcher(ds, allowAll{}, aimock.NewMockClassifier(tt.face))

			result, err := m.Recommend(context.Background(), Request{Gender: tt.gender, Image: jpeg, Caller: "1.2.3.4"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Name.ID != tt.wantName {
				t.Errorf("expected name %d, got %d", tt.wantName, result.Name.ID)
			}
			if result.Vibe != tt.wantVibe {
				t.Errorf("expected vibe %s, got %s", tt.wantVibe, result.Vibe)
			}
			if len(result.Companions) != tt.companions {
				t.Errorf("expected %d companions, got %d", tt.companions, len(result.Companions))
			}
			if result.Companions == nil {
				t.Error("expected non-nil companions slice")
			}
		})
	}
}

func TestMatcher_CompanionsUseBaseIdentity(t *testing.T) {
	ds := seedDataset()
	m := newTestMatcher(ds, allowAll{}, aimock.NewMockClassifier(aimock.Face(vibe.VeryLikely, vibe.Unknown, vibe.Unknown)))

	if _, err := m.Recommend(context.Background(), Request{Gender: database.GenderFemale, Image: jpeg}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ds.LastCompanionQuery != "jisoo_지수" {
		t.Errorf("expected companion lookup by base identity, got %q", ds.LastCompanionQuery)
	}
}

func TestMatcher_ValidationBeforeAdmission(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"missing gender", Request{Image: jpeg}},
		{"unknown gender", Request{Gender: "X", Image: jpeg}},
		{"missing image", Request{Gender: database.GenderFemale}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := mock.NewMockRateEvents()
			classifier := aimock.NewMockClassifier(aimock.Face(vibe.VeryLikely, vibe.Unknown, vibe.Unknown))
			m := newTestMatcher(seedDataset(), admission.NewGate(store, 5, time.Minute), classifier)

			_, err := m.Recommend(context.Background(), tt.req)
			assertKind(t, err, InvalidInput)
			if len(store.Events()) != 0 {
				t.Error("expected no rate event for invalid input")
			}
			if classifier.CallCount() != 0 {
				t.Error("expected classifier not to be called")
			}
		})
	}
}

func TestMatcher_FaceCount(t *testing.T) {
	tests := []struct {
		name  string
		faces []ai.FaceExpression
		want  string
	}{
		{"no faces", nil, "detected 0"},
		{"two faces", []ai.FaceExpression{
			aimock.Face(vibe.VeryLikely, vibe.Unknown, vibe.Unknown),
			aimock.Face(vibe.Unlikely, vibe.Unknown, vibe.Unknown),
		}, "detected 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := seedDataset()
			store := mock.NewMockRateEvents()
			m := newTestMatcher(ds, admission.NewGate(store, 5, time.Minute), aimock.NewMockClassifier(tt.faces...))

			_, err := m.Recommend(context.Background(), Request{Gender: database.GenderFemale, Image: jpeg, Caller: "1.2.3.4"})
			assertKind(t, err, InvalidInput)
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected detail to contain %q, got %q", tt.want, err.Error())
			}
			if n := store.Count("1.2.3.4"); n != 1 {
				t.Errorf("expected exactly one rate event, got %d", n)
			}
			if ds.FindNamesCalls != 0 {
				t.Error("expected no candidate search")
			}
		})
	}
}

func TestMatcher_RateLimited(t *testing.T) {
	store := mock.NewMockRateEvents()
	classifier := aimock.NewMockClassifier(aimock.Face(vibe.VeryLikely, vibe.Unknown, vibe.Unknown))
	m := newTestMatcher(seedDataset(), admission.NewGate(store, 5, time.Minute), classifier)
	ctx := context.Background()

	for i := range 5 {
		if _, err := m.Recommend(ctx, Request{Gender: database.GenderFemale, Image: jpeg, Caller: "1.2.3.4"}); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i+1, err)
		}
	}

	_, err := m.Recommend(ctx, Request{Gender: database.GenderFemale, Image: jpeg, Caller: "1.2.3.4"})
	assertKind(t, err, RateLimited)
	if classifier.CallCount() != 5 {
		t.Errorf("expected rate-limited call not to be classified, got %d calls", classifier.CallCount())
	}
}

func TestMatcher_SixthRequestRateLimitedRegardlessOfFaces(t *testing.T) {
	store := mock.NewMockRateEvents()
	m := newTestMatcher(seedDataset(), admission.NewGate(store, 5, time.Minute), aimock.NewMockClassifier())
	ctx := context.Background()

	for i := range 5 {
		_, err := m.Recommend(ctx, Request{Gender: database.GenderFemale, Image: jpeg, Caller: "1.2.3.4"})
		if KindOf(err) != InvalidInput {
			t.Fatalf("call %d: expected InvalidInput, got %v", i+1, err)
		}
	}
	_, err := m.Recommend(ctx, Request{Gender: database.GenderFemale, Image: jpeg, Caller: "1.2.3.4"})
	assertKind(t, err, RateLimited)
}

func TestMatcher_FailClosedAdmission(t *testing.T) {
	store := mock.NewMockRateEvents()
	store.RecordError = errors.New("connection refused")
	classifier := aimock.NewMockClassifier(aimock.Face(vibe.VeryLikely, vibe.Unknown, vibe.Unknown))
	m := newTestMatcher(seedDataset(), admission.NewGate(store, 5, time.Minute), classifier)

	_, err := m.Recommend(context.Background(), Request{Gender: database.GenderFemale, Image: jpeg, Caller: "1.2.3.4"})
	assertKind(t, err, RateLimited)
	if classifier.CallCount() != 0 {
		t.Error("expected classifier not to be called")
	}
}

// stalledRateEvents holds every call until its context is done.
type stalledRateEvents struct{}

func (stalledRateEvents) RecordIfUnder(ctx context.Context, _ string, _, _ time.Time, _ int) (bool, int, error) {
	<-ctx.Done()
	return false, 0, ctx.Err()
}

func TestMatcher_AdmissionBoundedByStoreTimeout(t *testing.T) {
	classifier := aimock.NewMockClassifier(aimock.Face(vibe.VeryLikely, vibe.Unknown, vibe.Unknown))
	m := newTestMatcher(seedDataset(), admission.NewGate(stalledRateEvents{}, 5, time.Minute), classifier,
		WithTimeouts(time.Second, 50*time.Millisecond))

	done := make(chan error, 1)
	go func() {
		_, err := m.Recommend(context.Background(), Request{Gender: database.GenderFemale, Image: jpeg, Caller: "1.2.3.4"})
		done <- err
	}()

	select {
	case err := <-done:
		assertKind(t, err, RateLimited)
	case <-time.After(time.Second):
		t.Fatal("expected admission to give up after the store timeout")
	}
	if classifier.CallCount() != 0 {
		t.Error("expected classifier not to be called")
	}
}

func TestMatcher_NoMatch(t *testing.T) {
	ds := seedDataset()
	// No male name is tagged calm.
	m := newTestMatcher(ds, allowAll{}, aimock.NewMockClassifier(aimock.Face(vibe.Unlikely, vibe.VeryLikely, vibe.Unlikely)))

	_, err := m.Recommend(context.Background(), Request{Gender: database.GenderMale, Image: jpeg})
	assertKind(t, err, NoMatch)
	if ds.GetCompanionsCalls != 0 {
		t.Error("expected no companion lookup")
	}
}

func TestMatcher_GenderPredicate(t *testing.T) {
	ds := seedDataset()
	// A U-category name without the unisex flag matches neither request.
	ds.AddName(database.NameRecord{ID: 10, Identifier: "bora_보라", Gender: database.GenderUnisex, Unisex: false, VibeTags: "calm"})
	m := newTestMatcher(ds, allowAll{}, aimock.NewMockClassifier(aimock.Face(vibe.Unlikely, vibe.VeryLikely, vibe.Unlikely)))

	_, err := m.Recommend(context.Background(), Request{Gender: database.GenderMale, Image: jpeg})
	assertKind(t, err, NoMatch)

	result, err := m.Recommend(context.Background(), Request{Gender: database.GenderUnisex, Image: jpeg})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Name.ID != 4 {
		t.Errorf("expected only the unisex-flagged name, got %d", result.Name.ID)
	}
}

func TestMatcher_UniformSelection(t *testing.T) {
	ds := mock.NewMockDataset()
	for i := range 4 {
		ds.AddName(database.NameRecord{ID: int64(i + 1), Identifier: "name_" + string(rune('a'+i)), Gender: database.GenderMale, VibeTags: "friendly"})
	}

	var sizes []int
	next := 0
	picker := func(n int) int {
		sizes = append(sizes, n)
		i := next % n
		next++
		return i
	}
	m := NewMatcher(ds, allowAll{}, aimock.NewMockClassifier(aimock.Face(vibe.VeryLikely, vibe.Unknown, vibe.Unknown)), WithPicker(picker))

	var got []int64
	for range 4 {
		result, err := m.Recommend(context.Background(), Request{Gender: database.GenderMale, Image: jpeg})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, result.Name.ID)
	}

	if !slices.Equal(sizes, []int{4, 4, 4, 4}) {
		t.Errorf("expected picker to see the whole candidate set, got %v", sizes)
	}
	if !slices.Equal(got, []int64{1, 2, 3, 4}) {
		t.Errorf("expected every candidate reachable, got %v", got)
	}
}

func TestMatcher_DefaultPickerCoversCandidates(t *testing.T) {
	ds := seedDataset()
	ds.AddName(database.NameRecord{ID: 20, Identifier: "minho_민호", Gender: database.GenderMale, VibeTags: "friendly"})
	m := NewMatcher(ds, allowAll{}, aimock.NewMockClassifier(aimock.Face(vibe.VeryLikely, vibe.Unknown, vibe.Unknown)))

	seen := map[int64]bool{}
	for range 200 {
		result, err := m.Recommend(context.Background(), Request{Gender: database.GenderMale, Image: jpeg})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[result.Name.ID] = true
	}
	if !seen[3] || !seen[20] {
		t.Errorf("expected both candidates to be selected, got %v", seen)
	}
}

func TestMatcher_DebugOverride(t *testing.T) {
	ds := seedDataset()
	store := mock.NewMockRateEvents()
	classifier := aimock.NewMockClassifier()
	m := newTestMatcher(ds, admission.NewGate(store, 5, time.Minute), classifier)

	for range 3 {
		result, err := m.Recommend(context.Background(), Request{Gender: database.GenderFemale, AgeMarker: "999", Override: true, Caller: "1.2.3.4"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Name.Identifier != "debug_디버그" {
			t.Errorf("expected debug name, got %q", result.Name.Identifier)
		}
		if len(result.Companions) != 1 || result.Companions[0].Name != "Debug Person" {
			t.Errorf("unexpected companions: %+v", result.Companions)
		}
	}

	if classifier.CallCount() != 0 {
		t.Error("expected override to skip classification")
	}
	if ds.FindNamesCalls != 0 {
		t.Error("expected override to skip candidate search")
	}
	if store.Count("1.2.3.4") != 3 {
		t.Error("expected override calls to pass through admission")
	}
}

func TestMatcher_DebugOverrideNotFound(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
	}{
		{"missing record", "nobody_없음"},
		{"not configured", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher(seedDataset(), allowAll{}, nil, WithDebugIdentifier(tt.identifier))
			_, err := m.Recommend(context.Background(), Request{Gender: database.GenderFemale, Override: true})
			assertKind(t, err, NotFound)
		})
	}
}

func TestMatcher_ClassifierFailures(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(c *aimock.MockClassifier)
		wantKind Kind
	}{
		{"provider error", func(c *aimock.MockClassifier) { c.Err = errors.New("500 from upstream") }, Internal},
		{"breaker open", func(c *aimock.MockClassifier) { c.Err = ai.ErrProviderUnavailable }, Unavailable},
		{"timeout", func(c *aimock.MockClassifier) { c.Block = true }, Unavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := aimock.NewMockClassifier()
			tt.setup(classifier)
			m := newTestMatcher(seedDataset(), allowAll{}, classifier, WithTimeouts(20*time.Millisecond, time.Second))

			_, err := m.Recommend(context.Background(), Request{Gender: database.GenderFemale, Image: jpeg})
			assertKind(t, err, tt.wantKind)
			if classifier.CallCount() != 1 {
				t.Errorf("expected exactly one classification attempt, got %d", classifier.CallCount())
			}
		})
	}
}

func TestMatcher_InternalHidesCause(t *testing.T) {
	ds := seedDataset()
	ds.FindNamesError = errors.New("pq: relation \"names\" does not exist")
	m := newTestMatcher(ds, allowAll{}, aimock.NewMockClassifier(aimock.Face(vibe.VeryLikely, vibe.Unknown, vibe.Unknown)))

	_, err := m.Recommend(context.Background(), Request{Gender: database.GenderFemale, Image: jpeg})
	assertKind(t, err, Internal)

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("expected *Error")
	}
	if strings.Contains(e.Detail, "pq:") {
		t.Errorf("expected detail not to leak store error, got %q", e.Detail)
	}
	if !errors.Is(err, ds.FindNamesError) {
		t.Error("expected cause to be wrapped")
	}
}

func TestMatcher_MIMETypeDetection(t *testing.T) {
	classifier := aimock.NewMockClassifier(aimock.Face(vibe.VeryLikely, vibe.Unknown, vibe.Unknown))
	m := newTestMatcher(seedDataset(), allowAll{}, classifier)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	if _, err := m.Recommend(context.Background(), Request{Gender: database.GenderFemale, Image: png}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if classifier.LastMIMEType != "image/png" {
		t.Errorf("expected image/png, got %q", classifier.LastMIMEType)
	}
}

func TestMatcher_Observer(t *testing.T) {
	obs := &recordingObserver{}
	m := newTestMatcher(seedDataset(), allowAll{}, aimock.NewMockClassifier(aimock.Face(vibe.VeryLikely, vibe.Unknown, vibe.Unknown)), WithObserver(obs))

	m.Recommend(context.Background(), Request{Gender: database.GenderFemale, Image: jpeg})
	m.Recommend(context.Background(), Request{Image: jpeg})

	if !slices.Equal(obs.outcomes, []string{"success", "InvalidInput"}) {
		t.Errorf("unexpected outcomes: %v", obs.outcomes)
	}
	if obs.classified != 1 {
		t.Errorf("expected 1 classify observation, got %d", obs.classified)
	}
}

func TestResolveShared(t *testing.T) {
	ds := seedDataset()
	m := newTestMatcher(ds, allowAll{}, nil)

	result, err := m.ResolveShared(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Name.Identifier != "jisoo_지수_01" {
		t.Errorf("unexpected name %q", result.Name.Identifier)
	}
	if len(result.Companions) != 2 {
		t.Errorf("expected 2 companions, got %d", len(result.Companions))
	}
	if result.Companion() == nil || result.Companion().Name != "Kim Jisoo" {
		t.Errorf("unexpected singular companion: %+v", result.Companion())
	}

	_, err = m.ResolveShared(context.Background(), 999)
	assertKind(t, err, NotFound)
}

func TestResolveShared_StoreError(t *testing.T) {
	ds := seedDataset()
	ds.GetNameError = errors.New("connection reset")
	m := newTestMatcher(ds, allowAll{}, nil)

	_, err := m.ResolveShared(context.Background(), 1)
	assertKind(t, err, Internal)
}

func TestResolveShared_MatchesRecommendation(t *testing.T) {
	ds := seedDataset()
	m := NewMatcher(ds, allowAll{}, aimock.NewMockClassifier(aimock.Face(vibe.VeryLikely, vibe.Unknown, vibe.Unknown)))

	companionNames := func(cs []database.CompanionRecord) []string {
		var names []string
		for _, c := range cs {
			names = append(names, c.Name)
		}
		slices.Sort(names)
		return names
	}

	for range 20 {
		recommended, err := m.Recommend(context.Background(), Request{Gender: database.GenderFemale, Image: jpeg})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		shared, err := m.ResolveShared(context.Background(), recommended.Name.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if shared.Name != recommended.Name {
			t.Errorf("expected identical name, got %+v vs %+v", shared.Name, recommended.Name)
		}
		if !slices.Equal(companionNames(shared.Companions), companionNames(recommended.Companions)) {
			t.Errorf("expected identical companions, got %v vs %v", companionNames(shared.Companions), companionNames(recommended.Companions))
		}
	}
}

func TestError(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: NoMatch}, "NoMatch"},
		{&Error{Kind: InvalidInput, Detail: "image is required"}, "InvalidInput: image is required"},
		{&Error{Kind: Internal, Err: cause}, "Internal: boom"},
		{&Error{Kind: Internal, Detail: "failed", Err: cause}, "Internal: failed: boom"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}

	if KindOf(cause) != Internal {
		t.Error("expected foreign errors to map to Internal")
	}
	if KindOf(wrap(&Error{Kind: NotFound})) != NotFound {
		t.Error("expected wrapped errors to keep their kind")
	}
}

func wrap(err error) error {
	return errors.Join(errors.New("context"), err)
}

func TestResolveShared_SeededDecomposedDataset(t *testing.T) {
	f, err := database.ParseSeed([]byte(norm.NFD.String(`
names:
  - identifier: jisoo_지수_01
    gender: F
    vibes: [friendly]
companions:
  - identifier: jisoo_지수
    name: Kim Jisoo
    category: singer
`)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ds := mock.NewMockDataset()
	ctx := context.Background()
	if err := f.Apply(ctx, ds, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := newTestMatcher(ds, allowAll{}, aimock.NewMockClassifier(aimock.Face(vibe.VeryLikely, vibe.Unknown, vibe.Unknown)))

	shared, err := m.ResolveShared(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shared.Companions) != 1 {
		t.Errorf("expected 1 companion on the shared path, got %d (query %q)", len(shared.Companions), ds.LastCompanionQuery)
	}

	rec, err := m.Recommend(ctx, Request{Gender: database.GenderFemale, Image: jpeg})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.Companions) != 1 {
		t.Errorf("expected 1 companion on the recommend path, got %d", len(rec.Companions))
	}
}
