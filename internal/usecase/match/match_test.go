package match

import (
	"context"
	"errors"
	"slices"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain"
	"github.com/kailas-cloud/resumatch/internal/domain/skill"
)

// tableEmbedder maps each skill to a fixed vector; similarity is the dot product.
type tableEmbedder struct {
	vecs     map[string][]float32
	err      error
	simErr   error
	batches  int
	simCalls int
}

func (e *tableEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.batches++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := e.vecs[t]
		if !ok {
			v = []float32{0, 0, 1}
		}
		out[i] = v
	}
	return out, nil
}

func (e *tableEmbedder) Similarity(a, b []float32) (float64, error) {
	e.simCalls++
	if e.simErr != nil {
		return 0, e.simErr
	}
	if len(a) != len(b) {
		return 0, domain.ErrVectorLengthMismatch
	}
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s, nil
}

func newMatcher(e Embedder) *Matcher {
	return New(e, skill.Default(), zap.NewNop())
}

func TestRequiredSkills_LexiconThenRoleProfile(t *testing.T) {
	m := newMatcher(nil)
	jd := "looking for a full stack developer with react, node.js, mongodb, aws, 3+ years experience"

	got := m.RequiredSkills(jd)

	// lexicon hits come first, in lexicon order
	if got[0] != "react" {
		t.Errorf("expected react first, got %v", got)
	}
	for _, want := range []string{"react", "node.js", "mongodb", "aws", "javascript", "typescript", "sql", "git"} {
		if !slices.Contains(got, want) {
			t.Errorf("expected %q in %v", want, got)
		}
	}
	seen := map[string]bool{}
	for _, s := range got {
		if seen[s] {
			t.Errorf("duplicate %q in %v", s, got)
		}
		seen[s] = true
	}
}

func TestRequiredSkills_FuzzyRoleFallback(t *testing.T) {
	m := newMatcher(nil)

	// no lexicon token (not even "r" or "c") occurs in the text
	got := m.RequiredSkills("seeking mobile talent")

	want := []string{"react native", "flutter", "ios", "android", "swift", "kotlin", "git"}
	if !slices.Equal(got, want) {
		t.Errorf("expected mobile profile %v, got %v", want, got)
	}
}

func TestRequiredSkills_Nothing(t *testing.T) {
	m := newMatcher(nil)
	if got := m.RequiredSkills("seeking plumbing talent"); len(got) != 0 {
		t.Errorf("expected no skills, got %v", got)
	}
}

func TestMatch_ExactShortCircuit(t *testing.T) {
	e := &tableEmbedder{vecs: map[string][]float32{}}
	m := newMatcher(e)

	out, err := m.Match(context.Background(), []string{"react"}, []string{"react"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := out.Value()
	if out.IsDegraded() {
		t.Fatal("unexpected degradation")
	}
	if !slices.Equal(a.Matched, []string{"react"}) || len(a.Missing) != 0 || len(a.Extra) != 0 {
		t.Errorf("unexpected alignment %+v", a)
	}
	if e.simCalls != 0 {
		t.Errorf("exact match must not compute similarity, got %d calls", e.simCalls)
	}
	if e.batches != 1 {
		t.Errorf("expected one embedding batch, got %d", e.batches)
	}
}

func TestMatch_SemanticThreshold(t *testing.T) {
	e := &tableEmbedder{vecs: map[string][]float32{
		"postgresql": {1, 0, 0},
		"sql":        {0.8, 0.6, 0}, // 0.8 to postgresql
		"docker":     {0, 1, 0},
		"kubernetes": {0, 0.6, 0.8}, // 0.6 to docker
	}}
	m := newMatcher(e)

	out, err := m.Match(context.Background(),
		[]string{"sql", "kubernetes"},
		[]string{"postgresql", "docker"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := out.Value()
	if !slices.Equal(a.Matched, []string{"sql"}) {
		t.Errorf("expected sql matched, got %v", a.Matched)
	}
	if !slices.Equal(a.Missing, []string{"kubernetes"}) {
		t.Errorf("expected kubernetes missing, got %v", a.Missing)
	}
	if !slices.Equal(a.Extra, []string{"docker"}) {
		t.Errorf("expected docker extra, got %v", a.Extra)
	}
}

func TestMatch_FirstSeenTieBreak(t *testing.T) {
	e := &tableEmbedder{vecs: map[string][]float32{
		"vue":     {1, 0, 0},
		"react":   {0.7, 0.714, 0},
		"angular": {0.7, 0.714, 0},
	}}
	m := newMatcher(e)

	out, err := m.Match(context.Background(), []string{"vue"}, []string{"react", "angular"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := out.Value()
	if !slices.Equal(a.Extra, []string{"angular"}) {
		t.Errorf("equal similarity should consume the first resume skill, extra = %v", a.Extra)
	}
}

func TestMatch_EmptyRequired(t *testing.T) {
	m := newMatcher(&tableEmbedder{})

	out, err := m.Match(context.Background(), nil, []string{"go", "sql"})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(out.Value().Extra, []string{"go", "sql"}) {
		t.Errorf("expected all resume skills extra, got %v", out.Value().Extra)
	}
}

func TestMatch_DegradesOnProviderFailure(t *testing.T) {
	e := &tableEmbedder{err: domain.ErrEmbeddingProviderError}
	m := newMatcher(e)

	out, err := m.Match(context.Background(),
		[]string{"react", "aws", "mongodb"},
		[]string{"mongodb", "python", "react"},
	)
	if err != nil {
		t.Fatalf("provider failure must not surface as error: %v", err)
	}
	if !out.IsDegraded() || !errors.Is(out.Reason(), domain.ErrEmbeddingProviderError) {
		t.Fatalf("expected degraded outcome, got %+v", out)
	}
	a := out.Value()
	if !slices.Equal(a.Matched, []string{"mongodb", "react"}) {
		t.Errorf("matched should follow resume order, got %v", a.Matched)
	}
	if !slices.Equal(a.Missing, []string{"aws"}) {
		t.Errorf("unexpected missing %v", a.Missing)
	}
	if !slices.Equal(a.Extra, []string{"python"}) {
		t.Errorf("unexpected extra %v", a.Extra)
	}
}

func TestMatch_NilEmbedderDegrades(t *testing.T) {
	out, err := newMatcher(nil).Match(context.Background(), []string{"go"}, []string{"go"})
	if err != nil {
		t.Fatal(err)
	}
	if !out.IsDegraded() {
		t.Error("expected degraded outcome without an embedder")
	}
	if !slices.Equal(out.Value().Matched, []string{"go"}) {
		t.Errorf("unexpected alignment %+v", out.Value())
	}
}

func TestMatch_LengthMismatchIsFatal(t *testing.T) {
	e := &tableEmbedder{vecs: map[string][]float32{
		"react": {1, 0},
		"vue":   {1, 0, 0},
	}}
	m := newMatcher(e)

	_, err := m.Match(context.Background(), []string{"react"}, []string{"vue"})
	if !errors.Is(err, domain.ErrVectorLengthMismatch) {
		t.Fatalf("expected ErrVectorLengthMismatch, got %v", err)
	}
}

func TestMatch_CustomThreshold(t *testing.T) {
	e := &tableEmbedder{vecs: map[string][]float32{
		"docker":     {0, 1, 0},
		"kubernetes": {0, 0.6, 0.8},
	}}
	m := New(e, skill.Default(), zap.NewNop(), WithThreshold(0.5))

	out, err := m.Match(context.Background(), []string{"kubernetes"}, []string{"docker"})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(out.Value().Matched, []string{"kubernetes"}) {
		t.Errorf("expected match at 0.6 with threshold 0.5, got %+v", out.Value())
	}
}
