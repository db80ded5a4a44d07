// Package match aligns the skills a job description requires with the skills
// found in a resume.
package match

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain"
	"github.com/kailas-cloud/resumatch/internal/domain/outcome"
	"github.com/kailas-cloud/resumatch/internal/domain/skill"
)

// DefaultThreshold is the minimum cosine similarity for a semantic match.
const DefaultThreshold = 0.65

// Embedder is the subset of the embedding provider used for matching.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Similarity(a, b []float32) (float64, error)
}

// Alignment partitions required and resume skills. All lists hold lowercase
// lexicon tokens.
type Alignment struct {
	Matched []string
	Missing []string
	Extra   []string
}

// Matcher performs semantic skill alignment.
type Matcher struct {
	embedder  Embedder
	lexicon   *skill.Lexicon
	threshold float64
	logger    *zap.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold overrides DefaultThreshold.
func WithThreshold(t float64) Option {
	return func(m *Matcher) {
		if t > 0 {
			m.threshold = t
		}
	}
}

// New creates a matcher. A nil embedder always yields degraded exact matching.
func New(embedder Embedder, lex *skill.Lexicon, logger *zap.Logger, opts ...Option) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Matcher{
		embedder:  embedder,
		lexicon:   lex,
		threshold: DefaultThreshold,
		logger:    logger,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// RequiredSkills derives the skills a lowercased job description asks for:
// lexicon hits, then the profiles of roles named in the text, then, if still
// empty, the profile of the first role whose leading word appears.
func (m *Matcher) RequiredSkills(jd string) []string {
	required := skill.Present(jd, m.lexicon.Skills())

	for _, r := range m.lexicon.Roles() {
		if !strings.Contains(jd, r.Role) {
			continue
		}
		for _, s := range r.Skills {
			if !slices.Contains(required, s) {
				required = append(required, s)
			}
		}
	}
	if len(required) > 0 {
		return required
	}

	for _, r := range m.lexicon.Roles() {
		first, _, _ := strings.Cut(r.Role, " ")
		if first != "" && strings.Contains(jd, first) {
			return slices.Clone(r.Skills)
		}
	}
	return required
}

// Match aligns required against resume skills. Embedding failures produce a
// degraded exact-match outcome. A vector length mismatch is returned as an error.
func (m *Matcher) Match(ctx context.Context, required, resume []string) (outcome.Outcome[Alignment], error) {
	if m.embedder == nil {
		return outcome.Degraded(ExactMatch(required, resume), domain.ErrModelNotLoaded), nil
	}

	a, err := m.semantic(ctx, required, resume)
	switch {
	case err == nil:
		return outcome.OK(a), nil
	case errors.Is(err, domain.ErrVectorLengthMismatch):
		return outcome.Outcome[Alignment]{}, err
	default:
		m.logger.Warn("Semantic matching failed, falling back to exact match",
			zap.String("component", "skill_match"),
			zap.Error(err),
		)
		return outcome.Degraded(ExactMatch(required, resume), err), nil
	}
}

func (m *Matcher) semantic(ctx context.Context, required, resume []string) (Alignment, error) {
	var a Alignment
	if len(required) == 0 {
		a.Extra = slices.Clone(resume)
		return a, nil
	}

	// one batch: required skills first, then resume skills
	texts := make([]string, 0, len(required)+len(resume))
	texts = append(texts, required...)
	texts = append(texts, resume...)
	vecs, err := m.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return Alignment{}, fmt.Errorf("embed skills: %w", err)
	}
	if len(vecs) != len(texts) {
		return Alignment{}, fmt.Errorf("%w: got %d vectors for %d skills",
			domain.ErrEmbeddingProviderError, len(vecs), len(texts))
	}
	reqVecs, resVecs := vecs[:len(required)], vecs[len(required):]

	consumed := make([]bool, len(resume))
	for i, req := range required {
		best, bestIdx := 0.0, -1
		for j, have := range resume {
			if req == have {
				best, bestIdx = 1.0, j
				break
			}
			sim, err := m.embedder.Similarity(reqVecs[i], resVecs[j])
			if err != nil {
				return Alignment{}, fmt.Errorf("compare %q with %q: %w", req, have, err)
			}
			if sim > best {
				best, bestIdx = sim, j
			}
		}

		if best >= m.threshold {
			a.Matched = append(a.Matched, req)
			if bestIdx >= 0 {
				consumed[bestIdx] = true
			}
		} else {
			a.Missing = append(a.Missing, req)
		}
	}

	for j, have := range resume {
		if !consumed[j] {
			a.Extra = append(a.Extra, have)
		}
	}
	return a, nil
}

// ExactMatch aligns by string equality only.
func ExactMatch(required, resume []string) Alignment {
	var a Alignment
	for _, s := range resume {
		if slices.Contains(required, s) {
			a.Matched = append(a.Matched, s)
		} else {
			a.Extra = append(a.Extra, s)
		}
	}
	for _, s := range required {
		if !slices.Contains(resume, s) {
			a.Missing = append(a.Missing, s)
		}
	}
	return a
}
