// Package score computes the weighted ATS sub-scores and the job-fit match score.
package score

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain"
	"github.com/kailas-cloud/resumatch/internal/domain/analysis"
	"github.com/kailas-cloud/resumatch/internal/domain/outcome"
	"github.com/kailas-cloud/resumatch/internal/domain/skill"
	"github.com/kailas-cloud/resumatch/internal/usecase/extract"
	"github.com/kailas-cloud/resumatch/internal/usecase/match"
)

const (
	// FallbackExperienceScore replaces the experience sub-score when the
	// embedding provider is unavailable.
	FallbackExperienceScore = 10.0

	// MaxMatchScore caps the job-fit score.
	MaxMatchScore = 95

	// NoJobDescriptionScore is reported for both scores when no job description is given.
	NoJobDescriptionScore = 70

	experienceWindow = 1000
	jobFitWeight     = analysis.SkillMatchCeiling + analysis.ExperienceMatchCeiling + analysis.EducationMatchCeiling
)

var actionVerbs = []string{
	"designed", "implemented", "optimized", "scaled", "managed",
	"led", "developed", "created", "maintained",
}

var (
	phdRequirement       = []string{"phd", "doctorate"}
	mastersRequirement   = []string{"master", "msc", "mba"}
	bachelorsRequirement = []string{"bachelor", "bsc", "degree"}
)

// Embedder is the subset of the embedding provider used for scoring.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Similarity(a, b []float32) (float64, error)
}

// Input gathers everything the scorer needs for one resume/job pair.
type Input struct {
	Resume    extract.Features
	Job       extract.Features
	Required  []string
	Alignment match.Alignment
}

// Scores is the scorer output.
type Scores struct {
	Breakdown analysis.Breakdown
	Match     int
}

// Scorer combines the five ATS factors.
type Scorer struct {
	embedder Embedder
	lexicon  *skill.Lexicon
	logger   *zap.Logger
}

// New creates a scorer. A nil embedder always uses FallbackExperienceScore.
func New(embedder Embedder, lex *skill.Lexicon, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{embedder: embedder, lexicon: lex, logger: logger}
}

// Score computes the breakdown and match score. The outcome is degraded when
// the experience similarity could not be computed.
func (s *Scorer) Score(ctx context.Context, in Input) (outcome.Outcome[Scores], error) {
	exp, err := s.experience(ctx, in.Resume.Normalized, in.Job.Normalized)
	if err != nil {
		return outcome.Outcome[Scores]{}, err
	}

	keywords := Keywords(in.Required, in.Job.Titles, in.Job.Normalized)
	b := analysis.NewBreakdown(
		SkillMatch(len(in.Alignment.Matched), len(in.Required)),
		KeywordRelevance(keywords, in.Resume.Normalized),
		exp.Value(),
		EducationMatch(in.Job.Normalized, in.Resume.Normalized, in.Resume.Education, s.lexicon.Certifications()),
		Formatting(in.Resume.Formatting),
	)
	scores := Scores{
		Breakdown: b,
		Match:     MatchScore(b),
	}

	if exp.IsDegraded() {
		return outcome.Degraded(scores, exp.Reason()), nil
	}
	return outcome.OK(scores), nil
}

func (s *Scorer) experience(ctx context.Context, resume, job string) (outcome.Outcome[float64], error) {
	if s.embedder == nil {
		return outcome.Degraded(FallbackExperienceScore, domain.ErrModelNotLoaded), nil
	}

	sim, err := s.similarity(ctx, truncate(resume, experienceWindow), truncate(job, experienceWindow))
	switch {
	case err == nil:
		return outcome.OK(math.Max(0, sim) * analysis.ExperienceMatchCeiling), nil
	case errors.Is(err, domain.ErrVectorLengthMismatch):
		return outcome.Outcome[float64]{}, err
	default:
		s.logger.Warn("Experience matching failed, using fallback score",
			zap.String("component", "experience_match"),
			zap.Float64("score", FallbackExperienceScore),
			zap.Error(err),
		)
		return outcome.Degraded(FallbackExperienceScore, err), nil
	}
}

func (s *Scorer) similarity(ctx context.Context, a, b string) (float64, error) {
	va, err := s.embedder.Embed(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("embed resume: %w", err)
	}
	vb, err := s.embedder.Embed(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("embed job description: %w", err)
	}
	sim, err := s.embedder.Similarity(va, vb)
	if err != nil {
		return 0, fmt.Errorf("experience similarity: %w", err)
	}
	return sim, nil
}

// SkillMatch is matched/max(required,1) scaled to the skill ceiling.
func SkillMatch(matched, required int) float64 {
	return float64(matched) / float64(max(required, 1)) * analysis.SkillMatchCeiling
}

// Keywords lists the terms the resume is checked for: required skills, job
// titles found in the job description, then action verbs it uses.
func Keywords(required, jobTitles []string, job string) []string {
	kw := make([]string, 0, len(required)+len(jobTitles)+len(actionVerbs))
	kw = append(kw, required...)
	kw = append(kw, jobTitles...)
	kw = append(kw, skill.Present(job, actionVerbs)...)
	return kw
}

// KeywordRelevance is the share of keywords present in the resume, scaled to the keyword ceiling.
func KeywordRelevance(keywords []string, resume string) float64 {
	found := len(skill.Present(resume, keywords))
	return float64(found) / float64(max(len(keywords), 1)) * analysis.KeywordMatchCeiling
}

// EducationMatch scores the degree requirement (only the highest tier the job
// mentions) and each certification the job names.
func EducationMatch(job, resume string, level analysis.EducationLevel, certifications []string) float64 {
	total, met := 0, 0

	var need analysis.EducationLevel
	switch {
	case containsAny(job, phdRequirement):
		need = analysis.PhD
	case containsAny(job, mastersRequirement):
		need = analysis.Masters
	case containsAny(job, bachelorsRequirement):
		need = analysis.Bachelors
	}
	if need != "" {
		total++
		if level.Rank() >= need.Rank() {
			met++
		}
	}

	for _, c := range skill.Present(job, certifications) {
		total++
		if strings.Contains(resume, c) {
			met++
		}
	}

	if total == 0 {
		return analysis.EducationMatchCeiling
	}
	return float64(met) / float64(total) * analysis.EducationMatchCeiling
}

// Formatting is passed/FormattingChecks scaled to the formatting ceiling.
func Formatting(f extract.Formatting) float64 {
	return float64(f.Passed()) / extract.FormattingChecks * analysis.FormattingCeiling
}

// MatchScore is the job-fit score: skill, experience and education
// normalized to 100 and capped at MaxMatchScore.
func MatchScore(b analysis.Breakdown) int {
	fit := b.SkillMatchScore + b.ExperienceMatchScore + b.EducationMatchScore
	return min(MaxMatchScore, int(math.Round(fit/jobFitWeight*100)))
}

func truncate(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
