// Package analysis runs the local resume analysis pipeline:
// extraction, semantic matching, scoring and recommendations.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domana "github.com/kailas-cloud/resumatch/internal/domain/analysis"
	"github.com/kailas-cloud/resumatch/internal/usecase/extract"
	"github.com/kailas-cloud/resumatch/internal/usecase/recommend"
	"github.com/kailas-cloud/resumatch/internal/usecase/score"
)

// Degradation component names.
const (
	ComponentSkillMatch      = "skill_match"
	ComponentExperienceMatch = "experience_match"
)

type nopObserver struct{}

func (nopObserver) Degraded(string)                                  {}
func (nopObserver) Completed(string, time.Duration, int, int, error) {}

// Service is the local analysis backend.
type Service struct {
	extractor *extract.Extractor
	matcher   SkillMatcher
	scorer    Scorer
	observer  Observer
	logger    *zap.Logger
}

// New creates the local analysis service. observer may be nil.
func New(
	extractor *extract.Extractor, matcher SkillMatcher, scorer Scorer,
	observer Observer, logger *zap.Logger,
) *Service {
	if observer == nil {
		observer = nopObserver{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		extractor: extractor,
		matcher:   matcher,
		scorer:    scorer,
		observer:  observer,
		logger:    logger,
	}
}

// Analyze scores resumeText against jobDescription. A blank job description
// yields fixed scores and no breakdown.
func (s *Service) Analyze(ctx context.Context, resumeText, jobDescription string) (domana.Result, error) {
	start := time.Now()
	if domain.UsageFromContext(ctx) == nil {
		ctx, _ = domain.NewContextWithUsage(ctx)
	}
	res, err := s.analyze(ctx, resumeText, jobDescription)
	s.observer.Completed(string(domana.BackendLocal), time.Since(start), res.ATSScore, res.MatchScore, err)
	return res, err
}

func (s *Service) analyze(ctx context.Context, resumeText, jobDescription string) (domana.Result, error) {
	if strings.TrimSpace(resumeText) == "" {
		return domana.Result{}, fmt.Errorf("resume text is empty: %w", domain.ErrInvalidInput)
	}

	resume := s.extractor.Extract(resumeText)
	res := domana.Result{
		ExtractedSkills:    domana.CapitalizeAll(resume.Skills),
		ExperienceYears:    resume.ExperienceYears,
		EducationLevel:     resume.Education,
		JobTitles:          titleCaseAll(resume.Titles),
		ProjectSuggestions: recommend.Projects(),
		PredictedRoles:     recommend.PredictRoles(resume.Skills),
	}

	if strings.TrimSpace(jobDescription) == "" {
		res.ATSScore = score.NoJobDescriptionScore
		res.MatchScore = score.NoJobDescriptionScore
		res.MatchingSkills = []string{}
		res.MissingSkills = []string{}
		res.ExtraSkills = domana.CapitalizeAll(resume.Skills)
		res.SkillGaps = recommend.Gaps(nil, resume.Skills, false)
		res.LearningRecommendations = recommend.Learning(res.SkillGaps)
		return res, nil
	}

	job := s.extractor.Extract(jobDescription)
	required := s.matcher.RequiredSkills(job.Normalized)

	aligned, err := s.matcher.Match(ctx, required, resume.Skills)
	if err != nil {
		return domana.Result{}, fmt.Errorf("match skills: %w", err)
	}
	if aligned.IsDegraded() {
		res.Degradations = append(res.Degradations, s.degraded(ComponentSkillMatch, aligned.Reason()))
	}
	a := aligned.Value()

	scored, err := s.scorer.Score(ctx, score.Input{
		Resume:    resume,
		Job:       job,
		Required:  required,
		Alignment: a,
	})
	if err != nil {
		return domana.Result{}, fmt.Errorf("score: %w", err)
	}
	if scored.IsDegraded() {
		res.Degradations = append(res.Degradations, s.degraded(ComponentExperienceMatch, scored.Reason()))
	}
	sc := scored.Value()
	breakdown := sc.Breakdown

	res.ATSScore = breakdown.FinalATSScore
	res.ATSBreakdown = &breakdown
	res.MatchScore = sc.Match
	res.MatchingSkills = domana.CapitalizeAll(a.Matched)
	res.MissingSkills = domana.CapitalizeAll(a.Missing)
	res.ExtraSkills = domana.CapitalizeAll(a.Extra)
	res.SkillGaps = recommend.Gaps(a.Missing, resume.Skills, true)
	res.LearningRecommendations = recommend.Learning(res.SkillGaps)
	return res, nil
}

func (s *Service) degraded(component string, reason error) string {
	s.observer.Degraded(component)
	s.logger.Warn("Analysis degraded",
		zap.String("component", component),
		zap.NamedError("reason", reason),
	)
	return component
}

func titleCaseAll(titles []string) []string {
	out := make([]string, len(titles))
	for i, t := range titles {
		out[i] = domana.TitleCase(t)
	}
	return out
}
