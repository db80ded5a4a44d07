package analysis

import (
	"context"
	"time"

	"github.com/kailas-cloud/resumatch/internal/domain/outcome"
	"github.com/kailas-cloud/resumatch/internal/usecase/match"
	"github.com/kailas-cloud/resumatch/internal/usecase/score"
)

// SkillMatcher derives required skills and aligns them with resume skills.
type SkillMatcher interface {
	RequiredSkills(jd string) []string
	Match(ctx context.Context, required, resume []string) (outcome.Outcome[match.Alignment], error)
}

// Scorer computes the ATS breakdown and match score.
type Scorer interface {
	Score(ctx context.Context, in score.Input) (outcome.Outcome[score.Scores], error)
}

// Observer receives analysis events for metrics.
type Observer interface {
	Degraded(component string)
	Completed(backend string, elapsed time.Duration, ats, match int, err error)
}
