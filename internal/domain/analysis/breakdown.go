package analysis

import "math"

// Weight ceilings of the ATS sub-scores.
const (
	SkillMatchCeiling      = 40.0
	KeywordMatchCeiling    = 25.0
	ExperienceMatchCeiling = 15.0
	EducationMatchCeiling  = 10.0
	FormattingCeiling      = 10.0
)

// Breakdown holds the five weighted ATS sub-scores.
// Sub-scores are kept unrounded so that FinalATSScore == round(Sum()) holds exactly.
type Breakdown struct {
	SkillMatchScore      float64 `json:"skill_match_score"`
	KeywordMatchScore    float64 `json:"keyword_match_score"`
	ExperienceMatchScore float64 `json:"experience_match_score"`
	EducationMatchScore  float64 `json:"education_match_score"`
	FormattingScore      float64 `json:"formatting_score"`
	FinalATSScore        int     `json:"final_ats_score"`
}

// NewBreakdown clamps each sub-score to [0, ceiling] and derives the final score.
func NewBreakdown(skill, keyword, experience, education, formatting float64) Breakdown {
	b := Breakdown{
		SkillMatchScore:      clamp(skill, SkillMatchCeiling),
		KeywordMatchScore:    clamp(keyword, KeywordMatchCeiling),
		ExperienceMatchScore: clamp(experience, ExperienceMatchCeiling),
		EducationMatchScore:  clamp(education, EducationMatchCeiling),
		FormattingScore:      clamp(formatting, FormattingCeiling),
	}
	b.FinalATSScore = int(math.Round(b.Sum()))
	return b
}

// Sum adds the five sub-scores.
func (b Breakdown) Sum() float64 {
	return b.SkillMatchScore + b.KeywordMatchScore + b.ExperienceMatchScore +
		b.EducationMatchScore + b.FormattingScore
}

func clamp(v, ceiling float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > ceiling {
		return ceiling
	}
	return v
}
