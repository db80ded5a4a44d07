package hosted

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domana "github.com/kailas-cloud/resumatch/internal/domain/analysis"
)

const (
	maxScore           = 100
	maxExperienceYears = 80
)

var fencePattern = regexp.MustCompile("```(?:json)?\\n?")

type rawGap struct {
	Skill      string `json:"skill"`
	SkillName  string `json:"skill_name"`
	Importance string `json:"importance"`
}

type rawLearning struct {
	Course     string `json:"course"`
	CourseName string `json:"course_name"`
	Platform   string `json:"platform"`
	URL        string `json:"url"`
}

type rawAnalysis struct {
	ExtractedSkills         []string                   `json:"extracted_skills"`
	ExperienceYears         float64                    `json:"experience_years"`
	EducationLevel          string                     `json:"education_level"`
	JobTitles               []string                   `json:"job_titles"`
	SkillGaps               []rawGap                   `json:"skill_gaps"`
	LearningRecommendations []rawLearning              `json:"learning_recommendations"`
	ProjectSuggestions      []domana.ProjectSuggestion `json:"project_suggestions"`
	ATSScore                float64                    `json:"ats_score"`
	PredictedRoles          []string                   `json:"predicted_roles"`
	JobMatchScore           *float64                   `json:"job_match_score"`
	MatchingSkills          []string                   `json:"matching_skills"`
	MissingSkills           []string                   `json:"missing_skills"`
	ExtraSkills             []string                   `json:"extra_skills"`
}

// CleanJSON strips markdown code fences that models wrap around JSON output.
func CleanJSON(text string) string {
	return strings.TrimSpace(fencePattern.ReplaceAllString(text, ""))
}

// ParseResult decodes model output into a result, normalizing field aliases
// and filling absent lists with empty ones.
func ParseResult(text string) (domana.Result, error) {
	var raw rawAnalysis
	if err := json.Unmarshal([]byte(CleanJSON(text)), &raw); err != nil {
		return domana.Result{}, fmt.Errorf("decode model output: %w: %w", domain.ErrMalformedResponse, err)
	}

	res := domana.Result{
		ExtractedSkills:         orEmpty(raw.ExtractedSkills),
		ExperienceYears:         int(math.Min(maxExperienceYears, nonNegative(raw.ExperienceYears))),
		EducationLevel:          educationLevel(raw.EducationLevel),
		JobTitles:               orEmpty(raw.JobTitles),
		SkillGaps:               make([]domana.SkillGap, 0, len(raw.SkillGaps)),
		LearningRecommendations: make([]domana.LearningRecommendation, 0, len(raw.LearningRecommendations)),
		ProjectSuggestions:      make([]domana.ProjectSuggestion, 0, len(raw.ProjectSuggestions)),
		ATSScore:                clampScore(raw.ATSScore),
		PredictedRoles:          orEmpty(raw.PredictedRoles),
		MatchingSkills:          orEmpty(raw.MatchingSkills),
		MissingSkills:           orEmpty(raw.MissingSkills),
		ExtraSkills:             orEmpty(raw.ExtraSkills),
	}

	for _, g := range raw.SkillGaps {
		name := g.Skill
		if name == "" {
			name = g.SkillName
		}
		res.SkillGaps = append(res.SkillGaps, domana.SkillGap{Skill: name, Importance: domana.Importance(g.Importance)})
	}
	for _, l := range raw.LearningRecommendations {
		course := l.Course
		if course == "" {
			course = l.CourseName
		}
		res.LearningRecommendations = append(res.LearningRecommendations, domana.LearningRecommendation{
			Course:   course,
			Platform: l.Platform,
			URL:      l.URL,
		})
	}
	for _, p := range raw.ProjectSuggestions {
		p.Skills = orEmpty(p.Skills)
		res.ProjectSuggestions = append(res.ProjectSuggestions, p)
	}

	res.MatchScore = matchScore(raw)
	return res, nil
}

// matchScore prefers the model's job match score and otherwise estimates one
// from the ATS score, skill count and experience.
func matchScore(raw rawAnalysis) int {
	if raw.JobMatchScore != nil {
		return clampScore(*raw.JobMatchScore)
	}
	estimate := raw.ATSScore*0.4 + float64(len(raw.ExtractedSkills))*2 + raw.ExperienceYears*3
	return clampScore(estimate)
}

func clampScore(v float64) int {
	return int(math.Min(maxScore, nonNegative(v)))
}

// nonNegative rounds v, mapping NaN and negatives to 0.
func nonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return math.Round(v)
}

func educationLevel(s string) domana.EducationLevel {
	switch l := domana.EducationLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case domana.PhD, domana.Masters, domana.Bachelors:
		return l
	default:
		return domana.HighSchool
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
