// Package analysis holds the resume analysis aggregate.
package analysis

// EducationLevel is the highest degree tier detected in a resume.
type EducationLevel string

// Education tiers, lowest first.
const (
	HighSchool EducationLevel = "high_school"
	Bachelors  EducationLevel = "bachelors"
	Masters    EducationLevel = "masters"
	PhD        EducationLevel = "phd"
)

// Rank orders tiers so that higher degrees compare greater.
func (l EducationLevel) Rank() int {
	switch l {
	case PhD:
		return 3
	case Masters:
		return 2
	case Bachelors:
		return 1
	default:
		return 0
	}
}

// Importance grades a skill gap.
type Importance string

// Gap importance levels.
const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
)

// SkillGap is a skill the candidate should acquire.
type SkillGap struct {
	Skill      string     `json:"skill"`
	Importance Importance `json:"importance"`
}

// LearningRecommendation points at a course search for one gap.
type LearningRecommendation struct {
	Course   string `json:"course"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// ProjectSuggestion is a portfolio project idea.
type ProjectSuggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

// Result is the immutable output of one resume analysis.
type Result struct {
	ExtractedSkills         []string                 `json:"extracted_skills"`
	ExperienceYears         int                      `json:"experience_years"`
	EducationLevel          EducationLevel           `json:"education_level"`
	JobTitles               []string                 `json:"job_titles"`
	MatchScore              int                      `json:"match_score"`
	SkillGaps               []SkillGap               `json:"skill_gaps"`
	LearningRecommendations []LearningRecommendation `json:"learning_recommendations"`
	ProjectSuggestions      []ProjectSuggestion      `json:"project_suggestions"`
	ATSScore                int                      `json:"ats_score"`
	ATSBreakdown            *Breakdown               `json:"ats_breakdown,omitempty"`
	PredictedRoles          []string                 `json:"predicted_roles"`
	MatchingSkills          []string                 `json:"matching_skills"`
	MissingSkills           []string                 `json:"missing_skills"`
	ExtraSkills             []string                 `json:"extra_skills"`

	// Degradations names the components that fell back to their degraded path.
	Degradations []string `json:"degradations,omitempty"`
}
