package resumatch

import domana "github.com/kailas-cloud/resumatch/internal/domain/analysis"

// Analysis output types.
type (
	Result                 = domana.Result
	Breakdown              = domana.Breakdown
	SkillGap               = domana.SkillGap
	LearningRecommendation = domana.LearningRecommendation
	ProjectSuggestion      = domana.ProjectSuggestion
	EducationLevel         = domana.EducationLevel
	Importance             = domana.Importance
)

// Education tiers.
const (
	HighSchool = domana.HighSchool
	Bachelors  = domana.Bachelors
	Masters    = domana.Masters
	PhD        = domana.PhD
)

// RoleProfile lists the skills a role implies, most important first.
type RoleProfile struct {
	Role   string
	Skills []string
}

// Lexicon extends the built-in skill vocabulary.
// Roles that already exist get their profile replaced.
type Lexicon struct {
	Skills         []string
	Roles          []RoleProfile
	Titles         []string
	Certifications []string
}
