// Package recommend turns an alignment into skill gaps, learning links,
// project ideas and predicted roles.
package recommend

import (
	"net/url"
	"slices"
	"strings"

	"github.com/kailas-cloud/resumatch/internal/domain/analysis"
)

const (
	// MaxGaps caps the number of reported skill gaps.
	MaxGaps = 5
	// MaxLearning caps the number of learning recommendations.
	MaxLearning = 8
)

// Platform is a course catalogue with a search URL prefix.
type Platform struct {
	Name      string
	SearchURL string
}

// Platforms are assigned to gaps round-robin.
var Platforms = []Platform{
	{"Udemy", "https://www.udemy.com/courses/search/?q="},
	{"Coursera", "https://www.coursera.org/search?query="},
	{"Pluralsight", "https://www.pluralsight.com/search?q="},
	{"LinkedIn Learning", "https://www.linkedin.com/learning/search?keywords="},
	{"edX", "https://www.edx.org/search?q="},
	{"Codecademy", "https://www.codecademy.com/search?query="},
	{"FreeCodeCamp", "https://www.freecodecamp.org/news/search/?query="},
	{"Udacity", "https://www.udacity.com/courses/all?search="},
	{"Khan Academy", "https://www.khanacademy.org/search?page_search_query="},
	{"YouTube (Programming)", "https://www.youtube.com/results?search_query="},
}

var modernSkills = []string{"typescript", "docker", "kubernetes", "aws", "react"}

var projects = []analysis.ProjectSuggestion{
	{
		Title:       "Build a Full-Stack Web Application",
		Description: "Create an end-to-end application with authentication, database, and modern UI",
		Skills:      []string{"React", "Node.js", "PostgreSQL", "REST API"},
	},
	{
		Title:       "Containerize and Deploy Application",
		Description: "Deploy your application using Docker and cloud services",
		Skills:      []string{"Docker", "AWS/Azure", "CI/CD", "DevOps"},
	},
	{
		Title:       "Open Source Contribution",
		Description: "Contribute to popular open-source projects to build community presence",
		Skills:      []string{"Git", "GitHub", "Collaboration", "Code Review"},
	},
}

type roleRule struct {
	role string
	test func(has func(...string) bool) bool
}

var roleRules = []roleRule{
	{"Frontend Developer", func(has func(...string) bool) bool {
		return has("react", "vue", "angular", "html", "css")
	}},
	{"Backend Developer", func(has func(...string) bool) bool {
		return has("node.js", "python", "java", "sql", "mongodb")
	}},
	{"Full Stack Developer", func(has func(...string) bool) bool {
		return has("react", "node.js") && has("sql", "mongodb")
	}},
	{"DevOps Engineer", func(has func(...string) bool) bool {
		return has("aws", "docker", "kubernetes")
	}},
}

var fallbackRoles = []string{"Software Engineer", "Developer"}

// Gaps lists the skills to acquire. With a job description these are the
// first missing skills at high importance; otherwise the modern-market skills
// the resume lacks, at medium importance.
func Gaps(missing, extracted []string, hasJob bool) []analysis.SkillGap {
	source, importance := missing, analysis.ImportanceHigh
	if !hasJob {
		source, importance = nil, analysis.ImportanceMedium
		for _, s := range modernSkills {
			if !slices.Contains(extracted, s) {
				source = append(source, s)
			}
		}
	}

	gaps := make([]analysis.SkillGap, 0, min(len(source), MaxGaps))
	for _, s := range source[:min(len(source), MaxGaps)] {
		gaps = append(gaps, analysis.SkillGap{Skill: analysis.Capitalize(s), Importance: importance})
	}
	return gaps
}

// Learning builds one course search link per gap.
func Learning(gaps []analysis.SkillGap) []analysis.LearningRecommendation {
	n := min(len(gaps), MaxLearning)
	out := make([]analysis.LearningRecommendation, 0, n)
	for i, g := range gaps[:n] {
		p := Platforms[i%len(Platforms)]
		out = append(out, analysis.LearningRecommendation{
			Course:   "Complete " + g.Skill + " Course",
			Platform: p.Name,
			URL:      p.SearchURL + url.QueryEscape(strings.ToLower(g.Skill)),
		})
	}
	return out
}

// Projects returns the portfolio project suggestions.
func Projects() []analysis.ProjectSuggestion {
	out := make([]analysis.ProjectSuggestion, len(projects))
	for i, p := range projects {
		p.Skills = slices.Clone(p.Skills)
		out[i] = p
	}
	return out
}

// PredictRoles maps extracted skills to likely job roles.
func PredictRoles(extracted []string) []string {
	has := func(skills ...string) bool {
		for _, s := range skills {
			if slices.Contains(extracted, s) {
				return true
			}
		}
		return false
	}

	var roles []string
	for _, r := range roleRules {
		if r.test(has) {
			roles = append(roles, r.role)
		}
	}
	if len(roles) == 0 {
		return slices.Clone(fallbackRoles)
	}
	return roles
}
