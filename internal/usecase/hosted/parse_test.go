package hosted

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/resumatch/internal/domain"
	domana "github.com/kailas-cloud/resumatch/internal/domain/analysis"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct{ in, want string }{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range tests {
		if got := CleanJSON(tc.in); got != tc.want {
			t.Errorf("CleanJSON(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseResult_NormalizesAliases(t *testing.T) {
	out := "```json\n" + `{
		"extracted_skills": ["Go", "SQL"],
		"experience_years": 4,
		"education_level": "Masters",
		"skill_gaps": [{"skill_name": "Kubernetes", "importance": "high"}, {"skill": "AWS", "importance": "medium"}],
		"learning_recommendations": [{"course_name": "K8s 101", "platform": "Udemy", "url": "https://example.com"}],
		"project_suggestions": [{"title": "CLI", "description": "Build one"}],
		"ats_score": 81,
		"job_match_score": 77
	}` + "\n```"

	res, err := ParseResult(out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.SkillGaps[0].Skill != "Kubernetes" || res.SkillGaps[1].Skill != "AWS" {
		t.Errorf("skill_name fallback failed: %+v", res.SkillGaps)
	}
	if res.LearningRecommendations[0].Course != "K8s 101" {
		t.Errorf("course_name fallback failed: %+v", res.LearningRecommendations)
	}
	if res.EducationLevel != domana.Masters {
		t.Errorf("expected masters, got %s", res.EducationLevel)
	}
	if res.MatchScore != 77 {
		t.Errorf("expected model match score 77, got %d", res.MatchScore)
	}
	if res.ATSScore != 81 || res.ExperienceYears != 4 {
		t.Errorf("unexpected scores %+v", res)
	}
	for name, list := range map[string][]string{
		"matching":  res.MatchingSkills,
		"missing":   res.MissingSkills,
		"extra":     res.ExtraSkills,
		"titles":    res.JobTitles,
		"predicted": res.PredictedRoles,
	} {
		if list == nil {
			t.Errorf("%s must be an empty list, got nil", name)
		}
	}
	if res.ProjectSuggestions[0].Skills == nil {
		t.Error("project skills must be an empty list")
	}
}

func TestParseResult_HeuristicMatchScore(t *testing.T) {
	tests := []struct {
		name string
		json string
		want int
	}{
		// 60*0.4 + 3*2 + 5*3 = 45
		{"estimate", `{"ats_score": 60, "extracted_skills": ["a","b","c"], "experience_years": 5}`, 45},
		// 90*0.4 + 20*2 + 10*3 = 106 → 100
		{"clamped", `{"ats_score": 90, "extracted_skills": [` + strings.Repeat(`"x",`, 19) + `"x"], "experience_years": 10}`, 100},
		{"model score clamped", `{"job_match_score": 140}`, 100},
		{"negative", `{"job_match_score": -3}`, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := ParseResult(tc.json)
			if err != nil {
				t.Fatal(err)
			}
			if res.MatchScore != tc.want {
				t.Errorf("expected %d, got %d", tc.want, res.MatchScore)
			}
		})
	}
}

func TestParseResult_Malformed(t *testing.T) {
	for _, in := range []string{"", "I could not analyze this resume.", "```json\n{\"ats_score\": \"high\"}\n```"} {
		if _, err := ParseResult(in); !errors.Is(err, domain.ErrMalformedResponse) {
			t.Errorf("ParseResult(%q): expected ErrMalformedResponse, got %v", in, err)
		}
	}
}

func TestParseResult_UnknownEducation(t *testing.T) {
	res, err := ParseResult(`{"education_level": "bootcamp"}`)
	if err != nil {
		t.Fatal(err)
	}
	if res.EducationLevel != domana.HighSchool {
		t.Errorf("expected high_school, got %s", res.EducationLevel)
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("resume body", "")
	if !strings.Contains(p.User, "Resume:\nresume body") {
		t.Errorf("resume missing from prompt: %q", p.User)
	}
	if !strings.HasSuffix(p.User, noJobDescription) {
		t.Errorf("expected placeholder job description, got %q", p.User)
	}
	if !strings.Contains(p.System, "job_match_score") {
		t.Error("system prompt must name the output keys")
	}

	p = BuildPrompt("r", "Go developer")
	if !strings.HasSuffix(p.User, "Job Description:\nGo developer") {
		t.Errorf("unexpected prompt %q", p.User)
	}
}
