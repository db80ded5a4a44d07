package extract

import (
	"slices"
	"strings"
	"testing"

	"github.com/kailas-cloud/resumatch/internal/domain/analysis"
	"github.com/kailas-cloud/resumatch/internal/domain/skill"
)

const scenarioResume = "5 years experience with React, Node.js, and MongoDB. Bachelor's degree in Computer Science."

func TestExtract_Scenario(t *testing.T) {
	f := New(skill.Default()).Extract(scenarioResume)

	for _, want := range []string{"react", "node.js", "mongodb"} {
		if !slices.Contains(f.Skills, want) {
			t.Errorf("expected skill %q in %v", want, f.Skills)
		}
	}
	if f.ExperienceYears != 5 {
		t.Errorf("expected 5 years, got %d", f.ExperienceYears)
	}
	if f.Education != analysis.Bachelors {
		t.Errorf("expected bachelors, got %s", f.Education)
	}
}

func TestExtract_SkillsFollowLexiconOrderWithoutWordBoundaries(t *testing.T) {
	f := New(skill.Default()).Extract("JavaScript and Java")

	// "java" is found inside "javascript"; order follows the lexicon, not the text
	ji := slices.Index(f.Skills, "javascript")
	jv := slices.Index(f.Skills, "java")
	if ji < 0 || jv < 0 {
		t.Fatalf("expected javascript and java, got %v", f.Skills)
	}
	if ji > jv {
		t.Errorf("expected lexicon order, got %v", f.Skills)
	}
}

func TestExperienceYears(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"no numbers here", DefaultExperienceYears},
		{"3 years of go", 3},
		{"10+ yrs backend, 4 year frontend", 10},
		{"7YEARS", 7},
		{"1 yr", 1},
		{"0 years", 0},
		{"99999999999999999999 years", DefaultExperienceYears},
		{"99999999999999999999 years, then 6 years", 6},
	}
	for _, tc := range tests {
		if got := ExperienceYears(tc.text); got != tc.want {
			t.Errorf("ExperienceYears(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestEducation(t *testing.T) {
	tests := []struct {
		text string
		want analysis.EducationLevel
	}{
		{"bachelor of science, phd in physics", analysis.PhD},
		{"ph.d candidate", analysis.PhD},
		{"mba", analysis.Masters},
		{"b.tech in cs", analysis.Bachelors},
		{"high school diploma", analysis.HighSchool},
	}
	for _, tc := range tests {
		if got := Education(tc.text); got != tc.want {
			t.Errorf("Education(%q) = %s, want %s", tc.text, got, tc.want)
		}
	}
}

func TestExtract_Titles(t *testing.T) {
	f := New(skill.Default()).Extract("Senior Backend Developer and former Data Analyst")

	if !slices.Contains(f.Titles, "backend developer") || !slices.Contains(f.Titles, "data analyst") {
		t.Errorf("unexpected titles %v", f.Titles)
	}
	if !slices.Contains(f.Titles, "developer") {
		t.Errorf("substring title \"developer\" should match, got %v", f.Titles)
	}
}

func TestFormatting(t *testing.T) {
	full := "Work History\n• Built APIs\nEducation: BSc\nSkills: Go, SQL\n" + strings.Repeat("x", 40)
	f := New(skill.Default()).Extract(full)
	if got := f.Formatting.Passed(); got != FormattingChecks {
		t.Errorf("expected all %d checks, got %d (%+v)", FormattingChecks, got, f.Formatting)
	}

	short := New(skill.Default()).Extract("Skills: Go")
	if short.Formatting.Parsable {
		t.Error("text of 50 characters or fewer must not be parsable")
	}
	if !short.Formatting.SkillsHeading {
		t.Error("expected skills heading")
	}
}

func TestFormatting_ParsableCountsCharacters(t *testing.T) {
	// 50 multi-byte characters are still only 50 characters
	text := strings.Repeat("é", 50)
	if New(skill.Default()).Extract(text).Formatting.Parsable {
		t.Error("expected 50 characters to fail the parsable check")
	}
}
