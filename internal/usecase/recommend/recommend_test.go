package recommend

import (
	"slices"
	"testing"

	"github.com/kailas-cloud/resumatch/internal/domain/analysis"
)

func TestGaps_WithJob(t *testing.T) {
	missing := []string{"aws", "node.js", "docker", "sql", "git", "redux"}

	gaps := Gaps(missing, nil, true)

	if len(gaps) != MaxGaps {
		t.Fatalf("expected %d gaps, got %d", MaxGaps, len(gaps))
	}
	if gaps[0].Skill != "Aws" || gaps[1].Skill != "Node.js" {
		t.Errorf("unexpected capitalization %+v", gaps[:2])
	}
	for _, g := range gaps {
		if g.Importance != analysis.ImportanceHigh {
			t.Errorf("expected high importance, got %s", g.Importance)
		}
	}
}

func TestGaps_WithoutJob(t *testing.T) {
	gaps := Gaps(nil, []string{"react", "docker"}, false)

	var names []string
	for _, g := range gaps {
		names = append(names, g.Skill)
		if g.Importance != analysis.ImportanceMedium {
			t.Errorf("expected medium importance, got %s", g.Importance)
		}
	}
	if !slices.Equal(names, []string{"Typescript", "Kubernetes", "Aws"}) {
		t.Errorf("unexpected gaps %v", names)
	}
}

func TestGaps_NoneMissing(t *testing.T) {
	if gaps := Gaps(nil, nil, true); gaps == nil || len(gaps) != 0 {
		t.Errorf("expected empty non-nil gaps, got %#v", gaps)
	}
}

func TestLearning_RoundRobinAndEscaping(t *testing.T) {
	gaps := []analysis.SkillGap{
		{Skill: "Rest api"},
		{Skill: "C#"},
	}

	recs := Learning(gaps)

	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}
	if recs[0].Platform != "Udemy" || recs[1].Platform != "Coursera" {
		t.Errorf("unexpected platforms %s, %s", recs[0].Platform, recs[1].Platform)
	}
	if recs[0].Course != "Complete Rest api Course" {
		t.Errorf("unexpected course %q", recs[0].Course)
	}
	if recs[0].URL != "https://www.udemy.com/courses/search/?q=rest+api" {
		t.Errorf("unexpected url %q", recs[0].URL)
	}
	if recs[1].URL != "https://www.coursera.org/search?query=c%23" {
		t.Errorf("unexpected url %q", recs[1].URL)
	}
}

func TestLearning_Capped(t *testing.T) {
	gaps := make([]analysis.SkillGap, 12)
	for i := range gaps {
		gaps[i] = analysis.SkillGap{Skill: "Go"}
	}
	recs := Learning(gaps)
	if len(recs) != MaxLearning {
		t.Errorf("expected %d, got %d", MaxLearning, len(recs))
	}
	if recs[7].Platform != Platforms[7].Name {
		t.Errorf("expected platform %s, got %s", Platforms[7].Name, recs[7].Platform)
	}
}

func TestProjects_ReturnsCopies(t *testing.T) {
	p := Projects()
	if len(p) != 3 {
		t.Fatalf("expected 3 projects, got %d", len(p))
	}
	p[0].Skills[0] = "changed"
	if Projects()[0].Skills[0] != "React" {
		t.Error("callers must not be able to modify the project list")
	}
}

func TestPredictRoles(t *testing.T) {
	tests := []struct {
		name   string
		skills []string
		want   []string
	}{
		{"full stack", []string{"react", "node.js", "mongodb"}, []string{"Frontend Developer", "Backend Developer", "Full Stack Developer"}},
		{"devops", []string{"kubernetes"}, []string{"DevOps Engineer"}},
		{"none", []string{"figma"}, []string{"Software Engineer", "Developer"}},
		{"react without data store", []string{"react"}, []string{"Frontend Developer"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PredictRoles(tc.skills); !slices.Equal(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
