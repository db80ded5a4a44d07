package analysis

import (
	"math"
	"testing"
)

func TestNewBreakdown_ClampsToCeilings(t *testing.T) {
	b := NewBreakdown(55, -3, 15.5, math.NaN(), 10)

	if b.SkillMatchScore != SkillMatchCeiling {
		t.Errorf("skill: expected %v, got %v", SkillMatchCeiling, b.SkillMatchScore)
	}
	if b.KeywordMatchScore != 0 {
		t.Errorf("keyword: expected 0, got %v", b.KeywordMatchScore)
	}
	if b.ExperienceMatchScore != ExperienceMatchCeiling {
		t.Errorf("experience: expected %v, got %v", ExperienceMatchCeiling, b.ExperienceMatchScore)
	}
	if b.EducationMatchScore != 0 {
		t.Errorf("education: expected 0 for NaN, got %v", b.EducationMatchScore)
	}
	if b.FinalATSScore != 65 {
		t.Errorf("final: expected 65, got %d", b.FinalATSScore)
	}
}

func TestNewBreakdown_FinalIsRoundedSum(t *testing.T) {
	b := NewBreakdown(13.333, 8.333, 11.4, 10, 8)
	if b.FinalATSScore != int(math.Round(b.Sum())) {
		t.Errorf("final %d != round(sum %f)", b.FinalATSScore, b.Sum())
	}
	if b.FinalATSScore != 51 {
		t.Errorf("expected 51, got %d", b.FinalATSScore)
	}
}

func TestEducationLevel_Rank(t *testing.T) {
	if !(PhD.Rank() > Masters.Rank() && Masters.Rank() > Bachelors.Rank() && Bachelors.Rank() > HighSchool.Rank()) {
		t.Error("education ranks are not strictly ordered")
	}
	if EducationLevel("unknown").Rank() != HighSchool.Rank() {
		t.Error("unknown level should rank as high school")
	}
}

func TestBackend_Valid(t *testing.T) {
	for _, b := range []Backend{BackendLocal, BackendHosted} {
		if !b.Valid() {
			t.Errorf("%q should be valid", b)
		}
	}
	if Backend("llm").Valid() {
		t.Error("unknown backend should be invalid")
	}
}
