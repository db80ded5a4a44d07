// Package extract derives structured signals from resume and job-description text.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/resumatch/internal/domain/analysis"
	"github.com/kailas-cloud/resumatch/internal/domain/skill"
)

// DefaultExperienceYears is reported when the text mentions no year count.
const DefaultExperienceYears = 2

// minParsableLength is the character count a text must exceed to be considered parsable.
const minParsableLength = 50

var yearsPattern = regexp.MustCompile(`(?i)(\d+)\+?\s*(years?|yrs?)`)

var (
	phdMarkers       = []string{"phd", "ph.d", "doctorate"}
	mastersMarkers   = []string{"master", "msc", "mba", "m.tech", "m.e"}
	bachelorsMarkers = []string{"bachelor", "bsc", "b.tech", "b.e", "bca", "bba"}

	experienceHeadings = []string{"experience", "work history"}
	educationHeadings  = []string{"education", "academic"}
	skillsHeadings     = []string{"skills", "technologies"}
	bulletMarkers      = []string{"•", "- ", "* "}
)

// Formatting holds the ATS formatting checks for one document.
type Formatting struct {
	Parsable          bool
	ExperienceHeading bool
	EducationHeading  bool
	SkillsHeading     bool
	Bullets           bool
}

// FormattingChecks is the number of checks in Formatting.
const FormattingChecks = 5

// Passed counts the satisfied checks.
func (f Formatting) Passed() int {
	n := 0
	for _, ok := range []bool{f.Parsable, f.ExperienceHeading, f.EducationHeading, f.SkillsHeading, f.Bullets} {
		if ok {
			n++
		}
	}
	return n
}

// Features are the signals extracted from one document. Skills and Titles
// are lowercase lexicon tokens in lexicon order.
type Features struct {
	Normalized      string
	Skills          []string
	ExperienceYears int
	Education       analysis.EducationLevel
	Titles          []string
	Formatting      Formatting
}

// Extractor reads features using a lexicon.
type Extractor struct {
	lexicon *skill.Lexicon
}

// New creates an extractor over lex.
func New(lex *skill.Lexicon) *Extractor {
	return &Extractor{lexicon: lex}
}

// Extract derives all features from text.
func (e *Extractor) Extract(text string) Features {
	lower := strings.ToLower(text)
	return Features{
		Normalized:      lower,
		Skills:          skill.Present(lower, e.lexicon.Skills()),
		ExperienceYears: ExperienceYears(lower),
		Education:       Education(lower),
		Titles:          skill.Present(lower, e.lexicon.Titles()),
		Formatting:      formatting(text, lower),
	}
}

// ExperienceYears returns the largest "<n> years" figure in text, or
// DefaultExperienceYears when none is found or none fits an int.
func ExperienceYears(text string) int {
	matches := yearsPattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return DefaultExperienceYears
	}
	best := -1
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue // overflow
		}
		best = max(best, n)
	}
	if best < 0 {
		return DefaultExperienceYears
	}
	return best
}

// Education returns the highest tier mentioned in lowercased text.
func Education(text string) analysis.EducationLevel {
	switch {
	case containsAny(text, phdMarkers):
		return analysis.PhD
	case containsAny(text, mastersMarkers):
		return analysis.Masters
	case containsAny(text, bachelorsMarkers):
		return analysis.Bachelors
	default:
		return analysis.HighSchool
	}
}

func formatting(original, lower string) Formatting {
	return Formatting{
		Parsable:          utf8.RuneCountInString(original) > minParsableLength,
		ExperienceHeading: containsAny(lower, experienceHeadings),
		EducationHeading:  containsAny(lower, educationHeadings),
		SkillsHeading:     containsAny(lower, skillsHeadings),
		Bullets:           containsAny(lower, bulletMarkers),
	}
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
