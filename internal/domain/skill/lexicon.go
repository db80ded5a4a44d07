// Package skill holds the canonical skill vocabulary and the role → skill associations.
package skill

import "strings"

// RoleProfile lists the skills a role implies, in priority order.
type RoleProfile struct {
	Role   string
	Skills []string
}

// Overrides extends a lexicon. Roles that already exist get their profile replaced.
type Overrides struct {
	Skills         []string
	Roles          []RoleProfile
	Titles         []string
	Certifications []string
}

// Lexicon is the static knowledge base consulted by extraction and matching.
// All tokens are lowercase; every list is an ordered set.
type Lexicon struct {
	skills         []string
	roles          []RoleProfile
	titles         []string
	certifications []string
}

// New builds a lexicon, lowercasing tokens and dropping duplicates while keeping first-seen order.
func New(skills []string, roles []RoleProfile, titles, certifications []string) *Lexicon {
	l := &Lexicon{
		skills:         orderedSet(skills),
		titles:         orderedSet(titles),
		certifications: orderedSet(certifications),
	}
	for _, r := range roles {
		l.putRole(r)
	}
	return l
}

// Skills returns the skill vocabulary.
func (l *Lexicon) Skills() []string { return l.skills }

// Roles returns the role profiles in declaration order.
func (l *Lexicon) Roles() []RoleProfile { return l.roles }

// Titles returns the job titles recognized in free text.
func (l *Lexicon) Titles() []string { return l.titles }

// Certifications returns the certification names recognized in free text.
func (l *Lexicon) Certifications() []string { return l.certifications }

// Extend returns a new lexicon with o appended. The receiver is not modified.
func (l *Lexicon) Extend(o Overrides) *Lexicon {
	ext := New(
		append(append([]string{}, l.skills...), o.Skills...),
		l.roles,
		append(append([]string{}, l.titles...), o.Titles...),
		append(append([]string{}, l.certifications...), o.Certifications...),
	)
	for _, r := range o.Roles {
		ext.putRole(r)
	}
	return ext
}

// Present returns the tokens of vocab that occur as substrings of text, in vocab order.
// text must already be lowercased.
func Present(text string, vocab []string) []string {
	var found []string
	for _, tok := range vocab {
		if strings.Contains(text, tok) {
			found = append(found, tok)
		}
	}
	return found
}

func (l *Lexicon) putRole(r RoleProfile) {
	p := RoleProfile{Role: strings.ToLower(strings.TrimSpace(r.Role)), Skills: orderedSet(r.Skills)}
	if p.Role == "" {
		return
	}
	for i := range l.roles {
		if l.roles[i].Role == p.Role {
			l.roles[i] = p
			return
		}
	}
	l.roles = append(l.roles, p)
}

func orderedSet(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
