package analysis

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Capitalize upper-cases the first letter of a lexicon token ("node.js" → "Node.js").
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// CapitalizeAll applies Capitalize to every token. A nil input yields an empty slice.
func CapitalizeAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = Capitalize(t)
	}
	return out
}

// TitleCase capitalizes each space-separated word ("full stack" → "Full Stack").
func TitleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		words[i] = Capitalize(w)
	}
	return strings.Join(words, " ")
}
