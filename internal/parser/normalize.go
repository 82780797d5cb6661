package parser

import (
	"regexp"
	"strings"
)

var multiSpaceRE = regexp.MustCompile(`\s+`)

// Normalise lowercases raw, keeps letters and digits, and folds separators
// into single spaces. "Canned_Food" and "canned food" normalise alike.
func Normalise(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return ""
	}
	var b strings.Builder
	lastSpace := false
	for _, r := range raw {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '-' || r == '_' || r == '/' || r == '\'' {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(multiSpaceRE.ReplaceAllString(b.String(), " "))
}

func tokenise(normalised string) []string {
	if strings.TrimSpace(normalised) == "" {
		return nil
	}
	return strings.Fields(normalised)
}

func isPronoun(token string) bool {
	switch token {
	case "it", "that", "them", "this", "those":
		return true
	default:
		return false
	}
}

// stripFillers drops leading articles and prepositions from an argument
// phrase: "to the ruins" becomes "ruins".
func stripFillers(tokens []string) []string {
	for len(tokens) > 0 {
		switch tokens[0] {
		case "a", "an", "the", "some", "to", "into", "my", "at", "on":
			tokens = tokens[1:]
		default:
			return tokens
		}
	}
	return tokens
}
