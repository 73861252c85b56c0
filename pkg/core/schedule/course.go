package schedule

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
)

// CourseInfo is one canonical catalog entry. Its abbreviation is the
// authoritative identifier that noisy event tags are matched against.
type CourseInfo struct {
	Abbreviation string `json:"abbreviation"`
}

// NewCourseInfo creates a catalog entry, trimming surrounding whitespace
func NewCourseInfo(abbreviation string) CourseInfo {
	return CourseInfo{Abbreviation: strings.TrimSpace(abbreviation)}
}

// MatchScore scores how well a free-text tag denotes this course, in [0, 1].
//
// Both sides are case-folded and stripped of all whitespace, then scored as
// a normalized Levenshtein ratio: 1 - distance/max(len). Tags identical to
// the abbreviation modulo case and whitespace score exactly 1.0; fully
// disjoint strings score near 0. A degenerate (empty) abbreviation never
// matches anything.
//
// The score is pure and deterministic, so a fixed threshold comparison is
// stable across calls.
func (c CourseInfo) MatchScore(tag string) float64 {
	target := normalizeTag(c.Abbreviation)
	if target == "" {
		return 0
	}

	candidate := normalizeTag(tag)
	if candidate == "" {
		return 0
	}

	if candidate == target {
		return 1.0
	}

	distance := levenshtein.ComputeDistance(candidate, target)
	longest := max(len([]rune(candidate)), len([]rune(target)))

	return 1.0 - float64(distance)/float64(longest)
}

// normalizeTag lowercases and removes all whitespace so that "CS 101",
// "cs101" and "Cs 101 " compare equal
func normalizeTag(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
