// Package names groups differently written person names that refer to the
// same individual: "Dr. J. de Vries", "Jan de Vries" and "J. de Vries".
package names

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/nedextract/internal/keywords"
)

// Matcher groups person names using a title vocabulary and a list of name
// particles that are never abbreviated
type Matcher struct {
	titles    []string
	particles map[string]bool
}

// NewMatcher creates a matcher for the given titles and particles
func NewMatcher(titles, particles []string) *Matcher {
	p := make(map[string]bool, len(particles))
	for _, w := range particles {
		p[w] = true
	}
	return &Matcher{titles: slices.Clone(titles), particles: p}
}

// NewDutchMatcher creates a matcher with the Dutch titles and particles
func NewDutchMatcher() *Matcher {
	return NewMatcher(keywords.Titles(), keywords.Particles())
}

// FindDuplicatePersons groups names with the Dutch matcher
func FindDuplicatePersons(names []string) [][]string {
	return NewDutchMatcher().FindDuplicatePersons(names)
}

// StripTitles lowercases each name and removes every known title from it.
// Names that have at most one letter left are returned in removed, in their
// original form; the others are returned stripped, in input order.
func (m *Matcher) StripTitles(names []string) (stripped, removed []string) {
	_, stripped, removed = m.stripTitles(names)
	return stripped, removed
}

func (m *Matcher) stripTitles(names []string) (kept, stripped, removed []string) {
	for _, name := range names {
		s := strings.ToLower(name)
		for _, title := range m.titles {
			s = strings.ReplaceAll(s, title, "")
		}
		if asciiLetters(s) > 1 {
			kept = append(kept, name)
			stripped = append(stripped, s)
		} else {
			removed = append(removed, name)
		}
	}
	return kept, stripped, removed
}

func asciiLetters(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			n++
		}
	}
	return n
}

// Abbreviate replaces the first tokens of name by their initial. Tokens up to
// index n are abbreviated, except particles and the final token. Every token
// in the result is followed by a space.
func (m *Matcher) Abbreviate(name string, n int) string {
	tokens := strings.Fields(name)
	var b strings.Builder
	for i, tok := range tokens {
		if i < len(tokens)-1 && i <= n && !m.particles[tok] {
			r, _ := utf8.DecodeRuneInString(tok)
			b.WriteRune(r)
		} else {
			b.WriteString(tok)
		}
		b.WriteByte(' ')
	}
	return b.String()
}

// Similarity returns the similarity score of two names together with the
// score they need to reach to be considered the same person.
func (m *Matcher) Similarity(a, b string) (score, threshold int) {
	dotsA, dotsB := strings.Count(a, "."), strings.Count(b, ".")
	switch {
	case len(strings.Fields(b)) == 1:
		return TokenSetRatio(a, b), 100
	case dotsA > 0 && dotsB > 0:
		return TokenSetRatio(a, b), 90
	case dotsA > 0:
		for k := 1; k <= dotsA; k++ {
			score = max(score, TokenSetRatio(a, m.Abbreviate(b, k)))
		}
		return score, 95
	case dotsB > 0:
		for k := 1; k <= dotsB; k++ {
			score = max(score, TokenSetRatio(m.Abbreviate(a, k), b))
		}
		return score, 95
	default:
		return TokenSetRatio(a, b), 90
	}
}

// GroupCandidates builds one candidate group per name. Names of a single
// token only form their own group, so that two different people sharing a
// first name are never merged through it. Groups contained in a larger or
// earlier group are dropped.
func (m *Matcher) GroupCandidates(names []string) [][]string {
	kept, stripped, _ := m.stripTitles(names)

	groups := make([][]string, 0, len(kept))
	for i := range kept {
		group := []string{kept[i]}
		if len(strings.Fields(stripped[i])) > 1 {
			for j := range kept {
				if i == j {
					continue
				}
				if score, threshold := m.Similarity(stripped[i], stripped[j]); score >= threshold {
					group = append(group, kept[j])
				}
			}
			group = canonicalOrder(group)
		}
		groups = append(groups, group)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return len(groups[a]) > len(groups[b])
	})
	return dropSubsumed(groups)
}

// FindDuplicatePersons partitions names into identity groups.
//
// When the longest spelling of a group also shows up in another group it
// cannot be attributed safely; it is dropped from the input and grouping is
// redone. Each round removes at least one name. Names still shared between
// groups afterwards stay only in the first, largest group.
func (m *Matcher) FindDuplicatePersons(names []string) [][]string {
	pool := unique(names)
	groups := m.GroupCandidates(pool)

	for rounds := len(pool); rounds > 0; rounds-- {
		ambiguous := ambiguousLongest(groups)
		if len(ambiguous) == 0 {
			break
		}
		pool = slices.DeleteFunc(pool, func(n string) bool { return ambiguous[n] })
		groups = m.GroupCandidates(pool)
	}

	return dropSubsumed(resolveOverlap(groups))
}

// canonicalOrder sorts a group longest first and then moves the first name
// without initials to the front, if it has a space and is longer than half
// the longest name.
func canonicalOrder(group []string) []string {
	out := slices.Clone(group)
	sort.SliceStable(out, func(a, b int) bool {
		return utf8.RuneCountInString(out[a]) > utf8.RuneCountInString(out[b])
	})
	maxLen := utf8.RuneCountInString(out[0])

	for i, name := range out {
		if strings.Contains(name, ".") {
			continue
		}
		if i > 0 && strings.Contains(name, " ") && 2*utf8.RuneCountInString(name) > maxLen {
			ideal := out[i]
			copy(out[1:i+1], out[:i])
			out[0] = ideal
		}
		break
	}
	return out
}

func ambiguousLongest(groups [][]string) map[string]bool {
	count := make(map[string]int)
	for _, g := range groups {
		for _, n := range g {
			count[n]++
		}
	}
	ambiguous := make(map[string]bool)
	for _, g := range groups {
		if l := longest(g); count[l] > 1 {
			ambiguous[l] = true
		}
	}
	return ambiguous
}

func longest(group []string) string {
	best := ""
	for _, n := range group {
		if utf8.RuneCountInString(n) > utf8.RuneCountInString(best) {
			best = n
		}
	}
	return best
}

// resolveOverlap keeps every name only in the first group holding it
func resolveOverlap(groups [][]string) [][]string {
	seen := make(map[string]bool)
	out := make([][]string, 0, len(groups))
	for _, g := range groups {
		var rest []string
		for _, n := range g {
			if !seen[n] {
				rest = append(rest, n)
			}
		}
		for _, n := range rest {
			seen[n] = true
		}
		if len(rest) > 0 {
			out = append(out, rest)
		}
	}
	return out
}

// dropSubsumed removes every group whose members all belong to one earlier group
func dropSubsumed(groups [][]string) [][]string {
	out := make([][]string, 0, len(groups))
	for _, g := range groups {
		subsumed := false
		for _, earlier := range out {
			if containsAll(earlier, g) {
				subsumed = true
				break
			}
		}
		if !subsumed {
			out = append(out, g)
		}
	}
	return out
}

func containsAll(set, items []string) bool {
	for _, it := range items {
		if !slices.Contains(set, it) {
			return false
		}
	}
	return true
}

func unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
