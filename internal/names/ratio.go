package names

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/xrash/smetrics"
	"golang.org/x/text/unicode/norm"
)

// TokenSetRatio scores how similar two strings are, ignoring token order and
// repeated tokens. The score is 0 to 100.
//
// Both strings are folded to lowercase ASCII alphanumerics. The shared tokens
// are then compared against each side extended with its own tokens, and the
// best of the three pairwise ratios is returned.
func TokenSetRatio(a, b string) int {
	pa, pb := fold(a), fold(b)
	if pa == "" || pb == "" {
		return 0
	}

	ta, tb := tokenSet(pa), tokenSet(pb)
	var sect, onlyA, onlyB []string
	for t := range ta {
		if tb[t] {
			sect = append(sect, t)
		} else {
			onlyA = append(onlyA, t)
		}
	}
	for t := range tb {
		if !ta[t] {
			onlyB = append(onlyB, t)
		}
	}
	sort.Strings(sect)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	shared := strings.Join(sect, " ")
	withA := strings.TrimSpace(shared + " " + strings.Join(onlyA, " "))
	withB := strings.TrimSpace(shared + " " + strings.Join(onlyB, " "))

	return max(ratio(shared, withA), ratio(shared, withB), ratio(withA, withB))
}

// ratio is the normalized indel similarity of two strings, where a
// substitution costs as much as a deletion plus an insertion
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	lensum := len(a) + len(b)
	dist := smetrics.WagnerFischer(a, b, 1, 1, 2)
	return int(math.RoundToEven(100 * float64(lensum-dist) / float64(lensum)))
}

// fold strips diacritics, drops what is left outside ASCII, turns every
// non-alphanumeric into a space and lowercases
func fold(s string) string {
	decomposed := norm.NFD.String(s)
	folded := strings.Map(func(r rune) rune {
		switch {
		case unicode.Is(unicode.Mn, r):
			return -1
		case r > unicode.MaxASCII:
			return -1
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			return unicode.ToLower(r)
		default:
			return ' '
		}
	}, decomposed)
	return strings.TrimSpace(folded)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range strings.Fields(s) {
		set[t] = true
	}
	return set
}
