// Package orgs decides which organization candidates found by NER are real
// organizations, comparing how consistently they are tagged across
// differently preprocessed versions of a document.
package orgs

import (
	"regexp"
	"strings"

	"github.com/ppiankov/nedextract/internal/keywords"
)

type keyPattern struct {
	re      *regexp.Regexp
	literal string
}

// KeywordChecker judges candidates on the words they are made of
type KeywordChecker struct {
	trueKeys   []keyPattern
	capKeys    []keyPattern
	falseKeys  []*regexp.Regexp
	falseTerms map[string]bool
}

// NewKeywordChecker compiles the Dutch organization keyword tables
func NewKeywordChecker() *KeywordChecker {
	k := &KeywordChecker{falseTerms: make(map[string]bool)}
	for _, kw := range keywords.OrgTrueKeys() {
		k.trueKeys = append(k.trueKeys, keyPattern{re: regexp.MustCompile(kw.Pattern), literal: kw.Literal})
	}
	for _, kw := range keywords.OrgTrueCapKeys() {
		k.capKeys = append(k.capKeys, keyPattern{re: regexp.MustCompile(`\b` + kw.Pattern + `\b`), literal: kw.Literal})
	}
	for _, p := range keywords.OrgFalseKeys() {
		k.falseKeys = append(k.falseKeys, regexp.MustCompile(p))
	}
	for _, t := range keywords.OrgFalseTerms() {
		k.falseTerms[t] = true
	}
	return k
}

// Check returns the verdict for org, starting from initial.
//
// A legal form or institution keyword makes the verdict true, unless org is
// just that keyword. A true verdict is then overturned by governance or
// finance vocabulary, or when org as a whole is a known non-organization.
func (k *KeywordChecker) Check(org string, initial bool) bool {
	final := initial
	lower := strings.ToLower(org)

	for _, kw := range k.trueKeys {
		if kw.re.MatchString(lower) {
			final = !strings.EqualFold(org, kw.literal)
		}
	}
	for _, kw := range k.capKeys {
		if kw.re.MatchString(org) {
			final = !strings.EqualFold(org, kw.literal)
		}
	}

	if !final {
		return false
	}
	for _, re := range k.falseKeys {
		if re.MatchString(lower) {
			return false
		}
	}
	return !k.falseTerms[lower]
}
