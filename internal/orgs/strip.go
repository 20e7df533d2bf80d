package orgs

import (
	"regexp"
	"strings"

	"github.com/ppiankov/nedextract/internal/keywords"
)

// Stripper removes the function of a person from an organization candidate,
// as in "Lid van de Raad van Advies bij Bedrijfsnaam"
type Stripper struct {
	positions  []*regexp.Regexp
	articles   []*regexp.Regexp
	council    []*regexp.Regexp
	committees []*regexp.Regexp
	functions  []*regexp.Regexp
	triggers   []string
}

func compileAll(words []string, format string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		out[i] = regexp.MustCompile(strings.ReplaceAll(format, "%s", w))
	}
	return out
}

// NewStripper compiles the Dutch function and committee vocabulary
func NewStripper() *Stripper {
	return &Stripper{
		positions:  compileAll(keywords.StripPositions(), `(?i)^%s\b`),
		articles:   compileAll(keywords.StripArticles(), `^%s`),
		council:    compileAll(keywords.StripCouncil(), `(?i)^%s\b`),
		committees: compileAll(keywords.StripCommittees(), `(?i)^%s\b`),
		functions:  compileAll(keywords.StripFunctions(), `(?i)%s$`),
		triggers:   keywords.SearchStrip(),
	}
}

// Applies reports whether org holds a function or committee word and is
// therefore worth stripping
func (s *Stripper) Applies(org string) bool {
	lower := strings.ToLower(org)
	for _, w := range s.triggers {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// Strip removes leading person functions, articles, council and committee
// words, and a trailing "hoofdfunctie" or "nevenfunctie". Every pattern is
// applied once, in a fixed order.
func (s *Stripper) Strip(org string) string {
	leading := func(org string, patterns []*regexp.Regexp) string {
		for _, re := range patterns {
			org = strings.TrimLeft(re.ReplaceAllString(org, ""), " \t\n\r\v\f")
		}
		return org
	}

	org = leading(org, s.positions)
	org = leading(org, s.articles)
	org = leading(org, s.positions)
	org = leading(org, s.articles)
	org = leading(org, s.council)
	org = leading(org, s.articles)
	org = leading(org, s.committees)
	org = leading(org, s.articles)
	for _, re := range s.functions {
		org = strings.TrimRight(re.ReplaceAllString(org, ""), " \t\n\r\v\f")
	}
	return org
}

// StripFunctionOfEntity strips org with the default vocabulary
func StripFunctionOfEntity(org string) string {
	return defaultStripper.Strip(org)
}

var defaultStripper = NewStripper()
