package orgs

import (
	"context"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/nedextract/internal/model"
	"github.com/ppiankov/nedextract/internal/textutil"
)

// StandaloneChecker tags a single candidate without any surrounding text and
// reports whether it comes back as exactly one organization
type StandaloneChecker interface {
	IsStandaloneOrg(ctx context.Context, name string) (bool, error)
}

// StandaloneFunc adapts a function to StandaloneChecker
type StandaloneFunc func(ctx context.Context, name string) (bool, error)

func (f StandaloneFunc) IsStandaloneOrg(ctx context.Context, name string) (bool, error) {
	return f(ctx, name)
}

// Variants holds one document tagged after three different preprocessing
// choices: blank lines joined with commas (C), with periods (P), and line
// ends also replaced by periods (PP)
type Variants struct {
	C  *model.Document
	P  *model.Document
	PP *model.Document
}

// Judge decides which organization candidates are real organizations
type Judge struct {
	keywords   *KeywordChecker
	stripper   *Stripper
	standalone StandaloneChecker
	logger     logrus.FieldLogger
}

// NewJudge creates a judge. The standalone checker may be nil, in which case
// no candidate passes the standalone check.
func NewJudge(standalone StandaloneChecker, logger logrus.FieldLogger) *Judge {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Judge{
		keywords:   NewKeywordChecker(),
		stripper:   NewStripper(),
		standalone: standalone,
		logger:     logger,
	}
}

// KeywordCheck returns the keyword verdict for org, starting from initial
func (j *Judge) KeywordCheck(org string, initial bool) bool {
	return j.keywords.Check(org, initial)
}

func (j *Judge) isStandalone(ctx context.Context, org string) bool {
	if j.standalone == nil {
		return false
	}
	ok, err := j.standalone.IsStandaloneOrg(ctx, org)
	if err != nil {
		j.logger.WithField("action", "standalone_check").
			WithField("org", org).
			WithError(err).
			Warn("standalone check failed, treating candidate as untagged")
		return false
	}
	return ok
}

// Decide runs the decision tree for one candidate. The standalone check is
// only run by the branches that need it.
func (j *Judge) Decide(ctx context.Context, c model.OrgCandidate) model.Decision {
	decision := model.DecisionFalse

	switch {
	case c.MentionsP >= 5 || c.MentionsC >= 5:
		if c.PercentP >= 50 && c.PercentC >= 50 {
			decision = model.DecisionTrue
		}
	case c.MentionsP >= 3 || c.MentionsC >= 3:
		if c.PercentP >= 66 && c.PercentC >= 66 {
			decision = model.DecisionTrue
		}
	case c.MentionsP == 2:
		if c.PercentP == 100 {
			decision = model.DecisionTrue
		}
	case c.MentionsP == 1 && c.MentionsC == 1:
		kw := j.KeywordCheck(c.Name, false)
		supported := func() bool {
			return c.InVariantPP || kw || j.isStandalone(ctx, c.Name)
		}
		switch {
		case c.PercentP == 100 && c.PercentC == 100 && supported():
			decision = model.DecisionMaybe
		case c.PercentP == 100 && c.InVariantC && supported():
			decision = model.DecisionMaybe
		case c.InVariantPP && kw:
			decision = model.DecisionMaybe
		default:
			decision = model.DecisionNo
		}
	case c.InVariantPP && j.isStandalone(ctx, c.Name):
		if c.PercentP == model.NotMentioned || c.PercentC == model.NotMentioned {
			decision = model.DecisionNo
		} else {
			decision = model.DecisionMaybe
		}
	}

	if decision != model.DecisionMaybe && decision != model.DecisionNo && c.MentionsP >= 1 {
		if j.KeywordCheck(c.Name, decision == model.DecisionTrue) {
			decision = model.DecisionTrue
		} else {
			decision = model.DecisionFalse
		}
	}
	return decision
}

// PartOfOther reports whether one of the confirmed orgs is contained in org:
// a longer name that is mentioned often on its own, unless org has keyword
// evidence the shorter name lacks
func (j *Judge) PartOfOther(orgs []string, org, text string) bool {
	for _, o := range orgs {
		if o == org || !strings.Contains(org, o) || utf8.RuneCountInString(o) <= 5 {
			continue
		}
		if textutil.CountWord(text, o) <= 5 {
			continue
		}
		if !j.KeywordCheck(o, false) && j.KeywordCheck(org, false) {
			continue
		}
		return true
	}
	return false
}

// CheckSingleOrgs reports whether a candidate that skipped the decision tree
// is accepted: it must survive the keyword check and not be part of an
// organization that is already confirmed
func (j *Judge) CheckSingleOrgs(org string, confirmed []string, text string) bool {
	return j.KeywordCheck(org, true) && !j.PartOfOther(confirmed, org, text)
}

// StripFunctionOfEntity removes the person function from org
func (j *Judge) StripFunctionOfEntity(org string) string {
	return j.stripper.Strip(org)
}

// CountMentions counts the whole-word mentions of org in text. Hyphens in
// the text are ignored unless org itself has one.
func CountMentions(text, org string) int {
	if !strings.Contains(org, "-") {
		text = strings.ReplaceAll(text, "-", "")
	}
	return textutil.CountWord(text, org)
}

// PercentageConsideredOrg returns the share of the mentions of org in text
// that were tagged as organization, and the number of mentions. A candidate
// that was tagged but is never found in text gets NotMentioned.
func PercentageConsideredOrg(text, org string, tagged map[string]int) (float64, int) {
	n := CountMentions(text, org)
	count, ok := tagged[org]
	switch {
	case ok && n >= 1:
		return float64(count) / float64(n) * 100, n
	case ok:
		return model.NotMentioned, n
	default:
		return 0, n
	}
}

// TaggedOrgs counts the organization mentions of doc, trailing periods removed
func TaggedOrgs(doc *model.Document) map[string]int {
	counts := make(map[string]int)
	for _, o := range doc.Organizations() {
		counts[strings.TrimRight(o, ".")]++
	}
	return counts
}

// Candidate gathers the evidence for org from the three variants
func Candidate(org string, v Variants, tagC, tagP, tagPP map[string]int) model.OrgCandidate {
	c := model.OrgCandidate{Name: org}
	c.PercentC, c.MentionsC = PercentageConsideredOrg(v.C.Text, org, tagC)
	c.PercentP, c.MentionsP = PercentageConsideredOrg(v.P.Text, org, tagP)
	_, c.InVariantC = tagC[org]
	_, c.InVariantPP = tagPP[org]
	return c
}

// Collect returns the sorted unique organizations confirmed in v.
//
// Candidates carrying a person function are stripped and, when something of
// at least three characters is left, only get the single-organization check.
// The others go through the decision tree; "maybe" verdicts get the
// single-organization check as well.
func (j *Judge) Collect(ctx context.Context, v Variants) []string {
	tagC, tagP, tagPP := TaggedOrgs(v.C), TaggedOrgs(v.P), TaggedOrgs(v.PP)

	var confirmed, single []string
	for _, org := range union(tagC, tagP, tagPP) {
		stripped := org
		if j.stripper.Applies(org) {
			stripped = j.stripper.Strip(org)
		}
		if stripped != org && utf8.RuneCountInString(stripped) >= 3 {
			single = append(single, stripped)
			continue
		}

		c := Candidate(org, v, tagC, tagP, tagPP)
		d := j.Decide(ctx, c)
		j.logger.WithField("action", "decide_org").
			WithField("org", org).
			WithField("decision", d.String()).
			Debug("organization candidate judged")

		switch d {
		case model.DecisionTrue:
			confirmed = append(confirmed, org)
		case model.DecisionMaybe:
			single = append(single, org)
		}
	}

	for _, org := range single {
		if j.CheckSingleOrgs(org, confirmed, v.C.Text) {
			confirmed = append(confirmed, org)
		}
	}
	return sortedUnique(confirmed)
}

func union(sets ...map[string]int) []string {
	seen := make(map[string]bool)
	for _, s := range sets {
		for k := range s {
			seen[k] = true
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedUnique(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
