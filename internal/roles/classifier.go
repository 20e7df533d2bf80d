// Package roles decides which organizational role a person holds, based on
// the role keywords that appear in and around the sentences naming them.
package roles

import (
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/ppiankov/nedextract/internal/keywords"
	"github.com/ppiankov/nedextract/internal/model"
	"github.com/ppiankov/nedextract/internal/textutil"
)

const placeholder = "search4term"

var (
	viceChair = strings.NewReplacer("vice voorzitter", "vicevoorzitter", "vice-voorzitter", "vicevoorzitter")
	nonWord   = regexp.MustCompile(`[^\p{L}\p{N} ]+`)
	qualifier = strings.NewReplacer("algemeen", "", "adjunct", "", "interim", "")
)

// MainJob is the outcome of main role selection together with the keyword
// counts the plausibility checks use later on
type MainJob struct {
	Role                   model.MainRole
	DirectorDirect         int
	ExecutiveSurrounding   int
	SupervisorySurrounding int
}

// RelevantSentences returns the lowercased sentences mentioning any of the
// name variants (direct), and those sentences together with the sentence
// before each of them and the sentence right after each run of them
// (surrounding). Surrounding sentences are unique and in document order.
func RelevantSentences(doc *model.Document, variants []string) (direct, surrounding []string) {
	add := func(s string) {
		if s != "" && !slices.Contains(surrounding, s) {
			surrounding = append(surrounding, s)
		}
	}

	prev := ""
	needNext := false
	for _, sentence := range doc.Sentences {
		lower := strings.ToLower(sentence.Text)
		switch {
		case mentionsAny(sentence.Text, variants):
			direct = append(direct, lower)
			add(prev)
			add(lower)
			needNext = true
		case needNext:
			add(lower)
			needNext = false
		}
		prev = lower
	}
	return direct, surrounding
}

func mentionsAny(text string, variants []string) bool {
	for _, v := range variants {
		if v != "" && strings.Contains(text, v) {
			return true
		}
	}
	return false
}

// CountOccurrence counts the whole-word occurrences of words in sentences,
// and the number of sentences with at least one of them
func CountOccurrence(sentences, words []string) (total, inSentences int) {
	full := viceChair.Replace(strings.Join(sentences, " "))
	for _, w := range words {
		total += textutil.CountWord(full, w)
	}

	for _, s := range sentences {
		s = viceChair.Replace(s)
		for _, w := range words {
			if textutil.ContainsWord(s, w) {
				inSentences++
				break
			}
		}
	}
	return total, inSentences
}

// DetermineMainJob selects the main role from the ordered categories.
//
// For every category it counts keyword sentences (fs, fss) and keyword
// occurrences (ft, fts) in the direct and surrounding sentences. The first
// of these that has a single positive maximum decides, checked in the order
// fs, fss, ft, fts. When all are tied the first category reaching the
// maximum fs wins, then the first reaching the maximum fss. Without any
// keyword hit the role is none.
func DetermineMainJob(cats keywords.Categories, direct, surrounding []string) MainJob {
	n := len(cats)
	fs, fss := make([]int, n), make([]int, n)
	ft, fts := make([]int, n), make([]int, n)
	for i, c := range cats {
		ft[i], fs[i] = CountOccurrence(direct, c.Words)
		fts[i], fss[i] = CountOccurrence(surrounding, c.Words)
	}

	job := MainJob{
		DirectorDirect:         valueFor(cats, ft, model.RoleDirector),
		ExecutiveSurrounding:   valueFor(cats, fts, model.RoleExecutiveBoard),
		SupervisorySurrounding: valueFor(cats, fts, model.RoleSupervisoryBoard),
	}

	for _, pick := range []func() (int, bool){
		func() (int, bool) { return uniqueMax(fs) },
		func() (int, bool) { return uniqueMax(fss) },
		func() (int, bool) { return uniqueMax(ft) },
		func() (int, bool) { return uniqueMax(fts) },
		func() (int, bool) { return firstMax(fs) },
		func() (int, bool) { return firstMax(fss) },
	} {
		if i, ok := pick(); ok {
			job.Role = model.MainRole(cats[i].Tag)
			break
		}
	}
	return job
}

func valueFor(cats keywords.Categories, vals []int, role model.MainRole) int {
	if i := cats.Index(string(role)); i >= 0 {
		return vals[i]
	}
	return 0
}

// uniqueMax returns the index of the largest value if it is positive and
// reached only once
func uniqueMax(vals []int) (int, bool) {
	i, ok := firstMax(vals)
	if !ok {
		return 0, false
	}
	for j := i + 1; j < len(vals); j++ {
		if vals[j] == vals[i] {
			return 0, false
		}
	}
	return i, true
}

// firstMax returns the index of the first occurrence of the largest value,
// if it is positive
func firstMax(vals []int) (int, bool) {
	best := -1
	for i, v := range vals {
		if v > 0 && (best < 0 || v > vals[best]) {
			best = i
		}
	}
	return best, best >= 0
}

// SurroundingWords returns the words directly before and after every
// occurrence of a name variant in sentences. Sentences are lowercased, the
// variants are replaced longest first, punctuation is dropped and the
// qualifiers "algemeen", "adjunct" and "interim" are removed.
func SurroundingWords(sentences, variants []string) []string {
	text := strings.ToLower(strings.Join(sentences, " "))

	names := slices.Clone(variants)
	sort.SliceStable(names, func(a, b int) bool { return len(names[a]) > len(names[b]) })
	for _, name := range names {
		if name = strings.ToLower(name); name != "" {
			text = strings.ReplaceAll(text, name, placeholder)
		}
	}

	text = nonWord.ReplaceAllString(text, " ")
	text = strings.ReplaceAll(text, "vice voorzitter", "vicevoorzitter")
	text = qualifier.Replace(text)

	tokens := strings.Fields(text)
	var words []string
	for i, tok := range tokens {
		if tok != placeholder {
			continue
		}
		if i > 0 {
			words = append(words, tokens[i-1])
		}
		if i < len(tokens)-1 {
			words = append(words, tokens[i+1])
		}
	}
	return words
}

// DetermineSubJob picks the sub role whose keywords appear most often right
// next to the person's name. A tie or no hit gives no sub role.
//
// Directors only carry the director sub role. Any other sub role found for
// a director is moved to backup, for use when the director is demoted.
func DetermineSubJob(cats keywords.Categories, variants, direct []string, main model.MainRole) (sub, backup model.SubRole) {
	words := SurroundingWords(direct, variants)
	if len(words) == 0 {
		return model.SubNone, model.SubNone
	}

	counts := make([]int, len(cats))
	for i, c := range cats {
		counts[i], _ = CountOccurrence(words, c.Words)
	}
	i, ok := uniqueMax(counts)
	if !ok {
		return model.SubNone, model.SubNone
	}

	sub = model.SubRole(cats[i].Tag)
	if main != model.RoleDirector {
		return sub, sub
	}
	if sub == model.SubDirector {
		return sub, model.SubNone
	}
	return model.SubNone, sub
}
