package ner

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Dutch abbreviations that end in a period without ending the sentence
var abbreviations = map[string]bool{
	"dhr": true, "mevr": true, "mw": true, "mr": true, "dr": true, "drs": true,
	"ir": true, "ing": true, "prof": true, "bc": true, "jhr": true, "ds": true,
	"st": true, "nr": true, "blz": true, "bijv": true, "ca": true, "evt": true,
	"jl": true, "resp": true, "incl": true, "excl": true, "vs": true,
	"o.a": true, "e.a": true, "i.v.m": true, "m.b.t": true, "t.a.v": true,
	"c.q": true, "d.w.z": true, "n.v.t": true, "t.b.v": true, "z.s.m": true,
	"m.u.v": true, "a.i": true, "i.o": true,
}

// initials matches "J", "J.P" and legal forms like "B.V"
var initials = regexp.MustCompile(`^(?:\p{L}\.)*\p{Lu}$`)

// SplitSentences splits text on sentence terminators followed by
// whitespace. A period after an initial or a known abbreviation does not
// end the sentence.
func SplitSentences(text string) []string {
	var (
		sentences []string
		start     int
	)

	flush := func(end int) {
		if s := strings.TrimSpace(text[start:end]); s != "" {
			sentences = append(sentences, s)
		}
		start = end
	}

	for i, r := range text {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		next := i + 1
		if next < len(text) {
			nr, _ := utf8.DecodeRuneInString(text[next:])
			if !unicode.IsSpace(nr) {
				continue
			}
		}
		if r == '.' && abbreviated(text[start:i]) {
			continue
		}
		flush(next)
	}
	flush(len(text))
	return sentences
}

// abbreviated reports whether the last token of s is an abbreviation or an
// initial
func abbreviated(s string) bool {
	token := s
	if i := strings.LastIndexFunc(s, unicode.IsSpace); i >= 0 {
		token = s[i+1:]
	}
	token = strings.TrimLeft(token, "(\"'")
	if token == "" {
		return false
	}
	return initials.MatchString(token) || abbreviations[strings.ToLower(token)]
}
