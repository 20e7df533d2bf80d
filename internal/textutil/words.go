// Package textutil has the whole-word matching shared by the extractors.
//
// Matching follows regular-expression \b semantics, but classifies runes
// with the unicode package so that Dutch diacritics ("ë", "ö") count as
// letters. Go's regexp treats \b as ASCII-only.
package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsWordRune reports whether r is a letter, digit or underscore
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func wordBefore(s string, i int) bool {
	if i <= 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return IsWordRune(r)
}

func wordAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return IsWordRune(r)
}

// Boundary reports whether byte offset i of s is a word boundary
func Boundary(s string, i int) bool {
	return wordBefore(s, i) != wordAt(s, i)
}

// FindWord returns the byte offsets of the non-overlapping occurrences of
// word in text that start and end on a word boundary.
func FindWord(text, word string) []int {
	if word == "" {
		return nil
	}
	var hits []int
	for from := 0; from <= len(text)-len(word); {
		idx := strings.Index(text[from:], word)
		if idx < 0 {
			break
		}
		start := from + idx
		end := start + len(word)
		if Boundary(text, start) && Boundary(text, end) {
			hits = append(hits, start)
			from = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		from = start + size
	}
	return hits
}

// CountWord counts whole-word occurrences of word in text
func CountWord(text, word string) int {
	return len(FindWord(text, word))
}

// ContainsWord reports whether word occurs in text as a whole word
func ContainsWord(text, word string) bool {
	return CountWord(text, word) > 0
}

// ContainsAnyWord reports whether any of words occurs in text as a whole word
func ContainsAnyWord(text string, words []string) bool {
	for _, w := range words {
		if ContainsWord(text, w) {
			return true
		}
	}
	return false
}

// FindPhrase returns the byte offsets of the non-overlapping occurrences of
// phrase in text that are not glued to a word rune on either side. Unlike
// FindWord it accepts phrases that end in punctuation ("B.V.").
func FindPhrase(text, phrase string) []int {
	if phrase == "" {
		return nil
	}
	var hits []int
	for from := 0; from <= len(text)-len(phrase); {
		idx := strings.Index(text[from:], phrase)
		if idx < 0 {
			break
		}
		start := from + idx
		end := start + len(phrase)
		if !wordBefore(text, start) && !wordAt(text, end) {
			hits = append(hits, start)
			from = end
			continue
		}
		_, size := utf8.DecodeRuneInString(text[start:])
		from = start + size
	}
	return hits
}
