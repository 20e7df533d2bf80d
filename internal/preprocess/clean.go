// Package preprocess turns report files into the plain-text variants that
// are tagged. The variants differ only in how blank lines, line ends and
// parentheses are replaced, which steers sentence segmentation.
package preprocess

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Options selects the replacements for layout characters
type Options struct {
	Blankline string
	EOL       string
	Par       string
}

// Variant names one of the fixed option sets
type Variant string

const (
	// VariantDefault is used for persons and the sector model
	VariantDefault Variant = "default"
	// VariantC joins blank lines and parentheses with commas
	VariantC Variant = "c"
	// VariantP ends a sentence at blank lines
	VariantP Variant = "p"
	// VariantPP ends a sentence at every line end
	VariantPP Variant = "pp"
	// VariantRetry is the person extraction fallback
	VariantRetry Variant = "retry"
)

var variants = map[Variant]Options{
	VariantDefault: {Blankline: ", ", EOL: " ", Par: ""},
	VariantC:       {Blankline: ", ", EOL: " ", Par: ", "},
	VariantP:       {Blankline: ". ", EOL: " ", Par: ", "},
	VariantPP:      {Blankline: ". ", EOL: ". ", Par: ", "},
	VariantRetry:   {Blankline: ". ", EOL: " ", Par: ""},
}

// Options returns the replacements of v; unknown variants get the default
func (v Variant) Options() Options {
	if o, ok := variants[v]; ok {
		return o
	}
	return variants[VariantDefault]
}

var (
	layout = strings.NewReplacer("\r", " ", "\t", " ")
	junk   = strings.NewReplacer(
		"\x0c", " ", "\x07", " ", "\x08", " ", "\u00ad", " ",
		"•", ", ", "\uf0a7", ", ", "◼", ", ", "\uf0b7", " ",
		"/", " / ",
	)
)

// Clean applies the replacement sequence to raw extracted text. The order
// of the steps matters: blank lines are replaced before single line ends.
func Clean(text string, opts Options) string {
	text = strings.ReplaceAll(text, "\n\n", opts.Blankline)
	text = strings.ReplaceAll(text, "\r\n\r\n", opts.Blankline)
	text = strings.ReplaceAll(text, "\n", opts.EOL)
	text = layout.Replace(text)

	text = strings.ReplaceAll(text, "(", opts.Par)
	text = strings.ReplaceAll(text, ")", opts.Par)
	text = strings.ReplaceAll(text, ";", ",")
	text = junk.Replace(text)

	text = collapse(text, ":.", ":")
	text = strings.ReplaceAll(text, ":", ", ")

	text = collapse(text, "  ", " ")
	text = collapse(text, ", ,", ",")
	text = collapse(text, ",,", ",")
	text = collapse(text, " ,", ",")
	text = strings.ReplaceAll(text, ".,", ".")
	text = collapse(text, ". .", ".")
	text = collapse(text, "..", ".")
	text = collapse(text, " .", ".")
	return text
}

// collapse replaces old until it no longer occurs
func collapse(text, old, new string) string {
	for strings.Contains(text, old) {
		text = strings.ReplaceAll(text, old, new)
	}
	return text
}

// Normalize converts text to NFC so that composed and decomposed
// diacritics compare equal
func Normalize(text string) string {
	return norm.NFC.String(text)
}

// Variants holds the cleaned texts of one document
type Variants map[Variant]string

// Build cleans raw once per requested variant
func Build(raw string, vs ...Variant) Variants {
	out := make(Variants, len(vs))
	for _, v := range vs {
		out[v] = Clean(raw, v.Options())
	}
	return out
}
