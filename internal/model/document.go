package model

import "sort"

// EntityType is the coarse NER tag of a mention
type EntityType string

const (
	EntityPerson       EntityType = "PER"
	EntityOrganization EntityType = "ORG"
)

// Mention is a tagged span of text as produced by a NER engine
type Mention struct {
	Text string     `json:"text" yaml:"text"`
	Type EntityType `json:"type" yaml:"type"`
}

// Sentence is one segmented sentence with the mentions found in it
type Sentence struct {
	Text     string    `json:"text" yaml:"text"`
	Entities []Mention `json:"entities,omitempty" yaml:"entities,omitempty"`
}

// Document is a tagged document: the text that was tagged and its sentences in order
type Document struct {
	Text      string     `json:"text" yaml:"text"`
	Sentences []Sentence `json:"sentences" yaml:"sentences"`
}

// Mentions returns the texts of all mentions of the given type, in document order.
// Duplicates are kept.
func (d *Document) Mentions(t EntityType) []string {
	if d == nil {
		return nil
	}
	var out []string
	for _, s := range d.Sentences {
		for _, e := range s.Entities {
			if e.Type == t {
				out = append(out, e.Text)
			}
		}
	}
	return out
}

// Persons returns the unique person mentions, sorted
func (d *Document) Persons() []string {
	return uniqueSorted(d.Mentions(EntityPerson))
}

// Organizations returns all organization mentions including duplicates
func (d *Document) Organizations() []string {
	return d.Mentions(EntityOrganization)
}

// MainOrganization returns the most frequently tagged organization.
// Ties go to the alphabetically first name; an empty string means none was tagged.
func (d *Document) MainOrganization() string {
	counts := make(map[string]int)
	for _, o := range d.Organizations() {
		counts[o]++
	}
	best, bestN := "", 0
	for _, name := range uniqueSorted(d.Organizations()) {
		if counts[name] > bestN {
			best, bestN = name, counts[name]
		}
	}
	return best
}

func uniqueSorted(in []string) []string {
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
