package ner

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/nedextract/internal/model"
	"github.com/ppiankov/nedextract/internal/textutil"
	"gopkg.in/yaml.v3"
)

// Gazetteer lists the names a GazetteerTagger recognizes. JSON files are
// accepted as well since YAML is a superset.
type Gazetteer struct {
	Persons       []string `yaml:"persons"`
	Organizations []string `yaml:"organizations"`
}

type entry struct {
	name string
	kind model.EntityType
}

// GazetteerTagger tags every listed name that occurs in a sentence
type GazetteerTagger struct {
	entries []entry
}

// LoadGazetteer reads a gazetteer file
func LoadGazetteer(path string) (*GazetteerTagger, error) {
	if path == "" {
		return nil, fmt.Errorf("gazetteer tagger: no gazetteer file configured")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read gazetteer: %w", err)
	}
	var g Gazetteer
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse gazetteer %s: %w", path, err)
	}
	return NewGazetteerTagger(g), nil
}

// NewGazetteerTagger builds a tagger from an in-memory list
func NewGazetteerTagger(g Gazetteer) *GazetteerTagger {
	t := &GazetteerTagger{}
	seen := make(map[string]bool)
	add := func(names []string, kind model.EntityType) {
		for _, n := range names {
			n = strings.TrimSpace(n)
			if n == "" || seen[n] {
				continue
			}
			seen[n] = true
			t.entries = append(t.entries, entry{name: n, kind: kind})
		}
	}
	add(g.Persons, model.EntityPerson)
	add(g.Organizations, model.EntityOrganization)

	// Longest names claim their span first
	sort.SliceStable(t.entries, func(i, j int) bool {
		return len(t.entries[i].name) > len(t.entries[j].name)
	})
	return t
}

// Name returns the tagger name
func (t *GazetteerTagger) Name() string {
	return "gazetteer"
}

type span struct {
	start, end int
	kind       model.EntityType
}

// Tag segments text and tags the listed names in each sentence
func (t *GazetteerTagger) Tag(ctx context.Context, text string) (*model.Document, error) {
	sentences := SplitSentences(text)
	entities := make([][]model.Mention, len(sentences))

	for i, s := range sentences {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var spans []span
		for _, e := range t.entries {
			for _, start := range textutil.FindPhrase(s, e.name) {
				sp := span{start: start, end: start + len(e.name), kind: e.kind}
				if !overlaps(spans, sp) {
					spans = append(spans, sp)
				}
			}
		}
		sort.Slice(spans, func(a, b int) bool { return spans[a].start < spans[b].start })
		for _, sp := range spans {
			entities[i] = append(entities[i], model.Mention{Text: s[sp.start:sp.end], Type: sp.kind})
		}
	}
	return documentFromSentences(text, sentences, entities), nil
}

func overlaps(spans []span, sp span) bool {
	for _, o := range spans {
		if sp.start < o.end && o.start < sp.end {
			return true
		}
	}
	return false
}
