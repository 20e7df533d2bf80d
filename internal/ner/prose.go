package ner

import (
	"context"
	"fmt"
	"os"

	"github.com/jdkato/prose/v2"
	"github.com/ppiankov/nedextract/internal/model"
)

// ProseTagger runs the prose statistical tagger sentence by sentence
type ProseTagger struct {
	model *prose.Model
}

// NewProseTagger loads the model in dir, or uses the built-in model when
// dir is empty
func NewProseTagger(dir string) (*ProseTagger, error) {
	t := &ProseTagger{}
	if dir == "" {
		return t, nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("prose model: %w", err)
	}
	t.model = prose.ModelFromDisk(dir)
	return t, nil
}

// Name returns the tagger name
func (t *ProseTagger) Name() string {
	return "prose"
}

// Tag segments text and tags each sentence
func (t *ProseTagger) Tag(ctx context.Context, text string) (*model.Document, error) {
	sentences := SplitSentences(text)
	entities := make([][]model.Mention, len(sentences))

	opts := []prose.DocOpt{prose.WithSegmentation(false)}
	if t.model != nil {
		opts = append(opts, prose.UsingModel(t.model))
	}

	for i, s := range sentences {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		doc, err := prose.NewDocument(s, opts...)
		if err != nil {
			return nil, fmt.Errorf("tag sentence %d: %w", i, err)
		}
		for _, ent := range doc.Entities() {
			if kind, ok := proseLabel(ent.Label); ok {
				entities[i] = append(entities[i], model.Mention{Text: ent.Text, Type: kind})
			}
		}
	}
	return documentFromSentences(text, sentences, entities), nil
}

// proseLabel maps prose labels onto PER and ORG. The built-in model tags
// organizations as GPE.
func proseLabel(label string) (model.EntityType, bool) {
	switch label {
	case "PERSON", "PER":
		return model.EntityPerson, true
	case "ORG", "GPE":
		return model.EntityOrganization, true
	default:
		return "", false
	}
}
