package ner

import (
	"context"
	"fmt"

	"github.com/ppiankov/nedextract/internal/llm"
	"github.com/ppiankov/nedextract/internal/model"
	"github.com/sirupsen/logrus"
)

// LLMTagger sends sentences in batches to an LLM provider
type LLMTagger struct {
	extractor *llm.Extractor
	logger    logrus.FieldLogger
}

// NewLLMTagger wraps an enabled extractor
func NewLLMTagger(extractor *llm.Extractor, logger logrus.FieldLogger) (*LLMTagger, error) {
	if extractor == nil || !extractor.IsEnabled() {
		return nil, fmt.Errorf("llm tagger: no provider configured")
	}
	return &LLMTagger{extractor: extractor, logger: orDiscard(logger)}, nil
}

// Name returns the tagger name
func (t *LLMTagger) Name() string {
	return "llm:" + t.extractor.ProviderName()
}

// Tag segments text and tags the sentences through the provider
func (t *LLMTagger) Tag(ctx context.Context, text string) (*model.Document, error) {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return &model.Document{Text: text}, nil
	}

	tagged, usage, err := t.extractor.Tag(ctx, sentences)
	if err != nil {
		return nil, fmt.Errorf("llm tagger: %w", err)
	}

	logger := t.logger.WithField("action", "llm_tag").
		WithField("provider", t.extractor.ProviderName()).
		WithField("requests", usage.Requests).
		WithField("tokens", usage.TokensUsed)
	if len(usage.Rejected) > 0 {
		logger.WithField("rejected", len(usage.Rejected)).
			Warn("provider returned entities that do not occur in the text")
	} else {
		logger.Debug("tagged sentences")
	}

	entities := make([][]model.Mention, len(tagged))
	for i, ents := range tagged {
		for _, e := range ents {
			entities[i] = append(entities[i], model.Mention{Text: e.Text, Type: model.EntityType(e.Type)})
		}
	}
	return documentFromSentences(text, sentences, entities), nil
}
