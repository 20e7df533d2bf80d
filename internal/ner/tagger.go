// Package ner tags person and organization names in report text.
//
// Three engines are available: the built-in statistical tagger (prose), an
// LLM-backed tagger and a gazetteer for offline, deterministic runs. Any
// tagger also answers the standalone organization check through Standalone.
package ner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/nedextract/internal/cache"
	"github.com/ppiankov/nedextract/internal/llm"
	"github.com/ppiankov/nedextract/internal/model"
	"github.com/sirupsen/logrus"
)

// ErrUnknownTagger is returned for an unsupported tagger kind
var ErrUnknownTagger = errors.New("unknown tagger")

// Tagger turns text into a tagged document
type Tagger interface {
	Name() string
	Tag(ctx context.Context, text string) (*model.Document, error)
}

// New builds the tagger selected by cfg, wrapped in a cache when a cache
// directory or TTL is configured.
func New(cfg model.TaggerConfig, fetchCfg model.FetchConfig, logger logrus.FieldLogger) (Tagger, error) {
	var (
		t   Tagger
		err error
	)

	switch strings.ToLower(cfg.Kind) {
	case "", "prose":
		t, err = NewProseTagger(cfg.ProseModel)
	case "llm":
		extractor, xerr := llm.NewExtractor(llm.ConfigFromModel(cfg.LLM, fetchCfg))
		if xerr != nil {
			return nil, xerr
		}
		t, err = NewLLMTagger(extractor, logger)
	case "gazetteer":
		t, err = LoadGazetteer(cfg.Gazetteer)
	default:
		return nil, fmt.Errorf("%w: %s (supported: prose, llm, gazetteer)", ErrUnknownTagger, cfg.Kind)
	}
	if err != nil {
		return nil, err
	}

	if cfg.CacheDir == "" && cfg.CacheTTL == 0 {
		return t, nil
	}
	store := cache.NewLayeredCache(cfg.CacheTTL, cfg.CacheDir, cfg.CacheTTL)
	if n, err := store.Prune(); err != nil {
		orDiscard(logger).WithField("action", "tag_cache_prune").WithError(err).Warn("cannot prune tag cache")
	} else if n > 0 {
		orDiscard(logger).WithField("action", "tag_cache_prune").WithField("removed", n).Debug("expired tag cache entries removed")
	}
	return NewCachedTagger(t, store, cfg.CacheTTL, logger), nil
}

// documentFromSentences builds a document whose sentences carry the
// entities found by tag, in sentence order.
func documentFromSentences(text string, sentences []string, entities [][]model.Mention) *model.Document {
	doc := &model.Document{Text: text, Sentences: make([]model.Sentence, len(sentences))}
	for i, s := range sentences {
		doc.Sentences[i].Text = s
		if i < len(entities) {
			doc.Sentences[i].Entities = entities[i]
		}
	}
	return doc
}
