package ner

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ppiankov/nedextract/internal/cache"
	"github.com/ppiankov/nedextract/internal/model"
)

// CachedTagger memoizes the documents of another tagger. Cache failures
// are logged and fall through to the wrapped tagger.
type CachedTagger struct {
	inner  Tagger
	docs   *cache.Documents
	logger logrus.FieldLogger
}

// NewCachedTagger wraps inner with store
func NewCachedTagger(inner Tagger, store cache.Cache, ttl time.Duration, logger logrus.FieldLogger) *CachedTagger {
	return &CachedTagger{inner: inner, docs: cache.NewDocuments(store, ttl), logger: orDiscard(logger)}
}

// Name returns the name of the wrapped tagger
func (t *CachedTagger) Name() string {
	return t.inner.Name()
}

// Tag returns the cached document for text or tags it
func (t *CachedTagger) Tag(ctx context.Context, text string) (*model.Document, error) {
	doc, ok, err := t.docs.Get(t.inner.Name(), text)
	switch {
	case ok:
		return doc, nil
	case errors.Is(err, cache.ErrCorrupt):
		t.logger.WithField("action", "tag_cache_decode").WithError(err).
			Warn("dropping unreadable cache entry")
	}

	doc, err = t.inner.Tag(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := t.docs.Put(t.inner.Name(), text, doc); err != nil {
		t.logger.WithField("action", "tag_cache_store").WithError(err).Warn("cannot cache document")
	}
	return doc, nil
}
