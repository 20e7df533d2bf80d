package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/ppiankov/nedextract/internal/model"
)

// ErrCorrupt is returned for a stored document that no longer decodes
var ErrCorrupt = errors.New("corrupt cache entry")

// Documents keeps tagged documents in a Cache, msgpack encoded
type Documents struct {
	store Cache
	ttl   time.Duration
}

// NewDocuments stores documents in store. A zero ttl uses the store default.
func NewDocuments(store Cache, ttl time.Duration) *Documents {
	return &Documents{store: store, ttl: ttl}
}

// Get returns the document tagger produced for text. A corrupt entry is
// removed and reported as ErrCorrupt.
func (d *Documents) Get(tagger, text string) (*model.Document, bool, error) {
	key := DocumentKey(tagger, text)
	data, ok := d.store.Get(key)
	if !ok {
		return nil, false, nil
	}

	var doc model.Document
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		_ = d.store.Delete(key)
		return nil, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &doc, true, nil
}

// Put stores doc as the result of tagging text with tagger
func (d *Documents) Put(tagger, text string, doc *model.Document) error {
	data, err := msgpack.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	return d.store.Set(DocumentKey(tagger, text), data, d.ttl)
}
