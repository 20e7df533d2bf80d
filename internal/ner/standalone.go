package ner

import (
	"context"
	"fmt"
	"sync"
)

// Standalone answers whether a candidate is tagged as exactly one
// organization, equal to itself, when tagged without context. Verdicts are
// memoized per candidate.
type Standalone struct {
	tagger Tagger

	mu       sync.Mutex
	verdicts map[string]bool
}

// NewStandalone creates a standalone checker on top of tagger
func NewStandalone(tagger Tagger) *Standalone {
	return &Standalone{tagger: tagger, verdicts: make(map[string]bool)}
}

// IsStandaloneOrg tags name on its own
func (s *Standalone) IsStandaloneOrg(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	v, ok := s.verdicts[name]
	s.mu.Unlock()
	if ok {
		return v, nil
	}

	doc, err := s.tagger.Tag(ctx, name)
	if err != nil {
		return false, fmt.Errorf("standalone check %q: %w", name, err)
	}
	orgs := doc.Organizations()
	v = len(orgs) == 1 && orgs[0] == name

	s.mu.Lock()
	s.verdicts[name] = v
	s.mu.Unlock()
	return v, nil
}
