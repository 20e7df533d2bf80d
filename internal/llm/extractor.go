package llm

import (
	"context"
	"fmt"
)

// Extractor tags sentences in batches through the configured provider
type Extractor struct {
	provider Provider
	config   Config
}

// Usage summarizes the provider calls of one Tag run
type Usage struct {
	Requests   int
	TokensUsed int
	Rejected   []Entity
}

// NewExtractor creates a new extractor. A config without provider yields a
// disabled extractor.
func NewExtractor(config Config) (*Extractor, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}
	return &Extractor{provider: provider, config: config}, nil
}

// NewExtractorWithProvider wraps an existing provider
func NewExtractorWithProvider(provider Provider, config Config) *Extractor {
	return &Extractor{provider: provider, config: config}
}

// IsEnabled returns true if a provider is configured
func (e *Extractor) IsEnabled() bool {
	return e.provider != nil
}

// ProviderName returns the name of the configured provider
func (e *Extractor) ProviderName() string {
	if e.provider == nil {
		return ""
	}
	return e.provider.Name()
}

// Tag returns the entities of every sentence, in sentence order
func (e *Extractor) Tag(ctx context.Context, sentences []string) ([][]Entity, Usage, error) {
	var usage Usage
	if e.provider == nil {
		return nil, usage, fmt.Errorf("no LLM provider configured")
	}

	size := e.config.BatchSize
	if size <= 0 {
		size = DefaultConfig().BatchSize
	}

	out := make([][]Entity, 0, len(sentences))
	for start := 0; start < len(sentences); start += size {
		end := min(start+size, len(sentences))
		batch := sentences[start:end]

		resp, err := e.provider.Extract(ctx, EntityRequest{
			Sentences: batch,
			Model:     e.config.Model,
			MaxTokens: e.config.MaxTokens,
		})
		if err != nil {
			return nil, usage, fmt.Errorf("tag sentences %d-%d: %w", start, end-1, err)
		}
		if len(resp.Entities) != len(batch) {
			return nil, usage, fmt.Errorf("tag sentences %d-%d: got %d results", start, end-1, len(resp.Entities))
		}

		usage.Requests++
		usage.TokensUsed += resp.TokensUsed
		usage.Rejected = append(usage.Rejected, resp.Rejected...)
		out = append(out, resp.Entities...)
	}
	return out, usage, nil
}
