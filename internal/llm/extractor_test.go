package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	name      string
	available bool
	err       error
	requests  []EntityRequest
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) Extract(ctx context.Context, req EntityRequest) (*EntityResponse, error) {
	m.requests = append(m.requests, req)
	if m.err != nil {
		return nil, m.err
	}
	entities := make([][]Entity, len(req.Sentences))
	for i, s := range req.Sentences {
		entities[i] = []Entity{{Text: s, Type: "PER"}}
	}
	return &EntityResponse{Entities: entities, TokensUsed: 10, Model: "mock"}, nil
}

func (m *MockProvider) IsAvailable(ctx context.Context) bool {
	return m.available
}

func TestNewExtractor_DisabledProvider(t *testing.T) {
	extractor, err := NewExtractor(Config{Provider: ""})
	require.NoError(t, err)

	assert.False(t, extractor.IsEnabled())
	assert.Equal(t, "", extractor.ProviderName())

	_, _, err = extractor.Tag(context.Background(), []string{"Zin."})
	assert.Error(t, err)
}

func TestNewExtractor_UnknownProvider(t *testing.T) {
	_, err := NewExtractor(Config{Provider: "unknown"})
	assert.Error(t, err)
}

func TestExtractor_Tag_Batches(t *testing.T) {
	mock := &MockProvider{name: "mock", available: true}
	extractor := NewExtractorWithProvider(mock, Config{BatchSize: 2, Model: "m"})

	entities, usage, err := extractor.Tag(context.Background(), []string{"a", "b", "c", "d", "e"})
	require.NoError(t, err)

	require.Len(t, entities, 5)
	assert.Equal(t, "c", entities[2][0].Text)
	assert.Equal(t, "e", entities[4][0].Text)

	assert.Equal(t, 3, usage.Requests)
	assert.Equal(t, 30, usage.TokensUsed)
	require.Len(t, mock.requests, 3)
	assert.Equal(t, []string{"e"}, mock.requests[2].Sentences)
	assert.Equal(t, "m", mock.requests[0].Model)
	assert.Equal(t, "mock", extractor.ProviderName())
}

func TestExtractor_Tag_ProviderError(t *testing.T) {
	mock := &MockProvider{name: "mock", err: errors.New("rate limited")}
	extractor := NewExtractorWithProvider(mock, Config{})

	_, _, err := extractor.Tag(context.Background(), []string{"a"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}
