package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Extract tags the person and organization names in a batch of sentences
	Extract(ctx context.Context, req EntityRequest) (*EntityResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// EntityRequest contains the input for entity tagging
type EntityRequest struct {
	// Sentences are tagged independently; results keep their order
	Sentences []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// Entity is one tagged span
type Entity struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// EntityResponse contains the tagged entities per sentence
type EntityResponse struct {
	// Entities holds one list per request sentence
	Entities [][]Entity

	// Rejected are entities whose text does not occur in their sentence
	Rejected []Entity

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// BatchSize is the number of sentences per request
	BatchSize int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   60,
		MaxTokens: 4000,
		BatchSize: 40,
	}
}

const systemPrompt = "You are a named entity tagger for Dutch annual reports. You only report names that literally occur in the given sentences."

// BuildPrompt constructs the default tagging prompt for a batch of sentences
func BuildPrompt(sentences []string) string {
	var b strings.Builder
	b.WriteString(`Tag every person name (PER) and organization name (ORG) in the numbered Dutch sentences below.

RULES:
1. Copy each name exactly as written in the sentence, including titles and initials.
2. Do not tag job titles, committees or places on their own.
3. Answer with JSON only, in this form:
{"sentences":[{"index":0,"entities":[{"text":"Jan de Vries","type":"PER"}]}]}
4. Sentences without names may be left out.

Sentences:
`)
	for i, s := range sentences {
		fmt.Fprintf(&b, "%d: %s\n", i, strings.ReplaceAll(s, "\n", " "))
	}
	return b.String()
}

type taggedBatch struct {
	Sentences []struct {
		Index    int      `json:"index"`
		Entities []Entity `json:"entities"`
	} `json:"sentences"`
}

// ParseEntities decodes a tagging answer for the given sentences. Code fences
// and text around the JSON object are ignored. Unknown entity types are
// dropped; entities that do not occur in their sentence are returned as
// rejected.
func ParseEntities(raw string, sentences []string) (entities [][]Entity, rejected []Entity, err error) {
	start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return nil, nil, fmt.Errorf("no JSON object in response")
	}

	var batch taggedBatch
	if err := json.Unmarshal([]byte(raw[start:end+1]), &batch); err != nil {
		return nil, nil, fmt.Errorf("decode entities: %w", err)
	}

	entities = make([][]Entity, len(sentences))
	for _, s := range batch.Sentences {
		if s.Index < 0 || s.Index >= len(sentences) {
			return nil, nil, fmt.Errorf("sentence index %d out of range (0-%d)", s.Index, len(sentences)-1)
		}
		for _, e := range s.Entities {
			kind := normalizeType(e.Type)
			if kind == "" || strings.TrimSpace(e.Text) == "" {
				continue
			}
			e.Type = kind
			if !strings.Contains(sentences[s.Index], e.Text) {
				rejected = append(rejected, e)
				continue
			}
			entities[s.Index] = append(entities[s.Index], e)
		}
	}
	return entities, rejected, nil
}

func normalizeType(t string) string {
	switch strings.ToUpper(strings.TrimSpace(t)) {
	case "PER", "PERSON":
		return "PER"
	case "ORG", "ORGANIZATION", "ORGANISATION":
		return "ORG"
	default:
		return ""
	}
}

// resolve fills in the request defaults from the provider config
func resolve(req EntityRequest, config Config, defaultModel string) (prompt, model string, maxTokens int) {
	prompt = req.Prompt
	if prompt == "" {
		prompt = BuildPrompt(req.Sentences)
	}

	model = req.Model
	if model == "" {
		model = config.Model
	}
	if model == "" {
		model = defaultModel
	}

	maxTokens = req.MaxTokens
	if maxTokens == 0 {
		maxTokens = config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 4000
	}
	return prompt, model, maxTokens
}
