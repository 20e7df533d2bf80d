package ner

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/nedextract/internal/cache"
	"github.com/ppiankov/nedextract/internal/llm"
	"github.com/ppiankov/nedextract/internal/model"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain",
			text: "Het bestuur vergaderde. De directeur was aanwezig! Wie niet?",
			want: []string{"Het bestuur vergaderde.", "De directeur was aanwezig!", "Wie niet?"},
		},
		{
			name: "initials and titles",
			text: "Dhr. J.P. de Vries is voorzitter. Mw. drs. A. Jansen is lid.",
			want: []string{"Dhr. J.P. de Vries is voorzitter.", "Mw. drs. A. Jansen is lid."},
		},
		{
			name: "legal form",
			text: "Bedrijfsnaam B.V. steunt ons, o.a. met geld. Dank.",
			want: []string{"Bedrijfsnaam B.V. steunt ons, o.a. met geld.", "Dank."},
		},
		{
			name: "no terminator",
			text: "  Jaarverslag 2022 ",
			want: []string{"Jaarverslag 2022"},
		},
		{
			name: "decimal",
			text: "Het budget was 1.5 miljoen. Klaar.",
			want: []string{"Het budget was 1.5 miljoen.", "Klaar."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSentences(tt.text))
		})
	}
	assert.Empty(t, SplitSentences("   "))
}

func testGazetteer() *GazetteerTagger {
	return NewGazetteerTagger(Gazetteer{
		Persons:       []string{"Jan de Vries", "Vries"},
		Organizations: []string{"Stichting Zonnestraal", "Zonnestraal", "Bedrijfsnaam B.V."},
	})
}

func TestGazetteerTagger_Tag(t *testing.T) {
	doc, err := testGazetteer().Tag(context.Background(),
		"Jan de Vries is voorzitter van Stichting Zonnestraal. Bedrijfsnaam B.V. sponsort Zonnestraal.")
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 2)

	assert.Equal(t, []model.Mention{
		{Text: "Jan de Vries", Type: model.EntityPerson},
		{Text: "Stichting Zonnestraal", Type: model.EntityOrganization},
	}, doc.Sentences[0].Entities)
	assert.Equal(t, []model.Mention{
		{Text: "Bedrijfsnaam B.V.", Type: model.EntityOrganization},
		{Text: "Zonnestraal", Type: model.EntityOrganization},
	}, doc.Sentences[1].Entities)
	assert.Equal(t, []string{"Jan de Vries"}, doc.Persons())
}

func TestLoadGazetteer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "entities.yaml")
	require.NoError(t, os.WriteFile(path, []byte("persons:\n  - Piet Jansen\norganizations:\n  - Rabobank\n"), 0644))

	g, err := LoadGazetteer(path)
	require.NoError(t, err)
	doc, err := g.Tag(context.Background(), "Piet Jansen werkt bij Rabobank.")
	require.NoError(t, err)
	assert.Equal(t, []string{"Rabobank"}, doc.Organizations())

	jsonPath := filepath.Join(dir, "entities.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"persons": ["Piet Jansen"]}`), 0644))
	_, err = LoadGazetteer(jsonPath)
	assert.NoError(t, err)

	_, err = LoadGazetteer(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
	_, err = LoadGazetteer("")
	assert.Error(t, err)
}

func TestStandalone(t *testing.T) {
	tagger := &countingTagger{inner: testGazetteer()}
	s := NewStandalone(tagger)

	ok, err := s.IsStandaloneOrg(context.Background(), "Stichting Zonnestraal")
	require.NoError(t, err)
	assert.True(t, ok)

	// Two organizations in one candidate fail the check
	ok, err = s.IsStandaloneOrg(context.Background(), "Zonnestraal Bedrijfsnaam B.V.")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.IsStandaloneOrg(context.Background(), "Jan de Vries")
	require.NoError(t, err)
	assert.False(t, ok)

	_, _ = s.IsStandaloneOrg(context.Background(), "Stichting Zonnestraal")
	assert.Equal(t, 3, tagger.calls)
}

func TestStandalone_Error(t *testing.T) {
	s := NewStandalone(&countingTagger{err: errors.New("offline")})
	_, err := s.IsStandaloneOrg(context.Background(), "Rabobank")
	assert.Error(t, err)
}

type countingTagger struct {
	inner Tagger
	err   error
	calls int
}

func (c *countingTagger) Name() string { return "counting" }

func (c *countingTagger) Tag(ctx context.Context, text string) (*model.Document, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.inner.Tag(ctx, text)
}

func TestCachedTagger(t *testing.T) {
	l, _ := test.NewNullLogger()
	inner := &countingTagger{inner: testGazetteer()}
	c := NewCachedTagger(inner, cache.NewLayeredCache(time.Minute, t.TempDir(), time.Hour), 0, l)

	text := "Jan de Vries leidt Stichting Zonnestraal."
	first, err := c.Tag(context.Background(), text)
	require.NoError(t, err)
	second, err := c.Tag(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
	assert.Equal(t, "counting", c.Name())
}

func TestCachedTagger_CorruptEntry(t *testing.T) {
	l, hook := test.NewNullLogger()
	inner := &countingTagger{inner: testGazetteer()}
	mem := cache.NewMemoryCache(time.Minute, time.Minute)
	c := NewCachedTagger(inner, mem, 0, l)

	text := "Jan de Vries."
	require.NoError(t, mem.Set(cache.DocumentKey("counting", text), []byte{0xc1}, 0))

	doc, err := c.Tag(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, []string{"Jan de Vries"}, doc.Persons())
	assert.Equal(t, 1, inner.calls)
	require.NotEmpty(t, hook.AllEntries())
	assert.Equal(t, "tag_cache_decode", hook.AllEntries()[0].Data["action"])
}

func TestLLMTagger(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		answer := `{"sentences":[{"index":0,"entities":[{"text":"Jan de Vries","type":"PER"}]},` +
			`{"index":1,"entities":[{"text":"Rabobank","type":"ORG"},{"text":"ING","type":"ORG"}]}]}`
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":    "llama3.1:8b",
			"response": answer,
			"done":     true,
		})
	}))
	defer server.Close()

	extractor, err := llm.NewExtractor(llm.Config{Provider: "ollama", BaseURL: server.URL, Model: "llama3.1:8b", BatchSize: 10})
	require.NoError(t, err)

	l, hook := test.NewNullLogger()
	tagger, err := NewLLMTagger(extractor, l)
	require.NoError(t, err)
	assert.Equal(t, "llm:ollama", tagger.Name())

	doc, err := tagger.Tag(context.Background(), "Jan de Vries is directeur. Wij danken Rabobank.")
	require.NoError(t, err)
	assert.Equal(t, []string{"Jan de Vries"}, doc.Persons())
	assert.Equal(t, []string{"Rabobank"}, doc.Organizations())

	// ING does not occur in the text
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, 1, hook.LastEntry().Data["rejected"])
}

func TestNewLLMTagger_Disabled(t *testing.T) {
	extractor, err := llm.NewExtractor(llm.Config{})
	require.NoError(t, err)
	_, err = NewLLMTagger(extractor, nil)
	assert.Error(t, err)
}

func TestNew(t *testing.T) {
	l, _ := test.NewNullLogger()

	_, err := New(model.TaggerConfig{Kind: "spacy"}, model.FetchConfig{}, l)
	assert.ErrorIs(t, err, ErrUnknownTagger)

	tagger, err := New(model.TaggerConfig{Kind: "prose"}, model.FetchConfig{}, l)
	require.NoError(t, err)
	assert.Equal(t, "prose", tagger.Name())

	path := filepath.Join(t.TempDir(), "g.yaml")
	require.NoError(t, os.WriteFile(path, []byte("persons: [Jan]\n"), 0644))
	tagger, err = New(model.TaggerConfig{Kind: "gazetteer", Gazetteer: path, CacheTTL: time.Minute}, model.FetchConfig{}, l)
	require.NoError(t, err)
	_, cached := tagger.(*CachedTagger)
	assert.True(t, cached)
}

func TestProseLabel(t *testing.T) {
	kind, ok := proseLabel("PERSON")
	assert.True(t, ok)
	assert.Equal(t, model.EntityPerson, kind)

	kind, ok = proseLabel("GPE")
	assert.True(t, ok)
	assert.Equal(t, model.EntityOrganization, kind)

	_, ok = proseLabel("DATE")
	assert.False(t, ok)
}
