package cache

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/nedextract/internal/model"
)

func TestDocumentKey(t *testing.T) {
	a := DocumentKey("prose", "Jan de Vries is voorzitter.")
	b := DocumentKey("prose", "Jan de Vries is voorzitter.")
	c := DocumentKey("llm", "Jan de Vries is voorzitter.")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "v1-"))
	assert.NotEqual(t, DocumentKey("ab", "c"), DocumentKey("a", "bc"))
}

func TestDiskCache_RoundTrip(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := DocumentKey("gazetteer", "tekst")

	_, found := c.Get(key)
	assert.False(t, found)

	require.NoError(t, c.Set(key, []byte("tagged"), 0))
	val, found := c.Get(key)
	require.True(t, found)
	assert.Equal(t, []byte("tagged"), val)

	require.NoError(t, c.Delete(key))
	_, found = c.Get(key)
	assert.False(t, found)

	// Deleting a missing key is not an error
	assert.NoError(t, c.Delete(key))
}

func TestDiskCache_Expired(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)
	key := DocumentKey("gazetteer", "oud")

	require.NoError(t, c.Set(key, []byte("x"), -time.Second))
	_, found := c.Get(key)
	assert.False(t, found)
	_, err := os.Stat(c.path(key))
	assert.True(t, os.IsNotExist(err))
}

func TestDiskCache_CorruptEntry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), 0)
	key := DocumentKey("gazetteer", "kapot")

	require.NoError(t, os.MkdirAll(filepath.Dir(c.path(key)), 0o755))
	require.NoError(t, os.WriteFile(c.path(key), []byte{0xc1}, 0o644))

	_, found := c.Get(key)
	assert.False(t, found)
	_, err := os.Stat(c.path(key))
	assert.True(t, os.IsNotExist(err), "corrupt entry should be removed")
}

func TestDiskCache_MisplacedEntry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), 0)
	a := DocumentKey("gazetteer", "a")
	b := DocumentKey("gazetteer", "b")
	require.NoError(t, c.Set(a, []byte("voor a"), 0))

	require.NoError(t, os.MkdirAll(filepath.Dir(c.path(b)), 0o755))
	require.NoError(t, os.Rename(c.path(a), c.path(b)))

	_, found := c.Get(b)
	assert.False(t, found)
}

func TestDiskCache_Prune(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Hour)

	fresh := DocumentKey("gazetteer", "vers")
	stale := DocumentKey("gazetteer", "oud")
	broken := DocumentKey("gazetteer", "kapot")
	require.NoError(t, c.Set(fresh, []byte("1"), 0))
	require.NoError(t, c.Set(stale, []byte("2"), time.Minute))
	require.NoError(t, os.MkdirAll(filepath.Dir(c.path(broken)), 0o755))
	require.NoError(t, os.WriteFile(c.path(broken), []byte("niet msgpack"), 0o644))

	c.now = func() time.Time { return time.Now().Add(10 * time.Minute) }
	removed, err := c.Prune()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	_, found := c.Get(fresh)
	assert.True(t, found)

	removed, err = NewDiskCache(filepath.Join(dir, "ontbreekt"), 0).Prune()
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	require.NoError(t, c.Set("k", []byte("v"), 0))

	val, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, []byte("v"), val)
	_, found = c.Get("missing")
	assert.False(t, found)

	assert.Equal(t, Stats{Hits: 1, Misses: 1, Entries: 1}, c.Stats())

	require.NoError(t, c.Clear())
	_, found = c.Get("k")
	assert.False(t, found)
	assert.Equal(t, 0, c.Len())
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	first := NewLayeredCache(time.Minute, dir, time.Hour)
	require.NoError(t, first.Set("v1-abcd", []byte("v"), 0))

	// A fresh process only has the disk layer
	second := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := second.Get("v1-abcd")
	require.True(t, found)
	assert.Equal(t, []byte("v"), val)

	_, found = second.Get("v1-abcd")
	require.True(t, found)
	_, found = second.Get("v1-ffff")
	require.False(t, found)

	stats := second.Stats()
	if stats.Hits != 2 || stats.DiskHits != 1 || stats.Misses != 1 {
		t.Errorf("Expected 2 hits, 1 disk hit and 1 miss, got %+v", stats)
	}

	require.NoError(t, second.Clear())
	_, found = second.Get("v1-abcd")
	assert.False(t, found)
}

func TestLayeredCache_MemoryOnly(t *testing.T) {
	c := NewLayeredCache(time.Minute, "", 0)
	require.NoError(t, c.Set("k", []byte("v"), 0))
	_, found := c.Get("k")
	assert.True(t, found)
	assert.NoError(t, c.Delete("k"))

	removed, err := c.Prune()
	assert.NoError(t, err)
	assert.Zero(t, removed)
}

func TestDocuments(t *testing.T) {
	store := NewMemoryCache(time.Minute, time.Minute)
	docs := NewDocuments(store, 0)
	text := "Jan de Vries leidt Stichting Zonnestraal."

	_, ok, err := docs.Get("gazetteer", text)
	require.NoError(t, err)
	assert.False(t, ok)

	doc := &model.Document{
		Text: text,
		Sentences: []model.Sentence{{
			Text: text,
			Entities: []model.Mention{
				{Text: "Jan de Vries", Type: model.EntityPerson},
				{Text: "Stichting Zonnestraal", Type: model.EntityOrganization},
			},
		}},
	}
	require.NoError(t, docs.Put("gazetteer", text, doc))

	got, ok, err := docs.Get("gazetteer", text)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"Jan de Vries"}, got.Persons())
	assert.Equal(t, []string{"Stichting Zonnestraal"}, got.Organizations())

	// Another tagger never sees this document
	_, ok, _ = docs.Get("prose", text)
	assert.False(t, ok)
}

func TestDocuments_Corrupt(t *testing.T) {
	store := NewMemoryCache(time.Minute, time.Minute)
	docs := NewDocuments(store, 0)
	require.NoError(t, store.Set(DocumentKey("gazetteer", "x"), []byte{0xc1}, 0))

	_, ok, err := docs.Get("gazetteer", "x")
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrCorrupt))

	// The entry is gone after the failed read
	_, found := store.Get(DocumentKey("gazetteer", "x"))
	assert.False(t, found)
}
