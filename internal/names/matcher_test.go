package names

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAbbreviate(t *testing.T) {
	m := NewDutchMatcher()
	tests := []struct {
		name string
		n    int
		want string
	}{
		{"Jane Doe", 2, "J Doe "},
		{"Jan de Wit", 2, "J de Wit "},
		{"Jan Piet de Wit", 2, "J P de Wit "},
		{"Jan Piet van der Wit", 2, "J P van der Wit "},
		{"Jan Piet van der Wit", 3, "J P van der Wit "},
		{"jane elaine doe", 1, "j e doe "},
		{"doe", 1, "doe "},
		{"", 1, ""},
	}

	for _, tt := range tests {
		if got := m.Abbreviate(tt.name, tt.n); got != tt.want {
			t.Errorf("Abbreviate(%q, %d): expected %q, got %q", tt.name, tt.n, tt.want, got)
		}
	}
}

func TestSimilarity(t *testing.T) {
	m := NewDutchMatcher()
	tests := []struct {
		a, b      string
		score     int
		threshold int
	}{
		{"Jane Doe", "Jane Doe", 100, 90},
		{"Jane Doe", "Jane", 100, 100},
		{"J. Doe", "J.P. Doe", 100, 90},
		{"J. Doe", "Jane Doe", 100, 95},
		{"Jane Doe", "J. Doe", 100, 95},
	}

	for _, tt := range tests {
		score, threshold := m.Similarity(tt.a, tt.b)
		if score != tt.score || threshold != tt.threshold {
			t.Errorf("Similarity(%q, %q): expected (%d, %d), got (%d, %d)",
				tt.a, tt.b, tt.score, tt.threshold, score, threshold)
		}
	}
}

func TestSimilarity_DifferentPeople(t *testing.T) {
	m := NewDutchMatcher()
	pairs := [][2]string{
		{"jane doe", "william doe"},
		{"j. doe", "william doe"},
		{"james brown", "james white"},
	}
	for _, p := range pairs {
		if score, threshold := m.Similarity(p[0], p[1]); score >= threshold {
			t.Errorf("Expected %q and %q to differ, got score %d >= %d", p[0], p[1], score, threshold)
		}
	}
}

func TestTokenSetRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"Jane Doe", "doe jane", 100},
		{"Jane Elaine Doe", "Jane Doe", 100},
		{"José Pérez", "jose perez", 100},
		{"doe", "doe j", 100},
		{"w doe", "j doe", 80},
		{"", "Jane", 0},
		{"...", "Jane", 0},
	}

	for _, tt := range tests {
		if got := TokenSetRatio(tt.a, tt.b); got != tt.want {
			t.Errorf("TokenSetRatio(%q, %q): expected %d, got %d", tt.a, tt.b, tt.want, got)
		}
	}
}

func TestRatio(t *testing.T) {
	if got := ratio("doe", "doe j"); got != 75 {
		t.Errorf("Expected 75, got %d", got)
	}
	if got := ratio("doe w", "doe j"); got != 80 {
		t.Errorf("Expected 80, got %d", got)
	}
	if got := ratio("", ""); got != 100 {
		t.Errorf("Expected 100 for equal empty strings, got %d", got)
	}
}

func TestStripTitles(t *testing.T) {
	m := NewDutchMatcher()
	stripped, removed := m.StripTitles([]string{"Prof. Dr. Jane Doe", "John Doe, PhD", "Dr. J."})

	assert.Equal(t, []string{"  jane doe", "john doe, "}, stripped)
	assert.Equal(t, []string{"Dr. J."}, removed)
}

func TestFindDuplicatePersons(t *testing.T) {
	input := []string{"Dr. Jane Doe", "Jane Doe", "J. Doe", "Jane Elaine Doe", "J.E. Doe",
		"Jane White", "William Doe", "Jane"}

	got := FindDuplicatePersons(input)

	want := [][]string{
		{"Jane Elaine Doe", "Dr. Jane Doe", "Jane Doe", "J.E. Doe", "J. Doe", "Jane"},
		{"Jane White"},
		{"William Doe"},
	}
	assert.Equal(t, want, got)
}

func TestFindDuplicatePersons_SharedFirstName(t *testing.T) {
	got := FindDuplicatePersons([]string{"James Brown", "James White", "James"})

	require.Len(t, got, 2)
	for _, g := range got {
		if contains(g, "James Brown") && contains(g, "James White") {
			t.Fatalf("Expected James Brown and James White apart, got %v", got)
		}
	}
	assertCoverage(t, []string{"James Brown", "James White", "James"}, got)
}

func TestFindDuplicatePersons_Idempotent(t *testing.T) {
	input := []string{"mr. A.B. de Groot", "Anna de Groot", "A. de Groot", "Bert de Groot",
		"B. de Groot", "Carla Jansen", "C. Jansen", "Jansen", "Dirk", "Dr. E."}

	first := FindDuplicatePersons(input)
	second := FindDuplicatePersons(input)
	assert.Equal(t, first, second)

	for i, g := range first {
		require.NotEmpty(t, g, "group %d is empty", i)
	}
	assertDisjoint(t, first)
}

func TestFindDuplicatePersons_Coverage(t *testing.T) {
	input := []string{"Jan de Vries", "J. de Vries", "Piet Bakker", "P. Bakker", "Klaas",
		"Maria van den Berg", "M. van den Berg"}

	got := FindDuplicatePersons(input)
	assertCoverage(t, input, got)
}

func TestFindDuplicatePersons_Empty(t *testing.T) {
	if got := FindDuplicatePersons(nil); len(got) != 0 {
		t.Errorf("Expected no groups, got %v", got)
	}
	got := FindDuplicatePersons([]string{"Jan", "Piet"})
	assert.Equal(t, [][]string{{"Jan"}, {"Piet"}}, got)
}

func TestCanonicalOrder(t *testing.T) {
	got := canonicalOrder([]string{"J. de Vries", "Dr. J.P. de Vries", "Jan de Vries"})
	assert.Equal(t, []string{"Jan de Vries", "Dr. J.P. de Vries", "J. de Vries"}, got)

	got = canonicalOrder([]string{"J. Doe", "Jo"})
	assert.Equal(t, []string{"J. Doe", "Jo"}, got)
}

func assertCoverage(t *testing.T, input []string, groups [][]string) {
	t.Helper()
	count := make(map[string]int)
	for _, g := range groups {
		for _, n := range g {
			count[n]++
		}
	}
	for _, n := range input {
		if count[n] != 1 {
			t.Errorf("Expected %q in exactly one group, found in %d: %v", n, count[n], groups)
		}
	}
}

func assertDisjoint(t *testing.T, groups [][]string) {
	t.Helper()
	seen := make(map[string]bool)
	for _, g := range groups {
		for _, n := range g {
			if seen[n] {
				t.Errorf("Expected %q in one group only: %v", n, groups)
			}
			seen[n] = true
		}
	}
}

func contains(group []string, name string) bool {
	for _, n := range group {
		if n == name {
			return true
		}
	}
	return false
}
