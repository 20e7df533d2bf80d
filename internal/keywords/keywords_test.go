package keywords

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMainJobsOrder(t *testing.T) {
	assert.Equal(t, []string{
		"directeur", "bestuur", "rvt", "ledenraad",
		"kascommissie", "controlecommissie", "ambassadeur",
	}, MainJobs().Tags())

	assert.Equal(t, -1, MainJobsNoAmbassador().Index("ambassadeur"))
	assert.Equal(t, -1, MainJobsBackup().Index("directeur"))
	assert.Equal(t, []string{"bestuur", "rvt", "ledenraad", "kascommissie", "controlecommissie"},
		MainJobsBackupNoAmbassador().Tags())
}

func TestSubJobsOrder(t *testing.T) {
	tags := SubJobs().Tags()
	if tags[0] != "directeur" {
		t.Errorf("Expected directeur first, got %s", tags[0])
	}
	// vicevoorzitter must win ties over voorzitter
	assert.Less(t, SubJobs().Index("vicevoorzitter"), SubJobs().Index("voorzitter"))
}

func TestAccessorsReturnCopies(t *testing.T) {
	jobs := MainJobs()
	jobs[0].Words[0] = "changed"
	jobs[0].Tag = "changed"

	fresh := MainJobs()
	assert.Equal(t, "directeur", fresh[0].Tag)
	assert.Equal(t, "directeur", fresh[0].Words[0])

	titles := Titles()
	titles[0] = "changed"
	assert.Equal(t, "prof.", Titles()[0])
}

func TestWithoutKeepsOrder(t *testing.T) {
	got := SubJobs().Without("lid", "directeur").Tags()
	assert.Equal(t, []string{
		"vicevoorzitter", "voorzitter", "penningmeester",
		"secretaris", "commissaris", "adviseur",
	}, got)
}

func TestRoleWords(t *testing.T) {
	words := RoleWords()
	assert.Contains(t, words, "raad van toezicht")
	assert.Contains(t, words, "penningmeester")
}

func TestOrgPatternsCompile(t *testing.T) {
	var patterns []string
	for _, k := range OrgTrueKeys() {
		patterns = append(patterns, k.Pattern)
	}
	for _, k := range OrgTrueCapKeys() {
		patterns = append(patterns, k.Pattern)
	}
	patterns = append(patterns, OrgFalseKeys()...)
	patterns = append(patterns, StripArticles()...)

	for _, p := range patterns {
		if _, err := regexp.Compile(p); err != nil {
			t.Errorf("Pattern %q does not compile: %v", p, err)
		}
	}
}

func TestSearchStrip(t *testing.T) {
	words := SearchStrip()
	assert.Contains(t, words, "voorzitter")
	assert.Contains(t, words, "rvc")
	assert.NotContains(t, words, "raad")
}
