package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ppiankov/nedextract/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPeopleHeader(t *testing.T) {
	h := PeopleHeader()
	assert.Len(t, h, 91)
	assert.Equal(t, "directeur1", h[6])
	assert.Equal(t, "rvt1", h[11])
	assert.Equal(t, "controlecommissie5", h[90])
}

func TestColumns(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		n     int
		want  []string
	}{
		{"fits", []string{"a"}, 3, []string{"a", "", ""}},
		{"exact", []string{"a", "b"}, 2, []string{"a", "b"}},
		{"overflow", []string{"a", "b", "c", "d", "e", "f"}, 5, []string{"a", "b", "c", "d", "e\nf\n"}},
		{"none", nil, 2, []string{"", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Columns(tt.items, tt.n))
		})
	}
}

func TestJoinLines(t *testing.T) {
	assert.Equal(t, "a\nb\n", JoinLines([]string{"a", "b"}))
	assert.Equal(t, "", JoinLines(nil))
}

func testReports() []model.Report {
	return []model.Report{
		{
			File:         "/data/b.pdf",
			Organization: "Stichting B",
			Persons:      []string{"Jan", "Piet"},
			People: model.PersonsResult{
				Directors:      []string{"Jan"},
				ExecutiveBoard: []string{"Piet"},
				Positions:      []string{"Jan - directeur - ", "Piet - bestuur - voorzitter"},
			},
			Sector: "Natuur",
			RelatedOrgs: []model.OrgMention{
				{Name: "Rabobank", Mentions: 2},
				{Name: "KWF", Mentions: 1, Matched: "KWF", ANBI: &model.ANBIRecord{RSIN: "004", StatutoryName: "Stichting KWF Kankerbestrijding", ShortBusinessName: "KWF"}},
			},
		},
		{File: "/data/a.pdf"},
	}
}

func TestPeopleRow(t *testing.T) {
	row := PeopleRow(testReports()[0])
	require.Len(t, row, 91)
	assert.Equal(t, "b.pdf", row[0])
	assert.Equal(t, "Jan\nPiet\n", row[2])
	assert.Equal(t, "Jan\nPiet\n", row[4])
	assert.Equal(t, "Jan", row[6])
	assert.Equal(t, "Piet", row[31])
}

func TestTables(t *testing.T) {
	tables := Tables(model.Tasks{model.TaskAll}, testReports())
	require.Len(t, tables, 3)

	assert.Equal(t, "people", tables[0].Name)
	assert.Equal(t, "a.pdf", tables[0].Rows[0][0])

	assert.Equal(t, []string{"b.pdf", "Stichting B", "Natuur"}, tables[1].Rows[1])

	orgs := tables[2].Rows
	require.Len(t, orgs, 2)
	assert.Equal(t, []string{"b.pdf", "KWF", "1", "KWF", "004", "Stichting KWF Kankerbestrijding", "KWF"}, orgs[0])
	assert.Equal(t, []string{"b.pdf", "Rabobank", "2", "", "", "", ""}, orgs[1])

	tables = Tables(model.Tasks{model.TaskSectors}, testReports())
	require.Len(t, tables, 1)
	assert.Equal(t, "general", tables[0].Name)
}

func TestOverflowing(t *testing.T) {
	p := model.PersonsResult{Directors: []string{"a", "b", "c", "d", "e", "f"}}
	assert.Equal(t, []string{"directeur (6 > 5)"}, Overflowing(p))
	assert.Empty(t, Overflowing(model.PersonsResult{}))
}

func fixedNow() time.Time {
	return time.Date(2023, 5, 17, 9, 30, 0, 0, time.UTC)
}

func TestXLSXWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Output")
	w := &XLSXWriter{Dir: dir, Now: fixedNow}

	paths, err := w.Write(model.Tasks{model.TaskPeople, model.TaskOrgs}, testReports())
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "output20230517_093000_people.xlsx"),
		filepath.Join(dir, "output20230517_093000_related_organizations.xlsx"),
	}, paths)

	f, err := excelize.OpenFile(paths[0])
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("people")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Input_file", rows[0][0])
	assert.Equal(t, "b.pdf", rows[2][0])
	assert.Equal(t, "Jan", rows[2][6])
}

func TestJSONWriter(t *testing.T) {
	dir := t.TempDir()
	w := &JSONWriter{Dir: dir, Now: fixedNow}

	paths, err := w.Write(model.Tasks{model.TaskAll}, testReports())
	require.NoError(t, err)
	require.Len(t, paths, 1)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	var doc struct {
		Reports []model.Report `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Reports, 2)
	assert.Equal(t, "Natuur", doc.Reports[0].Sector)
}

func TestNew(t *testing.T) {
	w, err := New("XLSX", "out")
	require.NoError(t, err)
	assert.IsType(t, &XLSXWriter{}, w)

	w, err = New("json", "out")
	require.NoError(t, err)
	assert.IsType(t, &JSONWriter{}, w)

	_, err = New("csv", "out")
	assert.Error(t, err)
}
