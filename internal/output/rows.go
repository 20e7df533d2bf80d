// Package output writes batch results as spreadsheets or JSON.
package output

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ppiankov/nedextract/internal/model"
)

// Table is a header plus rows of equal width
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// role columns of the people table, in output order
var roleColumns = []struct {
	prefix string
	n      int
	list   func(model.PersonsResult) []string
}{
	{"directeur", 5, func(p model.PersonsResult) []string { return p.Directors }},
	{"rvt", 20, func(p model.PersonsResult) []string { return p.SupervisoryBoard }},
	{"bestuur", 20, func(p model.PersonsResult) []string { return p.ExecutiveBoard }},
	{"ledenraad", 30, func(p model.PersonsResult) []string { return p.MemberCouncil }},
	{"kascommissie", 5, func(p model.PersonsResult) []string { return p.AuditCommittee }},
	{"controlecommissie", 5, func(p model.PersonsResult) []string { return p.ControlCommittee }},
}

// PeopleHeader returns the people table columns
func PeopleHeader() []string {
	h := []string{"Input_file", "Organization", "Persons", "Ambassadors", "Board_members", "Job_description"}
	for _, rc := range roleColumns {
		for i := 1; i <= rc.n; i++ {
			h = append(h, rc.prefix+strconv.Itoa(i))
		}
	}
	return h
}

// PeopleRow flattens a report into the people table
func PeopleRow(r model.Report) []string {
	row := []string{
		filepath.Base(r.File),
		r.Organization,
		JoinLines(r.Persons),
		JoinLines(r.People.Ambassadors),
		JoinLines(r.People.Board()),
		JoinLines(r.People.Positions),
	}
	for _, rc := range roleColumns {
		row = append(row, Columns(rc.list(r.People), rc.n)...)
	}
	return row
}

// GeneralHeader returns the general table columns
func GeneralHeader() []string {
	return []string{"Input_file", "Organization", "Main_sector"}
}

// GeneralRow flattens a report into the general table
func GeneralRow(r model.Report) []string {
	return []string{filepath.Base(r.File), r.Organization, r.Sector}
}

// OrgsHeader returns the related organizations table columns
func OrgsHeader() []string {
	return []string{"Input_file", "mentioned_organization", "n_mentions", "matched_anbi",
		"rsin", "currentStatutoryName", "shortBusinessName"}
}

// OrgRows returns one row per related organization and register record
func OrgRows(r model.Report) [][]string {
	rows := make([][]string, 0, len(r.RelatedOrgs))
	for _, o := range r.RelatedOrgs {
		row := []string{filepath.Base(r.File), o.Name, strconv.Itoa(o.Mentions), o.Matched, "", "", ""}
		if o.ANBI != nil {
			row[4], row[5], row[6] = o.ANBI.RSIN, o.ANBI.StatutoryName, o.ANBI.ShortBusinessName
		}
		rows = append(rows, row)
	}
	return rows
}

// JoinLines writes every item followed by a newline
func JoinLines(items []string) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(it)
		b.WriteString("\n")
	}
	return b.String()
}

// Columns spreads items over n columns. When there are more items than
// columns the last column holds the remainder, newline separated.
func Columns(items []string, n int) []string {
	out := make([]string, n)
	for i, it := range items {
		if i == n-1 && len(items) > n {
			out[i] = JoinLines(items[i:])
			break
		}
		out[i] = it
	}
	return out
}

// Overflowing reports the role lists that do not fit their columns
func Overflowing(p model.PersonsResult) []string {
	var out []string
	for _, rc := range roleColumns {
		if l := len(rc.list(p)); l > rc.n {
			out = append(out, fmt.Sprintf("%s (%d > %d)", rc.prefix, l, rc.n))
		}
	}
	return out
}

// Tables builds the tables selected by tasks. Reports are sorted by file,
// organization rows by file and organization.
func Tables(tasks model.Tasks, reports []model.Report) []Table {
	sorted := append([]model.Report(nil), reports...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].File < sorted[j].File })

	var tables []Table
	if tasks.Has(model.TaskPeople) {
		t := Table{Name: "people", Header: PeopleHeader()}
		for _, r := range sorted {
			t.Rows = append(t.Rows, PeopleRow(r))
		}
		tables = append(tables, t)
	}
	if tasks.Has(model.TaskSectors) {
		t := Table{Name: "general", Header: GeneralHeader()}
		for _, r := range sorted {
			t.Rows = append(t.Rows, GeneralRow(r))
		}
		tables = append(tables, t)
	}
	if tasks.Has(model.TaskOrgs) {
		t := Table{Name: "related_organizations", Header: OrgsHeader()}
		for _, r := range sorted {
			t.Rows = append(t.Rows, OrgRows(r)...)
		}
		sort.SliceStable(t.Rows, func(i, j int) bool {
			if t.Rows[i][0] != t.Rows[j][0] {
				return t.Rows[i][0] < t.Rows[j][0]
			}
			return t.Rows[i][1] < t.Rows[j][1]
		})
		tables = append(tables, t)
	}
	return tables
}
