// Package anbi matches related organizations against the register of
// public benefit institutions (ANBI).
package anbi

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/nedextract/internal/model"
)

var requiredColumns = []string{"rsin", "currentStatutoryName", "shortBusinessName"}

// Registry is an in-memory ANBI register
type Registry struct {
	// options maps a lowercased name to the first matching register name
	// in sorted order
	options     map[string]string
	byStatutory map[string][]model.ANBIRecord
	byShort     map[string][]model.ANBIRecord
	size        int
}

// Load reads the register from a CSV file with the columns rsin,
// currentStatutoryName and shortBusinessName
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open anbi file: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read anbi file %s: %w", path, err)
	}
	return New(records), nil
}

// Read parses register records from CSV
func Read(r io.Reader) ([]model.ANBIRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file")
		}
		return nil, err
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}

	get := func(row []string, name string) string {
		if i := cols[name]; i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var out []model.ANBIRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, model.ANBIRecord{
			RSIN:              get(row, "rsin"),
			StatutoryName:     get(row, "currentStatutoryName"),
			ShortBusinessName: get(row, "shortBusinessName"),
		})
	}
	return out, nil
}

// New indexes records
func New(records []model.ANBIRecord) *Registry {
	r := &Registry{
		options:     make(map[string]string),
		byStatutory: make(map[string][]model.ANBIRecord),
		byShort:     make(map[string][]model.ANBIRecord),
		size:        len(records),
	}

	var names []string
	for _, rec := range records {
		if rec.StatutoryName != "" {
			r.byStatutory[rec.StatutoryName] = append(r.byStatutory[rec.StatutoryName], rec)
			names = append(names, rec.StatutoryName)
		}
		if rec.ShortBusinessName != "" {
			r.byShort[rec.ShortBusinessName] = append(r.byShort[rec.ShortBusinessName], rec)
			names = append(names, rec.ShortBusinessName)
		}
	}
	sort.Strings(names)
	for _, n := range names {
		key := strings.ToLower(n)
		if _, ok := r.options[key]; !ok {
			r.options[key] = n
		}
	}
	return r
}

// Len returns the number of register records
func (r *Registry) Len() int {
	return r.size
}

// Match returns the register name equal to name, ignoring case, or equal
// to "stichting " + name. When both exist the one that sorts first wins.
func (r *Registry) Match(name string) (string, bool) {
	lower := strings.ToLower(name)
	direct, okDirect := r.options[lower]
	prefixed, okPrefixed := r.options["stichting "+lower]

	switch {
	case okDirect && okPrefixed:
		if prefixed < direct {
			return prefixed, true
		}
		return direct, true
	case okDirect:
		return direct, true
	case okPrefixed:
		return prefixed, true
	}
	return "", false
}

// Lookup returns the matched register name and its records. Records whose
// statutory name matches are preferred over short business name matches.
func (r *Registry) Lookup(name string) (string, []model.ANBIRecord) {
	matched, ok := r.Match(name)
	if !ok {
		return "", nil
	}
	if recs := r.byStatutory[matched]; len(recs) > 0 {
		return matched, recs
	}
	return matched, r.byShort[matched]
}

// Enrich returns one row per register record of each mention. Mentions
// without a match are kept once, without a record.
func (r *Registry) Enrich(mentions []model.OrgMention) []model.OrgMention {
	out := make([]model.OrgMention, 0, len(mentions))
	for _, m := range mentions {
		matched, recs := r.Lookup(m.Name)
		m.Matched = matched
		if len(recs) == 0 {
			out = append(out, m)
			continue
		}
		for i := range recs {
			row := m
			rec := recs[i]
			row.ANBI = &rec
			out = append(out, row)
		}
	}
	return out
}
