package sector

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ManifestRow names a training report and its sector
type ManifestRow struct {
	File   string
	Sector string
}

var manifestColumns = []string{"Bestand", "Sector", "Problem"}

// ReadManifest reads a training manifest from .xlsx or .csv. Rows without
// a sector or without a problem value are skipped. Relative file names are
// resolved against the manifest's directory.
func ReadManifest(path string) ([]ManifestRow, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		rows, err = readXLSX(path)
	case ".csv":
		rows, err = readCSV(path)
	default:
		return nil, fmt.Errorf("manifest %s: expected .xlsx or .csv", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("manifest %s: %w", path, ErrNoTrainingData)
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		cols[strings.TrimSpace(h)] = i
	}
	for _, c := range manifestColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("manifest %s: missing column %q", path, c)
		}
	}

	cell := func(row []string, name string) string {
		if i := cols[name]; i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	base := filepath.Dir(path)
	var out []ManifestRow
	for _, row := range rows[1:] {
		file, sector, problem := cell(row, "Bestand"), cell(row, "Sector"), cell(row, "Problem")
		if file == "" || sector == "" || problem == "" {
			continue
		}
		if !filepath.IsAbs(file) {
			file = filepath.Join(base, file)
		}
		out = append(out, ManifestRow{File: file, Sector: sector})
	}
	return out, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return f.GetRows(sheets[0])
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
