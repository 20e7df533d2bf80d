package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/nedextract/internal/model"
	"github.com/xuri/excelize/v2"
)

// Writer persists the results of a batch and returns the written paths
type Writer interface {
	Write(tasks model.Tasks, reports []model.Report) ([]string, error)
}

// New returns the writer for format ("xlsx" or "json")
func New(format, dir string) (Writer, error) {
	switch strings.ToLower(format) {
	case "", "xlsx":
		return &XLSXWriter{Dir: dir}, nil
	case "json":
		return &JSONWriter{Dir: dir}, nil
	default:
		return nil, fmt.Errorf("unknown output format: %s (supported: xlsx, json)", format)
	}
}

// Stamp is the timestamp used in output file names
func Stamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// XLSXWriter writes one workbook per table
type XLSXWriter struct {
	Dir string
	Now func() time.Time
}

// Write writes output<stamp>_<table>.xlsx for each selected table
func (w *XLSXWriter) Write(tasks model.Tasks, reports []model.Report) ([]string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	stamp := Stamp(now(w.Now))

	var paths []string
	for _, t := range Tables(tasks, reports) {
		path := filepath.Join(w.Dir, "output"+stamp+"_"+t.Name+".xlsx")
		if err := writeWorkbook(path, t); err != nil {
			return paths, fmt.Errorf("write %s: %w", t.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeWorkbook(path string, t Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", t.Name); err != nil {
		return err
	}
	sw, err := f.NewStreamWriter(t.Name)
	if err != nil {
		return err
	}

	rows := append([][]string{t.Header}, t.Rows...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}

// JSONWriter writes the reports of a batch as one JSON document
type JSONWriter struct {
	Dir string
	Now func() time.Time
}

// Write writes output<stamp>_reports.json
func (w *JSONWriter) Write(tasks model.Tasks, reports []model.Report) ([]string, error) {
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	doc := struct {
		Tasks   model.Tasks    `json:"tasks"`
		Reports []model.Report `json:"reports"`
	}{Tasks: tasks, Reports: reports}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode reports: %w", err)
	}
	path := filepath.Join(w.Dir, "output"+Stamp(now(w.Now))+"_reports.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("write reports: %w", err)
	}
	return []string{path}, nil
}

func now(f func() time.Time) time.Time {
	if f != nil {
		return f()
	}
	return time.Now()
}
