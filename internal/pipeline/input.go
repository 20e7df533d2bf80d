package pipeline

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"

	"github.com/ppiankov/nedextract/internal/fetch"
	"github.com/ppiankov/nedextract/internal/preprocess"
)

// ErrNoInput is returned when no input documents were selected
var ErrNoInput = errors.New("no input documents")

// Input is one document to process: a local file, or a URL that is
// downloaded first
type Input struct {
	Path string `json:"path,omitempty"`
	URL  string `json:"url,omitempty"`
}

// Name is the file name reported for the input
func (in Input) Name() string {
	if in.Path != "" {
		return filepath.Base(in.Path)
	}
	if u, err := url.Parse(in.URL); err == nil {
		if name := path.Base(u.Path); name != "." && name != "/" {
			return name
		}
	}
	return in.URL
}

// Sources are the input selections of one run. Every non-empty field adds
// documents.
type Sources struct {
	Directory string
	File      string
	URL       string
	URLFile   string
}

// Resolve lists the inputs selected by src. Directories contribute their
// supported files in name order, without descending into subdirectories.
func Resolve(src Sources) ([]Input, error) {
	var inputs []Input

	if src.Directory != "" {
		entries, err := os.ReadDir(src.Directory)
		if err != nil {
			return nil, fmt.Errorf("read directory: %w", err)
		}
		var files []string
		for _, e := range entries {
			if e.IsDir() || !preprocess.Supported(e.Name()) {
				continue
			}
			files = append(files, filepath.Join(src.Directory, e.Name()))
		}
		sort.Strings(files)
		for _, f := range files {
			inputs = append(inputs, Input{Path: f})
		}
	}

	if src.File != "" {
		if !preprocess.Supported(src.File) {
			return nil, fmt.Errorf("%w: %s", preprocess.ErrUnsupported, src.File)
		}
		if _, err := os.Stat(src.File); err != nil {
			return nil, fmt.Errorf("input file: %w", err)
		}
		inputs = append(inputs, Input{Path: src.File})
	}

	if src.URL != "" {
		inputs = append(inputs, Input{URL: src.URL})
	}

	if src.URLFile != "" {
		urls, err := fetch.ReadURLs(src.URLFile)
		if err != nil {
			return nil, fmt.Errorf("read URLs: %w", err)
		}
		for _, u := range urls {
			inputs = append(inputs, Input{URL: u})
		}
	}

	if len(inputs) == 0 {
		return nil, ErrNoInput
	}
	return inputs, nil
}
