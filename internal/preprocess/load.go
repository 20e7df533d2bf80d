package preprocess

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

// ErrUnsupported is returned for files that are not pdf, html or txt
var ErrUnsupported = errors.New("unsupported file type")

// Supported reports whether Load can read path
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".html", ".htm", ".txt":
		return true
	}
	return false
}

// Load extracts the raw text of a report file in NFC form
func Load(path string) (string, error) {
	var (
		text string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = PDFText(path)
	case ".html", ".htm":
		f, oerr := os.Open(path)
		if oerr != nil {
			return "", fmt.Errorf("open %s: %w", path, oerr)
		}
		defer func() { _ = f.Close() }()
		text, err = HTMLText(f)
	case ".txt":
		var data []byte
		data, err = os.ReadFile(path)
		text = string(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	return Normalize(text), nil
}

// PDFText returns the text of all pages, one page per line block
func PDFText(path string) (text string, err error) {
	// The pdf reader panics on some malformed streams
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("read pdf: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		s, perr := p.GetPlainText(nil)
		if perr != nil {
			return "", fmt.Errorf("page %d: %w", i, perr)
		}
		pages = append(pages, s)
	}
	return strings.Join(pages, "\n"), nil
}

// block elements end a line; paragraphs and headings end a block
var (
	lineElements = map[string]bool{
		"br": true, "li": true, "tr": true, "div": true, "dt": true, "dd": true,
	}
	blockElements = map[string]bool{
		"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
		"table": true, "ul": true, "ol": true, "section": true, "article": true,
	}
)

// HTMLText extracts the visible text of an HTML page, keeping the block
// structure as line ends and blank lines
func HTMLText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.Join(strings.Fields(n.Data), " ")
			if text != "" {
				if buf.Len() > 0 && !strings.HasSuffix(buf.String(), "\n") {
					buf.WriteString(" ")
				}
				buf.WriteString(text)
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode {
			switch {
			case blockElements[n.Data]:
				endLine(&buf, "\n\n")
			case lineElements[n.Data]:
				endLine(&buf, "\n")
			}
		}
	}
	walk(doc)
	return strings.TrimSpace(buf.String()), nil
}

// endLine terminates the current line without stacking more than one
// blank line
func endLine(buf *strings.Builder, sep string) {
	s := buf.String()
	if s == "" || strings.HasSuffix(s, "\n\n") {
		return
	}
	if strings.HasSuffix(s, "\n") {
		if sep == "\n\n" {
			buf.WriteString("\n")
		}
		return
	}
	buf.WriteString(sep)
}
