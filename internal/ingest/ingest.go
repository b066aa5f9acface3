// Package ingest reads rewrite input from plain text, Markdown, PDF and DOCX
// files and returns it as a list of paragraphs.
package ingest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/valpere/humanizer/internal/chunker"
	"github.com/valpere/humanizer/internal/markdown"
)

// Format names a supported input format.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatDOCX     Format = "docx"
)

// ErrUnsupported is returned for file extensions no parser handles.
var ErrUnsupported = errors.New("unsupported file type")

// Document is parsed input.
type Document struct {
	Title      string
	Path       string
	Format     Format
	Paragraphs []string
}

// Text returns the paragraphs separated by blank lines.
func (d *Document) Text() string {
	return strings.Join(d.Paragraphs, "\n\n")
}

// FormatOf maps a file name to its format by extension. Names without an
// extension are plain text.
func FormatOf(name string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case "", ".txt", ".text":
		return FormatText, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	case ".pdf":
		return FormatPDF, nil
	case ".docx":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, ext)
	}
}

// ParseFile reads and parses the file at path.
func ParseFile(path string) (*Document, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	doc, err := Parse(format, raw)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return doc, nil
}

// ParseReader parses everything read from r as format.
func ParseReader(format Format, r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return Parse(format, raw)
}

// Parse parses raw bytes as format.
func Parse(format Format, raw []byte) (*Document, error) {
	var (
		paras []string
		err   error
	)
	switch format {
	case FormatText:
		paras = chunker.Paragraphs(string(raw))
	case FormatMarkdown:
		paras = markdown.Paragraphs(raw)
	case FormatPDF:
		paras, err = parsePDF(raw)
	case FormatDOCX:
		paras, err = parseDOCX(raw)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, format)
	}
	if err != nil {
		return nil, err
	}
	return &Document{Format: format, Paragraphs: paras}, nil
}

func parseDOCX(raw []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open docx zip: %w", err)
	}

	var xmlData []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open document.xml: %w", err)
		}
		xmlData, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read document.xml: %w", err)
		}
		break
	}
	if len(xmlData) == 0 {
		return nil, fmt.Errorf("word/document.xml not found")
	}

	decoder := xml.NewDecoder(bytes.NewReader(xmlData))
	var (
		paras  []string
		b      strings.Builder
		inText bool
	)
	flush := func() {
		if s := normalizeWhitespace(b.String()); s != "" {
			paras = append(paras, s)
		}
		b.Reset()
	}
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab", "br":
				b.WriteByte(' ')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				flush()
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	flush()
	return paras, nil
}

func parsePDF(raw []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	var paras []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		for _, para := range chunker.Paragraphs(content) {
			if s := normalizeWhitespace(para); s != "" {
				paras = append(paras, s)
			}
		}
	}
	if len(paras) == 0 {
		return nil, fmt.Errorf("no extractable text found in pdf")
	}
	return paras, nil
}

func normalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
