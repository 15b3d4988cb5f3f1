// Package reader turns uploaded declaration documents into the flat line
// text the position parser consumes. Every format is reduced to one text
// line per table cell or paragraph, top-to-bottom, left-to-right.
package reader

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Reader extracts raw line text from one document format.
type Reader interface {
	Read(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate reader for a filename.
func ForFile(filename string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextReader{}, nil
	case ".md", ".markdown":
		return &MarkdownReader{}, nil
	case ".csv":
		return &CSVReader{}, nil
	case ".html", ".htm":
		return &HTMLReader{}, nil
	case ".pdf":
		return &PDFReader{}, nil
	case ".docx":
		return &DOCXReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}
