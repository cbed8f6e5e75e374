package services

import (
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

const pdfContentType = "application/pdf"

// knownTypes covers extensions missing from minimal system mime tables
var knownTypes = map[string]string{
	".txt":  "text/plain",
	".text": "text/plain",
	".log":  "text/plain",
	".pdf":  pdfContentType,
}

// FileInspector reads the metadata a file picker would report
type FileInspector struct {
	logger *log.Logger
}

// NewFileInspector creates a new file inspector
func NewFileInspector(logger *log.Logger) *FileInspector {
	return &FileInspector{logger: logger}
}

// Inspect stats path and derives its content type from the extension.
// Page counts are not read here; see PageCount.
func (fi *FileInspector) Inspect(path string) (*SelectedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	name := filepath.Base(path)
	return &SelectedFile{
		Path:        path,
		Name:        name,
		ContentType: ContentTypeFor(name),
		Size:        info.Size(),
	}, nil
}

// PageCount returns the number of pages of a PDF, or 0 if it cannot be read
func (fi *FileInspector) PageCount(path string) int {
	f, err := os.Open(path)
	if err != nil {
		fi.logf("page count: open %s: %v", path, err)
		return 0
	}
	defer f.Close()

	count, err := api.PageCount(f, nil)
	if err != nil {
		fi.logf("page count: %s: %v", path, err)
		return 0
	}
	return count
}

// ContentTypeFor maps a file name to the bare media type a browser would
// report for it, or "" when the extension is unknown
func ContentTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	if ct, ok := knownTypes[ext]; ok {
		return ct
	}
	mediaType, _, err := mime.ParseMediaType(mime.TypeByExtension(ext))
	if err != nil {
		return ""
	}
	return mediaType
}

func (fi *FileInspector) logf(format string, args ...interface{}) {
	if fi.logger != nil {
		fi.logger.Printf(format, args...)
	}
}
