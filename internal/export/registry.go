// Package export writes result tables to files. The format is chosen by file
// extension; unknown extensions fall back to tab-separated text.
package export

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Veraticus/vibir/internal/common"
	"github.com/Veraticus/vibir/internal/model"
)

// WriterFunc renders rows in one format.
type WriterFunc func(w io.Writer, rows []model.ResultRow) error

// Supported extensions.
const (
	FormatSpreadsheet = ".xlsx"
	FormatMarkdown    = ".mc"
	FormatText        = ".txt"
)

// writers maps a lower-case extension to its writer. Registered in init blocks.
var writers = map[string]WriterFunc{}

// Register installs fn for ext, replacing any previous writer.
func Register(ext string, fn WriterFunc) {
	writers[strings.ToLower(ext)] = fn
}

// Formats lists the registered extensions.
func Formats() []string {
	out := make([]string, 0, len(writers))
	for ext := range writers {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

// FormatFor returns the extension whose writer handles path.
func FormatFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := writers[ext]; ok {
		return ext
	}
	return FormatText
}

// Write renders rows in format to w.
func Write(w io.Writer, format string, rows []model.ResultRow) error {
	fn, ok := writers[strings.ToLower(format)]
	if !ok {
		return fmt.Errorf("unknown export format %q (no writer registered)", format)
	}
	return fn(w, rows)
}

// Export writes rows to path and returns the absolute path written. The file
// is replaced atomically.
func Export(path string, rows []model.ResultRow) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("no output filename given")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	format := FormatFor(abs)
	var buf bytes.Buffer
	if err := Write(&buf, format, rows); err != nil {
		return "", err
	}
	if err := common.WriteFileAtomic(abs, buf.Bytes(), 0644); err != nil {
		return "", err
	}

	slog.Debug("Exported results", "path", abs, "format", format, "rows", len(rows))
	return abs, nil
}
