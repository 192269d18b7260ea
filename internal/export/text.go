package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/vibir/internal/model"
)

func init() {
	Register(FormatText, writeTSV)
	Register(FormatMarkdown, writeMarkdown)
}

// writeTSV writes a header and one tab-separated line per row.
func writeTSV(w io.Writer, rows []model.ResultRow) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(model.ResultColumns()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row.Cells()); err != nil {
			return fmt.Errorf("failed to write mode %d: %w", row.Mode, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeMarkdown writes a pipe-delimited table:
//
//	| Mode | Freq_cm-1 | ... |
//	| --- | --- | ... |
//	| 7 | 1594.83 | ... |
func writeMarkdown(w io.Writer, rows []model.ResultRow) error {
	columns := model.ResultColumns()

	if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(columns, " | ")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if _, err := fmt.Fprintf(w, "|%s\n", strings.Repeat(" --- |", len(columns))); err != nil {
		return fmt.Errorf("failed to write separator: %w", err)
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(row.Cells(), " | ")); err != nil {
			return fmt.Errorf("failed to write mode %d: %w", row.Mode, err)
		}
	}
	return nil
}
