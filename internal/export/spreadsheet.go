package export

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Veraticus/vibir/internal/model"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet results are written to.
const SheetName = "Sheet1"

func init() {
	Register(FormatSpreadsheet, writeSpreadsheet)
}

// writeSpreadsheet writes an xlsx workbook with a header row. Frequencies and
// intensities are stored as numbers rounded for display.
func writeSpreadsheet(w io.Writer, rows []model.ResultRow) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("Failed to close workbook", "error", err)
		}
	}()

	header := make([]any, 0, len(model.ResultColumns()))
	for _, c := range model.ResultColumns() {
		header = append(header, c)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		values := []any{
			row.Mode,
			row.DisplayFrequency().InexactFloat64(),
			row.DisplayIntensity().InexactFloat64(),
			row.Count(model.ContributionBond),
			row.Count(model.ContributionAngle),
			row.Count(model.ContributionOut),
			row.Count(model.ContributionTorsion),
			row.TopContributions,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write mode %d: %w", row.Mode, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
