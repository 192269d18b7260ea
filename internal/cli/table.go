package cli

import (
	"strconv"

	"github.com/Veraticus/vibir/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// RenderTable renders result rows as a bordered table.
func RenderTable(rows []model.ResultRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(model.ResultColumns()...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})

	for _, r := range rows {
		t.Row(r.Cells()...)
	}
	return t.String()
}

// RenderSpectrum renders extracted spectrum records in file order.
func RenderSpectrum(spectrum *model.Spectrum) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(model.ColumnMode, model.ColumnFrequency, model.ColumnIntensity).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})

	for _, rec := range spectrum.Records() {
		t.Row(
			strconv.Itoa(rec.Mode),
			model.Round(rec.Frequency).StringFixed(model.DisplayPlaces),
			model.Round(rec.Intensity).StringFixed(model.DisplayPlaces),
		)
	}
	return t.String()
}
