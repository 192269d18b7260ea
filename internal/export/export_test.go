package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/vibir/internal/common"
	"github.com/Veraticus/vibir/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleRows() []model.ResultRow {
	return []model.ResultRow{
		{
			Mode:             7,
			Frequency:        1594.834,
			Intensity:        75.4,
			Counts:           map[string]int{"BOND": 2, "ANGLE": 1},
			TopContributions: "ANGLE(H2 O1 H3):0.40; BOND(O1 H2):0.30",
		},
		{
			Mode:             8,
			Frequency:        3656.3,
			Intensity:        4.33,
			Counts:           map[string]int{"TORSION": 1},
			TopContributions: "TORSION(C1 C2 C3 C4):0.45",
		},
		{Mode: 9, Frequency: 3755.91},
	}
}

func TestFormats(t *testing.T) {
	assert.Equal(t, []string{".mc", ".txt", ".xlsx"}, Formats())
	assert.Equal(t, FormatSpreadsheet, FormatFor("out/Results.XLSX"))
	assert.Equal(t, FormatMarkdown, FormatFor("table.mc"))
	assert.Equal(t, FormatText, FormatFor("table.csv"))
	assert.Equal(t, FormatText, FormatFor("table"))
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, ".pdf", sampleRows())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown export format")
}

func TestExport_Text(t *testing.T) {
	for _, name := range []string{"results.txt", "results.dat"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			written, err := Export(path, sampleRows())
			require.NoError(t, err)
			assert.Equal(t, path, written)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			lines := common.SplitLines(data)

			require.Len(t, lines, len(sampleRows())+1)
			assert.Equal(t, strings.Join(model.ResultColumns(), "\t"), lines[0])
			assert.Equal(t, "7\t1594.83\t75.40\t2\t1\t0\t0\tANGLE(H2 O1 H3):0.40; BOND(O1 H2):0.30", lines[1])
			assert.Equal(t, "9\t3755.91\t0.00\t0\t0\t0\t0\t", lines[3])
		})
	}
}

func TestExport_Markdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.mc")
	_, err := Export(path, sampleRows())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := common.SplitLines(data)

	require.Len(t, lines, len(sampleRows())+2, "header, separator and one line per row")
	assert.Equal(t, "| Mode | Freq_cm-1 | IR_Intensity_km/mol | BOND_Contribs | ANGLE_Contribs | OUT_Contribs | TORSION_Contribs | Top_Contributions |", lines[0])
	assert.Equal(t, "|"+strings.Repeat(" --- |", 8), lines[1])
	assert.Equal(t, "| 8 | 3656.30 | 4.33 | 0 | 0 | 0 | 1 | TORSION(C1 C2 C3 C4):0.45 |", lines[3])
}

func TestExport_Spreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	_, err := Export(path, sampleRows())
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, len(sampleRows())+1)
	assert.Equal(t, model.ResultColumns(), rows[0])
	assert.Equal(t, "7", rows[1][0])
	assert.Equal(t, "1594.83", rows[1][1])
	assert.Equal(t, "TORSION(C1 C2 C3 C4):0.45", rows[2][7])
}

func TestExport_EmptyName(t *testing.T) {
	_, err := Export("  ", sampleRows())
	assert.Error(t, err)
}
