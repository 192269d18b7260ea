package nma

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/vibir/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReport = `vibAnalysis  VMARD
 +0.50 (50.0%) BOND X1 X2
Mode 7:  1594.83 cm-1 (IR: 75.40)
  +0.612 ( 61.2%) BOND O1 H2
  -0.301 ( 30.1%) ANGLE H2 O1 H3
  + garbage that starts with a plus
  free text
Mode 8:  3656.30 cm-1 (IR: 4.33)
  +0.450 ( 45.0%) torsion C1 C2 C3 C4
Mode 9:  3755.91 cm-1 (IR: 35.42)
`

func TestParse(t *testing.T) {
	modes, err := Parse(strings.NewReader(sampleReport))
	require.NoError(t, err)
	require.Len(t, modes, 3)

	first := modes[0]
	assert.Equal(t, 7, first.Index)
	assert.InDelta(t, 1594.83, first.Frequency, 1e-9)
	assert.InDelta(t, 75.40, first.Intensity, 1e-9)
	require.Len(t, first.Contributions, 2, "lines before the first header and unparseable lines are skipped")

	assert.Equal(t, "BOND", first.Contributions[0].Type)
	assert.Equal(t, []string{"O1", "H2"}, first.Contributions[0].Atoms)
	assert.InDelta(t, 0.612, first.Contributions[0].Weight, 1e-9)
	assert.Equal(t, "ANGLE", first.Contributions[1].Type)
	assert.Equal(t, []string{"H2", "O1", "H3"}, first.Contributions[1].Atoms)
	assert.InDelta(t, 0.301, first.Contributions[1].Weight, 1e-9)

	assert.Equal(t, "torsion", modes[1].Contributions[0].Type, "type case is preserved")
	assert.Empty(t, modes[2].Contributions)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		input   string
	}{
		{name: "no headers", input: "+0.5 (50.0%) BOND C1 H2\n", wantErr: common.ErrNoModesFound},
		{name: "empty", input: "", wantErr: common.ErrNoModesFound},
		{
			name:    "duplicate index",
			input:   "Mode 1:  10.00 cm-1 (IR: 0.00)\nMode 1:  20.00 cm-1 (IR: 0.00)\n",
			wantErr: common.ErrDuplicateMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.nma"))
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRequireContributions(t *testing.T) {
	modes, err := Parse(strings.NewReader("Mode 1:  10.00 cm-1 (IR: 0.00)\n"))
	require.NoError(t, err)
	assert.ErrorIs(t, RequireContributions(modes), common.ErrNoContributionsParsed)

	modes, err = Parse(strings.NewReader(sampleReport))
	require.NoError(t, err)
	assert.NoError(t, RequireContributions(modes))
}
