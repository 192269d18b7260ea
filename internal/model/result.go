package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Column headers of a result table, in display order.
const (
	ColumnMode             = "Mode"
	ColumnFrequency        = "Freq_cm-1"
	ColumnIntensity        = "IR_Intensity_km/mol"
	ColumnBond             = "BOND_Contribs"
	ColumnAngle            = "ANGLE_Contribs"
	ColumnOut              = "OUT_Contribs"
	ColumnTorsion          = "TORSION_Contribs"
	ColumnTopContributions = "Top_Contributions"
)

// DisplayPlaces is the number of decimals frequencies and intensities are shown with.
const DisplayPlaces = 2

// ResultColumns returns the result table header.
func ResultColumns() []string {
	return []string{
		ColumnMode,
		ColumnFrequency,
		ColumnIntensity,
		ColumnBond,
		ColumnAngle,
		ColumnOut,
		ColumnTorsion,
		ColumnTopContributions,
	}
}

// ResultRow is the tabular summary of one mode. Frequency and Intensity keep
// full precision; rounding happens only when a value is displayed or compared.
type ResultRow struct {
	Counts           map[string]int
	TopContributions string
	Mode             int
	Frequency        float64
	Intensity        float64
}

// Count returns the number of contributions of the given type.
func (r ResultRow) Count(kind string) int {
	return r.Counts[kind]
}

// DisplayFrequency is the frequency rounded to DisplayPlaces.
func (r ResultRow) DisplayFrequency() decimal.Decimal {
	return Round(r.Frequency)
}

// DisplayIntensity is the intensity rounded to DisplayPlaces.
func (r ResultRow) DisplayIntensity() decimal.Decimal {
	return Round(r.Intensity)
}

// Cells renders the row in ResultColumns order.
func (r ResultRow) Cells() []string {
	return []string{
		strconv.Itoa(r.Mode),
		r.DisplayFrequency().StringFixed(DisplayPlaces),
		r.DisplayIntensity().StringFixed(DisplayPlaces),
		strconv.Itoa(r.Count(ContributionBond)),
		strconv.Itoa(r.Count(ContributionAngle)),
		strconv.Itoa(r.Count(ContributionOut)),
		strconv.Itoa(r.Count(ContributionTorsion)),
		r.TopContributions,
	}
}

// Round rounds v half away from zero to DisplayPlaces.
func Round(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(DisplayPlaces)
}
