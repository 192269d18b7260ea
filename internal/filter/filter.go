// Package filter narrows result rows by contributing atom groups or by frequency.
// Filters never fail hard: on bad input they hand back the rows they were given
// together with an error describing why nothing was filtered.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/vibir/internal/model"
	"github.com/shopspring/decimal"
)

// Non-fatal filter diagnostics.
var (
	ErrEmptyInput    = errors.New("no filter criteria entered")
	ErrInvalidFilter = errors.New("invalid filter")
	ErrNoMatch       = errors.New("no rows match")
)

// Action is a choice at the filter prompt.
type Action string

// Filter prompt choices.
const (
	ActionAtoms     Action = "a"
	ActionFrequency Action = "f"
	ActionNone      Action = "n"
	ActionExport    Action = "e"
)

// ParseAction maps user input to an action.
func ParseAction(input string) (Action, bool) {
	switch a := Action(strings.ToLower(strings.TrimSpace(input))); a {
	case ActionAtoms, ActionFrequency, ActionNone, ActionExport:
		return a, true
	default:
		return "", false
	}
}

// SplitGroups splits comma-separated atom groups, dropping empty entries.
func SplitGroups(input string) []string {
	var groups []string
	for _, g := range strings.Split(input, ",") {
		if g = strings.TrimSpace(g); g != "" {
			groups = append(groups, g)
		}
	}
	return groups
}

// ByGroups keeps rows whose top contributions mention any group as a whole
// parenthesized atom list, e.g. "C1 H2" matches "BOND(C1 H2):0.61" but not
// "ANGLE(C1 H2 H3):0.20". Matching ignores case. When no row matches, rows is
// returned unchanged with ErrNoMatch.
func ByGroups(rows []model.ResultRow, input string) ([]model.ResultRow, error) {
	groups := SplitGroups(input)
	if len(groups) == 0 {
		return rows, ErrEmptyInput
	}

	needles := make([]string, len(groups))
	for i, g := range groups {
		needles[i] = "(" + strings.ToLower(g) + ")"
	}

	var out []model.ResultRow
	for _, row := range rows {
		haystack := strings.ToLower(row.TopContributions)
		for _, n := range needles {
			if strings.Contains(haystack, n) {
				out = append(out, row)
				break
			}
		}
	}

	if len(out) == 0 {
		return rows, fmt.Errorf("%w the atoms/groups: %s", ErrNoMatch, strings.Join(groups, ", "))
	}
	return out, nil
}

// FrequencyQuery selects rows by their frequency rounded for display.
type FrequencyQuery struct {
	Low     decimal.Decimal
	High    decimal.Decimal
	Values  []decimal.Decimal
	IsRange bool
}

// ParseFrequencyQuery parses "A-B" as an inclusive range or "A, B, ..." as
// discrete values.
func ParseFrequencyQuery(input string) (FrequencyQuery, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return FrequencyQuery{}, ErrEmptyInput
	}

	if strings.Contains(input, "-") {
		bounds := strings.Split(input, "-")
		if len(bounds) != 2 {
			return FrequencyQuery{}, fmt.Errorf("%w: range %q must look like 100-200", ErrInvalidFilter, input)
		}
		low, err := parseValue(bounds[0])
		if err != nil {
			return FrequencyQuery{}, err
		}
		high, err := parseValue(bounds[1])
		if err != nil {
			return FrequencyQuery{}, err
		}
		return FrequencyQuery{IsRange: true, Low: low, High: high}, nil
	}

	var q FrequencyQuery
	for _, part := range strings.Split(input, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		v, err := parseValue(part)
		if err != nil {
			return FrequencyQuery{}, err
		}
		q.Values = append(q.Values, v)
	}
	if len(q.Values) == 0 {
		return FrequencyQuery{}, ErrEmptyInput
	}
	return q, nil
}

func parseValue(s string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q is not a frequency", ErrInvalidFilter, strings.TrimSpace(s))
	}
	return v, nil
}

// Match reports whether the row's display frequency satisfies the query.
func (q FrequencyQuery) Match(row model.ResultRow) bool {
	freq := row.DisplayFrequency()
	if q.IsRange {
		return freq.GreaterThanOrEqual(q.Low) && freq.LessThanOrEqual(q.High)
	}
	for _, v := range q.Values {
		if freq.Equal(v) {
			return true
		}
	}
	return false
}

// Apply returns the matching rows. An empty result is not an error.
func (q FrequencyQuery) Apply(rows []model.ResultRow) []model.ResultRow {
	out := make([]model.ResultRow, 0, len(rows))
	for _, row := range rows {
		if q.Match(row) {
			out = append(out, row)
		}
	}
	return out
}

func (q FrequencyQuery) String() string {
	if q.IsRange {
		return fmt.Sprintf("frequency range %s-%s cm-1",
			q.Low.StringFixed(model.DisplayPlaces), q.High.StringFixed(model.DisplayPlaces))
	}
	values := make([]string, len(q.Values))
	for i, v := range q.Values {
		values[i] = v.StringFixed(model.DisplayPlaces)
	}
	return "discrete frequencies " + strings.Join(values, ", ") + " cm-1"
}

// ByFrequency parses input and applies it. On bad input rows is returned unchanged.
func ByFrequency(rows []model.ResultRow, input string) ([]model.ResultRow, error) {
	q, err := ParseFrequencyQuery(input)
	if err != nil {
		return rows, err
	}
	return q.Apply(rows), nil
}
