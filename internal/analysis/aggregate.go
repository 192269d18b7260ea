// Package analysis summarizes parsed normal modes into result rows.
package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/vibir/internal/model"
)

// DefaultTopN is the number of contributions listed per mode.
const DefaultTopN = 2

// Aggregator counts contribution types and ranks the strongest contributions.
type Aggregator struct {
	// TopN is the number of contributions rendered per mode.
	TopN int
	// FoldCase upper-cases every type token before counting. When false only
	// TORSION is case-insensitive and other tokens must match exactly to land in
	// a canonical bucket.
	FoldCase bool
}

// NewAggregator creates an aggregator. A non-positive topN uses DefaultTopN.
func NewAggregator(topN int) *Aggregator {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Aggregator{TopN: topN}
}

// Summarize builds one row per mode, in input order.
func (a *Aggregator) Summarize(modes []model.Mode) []model.ResultRow {
	rows := make([]model.ResultRow, 0, len(modes))
	for _, m := range modes {
		rows = append(rows, model.ResultRow{
			Mode:             m.Index,
			Frequency:        m.Frequency,
			Intensity:        m.Intensity,
			Counts:           a.CountTypes(m.Contributions),
			TopContributions: FormatContributions(a.Top(m.Contributions)),
		})
	}
	return rows
}

// CountTypes counts contributions per type. The canonical buckets are always present.
func (a *Aggregator) CountTypes(contributions []model.Contribution) map[string]int {
	counts := make(map[string]int, len(model.CanonicalContributionTypes))
	for _, kind := range model.CanonicalContributionTypes {
		counts[kind] = 0
	}

	for _, c := range contributions {
		counts[a.bucket(c.Type)]++
	}
	return counts
}

func (a *Aggregator) bucket(kind string) string {
	if a.FoldCase {
		return strings.ToUpper(kind)
	}
	if strings.EqualFold(kind, model.ContributionTorsion) {
		return model.ContributionTorsion
	}
	return kind
}

// Top returns up to TopN contributions by descending weight. Equal weights keep
// their report order.
func (a *Aggregator) Top(contributions []model.Contribution) []model.Contribution {
	n := a.TopN
	if n <= 0 {
		n = DefaultTopN
	}

	sorted := make([]model.Contribution, len(contributions))
	copy(sorted, contributions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// FormatContributions renders contributions as "TYPE(a1 a2):0.61; ...".
func FormatContributions(contributions []model.Contribution) string {
	parts := make([]string, len(contributions))
	for i, c := range contributions {
		parts[i] = fmt.Sprintf("%s(%s):%.2f", c.Type, strings.Join(c.Atoms, " "), c.Weight)
	}
	return strings.Join(parts, "; ")
}
