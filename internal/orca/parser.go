// Package orca extracts IR spectrum data from ORCA output reports.
package orca

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/Veraticus/vibir/internal/common"
	"github.com/Veraticus/vibir/internal/model"
)

const (
	// DefaultSectionLabel starts the IR spectrum table.
	DefaultSectionLabel = "IR SPECTRUM"
	// DefaultFooter is the line ORCA prints once the property calculation finishes.
	DefaultFooter = "Maximum memory used throughout the entire PROP-calculation"
)

// spectrumLine matches "<mode>: <freq> <eps> <intensity> ...".
var spectrumLine = regexp.MustCompile(`^\s*(\d+):\s*([\d.]+)\s+\S+\s+([\d.]+)`)

// Parser implements IR spectrum extraction.
type Parser struct {
	SectionLabel string
	Footer       string
}

// NewParser creates a parser for standard ORCA output.
func NewParser() *Parser {
	return &Parser{
		SectionLabel: DefaultSectionLabel,
		Footer:       DefaultFooter,
	}
}

// ParseIRSpectrum parses report lines with the default parser.
func ParseIRSpectrum(lines []string) (*model.Spectrum, error) {
	return NewParser().Parse(lines)
}

// ParseFile reads and parses an ORCA output file.
func (p *Parser) ParseFile(path string) (*model.Spectrum, error) {
	if err := common.CheckReadable(path, false); err != nil {
		return nil, err
	}
	data, err := common.ReadFile(path)
	if err != nil {
		return nil, err
	}

	spectrum, err := p.Parse(common.SplitLines(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return spectrum, nil
}

// Parse extracts the spectrum records from the bounded IR section of lines.
func (p *Parser) Parse(lines []string) (*model.Spectrum, error) {
	start := -1
	for i, ln := range lines {
		if strings.HasPrefix(strings.TrimSpace(ln), p.SectionLabel) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: %q not present in ORCA output", common.ErrSectionNotFound, p.SectionLabel)
	}

	end := p.sectionEnd(lines, start)

	spectrum := model.NewSpectrum()
	for _, ln := range lines[start:end] {
		if rec, ok := parseSpectrumLine(ln); ok {
			spectrum.Put(rec)
		}
	}

	if spectrum.Len() == 0 {
		return nil, fmt.Errorf("%w: no line in the %q section matches the expected layout", common.ErrNoModesFound, p.SectionLabel)
	}

	slog.Debug("Parsed IR spectrum", "modes", spectrum.Len(), "start_line", start+1, "end_line", end)
	return spectrum, nil
}

// sectionEnd returns the exclusive end of the section that starts at start.
func (p *Parser) sectionEnd(lines []string, start int) int {
	for j := start; j < len(lines); j++ {
		if strings.Contains(lines[j], p.Footer) {
			return j
		}
	}

	// Without the footer, stop at the first blank-then-text transition or
	// separator once the table has started.
	seenRecord := false
	for k := start + 1; k < len(lines); k++ {
		if _, ok := parseSpectrumLine(lines[k]); ok {
			seenRecord = true
			continue
		}
		if !seenRecord {
			continue
		}

		trimmed := strings.TrimSpace(lines[k])
		if trimmed == "" && k+1 < len(lines) && strings.TrimSpace(lines[k+1]) != "" {
			return k
		}
		if strings.HasPrefix(trimmed, "---") || strings.HasPrefix(trimmed, "**********") {
			return k
		}
	}

	slog.Warn("Could not find an end marker for the IR section, parsing until end of file",
		"section", p.SectionLabel)
	return len(lines)
}

func parseSpectrumLine(ln string) (model.SpectrumRecord, bool) {
	m := spectrumLine.FindStringSubmatch(ln)
	if m == nil {
		return model.SpectrumRecord{}, false
	}

	mode, err := strconv.Atoi(m[1])
	if err != nil {
		return model.SpectrumRecord{}, false
	}
	freq, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return model.SpectrumRecord{}, false
	}
	ir, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return model.SpectrumRecord{}, false
	}

	return model.SpectrumRecord{Mode: mode, Frequency: freq, Intensity: ir}, true
}
