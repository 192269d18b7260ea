package nma

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/Veraticus/vibir/internal/common"
	"github.com/Veraticus/vibir/internal/model"
)

// contributionLine matches "+0.612 ( 61.2%) BOND O1 H2".
var contributionLine = regexp.MustCompile(`^\s*[+-]?([\d.]+)\s+\(\s*([\d.]+)%\)\s+(\w+)\s+(.+)`)

// ParseFile reads a merged report from disk.
func ParseFile(path string) ([]model.Mode, error) {
	if err := common.CheckReadable(path, false); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	modes, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return modes, nil
}

// Parse reads modes and their contributions in file order. Contribution lines
// before the first header and lines that do not fit either layout are ignored.
func Parse(r io.Reader) ([]model.Mode, error) {
	var modes []model.Mode
	seen := make(map[int]int)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		ln := scanner.Text()

		if m := modeHeader.FindStringSubmatch(ln); m != nil {
			mode, err := parseHeader(m)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			if first, dup := seen[mode.Index]; dup {
				return nil, fmt.Errorf("%w: mode %d on lines %d and %d", common.ErrDuplicateMode, mode.Index, first, lineNo)
			}
			seen[mode.Index] = lineNo
			modes = append(modes, mode)
			continue
		}

		trimmed := strings.TrimSpace(ln)
		if len(modes) == 0 || !(strings.HasPrefix(trimmed, "+") || strings.HasPrefix(trimmed, "-")) {
			continue
		}
		if c, ok := parseContribution(ln); ok {
			cur := &modes[len(modes)-1]
			cur.Contributions = append(cur.Contributions, c)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	if len(modes) == 0 {
		return nil, fmt.Errorf("%w: no mode header lines in report", common.ErrNoModesFound)
	}
	return modes, nil
}

func parseHeader(m []string) (model.Mode, error) {
	idx, err := strconv.Atoi(m[1])
	if err != nil {
		return model.Mode{}, fmt.Errorf("invalid mode index %q: %w", m[1], err)
	}
	freq, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return model.Mode{}, fmt.Errorf("invalid frequency %q: %w", m[2], err)
	}
	ir, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return model.Mode{}, fmt.Errorf("invalid intensity %q: %w", m[3], err)
	}
	return model.Mode{Index: idx, Frequency: freq, Intensity: ir}, nil
}

func parseContribution(ln string) (model.Contribution, bool) {
	m := contributionLine.FindStringSubmatch(ln)
	if m == nil {
		return model.Contribution{}, false
	}
	pct, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return model.Contribution{}, false
	}
	return model.Contribution{
		Type:   m[3],
		Atoms:  strings.Fields(m[4]),
		Weight: pct / 100,
	}, true
}

// RequireContributions fails when no mode carries a single contribution.
func RequireContributions(modes []model.Mode) error {
	for _, m := range modes {
		if len(m.Contributions) > 0 {
			return nil
		}
	}
	return fmt.Errorf("%w: %d modes without contribution lines", common.ErrNoContributionsParsed, len(modes))
}
