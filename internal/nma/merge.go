package nma

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/Veraticus/vibir/internal/common"
	"github.com/Veraticus/vibir/internal/model"
)

// DefaultTolerance is the largest frequency difference (cm-1, exclusive) at
// which a spectrum record is matched to a report mode.
const DefaultTolerance = 0.05

// DefaultBackupSuffix is appended to the report path for the backup copy.
const DefaultBackupSuffix = ".orig"

var modeHeader = regexp.MustCompile(`^\s*Mode\s+(\d+):\s*([\d.]+)\s*cm-1\s*\(IR:\s*([\d.]+)\)`)

// MergeStats summarizes a merge.
type MergeStats struct {
	Unmatched []model.SpectrumRecord
	Replaced  int
}

// MergeLines replaces the IR intensity of every mode header whose frequency is
// within tolerance of a spectrum record. Records are tried in spectrum order
// and each is used at most once. spectrum itself is not modified.
func MergeLines(lines []string, spectrum *model.Spectrum, tolerance float64) ([]string, MergeStats) {
	remaining := spectrum.Clone()
	out := make([]string, 0, len(lines))
	var stats MergeStats

	for _, ln := range lines {
		m := modeHeader.FindStringSubmatch(ln)
		if m == nil {
			out = append(out, ln)
			continue
		}

		mode, errMode := strconv.Atoi(m[1])
		freq, errFreq := strconv.ParseFloat(m[2], 64)
		if errMode != nil || errFreq != nil {
			out = append(out, ln)
			continue
		}

		rec, ok := nearest(remaining, freq, tolerance)
		if !ok {
			out = append(out, ln)
			continue
		}

		out = append(out, FormatHeader(mode, freq, rec.Intensity))
		remaining.Remove(rec.Mode)
		stats.Replaced++
	}

	stats.Unmatched = remaining.Records()
	return out, stats
}

// nearest returns the first record, in spectrum order, within tolerance of freq.
func nearest(spectrum *model.Spectrum, freq, tolerance float64) (model.SpectrumRecord, bool) {
	for _, rec := range spectrum.Records() {
		if math.Abs(rec.Frequency-freq) < tolerance {
			return rec, true
		}
	}
	return model.SpectrumRecord{}, false
}

// FormatHeader renders a mode header line.
func FormatHeader(mode int, freq, intensity float64) string {
	return fmt.Sprintf("Mode %d:  %.2f cm-1 (IR: %.2f)", mode, freq, intensity)
}

// Merger injects spectrum intensities into a report file in place.
type Merger struct {
	BackupSuffix string
	Tolerance    float64
	Backup       bool
}

// DefaultMerger returns a merger with the standard tolerance that keeps a backup.
func DefaultMerger() *Merger {
	return &Merger{
		Tolerance:    DefaultTolerance,
		Backup:       true,
		BackupSuffix: DefaultBackupSuffix,
	}
}

// MergeFile rewrites the report at path. The new content is computed in memory,
// the backup (if enabled) is written once, and the report is then replaced
// atomically. An existing backup is never overwritten, so it always holds the
// report as the analyzer first wrote it.
func (m *Merger) MergeFile(path string, spectrum *model.Spectrum) (MergeStats, error) {
	data, err := common.ReadFile(path)
	if err != nil {
		return MergeStats{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return MergeStats{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	tolerance := m.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	out, stats := MergeLines(common.SplitLines(data), spectrum, tolerance)

	if stats.Replaced == 0 {
		slog.Warn("No IR intensities were updated; check frequency matching or the ORCA output format",
			"report", path)
	}
	if len(stats.Unmatched) > 0 {
		freqs := make([]float64, len(stats.Unmatched))
		for i, rec := range stats.Unmatched {
			freqs[i] = rec.Frequency
		}
		slog.Warn("Some ORCA IR modes were not matched to report modes",
			"count", len(stats.Unmatched),
			"frequencies", freqs)
	}

	if m.Backup {
		suffix := m.BackupSuffix
		if suffix == "" {
			suffix = DefaultBackupSuffix
		}
		backup := path + suffix
		written, err := common.CopyFile(path, backup, false)
		if err != nil {
			return MergeStats{}, fmt.Errorf("failed to back up %s: %w", path, err)
		}
		if written {
			slog.Info("Backed up report", "from", path, "to", backup)
		} else {
			slog.Info("Keeping existing backup", "backup", backup)
		}
	}

	if err := common.WriteFileAtomic(path, []byte(strings.Join(out, "\n")), info.Mode().Perm()); err != nil {
		return MergeStats{}, fmt.Errorf("failed to write merged report: %w", err)
	}

	slog.Info("Merged IR intensities into report",
		"report", path,
		"replaced", stats.Replaced,
		"unmatched", len(stats.Unmatched))
	return stats, nil
}
