package cli

import (
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"
)

// StepTracker shows progress through the fixed steps of the pipeline.
type StepTracker struct {
	bar *progressbar.ProgressBar
}

// NewStepTracker creates a tracker for total steps writing to w.
func NewStepTracker(w io.Writer, total int) *StepTracker {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Starting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := io.WriteString(w, "\n"); err != nil {
				slog.Debug("Failed to finish progress bar", "error", err)
			}
		}),
	)
	return &StepTracker{bar: bar}
}

// Advance marks one step done and labels the bar with desc.
func (t *StepTracker) Advance(desc string) {
	t.bar.Describe(desc)
	if err := t.bar.Add(1); err != nil {
		slog.Debug("Failed to update progress bar", "error", err)
	}
}

// Finish completes the bar regardless of how many steps ran.
func (t *StepTracker) Finish() {
	if err := t.bar.Finish(); err != nil {
		slog.Debug("Failed to finish progress bar", "error", err)
	}
}
