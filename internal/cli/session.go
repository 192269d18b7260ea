package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/vibir/internal/common"
	"github.com/Veraticus/vibir/internal/export"
	"github.com/Veraticus/vibir/internal/filter"
	"github.com/Veraticus/vibir/internal/model"
)

// ExportFunc writes rows to path and returns the absolute path written.
type ExportFunc func(path string, rows []model.ResultRow) (string, error)

// Session drives the interactive filter/export loop over a result set.
type Session struct {
	reader *NonBlockingReader
	writer io.Writer
	export ExportFunc
}

// NewSession creates a session reading answers from r and writing to w.
func NewSession(r io.Reader, w io.Writer) *Session {
	return &Session{
		reader: NewNonBlockingReader(r),
		writer: w,
		export: export.Export,
	}
}

// WithExporter replaces the function used to write exported results.
func (s *Session) WithExporter(fn ExportFunc) *Session {
	s.export = fn
	return s
}

// Run shows rows and loops on filter prompts until the user exports, quits
// or gives an invalid answer at the follow-up prompt. Canceling ctx during a
// prompt returns ErrInputCancelled.
func (s *Session) Run(ctx context.Context, rows []model.ResultRow) error {
	s.printTable("Initial Vibrational Modes Summary", rows)

	current := rows
	for {
		action, err := s.promptChoice(ctx,
			"Filter by (a)toms/groups, (f)requencies, (n)one, or (e)xport current results?",
			[]string{string(filter.ActionAtoms), string(filter.ActionFrequency), string(filter.ActionNone), string(filter.ActionExport)})
		if err != nil {
			return err
		}

		if filter.Action(action) == filter.ActionExport {
			return s.exportRows(ctx, current)
		}

		current, err = s.applyFilter(ctx, filter.Action(action), current)
		if err != nil {
			return err
		}
		s.printTable("Filtered Results", current)

		next, err := s.readAnswer(ctx, "(f)ilter again, (e)xport these results, or (q)uit?")
		if err != nil {
			return err
		}
		switch strings.ToLower(next) {
		case "f":
			continue
		case "e":
			return s.exportRows(ctx, current)
		case "q":
			s.println(FormatInfo("Exiting."))
			return nil
		default:
			s.println(FormatWarning("Invalid choice. Exiting."))
			return nil
		}
	}
}

func (s *Session) applyFilter(ctx context.Context, action filter.Action, rows []model.ResultRow) ([]model.ResultRow, error) {
	switch action {
	case filter.ActionAtoms:
		input, err := s.readAnswer(ctx, "Enter atoms/groups to filter by, comma-separated (e.g. C1 H2, O3)")
		if err != nil {
			return rows, err
		}
		filtered, ferr := filter.ByGroups(rows, input)
		switch {
		case errors.Is(ferr, filter.ErrEmptyInput):
			s.println(FormatWarning("No atoms/groups entered. Keeping current results."))
		case errors.Is(ferr, filter.ErrNoMatch):
			s.println(FormatWarning(fmt.Sprintf("No modes found matching %s. Keeping current results.",
				strings.Join(filter.SplitGroups(input), ", "))))
		default:
			s.println(FormatInfo("Applying filter for atoms/groups: " + strings.Join(filter.SplitGroups(input), ", ")))
		}
		return filtered, nil

	case filter.ActionFrequency:
		input, err := s.readAnswer(ctx, "Enter a frequency range (e.g. 100-200) or discrete frequencies (e.g. 150.5, 300)")
		if err != nil {
			return rows, err
		}
		q, qerr := filter.ParseFrequencyQuery(input)
		switch {
		case errors.Is(qerr, filter.ErrEmptyInput):
			s.println(FormatWarning("No frequencies entered. Keeping current results."))
			return rows, nil
		case qerr != nil:
			s.println(FormatWarning(fmt.Sprintf("Invalid frequency format (%v). No filtering applied.", qerr)))
			return rows, nil
		}
		s.println(FormatInfo("Applying filter for " + q.String()))
		return q.Apply(rows), nil

	default:
		s.println(FormatInfo("No filtering applied. Displaying all current modes."))
		return rows, nil
	}
}

// exportRows prompts for a filename until one is given and written successfully.
func (s *Session) exportRows(ctx context.Context, rows []model.ResultRow) error {
	for {
		name, err := s.readAnswer(ctx, fmt.Sprintf("Enter output filename (%s)", strings.Join(export.Formats(), ", ")))
		if err != nil {
			return err
		}
		if name == "" {
			s.println(FormatWarning("Filename cannot be empty."))
			continue
		}

		path, err := s.export(name, rows)
		if err != nil {
			common.LogError(err, "Export failed", common.Fields{"path": name})
			s.println(FormatError(fmt.Sprintf("Could not write %s: %v", name, err)))
			continue
		}
		s.println(FormatSuccess("Results successfully saved to " + path))
		return nil
	}
}

// promptChoice re-prompts until the answer is one of valid.
func (s *Session) promptChoice(ctx context.Context, prompt string, valid []string) (string, error) {
	for {
		answer, err := s.readAnswer(ctx, prompt)
		if err != nil {
			return "", err
		}
		answer = strings.ToLower(answer)
		for _, v := range valid {
			if answer == v {
				return answer, nil
			}
		}
		s.println(FormatError("Invalid choice. Please try again."))
	}
}

func (s *Session) readAnswer(ctx context.Context, prompt string) (string, error) {
	if _, err := fmt.Fprint(s.writer, FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}
	return s.reader.ReadLine(ctx)
}

func (s *Session) printTable(title string, rows []model.ResultRow) {
	s.println("\n" + FormatTitle(title))
	if len(rows) == 0 {
		s.println(FormatWarning("No modes match the current filter criteria."))
		return
	}
	s.println(RenderTable(rows))
}

func (s *Session) println(msg string) {
	if _, err := fmt.Fprintln(s.writer, msg); err != nil {
		slog.Warn("Failed to write output", "error", err)
	}
}
