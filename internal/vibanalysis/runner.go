// Package vibanalysis runs the external vibrational-analysis program (vibAnalysis'
// va.py) and locates the normal-mode report it writes. The program is treated as a
// black box: an input file goes in, a sibling .nma file comes out, and the exit
// status signals success.
package vibanalysis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Veraticus/vibir/internal/common"
)

// DefaultInterpreter runs va.py.
const DefaultInterpreter = "python3"

// DefaultFlags requests the VMARD decomposition on mass-weighted coordinates with
// automatic coordinate selection.
func DefaultFlags() []string {
	return []string{"--vmard", "--mwd", "--autosel"}
}

// Config describes how to launch the analyzer.
type Config struct {
	// Interpreter runs the script. Empty means the script is executed directly.
	Interpreter string
	ScriptPath  string
	Flags       []string
}

// Result holds the captured output of a successful run.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ToolError reports a nonzero exit of the analyzer together with its output.
type ToolError struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%v: exit code %d", common.ErrExternalToolFailure, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return common.ErrExternalToolFailure
}

// Runner invokes the analyzer.
type Runner struct {
	interpreter string
	script      string
	flags       []string
}

// NewRunner validates the configuration and resolves the interpreter and script.
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.ScriptPath == "" {
		return nil, fmt.Errorf("%w: no analyzer script configured", common.ErrToolNotFound)
	}

	script, err := filepath.Abs(cfg.ScriptPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", cfg.ScriptPath, err)
	}
	if info, err := os.Stat(script); err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: analyzer script %s", common.ErrToolNotFound, script)
	}

	r := &Runner{
		script: script,
		flags:  cfg.Flags,
	}
	if r.flags == nil {
		r.flags = DefaultFlags()
	}

	if cfg.Interpreter != "" {
		interpreter, err := exec.LookPath(cfg.Interpreter)
		if err != nil {
			return nil, fmt.Errorf("%w: interpreter %s", common.ErrToolNotFound, cfg.Interpreter)
		}
		r.interpreter = interpreter
	}

	return r, nil
}

// Args returns the command line used for input.
func (r *Runner) Args(input string) []string {
	args := make([]string, 0, len(r.flags)+3)
	if r.interpreter != "" {
		args = append(args, r.interpreter)
	}
	args = append(args, r.script)
	args = append(args, r.flags...)
	return append(args, input)
}

// Run analyzes input from the script's directory and waits for it to finish.
// There is no timeout; only ctx cancellation stops the process.
func (r *Runner) Run(ctx context.Context, input string) (*Result, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", input, err)
	}

	argv := r.Args(abs)
	slog.Info("Running vibrational analysis", "command", strings.Join(argv, " "))

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...) //nolint:gosec // configured by the user
	cmd.Dir = filepath.Dir(r.script)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("vibrational analysis interrupted: %w", ctx.Err())
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, &ToolError{
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
			}
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrToolNotFound, argv[0])
		}
		return nil, fmt.Errorf("failed to execute analyzer: %w", err)
	}

	res := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	slog.Debug("Vibrational analysis finished", "stdout", res.Stdout, "stderr", res.Stderr)
	return res, nil
}

// ReportExtension is the extension of the analyzer's output report.
const ReportExtension = ".nma"

// LocateReport finds the report written for input: the input path with its
// .hess extension swapped for .nma, or failing that input+".nma".
func LocateReport(input string) (string, error) {
	candidates := []string{}
	if strings.HasSuffix(input, ".hess") {
		candidates = append(candidates, strings.TrimSuffix(input, ".hess")+ReportExtension)
	}
	candidates = append(candidates, input+ReportExtension)

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: expected analyzer report %s", common.ErrNotFound, strings.Join(candidates, " or "))
}
