package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0
	ExitFailure      = 1
	ExitCommandError = 2
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// Report is what render, diff and virtualize print.
type Report struct {
	Name  string       `json:"name"`
	Steps []StepReport `json:"steps"`
}

// StepReport lists the mutations one step made and the markup it left.
type StepReport struct {
	Step int      `json:"step"`
	Ops  []string `json:"ops"`
	HTML string   `json:"html"`
}

// CLIResponse is the JSON envelope of every command output.
type CLIResponse struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

type CLIError struct {
	Message string `json:"message"`
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

func (f *OutputFormatter) Report(r *Report) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "ok", Data: r})
	}

	var b strings.Builder
	if r.Name != "" {
		fmt.Fprintln(&b, r.Name)
	}
	for _, step := range r.Steps {
		unit := "ops"
		if len(step.Ops) == 1 {
			unit = "op"
		}
		fmt.Fprintf(&b, "step %d: %d %s\n", step.Step, len(step.Ops), unit)
		for _, op := range step.Ops {
			fmt.Fprintf(&b, "  %s\n", op)
		}
		fmt.Fprintf(&b, "  html: %s\n", step.HTML)
	}

	_, err := io.WriteString(f.Writer, b.String())
	return err
}

func (f *OutputFormatter) Error(err error) error {
	if f.Format == "json" {
		return f.encode(CLIResponse{Status: "error", Error: &CLIError{Message: err.Error()}})
	}

	_, werr := fmt.Fprintf(f.Writer, "Error: %v\n", err)
	return werr
}

func (f *OutputFormatter) encode(v any) error {
	enc := json.NewEncoder(f.Writer)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
