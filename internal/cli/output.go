package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/envelope-sh/envelope/internal/store"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Operation failure (unknown environment, ...)
	ExitCommandError = 2 // Command error (not initialized, storage failure, ...)
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
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

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
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

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string      `json:"status"`         // "ok"
	Data   interface{} `json:"data,omitempty"` // success payload
}

// variableRow is the JSON projection of a store.Record.
type variableRow struct {
	Env       string  `json:"env"`
	Key       string  `json:"key"`
	Value     *string `json:"value"`
	CreatedAt int64   `json:"created_at"`
	Deleted   bool    `json:"deleted,omitempty"`
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data interface{}) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Records outputs variable records: dotenv-style lines in text mode,
// structured rows in JSON. Tombstones (only ever present in history
// output) are marked rather than printed as empty values.
func (f *OutputFormatter) Records(records []store.Record) error {
	if f.Format == "json" {
		rows := make([]variableRow, 0, len(records))
		for _, r := range records {
			row := variableRow{
				Env:       r.Env,
				Key:       r.Key,
				CreatedAt: r.CreatedAt,
				Deleted:   r.Deleted(),
			}
			if r.Value.Valid {
				v := r.Value.String
				row.Value = &v
			}
			rows = append(rows, row)
		}
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: rows})
	}

	for _, r := range records {
		if r.Deleted() {
			fmt.Fprintf(f.Writer, "%s (deleted)\n", r.Key)
			continue
		}
		fmt.Fprintf(f.Writer, "%s=%s\n", r.Key, r.Value.String)
	}
	return nil
}

// Items outputs a plain list of names, one per line in text mode.
func (f *OutputFormatter) Items(items []string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: items})
	}
	for _, item := range items {
		fmt.Fprintln(f.Writer, item)
	}
	return nil
}
