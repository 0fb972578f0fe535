package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/thurmanmarka/glidepath/internal/config"
)

// Exit codes for CLI commands.
const (
	ExitSuccess = 0 // Successful execution
	ExitFailure = 1 // The computation failed (no rise/set on that date, write errors, ...)
	ExitUsage   = 2 // Bad flags, config or input values
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitUsage)
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

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// envelope wraps machine-readable output.
type envelope struct {
	RunID       string      `json:"run_id"`
	Command     string      `json:"command"`
	GeneratedAt time.Time   `json:"generated_at"`
	Data        interface{} `json:"data"`
}

// emit writes data in the configured format. text renders the human form.
func (a *app) emit(command string, data interface{}, text func(io.Writer) error) error {
	env := envelope{
		RunID:       a.newRunID(),
		Command:     command,
		GeneratedAt: a.clock.Now().UTC(),
		Data:        data,
	}

	var err error
	switch a.cfg.Output.Format {
	case config.FormatJSON:
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(env)
	case config.FormatMsgpack:
		enc := msgpack.NewEncoder(a.stdout)
		enc.SetCustomStructTag("json")
		err = enc.Encode(env)
	default:
		err = text(a.stdout)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "writing output", err)
	}
	return nil
}
