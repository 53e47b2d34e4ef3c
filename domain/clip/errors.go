package clip

import (
	"errors"
	"fmt"
)

// ErrNoSource is returned by session operations before a source is loaded.
var ErrNoSource = errors.New("no source loaded")

// SourceOpenError reports a path that does not exist or cannot be decoded.
type SourceOpenError struct {
	Path string
	Err  error
}

func (e *SourceOpenError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot open source %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("cannot open source %q", e.Path)
}

func (e *SourceOpenError) Unwrap() error { return e.Err }

// InputValidationError reports out-of-order or malformed user input; the
// job is never started.
type InputValidationError struct {
	Field  string
	Reason string
}

func (e *InputValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// DependencyMissingError reports that the external transcoder could not be
// found at startup. Callers prompt the user with DownloadURL and exit
// cleanly rather than failing.
type DependencyMissingError struct {
	Name        string
	DownloadURL string
}

func (e *DependencyMissingError) Error() string {
	return fmt.Sprintf("%s not found; download it from %s", e.Name, e.DownloadURL)
}

// DependencyNotFoundError reports that the transcoder binary disappeared
// between the startup check and a job invocation. Distinct from
// JobExecutionError: the tool never ran.
type DependencyNotFoundError struct {
	Path string
}

func (e *DependencyNotFoundError) Error() string {
	return fmt.Sprintf("transcoder binary no longer available at %q", e.Path)
}

// JobExecutionError reports a transcoder invocation that exited non-zero.
// Diagnostic carries the text scraped from the tool's stderr.
type JobExecutionError struct {
	Mode       string
	Diagnostic string
	Err        error
}

func (e *JobExecutionError) Error() string {
	return fmt.Sprintf("%s job failed: %v", e.Mode, e.Err)
}

func (e *JobExecutionError) Unwrap() error { return e.Err }
