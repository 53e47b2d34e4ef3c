package ffmpeg

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"framecut/domain/clip"
)

// DownloadURL is where the user is sent when no ffmpeg can be found.
const DownloadURL = "https://ffmpeg.org/download.html"

// Locator discovers the ffmpeg binary: an explicitly configured path wins,
// then the system search path, then a copy colocated with our executable.
// The lookup hooks are injectable for tests.
type Locator struct {
	lookPath   func(name string) (string, error)
	stat       func(path string) (os.FileInfo, error)
	executable func() (string, error)
}

// NewLocator creates a locator backed by the real filesystem.
func NewLocator() *Locator {
	return &Locator{
		lookPath:   exec.LookPath,
		stat:       os.Stat,
		executable: os.Executable,
	}
}

// LocatorOption is a functional option for configuring Locator.
type LocatorOption func(*Locator)

// WithLookPath overrides the search-path lookup (for testing).
func WithLookPath(fn func(string) (string, error)) LocatorOption {
	return func(l *Locator) { l.lookPath = fn }
}

// WithStat overrides file probing (for testing).
func WithStat(fn func(string) (os.FileInfo, error)) LocatorOption {
	return func(l *Locator) { l.stat = fn }
}

// WithExecutable overrides the own-executable lookup (for testing).
func WithExecutable(fn func() (string, error)) LocatorOption {
	return func(l *Locator) { l.executable = fn }
}

// NewLocatorWith creates a locator with the given overrides applied.
func NewLocatorWith(opts ...LocatorOption) *Locator {
	l := NewLocator()
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate resolves the ffmpeg path. configured may be empty. When every
// strategy fails it returns *clip.DependencyMissingError so the caller can
// prompt for the download page and exit cleanly.
func (l *Locator) Locate(configured string) (string, error) {
	if configured != "" {
		if _, err := l.stat(configured); err == nil {
			return configured, nil
		}
	}

	if path, err := l.lookPath(binaryName()); err == nil {
		return path, nil
	}

	if self, err := l.executable(); err == nil {
		beside := filepath.Join(filepath.Dir(self), binaryName())
		if _, err := l.stat(beside); err == nil {
			return beside, nil
		}
	}

	return "", &clip.DependencyMissingError{Name: "ffmpeg", DownloadURL: DownloadURL}
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "ffmpeg.exe"
	}
	return "ffmpeg"
}
