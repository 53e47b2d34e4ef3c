package ffmpeg

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"framecut/domain/clip"
)

var errNotFound = errors.New("not found")

func statSet(existing ...string) func(string) (os.FileInfo, error) {
	set := map[string]bool{}
	for _, p := range existing {
		set[p] = true
	}
	return func(path string) (os.FileInfo, error) {
		if set[path] {
			return nil, nil
		}
		return nil, errNotFound
	}
}

func TestLocateConfiguredPathWins(t *testing.T) {
	l := NewLocatorWith(
		WithStat(statSet("/opt/ffmpeg/ffmpeg")),
		WithLookPath(func(string) (string, error) { return "/usr/bin/ffmpeg", nil }),
	)

	got, err := l.Locate("/opt/ffmpeg/ffmpeg")
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	if got != "/opt/ffmpeg/ffmpeg" {
		t.Errorf("Locate() = %q, want configured path", got)
	}
}

func TestLocateFallsThroughBrokenConfiguredPath(t *testing.T) {
	l := NewLocatorWith(
		WithStat(statSet()),
		WithLookPath(func(string) (string, error) { return "/usr/bin/ffmpeg", nil }),
	)

	got, err := l.Locate("/missing/ffmpeg")
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	if got != "/usr/bin/ffmpeg" {
		t.Errorf("Locate() = %q, want search-path result", got)
	}
}

func TestLocateBesideExecutableFallback(t *testing.T) {
	beside := filepath.Join("/apps/framecut", binaryName())
	l := NewLocatorWith(
		WithStat(statSet(beside)),
		WithLookPath(func(string) (string, error) { return "", errNotFound }),
		WithExecutable(func() (string, error) { return "/apps/framecut/framecut", nil }),
	)

	got, err := l.Locate("")
	if err != nil {
		t.Fatalf("Locate() error: %v", err)
	}
	if got != beside {
		t.Errorf("Locate() = %q, want %q", got, beside)
	}
}

func TestLocateMissingEverywhere(t *testing.T) {
	l := NewLocatorWith(
		WithStat(statSet()),
		WithLookPath(func(string) (string, error) { return "", errNotFound }),
		WithExecutable(func() (string, error) { return "/apps/framecut/framecut", nil }),
	)

	_, err := l.Locate("")
	var missing *clip.DependencyMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("Locate() error = %v, want *DependencyMissingError", err)
	}
	if missing.DownloadURL != DownloadURL {
		t.Errorf("DownloadURL = %q, want %q", missing.DownloadURL, DownloadURL)
	}
}
