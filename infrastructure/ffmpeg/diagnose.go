package ffmpeg

import "strings"

// maxFallbackLines bounds the diagnostic excerpt when no line matches.
const maxFallbackLines = 20

// Summarize extracts the interesting part of an ffmpeg stderr dump for the
// error-log display: every line containing "error" or "fail"
// (case-insensitive), or the first 20 lines when nothing matches.
//
// This is a heuristic scrape, not a structured contract — ffmpeg offers no
// machine-readable failure channel, so the behavior is kept loose on
// purpose and should not be parsed further.
func Summarize(stderr string) string {
	lines := strings.Split(strings.TrimRight(stderr, "\n"), "\n")

	var matched []string
	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "error") || strings.Contains(lower, "fail") {
			matched = append(matched, line)
		}
	}
	if len(matched) > 0 {
		return strings.Join(matched, "\n")
	}

	if len(lines) > maxFallbackLines {
		lines = lines[:maxFallbackLines]
	}
	return strings.Join(lines, "\n")
}
