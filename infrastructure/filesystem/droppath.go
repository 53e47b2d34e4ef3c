package filesystem

import (
	"path/filepath"
	"strings"
)

// NormalizeDropPath turns a dropped-file payload string into a host path.
// Drop payloads arrive brace-wrapped when the path contains spaces
// ("{C:/clips/my take.mp4}"), sometimes quoted, and with foreign path
// separators; all of that is stripped before validation.
func NormalizeDropPath(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") && len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	s = strings.Trim(s, `"'`)
	s = strings.TrimSpace(s)

	// Normalize separators for the host platform.
	s = strings.ReplaceAll(s, "\\", "/")
	return filepath.FromSlash(s)
}
