package clip

import (
	"fmt"
	"math"
)

// FormatDuration renders a duration in seconds as a scrubber readout:
// "H:MM:SS.ss" when at least one hour, "M:SS.ss" otherwise.
// Degenerate input (negative, NaN, infinite) renders as "0:00.00" so a
// source with unreadable frame-rate metadata never breaks the readout.
func FormatDuration(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "0:00.00"
	}

	// Work in whole centiseconds to avoid float carry bugs at minute
	// boundaries (59.999s must render as 1:00.00, not 0:60.00).
	cs := int64(math.Round(seconds * 100))
	hours := cs / 360000
	minutes := (cs % 360000) / 6000
	rem := cs % 6000

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, rem/100, rem%100)
	}
	return fmt.Sprintf("%d:%02d.%02d", minutes, rem/100, rem%100)
}

// FrameTime converts a frame index to seconds at the given frame rate.
// A non-positive or non-finite rate yields a negative duration, which
// FormatDuration renders as the sentinel readout.
func FrameTime(frame int, frameRate float64) float64 {
	if frameRate <= 0 || math.IsNaN(frameRate) || math.IsInf(frameRate, 0) {
		return -1
	}
	return float64(frame) / frameRate
}
