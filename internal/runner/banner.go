package runner

import (
	"fmt"
	"time"
)

// Timestamp layouts. The filename layout swaps colons for dashes so the
// name is valid on every filesystem; the banner layout is the plain form.
const (
	fileStampLayout   = "2006-01-02_15-04-05"
	bannerStampLayout = "2006-01-02 15:04:05"
)

// LogFileName returns the log filename for a run starting at t,
// e.g. "Answer_2024-01-02_03-04-05.log".
func LogFileName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.log", prefix, t.Format(fileStampLayout))
}

// StartBanner returns the line written to the merged stream before the
// child starts. The timestamp is read fresh from the clock, not reused
// from the filename computation.
func StartBanner(t time.Time) string {
	return fmt.Sprintf("===== Run started: %s =====\n", t.Format(bannerStampLayout))
}

// EndBanner returns the line written to the merged stream after the
// child exits.
func EndBanner(t time.Time) string {
	return fmt.Sprintf("===== Run finished: %s =====\n", t.Format(bannerStampLayout))
}

// SavedLine returns the trailing terminal-only confirmation line.
func SavedLine(absPath string) string {
	return fmt.Sprintf("Log saved to: %s\n", absPath)
}
