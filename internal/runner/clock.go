package runner

import "time"

// Clock supplies the current time. Runs take one so tests can pin the
// wall clock; production code passes SystemClock.
type Clock func() time.Time

// SystemClock returns the real local time.
func SystemClock() time.Time {
	return time.Now()
}
