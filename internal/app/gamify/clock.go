package gamify

import "time"

// SystemClock is the wall clock, pinned to a configured timezone so
// calendar-date decisions (streaks, early-bird cutoff) are stable even if
// the process environment changes.
type SystemClock struct {
	loc *time.Location
}

// NewSystemClock returns a clock in the given location. A nil location
// falls back to the local timezone.
func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.Local
	}
	return &SystemClock{loc: loc}
}

func (c *SystemClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c *SystemClock) Today() string            { return c.Now().Format(dateLayout) }
func (c *SystemClock) Location() *time.Location { return c.loc }
