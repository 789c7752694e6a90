package repo

import (
	"sync"
	"time"
)

// TimestampLayout is the format of commit timestamps.
const TimestampLayout = "Mon Jan 02 15:04:05 2006 -0700"

// Clock supplies the wall-clock time recorded in commits.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// StepClock starts at a fixed instant and advances by Step on every call.
// Tests use it so that commit timestamps, and with them digests, are
// deterministic and distinct.
type StepClock struct {
	mu   sync.Mutex
	next time.Time
	Step time.Duration
}

func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{next: start, Step: step}
}

func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.next
	c.next = c.next.Add(c.Step)
	return now
}

func formatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// rootTimestamp is the fixed timestamp of every repository's root commit.
func rootTimestamp() string {
	return formatTimestamp(time.Unix(0, 0).UTC())
}
