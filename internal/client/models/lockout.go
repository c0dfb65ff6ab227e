package models

import (
	"math"
	"time"
)

// LockoutState is the persisted view of a login lockout.
type LockoutState struct {
	Locked  bool
	EndTime time.Time
}

// Remaining returns the time left until EndTime, clamped at zero.
func (s LockoutState) Remaining(now time.Time) time.Duration {
	if !s.Locked {
		return 0
	}
	d := s.EndTime.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// CeilSeconds rounds d up to whole seconds.
func CeilSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}
