package commands

import "time"

// Clock returns the instant a command is applied at.
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}
