package clock

import "time"

// Clock abstracts time so session durations are deterministic in tests.
type Clock interface {
	Now() time.Time
}

// System is the wall-clock implementation used outside of tests.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}
