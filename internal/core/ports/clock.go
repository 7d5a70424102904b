package ports

import "time"

// Clock abstracts the current time so scheduling decisions and the overdue
// sweep can be tested against a fixed instant.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock, reporting wall-clock time in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}
