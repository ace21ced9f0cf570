package clock

import "time"

// Clock supplies the current time. Services take a Clock instead of calling time.Now.
type Clock interface {
	Now() time.Time
}

type Real struct {
	Location *time.Location
}

func (r Real) Now() time.Time {
	if r.Location != nil {
		return time.Now().In(r.Location)
	}
	return time.Now()
}

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Today returns c's current calendar date as UTC midnight.
func Today(c Clock) time.Time {
	y, m, d := c.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
