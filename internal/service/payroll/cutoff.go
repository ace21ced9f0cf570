package payroll

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
)

// Calendar is an inclusive range of calendar dates.
type Calendar struct {
	start time.Time
	end   time.Time
}

// NewCalendar normalizes both bounds to calendar dates. A period ending before
// it starts is rejected with payroll.ErrInvalidPeriod.
func NewCalendar(start, end time.Time) (Calendar, error) {
	s, e := dateOf(start), dateOf(end)
	if e.Before(s) {
		return Calendar{}, payroll.ErrInvalidPeriod
	}
	return Calendar{start: s, end: e}, nil
}

func (c Calendar) Start() time.Time { return c.start }
func (c Calendar) End() time.Time   { return c.end }

func (c Calendar) TotalDays() int {
	return int(c.end.Sub(c.start).Hours()/24) + 1
}

func (c Calendar) Dates() []time.Time {
	dates := make([]time.Time, 0, c.TotalDays())
	for d := c.start; !d.After(c.end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

func (c Calendar) Contains(t time.Time) bool {
	d := dateOf(t)
	return !d.Before(c.start) && !d.After(c.end)
}

// CountWeekday counts the dates in the range falling on the day-off weekday.
// Unset, sentinel and unknown codes count as zero.
func (c Calendar) CountWeekday(dayOff employee.DayOff) int {
	wd, ok := dayOff.Weekday()
	if !ok {
		return 0
	}
	count := 0
	for _, d := range c.Dates() {
		if d.Weekday() == wd {
			count++
		}
	}
	return count
}

// CountAttendedDates counts distinct in-range dates with a non-absent record.
func (c Calendar) CountAttendedDates(records []attendance.Record) int {
	seen := make(map[time.Time]struct{}, len(records))
	for _, r := range records {
		if !r.Attended() || !c.Contains(r.Date) {
			continue
		}
		seen[dateOf(r.Date)] = struct{}{}
	}
	return len(seen)
}

// ResolveCutoff returns the semi-monthly window containing date:
// the 11th to the 25th, or the 26th to the 10th of the following month.
func ResolveCutoff(date time.Time) Calendar {
	y, m, d := date.Date()
	switch {
	case d >= 11 && d <= 25:
		return Calendar{
			start: time.Date(y, m, 11, 0, 0, 0, 0, time.UTC),
			end:   time.Date(y, m, 25, 0, 0, 0, 0, time.UTC),
		}
	case d > 25:
		return Calendar{
			start: time.Date(y, m, 26, 0, 0, 0, 0, time.UTC),
			end:   time.Date(y, m+1, 10, 0, 0, 0, 0, time.UTC),
		}
	default:
		return Calendar{
			start: time.Date(y, m-1, 26, 0, 0, 0, 0, time.UTC),
			end:   time.Date(y, m, 10, 0, 0, 0, 0, time.UTC),
		}
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
