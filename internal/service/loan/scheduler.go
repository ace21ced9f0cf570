package loan

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/loan"
	"github.com/shopspring/decimal"
)

// MaxInstallments caps a schedule so malformed input cannot loop forever.
const MaxInstallments = 24

const (
	firstCutoffDay  = 15
	secondCutoffDay = 30
)

// BuildSchedule amortizes total into per-cutoff installments starting after start.
// Cutoffs fall on the 15th and the 30th; the 30th is clamped to the last day of
// shorter months. Non-positive amounts yield an empty schedule. When the cap is
// reached with a balance left, the schedule is marked Truncated and Remaining
// holds the unscheduled amount. A positive installment that rounds to zero
// schedules nothing and is reported the same way.
func BuildSchedule(total, perCutoff decimal.Decimal, start time.Time) loan.Schedule {
	requested := perCutoff
	total = total.Round(2)
	perCutoff = perCutoff.Round(2)

	s := loan.Schedule{Total: total, PerCutoff: perCutoff}
	if !total.IsPositive() || !perCutoff.IsPositive() {
		if total.IsPositive() && requested.IsPositive() {
			s.Truncated = true
			s.Remaining = total
		}
		return s
	}

	remaining := total
	cursor := loan.DateOf(start)
	for remaining.IsPositive() {
		if len(s.Rows) == MaxInstallments {
			s.Truncated = true
			break
		}
		cursor = NextCutoff(cursor)
		deduction := decimal.Min(remaining, perCutoff)
		remaining = remaining.Sub(deduction)
		s.Rows = append(s.Rows, loan.ScheduleRow{
			CutoffDate: cursor,
			Deduction:  deduction,
			Balance:    remaining,
		})
	}
	s.Remaining = remaining
	return s
}

// NextCutoff returns the cutoff following date: the 30th (or month end) of the
// same month when date is on or before the 15th, otherwise the 15th of the next month.
func NextCutoff(date time.Time) time.Time {
	y, m, d := date.Date()
	if d <= firstCutoffDay {
		return time.Date(y, m, min(secondCutoffDay, daysIn(y, m)), 0, 0, 0, 0, time.UTC)
	}
	return time.Date(y, m+1, firstCutoffDay, 0, 0, 0, 0, time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
