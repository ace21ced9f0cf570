package loan

import (
	"time"

	"github.com/shopspring/decimal"
)

const DeductionTypeCashAdvance = "Cash Advance"

// InstallmentStatus enum
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPaid    InstallmentStatus = "paid"
)

// Installment is one stored row of a cash-advance schedule.
// Status is never stored; see StatusAt.
type Installment struct {
	ID               string
	EmployeeID       string
	DeductionType    string
	CutoffDate       time.Time
	DeductionAmount  decimal.Decimal
	RemainingBalance decimal.Decimal
	CreatedAt        time.Time
}

// StatusAt derives the status as of today: paid once the cutoff date has been reached.
// Both dates are compared as calendar dates.
func (i Installment) StatusAt(today time.Time) InstallmentStatus {
	if !DateOf(today).Before(DateOf(i.CutoffDate)) {
		return InstallmentStatusPaid
	}
	return InstallmentStatusPending
}

// ScheduleRow is one generated, not yet stored, installment.
type ScheduleRow struct {
	CutoffDate time.Time
	Deduction  decimal.Decimal
	Balance    decimal.Decimal
}

// Schedule is the output of the installment scheduler. Remaining is the amount
// left unscheduled; it is positive only when Truncated is set.
type Schedule struct {
	Total     decimal.Decimal
	PerCutoff decimal.Decimal
	Rows      []ScheduleRow
	Remaining decimal.Decimal
	Truncated bool
}

func (s Schedule) IsEmpty() bool {
	return len(s.Rows) == 0
}

// DateOf truncates t to UTC midnight of its own calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
