package payroll

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

type AttendanceSummary struct {
	LateHours          decimal.Decimal
	UndertimeHours     decimal.Decimal
	LateDeduction      decimal.Decimal
	UndertimeDeduction decimal.Decimal
	Total              decimal.Decimal
}

// SummarizeAttendance totals late and undertime penalties. Exempted employees
// are never penalized. Records must already be restricted to the period.
func SummarizeAttendance(records []attendance.Record, hourly decimal.Decimal, exempted bool) AttendanceSummary {
	var s AttendanceSummary
	if exempted {
		return s
	}

	for _, r := range records {
		s.LateHours = s.LateHours.Add(nonNegative(r.LateHours))
		s.UndertimeHours = s.UndertimeHours.Add(nonNegative(r.UndertimeHours))
	}
	s.LateDeduction = round2(s.LateHours.Mul(hourly))
	s.UndertimeDeduction = round2(s.UndertimeHours.Mul(hourly))
	s.Total = round2(s.LateDeduction.Add(s.UndertimeDeduction))
	return s
}
