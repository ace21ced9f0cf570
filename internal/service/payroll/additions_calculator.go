package payroll

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type AdditionsSummary struct {
	OvertimePay    decimal.Decimal
	OvertimeHours  decimal.Decimal
	FixedAdditions decimal.Decimal
	Total          decimal.Decimal
}

// Participates reports whether an entry counts toward the period: it must be
// approved and either recurring or applied within the calendar.
func Participates(e payroll.AdditionEntry, cal Calendar) bool {
	if e.Status != payroll.AdditionStatusApproved {
		return false
	}
	if e.IsRecurring {
		return true
	}
	return e.AppliedDate != nil && cal.Contains(*e.AppliedDate)
}

// SummarizeAdditions prices overtime at the hourly rate and sums every other
// entry's amount as a fixed addition.
func SummarizeAdditions(entries []payroll.AdditionEntry, cal Calendar, hourly decimal.Decimal) AdditionsSummary {
	var s AdditionsSummary
	for _, e := range entries {
		if !Participates(e, cal) {
			continue
		}
		if e.Type == payroll.AdditionTypeOvertime {
			s.OvertimePay = s.OvertimePay.Add(round2(e.OTHours.Mul(hourly)))
			s.OvertimeHours = s.OvertimeHours.Add(e.OTHours)
			continue
		}
		s.FixedAdditions = s.FixedAdditions.Add(e.Amount)
	}
	s.Total = round2(s.OvertimePay.Add(s.FixedAdditions))
	return s
}
