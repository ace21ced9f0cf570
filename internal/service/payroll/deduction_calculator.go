package payroll

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/loan"
	"github.com/shopspring/decimal"
)

type DeductionSummary struct {
	SSS            decimal.Decimal
	PhilHealth     decimal.Decimal
	PagIBIG        decimal.Decimal
	Mandatory      decimal.Decimal
	LoanTotal      decimal.Decimal
	FixedVoluntary decimal.Decimal
	Voluntary      decimal.Decimal
	Attendance     decimal.Decimal
	Total          decimal.Decimal
}

// SummarizeDeductions combines contributions, voluntary deductions and the
// loan installments falling due within the calendar.
//
// Every installment dated inside the period is deducted, whenever payroll runs.
// Paid status is only a display concern and does not filter here.
func SummarizeDeductions(emp employee.Employee, installments []loan.Installment, cal Calendar, attendanceDeduction decimal.Decimal) DeductionSummary {
	s := DeductionSummary{
		SSS:            emp.SSS.Amount(),
		PhilHealth:     emp.PhilHealth.Amount(),
		PagIBIG:        emp.PagIBIG.Amount(),
		FixedVoluntary: emp.VoluntaryDeductions,
		Attendance:     attendanceDeduction,
	}
	s.Mandatory = round2(s.SSS.Add(s.PhilHealth).Add(s.PagIBIG))

	for _, inst := range installments {
		if !cal.Contains(inst.CutoffDate) {
			continue
		}
		s.LoanTotal = s.LoanTotal.Add(inst.DeductionAmount)
	}
	s.Voluntary = round2(s.LoanTotal.Add(s.FixedVoluntary))
	s.Total = round2(s.Attendance.Add(s.Mandatory).Add(s.Voluntary))
	return s
}

