package payroll

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/loan"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
)

// Input is one employee's fully materialized data for a period.
type Input struct {
	Employee     employee.Employee
	Attendance   []attendance.Record
	Additions    []payroll.AdditionEntry
	Installments []loan.Installment
}

// Calculator computes payroll rows against a fixed set of area configs.
// It performs no I/O and is safe for concurrent use.
type Calculator struct {
	configs payroll.AreaConfigs
}

func NewCalculator(configs payroll.AreaConfigs) *Calculator {
	if configs == nil {
		configs = payroll.AreaConfigs{}
	}
	return &Calculator{configs: configs}
}

func (c *Calculator) Compute(cal Calendar, in Input) payroll.PayrollRow {
	emp := in.Employee
	rates := DeriveRates(emp.BasicSalary)

	records := make([]attendance.Record, 0, len(in.Attendance))
	for _, r := range in.Attendance {
		if cal.Contains(r.Date) {
			records = append(records, r)
		}
	}

	attended := cal.CountAttendedDates(records)
	dayOffs := cal.CountWeekday(emp.DayOff)
	billable := BillableDays(attended, dayOffs)

	var cfg *payroll.AreaPayrollConfig
	if v, ok := c.configs.Lookup(emp.Area); ok {
		cfg = &v
	}

	gross := ComputeGross(GrossInput{
		BasicSalary:  emp.BasicSalary,
		Exempted:     emp.IsTimeExempted,
		AreaConfig:   cfg,
		CutoffDays:   cal.TotalDays(),
		BillableDays: billable,
		DailyRate:    rates.Daily,
	})
	att := SummarizeAttendance(records, rates.Hourly, emp.IsTimeExempted)
	add := SummarizeAdditions(in.Additions, cal, rates.Hourly)
	ded := SummarizeDeductions(emp, in.Installments, cal, att.Total)
	net := ComposeNetPay(gross.Gross, add.Total, ded.Total)

	return payroll.PayrollRow{
		EmployeeID:  emp.EmployeeID,
		Name:        emp.Name,
		Designation: emp.Designation,
		Area:        emp.Area,
		PeriodStart: cal.Start(),
		PeriodEnd:   cal.End(),

		BasicSalary: emp.BasicSalary,
		DailyRate:   rates.Daily,
		HourlyRate:  rates.Hourly,

		CutoffDays:   cal.TotalDays(),
		AttendedDays: attended,
		DayOffCount:  dayOffs,
		BillableDays: billable,
		ReportedDays: gross.ReportedDays,
		Basis:        gross.Basis,

		GrossPay:         gross.Gross,
		AbsentDays:       gross.AbsentDays,
		AbsenceDeduction: gross.AbsenceDeduction,

		OvertimeHours:  add.OvertimeHours,
		OvertimePay:    add.OvertimePay,
		FixedAdditions: add.FixedAdditions,
		TotalAdditions: add.Total,

		LateHours:           att.LateHours,
		UndertimeHours:      att.UndertimeHours,
		LateDeduction:       att.LateDeduction,
		UndertimeDeduction:  att.UndertimeDeduction,
		AttendanceDeduction: att.Total,

		SSS:                 ded.SSS,
		PhilHealth:          ded.PhilHealth,
		PagIBIG:             ded.PagIBIG,
		MandatoryDeductions: ded.Mandatory,
		LoanDeductions:      ded.LoanTotal,
		FixedVoluntary:      ded.FixedVoluntary,
		VoluntaryDeductions: ded.Voluntary,
		TotalDeductions:     ded.Total,

		UnclampedNetPay: net.Unclamped,
		NetPay:          net.Net,
	}
}

// ComputeAll groups the raw collections by employee code and computes one row
// per employee, in the order employees are given.
func (c *Calculator) ComputeAll(
	cal Calendar,
	employees []employee.Employee,
	records []attendance.Record,
	additions []payroll.AdditionEntry,
	installments []loan.Installment,
) []payroll.PayrollRow {
	recordsBy := make(map[string][]attendance.Record)
	for _, r := range records {
		recordsBy[r.EmployeeID] = append(recordsBy[r.EmployeeID], r)
	}
	additionsBy := make(map[string][]payroll.AdditionEntry)
	for _, a := range additions {
		additionsBy[a.EmployeeID] = append(additionsBy[a.EmployeeID], a)
	}
	installmentsBy := make(map[string][]loan.Installment)
	for _, i := range installments {
		installmentsBy[i.EmployeeID] = append(installmentsBy[i.EmployeeID], i)
	}

	rows := make([]payroll.PayrollRow, 0, len(employees))
	for _, emp := range employees {
		rows = append(rows, c.Compute(cal, Input{
			Employee:     emp,
			Attendance:   recordsBy[emp.EmployeeID],
			Additions:    additionsBy[emp.EmployeeID],
			Installments: installmentsBy[emp.EmployeeID],
		}))
	}
	return rows
}
