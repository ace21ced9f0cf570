package payroll

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type GrossInput struct {
	BasicSalary  decimal.Decimal
	Exempted     bool
	AreaConfig   *payroll.AreaPayrollConfig // nil when the area has no stored config
	CutoffDays   int
	BillableDays int
	DailyRate    decimal.Decimal
}

type GrossPay struct {
	Basis            payroll.PayBasis
	Gross            decimal.Decimal
	AbsentDays       int
	AbsenceDeduction decimal.Decimal
	ReportedDays     int
}

// SelectBasis picks the pay basis: exemption first, then a fixed-rate area
// config, otherwise daily rate.
func SelectBasis(exempted bool, cfg *payroll.AreaPayrollConfig) payroll.PayBasis {
	if exempted {
		return payroll.PayBasisExempted
	}
	if cfg != nil {
		return cfg.Basis()
	}
	return payroll.PayBasisDailyRate
}

// BillableDays is attended days plus scheduled day-offs, or zero when nothing
// was attended in the period.
func BillableDays(attended, dayOffs int) int {
	if attended <= 0 {
		return 0
	}
	return attended + dayOffs
}

func ComputeGross(in GrossInput) GrossPay {
	basic := nonNegative(in.BasicSalary)
	semiMonthly := basic.Div(two)
	missing := max(0, in.CutoffDays-in.BillableDays)

	out := GrossPay{Basis: SelectBasis(in.Exempted, in.AreaConfig)}

	switch out.Basis {
	case payroll.PayBasisExempted:
		out.Gross = round2(semiMonthly)
		out.AbsenceDeduction = decimal.Zero
		out.ReportedDays = in.CutoffDays
		return out

	case payroll.PayBasisFixedRate:
		out.AbsentDays = missing
		out.AbsenceDeduction = round2(decimal.NewFromInt(int64(missing)).Mul(in.DailyRate))
		if in.BillableDays == 0 {
			out.Gross = decimal.Zero
		} else {
			out.Gross = round2(semiMonthly).Sub(out.AbsenceDeduction)
		}

	default:
		out.AbsentDays = missing
		out.AbsenceDeduction = round2(decimal.NewFromInt(int64(missing)).Mul(in.DailyRate))
		out.Gross = round2(in.DailyRate.Mul(decimal.NewFromInt(int64(in.BillableDays))))
	}

	out.Gross = nonNegative(out.Gross)
	out.ReportedDays = in.BillableDays
	return out
}
