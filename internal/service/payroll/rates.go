package payroll

import "github.com/shopspring/decimal"

const (
	DaysPerMonth = 30
	HoursPerDay  = 8
)

var (
	daysPerMonth = decimal.NewFromInt(DaysPerMonth)
	hoursPerDay  = decimal.NewFromInt(HoursPerDay)
	two          = decimal.NewFromInt(2)
)

// Rates are kept at full precision; only money outputs are rounded.
type Rates struct {
	Daily  decimal.Decimal
	Hourly decimal.Decimal
}

// DeriveRates converts a monthly salary using a fixed 30-day month and 8-hour day.
// A negative salary is treated as zero.
func DeriveRates(basicSalary decimal.Decimal) Rates {
	if basicSalary.IsNegative() {
		basicSalary = decimal.Zero
	}
	daily := basicSalary.Div(daysPerMonth)
	return Rates{
		Daily:  daily,
		Hourly: daily.Div(hoursPerDay),
	}
}

// round2 rounds half away from zero to centavos.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
