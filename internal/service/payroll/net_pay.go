package payroll

import "github.com/shopspring/decimal"

type NetPay struct {
	Unclamped decimal.Decimal
	Net       decimal.Decimal
}

// ComposeNetPay never returns a negative net; the raw figure is kept for audit.
func ComposeNetPay(gross, additions, deductions decimal.Decimal) NetPay {
	unclamped := round2(gross.Add(additions).Sub(deductions))
	return NetPay{
		Unclamped: unclamped,
		Net:       nonNegative(unclamped),
	}
}
