package loan

import (
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CashAdvanceRequest struct {
	EmployeeID         string           `json:"-"`
	TotalAmount        *decimal.Decimal `json:"total_amount"`
	PerCutoffDeduction *decimal.Decimal `json:"per_cutoff_deduction"`
	StartDate          *string          `json:"start_date,omitempty"` // YYYY-MM-DD, defaults to today

	Start *time.Time `json:"-"`
}

// Validate checks presence and format. Non-positive amounts are accepted and
// produce an empty schedule; positive amounts must be whole cents.
func (r *CashAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	amounts := []struct {
		field string
		value *decimal.Decimal
	}{
		{"total_amount", r.TotalAmount},
		{"per_cutoff_deduction", r.PerCutoffDeduction},
	}
	for _, a := range amounts {
		switch {
		case a.value == nil:
			errs = append(errs, validator.ValidationError{Field: a.field, Message: "is required"})
		case a.value.IsPositive() && !validator.IsCents(*a.value):
			errs = append(errs, validator.ValidationError{Field: a.field, Message: "must have at most 2 decimal places"})
		}
	}
	if r.StartDate != nil {
		start, ok := validator.IsValidDate(*r.StartDate)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a date in YYYY-MM-DD format"})
		} else {
			r.Start = &start
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type InstallmentResponse struct {
	ID               string            `json:"id,omitempty"`
	DeductionType    string            `json:"deduction_type"`
	CutoffDate       string            `json:"cutoff_date"`
	DeductionAmount  decimal.Decimal   `json:"deduction_amount"`
	RemainingBalance decimal.Decimal   `json:"remaining_balance"`
	Status           InstallmentStatus `json:"status"`
}

type ScheduleResponse struct {
	EmployeeID   string                `json:"employee_id,omitempty"`
	Installments []InstallmentResponse `json:"installments"`
	Scheduled    decimal.Decimal       `json:"scheduled"`
	Outstanding  decimal.Decimal       `json:"outstanding"` // pending as of today
	Remaining    decimal.Decimal       `json:"remaining"`
	Truncated    bool                  `json:"truncated"`
}

func ToInstallmentResponse(i Installment, today time.Time) InstallmentResponse {
	return InstallmentResponse{
		ID:               i.ID,
		DeductionType:    i.DeductionType,
		CutoffDate:       i.CutoffDate.Format(validator.DateLayout),
		DeductionAmount:  i.DeductionAmount,
		RemainingBalance: i.RemainingBalance,
		Status:           i.StatusAt(today),
	}
}
