package employee

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ContributionRequest struct {
	Enabled     *bool            `json:"enabled,omitempty"`
	FixedAmount *decimal.Decimal `json:"fixed_amount,omitempty"`
}

type UpdateDeductionSettingsRequest struct {
	SSS                 *ContributionRequest `json:"sss,omitempty"`
	PhilHealth          *ContributionRequest `json:"philhealth,omitempty"`
	PagIBIG             *ContributionRequest `json:"pagibig,omitempty"`
	Adjustments         *Adjustments         `json:"adjustments,omitempty"`
	VoluntaryDeductions *decimal.Decimal     `json:"voluntary_deductions,omitempty"`
}

func (r *UpdateDeductionSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	contributions := []struct {
		field string
		req   *ContributionRequest
	}{
		{"sss.fixed_amount", r.SSS},
		{"philhealth.fixed_amount", r.PhilHealth},
		{"pagibig.fixed_amount", r.PagIBIG},
	}
	for _, c := range contributions {
		if c.req != nil && c.req.FixedAmount != nil && c.req.FixedAmount.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: c.field, Message: "must be non-negative"})
		}
	}
	if r.VoluntaryDeductions != nil && r.VoluntaryDeductions.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "voluntary_deductions", Message: "must be non-negative"})
	}
	if r.SSS == nil && r.PhilHealth == nil && r.PagIBIG == nil && r.Adjustments == nil && r.VoluntaryDeductions == nil {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "at least one field is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Apply merges the request into the contribution, leaving nil fields untouched.
func (r *ContributionRequest) Apply(c Contribution) Contribution {
	if r == nil {
		return c
	}
	if r.Enabled != nil {
		c.Enabled = *r.Enabled
	}
	if r.FixedAmount != nil {
		c.FixedAmount = *r.FixedAmount
	}
	return c
}

type ContributionResponse struct {
	Enabled     bool            `json:"enabled"`
	FixedAmount decimal.Decimal `json:"fixed_amount"`
}

type DeductionSettingsResponse struct {
	EmployeeID          string               `json:"employee_id"`
	Name                string               `json:"name"`
	SSS                 ContributionResponse `json:"sss"`
	PhilHealth          ContributionResponse `json:"philhealth"`
	PagIBIG             ContributionResponse `json:"pagibig"`
	Adjustments         Adjustments          `json:"adjustments"`
	VoluntaryDeductions decimal.Decimal      `json:"voluntary_deductions"`
}

func ToDeductionSettingsResponse(e Employee) DeductionSettingsResponse {
	return DeductionSettingsResponse{
		EmployeeID:          e.EmployeeID,
		Name:                e.Name,
		SSS:                 ContributionResponse{Enabled: e.SSS.Enabled, FixedAmount: e.SSS.FixedAmount},
		PhilHealth:          ContributionResponse{Enabled: e.PhilHealth.Enabled, FixedAmount: e.PhilHealth.FixedAmount},
		PagIBIG:             ContributionResponse{Enabled: e.PagIBIG.Enabled, FixedAmount: e.PagIBIG.FixedAmount},
		Adjustments:         e.Adjustments,
		VoluntaryDeductions: e.VoluntaryDeductions,
	}
}
