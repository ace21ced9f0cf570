package payroll

import (
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== ADDITION DTOs ==========

type CreateAdditionRequest struct {
	EmployeeID  string           `json:"-"`
	Type        string           `json:"type"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	OTHours     *decimal.Decimal `json:"ot_hours,omitempty"`
	AppliedDate *string          `json:"applied_date,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *CreateAdditionRequest) Validate() error {
	var errs validator.ValidationErrors

	switch AdditionType(r.Type) {
	case AdditionTypeAllowance, AdditionTypeRestday:
		if !validator.IsPositive(r.Amount) {
			errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be greater than 0"})
		}
	case AdditionTypeOvertime:
		if !validator.IsPositive(r.OTHours) {
			errs = append(errs, validator.ValidationError{Field: "ot_hours", Message: "must be greater than 0"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'Allowance', 'Restday' or 'Overtime'"})
	}
	if r.AppliedDate != nil {
		if _, ok := validator.IsValidDate(*r.AppliedDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "applied_date", Message: "must be a date in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdditionResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Type        AdditionType    `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	OTHours     decimal.Decimal `json:"ot_hours"`
	IsRecurring bool            `json:"is_recurring"`
	AppliedDate *string         `json:"applied_date,omitempty"`
	Status      AdditionStatus  `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ToAdditionResponse(e AdditionEntry) AdditionResponse {
	resp := AdditionResponse{
		ID:          e.ID,
		EmployeeID:  e.EmployeeID,
		Type:        e.Type,
		Amount:      e.Amount,
		OTHours:     e.OTHours,
		IsRecurring: e.IsRecurring,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
	}
	if e.AppliedDate != nil {
		d := e.AppliedDate.Format(validator.DateLayout)
		resp.AppliedDate = &d
	}
	return resp
}

// ========== AREA CONFIG DTOs ==========

type AreaConfigRequest struct {
	Area      string `json:"area" yaml:"area"`
	IsFixed   bool   `json:"is_fixed" yaml:"is_fixed"`
	IsDaily   bool   `json:"is_daily" yaml:"is_daily"`
	IsMonthly bool   `json:"is_monthly" yaml:"is_monthly"`
	IsSemi    bool   `json:"is_semi" yaml:"is_semi"`
}

type UpsertAreaConfigsRequest struct {
	Configs []AreaConfigRequest `json:"configs" yaml:"configs"`
}

func (r *UpsertAreaConfigsRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Configs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "configs", Message: "is required"})
	}
	seen := make(map[string]bool, len(r.Configs))
	for i, c := range r.Configs {
		prefix := "configs[" + strconv.Itoa(i) + "]"
		area := strings.TrimSpace(c.Area)
		if area == "" {
			errs = append(errs, validator.ValidationError{Field: prefix + ".area", Message: "is required"})
		} else if seen[area] {
			errs = append(errs, validator.ValidationError{Field: prefix + ".area", Message: "is duplicated"})
		}
		seen[area] = true
		if c.IsFixed == c.IsDaily {
			errs = append(errs, validator.ValidationError{Field: prefix + ".is_fixed", Message: "exactly one of is_fixed and is_daily must be true"})
		}
		if c.IsMonthly == c.IsSemi {
			errs = append(errs, validator.ValidationError{Field: prefix + ".is_monthly", Message: "exactly one of is_monthly and is_semi must be true"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c AreaConfigRequest) ToEntity() AreaPayrollConfig {
	return AreaPayrollConfig{
		Area:      strings.TrimSpace(c.Area),
		IsFixed:   c.IsFixed,
		IsDaily:   c.IsDaily,
		IsMonthly: c.IsMonthly,
		IsSemi:    c.IsSemi,
	}
}

type AreaConfigResponse struct {
	Area      string   `json:"area"`
	IsFixed   bool     `json:"is_fixed"`
	IsDaily   bool     `json:"is_daily"`
	IsMonthly bool     `json:"is_monthly"`
	IsSemi    bool     `json:"is_semi"`
	Basis     PayBasis `json:"basis"`
	IsDefault bool     `json:"is_default"` // no stored row
}

func ToAreaConfigResponse(c AreaPayrollConfig, isDefault bool) AreaConfigResponse {
	return AreaConfigResponse{
		Area:      c.Area,
		IsFixed:   c.IsFixed,
		IsDaily:   c.IsDaily,
		IsMonthly: c.IsMonthly,
		IsSemi:    c.IsSemi,
		Basis:     c.Basis(),
		IsDefault: isDefault,
	}
}

// ========== REPORT DTOs ==========

type ReportRequest struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Search string `json:"search,omitempty"`

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// Validate also populates Start and End.
func (r *ReportRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Start, r.End = validator.ValidatePeriod(r.From, r.To, &errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayrollRowResponse struct {
	EmployeeID  string  `json:"employee_id"`
	Name        string  `json:"name"`
	Designation *string `json:"designation,omitempty"`
	Area        string  `json:"area"`

	BasicSalary decimal.Decimal `json:"basic_salary"`
	DailyRate   decimal.Decimal `json:"daily_rate"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`

	CutoffDays   int      `json:"cutoff_days"`
	AttendedDays int      `json:"attended_days"`
	DayOffCount  int      `json:"day_off_count"`
	BillableDays int      `json:"billable_days"`
	ReportedDays int      `json:"reported_days"`
	Basis        PayBasis `json:"basis"`

	GrossPay         decimal.Decimal `json:"gross_pay"`
	AbsentDays       int             `json:"absent_days"`
	AbsenceDeduction decimal.Decimal `json:"absence_deduction"`

	OvertimeHours  decimal.Decimal `json:"overtime_hours"`
	OvertimePay    decimal.Decimal `json:"overtime_pay"`
	FixedAdditions decimal.Decimal `json:"fixed_additions"`
	TotalAdditions decimal.Decimal `json:"total_additions"`

	LateHours           decimal.Decimal `json:"late_hours"`
	UndertimeHours      decimal.Decimal `json:"undertime_hours"`
	LateDeduction       decimal.Decimal `json:"late_deduction"`
	UndertimeDeduction  decimal.Decimal `json:"undertime_deduction"`
	AttendanceDeduction decimal.Decimal `json:"attendance_deduction"`

	SSS                 decimal.Decimal `json:"sss"`
	PhilHealth          decimal.Decimal `json:"philhealth"`
	PagIBIG             decimal.Decimal `json:"pagibig"`
	MandatoryDeductions decimal.Decimal `json:"mandatory_deductions"`
	LoanDeductions      decimal.Decimal `json:"loan_deductions"`
	FixedVoluntary      decimal.Decimal `json:"fixed_voluntary"`
	VoluntaryDeductions decimal.Decimal `json:"voluntary_deductions"`
	TotalDeductions     decimal.Decimal `json:"total_deductions"`

	UnclampedNetPay decimal.Decimal `json:"unclamped_net_pay"`
	NetPay          decimal.Decimal `json:"net_pay"`
}

func ToPayrollRowResponse(r PayrollRow) PayrollRowResponse {
	return PayrollRowResponse{
		EmployeeID:          r.EmployeeID,
		Name:                r.Name,
		Designation:         r.Designation,
		Area:                r.Area,
		BasicSalary:         r.BasicSalary,
		DailyRate:           r.DailyRate,
		HourlyRate:          r.HourlyRate,
		CutoffDays:          r.CutoffDays,
		AttendedDays:        r.AttendedDays,
		DayOffCount:         r.DayOffCount,
		BillableDays:        r.BillableDays,
		ReportedDays:        r.ReportedDays,
		Basis:               r.Basis,
		GrossPay:            r.GrossPay,
		AbsentDays:          r.AbsentDays,
		AbsenceDeduction:    r.AbsenceDeduction,
		OvertimeHours:       r.OvertimeHours,
		OvertimePay:         r.OvertimePay,
		FixedAdditions:      r.FixedAdditions,
		TotalAdditions:      r.TotalAdditions,
		LateHours:           r.LateHours,
		UndertimeHours:      r.UndertimeHours,
		LateDeduction:       r.LateDeduction,
		UndertimeDeduction:  r.UndertimeDeduction,
		AttendanceDeduction: r.AttendanceDeduction,
		SSS:                 r.SSS,
		PhilHealth:          r.PhilHealth,
		PagIBIG:             r.PagIBIG,
		MandatoryDeductions: r.MandatoryDeductions,
		LoanDeductions:      r.LoanDeductions,
		FixedVoluntary:      r.FixedVoluntary,
		VoluntaryDeductions: r.VoluntaryDeductions,
		TotalDeductions:     r.TotalDeductions,
		UnclampedNetPay:     r.UnclampedNetPay,
		NetPay:              r.NetPay,
	}
}

type ReportTotals struct {
	Employees       int             `json:"employees"`
	GrossPay        decimal.Decimal `json:"gross_pay"`
	TotalAdditions  decimal.Decimal `json:"total_additions"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetPay          decimal.Decimal `json:"net_pay"`
}

// Add accumulates one row into the totals.
func (t *ReportTotals) Add(r PayrollRow) {
	t.Employees++
	t.GrossPay = t.GrossPay.Add(r.GrossPay)
	t.TotalAdditions = t.TotalAdditions.Add(r.TotalAdditions)
	t.TotalDeductions = t.TotalDeductions.Add(r.TotalDeductions)
	t.NetPay = t.NetPay.Add(r.NetPay)
}

type AreaGroup struct {
	Area   string               `json:"area"`
	Rows   []PayrollRowResponse `json:"rows"`
	Totals ReportTotals         `json:"totals"`
}

type ReportResponse struct {
	ReportID    string       `json:"report_id"`
	PeriodStart string       `json:"period_start"`
	PeriodEnd   string       `json:"period_end"`
	CutoffDays  int          `json:"cutoff_days"`
	Areas       []AreaGroup  `json:"areas"`
	Totals      ReportTotals `json:"totals"`
	GeneratedAt time.Time    `json:"generated_at"`
}

type CutoffResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}
