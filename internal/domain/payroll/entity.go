package payroll

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ========== ADDITIONS ==========

// AdditionType enum
type AdditionType string

const (
	AdditionTypeAllowance AdditionType = "Allowance"
	AdditionTypeRestday   AdditionType = "Restday"
	AdditionTypeOvertime  AdditionType = "Overtime"
)

func (t AdditionType) IsValid() bool {
	switch t {
	case AdditionTypeAllowance, AdditionTypeRestday, AdditionTypeOvertime:
		return true
	}
	return false
}

// AdditionStatus enum
type AdditionStatus string

const (
	AdditionStatusPending  AdditionStatus = "Pending"
	AdditionStatusApproved AdditionStatus = "Approved"
)

// AdditionEntry is an ad-hoc pay addition recorded by an administrator.
// For Overtime entries Amount is informational; pay is re-derived from OTHours.
type AdditionEntry struct {
	ID          string
	EmployeeID  string
	Type        AdditionType
	Amount      decimal.Decimal
	OTHours     decimal.Decimal
	IsRecurring bool
	AppliedDate *time.Time
	Status      AdditionStatus
	CreatedAt   time.Time
}

// ========== AREA CONFIG ==========

// PayBasis enum
type PayBasis string

const (
	PayBasisExempted  PayBasis = "exempted"
	PayBasisFixedRate PayBasis = "fixed_rate"
	PayBasisDailyRate PayBasis = "daily_rate"
)

// AreaPayrollConfig selects the pay basis for every employee of an area.
// IsMonthly/IsSemi describe payout cadence and do not affect computation.
type AreaPayrollConfig struct {
	Area      string
	IsFixed   bool
	IsDaily   bool
	IsMonthly bool
	IsSemi    bool
	UpdatedAt time.Time
}

// DefaultAreaConfig is the config reported for an area with no stored row.
func DefaultAreaConfig(area string) AreaPayrollConfig {
	return AreaPayrollConfig{Area: area, IsDaily: true, IsSemi: true}
}

func (c AreaPayrollConfig) Basis() PayBasis {
	if c.IsFixed {
		return PayBasisFixedRate
	}
	return PayBasisDailyRate
}

// AreaConfigs maps an area name to its config. Keys are trimmed area names.
type AreaConfigs map[string]AreaPayrollConfig

func NewAreaConfigs(rows []AreaPayrollConfig) AreaConfigs {
	configs := make(AreaConfigs, len(rows))
	for _, row := range rows {
		configs[strings.TrimSpace(row.Area)] = row
	}
	return configs
}

// Lookup returns the config for area; ok is false when none is stored.
func (c AreaConfigs) Lookup(area string) (AreaPayrollConfig, bool) {
	cfg, ok := c[strings.TrimSpace(area)]
	return cfg, ok
}

// ========== COMPUTED ROW ==========

// PayrollRow is the flat per-employee result of one cutoff computation.
// Presentation and export code render it as-is.
type PayrollRow struct {
	EmployeeID  string
	Name        string
	Designation *string
	Area        string
	PeriodStart time.Time
	PeriodEnd   time.Time

	BasicSalary decimal.Decimal
	DailyRate   decimal.Decimal
	HourlyRate  decimal.Decimal

	CutoffDays   int
	AttendedDays int
	DayOffCount  int
	BillableDays int
	ReportedDays int
	Basis        PayBasis

	GrossPay         decimal.Decimal
	AbsentDays       int
	AbsenceDeduction decimal.Decimal

	OvertimeHours  decimal.Decimal
	OvertimePay    decimal.Decimal
	FixedAdditions decimal.Decimal
	TotalAdditions decimal.Decimal

	LateHours           decimal.Decimal
	UndertimeHours      decimal.Decimal
	LateDeduction       decimal.Decimal
	UndertimeDeduction  decimal.Decimal
	AttendanceDeduction decimal.Decimal

	SSS                 decimal.Decimal
	PhilHealth          decimal.Decimal
	PagIBIG             decimal.Decimal
	MandatoryDeductions decimal.Decimal
	LoanDeductions      decimal.Decimal
	FixedVoluntary      decimal.Decimal
	VoluntaryDeductions decimal.Decimal
	TotalDeductions     decimal.Decimal

	UnclampedNetPay decimal.Decimal
	NetPay          decimal.Decimal
}
