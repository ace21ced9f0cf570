package fixtures

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/loan"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Dataset is an offline snapshot of everything a payroll run reads.
// Money is written as quoted decimals and dates as YYYY-MM-DD.
type Dataset struct {
	AreaConfigs  []payroll.AreaConfigRequest `yaml:"area_configs"`
	Employees    []EmployeeFixture           `yaml:"employees"`
	Attendance   []AttendanceFixture         `yaml:"attendance"`
	Additions    []AdditionFixture           `yaml:"additions"`
	Installments []InstallmentFixture        `yaml:"installments"`
}

type ContributionFixture struct {
	Enabled     bool            `yaml:"enabled"`
	FixedAmount decimal.Decimal `yaml:"fixed_amount"`
}

type EmployeeFixture struct {
	EmployeeID          string               `yaml:"employee_id"`
	Name                string               `yaml:"name"`
	Designation         *string              `yaml:"designation"`
	Area                string               `yaml:"area"`
	BasicSalary         decimal.Decimal      `yaml:"basic_salary"`
	DayOff              string               `yaml:"day_off"`
	IsTimeExempted      bool                 `yaml:"is_time_exempted"`
	SSS                 ContributionFixture  `yaml:"sss"`
	PhilHealth          ContributionFixture  `yaml:"philhealth"`
	PagIBIG             ContributionFixture  `yaml:"pagibig"`
	Adjustments         employee.Adjustments `yaml:"adjustments"`
	VoluntaryDeductions decimal.Decimal      `yaml:"voluntary_deductions"`
}

type AttendanceFixture struct {
	EmployeeID     string          `yaml:"employee_id"`
	Date           string          `yaml:"date"`
	Status         string          `yaml:"status"`
	LateHours      decimal.Decimal `yaml:"late_hours"`
	UndertimeHours decimal.Decimal `yaml:"undertime_hours"`
	OvertimeHours  decimal.Decimal `yaml:"overtime_hours"`
}

type AdditionFixture struct {
	EmployeeID  string          `yaml:"employee_id"`
	Type        string          `yaml:"type"`
	Amount      decimal.Decimal `yaml:"amount"`
	OTHours     decimal.Decimal `yaml:"ot_hours"`
	IsRecurring bool            `yaml:"is_recurring"`
	AppliedDate string          `yaml:"applied_date"`
	Status      string          `yaml:"status"` // defaults to Approved
}

type InstallmentFixture struct {
	EmployeeID       string          `yaml:"employee_id"`
	DeductionType    string          `yaml:"deduction_type"`
	CutoffDate       string          `yaml:"cutoff_date"`
	DeductionAmount  decimal.Decimal `yaml:"deduction_amount"`
	RemainingBalance decimal.Decimal `yaml:"remaining_balance"`
}

// Materialized is a Dataset converted to domain types.
type Materialized struct {
	AreaConfigs  payroll.AreaConfigs
	Employees    []employee.Employee
	Attendance   []attendance.Record
	Additions    []payroll.AdditionEntry
	Installments []loan.Installment
}

func LoadDataset(r io.Reader) (Dataset, error) {
	var ds Dataset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&ds); err != nil {
		return Dataset{}, fmt.Errorf("failed to decode dataset: %w", err)
	}
	return ds, nil
}

func LoadDatasetFile(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return LoadDataset(f)
}

func parseDate(field, value string, errs *validator.ValidationErrors) time.Time {
	d, ok := validator.IsValidDate(value)
	if !ok {
		*errs = append(*errs, validator.ValidationError{Field: field, Message: "must be a date in YYYY-MM-DD format"})
	}
	return d
}

// Materialize validates references and dates and converts the dataset.
func (ds Dataset) Materialize() (Materialized, error) {
	var errs validator.ValidationErrors
	var m Materialized

	if len(ds.AreaConfigs) > 0 {
		req := payroll.UpsertAreaConfigsRequest{Configs: ds.AreaConfigs}
		if err := req.Validate(); err != nil {
			if verrs, ok := err.(validator.ValidationErrors); ok {
				errs = append(errs, verrs...)
			}
		}
	}
	rows := make([]payroll.AreaPayrollConfig, 0, len(ds.AreaConfigs))
	for _, c := range ds.AreaConfigs {
		rows = append(rows, c.ToEntity())
	}
	m.AreaConfigs = payroll.NewAreaConfigs(rows)

	known := make(map[string]bool, len(ds.Employees))
	for i, e := range ds.Employees {
		field := fmt.Sprintf("employees[%d].employee_id", i)
		switch {
		case !validator.IsValidEmployeeCode(e.EmployeeID):
			errs = append(errs, validator.ValidationError{Field: field, Message: "must be a valid employee code"})
		case known[e.EmployeeID]:
			errs = append(errs, validator.ValidationError{Field: field, Message: "is duplicated"})
		}
		known[e.EmployeeID] = true
		if validator.IsEmpty(e.Name) {
			errs = append(errs, validator.ValidationError{Field: fmt.Sprintf("employees[%d].name", i), Message: "is required"})
		}

		m.Employees = append(m.Employees, employee.Employee{
			EmployeeID:          e.EmployeeID,
			Name:                e.Name,
			Designation:         e.Designation,
			Area:                e.Area,
			BasicSalary:         e.BasicSalary,
			DayOff:              employee.DayOff(e.DayOff),
			IsTimeExempted:      e.IsTimeExempted,
			SSS:                 employee.Contribution(e.SSS),
			PhilHealth:          employee.Contribution(e.PhilHealth),
			PagIBIG:             employee.Contribution(e.PagIBIG),
			Adjustments:         e.Adjustments,
			VoluntaryDeductions: e.VoluntaryDeductions,
		})
	}

	checkEmployee := func(field, id string) {
		if !known[id] {
			errs = append(errs, validator.ValidationError{Field: field, Message: "references an unknown employee"})
		}
	}

	for i, a := range ds.Attendance {
		prefix := fmt.Sprintf("attendance[%d]", i)
		checkEmployee(prefix+".employee_id", a.EmployeeID)
		status := attendance.Status(a.Status)
		if !validator.IsInSlice(a.Status, []string{string(attendance.StatusPresent), string(attendance.StatusLate), string(attendance.StatusAbsent)}) {
			errs = append(errs, validator.ValidationError{Field: prefix + ".status", Message: "must be one of Present, Late, Absent"})
		}
		m.Attendance = append(m.Attendance, attendance.Record{
			EmployeeID:     a.EmployeeID,
			Date:           parseDate(prefix+".date", a.Date, &errs),
			Status:         status,
			LateHours:      a.LateHours,
			UndertimeHours: a.UndertimeHours,
			OvertimeHours:  a.OvertimeHours,
		})
	}

	for i, a := range ds.Additions {
		prefix := fmt.Sprintf("additions[%d]", i)
		checkEmployee(prefix+".employee_id", a.EmployeeID)
		typ := payroll.AdditionType(a.Type)
		if !typ.IsValid() {
			errs = append(errs, validator.ValidationError{Field: prefix + ".type", Message: "must be one of Allowance, Restday, Overtime"})
		}
		entry := payroll.AdditionEntry{
			EmployeeID:  a.EmployeeID,
			Type:        typ,
			Amount:      a.Amount,
			OTHours:     a.OTHours,
			IsRecurring: a.IsRecurring,
			Status:      payroll.AdditionStatus(a.Status),
		}
		if entry.Status == "" {
			entry.Status = payroll.AdditionStatusApproved
		}
		if a.AppliedDate != "" {
			d := parseDate(prefix+".applied_date", a.AppliedDate, &errs)
			entry.AppliedDate = &d
		} else if !a.IsRecurring {
			errs = append(errs, validator.ValidationError{Field: prefix + ".applied_date", Message: "is required unless is_recurring"})
		}
		m.Additions = append(m.Additions, entry)
	}

	for i, in := range ds.Installments {
		prefix := fmt.Sprintf("installments[%d]", i)
		checkEmployee(prefix+".employee_id", in.EmployeeID)
		deductionType := in.DeductionType
		if deductionType == "" {
			deductionType = loan.DeductionTypeCashAdvance
		}
		m.Installments = append(m.Installments, loan.Installment{
			EmployeeID:       in.EmployeeID,
			DeductionType:    deductionType,
			CutoffDate:       parseDate(prefix+".cutoff_date", in.CutoffDate, &errs),
			DeductionAmount:  in.DeductionAmount,
			RemainingBalance: in.RemainingBalance,
		})
	}

	if len(errs) > 0 {
		return Materialized{}, errs
	}
	return m, nil
}
