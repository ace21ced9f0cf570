package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                  string
	EmployeeID          string // business code, e.g. "EMP-0012"; logs reference this, not ID
	Name                string
	Designation         *string
	Area                string
	BasicSalary         decimal.Decimal // monthly
	DayOff              DayOff
	IsTimeExempted      bool
	SSS                 Contribution
	PhilHealth          Contribution
	PagIBIG             Contribution
	Adjustments         Adjustments
	VoluntaryDeductions decimal.Decimal
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Contribution is a mandatory government contribution with a flat configured amount.
type Contribution struct {
	Enabled     bool
	FixedAmount decimal.Decimal
}

// Amount returns the fixed amount when enabled, zero otherwise.
func (c Contribution) Amount() decimal.Decimal {
	if !c.Enabled {
		return decimal.Zero
	}
	return c.FixedAmount
}

// Adjustments are the administrator's current free-form adjustment amounts.
// They are kept on the profile for display and do not enter the pay computation.
type Adjustments struct {
	Food      decimal.Decimal `json:"food" yaml:"food"`
	Transport decimal.Decimal `json:"transpo" yaml:"transpo"`
	Restday   decimal.Decimal `json:"restday" yaml:"restday"`
	Others    decimal.Decimal `json:"others" yaml:"others"`
}

// DayOff is the 3-letter weekday code of an employee's scheduled rest day.
type DayOff string

const (
	DayOffSunday    DayOff = "SUN"
	DayOffMonday    DayOff = "MON"
	DayOffTuesday   DayOff = "TUE"
	DayOffWednesday DayOff = "WED"
	DayOffThursday  DayOff = "THU"
	DayOffFriday    DayOff = "FRI"
	DayOffSaturday  DayOff = "SAT"

	// Sentinels written by the admin UI when no schedule is set.
	DayOffNone  DayOff = "-"
	DayOffEmpty DayOff = "EMPTY"
)

var dayOffWeekdays = map[string]time.Weekday{
	"SUN": time.Sunday, "SUNDAY": time.Sunday,
	"MON": time.Monday, "MONDAY": time.Monday,
	"TUE": time.Tuesday, "TUESDAY": time.Tuesday,
	"WED": time.Wednesday, "WEDNESDAY": time.Wednesday,
	"THU": time.Thursday, "THURSDAY": time.Thursday,
	"FRI": time.Friday, "FRIDAY": time.Friday,
	"SAT": time.Saturday, "SATURDAY": time.Saturday,
}

// Weekday maps the code to a time.Weekday. Codes are case-insensitive and full
// English day names are accepted. ok is false for unset, sentinel or unknown values.
func (d DayOff) Weekday() (time.Weekday, bool) {
	code := strings.ToUpper(strings.TrimSpace(string(d)))
	if code == "" || code == string(DayOffNone) || code == string(DayOffEmpty) {
		return time.Sunday, false
	}
	wd, ok := dayOffWeekdays[code]
	return wd, ok
}

// IsSet reports whether the code names an actual weekday.
func (d DayOff) IsSet() bool {
	_, ok := d.Weekday()
	return ok
}
