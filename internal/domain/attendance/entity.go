package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusAbsent  Status = "Absent"
)

// Record is one employee's attendance log for a single calendar date.
type Record struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	LateHours      decimal.Decimal
	UndertimeHours decimal.Decimal
	OvertimeHours  decimal.Decimal
	Status         Status
	TimeIn         *time.Time
	TimeOut        *time.Time
	CreatedAt      time.Time
}

// Attended reports whether the record counts toward billable days.
func (r Record) Attended() bool {
	return r.Status != StatusAbsent
}
