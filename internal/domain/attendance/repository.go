package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// ListByPeriod returns records whose date falls within [from, to] for every employee.
	ListByPeriod(ctx context.Context, from, to time.Time) ([]Record, error)
	ListByEmployeeAndPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)
}
