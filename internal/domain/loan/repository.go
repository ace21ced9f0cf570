package loan

import (
	"context"
	"time"
)

type LoanRepository interface {
	ListByEmployee(ctx context.Context, employeeID string) ([]Installment, error)
	// ListDueInPeriod returns every installment whose cutoff date falls within [from, to].
	ListDueInPeriod(ctx context.Context, from, to time.Time) ([]Installment, error)
	// ReplaceSchedule deletes the employee's existing installments and inserts rows
	// in a single transaction.
	ReplaceSchedule(ctx context.Context, employeeID, deductionType string, rows []ScheduleRow) ([]Installment, error)
}
