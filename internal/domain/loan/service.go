package loan

import "context"

type LoanService interface {
	Preview(ctx context.Context, req CashAdvanceRequest) (ScheduleResponse, error)
	CreateCashAdvance(ctx context.Context, req CashAdvanceRequest) (ScheduleResponse, error)
	ListInstallments(ctx context.Context, employeeID string) (ScheduleResponse, error)
}
