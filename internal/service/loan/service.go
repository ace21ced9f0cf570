package loan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/loan"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/metrics"
	"github.com/shopspring/decimal"
)

type LoanServiceImpl struct {
	loanRepo     loan.LoanRepository
	employeeRepo employee.EmployeeRepository
	clock        clock.Clock
	metrics      *metrics.Metrics
}

func NewLoanService(
	loanRepo loan.LoanRepository,
	employeeRepo employee.EmployeeRepository,
	clk clock.Clock,
	m *metrics.Metrics,
) loan.LoanService {
	return &LoanServiceImpl{
		loanRepo:     loanRepo,
		employeeRepo: employeeRepo,
		clock:        clk,
		metrics:      m,
	}
}

// Preview builds a schedule without storing it.
func (s *LoanServiceImpl) Preview(ctx context.Context, req loan.CashAdvanceRequest) (loan.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return loan.ScheduleResponse{}, err
	}

	today := clock.Today(s.clock)
	schedule := s.build(req, today)

	installments := make([]loan.Installment, 0, len(schedule.Rows))
	for _, row := range schedule.Rows {
		installments = append(installments, loan.Installment{
			EmployeeID:       req.EmployeeID,
			DeductionType:    loan.DeductionTypeCashAdvance,
			CutoffDate:       row.CutoffDate,
			DeductionAmount:  row.Deduction,
			RemainingBalance: row.Balance,
		})
	}
	resp := toScheduleResponse(req.EmployeeID, installments, today)
	resp.Remaining = schedule.Remaining
	resp.Truncated = schedule.Truncated
	return resp, nil
}

// CreateCashAdvance replaces the employee's installments with a freshly built
// schedule. An empty schedule leaves stored installments untouched.
func (s *LoanServiceImpl) CreateCashAdvance(ctx context.Context, req loan.CashAdvanceRequest) (loan.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return loan.ScheduleResponse{}, err
	}

	if _, err := s.employeeRepo.GetByEmployeeID(ctx, req.EmployeeID); err != nil {
		return loan.ScheduleResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	today := clock.Today(s.clock)
	schedule := s.build(req, today)
	if schedule.IsEmpty() {
		slog.Warn("Cash advance produced an empty schedule", "employee_id", req.EmployeeID,
			"total_amount", schedule.Total.String(), "per_cutoff_deduction", schedule.PerCutoff.String())
		return loan.ScheduleResponse{
			EmployeeID:   req.EmployeeID,
			Installments: []loan.InstallmentResponse{},
			Remaining:    schedule.Remaining,
			Truncated:    schedule.Truncated,
		}, nil
	}

	stored, err := s.loanRepo.ReplaceSchedule(ctx, req.EmployeeID, loan.DeductionTypeCashAdvance, schedule.Rows)
	if err != nil {
		return loan.ScheduleResponse{}, fmt.Errorf("failed to replace installment schedule: %w", err)
	}
	s.metrics.ScheduleStored(schedule.Truncated)

	if schedule.Truncated {
		slog.Warn("Cash advance schedule truncated", "employee_id", req.EmployeeID,
			"installments", len(schedule.Rows), "unscheduled", schedule.Remaining.String())
	}
	slog.Info("Replaced installment schedule", "employee_id", req.EmployeeID,
		"installments", len(stored), "total_amount", schedule.Total.String())

	resp := toScheduleResponse(req.EmployeeID, stored, today)
	resp.Remaining = schedule.Remaining
	resp.Truncated = schedule.Truncated
	return resp, nil
}

func (s *LoanServiceImpl) ListInstallments(ctx context.Context, employeeID string) (loan.ScheduleResponse, error) {
	if _, err := s.employeeRepo.GetByEmployeeID(ctx, employeeID); err != nil {
		return loan.ScheduleResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	installments, err := s.loanRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return loan.ScheduleResponse{}, fmt.Errorf("failed to list installments: %w", err)
	}

	resp := toScheduleResponse(employeeID, installments, clock.Today(s.clock))
	if n := len(installments); n > 0 {
		resp.Remaining = installments[n-1].RemainingBalance
	}
	return resp, nil
}

func (s *LoanServiceImpl) build(req loan.CashAdvanceRequest, today time.Time) loan.Schedule {
	start := today
	if req.Start != nil {
		start = *req.Start
	}
	return BuildSchedule(*req.TotalAmount, *req.PerCutoffDeduction, start)
}

func toScheduleResponse(employeeID string, installments []loan.Installment, today time.Time) loan.ScheduleResponse {
	resp := loan.ScheduleResponse{
		EmployeeID:   employeeID,
		Installments: make([]loan.InstallmentResponse, 0, len(installments)),
		Scheduled:    decimal.Zero,
		Outstanding:  decimal.Zero,
		Remaining:    decimal.Zero,
	}
	for _, inst := range installments {
		item := loan.ToInstallmentResponse(inst, today)
		resp.Installments = append(resp.Installments, item)
		resp.Scheduled = resp.Scheduled.Add(inst.DeductionAmount)
		if item.Status == loan.InstallmentStatusPending {
			resp.Outstanding = resp.Outstanding.Add(inst.DeductionAmount)
		}
	}
	return resp
}
