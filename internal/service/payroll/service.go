package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/loan"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type PayrollServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	loanRepo       loan.LoanRepository
	clock          clock.Clock
	metrics        *metrics.Metrics
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	loanRepo loan.LoanRepository,
	clk clock.Clock,
	m *metrics.Metrics,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		loanRepo:       loanRepo,
		clock:          clk,
		metrics:        m,
	}
}

// ========== REPORT ==========

// ComputeRows loads every input for the period and runs the calculator.
// search filters employees by name or employee code, case-insensitively.
func (s *PayrollServiceImpl) ComputeRows(ctx context.Context, start, end time.Time, search string) ([]payroll.PayrollRow, error) {
	cal, err := NewCalendar(start, end)
	if err != nil {
		return nil, err
	}
	began := time.Now()

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	employees = filterEmployees(employees, search)

	configs, err := s.payrollRepo.ListAreaConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list area configs: %w", err)
	}
	records, err := s.attendanceRepo.ListByPeriod(ctx, cal.Start(), cal.End())
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	additions, err := s.payrollRepo.ListApprovedAdditions(ctx, cal.Start(), cal.End())
	if err != nil {
		return nil, fmt.Errorf("failed to list additions: %w", err)
	}
	installments, err := s.loanRepo.ListDueInPeriod(ctx, cal.Start(), cal.End())
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}

	rows := NewCalculator(payroll.NewAreaConfigs(configs)).ComputeAll(cal, employees, records, additions, installments)
	s.metrics.ObserveReport(len(rows), time.Since(began))
	return rows, nil
}

func (s *PayrollServiceImpl) GenerateReport(ctx context.Context, req payroll.ReportRequest) (payroll.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ReportResponse{}, err
	}

	cal, err := NewCalendar(req.Start, req.End)
	if err != nil {
		return payroll.ReportResponse{}, err
	}
	rows, err := s.ComputeRows(ctx, cal.Start(), cal.End(), req.Search)
	if err != nil {
		return payroll.ReportResponse{}, err
	}

	resp := payroll.ReportResponse{
		ReportID:    uuid.New().String(),
		PeriodStart: cal.Start().Format(validator.DateLayout),
		PeriodEnd:   cal.End().Format(validator.DateLayout),
		CutoffDays:  cal.TotalDays(),
		Areas:       []payroll.AreaGroup{},
		GeneratedAt: s.clock.Now(),
	}
	for _, g := range groupByArea(rows) {
		group := payroll.AreaGroup{Area: g.Area, Rows: make([]payroll.PayrollRowResponse, 0, len(g.Rows))}
		for _, r := range g.Rows {
			group.Rows = append(group.Rows, payroll.ToPayrollRowResponse(r))
			group.Totals.Add(r)
			resp.Totals.Add(r)
		}
		resp.Areas = append(resp.Areas, group)
	}

	slog.Info("Generated payroll report", "report_id", resp.ReportID,
		"from", resp.PeriodStart, "to", resp.PeriodEnd, "employees", resp.Totals.Employees)
	return resp, nil
}

func (s *PayrollServiceImpl) ExportReport(ctx context.Context, req payroll.ReportRequest) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cal, err := NewCalendar(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	rows, err := s.ComputeRows(ctx, cal.Start(), cal.End(), req.Search)
	if err != nil {
		return nil, err
	}

	data, err := ExportWorkbook(cal, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to export payroll workbook: %w", err)
	}
	return data, nil
}

func (s *PayrollServiceImpl) ResolveCutoff(date time.Time) payroll.CutoffResponse {
	cal := ResolveCutoff(date)
	return payroll.CutoffResponse{
		Start: cal.Start().Format(validator.DateLayout),
		End:   cal.End().Format(validator.DateLayout),
		Days:  cal.TotalDays(),
	}
}

func filterEmployees(employees []employee.Employee, search string) []employee.Employee {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return employees
	}
	filtered := make([]employee.Employee, 0, len(employees))
	for _, e := range employees {
		if strings.Contains(strings.ToLower(e.Name), search) || strings.Contains(strings.ToLower(e.EmployeeID), search) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// ========== AREA CONFIGS ==========

// ListAreaConfigs returns stored configs plus a default entry for every
// employee area that has none.
func (s *PayrollServiceImpl) ListAreaConfigs(ctx context.Context) ([]payroll.AreaConfigResponse, error) {
	stored, err := s.payrollRepo.ListAreaConfigs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list area configs: %w", err)
	}
	areas, err := s.employeeRepo.DistinctAreas(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee areas: %w", err)
	}

	configs := payroll.NewAreaConfigs(stored)
	resp := make([]payroll.AreaConfigResponse, 0, len(stored)+len(areas))
	for _, c := range stored {
		resp = append(resp, payroll.ToAreaConfigResponse(c, false))
	}
	for _, area := range areas {
		if _, ok := configs.Lookup(area); ok {
			continue
		}
		resp = append(resp, payroll.ToAreaConfigResponse(payroll.DefaultAreaConfig(strings.TrimSpace(area)), true))
	}
	sort.Slice(resp, func(i, j int) bool { return resp[i].Area < resp[j].Area })
	return resp, nil
}

func (s *PayrollServiceImpl) UpsertAreaConfigs(ctx context.Context, req payroll.UpsertAreaConfigsRequest) ([]payroll.AreaConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	configs := make([]payroll.AreaPayrollConfig, 0, len(req.Configs))
	for _, c := range req.Configs {
		configs = append(configs, c.ToEntity())
	}
	if err := s.payrollRepo.UpsertAreaConfigs(ctx, configs); err != nil {
		return nil, fmt.Errorf("failed to upsert area configs: %w", err)
	}
	slog.Info("Upserted area payroll configs", "count", len(configs))

	return s.ListAreaConfigs(ctx)
}

// ========== ADDITIONS ==========

// CreateAddition records an approved entry. Allowances recur every period;
// other types apply to a single date, today unless given. Overtime amounts are
// priced from the employee's current hourly rate.
func (s *PayrollServiceImpl) CreateAddition(ctx context.Context, req payroll.CreateAdditionRequest) (payroll.AdditionResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.AdditionResponse{}, err
	}

	emp, err := s.employeeRepo.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return payroll.AdditionResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	entry := payroll.AdditionEntry{
		EmployeeID: emp.EmployeeID,
		Type:       payroll.AdditionType(req.Type),
		Status:     payroll.AdditionStatusApproved,
	}
	switch entry.Type {
	case payroll.AdditionTypeAllowance:
		entry.Amount = *req.Amount
		entry.IsRecurring = true
	case payroll.AdditionTypeOvertime:
		entry.OTHours = *req.OTHours
		entry.Amount = round2(req.OTHours.Mul(DeriveRates(emp.BasicSalary).Hourly))
	default:
		entry.Amount = *req.Amount
	}
	if !entry.IsRecurring {
		applied := clock.Today(s.clock)
		if req.AppliedDate != nil {
			applied, _ = validator.IsValidDate(*req.AppliedDate)
		}
		entry.AppliedDate = &applied
	}

	created, err := s.payrollRepo.CreateAddition(ctx, entry)
	if err != nil {
		return payroll.AdditionResponse{}, fmt.Errorf("failed to create addition: %w", err)
	}
	slog.Info("Created payroll addition", "id", created.ID, "employee_id", created.EmployeeID,
		"type", created.Type, "amount", created.Amount.String())

	return payroll.ToAdditionResponse(created), nil
}

func (s *PayrollServiceImpl) ListAdditions(ctx context.Context, employeeID string) ([]payroll.AdditionResponse, error) {
	if _, err := s.employeeRepo.GetByEmployeeID(ctx, employeeID); err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	entries, err := s.payrollRepo.ListAdditionsByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list additions: %w", err)
	}

	resp := make([]payroll.AdditionResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, payroll.ToAdditionResponse(e))
	}
	return resp, nil
}

func (s *PayrollServiceImpl) DeleteAddition(ctx context.Context, id string) error {
	if !validator.IsValidUUID(id) {
		return payroll.ErrAdditionNotFound
	}

	if err := s.payrollRepo.DeleteAddition(ctx, id); err != nil {
		return fmt.Errorf("failed to delete addition: %w", err)
	}
	slog.Info("Deleted payroll addition", "id", id)
	return nil
}

// ========== DEDUCTION SETTINGS ==========

func (s *PayrollServiceImpl) GetDeductionSettings(ctx context.Context, employeeID string) (employee.DeductionSettingsResponse, error) {
	emp, err := s.employeeRepo.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return employee.DeductionSettingsResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee.ToDeductionSettingsResponse(emp), nil
}

func (s *PayrollServiceImpl) UpdateDeductionSettings(ctx context.Context, employeeID string, req employee.UpdateDeductionSettingsRequest) (employee.DeductionSettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.DeductionSettingsResponse{}, err
	}

	if err := s.employeeRepo.UpdateDeductionSettings(ctx, employeeID, req); err != nil {
		return employee.DeductionSettingsResponse{}, fmt.Errorf("failed to update deduction settings: %w", err)
	}
	slog.Info("Updated employee deduction settings", "employee_id", employeeID)

	return s.GetDeductionSettings(ctx, employeeID)
}
