package payroll

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/loan"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/google/uuid"
)

type memEmployeeRepo struct {
	employees []employee.Employee
}

func (r *memEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return r.employees, nil
}

func (r *memEmployeeRepo) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	for _, e := range r.employees {
		if e.EmployeeID == employeeID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *memEmployeeRepo) DistinctAreas(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	var areas []string
	for _, e := range r.employees {
		if strings.TrimSpace(e.Area) == "" || seen[e.Area] {
			continue
		}
		seen[e.Area] = true
		areas = append(areas, e.Area)
	}
	sort.Strings(areas)
	return areas, nil
}

func (r *memEmployeeRepo) UpdateDeductionSettings(ctx context.Context, employeeID string, req employee.UpdateDeductionSettingsRequest) error {
	for i, e := range r.employees {
		if e.EmployeeID != employeeID {
			continue
		}
		e.SSS = req.SSS.Apply(e.SSS)
		e.PhilHealth = req.PhilHealth.Apply(e.PhilHealth)
		e.PagIBIG = req.PagIBIG.Apply(e.PagIBIG)
		if req.Adjustments != nil {
			e.Adjustments = *req.Adjustments
		}
		if req.VoluntaryDeductions != nil {
			e.VoluntaryDeductions = *req.VoluntaryDeductions
		}
		r.employees[i] = e
		return nil
	}
	return employee.ErrEmployeeNotFound
}

type memAttendanceRepo struct {
	records []attendance.Record
}

func (r *memAttendanceRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range r.records {
		if !rec.Date.Before(from) && !rec.Date.After(to) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *memAttendanceRepo) ListByEmployeeAndPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	all, _ := r.ListByPeriod(ctx, from, to)
	var out []attendance.Record
	for _, rec := range all {
		if rec.EmployeeID == employeeID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type memPayrollRepo struct {
	additions []payroll.AdditionEntry
	configs   []payroll.AreaPayrollConfig
}

func (r *memPayrollRepo) CreateAddition(ctx context.Context, entry payroll.AdditionEntry) (payroll.AdditionEntry, error) {
	entry.ID = uuid.Must(uuid.NewV7()).String()
	entry.CreatedAt = time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	r.additions = append(r.additions, entry)
	return entry, nil
}

func (r *memPayrollRepo) GetAdditionByID(ctx context.Context, id string) (payroll.AdditionEntry, error) {
	for _, a := range r.additions {
		if a.ID == id {
			return a, nil
		}
	}
	return payroll.AdditionEntry{}, payroll.ErrAdditionNotFound
}

func (r *memPayrollRepo) ListAdditionsByEmployee(ctx context.Context, employeeID string) ([]payroll.AdditionEntry, error) {
	var out []payroll.AdditionEntry
	for _, a := range r.additions {
		if a.EmployeeID == employeeID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memPayrollRepo) ListApprovedAdditions(ctx context.Context, from, to time.Time) ([]payroll.AdditionEntry, error) {
	var out []payroll.AdditionEntry
	for _, a := range r.additions {
		if a.Status != payroll.AdditionStatusApproved {
			continue
		}
		if a.IsRecurring || (a.AppliedDate != nil && !a.AppliedDate.Before(from) && !a.AppliedDate.After(to)) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *memPayrollRepo) DeleteAddition(ctx context.Context, id string) error {
	for i, a := range r.additions {
		if a.ID == id {
			r.additions = append(r.additions[:i], r.additions[i+1:]...)
			return nil
		}
	}
	return payroll.ErrAdditionNotFound
}

func (r *memPayrollRepo) ListAreaConfigs(ctx context.Context) ([]payroll.AreaPayrollConfig, error) {
	return r.configs, nil
}

func (r *memPayrollRepo) UpsertAreaConfigs(ctx context.Context, configs []payroll.AreaPayrollConfig) error {
	for _, c := range configs {
		replaced := false
		for i := range r.configs {
			if r.configs[i].Area == c.Area {
				r.configs[i] = c
				replaced = true
			}
		}
		if !replaced {
			r.configs = append(r.configs, c)
		}
	}
	return nil
}

type memLoanRepo struct {
	installments []loan.Installment
}

func (r *memLoanRepo) ListByEmployee(ctx context.Context, employeeID string) ([]loan.Installment, error) {
	var out []loan.Installment
	for _, i := range r.installments {
		if i.EmployeeID == employeeID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *memLoanRepo) ListDueInPeriod(ctx context.Context, from, to time.Time) ([]loan.Installment, error) {
	var out []loan.Installment
	for _, i := range r.installments {
		if !i.CutoffDate.Before(from) && !i.CutoffDate.After(to) {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *memLoanRepo) ReplaceSchedule(ctx context.Context, employeeID, deductionType string, rows []loan.ScheduleRow) ([]loan.Installment, error) {
	return nil, nil
}
