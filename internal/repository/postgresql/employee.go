package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, employee_id, name, designation, area, basic_salary, day_off, is_time_exempted,
	sss_enabled, sss_fixed_amount, phic_enabled, phic_fixed_amount, hdmf_enabled, hdmf_fixed_amount,
	adj_food, adj_transpo, adj_restday, adj_others, voluntary_deductions, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	var dayOff string
	err := row.Scan(
		&emp.ID, &emp.EmployeeID, &emp.Name, &emp.Designation, &emp.Area, &emp.BasicSalary, &dayOff, &emp.IsTimeExempted,
		&emp.SSS.Enabled, &emp.SSS.FixedAmount, &emp.PhilHealth.Enabled, &emp.PhilHealth.FixedAmount,
		&emp.PagIBIG.Enabled, &emp.PagIBIG.FixedAmount,
		&emp.Adjustments.Food, &emp.Adjustments.Transport, &emp.Adjustments.Restday, &emp.Adjustments.Others,
		&emp.VoluntaryDeductions, &emp.CreatedAt, &emp.UpdatedAt,
	)
	emp.DayOff = employee.DayOff(dayOff)
	return emp, err
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY name, employee_id`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetByEmployeeID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", employeeID, err)
	}

	return emp, nil
}

// DistinctAreas implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) DistinctAreas(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT DISTINCT TRIM(area) FROM employees WHERE TRIM(area) <> '' ORDER BY 1`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee areas: %w", err)
	}
	defer rows.Close()

	var areas []string
	for rows.Next() {
		var area string
		if err := rows.Scan(&area); err != nil {
			return nil, err
		}
		areas = append(areas, area)
	}

	return areas, rows.Err()
}

// UpdateDeductionSettings implements employee.EmployeeRepository.
// Only fields present in req are written.
func (e *employeeRepositoryImpl) UpdateDeductionSettings(ctx context.Context, employeeID string, req employee.UpdateDeductionSettingsRequest) error {
	q := GetQuerier(ctx, e.db)

	updates := []string{}
	args := []interface{}{}
	argIdx := 1

	set := func(column string, value interface{}) {
		updates = append(updates, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	contributions := []struct {
		prefix string
		req    *employee.ContributionRequest
	}{
		{"sss", req.SSS},
		{"phic", req.PhilHealth},
		{"hdmf", req.PagIBIG},
	}
	for _, c := range contributions {
		if c.req == nil {
			continue
		}
		if c.req.Enabled != nil {
			set(c.prefix+"_enabled", *c.req.Enabled)
		}
		if c.req.FixedAmount != nil {
			set(c.prefix+"_fixed_amount", *c.req.FixedAmount)
		}
	}
	if req.Adjustments != nil {
		set("adj_food", req.Adjustments.Food)
		set("adj_transpo", req.Adjustments.Transport)
		set("adj_restday", req.Adjustments.Restday)
		set("adj_others", req.Adjustments.Others)
	}
	if req.VoluntaryDeductions != nil {
		set("voluntary_deductions", *req.VoluntaryDeductions)
	}

	if len(updates) == 0 {
		return nil
	}

	updates = append(updates, "updated_at = NOW()")
	args = append(args, employeeID)
	query := fmt.Sprintf(
		"UPDATE employees SET %s WHERE employee_id = $%d RETURNING id",
		strings.Join(updates, ", "), argIdx,
	)

	var id string
	if err := q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update deduction settings for %s: %w", employeeID, err)
	}

	return nil
}
