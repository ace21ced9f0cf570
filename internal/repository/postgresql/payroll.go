package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== ADDITIONS ==========

const additionColumns = `id, employee_id, type, amount, ot_hours, is_recurring, applied_date, status, created_at`

func scanAddition(row pgx.Row) (payroll.AdditionEntry, error) {
	var a payroll.AdditionEntry
	var typ, status string
	err := row.Scan(&a.ID, &a.EmployeeID, &typ, &a.Amount, &a.OTHours, &a.IsRecurring, &a.AppliedDate, &status, &a.CreatedAt)
	a.Type = payroll.AdditionType(typ)
	a.Status = payroll.AdditionStatus(status)
	return a, err
}

func (r *payrollRepository) CreateAddition(ctx context.Context, entry payroll.AdditionEntry) (payroll.AdditionEntry, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.AdditionEntry{}, fmt.Errorf("failed to generate addition id: %w", err)
	}

	query := `
		INSERT INTO payroll_additions (id, employee_id, type, amount, ot_hours, is_recurring, applied_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + additionColumns

	created, err := scanAddition(q.QueryRow(ctx, query,
		id.String(), entry.EmployeeID, string(entry.Type), entry.Amount, entry.OTHours,
		entry.IsRecurring, entry.AppliedDate, string(entry.Status),
	))
	if err != nil {
		return payroll.AdditionEntry{}, fmt.Errorf("failed to create addition: %w", err)
	}

	return created, nil
}

func (r *payrollRepository) GetAdditionByID(ctx context.Context, id string) (payroll.AdditionEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + additionColumns + ` FROM payroll_additions WHERE id = $1`

	a, err := scanAddition(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.AdditionEntry{}, payroll.ErrAdditionNotFound
		}
		return payroll.AdditionEntry{}, fmt.Errorf("failed to get addition: %w", err)
	}

	return a, nil
}

func (r *payrollRepository) ListAdditionsByEmployee(ctx context.Context, employeeID string) ([]payroll.AdditionEntry, error) {
	query := `
		SELECT ` + additionColumns + `
		FROM payroll_additions
		WHERE employee_id = $1
		ORDER BY created_at DESC
	`
	return r.listAdditions(ctx, query, employeeID)
}

func (r *payrollRepository) ListApprovedAdditions(ctx context.Context, from, to time.Time) ([]payroll.AdditionEntry, error) {
	query := `
		SELECT ` + additionColumns + `
		FROM payroll_additions
		WHERE status = $1
		  AND (is_recurring OR applied_date BETWEEN $2 AND $3)
		ORDER BY employee_id, created_at
	`
	return r.listAdditions(ctx, query, string(payroll.AdditionStatusApproved), from, to)
}

func (r *payrollRepository) listAdditions(ctx context.Context, query string, args ...interface{}) ([]payroll.AdditionEntry, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list additions: %w", err)
	}
	defer rows.Close()

	var entries []payroll.AdditionEntry
	for rows.Next() {
		a, err := scanAddition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan addition: %w", err)
		}
		entries = append(entries, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *payrollRepository) DeleteAddition(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payroll_additions WHERE id = $1 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrAdditionNotFound
		}
		return fmt.Errorf("failed to delete addition: %w", err)
	}

	return nil
}

// ========== AREA CONFIGS ==========

func (r *payrollRepository) ListAreaConfigs(ctx context.Context) ([]payroll.AreaPayrollConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT area, is_fixed, is_daily, is_monthly, is_semi, updated_at
		FROM payroll_configs
		ORDER BY area
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list area configs: %w", err)
	}
	defer rows.Close()

	var configs []payroll.AreaPayrollConfig
	for rows.Next() {
		var c payroll.AreaPayrollConfig
		if err := rows.Scan(&c.Area, &c.IsFixed, &c.IsDaily, &c.IsMonthly, &c.IsSemi, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan area config: %w", err)
		}
		configs = append(configs, c)
	}

	return configs, rows.Err()
}

// UpsertAreaConfigs writes every row in one transaction.
func (r *payrollRepository) UpsertAreaConfigs(ctx context.Context, configs []payroll.AreaPayrollConfig) error {
	query := `
		INSERT INTO payroll_configs (area, is_fixed, is_daily, is_monthly, is_semi)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (area) DO UPDATE SET
			is_fixed = EXCLUDED.is_fixed,
			is_daily = EXCLUDED.is_daily,
			is_monthly = EXCLUDED.is_monthly,
			is_semi = EXCLUDED.is_semi,
			updated_at = NOW()
	`

	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		for _, c := range configs {
			if _, err := tx.Exec(ctx, query, c.Area, c.IsFixed, c.IsDaily, c.IsMonthly, c.IsSemi); err != nil {
				return fmt.Errorf("failed to upsert area config %q: %w", c.Area, err)
			}
		}
		return nil
	})
}
