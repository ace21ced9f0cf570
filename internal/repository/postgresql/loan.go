package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/loan"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type loanRepositoryImpl struct {
	db *database.DB
}

func NewLoanRepository(db *database.DB) loan.LoanRepository {
	return &loanRepositoryImpl{db: db}
}

const installmentColumns = `id, employee_id, deduction_type, cutoff_date, deduction_amount, remaining_balance, created_at`

func scanInstallment(row pgx.Row) (loan.Installment, error) {
	var i loan.Installment
	err := row.Scan(&i.ID, &i.EmployeeID, &i.DeductionType, &i.CutoffDate, &i.DeductionAmount, &i.RemainingBalance, &i.CreatedAt)
	return i, err
}

// ListByEmployee implements loan.LoanRepository.
func (r *loanRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]loan.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM loan_schedules
		WHERE employee_id = $1
		ORDER BY cutoff_date
	`
	return r.list(ctx, query, employeeID)
}

// ListDueInPeriod implements loan.LoanRepository.
func (r *loanRepositoryImpl) ListDueInPeriod(ctx context.Context, from, to time.Time) ([]loan.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM loan_schedules
		WHERE cutoff_date BETWEEN $1 AND $2
		ORDER BY employee_id, cutoff_date
	`
	return r.list(ctx, query, from, to)
}

func (r *loanRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]loan.Installment, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list installments: %w", err)
	}
	defer rows.Close()

	var installments []loan.Installment
	for rows.Next() {
		i, err := scanInstallment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan installment: %w", err)
		}
		installments = append(installments, i)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return installments, nil
}

// ReplaceSchedule implements loan.LoanRepository.
// Prior installments of every deduction type are removed; an employee carries one schedule at a time.
func (r *loanRepositoryImpl) ReplaceSchedule(ctx context.Context, employeeID, deductionType string, rows []loan.ScheduleRow) ([]loan.Installment, error) {
	insert := `
		INSERT INTO loan_schedules (employee_id, deduction_type, cutoff_date, deduction_amount, remaining_balance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + installmentColumns

	stored := make([]loan.Installment, 0, len(rows))
	err := WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM loan_schedules WHERE employee_id = $1`, employeeID); err != nil {
			return fmt.Errorf("failed to clear schedule: %w", err)
		}

		for _, row := range rows {
			i, err := scanInstallment(tx.QueryRow(ctx, insert, employeeID, deductionType, row.CutoffDate, row.Deduction, row.Balance))
			if err != nil {
				return fmt.Errorf("failed to insert installment: %w", err)
			}
			stored = append(stored, i)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return stored, nil
}
