package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `id, employee_id, log_date, late_hours, undertime_hours, overtime_hours, status, time_in, time_out, created_at`

// ListByPeriod implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByPeriod(ctx context.Context, from, to time.Time) ([]attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_logs
		WHERE log_date BETWEEN $1 AND $2
		ORDER BY employee_id, log_date
	`
	return r.list(ctx, query, from, to)
}

// ListByEmployeeAndPeriod implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployeeAndPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_logs
		WHERE employee_id = $1 AND log_date BETWEEN $2 AND $3
		ORDER BY log_date
	`
	return r.list(ctx, query, employeeID, from, to)
}

func (r *attendanceRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		var status string
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.LateHours, &rec.UndertimeHours, &rec.OvertimeHours,
			&status, &rec.TimeIn, &rec.TimeOut, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		rec.Status = attendance.Status(status)
		records = append(records, rec)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
