package cron

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

const SnapshotJobName = "payroll_snapshot"

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type PayrollJobs struct {
	payrollService payroll.PayrollService
	storage        storage.FileStorage
	clock          clock.Clock
}

func NewPayrollJobs(payrollService payroll.PayrollService, fileStorage storage.FileStorage, clk clock.Clock) *PayrollJobs {
	return &PayrollJobs{
		payrollService: payrollService,
		storage:        fileStorage,
		clock:          clk,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(SnapshotJobName, interval, j.runSnapshot)
}

func (j *PayrollJobs) runSnapshot(ctx context.Context) error {
	path, err := j.TakeSnapshot(ctx)
	if errors.Is(err, payroll.ErrSnapshotAlreadyTaken) {
		return fmt.Errorf("%w: %s exists", ErrSkipped, path)
	}
	return err
}

// SnapshotPath names the workbook for the cutoff window containing today.
// One snapshot is kept per window and day.
func SnapshotPath(cutoff payroll.CutoffResponse, today time.Time) string {
	return fmt.Sprintf("snapshots/%s_%s/payroll_%s.xlsx", cutoff.Start, cutoff.End, today.Format(validator.DateLayout))
}

// TakeSnapshot exports the current cutoff window's report to storage and
// returns the stored path.
func (j *PayrollJobs) TakeSnapshot(ctx context.Context) (string, error) {
	today := clock.Today(j.clock)
	cutoff := j.payrollService.ResolveCutoff(today)
	path := SnapshotPath(cutoff, today)

	exists, err := j.storage.Exists(ctx, path)
	if err != nil {
		return path, fmt.Errorf("failed to check snapshot: %w", err)
	}
	if exists {
		return path, payroll.ErrSnapshotAlreadyTaken
	}

	data, err := j.payrollService.ExportReport(ctx, payroll.ReportRequest{From: cutoff.Start, To: cutoff.End})
	if err != nil {
		return path, fmt.Errorf("failed to export snapshot: %w", err)
	}

	stored, err := j.storage.Upload(ctx, bytes.NewReader(data), path, xlsxContentType)
	if err != nil {
		return path, fmt.Errorf("failed to store snapshot: %w", err)
	}

	slog.Info("Cron: payroll snapshot stored", "path", stored, "from", cutoff.Start, "to", cutoff.End, "bytes", len(data))
	return stored, nil
}
