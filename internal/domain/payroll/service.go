package payroll

import (
	"context"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
)

type PayrollService interface {
	// Report
	ComputeRows(ctx context.Context, start, end time.Time, search string) ([]PayrollRow, error)
	GenerateReport(ctx context.Context, req ReportRequest) (ReportResponse, error)
	ExportReport(ctx context.Context, req ReportRequest) ([]byte, error)
	ResolveCutoff(date time.Time) CutoffResponse
	// Area configs
	ListAreaConfigs(ctx context.Context) ([]AreaConfigResponse, error)
	UpsertAreaConfigs(ctx context.Context, req UpsertAreaConfigsRequest) ([]AreaConfigResponse, error)
	// Additions
	CreateAddition(ctx context.Context, req CreateAdditionRequest) (AdditionResponse, error)
	ListAdditions(ctx context.Context, employeeID string) ([]AdditionResponse, error)
	DeleteAddition(ctx context.Context, id string) error
	// Deduction settings
	GetDeductionSettings(ctx context.Context, employeeID string) (employee.DeductionSettingsResponse, error)
	UpdateDeductionSettings(ctx context.Context, employeeID string, req employee.UpdateDeductionSettingsRequest) (employee.DeductionSettingsResponse, error)
}
