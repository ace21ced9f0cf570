package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	// Additions
	CreateAddition(ctx context.Context, entry AdditionEntry) (AdditionEntry, error)
	GetAdditionByID(ctx context.Context, id string) (AdditionEntry, error)
	ListAdditionsByEmployee(ctx context.Context, employeeID string) ([]AdditionEntry, error)
	// ListApprovedAdditions returns approved entries that are recurring or applied within [from, to].
	ListApprovedAdditions(ctx context.Context, from, to time.Time) ([]AdditionEntry, error)
	DeleteAddition(ctx context.Context, id string) error

	// Area configs
	ListAreaConfigs(ctx context.Context) ([]AreaPayrollConfig, error)
	UpsertAreaConfigs(ctx context.Context, configs []AreaPayrollConfig) error
}
