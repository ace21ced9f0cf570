package employee

import "context"

type EmployeeRepository interface {
	// List returns every employee ordered by name.
	List(ctx context.Context) ([]Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)
	// DistinctAreas returns every non-empty area referenced by an employee.
	DistinctAreas(ctx context.Context) ([]string, error)
	UpdateDeductionSettings(ctx context.Context, employeeID string, req UpdateDeductionSettingsRequest) error
}
