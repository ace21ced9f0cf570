package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup holds a migrated connection to the test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// The calling test is skipped when the variable is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	require.NoError(t, err)

	setup := &TestDatabaseSetup{DB: db}
	ctx := context.Background()
	require.NoError(t, postgresql.Migrate(ctx, db))
	require.NoError(t, setup.TruncateAllTables(ctx))

	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes every row from the payroll tables.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"loan_schedules",
		"payroll_additions",
		"attendance_logs",
		"payroll_configs",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// SeedEmployee inserts a minimal employee row.
func (t *TestDatabaseSetup) SeedEmployee(ctx context.Context, employeeID, name, area string) error {
	_, err := t.DB.Exec(ctx, `
		INSERT INTO employees (employee_id, name, area, basic_salary, day_off)
		VALUES ($1, $2, $3, 15000, 'SUN')
	`, employeeID, name, area)
	return err
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
