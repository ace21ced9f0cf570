package fixtures

import (
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/loan"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAreaConfigsFile(t *testing.T) {
	req, err := LoadAreaConfigsFile("testdata/area_configs.yaml")
	require.NoError(t, err)
	require.Len(t, req.Configs, 2)

	cebu := req.Configs[1].ToEntity()
	assert.Equal(t, "Cebu", cebu.Area)
	assert.Equal(t, payroll.PayBasisDailyRate, cebu.Basis())
}

func TestLoadAreaConfigs_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty document", ""},
		{"both pay bases", "configs:\n  - {area: Makati, is_fixed: true, is_daily: true, is_semi: true}\n"},
		{"unknown field", "configs:\n  - {area: Makati, is_fixed: true, is_semi: true, rate: 3}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadAreaConfigs(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestDataset_Materialize(t *testing.T) {
	ds, err := LoadDatasetFile("testdata/dataset.yaml")
	require.NoError(t, err)

	m, err := ds.Materialize()
	require.NoError(t, err)

	require.Len(t, m.Employees, 2)
	assert.True(t, decimal.NewFromInt(30000).Equal(m.Employees[0].BasicSalary))
	assert.True(t, m.Employees[0].SSS.Enabled)
	assert.True(t, decimal.NewFromInt(500).Equal(m.Employees[0].SSS.Amount()))
	assert.True(t, m.Employees[0].PagIBIG.Amount().IsZero())

	wd, ok := m.Employees[1].DayOff.Weekday()
	require.True(t, ok)
	assert.Equal(t, time.Saturday, wd)

	cfg, ok := m.AreaConfigs.Lookup("Makati")
	require.True(t, ok)
	assert.Equal(t, payroll.PayBasisFixedRate, cfg.Basis())

	require.Len(t, m.Attendance, 3)
	assert.Equal(t, attendance.StatusLate, m.Attendance[1].Status)
	assert.Equal(t, time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC), m.Attendance[1].Date)

	require.Len(t, m.Additions, 2)
	assert.Nil(t, m.Additions[0].AppliedDate)
	assert.Equal(t, payroll.AdditionStatusApproved, m.Additions[1].Status)

	require.Len(t, m.Installments, 1)
	assert.Equal(t, loan.DeductionTypeCashAdvance, m.Installments[0].DeductionType)
}

func TestDataset_MaterializeErrors(t *testing.T) {
	ds := Dataset{
		Employees: []EmployeeFixture{{EmployeeID: "EMP-001"}, {EmployeeID: "EMP-001"}},
		Attendance: []AttendanceFixture{
			{EmployeeID: "EMP-404", Date: "2025-13-01", Status: "Sick"},
		},
		Additions: []AdditionFixture{
			{EmployeeID: "EMP-001", Type: "Bonus"},
		},
	}

	_, err := ds.Materialize()
	require.Error(t, err)

	verrs, ok := err.(validator.ValidationErrors)
	require.True(t, ok)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "employees[0].name")
	assert.Contains(t, fields, "employees[1].employee_id")
	assert.Contains(t, fields, "attendance[0].employee_id")
	assert.Contains(t, fields, "attendance[0].date")
	assert.Contains(t, fields, "attendance[0].status")
	assert.Contains(t, fields, "additions[0].type")
	assert.Contains(t, fields, "additions[0].applied_date")
}
