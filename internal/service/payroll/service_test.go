package payroll

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/loan"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type serviceFixture struct {
	svc       payroll.PayrollService
	employees *memEmployeeRepo
	payroll   *memPayrollRepo
}

func newServiceFixture(t *testing.T) serviceFixture {
	t.Helper()
	cal := mustCalendar(t, mustDate(2024, 3, 11), mustDate(2024, 3, 25))

	employees := &memEmployeeRepo{employees: []employee.Employee{
		{EmployeeID: "EMP-001", Name: "Ana Cruz", Area: "Makati", BasicSalary: amt("30000"), DayOff: employee.DayOffSunday},
		{EmployeeID: "EMP-002", Name: "Ben Reyes", Area: "Cebu", BasicSalary: amt("24000")},
		{EmployeeID: "EMP-003", Name: "Carla Santos", BasicSalary: amt("40000"), IsTimeExempted: true},
	}}

	var records []attendance.Record
	for _, d := range cal.Dates() {
		if d.Weekday() != time.Sunday {
			records = append(records, attendance.Record{EmployeeID: "EMP-001", Date: d, Status: attendance.StatusPresent})
		}
	}
	records = append(records, presentDays("EMP-002", cal.Start(), 10)...)

	payrollRepo := &memPayrollRepo{
		configs: []payroll.AreaPayrollConfig{{Area: "Makati", IsFixed: true, IsSemi: true}},
		additions: []payroll.AdditionEntry{
			{ID: "a1", EmployeeID: "EMP-002", Type: payroll.AdditionTypeAllowance, Amount: amt("500"), IsRecurring: true, Status: payroll.AdditionStatusApproved},
		},
	}
	loans := &memLoanRepo{installments: []loan.Installment{
		{EmployeeID: "EMP-001", CutoffDate: mustDate(2024, 3, 15), DeductionAmount: amt("2000")},
	}}

	svc := NewPayrollService(payrollRepo, employees, &memAttendanceRepo{records: records}, loans,
		clock.Fixed(time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)), nil)
	return serviceFixture{svc: svc, employees: employees, payroll: payrollRepo}
}

func TestPayrollService_GenerateReport(t *testing.T) {
	fx := newServiceFixture(t)

	resp, err := fx.svc.GenerateReport(context.Background(), payroll.ReportRequest{From: "2024-03-11", To: "2024-03-25"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ReportID)
	assert.Equal(t, 15, resp.CutoffDays)
	require.Len(t, resp.Areas, 3)
	assert.Equal(t, "Cebu", resp.Areas[0].Area)
	assert.Equal(t, "Makati", resp.Areas[1].Area)
	assert.Equal(t, "Unassigned", resp.Areas[2].Area)

	ben := resp.Areas[0].Rows[0]
	assert.Equal(t, payroll.PayBasisDailyRate, ben.Basis)
	assertAmount(t, "8500", ben.NetPay)

	ana := resp.Areas[1].Rows[0]
	assert.Equal(t, payroll.PayBasisFixedRate, ana.Basis)
	assert.Equal(t, 15, ana.BillableDays)
	assertAmount(t, "15000", ana.GrossPay)
	assertAmount(t, "2000", ana.LoanDeductions)
	assertAmount(t, "13000", ana.NetPay)

	carla := resp.Areas[2].Rows[0]
	assert.Equal(t, payroll.PayBasisExempted, carla.Basis)
	assertAmount(t, "20000", carla.NetPay)

	assert.Equal(t, 3, resp.Totals.Employees)
	assertAmount(t, "41500", resp.Totals.NetPay)
}

func TestPayrollService_GenerateReportSearch(t *testing.T) {
	fx := newServiceFixture(t)

	resp, err := fx.svc.GenerateReport(context.Background(), payroll.ReportRequest{From: "2024-03-11", To: "2024-03-25", Search: "ANA"})
	require.NoError(t, err)

	require.Len(t, resp.Areas, 1)
	assert.Equal(t, "EMP-001", resp.Areas[0].Rows[0].EmployeeID)
}

func TestPayrollService_InvalidPeriod(t *testing.T) {
	fx := newServiceFixture(t)

	_, err := fx.svc.GenerateReport(context.Background(), payroll.ReportRequest{From: "2024-03-25", To: "2024-03-11"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = fx.svc.ComputeRows(context.Background(), mustDate(2024, 3, 25), mustDate(2024, 3, 11), "")
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}

func TestPayrollService_ExportReport(t *testing.T) {
	fx := newServiceFixture(t)

	data, err := fx.svc.ExportReport(context.Background(), payroll.ReportRequest{From: "2024-03-11", To: "2024-03-25"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	title, _ := f.GetCellValue("Payroll", "A1")
	assert.Equal(t, "PAYROLL REPORT", title)
	header, _ := f.GetCellValue("Payroll", "B4")
	assert.Equal(t, "EMPLOYEE NAME", header)
	firstArea, _ := f.GetCellValue("Payroll", "A5")
	assert.Equal(t, "CEBU", firstArea)
	firstEmployee, _ := f.GetCellValue("Payroll", "A6")
	assert.Equal(t, "EMP-002", firstEmployee)
}

func TestPayrollService_ResolveCutoff(t *testing.T) {
	fx := newServiceFixture(t)

	resp := fx.svc.ResolveCutoff(mustDate(2024, 3, 5))

	assert.Equal(t, payroll.CutoffResponse{Start: "2024-02-26", End: "2024-03-10", Days: 14}, resp)
}

func TestPayrollService_AreaConfigs(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()

	configs, err := fx.svc.ListAreaConfigs(ctx)
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "Cebu", configs[0].Area)
	assert.True(t, configs[0].IsDefault)
	assert.True(t, configs[0].IsDaily)
	assert.True(t, configs[0].IsSemi)
	assert.Equal(t, "Makati", configs[1].Area)
	assert.False(t, configs[1].IsDefault)
	assert.Equal(t, payroll.PayBasisFixedRate, configs[1].Basis)

	_, err = fx.svc.UpsertAreaConfigs(ctx, payroll.UpsertAreaConfigsRequest{Configs: []payroll.AreaConfigRequest{
		{Area: "Cebu", IsFixed: true, IsDaily: true, IsSemi: true},
	}})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "configs[0].is_fixed")

	configs, err = fx.svc.UpsertAreaConfigs(ctx, payroll.UpsertAreaConfigsRequest{Configs: []payroll.AreaConfigRequest{
		{Area: " Cebu ", IsFixed: true, IsMonthly: true},
	}})
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.False(t, configs[0].IsDefault)
	assert.Equal(t, payroll.PayBasisFixedRate, configs[0].Basis)
}

func TestPayrollService_CreateAddition(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()
	hours := amt("2.5")

	ot, err := fx.svc.CreateAddition(ctx, payroll.CreateAdditionRequest{EmployeeID: "EMP-002", Type: "Overtime", OTHours: &hours})
	require.NoError(t, err)
	assertAmount(t, "250", ot.Amount) // 24000 / 30 / 8 = 100 per hour
	require.NotNil(t, ot.AppliedDate)
	assert.Equal(t, "2024-03-20", *ot.AppliedDate)
	assert.False(t, ot.IsRecurring)
	assert.Equal(t, payroll.AdditionStatusApproved, ot.Status)

	allowance := amt("300")
	al, err := fx.svc.CreateAddition(ctx, payroll.CreateAdditionRequest{EmployeeID: "EMP-002", Type: "Allowance", Amount: &allowance})
	require.NoError(t, err)
	assert.True(t, al.IsRecurring)
	assert.Nil(t, al.AppliedDate)

	applied := "2024-03-12"
	rd, err := fx.svc.CreateAddition(ctx, payroll.CreateAdditionRequest{EmployeeID: "EMP-002", Type: "Restday", Amount: &allowance, AppliedDate: &applied})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-12", *rd.AppliedDate)

	list, err := fx.svc.ListAdditions(ctx, "EMP-002")
	require.NoError(t, err)
	assert.Len(t, list, 4)

	require.NoError(t, fx.svc.DeleteAddition(ctx, ot.ID))
	list, err = fx.svc.ListAdditions(ctx, "EMP-002")
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestPayrollService_CreateAdditionRejectsInvalidInput(t *testing.T) {
	fx := newServiceFixture(t)
	ctx := context.Background()
	zero := decimal.Zero

	tests := []struct {
		name  string
		req   payroll.CreateAdditionRequest
		field string
	}{
		{"unknown type", payroll.CreateAdditionRequest{EmployeeID: "EMP-002", Type: "Bonus"}, "type"},
		{"zero allowance", payroll.CreateAdditionRequest{EmployeeID: "EMP-002", Type: "Allowance", Amount: &zero}, "amount"},
		{"missing overtime hours", payroll.CreateAdditionRequest{EmployeeID: "EMP-002", Type: "Overtime"}, "ot_hours"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.svc.CreateAddition(ctx, tt.req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}

	amount := amt("100")
	_, err := fx.svc.CreateAddition(ctx, payroll.CreateAdditionRequest{EmployeeID: "EMP-404", Type: "Allowance", Amount: &amount})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPayrollService_DeleteAdditionUnknownID(t *testing.T) {
	fx := newServiceFixture(t)

	assert.ErrorIs(t, fx.svc.DeleteAddition(context.Background(), "not-a-uuid"), payroll.ErrAdditionNotFound)
	assert.ErrorIs(t, fx.svc.DeleteAddition(context.Background(), "0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"), payroll.ErrAdditionNotFound)
}

func TestPayrollService_UpdateDeductionSettings(t *testing.T) {
	fx := newServiceFixture(t)
	enabled := true
	sss := amt("581.30")
	voluntary := amt("150")

	resp, err := fx.svc.UpdateDeductionSettings(context.Background(), "EMP-002", employee.UpdateDeductionSettingsRequest{
		SSS:                 &employee.ContributionRequest{Enabled: &enabled, FixedAmount: &sss},
		VoluntaryDeductions: &voluntary,
	})
	require.NoError(t, err)

	assert.True(t, resp.SSS.Enabled)
	assertAmount(t, "581.30", resp.SSS.FixedAmount)
	assert.False(t, resp.PhilHealth.Enabled)
	assertAmount(t, "150", resp.VoluntaryDeductions)

	negative := amt("-1")
	_, err = fx.svc.UpdateDeductionSettings(context.Background(), "EMP-002", employee.UpdateDeductionSettingsRequest{
		PagIBIG: &employee.ContributionRequest{FixedAmount: &negative},
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "pagibig.fixed_amount")
}
