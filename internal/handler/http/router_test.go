package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/loan"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayrollService struct {
	payroll.PayrollService
	lastReport payroll.ReportRequest
	deleteErr  error
}

func (f *fakePayrollService) GenerateReport(ctx context.Context, req payroll.ReportRequest) (payroll.ReportResponse, error) {
	f.lastReport = req
	if err := req.Validate(); err != nil {
		return payroll.ReportResponse{}, err
	}
	return payroll.ReportResponse{
		ReportID:    "r-1",
		PeriodStart: req.From,
		PeriodEnd:   req.To,
		CutoffDays:  15,
		Totals:      payroll.ReportTotals{Employees: 2},
	}, nil
}

func (f *fakePayrollService) ExportReport(ctx context.Context, req payroll.ReportRequest) ([]byte, error) {
	return []byte("PK"), nil
}

func (f *fakePayrollService) ResolveCutoff(date time.Time) payroll.CutoffResponse {
	return payroll.CutoffResponse{Start: date.Format(validator.DateLayout), End: date.Format(validator.DateLayout), Days: 1}
}

func (f *fakePayrollService) DeleteAddition(ctx context.Context, id string) error {
	return f.deleteErr
}

type fakeLoanService struct {
	loan.LoanService
}

func (f *fakeLoanService) CreateCashAdvance(ctx context.Context, req loan.CashAdvanceRequest) (loan.ScheduleResponse, error) {
	resp := loan.ScheduleResponse{EmployeeID: req.EmployeeID}
	if req.TotalAmount != nil && req.TotalAmount.IsPositive() {
		resp.Installments = []loan.InstallmentResponse{{CutoffDate: "2025-01-15", DeductionAmount: *req.TotalAmount}}
	}
	return resp, nil
}

type fakeSnapshots struct {
	err error
}

func (f fakeSnapshots) TakeSnapshot(ctx context.Context) (string, error) {
	return "snapshots/a.xlsx", f.err
}

type routerFixture struct {
	router     http.Handler
	payrollSvc *fakePayrollService
	admin      string
	staff      string
}

func newRouterFixture(t *testing.T, snapshotErr error) routerFixture {
	t.Helper()

	jwtService := jwt.NewJWTService("router-test-secret", "1h")
	admin, _, err := jwtService.GenerateAccessToken("admin", true)
	require.NoError(t, err)
	staff, _, err := jwtService.GenerateAccessToken("staff", false)
	require.NoError(t, err)

	payrollSvc := &fakePayrollService{}
	now := clock.Fixed(time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC))
	router := NewRouter(
		RouterOptions{
			Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
			Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("# metrics")) }),
		},
		jwtService,
		NewPayrollHandler(payrollSvc, fakeSnapshots{err: snapshotErr}, now),
		NewLoanHandler(&fakeLoanService{}),
	)

	return routerFixture{router: router, payrollSvc: payrollSvc, admin: admin, staff: staff}
}

func (f routerFixture) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRouter_Auth(t *testing.T) {
	f := newRouterFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/payroll/report?from=2025-01-01&to=2025-01-15", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(t, http.MethodGet, "/api/v1/payroll/report?from=2025-01-01&to=2025-01-15", f.staff, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Report(t *testing.T) {
	f := newRouterFixture(t, nil)

	tests := []struct {
		name     string
		query    string
		wantCode int
		wantErr  string
	}{
		{"valid period", "from=2025-01-01&to=2025-01-15&search=ana", http.StatusOK, ""},
		{"reversed period", "from=2025-01-15&to=2025-01-01", http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"missing dates", "", http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodGet, "/api/v1/payroll/report?"+tt.query, f.admin, "")
			assert.Equal(t, tt.wantCode, rec.Code)

			body := decodeBody(t, rec)
			if tt.wantErr == "" {
				assert.Equal(t, true, body["success"])
				meta, ok := body["meta"].(map[string]interface{})
				require.True(t, ok)
				assert.Equal(t, float64(2), meta["total_items"])
				return
			}
			errBody, ok := body["error"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, tt.wantErr, errBody["code"])
		})
	}
}

func TestRouter_ReportSearchForwarded(t *testing.T) {
	f := newRouterFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/payroll/report?from=2025-01-01&to=2025-01-15&search=ana", f.admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ana", f.payrollSvc.lastReport.Search)
}

func TestRouter_Export(t *testing.T) {
	f := newRouterFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/payroll/report/export?from=2025-01-01&to=2025-01-15", f.admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "payroll_2025-01-01_2025-01-15.xlsx")
	assert.Equal(t, "PK", rec.Body.String())
}

func TestRouter_Cutoff(t *testing.T) {
	f := newRouterFixture(t, nil)

	rec := f.do(t, http.MethodGet, "/api/v1/payroll/cutoff", f.admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "2025-01-20", data["start"])

	rec = f.do(t, http.MethodGet, "/api/v1/payroll/cutoff?date=20-01-2025", f.admin, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_Snapshot(t *testing.T) {
	rec := newRouterFixture(t, nil).do(t, http.MethodPost, "/api/v1/payroll/snapshots", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	f := newRouterFixture(t, nil)
	rec = f.do(t, http.MethodPost, "/api/v1/payroll/snapshots", f.admin, "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	f = newRouterFixture(t, payroll.ErrSnapshotAlreadyTaken)
	rec = f.do(t, http.MethodPost, "/api/v1/payroll/snapshots", f.admin, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_DeleteAddition(t *testing.T) {
	f := newRouterFixture(t, nil)

	rec := f.do(t, http.MethodDelete, "/api/v1/payroll/additions/abc", f.admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	f.payrollSvc.deleteErr = payroll.ErrAdditionNotFound
	rec = f.do(t, http.MethodDelete, "/api/v1/payroll/additions/abc", f.admin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CashAdvance(t *testing.T) {
	f := newRouterFixture(t, nil)

	rec := f.do(t, http.MethodPost, "/api/v1/loans/employees/EMP-001/cash-advance", f.admin,
		`{"total_amount":"1000","per_cutoff_deduction":"500"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "EMP-001", data["employee_id"])

	rec = f.do(t, http.MethodPost, "/api/v1/loans/employees/EMP-001/cash-advance", f.admin,
		`{"total_amount":"0","per_cutoff_deduction":"500"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodPost, "/api/v1/loans/employees/EMP-001/cash-advance", f.admin, `{`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

