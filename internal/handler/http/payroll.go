package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SnapshotTaker stores the current cutoff's report on demand.
type SnapshotTaker interface {
	TakeSnapshot(ctx context.Context) (string, error)
}

type PayrollHandler interface {
	// Report
	GetReport(w http.ResponseWriter, r *http.Request)
	ExportReport(w http.ResponseWriter, r *http.Request)
	ResolveCutoff(w http.ResponseWriter, r *http.Request)
	TakeSnapshot(w http.ResponseWriter, r *http.Request)

	// Area configs
	ListAreaConfigs(w http.ResponseWriter, r *http.Request)
	UpsertAreaConfigs(w http.ResponseWriter, r *http.Request)

	// Additions
	CreateAddition(w http.ResponseWriter, r *http.Request)
	ListAdditions(w http.ResponseWriter, r *http.Request)
	DeleteAddition(w http.ResponseWriter, r *http.Request)

	// Deduction settings
	GetDeductionSettings(w http.ResponseWriter, r *http.Request)
	UpdateDeductionSettings(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
	snapshots      SnapshotTaker
	clock          clock.Clock
}

func NewPayrollHandler(payrollService payroll.PayrollService, snapshots SnapshotTaker, clk clock.Clock) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService, snapshots: snapshots, clock: clk}
}

func reportRequestFromQuery(r *http.Request) payroll.ReportRequest {
	q := r.URL.Query()
	return payroll.ReportRequest{
		From:   q.Get("from"),
		To:     q.Get("to"),
		Search: q.Get("search"),
	}
}

// ========== REPORT ==========

func (h *payrollHandlerImpl) GetReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GenerateReport(r.Context(), reportRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result, &response.Meta{TotalItems: result.Totals.Employees})
}

func (h *payrollHandlerImpl) ExportReport(w http.ResponseWriter, r *http.Request) {
	req := reportRequestFromQuery(r)
	data, err := h.payrollService.ExportReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("payroll_%s_%s.xlsx", req.From, req.To)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *payrollHandlerImpl) ResolveCutoff(w http.ResponseWriter, r *http.Request) {
	date := clock.Today(h.clock)
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			response.BadRequest(w, "Invalid date", map[string]string{"date": "must be a date in YYYY-MM-DD format"})
			return
		}
		date = parsed
	}

	response.Success(w, h.payrollService.ResolveCutoff(date))
}

func (h *payrollHandlerImpl) TakeSnapshot(w http.ResponseWriter, r *http.Request) {
	path, err := h.snapshots.TakeSnapshot(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll snapshot stored", map[string]string{"path": path})
}

// ========== AREA CONFIGS ==========

func (h *payrollHandlerImpl) ListAreaConfigs(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListAreaConfigs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpsertAreaConfigs(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpsertAreaConfigsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpsertAreaConfigs(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Area payroll configs saved", result)
}

// ========== ADDITIONS ==========

func (h *payrollHandlerImpl) CreateAddition(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req payroll.CreateAdditionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.payrollService.CreateAddition(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Addition created", result)
}

func (h *payrollHandlerImpl) ListAdditions(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.payrollService.ListAdditions(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeleteAddition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Addition ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteAddition(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Addition deleted", nil)
}

// ========== DEDUCTION SETTINGS ==========

func (h *payrollHandlerImpl) GetDeductionSettings(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	result, err := h.payrollService.GetDeductionSettings(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdateDeductionSettings(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	var req employee.UpdateDeductionSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpdateDeductionSettings(r.Context(), employeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Deduction settings updated", result)
}

