package payrollhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"payrun/internal/domain/payroll"
	"payrun/internal/transport/http/api"
	"payrun/internal/transport/http/middleware"
	"payrun/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
}

func NewHandler(db *pgxpool.Pool, payslipDir string) *Handler {
	return &Handler{Service: payroll.NewService(payroll.NewStore(db), payslipDir)}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/payroll/runs", h.HandleRunPayroll)
	r.Post("/employees/{employeeID}/payslips", h.HandleCalculateSalary)
	r.Get("/payslips/{employeeID}/{period}", h.HandleGetPayslip)
	r.Get("/payslips/{employeeID}/{period}/pdf", h.HandleRenderPDF)
	r.Get("/reports/departments", h.HandleDepartmentReport)
}

type runPayload struct {
	Period string `json:"period"`
}

func (h *Handler) HandleRunPayroll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload runPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}
	if !shared.ValidPeriod(payload.Period) {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "period must look like YYYY-MM", reqID)
		return
	}

	result, err := h.Service.GenerateMonthly(r.Context(), payload.Period)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, result, reqID)
}

func (h *Handler) HandleCalculateSalary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	var payload runPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}
	if !shared.ValidPeriod(payload.Period) {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "period must look like YYYY-MM", reqID)
		return
	}

	if _, err := h.Service.CalculateSalary(r.Context(), employeeID, payload.Period); err != nil {
		h.fail(w, r, err)
		return
	}
	payslip, err := h.Service.GetPayslip(r.Context(), employeeID, payload.Period)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, payslip, reqID)
}

func (h *Handler) HandleGetPayslip(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	period := chi.URLParam(r, "period")

	if !shared.ValidPeriod(period) {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "period must look like YYYY-MM", reqID)
		return
	}

	payslip, err := h.Service.GetPayslip(r.Context(), employeeID, period)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, payslip, reqID)
}

func (h *Handler) HandleRenderPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")
	period := chi.URLParam(r, "period")

	if !shared.ValidPeriod(period) {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "period must look like YYYY-MM", reqID)
		return
	}

	path, err := h.Service.RenderPayslipPDF(r.Context(), employeeID, period)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]string{"file": path}, reqID)
}

func (h *Handler) HandleDepartmentReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	period := r.URL.Query().Get("period")

	if !shared.ValidPeriod(period) {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "period must look like YYYY-MM", reqID)
		return
	}

	report, err := h.Service.CollectReport(r.Context(), period)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if report == nil {
		report = []payroll.ReportRow{}
	}
	api.Success(w, report, reqID)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", err.Error(), reqID)
	case errors.Is(err, payroll.ErrPayslipNotFound):
		api.Fail(w, http.StatusNotFound, "payslip_not_found", err.Error(), reqID)
	case errors.Is(err, payroll.ErrInvalidEmployeeData):
		api.Fail(w, http.StatusUnprocessableEntity, "invalid_employee_data", err.Error(), reqID)
	default:
		zap.L().Error("payroll request failed", zap.Error(err), zap.String("requestId", reqID))
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", reqID)
	}
}
