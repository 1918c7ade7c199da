package directoryhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"payrun/internal/domain/directory"
	"payrun/internal/transport/http/api"
	"payrun/internal/transport/http/middleware"
)

type Handler struct {
	Service *directory.Service
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{Service: directory.NewService(directory.NewStore(db))}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/departments", h.HandleCreateDepartment)
	r.Get("/departments", h.HandleListDepartments)
	r.Post("/employees", h.HandleCreateEmployee)
	r.Get("/employees", h.HandleListEmployees)
	r.Get("/employees/{employeeID}", h.HandleGetEmployee)
	r.Patch("/employees/{employeeID}", h.HandleUpdateRates)
	r.Delete("/employees/{employeeID}", h.HandleDeleteEmployee)
}

type departmentPayload struct {
	Name string `json:"name"`
}

type employeePayload struct {
	FullName     string           `json:"fullName"`
	BasicSalary  decimal.Decimal  `json:"basicSalary"`
	HRAPercent   *decimal.Decimal `json:"hraPercent"`
	BonusPercent *decimal.Decimal `json:"bonusPercent"`
	TaxPercent   *decimal.Decimal `json:"taxPercent"`
	DepartmentID string           `json:"departmentId"`
	JoinedOn     string           `json:"joinedOn"`
}

type ratesPayload struct {
	BasicSalary  *decimal.Decimal `json:"basicSalary"`
	HRAPercent   *decimal.Decimal `json:"hraPercent"`
	BonusPercent *decimal.Decimal `json:"bonusPercent"`
	TaxPercent   *decimal.Decimal `json:"taxPercent"`
}

func (h *Handler) HandleCreateDepartment(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload departmentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	dept, err := h.Service.CreateDepartment(r.Context(), payload.Name)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, dept, reqID)
}

func (h *Handler) HandleListDepartments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	departments, err := h.Service.ListDepartments(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if departments == nil {
		departments = []directory.Department{}
	}
	api.Success(w, departments, reqID)
}

func (h *Handler) HandleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	params := directory.NewEmployee{
		FullName:     payload.FullName,
		BasicSalary:  payload.BasicSalary,
		HRAPercent:   payload.HRAPercent,
		BonusPercent: payload.BonusPercent,
		TaxPercent:   payload.TaxPercent,
		DepartmentID: payload.DepartmentID,
	}
	if payload.JoinedOn != "" {
		joined, err := time.Parse("2006-01-02", payload.JoinedOn)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "joinedOn must look like YYYY-MM-DD", reqID)
			return
		}
		params.JoinedOn = joined
	}

	employee, err := h.Service.CreateEmployee(r.Context(), params)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Created(w, employee, reqID)
}

func (h *Handler) HandleListEmployees(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if employees == nil {
		employees = []directory.Employee{}
	}
	api.Success(w, employees, reqID)
}

func (h *Handler) HandleGetEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employee, err := h.Service.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, employee, reqID)
}

func (h *Handler) HandleUpdateRates(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload ratesPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid JSON body", reqID)
		return
	}

	employee, err := h.Service.UpdateEmployeeRates(r.Context(), chi.URLParam(r, "employeeID"), directory.RateUpdate{
		BasicSalary:  payload.BasicSalary,
		HRAPercent:   payload.HRAPercent,
		BonusPercent: payload.BonusPercent,
		TaxPercent:   payload.TaxPercent,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, employee, reqID)
}

func (h *Handler) HandleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.DeleteEmployee(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		h.fail(w, r, err)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, reqID)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	reqID := middleware.GetRequestID(r.Context())
	switch {
	case errors.Is(err, directory.ErrEmployeeNotFound):
		api.Fail(w, http.StatusNotFound, "employee_not_found", err.Error(), reqID)
	case errors.Is(err, directory.ErrDepartmentNotFound):
		api.Fail(w, http.StatusNotFound, "department_not_found", err.Error(), reqID)
	case errors.Is(err, directory.ErrDuplicateName):
		api.Fail(w, http.StatusConflict, "duplicate_department", err.Error(), reqID)
	case errors.Is(err, directory.ErrInvalidEmployee):
		api.Fail(w, http.StatusUnprocessableEntity, "invalid_employee", err.Error(), reqID)
	default:
		zap.L().Error("directory request failed", zap.Error(err), zap.String("requestId", reqID))
		api.Fail(w, http.StatusInternalServerError, "internal_error", "request failed", reqID)
	}
}
