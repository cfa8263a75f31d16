package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type EmployeeHandler interface {
	CreateEmployee(w http.ResponseWriter, r *http.Request)
	GetEmployee(w http.ResponseWriter, r *http.Request)
	UpdateEmployee(w http.ResponseWriter, r *http.Request)
	ListEmployees(w http.ResponseWriter, r *http.Request)
	DeactivateEmployee(w http.ResponseWriter, r *http.Request)
	GetLeaveBalances(w http.ResponseWriter, r *http.Request)
}

type employeeHandlerImpl struct {
	employeeService employee.EmployeeService
	balanceService  leave.BalanceService
}

func NewEmployeeHandler(employeeService employee.EmployeeService, balanceService leave.BalanceService) EmployeeHandler {
	return &employeeHandlerImpl{
		employeeService: employeeService,
		balanceService:  balanceService,
	}
}

func (h *employeeHandlerImpl) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.employeeService.CreateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Employee created", result)
}

func (h *employeeHandlerImpl) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.employeeService.GetEmployee(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *employeeHandlerImpl) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var req employee.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.employeeService.UpdateEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee updated", result)
}

func (h *employeeHandlerImpl) ListEmployees(w http.ResponseWriter, r *http.Request) {
	filter := employee.EmployeeFilter{
		Status:     queryString(r, "status"),
		Department: queryString(r, "department"),
		Search:     queryString(r, "search"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}

	result, err := h.employeeService.ListEmployees(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

// DeactivateEmployee backs DELETE /employees/{id}; records are never hard-deleted.
func (h *employeeHandlerImpl) DeactivateEmployee(w http.ResponseWriter, r *http.Request) {
	result, err := h.employeeService.DeactivateEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Employee deactivated", result)
}

func (h *employeeHandlerImpl) GetLeaveBalances(w http.ResponseWriter, r *http.Request) {
	year, err := optionalYear(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.balanceService.GetEmployeeLeaveBalances(r.Context(), chi.URLParam(r, "id"), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
