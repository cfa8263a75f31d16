package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	My(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	actor, err := actorID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.ActorID = actor

	result, err := h.payrollService.GeneratePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll generated", result)
}

func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := payroll.PayrollFilter{
		EmployeeID: queryString(r, "employee_id"),
		Status:     queryString(r, "status"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
		SortBy:     query.Get("sort_by"),
		SortOrder:  query.Get("sort_order"),
	}
	if m := query.Get("month"); m != "" {
		month, ok := validator.ParseMonth(m)
		if !ok {
			response.BadRequest(w, "Invalid month", map[string]string{"month": "must be in YYYY-MM format"})
			return
		}
		filter.Month = &month
	}

	result, err := h.payrollService.ListPayrolls(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetPayroll(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req payroll.UpdatePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	actor, err := actorID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.ActorID = actor

	result, err := h.payrollService.UpdatePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll updated", result)
}

func (h *payrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.payrollService.DeletePayroll(r.Context(), chi.URLParam(r, "id"), actor); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll deleted", nil)
}

// My lists the caller's own payrolls, newest first.
func (h *payrollHandlerImpl) My(w http.ResponseWriter, r *http.Request) {
	employeeID, _, err := scopeEmployee(r, "")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if employeeID == "" {
		response.HandleError(w, user.ErrEmployeeLinkMissing)
		return
	}

	result, err := h.payrollService.GetPayrollsByEmployee(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
