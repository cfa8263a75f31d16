package http

import (
	"encoding/json"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	// Requests
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetRequest(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)

	// Balances
	GetMyBalances(w http.ResponseWriter, r *http.Request)
	CreateDefaultBalances(w http.ResponseWriter, r *http.Request)
	ProcessYearEnd(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	requestService leave.RequestService
	balanceService leave.BalanceService
}

func NewLeaveHandler(requestService leave.RequestService, balanceService leave.BalanceService) LeaveHandler {
	return &leaveHandlerImpl{
		requestService: requestService,
		balanceService: balanceService,
	}
}

// ========== Requests ==========

func (h *leaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	employeeID, _, err := scopeEmployee(r, req.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.requestService.CreateLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// GetRequest lets employees read only their own requests.
func (h *leaveHandlerImpl) GetRequest(w http.ResponseWriter, r *http.Request) {
	result, err := h.requestService.GetLeaveRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if _, _, err := scopeEmployee(r, result.EmployeeID); err != nil {
		response.HandleError(w, leave.ErrLeaveRequestNotFound)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := leave.LeaveRequestFilter{
		EmployeeID: queryString(r, "employee_id"),
		Status:     queryString(r, "status"),
		LeaveType:  queryString(r, "leave_type"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}

	result, err := h.requestService.ListLeaveRequests(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Data, response.NewMeta(result.Page, result.Limit, result.TotalCount))
}

func (h *leaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	approverID, err := actorID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.requestService.ApproveLeaveRequest(r.Context(), chi.URLParam(r, "id"), approverID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", result)
}

func (h *leaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	var req leave.RejectLeaveRequestRequest
	if err := decodeOptional(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	approverID, err := actorID(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.RequestID = chi.URLParam(r, "id")
	req.ApproverID = approverID

	result, err := h.requestService.RejectLeaveRequest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", result)
}

// ========== Balances ==========

func (h *leaveHandlerImpl) GetMyBalances(w http.ResponseWriter, r *http.Request) {
	employeeID, _, err := scopeEmployee(r, r.URL.Query().Get("employee_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, err := optionalYear(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.balanceService.GetEmployeeLeaveBalances(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) CreateDefaultBalances(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateDefaultBalancesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.balanceService.CreateDefaultBalances(r.Context(), req.EmployeeID, req.Year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Default leave balances allocated", map[string]int{"balances_created": created})
}

func (h *leaveHandlerImpl) ProcessYearEnd(w http.ResponseWriter, r *http.Request) {
	var req leave.ProcessYearEndRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	summary, err := h.balanceService.ProcessYearEnd(r.Context(), req.Year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Year-end processing complete", summary)
}
