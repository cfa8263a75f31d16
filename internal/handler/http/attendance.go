package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ListAttendance(w http.ResponseWriter, r *http.Request)
	MarkAttendance(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

// decodeOptional accepts an empty body; clock events default to the server time.
func decodeOptional(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ========== Clock events ==========

func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := decodeOptional(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	employeeID, _, err := scopeEmployee(r, req.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", result)
}

func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := decodeOptional(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	employeeID, _, err := scopeEmployee(r, req.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", result)
}

// ========== Records ==========

func (h *attendanceHandlerImpl) ListAttendance(w http.ResponseWriter, r *http.Request) {
	employeeID, _, err := scopeEmployee(r, r.URL.Query().Get("employee_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := attendance.AttendanceFilter{
		EmployeeID: employeeID,
		From:       r.URL.Query().Get("from"),
		To:         r.URL.Query().Get("to"),
	}

	result, err := h.attendanceService.ListAttendance(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) MarkAttendance(w http.ResponseWriter, r *http.Request) {
	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.MarkAttendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance marked", result)
}
