package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/audit"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
)

type RequestService struct {
	tx database.Transactor
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	balances leave.BalanceService
	audit    audit.AuditService
	now      func() time.Time
}

func NewRequestService(tx database.Transactor, leaveRequestRepository leave.LeaveRequestRepository, employeeRepository employee.EmployeeRepository, balanceService leave.BalanceService, auditService audit.AuditService) *RequestService {
	return &RequestService{
		tx:                     tx,
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
		balances:               balanceService,
		audit:                  auditService,
		now:                    time.Now,
	}
}

func (r *RequestService) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	from, to, err := req.Validate()
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if _, err := r.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	leaveType := leave.LeaveType(req.LeaveType)
	days := leave.RequestedDays(from, to, req.IsHalfDay)

	ok, err := r.balances.HasSufficientBalance(ctx, req.EmployeeID, leaveType, days, from.Year())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !ok {
		return leave.LeaveRequestResponse{}, leave.ErrInsufficientBalance
	}

	newRequest := leave.LeaveRequest{
		EmployeeID:   req.EmployeeID,
		LeaveType:    leaveType,
		FromDate:     from,
		ToDate:       to,
		NumberOfDays: days,
		IsHalfDay:    req.IsHalfDay,
		Reason:       req.Reason,
		Status:       leave.LeaveRequestStatusPending,
	}
	if req.IsHalfDay {
		period := leave.HalfDayPeriod(*req.HalfDayPeriod)
		newRequest.HalfDayPeriod = &period
	}

	if err := r.ensureNoApprovedOverlap(ctx, newRequest); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created, err := r.LeaveRequestRepository.Create(ctx, newRequest)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("Leave request created",
		"request_id", created.ID,
		"employee_id", created.EmployeeID,
		"leave_type", created.LeaveType,
		"days", created.NumberOfDays.String(),
	)
	return mapToResponse(created), nil
}

// ApproveLeaveRequest moves a request to Approved. Balance is consumed only on
// the Pending -> Approved edge; approving an approved request changes nothing.
func (r *RequestService) ApproveLeaveRequest(ctx context.Context, requestID string, approverID string) (leave.LeaveRequestResponse, error) {
	var result leave.LeaveRequest

	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		request, err := r.LeaveRequestRepository.GetByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}

		effect, err := leave.Transition(request.Status, leave.LeaveRequestStatusApproved)
		if err != nil {
			return err
		}
		if request.Status == leave.LeaveRequestStatusApproved {
			result = request
			return nil
		}

		before := request
		if effect == leave.EffectConsumeBalance {
			if err := r.ensureNoApprovedOverlap(ctx, request); err != nil {
				return err
			}

			year := request.FromDate.Year()
			ok, err := r.balances.HasSufficientBalance(ctx, request.EmployeeID, request.LeaveType, request.NumberOfDays, year)
			if err != nil {
				return err
			}
			if !ok {
				return leave.ErrInsufficientBalance
			}
			if err := r.balances.UpdateBalance(ctx, request.EmployeeID, request.LeaveType, request.NumberOfDays, year); err != nil {
				return err
			}
		}

		approvedAt := r.now()
		request.Status = leave.LeaveRequestStatusApproved
		request.ApprovedBy = &approverID
		request.ApprovedAt = &approvedAt
		if err := r.LeaveRequestRepository.UpdateStatus(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		result = request
		return r.audit.Log(ctx, approverID, audit.ActionApprove, "leave_request", request.ID, mapToResponse(before), mapToResponse(request))
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request approved", "request_id", result.ID, "approved_by", approverID)
	return mapToResponse(result), nil
}

func (r *RequestService) RejectLeaveRequest(ctx context.Context, req leave.RejectLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	var result leave.LeaveRequest

	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		request, err := r.LeaveRequestRepository.GetByIDForUpdate(ctx, req.RequestID)
		if err != nil {
			return err
		}

		if _, err := leave.Transition(request.Status, leave.LeaveRequestStatusRejected); err != nil {
			return err
		}
		if request.Status == leave.LeaveRequestStatusRejected {
			result = request
			return nil
		}

		before := request
		decidedAt := r.now()
		request.Status = leave.LeaveRequestStatusRejected
		request.ApprovedBy = &req.ApproverID
		request.ApprovedAt = &decidedAt
		request.RejectionReason = req.Reason
		if err := r.LeaveRequestRepository.UpdateStatus(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		result = request
		return r.audit.Log(ctx, req.ApproverID, audit.ActionReject, "leave_request", request.ID, mapToResponse(before), mapToResponse(request))
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request rejected", "request_id", result.ID, "rejected_by", req.ApproverID)
	return mapToResponse(result), nil
}

func (r *RequestService) GetLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := r.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return mapToResponse(request), nil
}

func (r *RequestService) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	filter.Normalize()

	requests, total, err := r.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	data := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, req := range requests {
		data = append(data, mapToResponse(req))
	}
	return leave.ListLeaveRequestResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// ensureNoApprovedOverlap rejects candidate when another approved request of
// the same employee intersects its range.
func (r *RequestService) ensureNoApprovedOverlap(ctx context.Context, candidate leave.LeaveRequest) error {
	approved, err := r.LeaveRequestRepository.ListApprovedInRange(ctx, candidate.EmployeeID, candidate.FromDate, candidate.ToDate)
	if err != nil {
		return fmt.Errorf("failed to check overlapping leave: %w", err)
	}
	for _, a := range approved {
		if a.ID != candidate.ID && a.Overlaps(candidate) {
			return leave.ErrOverlappingLeave
		}
	}
	return nil
}

func mapToResponse(r leave.LeaveRequest) leave.LeaveRequestResponse {
	resp := leave.LeaveRequestResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		LeaveType:       string(r.LeaveType),
		FromDate:        r.FromDate.Format("2006-01-02"),
		ToDate:          r.ToDate.Format("2006-01-02"),
		NumberOfDays:    r.NumberOfDays,
		IsHalfDay:       r.IsHalfDay,
		Reason:          r.Reason,
		Status:          string(r.Status),
		ApprovedBy:      r.ApprovedBy,
		ApprovedAt:      r.ApprovedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
	}
	if r.HalfDayPeriod != nil {
		p := string(*r.HalfDayPeriod)
		resp.HalfDayPeriod = &p
	}
	return resp
}
