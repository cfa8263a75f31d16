package attendance

import (
	"context"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (AttendanceResponse, error)
	MarkAttendance(ctx context.Context, req MarkAttendanceRequest) (AttendanceResponse, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]AttendanceResponse, error)
}
