package leave

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, "12", p.Allocation(LeaveTypeCasual).String())
	assert.Equal(t, "12", p.Allocation(LeaveTypeSick).String())
	assert.Equal(t, "21", p.Allocation(LeaveTypeEarned).String())
	assert.True(t, p.Allocation(LeaveTypeEmergency).IsZero())
}

func TestCarryForward(t *testing.T) {
	p := DefaultPolicy()
	cases := map[string]string{
		"8":    "5",
		"5":    "5",
		"2":    "2",
		"0.5":  "0.5",
		"0":    "0",
		"-3":   "0",
		"20.5": "5",
	}
	for remaining, want := range cases {
		got := p.CarryForward(decimal.RequireFromString(remaining))
		assert.Equal(t, want, got.String(), "remaining %s", remaining)
	}
}

func TestNextYearBalances(t *testing.T) {
	p := DefaultPolicy()

	rows := p.NextYearBalances("emp-1", 2025, p.CarryForward(decimal.NewFromInt(8)))
	require.Len(t, rows, 3)
	byType := map[LeaveType]LeaveBalance{}
	for _, r := range rows {
		byType[r.LeaveType] = r
		assert.Equal(t, 2025, r.Year)
		assert.True(t, r.UsedDays.IsZero())
		assert.True(t, r.RemainingDays.Equal(r.AllocatedDays))
	}
	assert.Equal(t, "26", byType[LeaveTypeEarned].AllocatedDays.String())
	assert.Equal(t, "12", byType[LeaveTypeCasual].AllocatedDays.String())

	rows = p.NextYearBalances("emp-1", 2025, p.CarryForward(decimal.NewFromInt(2)))
	for _, r := range rows {
		if r.LeaveType == LeaveTypeEarned {
			assert.Equal(t, "23", r.AllocatedDays.String())
		}
	}
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy([]byte("allocations:\n  casual: 10\ncarry_forward:\n  max_days: 7.5\n"))
	require.NoError(t, err)
	assert.Equal(t, "10", p.Allocation(LeaveTypeCasual).String())
	assert.Equal(t, "12", p.Allocation(LeaveTypeSick).String())
	assert.Equal(t, "7.5", p.MaxCarryForward.String())
	assert.Equal(t, LeaveTypeEarned, p.CarryForwardType)

	_, err = ParsePolicy([]byte("allocations:\n  sick: -1\n"))
	assert.ErrorIs(t, err, ErrInvalidLeavePolicy)

	_, err = ParsePolicy([]byte("carry_forward:\n  type: Emergency\n"))
	assert.ErrorIs(t, err, ErrInvalidLeavePolicy)

	_, err = ParsePolicy([]byte("allocations: [1, 2"))
	assert.ErrorIs(t, err, ErrInvalidLeavePolicy)
}

func TestLoadPolicy(t *testing.T) {
	p, err := LoadPolicy("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPolicy().MaxCarryForward.String(), p.MaxCarryForward.String())

	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("allocations:\n  earned: 15\n"), 0o600))
	p, err = LoadPolicy(path)
	require.NoError(t, err)
	assert.Equal(t, "15", p.Allocation(LeaveTypeEarned).String())

	_, err = LoadPolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTransition(t *testing.T) {
	cases := []struct {
		from, to LeaveRequestStatus
		effect   Effect
		err      error
	}{
		{LeaveRequestStatusPending, LeaveRequestStatusApproved, EffectConsumeBalance, nil},
		{LeaveRequestStatusPending, LeaveRequestStatusRejected, EffectNone, nil},
		{LeaveRequestStatusApproved, LeaveRequestStatusApproved, EffectNone, nil},
		{LeaveRequestStatusRejected, LeaveRequestStatusRejected, EffectNone, nil},
		{LeaveRequestStatusApproved, LeaveRequestStatusRejected, EffectNone, ErrInvalidTransition},
		{LeaveRequestStatusRejected, LeaveRequestStatusApproved, EffectNone, ErrInvalidTransition},
		{LeaveRequestStatusApproved, LeaveRequestStatusPending, EffectNone, ErrInvalidTransition},
	}
	for _, c := range cases {
		effect, err := Transition(c.from, c.to)
		assert.Equal(t, c.effect, effect, "%s -> %s", c.from, c.to)
		assert.ErrorIs(t, err, c.err, "%s -> %s", c.from, c.to)
	}
}

func TestRequestedDays(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC) }
	assert.Equal(t, "0.5", RequestedDays(d(4), d(4), true).String())
	assert.Equal(t, "1", RequestedDays(d(4), d(4), false).String())
	assert.Equal(t, "7", RequestedDays(d(4), d(10), false).String())
}

func TestCreateLeaveRequestValidate(t *testing.T) {
	reason := "family"
	half := "FirstHalf"

	_, _, err := (&CreateLeaveRequestRequest{EmployeeID: "e", LeaveType: "Casual", FromDate: "2024-03-05", ToDate: "2024-03-04"}).Validate()
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, _, err = (&CreateLeaveRequestRequest{EmployeeID: "e", LeaveType: "Casual", FromDate: "2024-03-04", ToDate: "2024-03-05", IsHalfDay: true, HalfDayPeriod: &half}).Validate()
	assert.ErrorIs(t, err, ErrHalfDaySpansMultiDays)

	_, _, err = (&CreateLeaveRequestRequest{EmployeeID: "e", LeaveType: "Emergency", FromDate: "2024-03-04", ToDate: "2024-03-04"}).Validate()
	assert.ErrorIs(t, err, ErrReasonRequired)

	from, to, err := (&CreateLeaveRequestRequest{EmployeeID: "e", LeaveType: "Emergency", FromDate: "2024-03-04", ToDate: "2024-03-06", Reason: &reason}).Validate()
	require.NoError(t, err)
	assert.Equal(t, 2, int(to.Sub(from).Hours()/24))

	_, _, err = (&CreateLeaveRequestRequest{LeaveType: "Vacation", FromDate: "x", ToDate: "2024-03-04"}).Validate()
	var verrs interface{ ToMap() map[string]string }
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "leave_type")
	assert.Contains(t, verrs.ToMap(), "from_date")
}
