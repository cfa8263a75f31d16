package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBalances struct {
	leave.BalanceService
	years []int
	err   error
}

func (f *fakeBalances) ProcessYearEnd(ctx context.Context, year int) (leave.YearEndSummary, error) {
	f.years = append(f.years, year)
	return leave.YearEndSummary{Year: year, TargetYear: year + 1}, f.err
}

func TestYearEndRollover_OnlyFirstHourOfYear(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want []int
	}{
		{"new year midnight", time.Date(2025, time.January, 1, 0, 30, 0, 0, time.UTC), []int{2024}},
		{"new year later", time.Date(2025, time.January, 1, 1, 0, 0, 0, time.UTC), nil},
		{"january 2", time.Date(2025, time.January, 2, 0, 10, 0, 0, time.UTC), nil},
		{"mid year", time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fb := &fakeBalances{}
			j := NewLeaveJobs(fb)
			j.now = func() time.Time { return tc.at }

			require.NoError(t, j.YearEndRollover(context.Background()))
			assert.Equal(t, tc.want, fb.years)
		})
	}
}

func TestYearEndRollover_PropagatesError(t *testing.T) {
	fb := &fakeBalances{err: errors.New("db down")}
	j := NewLeaveJobs(fb)
	j.now = func() time.Time { return time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC) }

	assert.Error(t, j.YearEndRollover(context.Background()))
}

func TestScheduler_RunOnceCountsFailuresAndPanics(t *testing.T) {
	s := NewScheduler()
	calls := 0
	s.AddJob("ok", time.Hour, func(ctx context.Context) error { calls++; return nil })
	s.AddJob("fails", time.Hour, func(ctx context.Context) error { return errors.New("boom") })
	s.AddJob("panics", time.Hour, func(ctx context.Context) error { panic("bad") })

	failed := s.RunOnce(context.Background())

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, failed)
}
