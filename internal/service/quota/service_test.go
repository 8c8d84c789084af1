package quota

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	planRepo "github.com/vkurop/MTA-SchedulingService/internal/infra/storage/plan"
	"github.com/vkurop/MTA-SchedulingService/pkg/ptr"
)

type fakePlanRepo struct {
	planCtx *domain.PlanContext
}

func (f *fakePlanRepo) GetPlanContext(_ context.Context, tenantID int64) (*domain.PlanContext, error) {
	if f.planCtx == nil || f.planCtx.TenantID != tenantID {
		return nil, planRepo.ErrTenantNotFound
	}
	return f.planCtx, nil
}

type fakeApptRepo struct {
	count    int
	gotFrom  time.Time
	gotTo    time.Time
	gotCalls int
}

func (f *fakeApptRepo) CountStartingBetween(_ context.Context, _ int64, from, to time.Time) (int, error) {
	f.gotFrom, f.gotTo = from, to
	f.gotCalls++
	return f.count, nil
}

type fakeCatalog struct {
	services int
	workers  int
}

func (f *fakeCatalog) CountServices(_ context.Context, _ int64) (int, error) {
	return f.services, nil
}

func (f *fakeCatalog) CountActiveWorkers(_ context.Context, _ int64) (int, error) {
	return f.workers, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func basicPlan(limits map[string]int) *domain.PlanContext {
	return &domain.PlanContext{
		TenantID:           1,
		PlanCode:           "basic",
		Limits:             limits,
		SubscriptionActive: true,
	}
}

func TestCheck_LiveStaffCount(t *testing.T) {
	plans := &fakePlanRepo{planCtx: basicPlan(map[string]int{domain.LimitMaxStaff: 3})}
	svc := NewService(plans, &fakeApptRepo{}, &fakeCatalog{workers: 3}, nopLogger{})

	result, err := svc.Check(context.Background(), 1, domain.LimitMaxStaff, nil)
	require.NoError(t, err)

	assert.False(t, result.CanProceed, "достигнутый лимит блокирует")
	assert.Equal(t, 3, result.Current)
}

func TestCheck_ExplicitCountOverridesLiveCount(t *testing.T) {
	plans := &fakePlanRepo{planCtx: basicPlan(map[string]int{domain.LimitMaxServices: 10})}
	catalog := &fakeCatalog{services: 10}
	svc := NewService(plans, &fakeApptRepo{}, catalog, nopLogger{})

	result, err := svc.Check(context.Background(), 1, domain.LimitMaxServices, ptr.Ptr(4))
	require.NoError(t, err)

	assert.True(t, result.CanProceed)
	assert.Equal(t, 4, result.Current)
}

func TestCheck_UnknownLimitWithoutCount(t *testing.T) {
	plans := &fakePlanRepo{planCtx: basicPlan(nil)}
	svc := NewService(plans, &fakeApptRepo{}, &fakeCatalog{}, nopLogger{})

	_, err := svc.Check(context.Background(), 1, "max_rockets", nil)
	assert.ErrorIs(t, err, ErrUnknownLimit)
}

func TestCheck_TenantNotFound(t *testing.T) {
	svc := NewService(&fakePlanRepo{}, &fakeApptRepo{}, &fakeCatalog{}, nopLogger{})

	_, err := svc.Check(context.Background(), 99, domain.LimitMaxStaff, nil)
	assert.ErrorIs(t, err, ErrTenantNotFound)
}

func TestCheckMonthlyBookings_CalendarMonthWindow(t *testing.T) {
	appts := &fakeApptRepo{count: 5}
	svc := NewService(&fakePlanRepo{}, appts, &fakeCatalog{}, nopLogger{})
	svc.timeProvider = fixedTime{now: time.Date(2026, time.February, 15, 12, 30, 0, 0, time.UTC)}

	plan := basicPlan(map[string]int{domain.LimitMaxBookingsPerMonth: 100})
	result, err := svc.CheckMonthlyBookings(context.Background(), plan)
	require.NoError(t, err)

	assert.True(t, result.CanProceed)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), appts.gotFrom)
	assert.Equal(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), appts.gotTo)
}

func TestCheckMonthlyBookings_UnlimitedPlanSkipsNothing(t *testing.T) {
	appts := &fakeApptRepo{count: 100000}
	svc := NewService(&fakePlanRepo{}, appts, &fakeCatalog{}, nopLogger{})
	svc.timeProvider = fixedTime{now: time.Date(2026, time.December, 31, 23, 59, 0, 0, time.UTC)}

	plan := basicPlan(map[string]int{domain.LimitMaxBookingsPerMonth: domain.UnlimitedLimit})
	result, err := svc.CheckMonthlyBookings(context.Background(), plan)
	require.NoError(t, err)

	assert.True(t, result.CanProceed)
	assert.False(t, result.IsLimited)
}
