package join_group

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkurop/MTA-SchedulingService/internal/domain"
	"github.com/vkurop/MTA-SchedulingService/internal/integrations/customerservice"
	"github.com/vkurop/MTA-SchedulingService/internal/service/groups"
	groupModels "github.com/vkurop/MTA-SchedulingService/internal/service/groups/models"
)

type fakeGroups struct {
	result *groupModels.JoinResult
	err    error
}

func (f *fakeGroups) CanJoin(_ context.Context, _, _, _ int64) (*groupModels.CanJoinResult, error) {
	return nil, nil
}

func (f *fakeGroups) AddParticipant(_ context.Context, _, _, _ int64, _ domain.ParticipantStatus) (*groupModels.JoinResult, error) {
	return f.result, f.err
}

type fakeCustomers struct {
	customer *customerservice.Customer
	err      error
}

func (f *fakeCustomers) GetCustomer(_ context.Context, _, _ int64) (*customerservice.Customer, error) {
	return f.customer, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{TenantID: 1, AppointmentID: 42, CustomerID: 555}
}

func TestExecute_Joins(t *testing.T) {
	manager := &fakeGroups{result: &groupModels.JoinResult{
		ParticipantID: 101, Status: domain.ParticipantConfirmed, AvailableSpots: 1,
	}}
	uc := NewUseCase(manager, &fakeCustomers{customer: &customerservice.Customer{ID: 555}}, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ParticipantID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 1, resp.AvailableSpots)
}

func TestExecute_BlockedCustomer(t *testing.T) {
	uc := NewUseCase(&fakeGroups{}, &fakeCustomers{customer: &customerservice.Customer{ID: 555, Blocked: true}}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrCustomerBlocked)
}

func TestExecute_MapsGroupErrors(t *testing.T) {
	tests := []struct {
		name     string
		groupErr error
		want     error
	}{
		{"сессия не найдена", groups.ErrAppointmentNotFound, ErrAppointmentNotFound},
		{"не групповая запись", groups.ErrNotGroupAppointment, ErrNotGroupAppointment},
		{"уже участник", groups.ErrAlreadyJoined, ErrAlreadyJoined},
		{"сессия заполнена", groups.ErrSessionFull, ErrSessionFull},
		{"сессия отменена", groups.ErrSessionCancelled, ErrSessionCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(&fakeGroups{err: tt.groupErr},
				&fakeCustomers{customer: &customerservice.Customer{ID: 555}}, nopLogger{})

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeGroups{}, &fakeCustomers{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{TenantID: 1, AppointmentID: 0, CustomerID: 5})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
