package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftline/rota-api/internal/dto"
	"github.com/shiftline/rota-api/internal/models"
	appErrors "github.com/shiftline/rota-api/pkg/errors"
)

type availabilityRepoStub struct {
	stored  []models.AvailabilitySlot
	deleted bool
	delErr  error
}

func (s *availabilityRepoStub) ListByEmployee(ctx context.Context, employeeID string) ([]models.AvailabilitySlot, error) {
	return s.stored, nil
}

func (s *availabilityRepoStub) Replace(ctx context.Context, exec sqlx.ExtContext, employeeID string, slots []models.AvailabilitySlot) error {
	s.stored = slots
	return nil
}

func (s *availabilityRepoStub) Delete(ctx context.Context, id, employeeID string) error {
	if s.delErr != nil {
		return s.delErr
	}
	s.deleted = true
	return nil
}

type employeeByIDStub struct {
	employee *models.Employee
}

func (s employeeByIDStub) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	if s.employee == nil {
		return nil, sql.ErrNoRows
	}
	return s.employee, nil
}

func activeEmployee() *models.Employee {
	return &models.Employee{ID: "e1", BranchID: "b1", FullName: "Ana", Status: models.EmployeeStatusActive}
}

func TestAvailabilityServiceReplaceStoresSlots(t *testing.T) {
	repo := &availabilityRepoStub{}
	tx, mock := newTxProviderMock(t)
	svc := NewAvailabilityService(repo, employeeByIDStub{employee: activeEmployee()}, tx, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	slots, err := svc.Replace(context.Background(), "e1", dto.ReplaceAvailabilityRequest{Slots: []dto.AvailabilitySlotRequest{
		{DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"},
		{DayOfWeek: 4, StartTime: "12:00", EndTime: "24:00"},
	}})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "e1", slots[0].EmployeeID)
	assert.Len(t, repo.stored, 2)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityServiceReplaceEmptyWithdraws(t *testing.T) {
	repo := &availabilityRepoStub{stored: []models.AvailabilitySlot{{ID: "old"}}}
	tx, mock := newTxProviderMock(t)
	svc := NewAvailabilityService(repo, employeeByIDStub{employee: activeEmployee()}, tx, nil, nil)

	mock.ExpectBegin()
	mock.ExpectCommit()

	slots, err := svc.Replace(context.Background(), "e1", dto.ReplaceAvailabilityRequest{Slots: []dto.AvailabilitySlotRequest{}})
	require.NoError(t, err)
	assert.Empty(t, slots)
	assert.Empty(t, repo.stored)
}

func TestAvailabilityServiceReplaceRejectsInvertedWindow(t *testing.T) {
	tx, _ := newTxProviderMock(t)
	svc := NewAvailabilityService(&availabilityRepoStub{}, employeeByIDStub{employee: activeEmployee()}, tx, nil, nil)

	_, err := svc.Replace(context.Background(), "e1", dto.ReplaceAvailabilityRequest{Slots: []dto.AvailabilitySlotRequest{
		{DayOfWeek: 1, StartTime: "17:00", EndTime: "09:00"},
	}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAvailabilityServiceReplaceRejectsMalformedTime(t *testing.T) {
	tx, _ := newTxProviderMock(t)
	svc := NewAvailabilityService(&availabilityRepoStub{}, employeeByIDStub{employee: activeEmployee()}, tx, nil, nil)

	_, err := svc.Replace(context.Background(), "e1", dto.ReplaceAvailabilityRequest{Slots: []dto.AvailabilitySlotRequest{
		{DayOfWeek: 1, StartTime: "9 am!", EndTime: "17:00"},
	}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAvailabilityServiceReplaceInactiveEmployee(t *testing.T) {
	inactive := activeEmployee()
	inactive.Status = models.EmployeeStatusInactive
	tx, _ := newTxProviderMock(t)
	svc := NewAvailabilityService(&availabilityRepoStub{}, employeeByIDStub{employee: inactive}, tx, nil, nil)

	_, err := svc.Replace(context.Background(), "e1", dto.ReplaceAvailabilityRequest{Slots: []dto.AvailabilitySlotRequest{}})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

func TestAvailabilityServiceListUnknownEmployee(t *testing.T) {
	tx, _ := newTxProviderMock(t)
	svc := NewAvailabilityService(&availabilityRepoStub{}, employeeByIDStub{}, tx, nil, nil)

	_, err := svc.List(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
