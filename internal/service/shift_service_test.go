package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftline/rota-api/internal/dto"
	"github.com/shiftline/rota-api/internal/models"
	appErrors "github.com/shiftline/rota-api/pkg/errors"
)

type shiftRepoStub struct {
	byID      map[string]*models.Shift
	existing  []models.Shift
	created   *models.Shift
	updated   *models.Shift
	deletedID string
}

func (s *shiftRepoStub) ListBySchedule(ctx context.Context, scheduleID string) ([]models.ShiftDetail, error) {
	return nil, nil
}

func (s *shiftRepoStub) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]models.Shift, error) {
	return s.existing, nil
}

func (s *shiftRepoStub) FindByID(ctx context.Context, id string) (*models.Shift, error) {
	shift, ok := s.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return shift, nil
}

func (s *shiftRepoStub) Create(ctx context.Context, shift *models.Shift) error {
	shift.ID = "sh-new"
	s.created = shift
	return nil
}

func (s *shiftRepoStub) Update(ctx context.Context, shift *models.Shift) error {
	s.updated = shift
	return nil
}

func (s *shiftRepoStub) Delete(ctx context.Context, id string) error {
	s.deletedID = id
	return nil
}

type scheduleByIDStub struct {
	schedule *models.Schedule
}

func (s scheduleByIDStub) FindByID(ctx context.Context, id string) (*models.Schedule, error) {
	if s.schedule == nil {
		return nil, sql.ErrNoRows
	}
	return s.schedule, nil
}

func weekOfMarch2() *models.Schedule {
	return &models.Schedule{ID: "sched-1", BranchID: "b1", WeekStart: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)}
}

func validCreateShift() dto.CreateShiftRequest {
	return dto.CreateShiftRequest{
		ScheduleID: "sched-1",
		EmployeeID: "e1",
		StartTime:  "2026-03-04T09:00:00Z",
		EndTime:    "2026-03-04T17:00:00Z",
	}
}

func TestShiftServiceCreate(t *testing.T) {
	repo := &shiftRepoStub{}
	cache := newCacheStub()
	svc := NewShiftService(repo, scheduleByIDStub{schedule: weekOfMarch2()}, employeeByIDStub{employee: activeEmployee()}, cache, nil, nil)

	shift, err := svc.Create(context.Background(), validCreateShift())
	require.NoError(t, err)
	assert.Equal(t, models.ShiftStatusPending, shift.Status)
	assert.True(t, shift.StartTime.Equal(time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC)))
	assert.NotNil(t, repo.created)
	assert.Equal(t, 1, cache.deletes)
}

func TestShiftServiceCreateOutsideWeek(t *testing.T) {
	svc := NewShiftService(&shiftRepoStub{}, scheduleByIDStub{schedule: weekOfMarch2()}, employeeByIDStub{employee: activeEmployee()}, newCacheStub(), nil, nil)

	req := validCreateShift()
	req.StartTime = "2026-03-10T09:00:00Z"
	req.EndTime = "2026-03-10T17:00:00Z"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestShiftServiceCreateConflict(t *testing.T) {
	repo := &shiftRepoStub{existing: []models.Shift{{
		ID:        "sh-other",
		StartTime: time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 4, 20, 0, 0, 0, time.UTC),
		Status:    models.ShiftStatusApproved,
	}}}
	svc := NewShiftService(repo, scheduleByIDStub{schedule: weekOfMarch2()}, employeeByIDStub{employee: activeEmployee()}, newCacheStub(), nil, nil)

	_, err := svc.Create(context.Background(), validCreateShift())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestShiftServiceCreateIgnoresCanceledConflict(t *testing.T) {
	repo := &shiftRepoStub{existing: []models.Shift{{
		ID:        "sh-other",
		StartTime: time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 4, 20, 0, 0, 0, time.UTC),
		Status:    models.ShiftStatusCanceled,
	}}}
	svc := NewShiftService(repo, scheduleByIDStub{schedule: weekOfMarch2()}, employeeByIDStub{employee: activeEmployee()}, newCacheStub(), nil, nil)

	_, err := svc.Create(context.Background(), validCreateShift())
	require.NoError(t, err)
}

func TestShiftServiceCreateBranchMismatch(t *testing.T) {
	other := activeEmployee()
	other.BranchID = "b2"
	svc := NewShiftService(&shiftRepoStub{}, scheduleByIDStub{schedule: weekOfMarch2()}, employeeByIDStub{employee: other}, newCacheStub(), nil, nil)

	_, err := svc.Create(context.Background(), validCreateShift())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestShiftServiceUpdateSkipsOwnShiftInConflictCheck(t *testing.T) {
	current := &models.Shift{
		ID:         "sh-1",
		ScheduleID: "sched-1",
		EmployeeID: "e1",
		StartTime:  time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2026, 3, 4, 17, 0, 0, 0, time.UTC),
		Status:     models.ShiftStatusApproved,
	}
	repo := &shiftRepoStub{byID: map[string]*models.Shift{"sh-1": current}, existing: []models.Shift{*current}}
	svc := NewShiftService(repo, scheduleByIDStub{schedule: weekOfMarch2()}, employeeByIDStub{employee: activeEmployee()}, newCacheStub(), nil, nil)

	updated, err := svc.Update(context.Background(), "sh-1", dto.UpdateShiftRequest{
		StartTime: "2026-03-04T10:00:00Z",
		EndTime:   "2026-03-04T18:00:00Z",
		Status:    "Pending",
	})
	require.NoError(t, err)
	assert.True(t, updated.StartTime.Equal(time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, models.ShiftStatusPending, updated.Status)
	assert.NotNil(t, repo.updated)
}

func TestShiftServiceDelete(t *testing.T) {
	repo := &shiftRepoStub{byID: map[string]*models.Shift{"sh-1": {ID: "sh-1", ScheduleID: "sched-1"}}}
	cache := newCacheStub()
	svc := NewShiftService(repo, scheduleByIDStub{schedule: weekOfMarch2()}, employeeByIDStub{employee: activeEmployee()}, cache, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "sh-1"))
	assert.Equal(t, "sh-1", repo.deletedID)
	assert.Equal(t, 1, cache.deletes)
}
