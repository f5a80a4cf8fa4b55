package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftline/rota-api/internal/models"
)

func TestScheduleRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec("INSERT INTO schedules").
		WithArgs(sqlmock.AnyArg(), "b1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	schedule := &models.Schedule{BranchID: "b1", WeekStart: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Create(context.Background(), nil, schedule))
	assert.NotEmpty(t, schedule.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryGetSettingsDecodesDays(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows([]string{
		"schedule_id", "active_days", "start_time", "end_time", "min_shift_length", "max_shift_length", "shift_increment",
		"min_shifts_per_employee", "max_shifts_per_employee", "max_employees_per_shift", "min_rest_hours", "notes",
	}).AddRow("s1", []byte(`[0,2,4]`), "07:00", "23:00", 4, 8, 2, 1, 5, 5, 8, nil)
	mock.ExpectQuery("SELECT schedule_id, active_days, start_time, end_time").
		WithArgs("s1").
		WillReturnRows(rows)

	settings, err := repo.GetSettings(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4}, settings.Days)
	assert.Equal(t, "07:00", settings.StartTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryGetSettingsRejectsMalformedDays(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows([]string{
		"schedule_id", "active_days", "start_time", "end_time", "min_shift_length", "max_shift_length", "shift_increment",
		"min_shifts_per_employee", "max_shifts_per_employee", "max_employees_per_shift", "min_rest_hours", "notes",
	}).AddRow("s1", []byte(`"mon,tue"`), "07:00", "23:00", 4, 8, 2, 1, 5, 5, 8, nil)
	mock.ExpectQuery("SELECT schedule_id, active_days, start_time, end_time").
		WithArgs("s1").
		WillReturnRows(rows)

	_, err := repo.GetSettings(context.Background(), "s1")
	assert.Error(t, err, "free-form day strings never reach the solver")
}

func TestScheduleRepositoryUpsertSettingsEncodesDays(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec("INSERT INTO schedule_settings").
		WillReturnResult(sqlmock.NewResult(1, 1))

	settings := &models.ScheduleSettings{
		ScheduleID:           "s1",
		Days:                 []int{0, 1, 2},
		StartTime:            "07:00",
		EndTime:              "23:00",
		MinShiftLength:       4,
		MaxShiftLength:       8,
		ShiftIncrement:       2,
		MinShiftsPerEmployee: 1,
		MaxShiftsPerEmployee: 5,
		MaxEmployeesPerShift: 5,
		MinRestHours:         8,
	}
	require.NoError(t, repo.UpsertSettings(context.Background(), nil, settings))
	assert.JSONEq(t, `[0,1,2]`, string(settings.ActiveDays))
	assert.NoError(t, mock.ExpectationsWereMet())
}
