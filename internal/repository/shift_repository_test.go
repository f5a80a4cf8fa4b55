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

func TestShiftRepositoryBulkInsertDefaults(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftRepository(db)

	mock.ExpectExec("INSERT INTO shifts").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO shifts").WillReturnResult(sqlmock.NewResult(1, 1))

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	shifts := []models.Shift{
		{ScheduleID: "s1", EmployeeID: "e1", StartTime: start, EndTime: start.Add(8 * time.Hour)},
		{ScheduleID: "s1", EmployeeID: "e2", StartTime: start, EndTime: start.Add(8 * time.Hour)},
	}
	require.NoError(t, repo.BulkInsert(context.Background(), nil, shifts))
	for _, s := range shifts {
		assert.NotEmpty(t, s.ID)
		assert.Equal(t, models.ShiftStatusApproved, s.Status, "generated shifts default to Approved")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepositoryBulkInsertInsideTransaction(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO shifts").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTxx(context.Background(), nil)
	require.NoError(t, err)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	err = repo.BulkInsert(context.Background(), tx, []models.Shift{
		{ScheduleID: "s1", EmployeeID: "e1", StartTime: start, EndTime: start.Add(4 * time.Hour)},
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepositoryListBySchedule(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewShiftRepository(db)

	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "schedule_id", "employee_id", "start_time", "end_time", "status", "created_at", "employee_name"}).
		AddRow("sh1", "s1", "e1", start, start.Add(8*time.Hour), "Approved", time.Now(), "Ana")
	mock.ExpectQuery("SELECT sh.id, sh.schedule_id, sh.employee_id").
		WithArgs("s1").
		WillReturnRows(rows)

	shifts, err := repo.ListBySchedule(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "Ana", shifts[0].EmployeeName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
