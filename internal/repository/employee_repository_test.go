package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftline/rota-api/internal/models"
)

func TestEmployeeRepositoryListActiveByBranch(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEmployeeRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "branch_id", "full_name", "phone", "status", "created_at", "updated_at"}).
		AddRow("e1", nil, "b1", "Ana", nil, "Active", time.Now(), time.Now()).
		AddRow("e2", nil, "b1", "Ben", nil, "Active", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, user_id, branch_id, full_name, phone, status, created_at, updated_at\nFROM employees WHERE branch_id = ").
		WithArgs("b1", models.EmployeeStatusActive).
		WillReturnRows(rows)

	employees, err := repo.ListActiveByBranch(context.Background(), "b1")
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "Ana", employees[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryCreateDefaultsStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEmployeeRepository(db)

	mock.ExpectExec("INSERT INTO employees").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "b1", "Ana", sqlmock.AnyArg(), "Active", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	employee := &models.Employee{BranchID: "b1", FullName: "Ana"}
	require.NoError(t, repo.Create(context.Background(), employee))
	assert.Equal(t, models.EmployeeStatusActive, employee.Status)
	assert.NotEmpty(t, employee.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepositoryDeactivate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewEmployeeRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE employees SET status = $2, updated_at = $3 WHERE id = $1")).
		WithArgs("e1", models.EmployeeStatusInactive, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Deactivate(context.Background(), "e1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
