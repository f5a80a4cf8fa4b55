package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftline/rota-api/internal/middleware"
	"github.com/shiftline/rota-api/internal/models"
	"github.com/shiftline/rota-api/internal/service"
)

type employeeRepoMock struct {
	employees map[string]*models.Employee
}

func newEmployeeRepoMock(employees ...*models.Employee) *employeeRepoMock {
	m := &employeeRepoMock{employees: map[string]*models.Employee{}}
	for _, e := range employees {
		m.employees[e.ID] = e
	}
	return m
}

func (m *employeeRepoMock) List(_ context.Context, _ models.EmployeeFilter) ([]models.Employee, int, error) {
	result := make([]models.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		result = append(result, *e)
	}
	return result, len(result), nil
}

func (m *employeeRepoMock) FindByID(_ context.Context, id string) (*models.Employee, error) {
	employee, ok := m.employees[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return employee, nil
}

func (m *employeeRepoMock) FindByUserID(_ context.Context, userID string) (*models.Employee, error) {
	for _, e := range m.employees {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *employeeRepoMock) Create(_ context.Context, employee *models.Employee) error {
	employee.ID = "e-new"
	m.employees[employee.ID] = employee
	return nil
}

func (m *employeeRepoMock) Update(_ context.Context, employee *models.Employee) error {
	m.employees[employee.ID] = employee
	return nil
}

func (m *employeeRepoMock) Deactivate(_ context.Context, id string) error {
	if _, ok := m.employees[id]; !ok {
		return sql.ErrNoRows
	}
	m.employees[id].Status = models.EmployeeStatusInactive
	return nil
}

type availabilityRepoMock struct {
	slots map[string][]models.AvailabilitySlot
}

func (m *availabilityRepoMock) ListByEmployee(_ context.Context, employeeID string) ([]models.AvailabilitySlot, error) {
	return m.slots[employeeID], nil
}

func (m *availabilityRepoMock) Replace(_ context.Context, _ sqlx.ExtContext, employeeID string, slots []models.AvailabilitySlot) error {
	if m.slots == nil {
		m.slots = map[string][]models.AvailabilitySlot{}
	}
	m.slots[employeeID] = slots
	return nil
}

func (m *availabilityRepoMock) Delete(_ context.Context, id, employeeID string) error {
	kept := m.slots[employeeID][:0]
	for _, slot := range m.slots[employeeID] {
		if slot.ID != id {
			kept = append(kept, slot)
		}
	}
	m.slots[employeeID] = kept
	return nil
}

func rosterEmployee(id, userID string) *models.Employee {
	return &models.Employee{ID: id, UserID: &userID, BranchID: "b1", FullName: "Ana", Status: models.EmployeeStatusActive}
}

func newAvailabilityHandler(employees *employeeRepoMock, slots *availabilityRepoMock) *AvailabilityHandler {
	employeeSvc := service.NewEmployeeService(employees, newBranchRepoMock(), nil, nil)
	availabilitySvc := service.NewAvailabilityService(slots, employees, nil, nil, nil)
	return NewAvailabilityHandler(availabilitySvc, employeeSvc)
}

func TestAvailabilityHandlerListOwn(t *testing.T) {
	employees := newEmployeeRepoMock(rosterEmployee("e1", "u1"))
	slots := &availabilityRepoMock{slots: map[string][]models.AvailabilitySlot{
		"e1": {{ID: "s1", EmployeeID: "e1", DayOfWeek: 0, StartTime: "09:00", EndTime: "17:00"}},
	}}
	handler := newAvailabilityHandler(employees, slots)

	c, w := newBranchTestContext(t)
	c.Request = jsonRequest(t, http.MethodGet, "/employees/e1/availability", nil)
	c.Params = gin.Params{{Key: "id", Value: "e1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1", Role: models.RoleEmployee})

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []models.AvailabilitySlot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "09:00", envelope.Data[0].StartTime)
}

func TestAvailabilityHandlerListOtherEmployeeForbidden(t *testing.T) {
	employees := newEmployeeRepoMock(rosterEmployee("e1", "u1"), rosterEmployee("e2", "u2"))
	handler := newAvailabilityHandler(employees, &availabilityRepoMock{})

	c, w := newBranchTestContext(t)
	c.Request = jsonRequest(t, http.MethodGet, "/employees/e2/availability", nil)
	c.Params = gin.Params{{Key: "id", Value: "e2"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "u1", Role: models.RoleEmployee})

	handler.List(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAvailabilityHandlerManagerMayListAnyone(t *testing.T) {
	employees := newEmployeeRepoMock(rosterEmployee("e1", "u1"))
	handler := newAvailabilityHandler(employees, &availabilityRepoMock{})

	c, w := newBranchTestContext(t)
	c.Request = jsonRequest(t, http.MethodGet, "/employees/e1/availability", nil)
	c.Params = gin.Params{{Key: "id", Value: "e1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "mgr", Role: models.RoleManager})

	handler.List(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAvailabilityHandlerUnauthenticated(t *testing.T) {
	handler := newAvailabilityHandler(newEmployeeRepoMock(), &availabilityRepoMock{})

	c, w := newBranchTestContext(t)
	c.Request = jsonRequest(t, http.MethodGet, "/employees/e1/availability", nil)
	c.Params = gin.Params{{Key: "id", Value: "e1"}}

	handler.List(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
