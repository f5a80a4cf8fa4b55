package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/shiftline/rota-api/internal/middleware"
	"github.com/shiftline/rota-api/internal/models"
	"github.com/shiftline/rota-api/internal/service"
)

func newShiftHandlerForBinding(employees *employeeRepoMock) *ShiftHandler {
	shiftSvc := service.NewShiftService(nil, nil, nil, nil, nil, nil)
	employeeSvc := service.NewEmployeeService(employees, newBranchRepoMock(), nil, nil)
	return NewShiftHandler(shiftSvc, employeeSvc)
}

func TestShiftHandlerListByEmployeeRequiresRange(t *testing.T) {
	handler := newShiftHandlerForBinding(newEmployeeRepoMock())

	c, w := newBranchTestContext(t)
	c.Request = jsonRequest(t, http.MethodGet, "/employees/e1/shifts", nil)
	c.Params = gin.Params{{Key: "id", Value: "e1"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "mgr", Role: models.RoleManager})

	handler.ListByEmployee(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShiftHandlerCreateInvalidBody(t *testing.T) {
	handler := newShiftHandlerForBinding(newEmployeeRepoMock())

	c, w := newBranchTestContext(t)
	c.Request = jsonRequest(t, http.MethodPost, "/shifts", "not an object")

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
