package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shiftline/rota-api/internal/dto"
	"github.com/shiftline/rota-api/internal/service"
	appErrors "github.com/shiftline/rota-api/pkg/errors"
	"github.com/shiftline/rota-api/pkg/response"
)

// ShiftHandler handles manual shift management endpoints.
type ShiftHandler struct {
	service   *service.ShiftService
	employees *service.EmployeeService
}

// NewShiftHandler creates a new shift handler.
func NewShiftHandler(svc *service.ShiftService, employees *service.EmployeeService) *ShiftHandler {
	return &ShiftHandler{service: svc, employees: employees}
}

// ListBySchedule godoc
// @Summary List schedule shifts
// @Description List all shifts of a schedule
// @Tags Shifts
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/shifts [get]
func (h *ShiftHandler) ListBySchedule(c *gin.Context) {
	shifts, err := h.service.ListBySchedule(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, shifts, nil)
}

// ListMine godoc
// @Summary List own shifts
// @Description List the authenticated employee's shifts in a date range
// @Tags Shifts
// @Produce json
// @Param from query string true "Range start (RFC3339)"
// @Param to query string true "Range end (RFC3339)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /me/shifts [get]
func (h *ShiftHandler) ListMine(c *gin.Context) {
	employee, err := callerEmployee(c, h.employees)
	if err != nil {
		response.Error(c, err)
		return
	}

	from, to, err := parseRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	shifts, err := h.service.ListByEmployee(c.Request.Context(), employee.ID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, shifts, nil)
}

// ListByEmployee godoc
// @Summary List employee shifts
// @Description List an employee's shifts in a date range
// @Tags Shifts
// @Produce json
// @Param id path string true "Employee ID"
// @Param from query string true "Range start (RFC3339)"
// @Param to query string true "Range end (RFC3339)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /employees/{id}/shifts [get]
func (h *ShiftHandler) ListByEmployee(c *gin.Context) {
	employeeID := c.Param("id")
	if err := requireEmployeeAccess(c, h.employees, employeeID); err != nil {
		response.Error(c, err)
		return
	}

	from, to, err := parseRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	shifts, err := h.service.ListByEmployee(c.Request.Context(), employeeID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, shifts, nil)
}

// Get godoc
// @Summary Get shift
// @Description Get shift detail
// @Tags Shifts
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /shifts/{id} [get]
func (h *ShiftHandler) Get(c *gin.Context) {
	shift, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, shift, nil)
}

// Create godoc
// @Summary Create shift
// @Description Add a manual shift to a schedule
// @Tags Shifts
// @Accept json
// @Produce json
// @Param payload body dto.CreateShiftRequest true "Create shift payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /shifts [post]
func (h *ShiftHandler) Create(c *gin.Context) {
	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	shift, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, shift)
}

// Update godoc
// @Summary Update shift
// @Description Change a shift's window or status
// @Tags Shifts
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param payload body dto.UpdateShiftRequest true "Update shift payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /shifts/{id} [put]
func (h *ShiftHandler) Update(c *gin.Context) {
	var req dto.UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	shift, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, shift, nil)
}

// Delete godoc
// @Summary Delete shift
// @Description Remove a shift from its schedule
// @Tags Shifts
// @Produce json
// @Param id path string true "Shift ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /shifts/{id} [delete]
func (h *ShiftHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "from must be an RFC3339 timestamp")
	}

	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return time.Time{}, time.Time{}, appErrors.Clone(appErrors.ErrValidation, "to must be an RFC3339 timestamp")
	}

	return from, to, nil
}
