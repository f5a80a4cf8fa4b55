package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shiftline/rota-api/internal/dto"
	"github.com/shiftline/rota-api/internal/service"
	appErrors "github.com/shiftline/rota-api/pkg/errors"
	"github.com/shiftline/rota-api/pkg/response"
)

// AvailabilityHandler handles weekly availability submission endpoints.
type AvailabilityHandler struct {
	service   *service.AvailabilityService
	employees *service.EmployeeService
}

// NewAvailabilityHandler creates a new availability handler.
func NewAvailabilityHandler(svc *service.AvailabilityService, employees *service.EmployeeService) *AvailabilityHandler {
	return &AvailabilityHandler{service: svc, employees: employees}
}

// List godoc
// @Summary List availability
// @Description List an employee's declared weekly availability windows
// @Tags Availability
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /employees/{id}/availability [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
	employeeID := c.Param("id")
	if err := requireEmployeeAccess(c, h.employees, employeeID); err != nil {
		response.Error(c, err)
		return
	}

	slots, err := h.service.List(c.Request.Context(), employeeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, slots, nil)
}

// Replace godoc
// @Summary Replace availability
// @Description Replace an employee's full weekly availability. An empty list withdraws all windows.
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param payload body dto.ReplaceAvailabilityRequest true "Weekly availability"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /employees/{id}/availability [put]
func (h *AvailabilityHandler) Replace(c *gin.Context) {
	employeeID := c.Param("id")
	if err := requireEmployeeAccess(c, h.employees, employeeID); err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ReplaceAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	slots, err := h.service.Replace(c.Request.Context(), employeeID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, slots, nil)
}

// Delete godoc
// @Summary Delete availability slot
// @Description Remove a single availability window
// @Tags Availability
// @Produce json
// @Param id path string true "Employee ID"
// @Param slotId path string true "Slot ID"
// @Success 204 "No Content"
// @Failure 403 {object} response.Envelope
// @Router /employees/{id}/availability/{slotId} [delete]
func (h *AvailabilityHandler) Delete(c *gin.Context) {
	employeeID := c.Param("id")
	if err := requireEmployeeAccess(c, h.employees, employeeID); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("slotId"), employeeID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
