package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shiftline/rota-api/internal/dto"
	"github.com/shiftline/rota-api/internal/models"
	"github.com/shiftline/rota-api/internal/service"
	appErrors "github.com/shiftline/rota-api/pkg/errors"
	"github.com/shiftline/rota-api/pkg/response"
)

// TradeHandler handles shift trade endpoints.
type TradeHandler struct {
	service   *service.TradeService
	employees *service.EmployeeService
}

// NewTradeHandler creates a new trade handler.
func NewTradeHandler(svc *service.TradeService, employees *service.EmployeeService) *TradeHandler {
	return &TradeHandler{service: svc, employees: employees}
}

// List godoc
// @Summary List trades
// @Description List shift trades, optionally filtered by status. Employees only see trades involving them.
// @Tags Trades
// @Produce json
// @Param status query string false "Status filter"
// @Success 200 {object} response.Envelope
// @Router /trades [get]
func (h *TradeHandler) List(c *gin.Context) {
	var status *models.TradeStatus
	if raw := c.Query("status"); raw != "" {
		s := models.TradeStatus(raw)
		status = &s
	}

	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	employeeID := ""
	if claims.Role == models.RoleEmployee {
		employee, err := h.employees.GetByUserID(c.Request.Context(), claims.UserID)
		if err != nil {
			response.Error(c, err)
			return
		}
		employeeID = employee.ID
	}

	trades, err := h.service.List(c.Request.Context(), status, employeeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, trades, nil)
}

// Get godoc
// @Summary Get trade
// @Description Get trade detail
// @Tags Trades
// @Produce json
// @Param id path string true "Trade ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /trades/{id} [get]
func (h *TradeHandler) Get(c *gin.Context) {
	trade, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, trade, nil)
}

// Offer godoc
// @Summary Offer trade
// @Description Offer one of the caller's upcoming shifts for trade
// @Tags Trades
// @Accept json
// @Produce json
// @Param payload body dto.CreateTradeRequest true "Trade offer payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /trades [post]
func (h *TradeHandler) Offer(c *gin.Context) {
	employee, err := callerEmployee(c, h.employees)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	trade, err := h.service.Offer(c.Request.Context(), employee.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, trade)
}

// Accept godoc
// @Summary Accept trade
// @Description Accept a pending trade offered by another employee
// @Tags Trades
// @Produce json
// @Param id path string true "Trade ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /trades/{id}/accept [post]
func (h *TradeHandler) Accept(c *gin.Context) {
	employee, err := callerEmployee(c, h.employees)
	if err != nil {
		response.Error(c, err)
		return
	}

	trade, err := h.service.Accept(c.Request.Context(), c.Param("id"), employee.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, trade, nil)
}

// Resolve godoc
// @Summary Resolve trade
// @Description Approve or reject an accepted trade. Approval reassigns the shift.
// @Tags Trades
// @Accept json
// @Produce json
// @Param id path string true "Trade ID"
// @Param payload body dto.ResolveTradeRequest true "Resolution payload"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /trades/{id}/resolve [post]
func (h *TradeHandler) Resolve(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req dto.ResolveTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	trade, err := h.service.Resolve(c.Request.Context(), c.Param("id"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, trade, nil)
}

// Cancel godoc
// @Summary Cancel trade
// @Description Withdraw a trade the caller offered
// @Tags Trades
// @Produce json
// @Param id path string true "Trade ID"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /trades/{id}/cancel [post]
func (h *TradeHandler) Cancel(c *gin.Context) {
	employee, err := callerEmployee(c, h.employees)
	if err != nil {
		response.Error(c, err)
		return
	}

	trade, err := h.service.Cancel(c.Request.Context(), c.Param("id"), employee.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, trade, nil)
}
