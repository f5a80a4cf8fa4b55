package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shiftline/rota-api/internal/dto"
	"github.com/shiftline/rota-api/internal/middleware"
	"github.com/shiftline/rota-api/internal/service"
	appErrors "github.com/shiftline/rota-api/pkg/errors"
	"github.com/shiftline/rota-api/pkg/response"
)

// ScheduleHandler handles schedule generation and week-view endpoints.
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// Generate godoc
// @Summary Generate schedule
// @Description Generate and persist a weekly schedule for a branch
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Generation request"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /schedules/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// List godoc
// @Summary List schedules
// @Description List schedules for a branch, newest week first
// @Tags Schedules
// @Produce json
// @Param branch_id query string true "Branch ID"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	branchID := c.Query("branch_id")
	if branchID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "branch_id is required"))
		return
	}

	schedules, err := h.service.List(c.Request.Context(), branchID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, schedules, nil)
}

// Get godoc
// @Summary Get schedule
// @Description Get a schedule and its shifts
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	schedule, shifts, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"schedule": schedule, "shifts": shifts}, nil)
}

// Delete godoc
// @Summary Delete schedule
// @Description Delete a schedule and all of its shifts
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GetGrid godoc
// @Summary Get schedule grid
// @Description Get the rendered weekly grid for a schedule
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedules/{id}/grid [get]
func (h *ScheduleHandler) GetGrid(c *gin.Context) {
	grid, cacheHit, err := h.service.GetGrid(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	response.JSON(c, http.StatusOK, grid, nil, meta)
}

// GetSettings godoc
// @Summary Get schedule settings
// @Description Get the constraint settings a schedule was generated with
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schedules/{id}/settings [get]
func (h *ScheduleHandler) GetSettings(c *gin.Context) {
	settings, err := h.service.GetSettings(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, settings, nil)
}

// UpdateSettings godoc
// @Summary Update schedule settings
// @Description Update the stored constraint settings of a schedule
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param payload body dto.ScheduleSettingsRequest true "Settings payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedules/{id}/settings [put]
func (h *ScheduleHandler) UpdateSettings(c *gin.Context) {
	var req dto.ScheduleSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	settings, err := h.service.UpdateSettings(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, settings, nil)
}

// ListTemplates godoc
// @Summary List settings templates
// @Description List stored reusable constraint templates
// @Tags Templates
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule-templates [get]
func (h *ScheduleHandler) ListTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, templates, nil)
}

// CreateTemplate godoc
// @Summary Create settings template
// @Description Store a reusable constraint template under a name
// @Tags Templates
// @Accept json
// @Produce json
// @Param payload body dto.SettingsTemplateRequest true "Template payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /schedule-templates [post]
func (h *ScheduleHandler) CreateTemplate(c *gin.Context) {
	var req dto.SettingsTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	template, err := h.service.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, template)
}

// DeleteTemplate godoc
// @Summary Delete settings template
// @Description Delete a stored constraint template
// @Tags Templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 204 "No Content"
// @Failure 404 {object} response.Envelope
// @Router /schedule-templates/{id} [delete]
func (h *ScheduleHandler) DeleteTemplate(c *gin.Context) {
	if err := h.service.DeleteTemplate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
