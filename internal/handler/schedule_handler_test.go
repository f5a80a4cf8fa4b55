package handler

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/shiftline/rota-api/internal/service"
)

func newScheduleHandlerForBinding() *ScheduleHandler {
	svc := service.NewScheduleService(nil, nil, nil, nil, nil, nil, nil, nil, nil, nil, service.ScheduleServiceConfig{})
	return NewScheduleHandler(svc)
}

func TestScheduleHandlerGenerateInvalidBody(t *testing.T) {
	handler := newScheduleHandlerForBinding()

	c, w := newBranchTestContext(t)
	req, _ := http.NewRequest(http.MethodPost, "/schedules/generate", bytes.NewReader([]byte(`{`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Generate(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerListRequiresBranch(t *testing.T) {
	handler := newScheduleHandlerForBinding()

	c, w := newBranchTestContext(t)
	c.Request = jsonRequest(t, http.MethodGet, "/schedules", nil)

	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerUpdateSettingsInvalidBody(t *testing.T) {
	handler := newScheduleHandlerForBinding()

	c, w := newBranchTestContext(t)
	req, _ := http.NewRequest(http.MethodPut, "/schedules/sched-1/settings", bytes.NewReader([]byte(`[]`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "sched-1"}}

	handler.UpdateSettings(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
